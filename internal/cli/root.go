package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/config"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/logging"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/wizard"
)

var (
	cfgFile     string
	projectPath string
	jsonOut     bool
	verbose     bool
	noInput     bool

	cfg    *config.Config
	logger = zap.NewNop()
	prompt = wizard.NewInteractive()
)

var rootCmd = &cobra.Command{
	Use:   "maestro",
	Short: "Edit video timelines from the terminal",
	Long: `Maestro is a non-linear timeline editor. Projects hold a media pool, video
and audio tracks, clips and markers, and can be edited one command at a time
or interactively with 'maestro edit'.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.maestrorc)")
	rootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "", "project file (default: project.default_path)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noInput, "no-input", false, "never prompt for missing arguments")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	prompt.SetEnabled(!noInput && !jsonOut)
	return nil
}

func initLogging() error {
	logCfg := cfg.Log
	var console io.Writer
	if verbose {
		logCfg.Level = "debug"
		console = os.Stderr
	}

	var err error
	logger, err = logging.New(logCfg, console)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
