package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/project"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/wizard"
)

var (
	newRate  string
	newSnap  bool
	newForce bool
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a project",
	Long: `Create a project file with one video and one audio track.

The frame rate is fixed for the life of the project. When run in a terminal
without a name, a short form asks for the settings.`,
	Example: `  maestro new "Launch trailer" --rate 23.976
  maestro -p cuts/teaser.maestro.json new teaser`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newRate, "rate", "r", "", "frame rate (default: project.frame_rate)")
	newCmd.Flags().BoolVar(&newSnap, "snap", true, "snap edits to frame boundaries")
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "overwrite an existing project")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	if store.Exists() && !newForce {
		return fmt.Errorf("project already exists at %s (use --force to overwrite)", store.Path())
	}

	answers := wizard.ProjectAnswers{
		FrameRate: cfg.Project.FrameRate,
		Snap:      cfg.Project.Snap,
	}
	if newRate != "" {
		answers.FrameRate = newRate
	}
	if cmd.Flags().Changed("snap") {
		answers.Snap = newSnap
	}

	if wizard.NeedsArg(args, 0) {
		answers.Name = strings.TrimSuffix(filepath.Base(store.Path()), project.DefaultFileName)
		answers.Name = strings.TrimSuffix(strings.TrimSuffix(answers.Name, ".json"), ".maestro")
		if prompt.CanInteract() {
			if answers, err = wizard.AskProject(answers); err != nil {
				return err
			}
		}
	} else {
		answers.Name = args[0]
	}
	if answers.Name == "" {
		answers.Name = "Untitled"
	}

	rate, err := timecode.ParseRate(answers.FrameRate)
	if err != nil {
		return err
	}

	p := project.New(answers.Name, rate, answers.Snap)
	p.DuplicateGapFrames = cfg.Project.DuplicateGapFrames
	if err := store.Lock(); err != nil {
		return err
	}
	defer func() { _ = store.Unlock() }()
	if err := store.Save(p); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{
			"status":     "created",
			"path":       store.Path(),
			"name":       p.Name,
			"frame_rate": p.FrameRate,
		})
	}
	fmt.Printf("Created %q at %s (%s fps)\n", p.Name, store.Path(), p.FrameRate)
	return nil
}
