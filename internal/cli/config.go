package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/command"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/config"
)

const configHeader = "# Maestro Configuration\n\n"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing maestro configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values, including environment overrides.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  project.frame_rate            Frame rate for new projects (24, 29.97, 24000/1001)
  project.snap                  Snap edits to frame boundaries (true/false)
  project.duplicate_gap_frames  Frames left between a clip and its duplicate
  project.default_path          Project file used when --project is not given
  editor.ripple                 Start editing sessions in ripple mode
  editor.zoom                   Initial timeline zoom (0.1-50)
  tui.theme                     auto, dark or light
  tui.refresh_interval          Editor redraw interval in milliseconds
  log.level                     debug, info, warn or error
  log.file                      Write JSON logs to this file
  keys.<key>                    Bind a key to a command, or "none" to unbind

Examples:
  maestro config set project.frame_rate 25
  maestro config set keys.ctrl+k split`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List key bindings",
	Long:  `List every editor command with the keys bound to it after config overrides.`,
	RunE:  runConfigKeys,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return printJSON(cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(os.Stdout)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found at %s. Run 'maestro config init' first", configPath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := writeConfigFile(configPath, config.Default()); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}
	fmt.Printf("Created config file: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Set your usual frame rate with 'maestro config set project.frame_rate 25'")
	fmt.Println("  2. Run 'maestro new' to create a project")
	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if path := config.FindConfigFile(); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".maestrorc"
	}
	return filepath.Join(home, ".maestrorc")
}

func writeConfigFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer func() { _ = f.Close() }()

	_, _ = fmt.Fprint(f, configHeader)
	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// configValue converts a raw string to the type stored under key.
func configValue(key, value string) (any, error) {
	switch key {
	case "project.duplicate_gap_frames", "tui.refresh_interval", "log.max_size_mb", "log.max_backups":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("value must be an integer for %s", key)
		}
		return n, nil
	case "project.snap", "editor.ripple":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("value must be true or false for %s", key)
		}
		return b, nil
	case "editor.zoom":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("value must be a number for %s", key)
		}
		return f, nil
	}
	return value, nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Key names like "keys.ctrl+s" only split on the first dot.
	section, field, ok := strings.Cut(key, ".")
	if !ok || section == "" || field == "" {
		return fmt.Errorf("invalid key format. Use 'section.key' (e.g., project.frame_rate)")
	}
	if section == "keys" {
		name := command.Name(value)
		if name != command.Unbind && !command.Known(name) {
			return fmt.Errorf("unknown command %q. Run 'maestro config keys' for the list", value)
		}
	}

	typedValue, err := configValue(key, value)
	if err != nil {
		return err
	}

	configPath := getConfigPath()
	rawConfig := map[string]any{}
	if data, err := os.ReadFile(configPath); err == nil {
		if _, err := toml.Decode(string(data), &rawConfig); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config: %w", err)
	}

	sectionMap, ok := rawConfig[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		rawConfig[section] = sectionMap
	}
	sectionMap[field] = typedValue

	// Refuse to write a file that would fail to load.
	candidate := config.Default()
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(rawConfig); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if _, err := toml.Decode(buf.String(), candidate); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	candidate.ApplyDefaults()
	if err := candidate.Validate(); err != nil {
		return err
	}

	if err := writeConfigFile(configPath, rawConfig); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigKeys(cmd *cobra.Command, args []string) error {
	keymap := command.DefaultKeymap()
	if err := keymap.Apply(cfg.Keys); err != nil {
		return err
	}

	if JSONOutput() {
		out := map[string][]string{}
		for _, n := range command.All() {
			out[string(n)] = keymap.KeysFor(n)
		}
		return printJSON(out)
	}

	t := NewTable("COMMAND", "KEYS", "DESCRIPTION")
	for _, n := range command.All() {
		// " " and "space" are the same key.
		keys := slices.DeleteFunc(keymap.KeysFor(n), func(k string) bool { return k == " " })
		t.Row(string(n), strings.Join(keys, ", "), command.Describe(n))
	}
	t.Flush()
	return nil
}
