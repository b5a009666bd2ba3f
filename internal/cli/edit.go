package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/command"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/project"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/tui"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/tui/styles"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/wizard"
)

var editRefresh int

var editCmd = &cobra.Command{
	Use:     "edit",
	Aliases: []string{"ui", "tui"},
	Short:   "Open the interactive editor",
	Long: `Open the project in the interactive terminal editor.

The editor shows:
  • Transport - playhead, speed, zoom, snap and ripple modes
  • Timeline - tracks, clips and markers around the playhead
  • Media - the media pool and how often each source is used
  • Edits - a log of every change made in this session

Keyboard shortcuts (change them with 'maestro config set keys.<key> <command>'):
  Space        Play/Pause
  J / K / L    Shuttle reverse, stop, shuttle forward
  ←/→          Step one frame
  ↑/↓          Previous/next edit point
  Tab          Select next clip
  B, Ctrl+B    Split at playhead
  X            Ripple delete (the marked range when i and o are set)
  i / o        Mark in, mark out
  Ctrl+C       Copy the marked range or the selected clip
  Ctrl+V       Paste at playhead
  V, Alt+V     Insert paste, overwrite paste
  p            Insert media at playhead
  y            Copy playhead timecode
  Ctrl+S       Save
  ?            Help
  q            Quit

The project is locked only while saving, so other maestro commands can
edit it while the editor is open. Their changes are picked up
automatically unless the editor has unsaved edits of its own.`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().IntVar(&editRefresh, "refresh", 0, "status refresh interval in milliseconds (default: tui.refresh_interval)")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if !wizard.IsTerminal() {
		return fmt.Errorf("the editor needs a terminal; use the clip, track and marker commands instead")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	p, err := store.Load()
	if err != nil {
		return err
	}
	s, err := project.Open(p, logger)
	if err != nil {
		return err
	}

	keymap := command.DefaultKeymap()
	if err := keymap.Apply(cfg.Keys); err != nil {
		return err
	}

	refresh := cfg.TUI.RefreshInterval
	if editRefresh > 0 {
		refresh = editRefresh
	}
	styles.SetTheme(cfg.TUI.Theme)

	return tui.Run(cmd.Context(), tui.Options{
		Store:   store,
		Session: s,
		Keymap:  keymap,
		Ripple:  cfg.Editor.Ripple,
		Zoom:    cfg.Editor.Zoom,
		Refresh: time.Duration(refresh) * time.Millisecond,
		Logger:  logger.Named("tui"),
	})
}
