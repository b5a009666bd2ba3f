package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/transport"
)

var (
	playFrom  string
	playSpeed string
	playSave  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the playhead without the editor",
	Long: `Advance the playhead in real time and print its timecode until playback
reaches either end of the timeline or Ctrl+C is pressed. Negative speeds play
in reverse.`,
	Example: `  maestro play --from 00:00:30:00
  maestro play --speed 2
  maestro play --speed -1/2 --save`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playFrom, "from", "", "start position (default: saved playhead)")
	playCmd.Flags().StringVarP(&playSpeed, "speed", "s", "1", "playback speed, e.g. 2, -1, 1/2")
	playCmd.Flags().BoolVar(&playSave, "save", false, "store the final playhead in the project")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	store, s, err := readSession()
	if err != nil {
		return err
	}
	if s.Timeline.Duration() == 0 {
		return fmt.Errorf("timeline is empty. Place clips with 'maestro clip place'")
	}

	speed, err := transport.ParseSpeed(playSpeed)
	if err != nil {
		return err
	}
	tr := s.Transport
	if err := tr.SetSpeed(speed); err != nil {
		return err
	}
	if playFrom != "" {
		at, err := parseTime(s, playFrom)
		if err != nil {
			return err
		}
		tr.Seek(at)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr.Play()
	rate := tr.Rate()
	err = tr.Run(ctx, func(st core.TransportState) {
		if JSONOutput() {
			_ = printJSON(st)
			return
		}
		fmt.Printf("\r%s %s %s ", StatusIcon(st.IsPlaying), timecode.Format(timecode.FromSeconds(st.CurrentTime), rate), tr.Speed())
	})
	if !JSONOutput() {
		fmt.Println()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if playSave {
		if err := store.Lock(); err != nil {
			return err
		}
		defer func() { _ = store.Unlock() }()
		// Reload so edits made while playing are not lost.
		p, err := store.Load()
		if err != nil {
			return err
		}
		p.Playhead = tr.Time().Seconds()
		if err := store.Save(p); err != nil {
			return err
		}
	}
	return nil
}
