package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/tail"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

var (
	tailNoEmoji   bool
	tailTimestamp bool
	tailFormat    string
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow edits to the project in real-time",
	Long: `Watch the project file and print each edit saved to it, from this or any
other maestro process.

Events tracked:
  - Clips placed, removed and changed (split, trim, move, effects)
  - Markers added, removed and retyped
  - Tracks added, locked, muted and soloed

Template fields: .Type .Emoji .Time .ID .Track .Media .Start .End .Label`,
	Example: `  maestro tail -t
  maestro tail --format '{{.Time}} {{.Type}} {{.ID}} {{.Start}}'`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamp, "timestamp", "t", false, "show timestamps")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	store, s, err := readSession()
	if err != nil {
		return err
	}
	rate, err := timecode.ParseRate(s.Project.FrameRate)
	if err != nil {
		rate = timecode.DefaultRate
	}

	formatter := tail.NewFormatter(
		tail.WithEmoji(!tailNoEmoji),
		tail.WithTimestamp(tailTimestamp),
		tail.WithRate(rate),
		tail.WithTemplate(tailFormat),
	)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := tail.NewWatcher(store, logger.Named("tail"))
	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Start(ctx)
	}()

	if !JSONOutput() {
		fmt.Fprintf(os.Stderr, "Following %s (Ctrl+C to stop)\n", store.Path())
	}

	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return waitTail(errCh)
			}
			if JSONOutput() {
				_ = printJSON(event)
				continue
			}
			fmt.Println(formatter.Format(event))

		case err := <-errCh:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func waitTail(errCh <-chan error) error {
	err := <-errCh
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
