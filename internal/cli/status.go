package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/project"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the project summary",
	Long:  `Show the project settings, playhead, tracks and the ids needed by other commands.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusJSON struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	FrameRate   string   `json:"frame_rate"`
	Snap        bool     `json:"snap"`
	Duration    float64  `json:"duration"`
	Playhead    float64  `json:"playhead"`
	Progress    float64  `json:"progress"`
	Tracks      int      `json:"tracks"`
	Clips       int      `json:"clips"`
	Markers     int      `json:"markers"`
	Media       int      `json:"media"`
	Audible     []string `json:"audible"`
	Fingerprint string   `json:"fingerprint"`
	UpdatedAt   string   `json:"updated_at"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, s, err := readSession()
	if err != nil {
		return err
	}
	if JSONOutput() {
		return outputStatusJSON(store, s)
	}
	return outputStatusText(store, s)
}

func outputStatusJSON(store *project.Store, s *project.Session) error {
	fp, err := s.Timeline.Fingerprint()
	if err != nil {
		return err
	}
	state := s.Transport.State()
	duration := s.Timeline.Duration().Seconds()
	return printJSON(statusJSON{
		Name:        s.Project.Name,
		Path:        store.Path(),
		FrameRate:   s.Timeline.Rate().String(),
		Snap:        s.Timeline.Settings().Snap,
		Duration:    duration,
		Playhead:    state.CurrentTime,
		Progress:    state.ProgressPercent(duration),
		Tracks:      len(s.Timeline.Tracks()),
		Clips:       len(s.Timeline.Clips()),
		Markers:     len(s.Timeline.Markers()),
		Media:       len(s.Timeline.Catalog()),
		Audible:     s.Timeline.Audible(),
		Fingerprint: fmt.Sprintf("%016x", fp),
		UpdatedAt:   s.Project.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func outputStatusText(store *project.Store, s *project.Session) error {
	tl := s.Timeline
	state := s.Transport.State()
	duration := tl.Duration()

	fmt.Printf("%s\n", s.Project.Name)
	size := ""
	if fi, err := os.Stat(store.Path()); err == nil {
		size = ", " + humanize.Bytes(uint64(fi.Size()))
	}
	fmt.Printf("  %s (saved %s%s)\n", store.Path(), humanize.Time(s.Project.UpdatedAt), size)
	fmt.Printf("  %s fps, snap %s\n", tl.Rate(), onOff(tl.Settings().Snap))
	fmt.Println()

	fmt.Printf("  %s %s / %s\n", formatProgressBar(state.CurrentTime, duration.Seconds()),
		tc(s, s.Transport.Time()), tc(s, duration))
	fmt.Printf("  %s clips, %s markers, %s media\n",
		humanize.Comma(int64(len(tl.Clips()))),
		humanize.Comma(int64(len(tl.Markers()))),
		humanize.Comma(int64(len(tl.Catalog()))))
	fmt.Println()

	t := NewTable("TRACK", "KIND", "CLIPS", "LOCK", "MUTE", "SOLO", "ENDS").AlignRight(2)
	for _, tr := range tl.Tracks() {
		clips := tl.TrackClips(tr.ID)
		end := "-"
		if n := len(clips); n > 0 {
			end = tc(s, clips[n-1].End())
		}
		t.Row(tr.Name, string(tr.Kind), fmt.Sprint(len(clips)),
			StatusIcon(tr.Locked), StatusIcon(tr.Muted), StatusIcon(tr.Solo), end)
	}
	t.Flush()
	return nil
}

// formatProgressBar creates a visual progress bar of the playhead.
func formatProgressBar(current, total float64) string {
	return "[" + FormatProgress(current, total, 30) + "]"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
