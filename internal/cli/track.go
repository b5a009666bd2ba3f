package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/project"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Manage tracks",
}

var trackAddCmd = &cobra.Command{
	Use:   "add <video|audio>",
	Short: "Add a track",
	Long:  `Add a track. Video tracks are stacked above existing video tracks, audio tracks below existing audio tracks.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTrackAdd,
}

var trackListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tracks",
	RunE:    runTrackList,
}

var trackLockCmd = &cobra.Command{
	Use:   "lock <track-id>",
	Short: "Toggle the lock on a track",
	Args:  cobra.ExactArgs(1),
	RunE:  toggleTrack("lock", func(s *project.Session, id string) (bool, error) { return s.Timeline.ToggleLock(id) }),
}

var trackMuteCmd = &cobra.Command{
	Use:   "mute <track-id>",
	Short: "Toggle mute on a track",
	Args:  cobra.ExactArgs(1),
	RunE:  toggleTrack("mute", func(s *project.Session, id string) (bool, error) { return s.Timeline.ToggleMute(id) }),
}

var trackSoloCmd = &cobra.Command{
	Use:   "solo <track-id>",
	Short: "Toggle solo on a track",
	Args:  cobra.ExactArgs(1),
	RunE:  toggleTrack("solo", func(s *project.Session, id string) (bool, error) { return s.Timeline.ToggleSolo(id) }),
}

func init() {
	trackCmd.AddCommand(trackAddCmd)
	trackCmd.AddCommand(trackListCmd)
	trackCmd.AddCommand(trackLockCmd)
	trackCmd.AddCommand(trackMuteCmd)
	trackCmd.AddCommand(trackSoloCmd)
	rootCmd.AddCommand(trackCmd)
}

func runTrackAdd(cmd *cobra.Command, args []string) error {
	kind, err := core.ParseKind(args[0])
	if err != nil {
		return err
	}

	var added core.Track
	err = editSession(func(s *project.Session) error {
		added, err = s.Timeline.AddTrack(kind)
		return err
	})
	if err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(added)
	}
	fmt.Printf("Added track %s\n", added.ID)
	return nil
}

func runTrackList(cmd *cobra.Command, args []string) error {
	_, s, err := readSession()
	if err != nil {
		return err
	}
	tracks := s.Timeline.Tracks()

	if JSONOutput() {
		return printJSON(tracks)
	}

	t := NewTable("ID", "NAME", "KIND", "CLIPS", "LOCK", "MUTE", "SOLO").AlignRight(3)
	for _, tr := range tracks {
		t.Row(tr.ID, tr.Name, string(tr.Kind), fmt.Sprint(len(s.Timeline.TrackClips(tr.ID))),
			StatusIcon(tr.Locked), StatusIcon(tr.Muted), StatusIcon(tr.Solo))
	}
	t.Flush()
	return nil
}

func toggleTrack(what string, fn func(s *project.Session, id string) (bool, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		var on bool
		err := editSession(func(s *project.Session) error {
			var err error
			on, err = fn(s, args[0])
			return err
		})
		if err != nil {
			return err
		}

		if JSONOutput() {
			return printJSON(map[string]any{"track": args[0], what: on})
		}
		state := "off"
		if on {
			state = "on"
		}
		fmt.Printf("Track %s %s: %s\n", args[0], what, state)
		return nil
	}
}
