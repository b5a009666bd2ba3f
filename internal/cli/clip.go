package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/project"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timeline"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/wizard"
)

var (
	placeAt    string
	moveAt     string
	listAt     string
	clipIn     string
	clipOut    string
	clipTrack  string
	clipRipple bool
	splitOnly  []string
)

var clipCmd = &cobra.Command{
	Use:   "clip",
	Short: "Place and edit clips",
}

var clipPlaceCmd = &cobra.Command{
	Use:   "place <track-id> [media-id]",
	Short: "Place media on a track",
	Long: `Place a media source on a track at --at. Without --in/--out the whole
source is used. Placement fails if the clip would overlap another clip.`,
	Example: `  maestro clip place v1 m1 --at 00:00:10:00
  maestro clip place a1 score --at 0 --in 12 --out 42`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runClipPlace,
}

var clipSplitCmd = &cobra.Command{
	Use:   "split <time>",
	Short: "Split clips under a time",
	Long: `Split every clip on an unlocked track that spans the given time into two.
With --clip, only the named clips are split.`,
	Example: `  maestro clip split 00:00:04:00
  maestro clip split 4 --clip c_1a2b3c4d`,
	Args: cobra.ExactArgs(1),
	RunE: runClipSplit,
}

var clipDeleteCmd = &cobra.Command{
	Use:     "delete <clip-id>...",
	Aliases: []string{"rm"},
	Short:   "Delete clips",
	Long: `Delete one or more clips. With --ripple, later clips on the same track
close the gap. Clips that cannot be deleted are reported and the rest are
still removed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClipDelete,
}

var clipTrimCmd = &cobra.Command{
	Use:   "trim <clip-id> <duration>",
	Short: "Change a clip's duration",
	Long: `Change a clip's duration, keeping its start and source in point. The new
duration may not run past the end of the source.`,
	Args: cobra.ExactArgs(2),
	RunE: runClipTrim,
}

var clipMoveCmd = &cobra.Command{
	Use:   "move <clip-id>",
	Short: "Move a clip in time or to another track",
	Args:  cobra.ExactArgs(1),
	RunE:  runClipMove,
}

var clipDupCmd = &cobra.Command{
	Use:   "dup <clip-id>",
	Short: "Duplicate a clip after itself",
	Args:  cobra.ExactArgs(1),
	RunE:  runClipDup,
}

var clipEffectCmd = &cobra.Command{
	Use:   "effect <add|rm> <clip-id> <tags>",
	Short: "Add or remove effect tags",
	Long:  `Add or remove comma separated effect tags on a clip. Tags are labels only.`,
	Example: `  maestro clip effect add c_1a2b3c4d blur,grade
  maestro clip effect rm c_1a2b3c4d blur`,
	Args: cobra.ExactArgs(3),
	RunE: runClipEffect,
}

var clipListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List clips",
	RunE:    runClipList,
}

func init() {
	clipPlaceCmd.Flags().StringVar(&placeAt, "at", "0", "timeline start")
	clipPlaceCmd.Flags().StringVar(&clipIn, "in", "", "source in point")
	clipPlaceCmd.Flags().StringVar(&clipOut, "out", "", "source out point")

	clipSplitCmd.Flags().StringSliceVar(&splitOnly, "clip", nil, "only split these clips")

	clipDeleteCmd.Flags().BoolVarP(&clipRipple, "ripple", "r", false, "close the gap (default: editor.ripple)")
	clipTrimCmd.Flags().BoolVarP(&clipRipple, "ripple", "r", false, "shift later clips (default: editor.ripple)")

	clipMoveCmd.Flags().StringVar(&moveAt, "at", "", "new start (default: unchanged)")
	clipMoveCmd.Flags().StringVarP(&clipTrack, "track", "t", "", "destination track (default: unchanged)")

	clipListCmd.Flags().StringVarP(&clipTrack, "track", "t", "", "only clips on this track")
	clipListCmd.Flags().StringVar(&listAt, "at", "", "only clips under this time")

	clipCmd.AddCommand(clipPlaceCmd)
	clipCmd.AddCommand(clipSplitCmd)
	clipCmd.AddCommand(clipDeleteCmd)
	clipCmd.AddCommand(clipTrimCmd)
	clipCmd.AddCommand(clipMoveCmd)
	clipCmd.AddCommand(clipDupCmd)
	clipCmd.AddCommand(clipEffectCmd)
	clipCmd.AddCommand(clipListCmd)
	rootCmd.AddCommand(clipCmd)
}

// ripple resolves the --ripple flag against the configured default.
func ripple(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("ripple") {
		return clipRipple
	}
	return cfg.Editor.Ripple
}

// snapshotClip returns the persisted form of a clip for JSON output.
func snapshotClip(s *project.Session, id string) core.Clip {
	for _, c := range s.Timeline.Snapshot().Clips {
		if c.ID == id {
			return c
		}
	}
	return core.Clip{ID: id}
}

func printClip(s *project.Session, verb string, c timeline.Clip) error {
	if JSONOutput() {
		return printJSON(snapshotClip(s, c.ID))
	}
	fmt.Printf("%s %s on %s: %s - %s\n", verb, c.ID, c.TrackID, tc(s, c.Start), tc(s, c.End()))
	return nil
}

func runClipPlace(cmd *cobra.Command, args []string) error {
	trackID := args[0]
	return editSession(func(s *project.Session) error {
		track, ok := s.Timeline.Track(trackID)
		if !ok {
			return fmt.Errorf("track %s: %w", trackID, errors.ErrNotFound)
		}

		var mediaID string
		if wizard.NeedsArg(args, 1) {
			if !prompt.CanInteract() {
				return fmt.Errorf("media id required")
			}
			item, err := wizard.RunMediaPicker(s.Timeline.Catalog(), track.Kind)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("no media selected")
			}
			mediaID = item.ID
		} else {
			mediaID = args[1]
		}

		at, err := parseTime(s, placeAt)
		if err != nil {
			return err
		}
		if clipIn == "" && clipOut == "" {
			c, err := s.Timeline.PlaceClip(trackID, mediaID, at)
			if err != nil {
				return err
			}
			return printClip(s, "Placed", c)
		}

		item := s.Timeline.Catalog().Lookup(mediaID)
		if item == nil {
			return fmt.Errorf("media %s: %w", mediaID, errors.ErrNotFound)
		}
		in, out := timecode.Time(0), timecode.FromSeconds(item.Duration)
		if clipIn != "" {
			if in, err = parseTime(s, clipIn); err != nil {
				return err
			}
		}
		if clipOut != "" {
			if out, err = parseTime(s, clipOut); err != nil {
				return err
			}
		}
		c, err := s.Timeline.PlaceClipWindow(trackID, mediaID, at, in, out)
		if err != nil {
			return err
		}
		return printClip(s, "Placed", c)
	})
}

func runClipSplit(cmd *cobra.Command, args []string) error {
	return editSession(func(s *project.Session) error {
		at, err := parseTime(s, args[0])
		if err != nil {
			return err
		}
		var splits []timeline.Split
		if len(splitOnly) > 0 {
			if splits, err = s.Timeline.SplitClips(at, splitOnly...); err != nil {
				return err
			}
		} else {
			splits = s.Timeline.SplitAt(at)
		}

		if JSONOutput() {
			type pair struct {
				Original string `json:"original"`
				Left     string `json:"left"`
				Right    string `json:"right"`
			}
			out := make([]pair, 0, len(splits))
			for _, sp := range splits {
				out = append(out, pair{sp.Original, sp.Left.ID, sp.Right.ID})
			}
			return printJSON(out)
		}
		if len(splits) == 0 {
			fmt.Printf("No clips span %s\n", tc(s, s.Timeline.Snap(at)))
			return nil
		}
		for _, sp := range splits {
			fmt.Printf("Split %s into %s and %s\n", sp.Original, sp.Left.ID, sp.Right.ID)
		}
		return nil
	})
}

func runClipDelete(cmd *cobra.Command, args []string) error {
	return editSession(func(s *project.Session) error {
		var res errors.PartialResult[[]string]
		for _, id := range args {
			c, err := s.Timeline.DeleteClip(id, ripple(cmd))
			if err != nil {
				res.AddError(fmt.Errorf("%s: %w", id, err))
				continue
			}
			res.Data = append(res.Data, c.ID)
		}
		if len(res.Data) == 0 {
			return res.Errors[0]
		}
		if res.HasErrors() {
			fmt.Fprintln(os.Stderr, strings.TrimSpace(res.ErrorSummary()))
		}
		if JSONOutput() {
			return printJSON(map[string]any{"deleted": res.Data, "ripple": ripple(cmd)})
		}
		fmt.Printf("Deleted %s\n", strings.Join(res.Data, ", "))
		return nil
	})
}

func runClipTrim(cmd *cobra.Command, args []string) error {
	return editSession(func(s *project.Session) error {
		d, err := parseTime(s, args[1])
		if err != nil {
			return err
		}
		c, err := s.Timeline.TrimClip(args[0], d, ripple(cmd))
		if err != nil {
			return err
		}
		return printClip(s, "Trimmed", c)
	})
}

func runClipMove(cmd *cobra.Command, args []string) error {
	return editSession(func(s *project.Session) error {
		c, ok := s.Timeline.Clip(args[0])
		if !ok {
			return fmt.Errorf("clip %s: %w", args[0], errors.ErrNotFound)
		}
		trackID, start := c.TrackID, c.Start
		if clipTrack != "" {
			trackID = clipTrack
		}
		if moveAt != "" {
			at, err := parseTime(s, moveAt)
			if err != nil {
				return err
			}
			start = at
		}
		moved, err := s.Timeline.MoveClip(c.ID, trackID, start)
		if err != nil {
			return err
		}
		return printClip(s, "Moved", moved)
	})
}

func runClipDup(cmd *cobra.Command, args []string) error {
	return editSession(func(s *project.Session) error {
		c, err := s.Timeline.DuplicateClip(args[0])
		if err != nil {
			return err
		}
		return printClip(s, "Duplicated as", c)
	})
}

func runClipEffect(cmd *cobra.Command, args []string) error {
	op, id := args[0], args[1]
	tags := splitTags(args[2])
	if len(tags) == 0 {
		return fmt.Errorf("no effect tags given")
	}

	return editSession(func(s *project.Session) error {
		var c timeline.Clip
		var err error
		for _, tag := range tags {
			switch op {
			case "add":
				c, err = s.Timeline.ApplyEffect(id, tag)
			case "rm", "remove":
				c, err = s.Timeline.RemoveEffect(id, tag)
			default:
				return fmt.Errorf("unknown effect action %q (use add or rm)", op)
			}
			if err != nil {
				return err
			}
		}
		if JSONOutput() {
			return printJSON(snapshotClip(s, id))
		}
		fmt.Printf("%s effects: %s\n", c.ID, strings.Join(c.Effects, ", "))
		return nil
	})
}

func runClipList(cmd *cobra.Command, args []string) error {
	_, s, err := readSession()
	if err != nil {
		return err
	}

	clips := s.Timeline.Clips()
	if clipTrack != "" {
		clips = s.Timeline.TrackClips(clipTrack)
	}
	if listAt != "" {
		at, err := parseTime(s, listAt)
		if err != nil {
			return err
		}
		under := s.Timeline.ClipsAt(at)
		clips = slices.DeleteFunc(clips, func(c timeline.Clip) bool {
			return !slices.ContainsFunc(under, func(u timeline.Clip) bool { return u.ID == c.ID })
		})
	}

	if JSONOutput() {
		out := make([]core.Clip, 0, len(clips))
		for _, c := range clips {
			out = append(out, snapshotClip(s, c.ID))
		}
		return printJSON(out)
	}
	if len(clips) == 0 {
		fmt.Println("No clips")
		return nil
	}

	t := NewTable("ID", "TRACK", "MEDIA", "START", "END", "IN", "EFFECTS")
	for _, c := range clips {
		t.Row(c.ID, c.TrackID, c.MediaID, tc(s, c.Start), tc(s, c.End()), tc(s, c.In),
			TruncateString(strings.Join(c.Effects, ","), 30))
	}
	t.Flush()
	return nil
}
