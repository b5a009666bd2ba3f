package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/project"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timeline"
)

var (
	rangeTracks    []string
	rangeInsert    bool
	rangeOverwrite bool
)

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Edit a span of the timeline",
}

var rangeDeleteCmd = &cobra.Command{
	Use:     "delete <in> <out>",
	Aliases: []string{"rm"},
	Short:   "Ripple delete a span",
	Long: `Remove everything between in and out and close the gap. Clips that
straddle an edge are trimmed back to it. Without --track every unlocked
track is edited so the tracks stay in sync.`,
	Example: `  maestro range delete 00:00:10:00 00:00:12:12
  maestro range delete 10 12.5 --track v1`,
	Args: cobra.ExactArgs(2),
	RunE: runRangeDelete,
}

var rangeCopyCmd = &cobra.Command{
	Use:   "copy <in> <out> <at>",
	Short: "Copy a span to another time",
	Long: `Copy the clips between in and out and paste them at another time.

By default the paste fails if it would overlap existing clips. --overwrite
replaces whatever is under the paste, and --insert pushes later clips on
every unlocked track right to make room.`,
	Example: `  maestro range copy 0 4 20
  maestro range copy 0 4 20 --insert --track v1`,
	Args: cobra.ExactArgs(3),
	RunE: runRangeCopy,
}

func init() {
	for _, c := range []*cobra.Command{rangeDeleteCmd, rangeCopyCmd} {
		c.Flags().StringSliceVarP(&rangeTracks, "track", "t", nil, "only these tracks (default: all)")
	}
	rangeCopyCmd.Flags().BoolVar(&rangeInsert, "insert", false, "shift later clips to make room")
	rangeCopyCmd.Flags().BoolVar(&rangeOverwrite, "overwrite", false, "replace clips under the paste")
	rangeCopyCmd.MarkFlagsMutuallyExclusive("insert", "overwrite")

	rangeCmd.AddCommand(rangeDeleteCmd)
	rangeCmd.AddCommand(rangeCopyCmd)
	rootCmd.AddCommand(rangeCmd)
}

func parseRange(s *project.Session, in, out string) (timeline.Range, error) {
	var r timeline.Range
	var err error
	if r.In, err = parseTime(s, in); err != nil {
		return r, err
	}
	if r.Out, err = parseTime(s, out); err != nil {
		return r, err
	}
	return r, nil
}

func runRangeDelete(cmd *cobra.Command, args []string) error {
	return editSession(func(s *project.Session) error {
		r, err := parseRange(s, args[0], args[1])
		if err != nil {
			return err
		}
		if err := s.Timeline.RippleDeleteRange(r, rangeTracks...); err != nil {
			return err
		}

		if JSONOutput() {
			return printJSON(map[string]any{
				"in":       r.In.Seconds(),
				"out":      r.Out.Seconds(),
				"tracks":   rangeTracks,
				"duration": s.Timeline.Duration().Seconds(),
			})
		}
		fmt.Printf("Removed %s - %s, timeline is now %s\n", tc(s, r.In), tc(s, r.Out), tc(s, s.Timeline.Duration()))
		return nil
	})
}

func runRangeCopy(cmd *cobra.Command, args []string) error {
	return editSession(func(s *project.Session) error {
		r, err := parseRange(s, args[0], args[1])
		if err != nil {
			return err
		}
		at, err := parseTime(s, args[2])
		if err != nil {
			return err
		}
		if _, err := s.Timeline.CopyRange(r, rangeTracks...); err != nil {
			return err
		}

		paste, verb := s.Timeline.PasteAt, "Pasted"
		switch {
		case rangeInsert:
			paste, verb = s.Timeline.PasteInsert, "Inserted"
		case rangeOverwrite:
			paste, verb = s.Timeline.PasteOverwrite, "Overwrote with"
		}
		clips, err := paste(at)
		if err != nil {
			return err
		}

		if JSONOutput() {
			ids := make([]string, 0, len(clips))
			for _, c := range clips {
				ids = append(ids, c.ID)
			}
			return printJSON(map[string]any{"clips": ids, "at": s.Timeline.Snap(at).Seconds()})
		}
		for _, c := range clips {
			if err := printClip(s, verb, c); err != nil {
				return err
			}
		}
		return nil
	})
}
