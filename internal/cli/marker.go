package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/project"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timeline"
)

var (
	markerLabel string
	markerColor string
	markerType  string
)

var markerCmd = &cobra.Command{
	Use:   "marker",
	Short: "Manage markers",
}

var markerAddCmd = &cobra.Command{
	Use:   "add <time>",
	Short: "Add a marker",
	Example: `  maestro marker add 00:01:00:00 --label "Act two" --type chapter
  maestro marker add 12.5`,
	Args: cobra.ExactArgs(1),
	RunE: runMarkerAdd,
}

var markerRmCmd = &cobra.Command{
	Use:     "rm <marker-id>",
	Aliases: []string{"delete"},
	Short:   "Remove a marker",
	Args:    cobra.ExactArgs(1),
	RunE:    runMarkerRm,
}

var markerListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List markers in time order",
	RunE:    runMarkerList,
}

func init() {
	markerAddCmd.Flags().StringVarP(&markerLabel, "label", "l", "", "label (default: Marker N)")
	markerAddCmd.Flags().StringVar(&markerColor, "color", "", "colour: "+strings.Join(timeline.MarkerColors, ", "))
	markerAddCmd.Flags().StringVarP(&markerType, "type", "t", "", "type tag, e.g. "+strings.Join(timeline.MarkerTypes, ", "))
	markerCmd.AddCommand(markerAddCmd)
	markerCmd.AddCommand(markerRmCmd)
	markerCmd.AddCommand(markerListCmd)
	rootCmd.AddCommand(markerCmd)
}

func runMarkerAdd(cmd *cobra.Command, args []string) error {
	var added timeline.Marker
	var sess *project.Session
	err := editSession(func(s *project.Session) error {
		at, err := parseTime(s, args[0])
		if err != nil {
			return err
		}
		m, err := s.Timeline.AddMarker(at, markerLabel, markerColor)
		if err != nil {
			return err
		}
		if markerType != "" {
			if m, err = s.Timeline.SetMarkerType(m.ID, markerType); err != nil {
				return err
			}
		}
		added, sess = m, s
		return nil
	})
	if err != nil {
		return err
	}

	if JSONOutput() {
		for _, m := range sess.Timeline.Snapshot().Markers {
			if m.ID == added.ID {
				return printJSON(m)
			}
		}
	}
	fmt.Printf("Added %s %q at %s\n", added.ID, added.Label, tc(sess, added.Time))
	return nil
}

func runMarkerRm(cmd *cobra.Command, args []string) error {
	err := editSession(func(s *project.Session) error {
		if !s.Timeline.DeleteMarker(args[0]) {
			return fmt.Errorf("marker %s: %w", args[0], errors.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{"deleted": args[0]})
	}
	fmt.Printf("Removed %s\n", args[0])
	return nil
}

func runMarkerList(cmd *cobra.Command, args []string) error {
	_, s, err := readSession()
	if err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(s.Timeline.Snapshot().Markers)
	}
	markers := s.Timeline.Markers()
	if len(markers) == 0 {
		fmt.Println("No markers")
		return nil
	}

	t := NewTable("ID", "TIME", "LABEL", "COLOR", "TYPE")
	for _, m := range markers {
		t.Row(m.ID, tc(s, m.Time), TruncateString(m.Label, 40), m.Color, m.Type)
	}
	t.Flush()
	return nil
}
