package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/project"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/wizard"
)

var (
	mediaID       string
	mediaKind     string
	mediaDuration string
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage the media pool",
}

var mediaAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a source to the media pool",
	Long: `Add a source to the media pool. Only the name, kind and duration are
recorded; maestro never reads the media itself.`,
	Example: `  maestro media add A001_C003.braw --kind video --duration 00:02:00:00
  maestro media add score.wav --kind audio --duration 185.5 --id score`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMediaAdd,
}

var mediaListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the media pool",
	RunE:    runMediaList,
}

func init() {
	mediaAddCmd.Flags().StringVar(&mediaID, "id", "", "media id (default: generated)")
	mediaAddCmd.Flags().StringVarP(&mediaKind, "kind", "k", "", "video or audio")
	mediaAddCmd.Flags().StringVarP(&mediaDuration, "duration", "d", "", "duration in seconds or HH:MM:SS:FF")
	mediaCmd.AddCommand(mediaAddCmd)
	mediaCmd.AddCommand(mediaListCmd)
	rootCmd.AddCommand(mediaCmd)
}

func runMediaAdd(cmd *cobra.Command, args []string) error {
	var added core.MediaItem
	err := editSession(func(s *project.Session) error {
		item := core.MediaItem{ID: mediaID}
		if !wizard.NeedsArg(args, 0) {
			item.Name = args[0]
		}
		if mediaKind != "" {
			kind, err := core.ParseKind(mediaKind)
			if err != nil {
				return err
			}
			item.Kind = kind
		}
		if mediaDuration != "" {
			d, err := parseTime(s, mediaDuration)
			if err != nil {
				return err
			}
			item.Duration = d.Seconds()
		}

		if item.Name == "" || item.Kind == "" || item.Duration <= 0 {
			if !prompt.CanInteract() {
				return fmt.Errorf("media needs a name, --kind and --duration")
			}
			var err error
			if item, err = wizard.AskMedia(item); err != nil {
				return err
			}
		}
		if item.ID == "" {
			item.ID = "media_" + uuid.NewString()[:8]
		}
		if err := s.Timeline.AddMedia(item); err != nil {
			return err
		}
		added = item
		return nil
	})
	if err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(added)
	}
	fmt.Printf("Added %s %q (%s)\n", added.ID, added.Name, added.Kind)
	return nil
}

func runMediaList(cmd *cobra.Command, args []string) error {
	_, s, err := readSession()
	if err != nil {
		return err
	}
	catalog := s.Timeline.Catalog()

	if JSONOutput() {
		return printJSON(catalog)
	}
	if len(catalog) == 0 {
		fmt.Println("Media pool is empty. Add sources with 'maestro media add'.")
		return nil
	}

	used := map[string]int{}
	for _, c := range s.Timeline.Clips() {
		used[c.MediaID]++
	}

	t := NewTable("ID", "NAME", "KIND", "DURATION", "CLIPS").AlignRight(3, 4)
	for _, m := range catalog {
		t.Row(m.ID, TruncateString(m.Name, 40), strings.ToUpper(string(m.Kind)),
			tc(s, timecode.FromSeconds(m.Duration)), fmt.Sprint(used[m.ID]))
	}
	t.Flush()
	return nil
}
