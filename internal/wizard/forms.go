package wizard

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

// RateOptions lists the frame rates offered when creating a project.
var RateOptions = []string{"23.976", "24", "25", "29.97", "30", "50", "59.94", "60"}

// ProjectAnswers holds the values collected by the new-project form.
type ProjectAnswers struct {
	Name      string
	FrameRate string
	Snap      bool
}

// AskProject asks for the settings of a new project. defaults pre-fill the
// form.
func AskProject(defaults ProjectAnswers) (ProjectAnswers, error) {
	a := defaults
	var options []huh.Option[string]
	for _, r := range RateOptions {
		options = append(options, huh.NewOption(r+" fps", r))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&a.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Frame rate").
				Description("Fixed for the life of the project").
				Options(options...).
				Value(&a.FrameRate),
			huh.NewConfirm().
				Title("Snap edits to frames?").
				Value(&a.Snap),
		),
	)
	if err := form.Run(); err != nil {
		return ProjectAnswers{}, fmt.Errorf("project setup cancelled: %w", err)
	}
	return a, nil
}

// AskMedia asks for the fields of a media pool entry.
func AskMedia(item core.MediaItem) (core.MediaItem, error) {
	kind := string(item.Kind)
	if kind == "" {
		kind = string(core.KindVideo)
	}
	duration := ""
	if item.Duration > 0 {
		duration = strconv.FormatFloat(item.Duration, 'f', -1, 64)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Media name").
				Value(&item.Name),
			huh.NewSelect[string]().
				Title("Kind").
				Options(
					huh.NewOption("Video", string(core.KindVideo)),
					huh.NewOption("Audio", string(core.KindAudio)),
				).
				Value(&kind),
			huh.NewInput().
				Title("Duration").
				Description("Seconds (12.5) or HH:MM:SS:FF at 24 fps").
				Value(&duration).
				Validate(func(s string) error {
					_, err := timecode.ParseAny(s, timecode.DefaultRate)
					return err
				}),
		),
	)
	if err := form.Run(); err != nil {
		return core.MediaItem{}, fmt.Errorf("media entry cancelled: %w", err)
	}

	d, err := timecode.ParseAny(duration, timecode.DefaultRate)
	if err != nil {
		return core.MediaItem{}, err
	}
	item.Kind = core.MediaKind(kind)
	item.Duration = d.Seconds()
	return item, nil
}
