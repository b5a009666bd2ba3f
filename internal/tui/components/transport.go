package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/tui/styles"
)

// TransportInfo is what the transport bar shows.
type TransportInfo struct {
	State    core.TransportState
	Position string
	Length   string
	Duration float64
	Speed    string
	Snap     bool
	Ripple   bool
	Dirty    bool
	// Marks is the in/out range, empty when no mark is set.
	Marks    string
}

// TransportBar displays the playhead, speed and edit modes.
type TransportBar struct{}

// NewTransportBar creates a new TransportBar component
func NewTransportBar() *TransportBar {
	return &TransportBar{}
}

// Render renders the transport bar
func (t *TransportBar) Render(info TransportInfo, title string, width int) string {
	icon := styles.StatusIcon(info.State.IsPlaying)
	name := styles.Title.Render(title)
	if info.Dirty {
		name += styles.Paused.Render(" *")
	}

	// Progress bar
	progressWidth := width - 2*len(info.Position) - 8
	if progressWidth < 10 {
		progressWidth = 10
	}
	bar := styles.ProgressBar(info.State.ProgressPercent(info.Duration), progressWidth)
	progress := fmt.Sprintf("%s %s %s", info.Position, bar, styles.Muted.Render(info.Length))

	modes := fmt.Sprintf("%s  zoom %.2fx  %s  %s",
		styles.Label.Render("speed ")+info.Speed,
		info.State.Zoom,
		flag("snap", info.Snap),
		flag("ripple", info.Ripple))
	if info.Marks != "" {
		modes += "  " + styles.Label.Render("range ") + info.Marks
	}

	return styles.Panel(false).Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+name,
		progress,
		modes,
	))
}

func flag(name string, on bool) string {
	if on {
		return styles.Highlight.Render(name)
	}
	return styles.Dim.Render(name)
}
