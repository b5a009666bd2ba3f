package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
)

// Colors - a pleasant color palette
var (
	// Primary colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Accent    = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
	Info    = lipgloss.Color("#3B82F6") // Blue

	// Neutral colors
	Background = lipgloss.Color("#1F2937") // Dark gray
	Surface    = lipgloss.Color("#374151") // Medium gray
	Border     = lipgloss.Color("#4B5563") // Light gray
	Text       = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	TextMuted  = lipgloss.Color("#9CA3AF") // Gray
	TextDim    = lipgloss.Color("#6B7280") // Darker gray

	// Lanes
	VideoClip = lipgloss.Color("#2563EB")
	AudioClip = lipgloss.Color("#059669")
	Playhead  = lipgloss.Color("#EF4444")
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextMuted)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Highlight = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Playing = lipgloss.NewStyle().
		Foreground(Success)

	Paused = lipgloss.NewStyle().
		Foreground(Warning)

	ErrorText = lipgloss.NewStyle().
		Foreground(Error)
)

// Border styles
var (
	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)
)

// SetTheme forces the light or dark variant of adaptive colours. "auto"
// leaves detection to lipgloss.
func SetTheme(theme string) {
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// ProgressBar creates a progress bar string
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))

	filledStyle := lipgloss.NewStyle().Foreground(Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(Border)

	return filledStyle.Render(strings.Repeat("━", filled)) +
		emptyStyle.Render(strings.Repeat("─", width-filled))
}

// StatusIcon returns an icon for playback status
func StatusIcon(playing bool) string {
	if playing {
		return Playing.Render("▶")
	}
	return Paused.Render("⏸")
}

// ClipStyle returns the block style for a clip on a track of kind.
func ClipStyle(kind core.MediaKind, selected, dimmed bool) lipgloss.Style {
	bg := VideoClip
	if kind == core.KindAudio {
		bg = AudioClip
	}
	if selected {
		bg = Accent
	}
	s := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("#F9FAFB"))
	if dimmed && !selected {
		s = s.Background(Surface).Foreground(TextMuted)
	}
	return s
}

// MarkerColor maps a marker colour name to a terminal colour.
func MarkerColor(name string) lipgloss.TerminalColor {
	switch name {
	case "red":
		return Error
	case "blue":
		return Info
	case "green":
		return Success
	case "yellow":
		return lipgloss.Color("#FACC15")
	case "purple":
		return Primary
	case "orange":
		return Accent
	}
	return TextMuted
}

// TrackIcon returns an icon for a track kind.
func TrackIcon(kind core.MediaKind) string {
	if kind == core.KindAudio {
		return "🔊"
	}
	return "🎞"
}
