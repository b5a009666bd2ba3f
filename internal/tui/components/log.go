package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/tui/styles"
)

// LogEntry is one line of the edit log.
type LogEntry struct {
	Text string
	At   time.Time
	Err  bool
}

// Log displays recent edits, newest first
type Log struct{}

// NewLog creates a new Log component
func NewLog() *Log {
	return &Log{}
}

// Render renders the log panel
func (l *Log) Render(entries []LogEntry, width, height int) string {
	title := styles.PanelTitle("Edits", false)

	var content string
	if len(entries) == 0 {
		content = styles.Muted.Render("No edits yet")
	} else {
		content = l.renderEntries(entries, width-4, height-4)
	}

	return styles.Panel(false).Width(width).Height(height).Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (l *Log) renderEntries(entries []LogEntry, width, maxLines int) string {
	lines := make([]string, 0, maxLines)
	for i, e := range entries {
		if i >= maxLines {
			break
		}
		ago := formatTimeAgo(e.At)
		text := truncate(e.Text, max(width-len(ago)-1, 4))
		if e.Err {
			text = styles.ErrorText.Render(text)
		}
		lines = append(lines, text+" "+styles.Dim.Render(ago))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatTimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
