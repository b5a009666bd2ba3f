package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/tui/styles"
)

// Bin displays the media pool
type Bin struct{}

// NewBin creates a new Bin component
func NewBin() *Bin {
	return &Bin{}
}

// Render renders the media pool panel. used counts clips per media id.
func (b *Bin) Render(items core.Catalog, used map[string]int, format func(float64) string, width, height int) string {
	title := styles.PanelTitle("Media", false)

	var content string
	if len(items) == 0 {
		content = styles.Muted.Render("Media pool is empty")
	} else {
		content = b.renderItems(items, used, format, width-4, height-4)
	}

	return styles.Panel(false).Width(width).Height(height).Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (b *Bin) renderItems(items core.Catalog, used map[string]int, format func(float64) string, width, maxLines int) string {
	lines := make([]string, 0, len(items))
	for i, it := range items {
		if i >= maxLines {
			lines = append(lines, styles.Dim.Render(fmt.Sprintf("... and %d more", len(items)-i)))
			break
		}
		count := ""
		if n := used[it.ID]; n > 0 {
			count = styles.Playing.Render(fmt.Sprintf(" ×%d", n))
		}
		dur := styles.Dim.Render(format(it.Duration))
		name := truncate(it.Name, max(width-len(format(it.Duration))-6, 4))
		lines = append(lines, fmt.Sprintf("%s %s %s%s", styles.TrackIcon(it.Kind), name, dur, count))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
