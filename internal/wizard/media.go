package wizard

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

// MediaModel is the bubbletea model for the media picker. Typing filters
// the pool by name or id.
type MediaModel struct {
	items    []core.MediaItem
	filter   textinput.Model
	visible  []int
	cursor   int
	selected *core.MediaItem
	width    int
	height   int
}

// Styles for media picker
var (
	mediaTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	mediaItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	mediaSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	mediaVideoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	mediaAudioStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	mediaDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// NewMediaModel creates a picker over items. If kind is set, only items of
// that kind are offered.
func NewMediaModel(items []core.MediaItem, kind core.MediaKind) MediaModel {
	var offered []core.MediaItem
	for _, it := range items {
		if kind == "" || it.Kind == kind {
			offered = append(offered, it)
		}
	}

	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.Focus()

	m := MediaModel{
		items:  offered,
		filter: ti,
		width:  80,
		height: 20,
	}
	m.applyFilter()
	return m
}

func (m *MediaModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = nil
	for i, it := range m.items {
		if q == "" || strings.Contains(strings.ToLower(it.Name), q) || strings.Contains(strings.ToLower(it.ID), q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

// Init initializes the model.
func (m MediaModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m MediaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if m.cursor < len(m.visible) {
				item := m.items[m.visible[m.cursor]]
				m.selected = &item
				return m, tea.Quit
			}
			return m, nil

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// View renders the model.
func (m MediaModel) View() string {
	var b strings.Builder

	b.WriteString(mediaTitleStyle.Render("Select Media"))
	b.WriteString("\n\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(mediaDimStyle.Render("No matching media"))
		b.WriteString("\n")
	}
	for i, idx := range m.visible {
		it := m.items[idx]
		var line strings.Builder
		if it.Kind == core.KindVideo {
			line.WriteString(mediaVideoStyle.Render("V "))
		} else {
			line.WriteString(mediaAudioStyle.Render("A "))
		}
		line.WriteString(it.Name)
		line.WriteString(mediaDimStyle.Render(" (" + it.ID + ", " +
			timecode.Format(timecode.FromSeconds(it.Duration), timecode.DefaultRate) + ")"))

		if i == m.cursor {
			b.WriteString(mediaSelectedStyle.Render("▸ " + line.String()))
		} else {
			b.WriteString(mediaItemStyle.Render("  " + line.String()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mediaDimStyle.Render("type to filter • ↑/↓ navigate • enter select • esc cancel"))

	return b.String()
}

// Current returns the item under the cursor, or nil when the filter
// matches nothing.
func (m MediaModel) Current() *core.MediaItem {
	if m.cursor >= len(m.visible) {
		return nil
	}
	item := m.items[m.visible[m.cursor]]
	return &item
}

// Selected returns the selected item, or nil if none.
func (m MediaModel) Selected() *core.MediaItem {
	return m.selected
}

// RunMediaPicker runs the media picker and returns the selected item.
func RunMediaPicker(items []core.MediaItem, kind core.MediaKind) (*core.MediaItem, error) {
	model := NewMediaModel(items, kind)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(MediaModel).Selected(), nil
}
