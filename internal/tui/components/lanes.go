package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/tui/styles"
)

// headerWidth is the width of the track name column.
const headerWidth = 12

// LaneClip is one clip as the lanes draw it. Times are in seconds.
type LaneClip struct {
	ID    string
	Label string
	Start float64
	End   float64
}

// Lane is one track and its clips in start order.
type Lane struct {
	Track core.Track
	Clips []LaneClip
}

// LanesView is the input to Lanes.Render.
type LanesView struct {
	Lanes    []Lane
	Markers  []core.Marker
	Playhead float64
	Zoom     float64
	Selected string
	Audible  []string
}

// Lanes draws the tracks as horizontal strips under a marker ruler.
type Lanes struct{}

// NewLanes creates a new Lanes component
func NewLanes() *Lanes {
	return &Lanes{}
}

// Window returns the visible time range for the given width. At zoom 1 a
// column is one second. The view pages so the playhead is always visible.
func Window(playhead, zoom float64, columns int) (start, perColumn float64) {
	if zoom <= 0 {
		zoom = 1
	}
	if columns < 1 {
		columns = 1
	}
	perColumn = 1 / zoom
	span := perColumn * float64(columns)
	start = math.Floor(playhead/span) * span
	return start, perColumn
}

// Render renders the ruler and one row per track
func (l *Lanes) Render(v LanesView, width, height int, focused bool) string {
	title := styles.PanelTitle("Timeline", focused)
	columns := width - 4 - headerWidth
	if columns < 10 {
		columns = 10
	}
	start, per := Window(v.Playhead, v.Zoom, columns)
	col := func(t float64) int {
		return int(math.Floor((t - start) / per))
	}

	audible := map[string]bool{}
	for _, id := range v.Audible {
		audible[id] = true
	}

	rows := []string{title, l.ruler(v, columns, col)}
	for _, lane := range v.Lanes {
		if len(rows) >= height-2 {
			break
		}
		rows = append(rows, l.lane(lane, v, columns, col, audible))
	}

	return styles.Panel(focused).Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (l *Lanes) ruler(v LanesView, columns int, col func(float64) int) string {
	cells := make([]string, columns)
	for i := range cells {
		cells[i] = styles.Dim.Render("·")
	}
	for _, m := range v.Markers {
		if c := col(m.Time); c >= 0 && c < columns {
			cells[c] = lipgloss.NewStyle().Foreground(styles.MarkerColor(m.Color)).Render("◆")
		}
	}
	if c := col(v.Playhead); c >= 0 && c < columns {
		cells[c] = lipgloss.NewStyle().Foreground(styles.Playhead).Render("▼")
	}
	return strings.Repeat(" ", headerWidth) + strings.Join(cells, "")
}

func (l *Lanes) lane(lane Lane, v LanesView, columns int, col func(float64) int, audible map[string]bool) string {
	tr := lane.Track
	flags := ""
	if tr.Locked {
		flags += "L"
	}
	if tr.Muted {
		flags += "M"
	}
	if tr.Solo {
		flags += "S"
	}
	header := lipgloss.NewStyle().Width(headerWidth).Render(truncate(tr.Name+" "+flags, headerWidth-1))
	if tr.Kind == core.KindAudio && !audible[tr.ID] {
		header = styles.Dim.Width(headerWidth).Render(truncate(tr.Name+" "+flags, headerWidth-1))
	}

	// owner[i] is the index of the clip drawn in column i, or -1.
	owner := make([]int, columns)
	for i := range owner {
		owner[i] = -1
	}
	for ci, c := range lane.Clips {
		from, to := col(c.Start), col(c.End)
		if to <= from {
			to = from + 1
		}
		for i := max(from, 0); i < min(to, columns); i++ {
			owner[i] = ci
		}
	}

	var b strings.Builder
	for i := 0; i < columns; {
		j := i
		for j < columns && owner[j] == owner[i] {
			j++
		}
		n := j - i
		if owner[i] < 0 {
			b.WriteString(styles.Dim.Render(strings.Repeat(" ", n)))
		} else {
			c := lane.Clips[owner[i]]
			text := truncate(c.Label, n)
			text += strings.Repeat(" ", n-len([]rune(text)))
			style := styles.ClipStyle(tr.Kind, c.ID == v.Selected, tr.Locked || tr.Muted)
			b.WriteString(style.Render(text))
		}
		i = j
	}
	return header + b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
