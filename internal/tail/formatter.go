package tail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	rate          timecode.Rate
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithRate renders clip and marker times as timecode at r.
func WithRate(r timecode.Rate) FormatterOption {
	return func(f *Formatter) {
		if r.Validate() == nil {
			f.rate = r
		}
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
		rate:          timecode.DefaultRate,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

// formatLine formats an event as a simple line.
func (f *Formatter) formatLine(e Event) string {
	var parts []string

	// Timestamp
	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}

	// Emoji
	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}

	// Event description
	parts = append(parts, f.eventDescription(e))

	return strings.Join(parts, " ")
}

// formatTemplate formats an event using a custom template.
func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
		ID:        e.ID,
	}

	if e.Clip != nil {
		data.Track = e.Clip.TrackID
		data.Media = e.Clip.MediaID
		data.Start = f.tc(e.Clip.Start)
		data.End = f.tc(e.Clip.End())
	}
	if e.Marker != nil {
		data.Label = e.Marker.Label
		data.Start = f.tc(e.Marker.Time)
	}
	if e.Track != nil {
		data.Track = e.Track.ID
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	ID        string
	Track     string
	Media     string
	Start     string
	End       string
	Label     string
}

func (f *Formatter) tc(seconds float64) string {
	return timecode.Format(timecode.FromSeconds(seconds), f.rate)
}

// eventDescription returns a human-readable description of the event.
func (f *Formatter) eventDescription(e Event) string {
	switch e.Type {
	case EventClipAdded:
		if e.Clip != nil {
			return fmt.Sprintf("Placed %s on %s at %s", e.ID, e.Clip.TrackID, f.tc(e.Clip.Start))
		}
		return "Clip added: " + e.ID

	case EventClipRemoved:
		return "Removed " + e.ID

	case EventClipChanged:
		if e.Clip != nil {
			return fmt.Sprintf("Changed %s: %s on %s, %s - %s", e.ID, e.Clip.MediaID, e.Clip.TrackID,
				f.tc(e.Clip.Start), f.tc(e.Clip.End()))
		}
		return "Clip changed: " + e.ID

	case EventMarkerAdded:
		if e.Marker != nil {
			return fmt.Sprintf("Marker %q at %s", e.Marker.Label, f.tc(e.Marker.Time))
		}
		return "Marker added: " + e.ID

	case EventMarkerRemoved:
		return "Marker removed: " + e.ID

	case EventMarkerChanged:
		if e.Marker != nil {
			return fmt.Sprintf("Marker %q is now %s", e.Marker.Label, e.Marker.Type)
		}
		return "Marker changed: " + e.ID

	case EventTrackAdded:
		return "Track added: " + e.ID

	case EventTrackChanged:
		if e.Track != nil {
			var flags []string
			if e.Track.Locked {
				flags = append(flags, "locked")
			}
			if e.Track.Muted {
				flags = append(flags, "muted")
			}
			if e.Track.Solo {
				flags = append(flags, "solo")
			}
			if len(flags) == 0 {
				flags = append(flags, "normal")
			}
			return fmt.Sprintf("Track %s: %s", e.ID, strings.Join(flags, ", "))
		}
		return "Track changed: " + e.ID

	case EventReloaded:
		return "Timeline reloaded"

	default:
		return "Unknown event"
	}
}

// eventEmoji returns an emoji for the event type.
func eventEmoji(t EventType) string {
	switch t {
	case EventClipAdded:
		return "🎬"
	case EventClipRemoved:
		return "🗑️"
	case EventClipChanged:
		return "✂️"
	case EventMarkerAdded, EventMarkerChanged:
		return "📍"
	case EventMarkerRemoved:
		return "❌"
	case EventTrackAdded, EventTrackChanged:
		return "🎚️"
	case EventReloaded:
		return "🔄"
	default:
		return "❓"
	}
}

// eventTypeName returns the name of the event type.
func eventTypeName(t EventType) string {
	switch t {
	case EventClipAdded:
		return "clip_added"
	case EventClipRemoved:
		return "clip_removed"
	case EventClipChanged:
		return "clip_changed"
	case EventMarkerAdded:
		return "marker_added"
	case EventMarkerRemoved:
		return "marker_removed"
	case EventMarkerChanged:
		return "marker_changed"
	case EventTrackAdded:
		return "track_added"
	case EventTrackChanged:
		return "track_changed"
	case EventReloaded:
		return "reloaded"
	default:
		return "unknown"
	}
}
