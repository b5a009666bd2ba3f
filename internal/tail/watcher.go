package tail

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/project"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timeline"
)

// EventType represents the kind of edit observed.
type EventType int

const (
	EventClipAdded EventType = iota
	EventClipRemoved
	EventClipChanged
	EventMarkerAdded
	EventMarkerRemoved
	EventMarkerChanged
	EventTrackAdded
	EventTrackChanged
	EventReloaded
)

func (t EventType) String() string {
	return eventTypeName(t)
}

// MarshalText encodes the type by name.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(eventTypeName(t)), nil
}

// Event is one edit, either seen live from a timeline or reconstructed by
// comparing two saved snapshots.
type Event struct {
	Type      EventType    `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	ID        string       `json:"id,omitempty"`
	Clip      *core.Clip   `json:"clip,omitempty"`
	Marker    *core.Marker `json:"marker,omitempty"`
	Track     *core.Track  `json:"track,omitempty"`
}

// FromTimeline converts a live timeline notification. The referenced
// record is looked up in snap when present.
func FromTimeline(e timeline.Event, snap core.Snapshot) Event {
	out := Event{ID: e.ID, Timestamp: time.Now()}
	switch e.Kind {
	case timeline.ClipAdded:
		out.Type = EventClipAdded
	case timeline.ClipRemoved:
		out.Type = EventClipRemoved
	case timeline.ClipMutated:
		out.Type = EventClipChanged
	case timeline.MarkerAdded:
		out.Type = EventMarkerAdded
	case timeline.MarkerRemoved:
		out.Type = EventMarkerRemoved
	case timeline.MarkerMutated:
		out.Type = EventMarkerChanged
	case timeline.TrackAdded:
		out.Type = EventTrackAdded
	case timeline.TrackMutated:
		out.Type = EventTrackChanged
	default:
		out.Type = EventReloaded
	}
	out.attach(snap)
	return out
}

func (e *Event) attach(snap core.Snapshot) {
	for i := range snap.Clips {
		if snap.Clips[i].ID == e.ID {
			e.Clip = &snap.Clips[i]
			return
		}
	}
	for i := range snap.Markers {
		if snap.Markers[i].ID == e.ID {
			e.Marker = &snap.Markers[i]
			return
		}
	}
	for i := range snap.Tracks {
		if snap.Tracks[i].ID == e.ID {
			e.Track = &snap.Tracks[i]
			return
		}
	}
}

// Watcher follows a project file and emits the edits made to it by other
// processes.
type Watcher struct {
	store  *project.Store
	events chan Event
	done   chan struct{}
	log    *zap.Logger
}

// NewWatcher creates a watcher for the project behind store.
func NewWatcher(store *project.Store, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		store:  store,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
		log:    log,
	}
}

// Events returns the channel of edit events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start follows the project until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	defer close(w.events)

	prev, err := w.store.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	changes, err := w.store.Watch(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case _, ok := <-changes:
			if !ok {
				return ctx.Err()
			}
			curr, err := w.store.Load()
			if err != nil {
				// Partially written files are retried on the next event.
				w.log.Debug("reload failed", zap.Error(err))
				continue
			}

			for _, e := range Diff(prev.Timeline, curr.Timeline) {
				select {
				case w.events <- e:
				default:
					// Drop event if channel is full
				}
			}
			prev = curr
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
}

// Diff compares two snapshots and returns the edits that turn prev into
// curr: removals first, then additions, then changes.
func Diff(prev, curr core.Snapshot) []Event {
	now := time.Now()
	var events []Event

	prevClips := indexClips(prev.Clips)
	currClips := indexClips(curr.Clips)
	for _, c := range prev.Clips {
		if _, ok := currClips[c.ID]; !ok {
			events = append(events, Event{Type: EventClipRemoved, Timestamp: now, ID: c.ID, Clip: &c})
		}
	}
	for _, c := range curr.Clips {
		old, ok := prevClips[c.ID]
		switch {
		case !ok:
			events = append(events, Event{Type: EventClipAdded, Timestamp: now, ID: c.ID, Clip: &c})
		case clipChanged(old, c):
			events = append(events, Event{Type: EventClipChanged, Timestamp: now, ID: c.ID, Clip: &c})
		}
	}

	prevMarkers := make(map[string]core.Marker, len(prev.Markers))
	for _, m := range prev.Markers {
		prevMarkers[m.ID] = m
	}
	currMarkers := make(map[string]bool, len(curr.Markers))
	for _, m := range curr.Markers {
		currMarkers[m.ID] = true
	}
	for _, m := range prev.Markers {
		if !currMarkers[m.ID] {
			events = append(events, Event{Type: EventMarkerRemoved, Timestamp: now, ID: m.ID, Marker: &m})
		}
	}
	for _, m := range curr.Markers {
		old, ok := prevMarkers[m.ID]
		switch {
		case !ok:
			events = append(events, Event{Type: EventMarkerAdded, Timestamp: now, ID: m.ID, Marker: &m})
		case old != m:
			events = append(events, Event{Type: EventMarkerChanged, Timestamp: now, ID: m.ID, Marker: &m})
		}
	}

	prevTracks := make(map[string]core.Track, len(prev.Tracks))
	for _, t := range prev.Tracks {
		prevTracks[t.ID] = t
	}
	for _, t := range curr.Tracks {
		old, ok := prevTracks[t.ID]
		switch {
		case !ok:
			events = append(events, Event{Type: EventTrackAdded, Timestamp: now, ID: t.ID, Track: &t})
		case old != t:
			events = append(events, Event{Type: EventTrackChanged, Timestamp: now, ID: t.ID, Track: &t})
		}
	}

	return events
}

func indexClips(clips []core.Clip) map[string]core.Clip {
	m := make(map[string]core.Clip, len(clips))
	for _, c := range clips {
		m[c.ID] = c
	}
	return m
}

func clipChanged(a, b core.Clip) bool {
	if a.TrackID != b.TrackID || a.MediaID != b.MediaID ||
		a.Start != b.Start || a.Duration != b.Duration || a.In != b.In || a.Out != b.Out {
		return true
	}
	if len(a.Effects) != len(b.Effects) {
		return true
	}
	for i := range a.Effects {
		if a.Effects[i] != b.Effects[i] {
			return true
		}
	}
	return false
}
