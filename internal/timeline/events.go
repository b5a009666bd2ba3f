package timeline

// EventKind identifies what changed in the model.
type EventKind int

const (
	ClipAdded EventKind = iota
	ClipRemoved
	ClipMutated
	MarkerAdded
	MarkerRemoved
	MarkerMutated
	TrackAdded
	TrackMutated
	TimelineLoaded
)

func (k EventKind) String() string {
	switch k {
	case ClipAdded:
		return "clip-added"
	case ClipRemoved:
		return "clip-removed"
	case ClipMutated:
		return "clip-mutated"
	case MarkerAdded:
		return "marker-added"
	case MarkerRemoved:
		return "marker-removed"
	case MarkerMutated:
		return "marker-mutated"
	case TrackAdded:
		return "track-added"
	case TrackMutated:
		return "track-mutated"
	case TimelineLoaded:
		return "timeline-loaded"
	}
	return "unknown"
}

// Event is a change notification emitted after a committed edit.
type Event struct {
	Kind EventKind
	ID   string
}

type listener struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. Listeners run synchronously, in subscription order.
func (t *Timeline) Subscribe(fn func(Event)) func() {
	t.nextSub++
	id := t.nextSub
	t.listeners = append(t.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range t.listeners {
			if l.id == id {
				t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

func (t *Timeline) emit(events ...Event) {
	if len(events) == 0 {
		return
	}
	ls := t.listeners
	for _, e := range events {
		for _, l := range ls {
			l.fn(e)
		}
	}
}
