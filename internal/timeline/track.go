package timeline

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
)

const defaultTrackHeight = 60

// AddTrack appends a new track of the given kind. Video tracks stack above
// existing ones and audio tracks below, so video always comes first.
func (t *Timeline) AddTrack(kind core.MediaKind) (core.Track, error) {
	var prefix string
	switch kind {
	case core.KindVideo:
		prefix = "v"
	case core.KindAudio:
		prefix = "a"
	default:
		return core.Track{}, t.reject("track", fmt.Errorf("track kind %q: %w", kind, errors.ErrKindMismatch))
	}

	n := 1
	for _, tr := range t.tracks {
		if tr.Kind == kind {
			n++
		}
	}
	id := fmt.Sprintf("%s%d", prefix, n)
	for t.idInUse(id) {
		n++
		id = fmt.Sprintf("%s%d", prefix, n)
	}

	tr := core.Track{
		ID:     id,
		Name:   fmt.Sprintf("%s%d", strings.ToUpper(prefix), n),
		Kind:   kind,
		Height: defaultTrackHeight,
	}
	if kind == core.KindVideo {
		t.tracks = slices.Insert(slices.Clone(t.tracks), 0, tr)
	} else {
		t.tracks = append(slices.Clone(t.tracks), tr)
	}

	t.log.Info("track added", zap.String("track", id))
	t.emit(Event{Kind: TrackAdded, ID: id})
	return tr, nil
}

// Tracks returns the tracks in display order.
func (t *Timeline) Tracks() []core.Track {
	return slices.Clone(t.tracks)
}

// Track returns the track with the given id.
func (t *Timeline) Track(id string) (core.Track, bool) {
	i := t.trackIndex(id)
	if i < 0 {
		return core.Track{}, false
	}
	return t.tracks[i], true
}

// ToggleLock flips the locked flag and returns the new value.
func (t *Timeline) ToggleLock(id string) (bool, error) {
	return t.toggle(id, func(tr *core.Track) *bool { return &tr.Locked })
}

// ToggleMute flips the muted flag and returns the new value.
func (t *Timeline) ToggleMute(id string) (bool, error) {
	return t.toggle(id, func(tr *core.Track) *bool { return &tr.Muted })
}

// ToggleSolo flips the solo flag and returns the new value.
func (t *Timeline) ToggleSolo(id string) (bool, error) {
	return t.toggle(id, func(tr *core.Track) *bool { return &tr.Solo })
}

func (t *Timeline) toggle(id string, field func(*core.Track) *bool) (bool, error) {
	i := t.trackIndex(id)
	if i < 0 {
		return false, t.reject("toggle", fmt.Errorf("track %s: %w", id, errors.ErrNotFound))
	}
	t.tracks = slices.Clone(t.tracks)
	f := field(&t.tracks[i])
	*f = !*f
	t.emit(Event{Kind: TrackMutated, ID: id})
	return *f, nil
}
