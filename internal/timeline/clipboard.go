package timeline

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

// Selection is the clipboard: clip windows copied from a span of the
// timeline. Each clip's Start is its offset from the beginning of the span.
type Selection struct {
	Length timecode.Time
	Clips  []Clip
}

func (s Selection) clone() Selection {
	s.Clips = cloneClips(s.Clips)
	return s
}

// Tracks returns the ids of the tracks the selection was copied from, in
// first-seen order.
func (s Selection) Tracks() []string {
	var ids []string
	for _, c := range s.Clips {
		if !slices.Contains(ids, c.TrackID) {
			ids = append(ids, c.TrackID)
		}
	}
	return ids
}

// CopyClip stores a value copy of the clip. Later edits to the original do
// not affect what is pasted.
func (t *Timeline) CopyClip(id string) error {
	c, _, ok := t.findClip(id)
	if !ok {
		return t.reject("copy", fmt.Errorf("clip %s: %w", id, errors.ErrNotFound))
	}
	cp := c.clone()
	cp.Start = 0
	t.clipboard = &Selection{Length: c.Duration, Clips: []Clip{cp}}
	return nil
}

// HasClipboard reports whether anything has been copied.
func (t *Timeline) HasClipboard() bool {
	return t.clipboard != nil
}

// Clipboard returns a copy of the current selection.
func (t *Timeline) Clipboard() (Selection, bool) {
	if t.clipboard == nil {
		return Selection{}, false
	}
	return t.clipboard.clone(), true
}

// PasteAt places the copied clips on their source tracks, starting at the
// given time. Nothing already on the timeline moves, so any overlap rejects
// the whole paste. The clipboard keeps its contents, so repeated pastes are
// allowed.
func (t *Timeline) PasteAt(at timecode.Time) ([]Clip, error) {
	from, pieces, err := t.pieces("paste", at)
	if err != nil {
		return nil, err
	}
	staged := make(map[string][]Clip)
	events, err := t.land("paste", staged, pieces)
	if err != nil {
		return nil, err
	}
	t.commit(staged)
	t.log.Info("pasted", zap.Int("clips", len(pieces)), zap.Stringer("at", from))
	t.emit(events...)
	return cloneClips(pieces), nil
}

// DuplicateClip places a copy right after the original, separated by the
// configured gap.
func (t *Timeline) DuplicateClip(id string) (Clip, error) {
	c, _, ok := t.findClip(id)
	if !ok {
		return Clip{}, t.reject("duplicate", fmt.Errorf("clip %s: %w", id, errors.ErrNotFound))
	}
	gap := t.settings.DuplicateGap
	if gap <= 0 {
		gap = t.frame()
	}
	return t.place("duplicate", c.TrackID, c.MediaID, c.End()+gap, c.In, c.Out(), c.Effects)
}

// pieces positions fresh copies of the clipboard clips at the snapped time
// and checks that every destination track can take them. It returns the
// snapped time too.
func (t *Timeline) pieces(op string, at timecode.Time) (timecode.Time, []Clip, error) {
	if t.clipboard == nil {
		return 0, nil, t.reject(op, fmt.Errorf("clipboard: %w", errors.ErrNotFound))
	}
	if at < 0 {
		return 0, nil, t.reject(op, fmt.Errorf("paste at %v: %w", at, errors.ErrBounds))
	}
	at = t.Snap(at)

	out := make([]Clip, 0, len(t.clipboard.Clips))
	for _, c := range t.clipboard.Clips {
		ti := t.trackIndex(c.TrackID)
		if ti < 0 {
			return 0, nil, t.reject(op, fmt.Errorf("track %s: %w", c.TrackID, errors.ErrNotFound))
		}
		if t.tracks[ti].Locked {
			return 0, nil, t.reject(op, fmt.Errorf("track %s: %w", c.TrackID, errors.ErrLockedTrack))
		}
		p := c.clone()
		p.ID = t.freshID("clip")
		p.Start = at + c.Start
		out = append(out, p)
	}
	return at, out, nil
}

// land inserts pieces into the staged track lists, copying committed lists
// on first use.
func (t *Timeline) land(op string, staged map[string][]Clip, pieces []Clip) ([]Event, error) {
	events := make([]Event, 0, len(pieces))
	for _, p := range pieces {
		clips, ok := staged[p.TrackID]
		if !ok {
			clips = t.clips[p.TrackID]
		}
		if !fits(clips, p.Start, p.End(), "") {
			return nil, t.reject(op, fmt.Errorf("[%v, %v) on %s: %w", p.Start, p.End(), p.TrackID, errors.ErrOverlap))
		}
		staged[p.TrackID] = insertSorted(clips, p)
		events = append(events, Event{Kind: ClipAdded, ID: p.ID})
	}
	return events, nil
}

// commit swaps staged track lists in.
func (t *Timeline) commit(staged map[string][]Clip) {
	for id, clips := range staged {
		t.clips[id] = clips
	}
}
