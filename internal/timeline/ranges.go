package timeline

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

// Range is the half-open span [In, Out) between an in and an out mark.
type Range struct {
	In  timecode.Time
	Out timecode.Time
}

// Duration is the length of the span.
func (r Range) Duration() timecode.Time {
	return r.Out - r.In
}

func (r Range) String() string {
	return fmt.Sprintf("[%v, %v)", r.In, r.Out)
}

func (t *Timeline) snapRange(op string, r Range) (Range, error) {
	if r.In < 0 || r.Out <= r.In {
		return Range{}, t.reject(op, fmt.Errorf("range %v: %w", r, errors.ErrBounds))
	}
	s := Range{In: t.Snap(r.In), Out: t.Snap(r.Out)}
	if s.Out <= s.In {
		return Range{}, t.reject(op, fmt.Errorf("range %v is shorter than a frame: %w", r, errors.ErrBounds))
	}
	return s, nil
}

// rangeTracks resolves track ids. No ids means every track.
func (t *Timeline) rangeTracks(op string, ids []string) ([]core.Track, error) {
	if len(ids) == 0 {
		return slices.Clone(t.tracks), nil
	}
	out := make([]core.Track, 0, len(ids))
	for _, id := range ids {
		i := t.trackIndex(id)
		if i < 0 {
			return nil, t.reject(op, fmt.Errorf("track %s: %w", id, errors.ErrNotFound))
		}
		out = append(out, t.tracks[i])
	}
	return out, nil
}

// CopyRange puts the parts of every clip inside r on the clipboard. Clips
// that straddle an edge are cut to the range. No track ids means every
// track; locked tracks can be copied from.
func (t *Timeline) CopyRange(r Range, trackIDs ...string) (Selection, error) {
	r, err := t.snapRange("copy", r)
	if err != nil {
		return Selection{}, err
	}
	tracks, err := t.rangeTracks("copy", trackIDs)
	if err != nil {
		return Selection{}, err
	}

	sel := Selection{Length: r.Duration()}
	for _, tr := range tracks {
		for _, c := range t.clips[tr.ID] {
			if c.End() <= r.In || c.Start >= r.Out {
				continue
			}
			from, to := max(c.Start, r.In), min(c.End(), r.Out)
			p := c.clone()
			p.In += from - c.Start
			p.Start = from - r.In
			p.Duration = to - from
			sel.Clips = append(sel.Clips, p)
		}
	}
	if len(sel.Clips) == 0 {
		return Selection{}, t.reject("copy", fmt.Errorf("no clips in %v: %w", r, errors.ErrNotFound))
	}

	t.clipboard = &sel
	t.log.Info("range copied", zap.Stringer("range", r), zap.Int("clips", len(sel.Clips)))
	return sel.clone(), nil
}

// PasteOverwrite pastes the clipboard at the given time, first clearing the
// span it will cover on each destination track. Clips that straddle the
// span are trimmed back to it; nothing moves in time.
func (t *Timeline) PasteOverwrite(at timecode.Time) ([]Clip, error) {
	from, pieces, err := t.pieces("overwrite", at)
	if err != nil {
		return nil, err
	}
	to := from + t.clipboard.Length

	staged := make(map[string][]Clip)
	var events []Event
	for _, id := range t.clipboard.Tracks() {
		next, ev := t.clearSpan(t.clips[id], from, to)
		staged[id] = next
		events = append(events, ev...)
	}
	added, err := t.land("overwrite", staged, pieces)
	if err != nil {
		return nil, err
	}

	t.commit(staged)
	t.log.Info("pasted over", zap.Int("clips", len(pieces)), zap.Stringer("at", from))
	t.emit(dedupe(append(events, added...))...)
	return cloneClips(pieces), nil
}

// PasteInsert pastes the clipboard at the given time and pushes everything
// at or after it later by the clipboard length, on every unlocked track so
// tracks stay in sync. A clip under the insert point is cut in two.
func (t *Timeline) PasteInsert(at timecode.Time) ([]Clip, error) {
	from, pieces, err := t.pieces("insert", at)
	if err != nil {
		return nil, err
	}
	length := t.clipboard.Length

	staged := make(map[string][]Clip)
	var events []Event
	for _, tr := range t.tracks {
		if tr.Locked {
			continue
		}
		// An empty span cuts the clip under from without removing anything.
		next, ev := t.clearSpan(t.clips[tr.ID], from, from)
		ev = append(ev, shiftFrom(next, from, length)...)
		staged[tr.ID] = next
		events = append(events, ev...)
	}
	added, err := t.land("insert", staged, pieces)
	if err != nil {
		return nil, err
	}

	t.commit(staged)
	t.log.Info("pasted insert", zap.Int("clips", len(pieces)), zap.Stringer("at", from), zap.Stringer("length", length))
	t.emit(dedupe(append(events, added...))...)
	return cloneClips(pieces), nil
}

// RippleDeleteRange removes r from the given tracks and closes the gap. No
// track ids means every unlocked track; naming a locked track is an error.
// Clips that straddle an edge are trimmed back to it.
func (t *Timeline) RippleDeleteRange(r Range, trackIDs ...string) error {
	r, err := t.snapRange("ripple-delete", r)
	if err != nil {
		return err
	}
	tracks, err := t.rangeTracks("ripple-delete", trackIDs)
	if err != nil {
		return err
	}

	staged := make(map[string][]Clip)
	var events []Event
	for _, tr := range tracks {
		if tr.Locked {
			if len(trackIDs) == 0 {
				continue
			}
			return t.reject("ripple-delete", fmt.Errorf("track %s: %w", tr.ID, errors.ErrLockedTrack))
		}
		next, ev := t.clearSpan(t.clips[tr.ID], r.In, r.Out)
		ev = append(ev, shiftFrom(next, r.Out, -r.Duration())...)
		staged[tr.ID] = next
		events = append(events, ev...)
	}

	t.commit(staged)
	t.log.Info("range ripple deleted", zap.Stringer("range", r), zap.Int("tracks", len(staged)))
	t.emit(dedupe(events)...)
	return nil
}

// clearSpan returns a copy of clips with [from, to) cut out. Clips that
// straddle an edge are trimmed; a clip covering the whole span keeps its
// head and gets a fresh id for its tail. An empty span only cuts.
func (t *Timeline) clearSpan(clips []Clip, from, to timecode.Time) ([]Clip, []Event) {
	next := make([]Clip, 0, len(clips)+1)
	var events []Event
	for _, c := range clips {
		switch {
		case c.End() <= from || c.Start >= to:
			next = append(next, c.clone())
		case c.Start >= from && c.End() <= to:
			events = append(events, Event{Kind: ClipRemoved, ID: c.ID})
		case c.Start < from && c.End() > to:
			head := c.clone()
			head.Duration = from - c.Start
			cut := to - c.Start
			tail := c.clone()
			tail.ID = t.freshID("clip")
			tail.Start = to
			tail.In = c.In + cut
			tail.Duration = c.Duration - cut
			next = append(next, head, tail)
			events = append(events, Event{Kind: ClipMutated, ID: c.ID}, Event{Kind: ClipAdded, ID: tail.ID})
		case c.Start < from:
			c = c.clone()
			c.Duration = from - c.Start
			next = append(next, c)
			events = append(events, Event{Kind: ClipMutated, ID: c.ID})
		default:
			cut := to - c.Start
			c = c.clone()
			c.Start = to
			c.In += cut
			c.Duration -= cut
			next = append(next, c)
			events = append(events, Event{Kind: ClipMutated, ID: c.ID})
		}
	}
	return next, events
}

// shiftFrom moves every clip starting at or after from by delta, in place.
func shiftFrom(clips []Clip, from, delta timecode.Time) []Event {
	var events []Event
	for i := range clips {
		if clips[i].Start >= from {
			clips[i].Start += delta
			events = append(events, Event{Kind: ClipMutated, ID: clips[i].ID})
		}
	}
	return events
}

// dedupe drops repeated events, keeping the first of each. A clip added in
// the same batch is not also reported as changed.
func dedupe(events []Event) []Event {
	seen := make(map[Event]bool, len(events))
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if seen[e] || (e.Kind == ClipMutated && seen[Event{Kind: ClipAdded, ID: e.ID}]) {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
