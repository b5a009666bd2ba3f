package timeline

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

// PlaceClip drops the whole of a media item onto a track at start.
func (t *Timeline) PlaceClip(trackID, mediaID string, start timecode.Time) (Clip, error) {
	_, dur := t.media(mediaID)
	if dur == 0 {
		return Clip{}, t.reject("place", fmt.Errorf("media %s: %w", mediaID, errors.ErrNotFound))
	}
	return t.place("place", trackID, mediaID, start, 0, dur, nil)
}

// PlaceClipWindow drops the [in, out) window of a media item onto a track.
func (t *Timeline) PlaceClipWindow(trackID, mediaID string, start, in, out timecode.Time) (Clip, error) {
	return t.place("place", trackID, mediaID, start, in, out, nil)
}

func (t *Timeline) place(op, trackID, mediaID string, start, in, out timecode.Time, effects []string) (Clip, error) {
	ti := t.trackIndex(trackID)
	if ti < 0 {
		return Clip{}, t.reject(op, fmt.Errorf("track %s: %w", trackID, errors.ErrNotFound))
	}
	tr := t.tracks[ti]
	if tr.Locked {
		return Clip{}, t.reject(op, fmt.Errorf("track %s: %w", trackID, errors.ErrLockedTrack))
	}
	m, mediaDur := t.media(mediaID)
	if m == nil {
		return Clip{}, t.reject(op, fmt.Errorf("media %s: %w", mediaID, errors.ErrNotFound))
	}
	if m.Kind != tr.Kind {
		return Clip{}, t.reject(op, fmt.Errorf("%s media on %s track %s: %w", m.Kind, tr.Kind, trackID, errors.ErrKindMismatch))
	}
	if start < 0 {
		return Clip{}, t.reject(op, fmt.Errorf("start %v: %w", start, errors.ErrBounds))
	}
	if in < 0 || out <= in || out > mediaDur {
		return Clip{}, t.reject(op, fmt.Errorf("source window [%v, %v) of %v media: %w", in, out, mediaDur, errors.ErrBounds))
	}

	c := Clip{
		ID:       t.freshID("clip"),
		TrackID:  trackID,
		MediaID:  mediaID,
		Start:    t.Snap(start),
		Duration: out - in,
		In:       in,
		Effects:  slices.Clone(effects),
	}
	if !fits(t.clips[trackID], c.Start, c.End(), "") {
		return Clip{}, t.reject(op, fmt.Errorf("[%v, %v) on %s: %w", c.Start, c.End(), trackID, errors.ErrOverlap))
	}

	t.clips[trackID] = insertSorted(t.clips[trackID], c)
	t.log.Info("clip placed", zap.String("clip", c.ID), zap.String("track", trackID), zap.Stringer("start", c.Start))
	t.emit(Event{Kind: ClipAdded, ID: c.ID})
	return c.clone(), nil
}

// Split records one clip that was cut in two.
type Split struct {
	Original string
	Left     Clip
	Right    Clip
}

// SplitAt cuts every clip on an unlocked track that spans the snapped time.
// A time that falls on a clip boundary, or on no clip at all, splits
// nothing.
func (t *Timeline) SplitAt(at timecode.Time) []Split {
	return t.split(at, nil)
}

// SplitClips cuts only the named clips at the snapped time. Named clips
// that do not span it are left alone.
func (t *Timeline) SplitClips(at timecode.Time, ids ...string) ([]Split, error) {
	for _, id := range ids {
		c, _, ok := t.findClip(id)
		if !ok {
			return nil, t.reject("split", fmt.Errorf("clip %s: %w", id, errors.ErrNotFound))
		}
		if t.tracks[t.trackIndex(c.TrackID)].Locked {
			return nil, t.reject("split", fmt.Errorf("track %s: %w", c.TrackID, errors.ErrLockedTrack))
		}
	}
	return t.split(at, func(c Clip) bool { return slices.Contains(ids, c.ID) }), nil
}

// split cuts clips spanning at on unlocked tracks. A nil only cuts every
// such clip.
func (t *Timeline) split(at timecode.Time, only func(Clip) bool) []Split {
	at = t.Snap(at)

	var splits []Split
	staged := make(map[string][]Clip)
	for _, tr := range t.tracks {
		if tr.Locked {
			continue
		}
		clips := t.clips[tr.ID]
		var next []Clip
		for i, c := range clips {
			if !(c.Start < at && at < c.End()) || (only != nil && !only(c)) {
				continue
			}
			if next == nil {
				next = make([]Clip, 0, len(clips)+1)
				next = append(next, clips[:i]...)
			}
			offset := at - c.Start
			left := c.clone()
			left.ID = t.freshID("clip")
			left.Duration = offset
			right := c.clone()
			right.ID = t.freshID("clip")
			right.Start = at
			right.Duration = c.Duration - offset
			right.In = c.In + offset

			splits = append(splits, Split{Original: c.ID, Left: left, Right: right})
			next = append(next, left, right)
			next = append(next, clips[i+1:]...)
			break // clips on one track are disjoint, so at most one spans at
		}
		if next != nil {
			staged[tr.ID] = next
		}
	}

	if len(splits) == 0 {
		return nil
	}
	for id, clips := range staged {
		t.clips[id] = clips
	}

	events := make([]Event, 0, len(splits)*3)
	for _, s := range splits {
		t.log.Info("clip split", zap.String("clip", s.Original), zap.Stringer("at", at))
		events = append(events,
			Event{Kind: ClipRemoved, ID: s.Original},
			Event{Kind: ClipAdded, ID: s.Left.ID},
			Event{Kind: ClipAdded, ID: s.Right.ID},
		)
	}
	t.emit(events...)
	return splits
}

// DeleteClip removes a clip. With ripple, later clips on the same track move
// left by the deleted duration to close the gap; other tracks are untouched.
func (t *Timeline) DeleteClip(id string, ripple bool) (Clip, error) {
	c, idx, ok := t.findClip(id)
	if !ok {
		return Clip{}, t.reject("delete", fmt.Errorf("clip %s: %w", id, errors.ErrNotFound))
	}
	if t.tracks[t.trackIndex(c.TrackID)].Locked {
		return Clip{}, t.reject("delete", fmt.Errorf("track %s: %w", c.TrackID, errors.ErrLockedTrack))
	}

	clips := t.clips[c.TrackID]
	next := make([]Clip, 0, len(clips)-1)
	next = append(next, clips[:idx]...)
	next = append(next, clips[idx+1:]...)

	events := []Event{{Kind: ClipRemoved, ID: id}}
	if ripple {
		for i := range next {
			if next[i].Start >= c.End() {
				next[i].Start -= c.Duration
				events = append(events, Event{Kind: ClipMutated, ID: next[i].ID})
			}
		}
	}

	t.clips[c.TrackID] = next
	t.log.Info("clip deleted", zap.String("clip", id), zap.Bool("ripple", ripple))
	t.emit(events...)
	return c, nil
}

// TrimClip sets a clip's duration, moving its out point. The new duration
// must be positive and fit inside the remaining source media. With ripple,
// later clips on the same track shift by the change in length.
func (t *Timeline) TrimClip(id string, newDuration timecode.Time, ripple bool) (Clip, error) {
	c, idx, ok := t.findClip(id)
	if !ok {
		return Clip{}, t.reject("trim", fmt.Errorf("clip %s: %w", id, errors.ErrNotFound))
	}
	if t.tracks[t.trackIndex(c.TrackID)].Locked {
		return Clip{}, t.reject("trim", fmt.Errorf("track %s: %w", c.TrackID, errors.ErrLockedTrack))
	}
	_, mediaDur := t.media(c.MediaID)
	limit := mediaDur - c.In
	if newDuration <= 0 || newDuration > limit {
		return Clip{}, t.reject("trim", fmt.Errorf("duration %v outside (0, %v]: %w", newDuration, limit, errors.ErrBounds))
	}
	d := t.Snap(newDuration)
	if d > limit {
		d = limit
	}
	if d <= 0 {
		return Clip{}, t.reject("trim", fmt.Errorf("duration %v is shorter than a frame: %w", newDuration, errors.ErrBounds))
	}
	if d == c.Duration {
		return c.clone(), nil
	}

	delta := d - c.Duration
	staged := cloneClips(t.clips[c.TrackID])
	staged[idx].Duration = d

	events := []Event{{Kind: ClipMutated, ID: id}}
	if ripple {
		for i := range staged {
			if i != idx && staged[i].Start >= c.End() {
				staged[i].Start += delta
				events = append(events, Event{Kind: ClipMutated, ID: staged[i].ID})
			}
		}
	}
	if !disjoint(staged) {
		return Clip{}, t.reject("trim", fmt.Errorf("clip %s to %v: %w", id, d, errors.ErrOverlap))
	}

	t.clips[c.TrackID] = staged
	t.log.Info("clip trimmed", zap.String("clip", id), zap.Stringer("duration", d), zap.Bool("ripple", ripple))
	t.emit(events...)
	return staged[idx].clone(), nil
}

// MoveClip re-parents a clip onto trackID at start. Both tracks must be
// unlocked and the destination must accept the clip's media kind.
func (t *Timeline) MoveClip(id, trackID string, start timecode.Time) (Clip, error) {
	c, idx, ok := t.findClip(id)
	if !ok {
		return Clip{}, t.reject("move", fmt.Errorf("clip %s: %w", id, errors.ErrNotFound))
	}
	if t.tracks[t.trackIndex(c.TrackID)].Locked {
		return Clip{}, t.reject("move", fmt.Errorf("track %s: %w", c.TrackID, errors.ErrLockedTrack))
	}
	di := t.trackIndex(trackID)
	if di < 0 {
		return Clip{}, t.reject("move", fmt.Errorf("track %s: %w", trackID, errors.ErrNotFound))
	}
	dst := t.tracks[di]
	if dst.Locked {
		return Clip{}, t.reject("move", fmt.Errorf("track %s: %w", trackID, errors.ErrLockedTrack))
	}
	if m, _ := t.media(c.MediaID); m == nil || m.Kind != dst.Kind {
		return Clip{}, t.reject("move", fmt.Errorf("clip %s to %s track %s: %w", id, dst.Kind, trackID, errors.ErrKindMismatch))
	}
	if start < 0 {
		return Clip{}, t.reject("move", fmt.Errorf("start %v: %w", start, errors.ErrBounds))
	}

	moved := c.clone()
	moved.TrackID = trackID
	moved.Start = t.Snap(start)
	if !fits(t.clips[trackID], moved.Start, moved.End(), id) {
		return Clip{}, t.reject("move", fmt.Errorf("[%v, %v) on %s: %w", moved.Start, moved.End(), trackID, errors.ErrOverlap))
	}

	src := t.clips[c.TrackID]
	rest := make([]Clip, 0, len(src))
	rest = append(rest, src[:idx]...)
	rest = append(rest, src[idx+1:]...)
	if trackID == c.TrackID {
		t.clips[trackID] = insertSorted(rest, moved)
	} else {
		t.clips[c.TrackID] = rest
		t.clips[trackID] = insertSorted(t.clips[trackID], moved)
	}

	t.log.Info("clip moved", zap.String("clip", id), zap.String("track", trackID), zap.Stringer("start", moved.Start))
	t.emit(Event{Kind: ClipMutated, ID: id})
	return moved.clone(), nil
}

// ApplyEffect appends an opaque effect tag to a clip.
func (t *Timeline) ApplyEffect(id, tag string) (Clip, error) {
	return t.mutateEffects("effect", id, func(effects []string) ([]string, error) {
		if tag == "" {
			return nil, fmt.Errorf("empty effect tag: %w", errors.ErrBounds)
		}
		return append(effects, tag), nil
	})
}

// RemoveEffect drops the first occurrence of tag from a clip.
func (t *Timeline) RemoveEffect(id, tag string) (Clip, error) {
	return t.mutateEffects("uneffect", id, func(effects []string) ([]string, error) {
		i := slices.Index(effects, tag)
		if i < 0 {
			return nil, fmt.Errorf("effect %q on clip %s: %w", tag, id, errors.ErrNotFound)
		}
		return slices.Delete(effects, i, i+1), nil
	})
}

func (t *Timeline) mutateEffects(op, id string, fn func([]string) ([]string, error)) (Clip, error) {
	c, idx, ok := t.findClip(id)
	if !ok {
		return Clip{}, t.reject(op, fmt.Errorf("clip %s: %w", id, errors.ErrNotFound))
	}
	if t.tracks[t.trackIndex(c.TrackID)].Locked {
		return Clip{}, t.reject(op, fmt.Errorf("track %s: %w", c.TrackID, errors.ErrLockedTrack))
	}
	effects, err := fn(slices.Clone(c.Effects))
	if err != nil {
		return Clip{}, t.reject(op, err)
	}

	staged := cloneClips(t.clips[c.TrackID])
	staged[idx].Effects = effects
	t.clips[c.TrackID] = staged
	t.emit(Event{Kind: ClipMutated, ID: id})
	return staged[idx].clone(), nil
}
