package timeline

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"
	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

// Snapshot converts the model to its persisted form, in seconds.
func (t *Timeline) Snapshot() core.Snapshot {
	s := core.Snapshot{
		Tracks:  t.Tracks(),
		Clips:   []core.Clip{},
		Markers: []core.Marker{},
	}
	for _, c := range t.Clips() {
		s.Clips = append(s.Clips, core.Clip{
			ID:       c.ID,
			TrackID:  c.TrackID,
			MediaID:  c.MediaID,
			Start:    c.Start.Seconds(),
			Duration: c.Duration.Seconds(),
			In:       c.In.Seconds(),
			Out:      c.Out().Seconds(),
			Effects:  c.Effects,
		})
	}
	for _, m := range t.markers {
		s.Markers = append(s.Markers, core.Marker{
			ID:    m.ID,
			Time:  m.Time.Seconds(),
			Label: m.Label,
			Color: m.Color,
			Type:  m.Type,
		})
	}
	if s.Tracks == nil {
		s.Tracks = []core.Track{}
	}
	return s
}

// Load replaces the model with a snapshot. The snapshot is checked in full
// first; on any violation the current model is kept and the error names the
// offending record. The clipboard is cleared.
func (t *Timeline) Load(s core.Snapshot) error {
	seen := make(map[string]bool)
	claim := func(id string) error {
		if id == "" {
			return fmt.Errorf("empty id: %w", errors.ErrBounds)
		}
		if seen[id] {
			return fmt.Errorf("%s: %w", id, errors.ErrDuplicate)
		}
		seen[id] = true
		return nil
	}

	tracks := make([]core.Track, 0, len(s.Tracks))
	kinds := make(map[string]core.MediaKind)
	for _, tr := range s.Tracks {
		if err := claim(tr.ID); err != nil {
			return t.reject("load", fmt.Errorf("track: %w", err))
		}
		if tr.Kind != core.KindVideo && tr.Kind != core.KindAudio {
			return t.reject("load", fmt.Errorf("track %s kind %q: %w", tr.ID, tr.Kind, errors.ErrKindMismatch))
		}
		kinds[tr.ID] = tr.Kind
		tracks = append(tracks, tr)
	}

	clips := make(map[string][]Clip)
	for _, sc := range s.Clips {
		c, err := t.loadClip(sc, kinds)
		if err != nil {
			return t.reject("load", err)
		}
		if err := claim(c.ID); err != nil {
			return t.reject("load", fmt.Errorf("clip: %w", err))
		}
		clips[c.TrackID] = append(clips[c.TrackID], c)
	}
	for id := range clips {
		sortByStart(clips[id])
		if !disjoint(clips[id]) {
			return t.reject("load", fmt.Errorf("track %s: %w", id, errors.ErrOverlap))
		}
	}

	markers := make([]Marker, 0, len(s.Markers))
	for _, sm := range s.Markers {
		if err := claim(sm.ID); err != nil {
			return t.reject("load", fmt.Errorf("marker: %w", err))
		}
		if sm.Time < 0 {
			return t.reject("load", fmt.Errorf("marker %s at %v: %w", sm.ID, sm.Time, errors.ErrBounds))
		}
		typ := sm.Type
		if typ == "" {
			typ = defaultMarkerType
		}
		markers = append(markers, Marker{
			ID:    sm.ID,
			Time:  timecode.FromSeconds(sm.Time),
			Label: sm.Label,
			Color: sm.Color,
			Type:  typ,
		})
	}
	sortMarkers(markers)

	t.tracks = tracks
	t.clips = clips
	t.markers = markers
	t.clipboard = nil
	t.log.Info("timeline loaded", zap.Int("tracks", len(tracks)), zap.Int("clips", len(s.Clips)), zap.Int("markers", len(markers)))
	t.emit(Event{Kind: TimelineLoaded})
	return nil
}

// Snapshot values pass through float seconds, so window arithmetic is
// compared with a one-flick tolerance.
const loadTolerance timecode.Time = 1

func (t *Timeline) loadClip(sc core.Clip, kinds map[string]core.MediaKind) (Clip, error) {
	kind, ok := kinds[sc.TrackID]
	if !ok {
		return Clip{}, fmt.Errorf("clip %s track %s: %w", sc.ID, sc.TrackID, errors.ErrNotFound)
	}
	m, mediaDur := t.media(sc.MediaID)
	if m == nil {
		return Clip{}, fmt.Errorf("clip %s media %s: %w", sc.ID, sc.MediaID, errors.ErrNotFound)
	}
	if m.Kind != kind {
		return Clip{}, fmt.Errorf("clip %s: %w", sc.ID, errors.ErrKindMismatch)
	}

	c := Clip{
		ID:       sc.ID,
		TrackID:  sc.TrackID,
		MediaID:  sc.MediaID,
		Start:    timecode.FromSeconds(sc.Start),
		Duration: timecode.FromSeconds(sc.Duration),
		In:       timecode.FromSeconds(sc.In),
		Effects:  sc.Effects,
	}
	out := timecode.FromSeconds(sc.Out)
	switch {
	case c.Start < 0, c.In < 0, c.Duration <= 0:
		return Clip{}, fmt.Errorf("clip %s window: %w", sc.ID, errors.ErrBounds)
	case abs(out-c.In-c.Duration) > loadTolerance:
		return Clip{}, fmt.Errorf("clip %s: out - in does not match duration: %w", sc.ID, errors.ErrBounds)
	case c.Out() > mediaDur+loadTolerance:
		return Clip{}, fmt.Errorf("clip %s runs past the end of %s: %w", sc.ID, sc.MediaID, errors.ErrBounds)
	}
	return c.clone(), nil
}

// Fingerprint hashes the persisted form of the model. Two timelines with
// equal fingerprints save to the same snapshot.
func (t *Timeline) Fingerprint() (uint64, error) {
	return hashstructure.Hash(t.Snapshot(), hashstructure.FormatV2, nil)
}

func abs(t timecode.Time) timecode.Time {
	if t < 0 {
		return -t
	}
	return t
}
