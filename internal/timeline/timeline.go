// Package timeline is the authoritative in-memory model of an edit: tracks,
// the clips placed on them, and global markers. Every mutating method either
// commits completely or returns an error and leaves the model untouched.
package timeline

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

// Settings are fixed when the model is constructed.
type Settings struct {
	Rate timecode.Rate
	Snap bool
	// DuplicateGap separates a duplicated clip from its source. Zero means
	// one frame.
	DuplicateGap timecode.Time
}

// Clip is a placed window of a media source, in timeline units.
type Clip struct {
	ID       string
	TrackID  string
	MediaID  string
	Start    timecode.Time
	Duration timecode.Time
	In       timecode.Time
	Effects  []string
}

// Out is the source offset where the clip's window ends.
func (c Clip) Out() timecode.Time {
	return c.In + c.Duration
}

// End is the exclusive end of the clip on the timeline.
func (c Clip) End() timecode.Time {
	return c.Start + c.Duration
}

func (c Clip) clone() Clip {
	c.Effects = slices.Clone(c.Effects)
	return c
}

// Marker annotates a point in global time.
type Marker struct {
	ID    string
	Time  timecode.Time
	Label string
	Color string
	Type  string
}

// IDFunc returns a fresh identifier with the given prefix.
type IDFunc func(prefix string) string

// Option configures a Timeline.
type Option func(*Timeline)

// WithIDGenerator replaces the default random id generator.
func WithIDGenerator(fn IDFunc) Option {
	return func(t *Timeline) {
		if fn != nil {
			t.newID = fn
		}
	}
}

// WithLogger attaches a logger for committed and rejected edits.
func WithLogger(log *zap.Logger) Option {
	return func(t *Timeline) {
		if log != nil {
			t.log = log
		}
	}
}

// Timeline owns tracks, clips, markers and the clipboard of one editing
// session. It is not safe for concurrent use.
type Timeline struct {
	catalog  core.Catalog
	settings Settings

	tracks  []core.Track
	clips   map[string][]Clip // by track id, sorted by start
	markers []Marker

	clipboard *Selection

	listeners []listener
	nextSub   int

	newID IDFunc
	log   *zap.Logger
}

// New creates an empty timeline over the given media catalog.
func New(catalog core.Catalog, settings Settings, opts ...Option) *Timeline {
	if settings.Rate.Validate() != nil {
		settings.Rate = timecode.DefaultRate
	}
	t := &Timeline{
		catalog:  slices.Clone(catalog),
		settings: settings,
		clips:    make(map[string][]Clip),
		newID:    defaultID,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func defaultID(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}

// Settings returns the construction settings, including the current snap
// flag.
func (t *Timeline) Settings() Settings {
	return t.settings
}

// Rate returns the project frame rate.
func (t *Timeline) Rate() timecode.Rate {
	return t.settings.Rate
}

// SetSnap turns the frame grid on or off for subsequent edits.
func (t *Timeline) SetSnap(enabled bool) {
	t.settings.Snap = enabled
}

// Snap resolves a requested time against the frame grid.
func (t *Timeline) Snap(at timecode.Time) timecode.Time {
	return timecode.Snap(at, t.settings.Rate, t.settings.Snap)
}

// Catalog returns the media pool.
func (t *Timeline) Catalog() core.Catalog {
	return slices.Clone(t.catalog)
}

// AddMedia appends an item to the media pool. Ids must be unique.
func (t *Timeline) AddMedia(item core.MediaItem) error {
	if item.ID == "" {
		return errors.WithSuggestion(errors.ErrBounds, "media needs an id")
	}
	if t.catalog.Lookup(item.ID) != nil {
		return fmt.Errorf("media %s: %w", item.ID, errors.ErrDuplicate)
	}
	if item.Kind != core.KindVideo && item.Kind != core.KindAudio {
		return fmt.Errorf("media %s has kind %q: %w", item.ID, item.Kind, errors.ErrKindMismatch)
	}
	if item.Duration <= 0 {
		return fmt.Errorf("media %s duration %v: %w", item.ID, item.Duration, errors.ErrBounds)
	}
	t.catalog = append(t.catalog, item)
	t.log.Debug("media added", zap.String("media", item.ID))
	return nil
}

func (t *Timeline) media(id string) (*core.MediaItem, timecode.Time) {
	m := t.catalog.Lookup(id)
	if m == nil {
		return nil, 0
	}
	return m, timecode.FromSeconds(m.Duration)
}

func (t *Timeline) trackIndex(id string) int {
	for i := range t.tracks {
		if t.tracks[i].ID == id {
			return i
		}
	}
	return -1
}

// findClip returns the clip and its index within its track.
func (t *Timeline) findClip(id string) (Clip, int, bool) {
	for _, tr := range t.tracks {
		for i, c := range t.clips[tr.ID] {
			if c.ID == id {
				return c, i, true
			}
		}
	}
	return Clip{}, -1, false
}

func (t *Timeline) idInUse(id string) bool {
	if _, _, ok := t.findClip(id); ok {
		return true
	}
	for _, m := range t.markers {
		if m.ID == id {
			return true
		}
	}
	return t.trackIndex(id) >= 0
}

func (t *Timeline) freshID(prefix string) string {
	for {
		id := t.newID(prefix)
		if !t.idInUse(id) {
			return id
		}
	}
}

func (t *Timeline) frame() timecode.Time {
	return t.settings.Rate.Frame()
}

func (t *Timeline) reject(op string, err error) error {
	t.log.Debug("edit rejected", zap.String("op", op), zap.Error(err))
	return err
}

// insertSorted returns a copy of clips with c inserted in start order.
func insertSorted(clips []Clip, c Clip) []Clip {
	out := make([]Clip, 0, len(clips)+1)
	placed := false
	for _, x := range clips {
		if !placed && c.Start < x.Start {
			out = append(out, c)
			placed = true
		}
		out = append(out, x)
	}
	if !placed {
		out = append(out, c)
	}
	return out
}

// fits reports whether [start, end) is free on the track, ignoring the clip
// with id skip.
func fits(clips []Clip, start, end timecode.Time, skip string) bool {
	for _, c := range clips {
		if c.ID == skip {
			continue
		}
		if start < c.End() && end > c.Start {
			return false
		}
	}
	return true
}

// disjoint reports whether a start-sorted clip list has no overlaps.
func disjoint(clips []Clip) bool {
	for i := 1; i < len(clips); i++ {
		if clips[i].Start < clips[i-1].End() {
			return false
		}
	}
	return true
}

func sortByStart(clips []Clip) {
	slices.SortStableFunc(clips, func(a, b Clip) int {
		return cmp.Compare(a.Start, b.Start)
	})
}

func cloneClips(clips []Clip) []Clip {
	out := make([]Clip, len(clips))
	for i, c := range clips {
		out[i] = c.clone()
	}
	return out
}
