// Package project persists an editing session: the media pool, the timeline
// snapshot and the playhead, as one JSON document on disk.
package project

import (
	"fmt"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timeline"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/transport"
)

// FormatVersion is written into every saved project.
const FormatVersion = 1

// Project is the on-disk shape of an edit.
type Project struct {
	Version            int           `json:"version"`
	Name               string        `json:"name"`
	FrameRate          string        `json:"frame_rate"`
	Snap               bool          `json:"snap"`
	DuplicateGapFrames int           `json:"duplicate_gap_frames,omitempty"`
	Media              core.Catalog  `json:"media"`
	Timeline           core.Snapshot `json:"timeline"`
	Playhead           float64       `json:"playhead"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// New returns an empty project with one video and one audio track.
func New(name string, rate timecode.Rate, snap bool) *Project {
	tl := timeline.New(nil, timeline.Settings{Rate: rate, Snap: snap})
	for _, kind := range []core.MediaKind{core.KindVideo, core.KindAudio} {
		if _, err := tl.AddTrack(kind); err != nil {
			// Only an unknown kind is rejected.
			panic(err)
		}
	}

	now := time.Now()
	return &Project{
		Version:            FormatVersion,
		Name:               name,
		FrameRate:          rate.String(),
		Snap:               snap,
		DuplicateGapFrames: 1,
		Media:              core.Catalog{},
		Timeline:           tl.Snapshot(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Session is a project opened for editing.
type Session struct {
	Project   *Project
	Timeline  *timeline.Timeline
	Transport *transport.Controller
}

// Open builds the live model for p. The snapshot is validated in full, so a
// hand-edited file that breaks an invariant is refused.
func Open(p *Project, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rate := timecode.DefaultRate
	if p.FrameRate != "" {
		r, err := timecode.ParseRate(p.FrameRate)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", p.Name, err)
		}
		rate = r
	}

	settings := timeline.Settings{
		Rate:         rate,
		Snap:         p.Snap,
		DuplicateGap: timecode.Time(p.DuplicateGapFrames) * rate.Frame(),
	}
	tl := timeline.New(p.Media, settings, timeline.WithLogger(log.Named("timeline")))
	if err := tl.Load(p.Timeline); err != nil {
		return nil, fmt.Errorf("project %q: %w", p.Name, err)
	}

	tr := transport.New(tl, rate, p.Snap, transport.WithLogger(log.Named("transport")))
	tr.Restore(timecode.FromSeconds(p.Playhead))

	return &Session{Project: p, Timeline: tl, Transport: tr}, nil
}

// Capture writes the live model back into the session's project and
// returns it.
func (s *Session) Capture() *Project {
	p := s.Project
	p.Media = s.Timeline.Catalog()
	p.Timeline = s.Timeline.Snapshot()
	p.Snap = s.Timeline.Settings().Snap
	p.Playhead = s.Transport.Time().Seconds()
	return p
}

// Fingerprint hashes the media pool and timeline. Two sessions with the
// same fingerprint would save the same edit.
func (s *Session) Fingerprint() (uint64, error) {
	content := struct {
		Media    core.Catalog
		Timeline core.Snapshot
	}{s.Timeline.Catalog(), s.Timeline.Snapshot()}
	return hashstructure.Hash(content, hashstructure.FormatV2, nil)
}
