package timeline

import (
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

// Duration is the end of the last clip on any track.
func (t *Timeline) Duration() timecode.Time {
	var d timecode.Time
	for _, clips := range t.clips {
		if n := len(clips); n > 0 && clips[n-1].End() > d {
			d = clips[n-1].End()
		}
	}
	return d
}

// Clips returns every clip, grouped by track in display order and sorted by
// start within a track.
func (t *Timeline) Clips() []Clip {
	var out []Clip
	for _, tr := range t.tracks {
		out = append(out, cloneClips(t.clips[tr.ID])...)
	}
	return out
}

// TrackClips returns the clips on one track sorted by start.
func (t *Timeline) TrackClips(trackID string) []Clip {
	return cloneClips(t.clips[trackID])
}

// Clip looks up a clip by id.
func (t *Timeline) Clip(id string) (Clip, bool) {
	c, _, ok := t.findClip(id)
	return c.clone(), ok
}

// ClipsAt returns the clips under time at, in track order.
func (t *Timeline) ClipsAt(at timecode.Time) []Clip {
	var out []Clip
	for _, tr := range t.tracks {
		for _, c := range t.clips[tr.ID] {
			if c.Start > at {
				break
			}
			if at < c.End() {
				out = append(out, c.clone())
				break
			}
		}
	}
	return out
}

// NextEdit returns the nearest clip start strictly after at.
func (t *Timeline) NextEdit(at timecode.Time) (timecode.Time, bool) {
	var best timecode.Time
	found := false
	for _, clips := range t.clips {
		for _, c := range clips {
			if c.Start > at {
				if !found || c.Start < best {
					best = c.Start
					found = true
				}
				break
			}
		}
	}
	return best, found
}

// PrevEdit returns the nearest clip start strictly before at, or zero.
func (t *Timeline) PrevEdit(at timecode.Time) timecode.Time {
	var best timecode.Time
	for _, clips := range t.clips {
		for _, c := range clips {
			if c.Start >= at {
				break
			}
			if c.Start > best {
				best = c.Start
			}
		}
	}
	return best
}

// Audible returns the ids of tracks that should be heard. When any track is
// soloed only soloed tracks play; otherwise every unmuted track does.
func (t *Timeline) Audible() []string {
	solo := false
	for _, tr := range t.tracks {
		if tr.Solo {
			solo = true
			break
		}
	}
	var ids []string
	for _, tr := range t.tracks {
		if (solo && tr.Solo) || (!solo && !tr.Muted) {
			ids = append(ids, tr.ID)
		}
	}
	return ids
}
