package core

import "github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"

// Transport defines playhead control for a timeline.
type Transport interface {
	// Playback control
	Play()
	Pause()
	Toggle()
	Stop()

	// Shuttle (J/L)
	ShuttleForward()
	ShuttleReverse()

	// Positioning
	Seek(t timecode.Time) timecode.Time
	StepFrames(n int) timecode.Time

	// State queries
	State() TransportState
}
