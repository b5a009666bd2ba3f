package core

// TransportState is what a playback collaborator needs to draw a frame.
type TransportState struct {
	CurrentTime float64 `json:"current_time"`
	IsPlaying   bool    `json:"is_playing"`
	Speed       float64 `json:"speed"`
	Zoom        float64 `json:"zoom"`
}

// ProgressPercent returns the playhead position as a percentage (0-100) of
// the given timeline duration.
func (s *TransportState) ProgressPercent(duration float64) float64 {
	if s == nil || duration <= 0 {
		return 0
	}
	return s.CurrentTime / duration * 100
}
