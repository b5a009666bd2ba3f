package core

// Clip is a window of a media source placed on a track. All times are in
// seconds: Start is timeline-global, In and Out are offsets into the source.
type Clip struct {
	ID       string   `json:"id"`
	TrackID  string   `json:"track_id"`
	MediaID  string   `json:"media_id"`
	Start    float64  `json:"start"`
	Duration float64  `json:"duration"`
	In       float64  `json:"in"`
	Out      float64  `json:"out"`
	Effects  []string `json:"effects,omitempty"`
}

// End returns the exclusive end of the clip on the timeline.
func (c Clip) End() float64 {
	return c.Start + c.Duration
}

// Marker annotates a point in global timeline time.
type Marker struct {
	ID    string  `json:"id"`
	Time  float64 `json:"time"`
	Label string  `json:"label"`
	Color string  `json:"color"`
	Type  string  `json:"type"`
}

// Snapshot is the persisted shape of a timeline.
type Snapshot struct {
	Tracks  []Track  `json:"tracks"`
	Clips   []Clip   `json:"clips"`
	Markers []Marker `json:"markers"`
}
