package core

import "fmt"

// MediaKind is the kind of source media, and the kind of track it may
// be placed on.
type MediaKind string

const (
	KindVideo MediaKind = "video"
	KindAudio MediaKind = "audio"
)

// ParseKind converts user input into a MediaKind.
func ParseKind(s string) (MediaKind, error) {
	switch MediaKind(s) {
	case KindVideo, KindAudio:
		return MediaKind(s), nil
	case "v":
		return KindVideo, nil
	case "a":
		return KindAudio, nil
	}
	return "", fmt.Errorf("invalid kind %q (must be video or audio)", s)
}

// Track is a type-constrained lane of non-overlapping clips.
type Track struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Kind   MediaKind `json:"kind"`
	Height int       `json:"height"`
	Locked bool      `json:"locked"`
	Muted  bool      `json:"muted"`
	Solo   bool      `json:"solo"`
}
