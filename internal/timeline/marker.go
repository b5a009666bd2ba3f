package timeline

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

// MarkerColors is the cycle used when a marker is added without a colour.
var MarkerColors = []string{"red", "blue", "green", "yellow", "purple", "orange"}

// MarkerTypes lists common marker types. Any non-empty tag is accepted.
var MarkerTypes = []string{"comment", "chapter", "todo", "sync"}

const defaultMarkerType = "comment"

// AddMarker adds a marker at the snapped time. An empty label or colour is
// filled in from the marker count.
func (t *Timeline) AddMarker(at timecode.Time, label, color string) (Marker, error) {
	if at < 0 {
		return Marker{}, t.reject("marker", fmt.Errorf("marker at %v: %w", at, errors.ErrBounds))
	}
	n := len(t.markers)
	if label == "" {
		label = fmt.Sprintf("Marker %d", n+1)
	}
	if color == "" {
		color = MarkerColors[n%len(MarkerColors)]
	}
	m := Marker{
		ID:    t.freshID("marker"),
		Time:  t.Snap(at),
		Label: label,
		Color: color,
		Type:  defaultMarkerType,
	}

	// Keep markers in time order; equal times keep insertion order.
	i, _ := slices.BinarySearchFunc(t.markers, m.Time, func(x Marker, at timecode.Time) int {
		if x.Time <= at {
			return -1
		}
		return 1
	})
	t.markers = slices.Insert(slices.Clone(t.markers), i, m)

	t.log.Info("marker added", zap.String("marker", m.ID), zap.Stringer("time", m.Time))
	t.emit(Event{Kind: MarkerAdded, ID: m.ID})
	return m, nil
}

// DeleteMarker removes a marker and reports whether it existed.
func (t *Timeline) DeleteMarker(id string) bool {
	i := slices.IndexFunc(t.markers, func(m Marker) bool { return m.ID == id })
	if i < 0 {
		return false
	}
	t.markers = slices.Delete(slices.Clone(t.markers), i, i+1)
	t.emit(Event{Kind: MarkerRemoved, ID: id})
	return true
}

// SetMarkerType changes the free-form type tag of a marker.
func (t *Timeline) SetMarkerType(id, typ string) (Marker, error) {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return Marker{}, t.reject("marker", fmt.Errorf("empty marker type: %w", errors.ErrBounds))
	}
	i := slices.IndexFunc(t.markers, func(m Marker) bool { return m.ID == id })
	if i < 0 {
		return Marker{}, t.reject("marker", fmt.Errorf("marker %s: %w", id, errors.ErrNotFound))
	}
	t.markers = slices.Clone(t.markers)
	t.markers[i].Type = typ
	t.emit(Event{Kind: MarkerMutated, ID: id})
	return t.markers[i], nil
}

func sortMarkers(markers []Marker) {
	slices.SortStableFunc(markers, func(a, b Marker) int {
		return cmp.Compare(a.Time, b.Time)
	})
}

// Markers returns the markers in time order.
func (t *Timeline) Markers() []Marker {
	return slices.Clone(t.markers)
}
