package tail

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/project"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timeline"
)

func baseSnapshot() core.Snapshot {
	return core.Snapshot{
		Tracks: []core.Track{
			{ID: "v1", Name: "V1", Kind: core.KindVideo, Height: 60},
			{ID: "a1", Name: "A1", Kind: core.KindAudio, Height: 60},
		},
		Clips: []core.Clip{
			{ID: "c1", TrackID: "v1", MediaID: "m1", Start: 0, Duration: 10, In: 0, Out: 10},
			{ID: "c2", TrackID: "v1", MediaID: "m1", Start: 10, Duration: 5, In: 10, Out: 15},
		},
		Markers: []core.Marker{
			{ID: "mk1", Time: 2, Label: "Intro", Color: "red", Type: "comment"},
		},
	}
}

func types(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *core.Snapshot)
		want   []EventType
	}{
		{
			name:   "unchanged",
			mutate: func(s *core.Snapshot) {},
			want:   []EventType{},
		},
		{
			name: "clip added",
			mutate: func(s *core.Snapshot) {
				s.Clips = append(s.Clips, core.Clip{ID: "c3", TrackID: "v1", MediaID: "m1", Start: 20, Duration: 1, Out: 1})
			},
			want: []EventType{EventClipAdded},
		},
		{
			name: "clip removed and neighbour shifted",
			mutate: func(s *core.Snapshot) {
				s.Clips = []core.Clip{{ID: "c2", TrackID: "v1", MediaID: "m1", Start: 0, Duration: 5, In: 10, Out: 15}}
			},
			want: []EventType{EventClipRemoved, EventClipChanged},
		},
		{
			name: "effect applied",
			mutate: func(s *core.Snapshot) {
				s.Clips[0].Effects = []string{"blur"}
			},
			want: []EventType{EventClipChanged},
		},
		{
			name: "marker retyped and new marker",
			mutate: func(s *core.Snapshot) {
				s.Markers[0].Type = "chapter"
				s.Markers = append(s.Markers, core.Marker{ID: "mk2", Time: 4, Label: "Outro"})
			},
			want: []EventType{EventMarkerChanged, EventMarkerAdded},
		},
		{
			name: "marker removed",
			mutate: func(s *core.Snapshot) {
				s.Markers = nil
			},
			want: []EventType{EventMarkerRemoved},
		},
		{
			name: "track locked and added",
			mutate: func(s *core.Snapshot) {
				s.Tracks[1].Locked = true
				s.Tracks = append(s.Tracks, core.Track{ID: "a2", Name: "A2", Kind: core.KindAudio})
			},
			want: []EventType{EventTrackChanged, EventTrackAdded},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := baseSnapshot()
			curr := baseSnapshot()
			tt.mutate(&curr)

			got := types(Diff(prev, curr))
			if len(got) != len(tt.want) {
				t.Fatalf("Diff() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Diff()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDiffCarriesRecords(t *testing.T) {
	prev := baseSnapshot()
	curr := baseSnapshot()
	curr.Clips[1].Start = 12

	events := Diff(prev, curr)
	if len(events) != 1 {
		t.Fatalf("len(Diff()) = %d, want 1", len(events))
	}
	if events[0].Clip == nil || events[0].Clip.Start != 12 {
		t.Errorf("Clip = %+v, want the moved clip", events[0].Clip)
	}
}

func TestFromTimeline(t *testing.T) {
	snap := baseSnapshot()

	tests := []struct {
		kind       timeline.EventKind
		id         string
		want       EventType
		wantClip   bool
		wantMarker bool
	}{
		{kind: timeline.ClipAdded, id: "c1", want: EventClipAdded, wantClip: true},
		{kind: timeline.ClipRemoved, id: "gone", want: EventClipRemoved},
		{kind: timeline.ClipMutated, id: "c2", want: EventClipChanged, wantClip: true},
		{kind: timeline.MarkerAdded, id: "mk1", want: EventMarkerAdded, wantMarker: true},
		{kind: timeline.MarkerMutated, id: "mk1", want: EventMarkerChanged, wantMarker: true},
		{kind: timeline.TrackMutated, id: "v1", want: EventTrackChanged},
		{kind: timeline.TimelineLoaded, want: EventReloaded},
	}

	for _, tt := range tests {
		t.Run(eventTypeName(tt.want), func(t *testing.T) {
			got := FromTimeline(timeline.Event{Kind: tt.kind, ID: tt.id}, snap)
			if got.Type != tt.want {
				t.Errorf("Type = %v, want %v", got.Type, tt.want)
			}
			if (got.Clip != nil) != tt.wantClip {
				t.Errorf("Clip = %v, wantClip %v", got.Clip, tt.wantClip)
			}
			if (got.Marker != nil) != tt.wantMarker {
				t.Errorf("Marker = %v, wantMarker %v", got.Marker, tt.wantMarker)
			}
		})
	}
}

func TestFormatter(t *testing.T) {
	clip := &core.Clip{ID: "c1", TrackID: "v1", MediaID: "m1", Start: 10, Duration: 5, Out: 5}
	marker := &core.Marker{ID: "mk1", Time: 1, Label: "Intro", Type: "chapter"}
	track := &core.Track{ID: "a1", Locked: true, Solo: true}
	ts := time.Date(2026, 1, 2, 13, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		opts []FormatterOption
		e    Event
		want string
	}{
		{
			name: "clip added",
			opts: []FormatterOption{WithEmoji(false)},
			e:    Event{Type: EventClipAdded, ID: "c1", Clip: clip},
			want: "Placed c1 on v1 at 00:00:10:00",
		},
		{
			name: "clip changed",
			opts: []FormatterOption{WithEmoji(false)},
			e:    Event{Type: EventClipChanged, ID: "c1", Clip: clip},
			want: "Changed c1: m1 on v1, 00:00:10:00 - 00:00:15:00",
		},
		{
			name: "emoji",
			e:    Event{Type: EventClipRemoved, ID: "c1"},
			want: "🗑️ Removed c1",
		},
		{
			name: "timestamp",
			opts: []FormatterOption{WithEmoji(false), WithTimestamp(true)},
			e:    Event{Type: EventMarkerRemoved, ID: "mk1", Timestamp: ts},
			want: "13:04:05 Marker removed: mk1",
		},
		{
			name: "marker",
			opts: []FormatterOption{WithEmoji(false)},
			e:    Event{Type: EventMarkerChanged, ID: "mk1", Marker: marker},
			want: `Marker "Intro" is now chapter`,
		},
		{
			name: "track flags",
			opts: []FormatterOption{WithEmoji(false)},
			e:    Event{Type: EventTrackChanged, ID: "a1", Track: track},
			want: "Track a1: locked, solo",
		},
		{
			name: "template",
			opts: []FormatterOption{WithTemplate("{{.Type}} {{.ID}} {{.Track}} {{.Start}}")},
			e:    Event{Type: EventClipAdded, ID: "c1", Clip: clip},
			want: "clip_added c1 v1 00:00:10:00",
		},
		{
			name: "bad template falls back",
			opts: []FormatterOption{WithEmoji(false), WithTemplate("{{.Nope")},
			e:    Event{Type: EventReloaded},
			want: "Timeline reloaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFormatter(tt.opts...).Format(tt.e)
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWatcherReportsExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut.maestro.json")
	store, err := project.NewStore(path, nil)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	p := project.New("cut", timecode.DefaultRate, true)
	p.Media = core.Catalog{{ID: "m1", Name: "A001.mov", Kind: core.KindVideo, Duration: 30}}
	if err := store.Save(p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	w := NewWatcher(store, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	p.Timeline.Clips = append(p.Timeline.Clips, core.Clip{
		ID: "c1", TrackID: "v1", MediaID: "m1", Start: 0, Duration: 5, Out: 5,
	})
	if err := store.Save(p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	select {
	case e := <-w.Events():
		if e.Type != EventClipAdded || e.ID != "c1" {
			t.Errorf("event = %v %q, want clip added c1", e.Type, e.ID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event within 5s")
	}

	w.Stop()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start() error = %v, want nil after Stop", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after Stop")
	}

	if !strings.HasSuffix(store.Path(), "cut.maestro.json") {
		t.Errorf("Path() = %q", store.Path())
	}
}
