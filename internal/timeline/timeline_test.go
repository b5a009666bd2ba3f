package timeline

import (
	"fmt"
	"testing"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

func sec(s float64) timecode.Time {
	return timecode.FromSeconds(s)
}

func sequentialIDs() IDFunc {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
}

// newTestTimeline builds a 24fps timeline with tracks v1 and a1 and media
// m1 (30s video), m2 (20s video) and m3 (60s audio).
func newTestTimeline(t *testing.T, snap bool) *Timeline {
	t.Helper()
	catalog := core.Catalog{
		{ID: "m1", Name: "interview.mov", Kind: core.KindVideo, Duration: 30},
		{ID: "m2", Name: "broll.mov", Kind: core.KindVideo, Duration: 20},
		{ID: "m3", Name: "music.wav", Kind: core.KindAudio, Duration: 60},
	}
	tl := New(catalog, Settings{Rate: timecode.Rate{Num: 24, Den: 1}, Snap: snap}, WithIDGenerator(sequentialIDs()))
	if _, err := tl.AddTrack(core.KindVideo); err != nil {
		t.Fatalf("AddTrack(video) error = %v", err)
	}
	if _, err := tl.AddTrack(core.KindAudio); err != nil {
		t.Fatalf("AddTrack(audio) error = %v", err)
	}
	return tl
}

func mustPlace(t *testing.T, tl *Timeline, track, media string, start timecode.Time) Clip {
	t.Helper()
	c, err := tl.PlaceClip(track, media, start)
	if err != nil {
		t.Fatalf("PlaceClip(%s, %s, %v) error = %v", track, media, start, err)
	}
	return c
}

func assertDisjoint(t *testing.T, tl *Timeline) {
	t.Helper()
	for _, tr := range tl.Tracks() {
		clips := tl.TrackClips(tr.ID)
		for i := 1; i < len(clips); i++ {
			if clips[i].Start < clips[i-1].End() {
				t.Fatalf("track %s: clip %s [%v,%v) overlaps %s [%v,%v)", tr.ID,
					clips[i].ID, clips[i].Start, clips[i].End(),
					clips[i-1].ID, clips[i-1].Start, clips[i-1].End())
			}
		}
	}
}

func TestAddTrack(t *testing.T) {
	tl := New(nil, Settings{Rate: timecode.DefaultRate})
	for _, k := range []core.MediaKind{core.KindAudio, core.KindVideo, core.KindVideo, core.KindAudio} {
		if _, err := tl.AddTrack(k); err != nil {
			t.Fatalf("AddTrack(%s) error = %v", k, err)
		}
	}

	want := []string{"v2", "v1", "a1", "a2"}
	got := tl.Tracks()
	if len(got) != len(want) {
		t.Fatalf("len(Tracks()) = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Tracks()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
	if got[0].Name != "V2" {
		t.Errorf("Tracks()[0].Name = %q, want %q", got[0].Name, "V2")
	}

	if _, err := tl.AddTrack("subtitle"); !errors.Is(err, errors.ErrKindMismatch) {
		t.Errorf("AddTrack(subtitle) error = %v, want ErrKindMismatch", err)
	}
}

func TestPlaceClipOverlap(t *testing.T) {
	tl := newTestTimeline(t, true)

	c1 := mustPlace(t, tl, "v1", "m2", sec(10))
	if c1.Start != sec(10) || c1.End() != sec(30) {
		t.Errorf("clip = [%v, %v), want [10s, 30s)", c1.Start, c1.End())
	}

	if _, err := tl.PlaceClip("v1", "m2", sec(25)); !errors.Is(err, errors.ErrOverlap) {
		t.Errorf("PlaceClip at 25 error = %v, want ErrOverlap", err)
	}
	if n := len(tl.TrackClips("v1")); n != 1 {
		t.Errorf("clips after rejected place = %d, want 1", n)
	}

	c2 := mustPlace(t, tl, "v1", "m2", sec(40))
	if c2.ID == c1.ID {
		t.Errorf("second clip reused id %q", c2.ID)
	}

	// Touching clips do not overlap.
	mustPlace(t, tl, "v1", "m2", sec(60))
	assertDisjoint(t, tl)
}

func TestPlaceClipRejections(t *testing.T) {
	tests := []struct {
		name  string
		track string
		media string
		start timecode.Time
		lock  bool
		want  error
	}{
		{name: "missing track", track: "v9", media: "m1", start: 0, want: errors.ErrNotFound},
		{name: "missing media", track: "v1", media: "nope", start: 0, want: errors.ErrNotFound},
		{name: "audio on video", track: "v1", media: "m3", start: 0, want: errors.ErrKindMismatch},
		{name: "video on audio", track: "a1", media: "m1", start: 0, want: errors.ErrKindMismatch},
		{name: "negative start", track: "v1", media: "m1", start: -sec(1), want: errors.ErrBounds},
		{name: "locked", track: "v1", media: "m1", start: 0, lock: true, want: errors.ErrLockedTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := newTestTimeline(t, true)
			if tt.lock {
				if _, err := tl.ToggleLock(tt.track); err != nil {
					t.Fatalf("ToggleLock() error = %v", err)
				}
			}
			before := tl.Snapshot()

			_, err := tl.PlaceClip(tt.track, tt.media, tt.start)
			if !errors.Is(err, tt.want) {
				t.Fatalf("PlaceClip() error = %v, want %v", err, tt.want)
			}
			if len(tl.Snapshot().Clips) != len(before.Clips) {
				t.Error("rejected placement changed the model")
			}
		})
	}
}

func TestPlaceClipWindow(t *testing.T) {
	tl := newTestTimeline(t, true)

	c, err := tl.PlaceClipWindow("v1", "m1", 0, sec(5), sec(12))
	if err != nil {
		t.Fatalf("PlaceClipWindow() error = %v", err)
	}
	if c.In != sec(5) || c.Out() != sec(12) || c.Duration != sec(7) {
		t.Errorf("window = in %v out %v dur %v, want 5s/12s/7s", c.In, c.Out(), c.Duration)
	}

	bad := []struct{ in, out timecode.Time }{
		{-sec(1), sec(2)},
		{sec(5), sec(5)},
		{sec(6), sec(5)},
		{0, sec(31)},
	}
	for _, b := range bad {
		if _, err := tl.PlaceClipWindow("v1", "m1", sec(100), b.in, b.out); !errors.Is(err, errors.ErrBounds) {
			t.Errorf("PlaceClipWindow(in=%v, out=%v) error = %v, want ErrBounds", b.in, b.out, err)
		}
	}
}

func TestPlaceSnapsStart(t *testing.T) {
	tl := newTestTimeline(t, true)
	frame := tl.Rate().Frame()

	c := mustPlace(t, tl, "v1", "m2", frame/2+1)
	if c.Start != frame {
		t.Errorf("snapped start = %v, want %v", c.Start, frame)
	}

	tl.SetSnap(false)
	c = mustPlace(t, tl, "v1", "m2", sec(40)+7)
	if c.Start != sec(40)+7 {
		t.Errorf("unsnapped start = %v, want %v", c.Start, sec(40)+7)
	}
}

func TestRippleDelete(t *testing.T) {
	tl := newTestTimeline(t, true)
	c1, _ := tl.PlaceClipWindow("v1", "m1", 0, 0, sec(10))
	c2, _ := tl.PlaceClipWindow("v1", "m1", sec(10), 0, sec(10))
	music := mustPlace(t, tl, "a1", "m3", sec(15))

	if _, err := tl.DeleteClip(c1.ID, true); err != nil {
		t.Fatalf("DeleteClip() error = %v", err)
	}

	got, ok := tl.Clip(c2.ID)
	if !ok {
		t.Fatal("C2 missing after ripple delete")
	}
	if got.Start != 0 {
		t.Errorf("C2 start = %v, want 0", got.Start)
	}
	if a, _ := tl.Clip(music.ID); a.Start != sec(15) {
		t.Errorf("audio clip start = %v, want 15s (ripple is single-track)", a.Start)
	}
	if _, ok := tl.Clip(c1.ID); ok {
		t.Error("C1 still present after delete")
	}
}

func TestDeleteWithoutRippleLeavesGap(t *testing.T) {
	tl := newTestTimeline(t, true)
	c1, _ := tl.PlaceClipWindow("v1", "m1", 0, 0, sec(10))
	c2, _ := tl.PlaceClipWindow("v1", "m1", sec(10), 0, sec(10))

	if _, err := tl.DeleteClip(c1.ID, false); err != nil {
		t.Fatalf("DeleteClip() error = %v", err)
	}
	if got, _ := tl.Clip(c2.ID); got.Start != sec(10) {
		t.Errorf("C2 start = %v, want 10s", got.Start)
	}
}

func TestDeleteRejections(t *testing.T) {
	tl := newTestTimeline(t, true)
	c := mustPlace(t, tl, "v1", "m1", 0)

	if _, err := tl.DeleteClip("clip_404", false); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("DeleteClip(missing) error = %v, want ErrNotFound", err)
	}

	tl.ToggleLock("v1")
	if _, err := tl.DeleteClip(c.ID, true); !errors.Is(err, errors.ErrLockedTrack) {
		t.Errorf("DeleteClip(locked) error = %v, want ErrLockedTrack", err)
	}
	if _, ok := tl.Clip(c.ID); !ok {
		t.Error("clip removed from locked track")
	}
}

func TestRippleDeleteConservesLength(t *testing.T) {
	tl := newTestTimeline(t, true)
	var ids []string
	for i := 0; i < 4; i++ {
		c, err := tl.PlaceClipWindow("v1", "m1", sec(float64(i*5)), 0, sec(5))
		if err != nil {
			t.Fatalf("PlaceClipWindow() error = %v", err)
		}
		ids = append(ids, c.ID)
	}
	before := tl.Duration()

	deleted, err := tl.DeleteClip(ids[1], true)
	if err != nil {
		t.Fatalf("DeleteClip() error = %v", err)
	}
	if got, want := tl.Duration(), before-deleted.Duration; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
	assertDisjoint(t, tl)
}

func TestSplitAt(t *testing.T) {
	tl := newTestTimeline(t, true)
	c := mustPlace(t, tl, "v1", "m1", sec(10))

	splits := tl.SplitAt(sec(25))
	if len(splits) != 1 {
		t.Fatalf("len(SplitAt()) = %d, want 1", len(splits))
	}
	s := splits[0]
	if s.Original != c.ID {
		t.Errorf("Original = %q, want %q", s.Original, c.ID)
	}

	checks := []struct {
		name                string
		clip                Clip
		start, dur, in, out timecode.Time
	}{
		{"left", s.Left, sec(10), sec(15), 0, sec(15)},
		{"right", s.Right, sec(25), sec(15), sec(15), sec(30)},
	}
	for _, ck := range checks {
		if ck.clip.Start != ck.start || ck.clip.Duration != ck.dur || ck.clip.In != ck.in || ck.clip.Out() != ck.out {
			t.Errorf("%s = start %v dur %v in %v out %v, want %v/%v/%v/%v", ck.name,
				ck.clip.Start, ck.clip.Duration, ck.clip.In, ck.clip.Out(),
				ck.start, ck.dur, ck.in, ck.out)
		}
	}

	if _, ok := tl.Clip(c.ID); ok {
		t.Error("original clip still present after split")
	}
	if s.Left.ID == s.Right.ID || s.Left.ID == c.ID || s.Right.ID == c.ID {
		t.Errorf("split ids not fresh: %q %q from %q", s.Left.ID, s.Right.ID, c.ID)
	}
	if n := len(tl.TrackClips("v1")); n != 2 {
		t.Errorf("clips on v1 = %d, want 2", n)
	}
	assertDisjoint(t, tl)
}

func TestSplitAtNoop(t *testing.T) {
	tl := newTestTimeline(t, true)
	mustPlace(t, tl, "v1", "m1", sec(10))

	tests := []struct {
		name string
		at   timecode.Time
	}{
		{"before", sec(5)},
		{"at start", sec(10)},
		{"at end", sec(40)},
		{"after", sec(50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tl.SplitAt(tt.at); len(got) != 0 {
				t.Errorf("SplitAt(%v) = %d splits, want 0", tt.at, len(got))
			}
		})
	}
}

func TestSplitAtSkipsLockedAndCopiesEffects(t *testing.T) {
	tl := newTestTimeline(t, true)
	v := mustPlace(t, tl, "v1", "m1", 0)
	mustPlace(t, tl, "a1", "m3", 0)
	if _, err := tl.ApplyEffect(v.ID, "blur"); err != nil {
		t.Fatalf("ApplyEffect() error = %v", err)
	}
	tl.ToggleLock("a1")

	splits := tl.SplitAt(sec(12))
	if len(splits) != 1 {
		t.Fatalf("len(SplitAt()) = %d, want 1 (audio track is locked)", len(splits))
	}
	for _, c := range []Clip{splits[0].Left, splits[0].Right} {
		if len(c.Effects) != 1 || c.Effects[0] != "blur" {
			t.Errorf("clip %s effects = %v, want [blur]", c.ID, c.Effects)
		}
	}
	if n := len(tl.TrackClips("a1")); n != 1 {
		t.Errorf("clips on locked a1 = %d, want 1", n)
	}
}

func TestTrimClip(t *testing.T) {
	tl := newTestTimeline(t, true)
	c1, _ := tl.PlaceClipWindow("v1", "m1", 0, sec(2), sec(12))
	c2, _ := tl.PlaceClipWindow("v1", "m1", sec(10), 0, sec(5))

	// Growth into the next clip without ripple is rejected.
	if _, err := tl.TrimClip(c1.ID, sec(12), false); !errors.Is(err, errors.ErrOverlap) {
		t.Errorf("TrimClip(grow, no ripple) error = %v, want ErrOverlap", err)
	}
	if got, _ := tl.Clip(c1.ID); got.Duration != sec(10) {
		t.Errorf("duration after rejected trim = %v, want 10s", got.Duration)
	}

	// With ripple the neighbour moves by the delta.
	got, err := tl.TrimClip(c1.ID, sec(12), true)
	if err != nil {
		t.Fatalf("TrimClip(grow, ripple) error = %v", err)
	}
	if got.Out() != sec(14) {
		t.Errorf("out = %v, want 14s", got.Out())
	}
	if n, _ := tl.Clip(c2.ID); n.Start != sec(12) {
		t.Errorf("C2 start = %v, want 12s", n.Start)
	}

	// Shrinking with ripple pulls it back.
	if _, err := tl.TrimClip(c1.ID, sec(4), true); err != nil {
		t.Fatalf("TrimClip(shrink) error = %v", err)
	}
	if n, _ := tl.Clip(c2.ID); n.Start != sec(4) {
		t.Errorf("C2 start = %v, want 4s", n.Start)
	}
	assertDisjoint(t, tl)
}

func TestTrimClipBounds(t *testing.T) {
	tl := newTestTimeline(t, true)
	c, _ := tl.PlaceClipWindow("v1", "m1", 0, sec(20), sec(25))

	tests := []struct {
		name string
		dur  timecode.Time
		want error
	}{
		{"zero", 0, errors.ErrBounds},
		{"negative", -sec(1), errors.ErrBounds},
		{"past media end", sec(11), errors.ErrBounds},
		{"below half a frame", 1000, errors.ErrBounds},
		{"exact remaining", sec(10), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tl.TrimClip(c.ID, tt.dur, false)
			if tt.want == nil {
				if err != nil {
					t.Errorf("TrimClip() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("TrimClip() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := tl.TrimClip("clip_404", sec(1), false); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("TrimClip(missing) error = %v, want ErrNotFound", err)
	}
}

func TestCopyPaste(t *testing.T) {
	tl := newTestTimeline(t, true)
	if _, err := tl.PasteAt(0); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("PasteAt(empty clipboard) error = %v, want ErrNotFound", err)
	}

	c, _ := tl.PlaceClipWindow("v1", "m1", 0, sec(1), sec(6))
	if err := tl.CopyClip(c.ID); err != nil {
		t.Fatalf("CopyClip() error = %v", err)
	}

	// The clipboard holds a value copy.
	if _, err := tl.TrimClip(c.ID, sec(2), false); err != nil {
		t.Fatalf("TrimClip() error = %v", err)
	}

	pasted, err := tl.PasteAt(sec(10))
	if err != nil {
		t.Fatalf("PasteAt() error = %v", err)
	}
	if len(pasted) != 1 {
		t.Fatalf("len(PasteAt()) = %d, want 1", len(pasted))
	}
	p1 := pasted[0]
	if p1.Duration != sec(5) || p1.In != sec(1) || p1.TrackID != "v1" {
		t.Errorf("pasted = dur %v in %v track %s, want 5s/1s/v1", p1.Duration, p1.In, p1.TrackID)
	}
	if p1.ID == c.ID {
		t.Error("pasted clip reused source id")
	}

	if !tl.HasClipboard() {
		t.Error("clipboard cleared by paste")
	}
	if _, err := tl.PasteAt(sec(12)); !errors.Is(err, errors.ErrOverlap) {
		t.Errorf("PasteAt(overlap) error = %v, want ErrOverlap", err)
	}
	if _, err := tl.PasteAt(sec(20)); err != nil {
		t.Errorf("second PasteAt() error = %v", err)
	}
}

func TestDuplicateClip(t *testing.T) {
	tl := newTestTimeline(t, true)
	c, _ := tl.PlaceClipWindow("v1", "m1", 0, 0, sec(5))

	d, err := tl.DuplicateClip(c.ID)
	if err != nil {
		t.Fatalf("DuplicateClip() error = %v", err)
	}
	if want := sec(5) + tl.Rate().Frame(); d.Start != want {
		t.Errorf("duplicate start = %v, want %v", d.Start, want)
	}
	if tl.HasClipboard() {
		t.Error("DuplicateClip() touched the clipboard")
	}
}

func TestMoveClip(t *testing.T) {
	tl := newTestTimeline(t, true)
	if _, err := tl.AddTrack(core.KindVideo); err != nil {
		t.Fatal(err)
	}
	c := mustPlace(t, tl, "v1", "m2", 0)
	mustPlace(t, tl, "v2", "m2", sec(30))

	moved, err := tl.MoveClip(c.ID, "v2", sec(5))
	if err != nil {
		t.Fatalf("MoveClip() error = %v", err)
	}
	if moved.TrackID != "v2" || moved.Start != sec(5) {
		t.Errorf("moved = %s@%v, want v2@5s", moved.TrackID, moved.Start)
	}
	if n := len(tl.TrackClips("v1")); n != 0 {
		t.Errorf("clips left on v1 = %d, want 0", n)
	}

	if _, err := tl.MoveClip(c.ID, "v2", sec(20)); !errors.Is(err, errors.ErrOverlap) {
		t.Errorf("MoveClip(overlap) error = %v, want ErrOverlap", err)
	}
	if _, err := tl.MoveClip(c.ID, "a1", 0); !errors.Is(err, errors.ErrKindMismatch) {
		t.Errorf("MoveClip(audio track) error = %v, want ErrKindMismatch", err)
	}
	// Moving within its own track may overlap its old position.
	if _, err := tl.MoveClip(c.ID, "v2", sec(6)); err != nil {
		t.Errorf("MoveClip(self overlap) error = %v", err)
	}
	assertDisjoint(t, tl)
}

func TestEffects(t *testing.T) {
	tl := newTestTimeline(t, true)
	c := mustPlace(t, tl, "v1", "m1", 0)

	tl.ApplyEffect(c.ID, "blur")
	tl.ApplyEffect(c.ID, "grade")
	got, err := tl.RemoveEffect(c.ID, "blur")
	if err != nil {
		t.Fatalf("RemoveEffect() error = %v", err)
	}
	if len(got.Effects) != 1 || got.Effects[0] != "grade" {
		t.Errorf("Effects = %v, want [grade]", got.Effects)
	}
	if _, err := tl.RemoveEffect(c.ID, "blur"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("RemoveEffect(absent) error = %v, want ErrNotFound", err)
	}
}

func TestMarkers(t *testing.T) {
	tl := newTestTimeline(t, true)

	m1, err := tl.AddMarker(sec(10), "", "")
	if err != nil {
		t.Fatalf("AddMarker() error = %v", err)
	}
	if m1.Label != "Marker 1" || m1.Color != "red" || m1.Type != "comment" {
		t.Errorf("marker = %q/%q/%q, want Marker 1/red/comment", m1.Label, m1.Color, m1.Type)
	}
	m2, _ := tl.AddMarker(sec(2), "", "")
	if m2.Label != "Marker 2" || m2.Color != "blue" {
		t.Errorf("second marker = %q/%q, want Marker 2/blue", m2.Label, m2.Color)
	}
	// Markers may share a time.
	if _, err := tl.AddMarker(sec(2), "sync", "green"); err != nil {
		t.Errorf("AddMarker(same time) error = %v", err)
	}
	if _, err := tl.AddMarker(-1, "", ""); !errors.Is(err, errors.ErrBounds) {
		t.Errorf("AddMarker(negative) error = %v, want ErrBounds", err)
	}

	ms := tl.Markers()
	if len(ms) != 3 || ms[0].ID != m2.ID || ms[2].ID != m1.ID {
		t.Errorf("Markers() not in time order: %+v", ms)
	}

	for _, typ := range []string{"chapter", "audio-cue"} {
		got, err := tl.SetMarkerType(m1.ID, typ)
		if err != nil {
			t.Errorf("SetMarkerType(%q) error = %v", typ, err)
		}
		if got.Type != typ {
			t.Errorf("Type = %q, want %q", got.Type, typ)
		}
	}
	if _, err := tl.SetMarkerType(m1.ID, "  "); !errors.Is(err, errors.ErrBounds) {
		t.Errorf("SetMarkerType(blank) error = %v, want ErrBounds", err)
	}
	if _, err := tl.SetMarkerType("nope", "comment"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("SetMarkerType(missing) error = %v, want ErrNotFound", err)
	}

	if !tl.DeleteMarker(m1.ID) {
		t.Error("DeleteMarker() = false, want true")
	}
	if tl.DeleteMarker(m1.ID) {
		t.Error("second DeleteMarker() = true, want false")
	}
}

func TestToggles(t *testing.T) {
	tl := newTestTimeline(t, true)

	if got, _ := tl.ToggleMute("a1"); !got {
		t.Error("ToggleMute() = false, want true")
	}
	if got, _ := tl.ToggleMute("a1"); got {
		t.Error("second ToggleMute() = true, want false")
	}
	tl.ToggleSolo("v1")
	tr, _ := tl.Track("v1")
	if !tr.Solo || tr.Muted || tr.Locked {
		t.Errorf("track flags = %+v, want only solo", tr)
	}
	if _, err := tl.ToggleLock("zz"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("ToggleLock(missing) error = %v, want ErrNotFound", err)
	}
}

func TestAudible(t *testing.T) {
	tl := newTestTimeline(t, true)
	tl.AddTrack(core.KindAudio)

	if got := tl.Audible(); len(got) != 3 {
		t.Errorf("Audible() = %v, want all tracks", got)
	}
	tl.ToggleMute("a1")
	if got := tl.Audible(); len(got) != 2 {
		t.Errorf("Audible() with a1 muted = %v, want 2 tracks", got)
	}
	tl.ToggleSolo("a2")
	if got := tl.Audible(); len(got) != 1 || got[0] != "a2" {
		t.Errorf("Audible() with a2 solo = %v, want [a2]", got)
	}
}

func TestQueries(t *testing.T) {
	tl := newTestTimeline(t, true)
	v := mustPlace(t, tl, "v1", "m2", sec(10))
	a := mustPlace(t, tl, "a1", "m3", sec(5))

	if got := tl.Duration(); got != sec(65) {
		t.Errorf("Duration() = %v, want 65s", got)
	}

	at := tl.ClipsAt(sec(12))
	if len(at) != 2 || at[0].ID != v.ID || at[1].ID != a.ID {
		t.Errorf("ClipsAt(12) = %v, want [%s %s]", at, v.ID, a.ID)
	}
	if got := tl.ClipsAt(sec(30)); len(got) != 1 {
		t.Errorf("ClipsAt(30) = %d clips, want 1 (end is exclusive)", len(got))
	}

	if next, ok := tl.NextEdit(sec(5)); !ok || next != sec(10) {
		t.Errorf("NextEdit(5) = %v, %v, want 10s, true", next, ok)
	}
	if _, ok := tl.NextEdit(sec(10)); ok {
		t.Error("NextEdit(10) found an edit, want none")
	}
	if got := tl.PrevEdit(sec(10)); got != sec(5) {
		t.Errorf("PrevEdit(10) = %v, want 5s", got)
	}
	if got := tl.PrevEdit(sec(3)); got != 0 {
		t.Errorf("PrevEdit(3) = %v, want 0", got)
	}
}

func TestEvents(t *testing.T) {
	tl := newTestTimeline(t, true)
	var got []EventKind
	unsubscribe := tl.Subscribe(func(e Event) { got = append(got, e.Kind) })

	mustPlace(t, tl, "v1", "m1", 0)
	tl.PlaceClip("v1", "m1", sec(1)) // rejected, no event
	tl.SplitAt(sec(10))
	tl.AddMarker(0, "", "")

	want := []EventKind{ClipAdded, ClipRemoved, ClipAdded, ClipAdded, MarkerAdded}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	unsubscribe()
	tl.AddMarker(sec(1), "", "")
	if len(got) != len(want) {
		t.Error("listener called after unsubscribe")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	tl := newTestTimeline(t, true)
	c := mustPlace(t, tl, "v1", "m1", sec(1))
	tl.ApplyEffect(c.ID, "blur")
	mustPlace(t, tl, "a1", "m3", 0)
	tl.AddMarker(sec(3), "intro", "")

	snap := tl.Snapshot()
	fp, err := tl.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}

	other := New(tl.Catalog(), tl.Settings())
	if err := other.Load(snap); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	fp2, _ := other.Fingerprint()
	if fp != fp2 {
		t.Errorf("Fingerprint after Load = %d, want %d", fp2, fp)
	}

	tl.ToggleMute("a1")
	if fp3, _ := tl.Fingerprint(); fp3 == fp {
		t.Error("Fingerprint unchanged after edit")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	base := func() core.Snapshot {
		return core.Snapshot{
			Tracks: []core.Track{{ID: "v1", Kind: core.KindVideo}, {ID: "a1", Kind: core.KindAudio}},
			Clips: []core.Clip{
				{ID: "c1", TrackID: "v1", MediaID: "m1", Start: 0, Duration: 10, In: 0, Out: 10},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*core.Snapshot)
		want   error
	}{
		{"overlap", func(s *core.Snapshot) {
			s.Clips = append(s.Clips, core.Clip{ID: "c2", TrackID: "v1", MediaID: "m1", Start: 5, Duration: 5, Out: 5})
		}, errors.ErrOverlap},
		{"duplicate id", func(s *core.Snapshot) {
			s.Clips = append(s.Clips, core.Clip{ID: "c1", TrackID: "v1", MediaID: "m1", Start: 20, Duration: 5, Out: 5})
		}, errors.ErrDuplicate},
		{"kind mismatch", func(s *core.Snapshot) { s.Clips[0].TrackID = "a1" }, errors.ErrKindMismatch},
		{"unknown track", func(s *core.Snapshot) { s.Clips[0].TrackID = "v7" }, errors.ErrNotFound},
		{"past media end", func(s *core.Snapshot) {
			s.Clips[0].In = 25
			s.Clips[0].Out = 35
		}, errors.ErrBounds},
		{"window mismatch", func(s *core.Snapshot) { s.Clips[0].Out = 9 }, errors.ErrBounds},
		{"negative marker", func(s *core.Snapshot) {
			s.Markers = []core.Marker{{ID: "mk", Time: -1}}
		}, errors.ErrBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := newTestTimeline(t, true)
			keep := mustPlace(t, tl, "v1", "m2", sec(100))

			s := base()
			tt.mutate(&s)
			if err := tl.Load(s); !errors.Is(err, tt.want) {
				t.Fatalf("Load() error = %v, want %v", err, tt.want)
			}
			if _, ok := tl.Clip(keep.ID); !ok {
				t.Error("rejected Load() changed the model")
			}
		})
	}
}

// assertWindows checks every clip's source window against its media.
func assertWindows(t *testing.T, tl *Timeline) {
	t.Helper()
	for _, c := range tl.Clips() {
		m := tl.Catalog().Lookup(c.MediaID)
		if m == nil {
			t.Fatalf("clip %s: media %s missing", c.ID, c.MediaID)
		}
		if c.In < 0 || c.Duration <= 0 || c.Out()-c.In != c.Duration || c.Out() > sec(m.Duration) {
			t.Fatalf("clip %s: window [%v, %v) dur %v outside %v media", c.ID, c.In, c.Out(), c.Duration, sec(m.Duration))
		}
		if c.Start < 0 {
			t.Fatalf("clip %s: start %v", c.ID, c.Start)
		}
	}
}

func TestDisjointUnderRandomEdits(t *testing.T) {
	tl := newTestTimeline(t, true)
	if _, err := tl.AddTrack(core.KindVideo); err != nil {
		t.Fatal(err)
	}
	videoTracks := []string{"v1", "v2"}
	// Deterministic pseudo-random sequence over every clip edit.
	seed := uint32(7)
	next := func(n int) int {
		seed = seed*1664525 + 1013904223
		return int(seed>>8) % n
	}
	pick := func() (Clip, bool) {
		clips := tl.Clips()
		if len(clips) == 0 {
			return Clip{}, false
		}
		return clips[next(len(clips))], true
	}
	for i := 0; i < 600; i++ {
		at := sec(float64(next(2000)) / 10)
		track := videoTracks[next(2)]
		switch next(12) {
		case 0:
			tl.PlaceClipWindow(track, "m1", at, sec(float64(next(10))), sec(float64(10+next(20))))
		case 1:
			tl.PlaceClipWindow("a1", "m3", at, 0, sec(float64(1+next(30))))
		case 2:
			tl.SplitAt(at)
		case 3:
			if c, ok := pick(); ok {
				tl.TrimClip(c.ID, sec(float64(1+next(8))), next(2) == 0)
			}
		case 4:
			if c, ok := pick(); ok {
				tl.DeleteClip(c.ID, next(2) == 0)
			}
		case 5:
			if c, ok := pick(); ok {
				tl.CopyClip(c.ID)
			}
		case 6:
			tl.PasteAt(at)
		case 7:
			if c, ok := pick(); ok {
				tl.DuplicateClip(c.ID)
			}
		case 8:
			if c, ok := pick(); ok {
				tl.MoveClip(c.ID, track, at)
			}
		case 9:
			tl.CopyRange(Range{In: at, Out: at + sec(float64(1+next(20)))})
		case 10:
			if next(2) == 0 {
				tl.PasteInsert(at)
			} else {
				tl.PasteOverwrite(at)
			}
		case 11:
			tl.RippleDeleteRange(Range{In: at, Out: at + sec(float64(1+next(10)))})
		}
		assertDisjoint(t, tl)
		assertWindows(t, tl)
	}
}

func TestAddMedia(t *testing.T) {
	tl := newTestTimeline(t, true)
	if err := tl.AddMedia(core.MediaItem{ID: "m1", Kind: core.KindVideo, Duration: 1}); !errors.Is(err, errors.ErrDuplicate) {
		t.Errorf("AddMedia(duplicate) error = %v, want ErrDuplicate", err)
	}
	if err := tl.AddMedia(core.MediaItem{ID: "m9", Kind: core.KindAudio, Duration: 0}); !errors.Is(err, errors.ErrBounds) {
		t.Errorf("AddMedia(zero duration) error = %v, want ErrBounds", err)
	}
	if err := tl.AddMedia(core.MediaItem{ID: "m9", Kind: core.KindAudio, Duration: 4}); err != nil {
		t.Fatalf("AddMedia() error = %v", err)
	}
	mustPlace(t, tl, "a1", "m9", 0)
}
