package project

import (
	"testing"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

func TestOpenAndCapture(t *testing.T) {
	p := New("demo", timecode.Rate{Num: 25, Den: 1}, true)
	p.Media = core.Catalog{{ID: "m1", Name: "a.mov", Kind: core.KindVideo, Duration: 10}}

	s, err := Open(p, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := s.Timeline.Rate(); got != (timecode.Rate{Num: 25, Den: 1}) {
		t.Errorf("Rate() = %v, want 25", got)
	}
	if got := s.Timeline.Settings().DuplicateGap; got != s.Timeline.Rate().Frame() {
		t.Errorf("DuplicateGap = %v, want one frame", got)
	}

	if _, err := s.Timeline.PlaceClip("v1", "m1", timecode.Second); err != nil {
		t.Fatalf("PlaceClip() error = %v", err)
	}
	s.Transport.Seek(2 * timecode.Second)

	out := s.Capture()
	if len(out.Timeline.Clips) != 1 {
		t.Fatalf("captured clips = %d, want 1", len(out.Timeline.Clips))
	}
	if out.Playhead != 2 {
		t.Errorf("Playhead = %v, want 2", out.Playhead)
	}

	reopened, err := Open(out, nil)
	if err != nil {
		t.Fatalf("Open(captured) error = %v", err)
	}
	if got := reopened.Transport.Time(); got != 2*timecode.Second {
		t.Errorf("restored playhead = %v, want 2s", got)
	}
	if got := reopened.Timeline.Duration(); got != 11*timecode.Second {
		t.Errorf("Duration() = %v, want 11s", got)
	}
}

func TestOpenRejectsInvalid(t *testing.T) {
	p := New("bad", timecode.DefaultRate, true)
	p.FrameRate = "11"
	if _, err := Open(p, nil); err == nil {
		t.Error("Open() with bad frame rate error = nil")
	}

	p = New("bad", timecode.DefaultRate, true)
	p.Timeline.Clips = []core.Clip{{ID: "c1", TrackID: "v1", MediaID: "missing", Duration: 1, Out: 1}}
	if _, err := Open(p, nil); err == nil {
		t.Error("Open() with dangling media error = nil")
	}
}

func TestSessionFingerprint(t *testing.T) {
	p := New("fp", timecode.DefaultRate, true)
	p.Media = core.Catalog{{ID: "m1", Name: "a.mov", Kind: core.KindVideo, Duration: 10}}
	a, err := Open(p, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	b, err := Open(p, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	fa, _ := a.Fingerprint()
	fb, _ := b.Fingerprint()
	if fa != fb {
		t.Errorf("Fingerprint() differs for identical sessions: %x vs %x", fa, fb)
	}

	if err := b.Timeline.AddMedia(core.MediaItem{ID: "m2", Name: "b.wav", Kind: core.KindAudio, Duration: 5}); err != nil {
		t.Fatalf("AddMedia() error = %v", err)
	}
	fb, _ = b.Fingerprint()
	if fa == fb {
		t.Error("Fingerprint() unchanged after adding media")
	}

	// Moving the playhead is not an edit.
	a.Transport.Seek(timecode.Second)
	if fa2, _ := a.Fingerprint(); fa2 != fa {
		t.Error("Fingerprint() changed after seeking")
	}
}

func TestPlayheadFollowsShrinkingEdits(t *testing.T) {
	p := New("demo", timecode.DefaultRate, true)
	p.Media = core.Catalog{{ID: "m1", Name: "a.mov", Kind: core.KindVideo, Duration: 30}}
	s, err := Open(p, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	c, err := s.Timeline.PlaceClip("v1", "m1", 0)
	if err != nil {
		t.Fatalf("PlaceClip() error = %v", err)
	}
	s.Transport.Seek(25 * timecode.Second)

	if _, err := s.Timeline.TrimClip(c.ID, 10*timecode.Second, false); err != nil {
		t.Fatalf("TrimClip() error = %v", err)
	}
	st := s.Transport.State()
	if d := s.Timeline.Duration().Seconds(); st.CurrentTime > d {
		t.Errorf("CurrentTime = %v after trim, want <= %v", st.CurrentTime, d)
	}

	if _, err := s.Timeline.DeleteClip(c.ID, true); err != nil {
		t.Fatalf("DeleteClip() error = %v", err)
	}
	if got := s.Transport.Time(); got != 0 {
		t.Errorf("Time() = %v after deleting the only clip, want 0", got)
	}
	if got := s.Capture().Playhead; got != 0 {
		t.Errorf("captured Playhead = %v, want 0", got)
	}
}

func TestNewHasDefaultTracks(t *testing.T) {
	p := New("tracks", timecode.DefaultRate, false)
	want := []struct {
		id   string
		kind core.MediaKind
	}{
		{"v1", core.KindVideo},
		{"a1", core.KindAudio},
	}
	if len(p.Timeline.Tracks) != len(want) {
		t.Fatalf("tracks = %+v, want v1 and a1", p.Timeline.Tracks)
	}
	for i, w := range want {
		if got := p.Timeline.Tracks[i]; got.ID != w.id || got.Kind != w.kind {
			t.Errorf("track %d = %s (%s), want %s (%s)", i, got.ID, got.Kind, w.id, w.kind)
		}
	}
}
