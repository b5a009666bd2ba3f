package transport

import (
	"context"
	"testing"
	"time"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

type fixedDuration timecode.Time

func (d fixedDuration) Duration() timecode.Time { return timecode.Time(d) }

type shrinkingDuration struct{ d timecode.Time }

func (s *shrinkingDuration) Duration() timecode.Time { return s.d }

var fps24 = timecode.Rate{Num: 24, Den: 1}

func TestTickAutoStopAtEnd(t *testing.T) {
	c := New(fixedDuration(timecode.FromSeconds(120)), fps24, false)
	c.Seek(timecode.FromSeconds(119.9))
	c.Play()

	ticks := 0
	for c.Tick() {
		ticks++
		if ticks > 10 {
			t.Fatal("transport did not stop at the end")
		}
	}

	if got := c.Time(); got != timecode.FromSeconds(120) {
		t.Errorf("Time() = %v, want 120s", got)
	}
	if c.Playing() {
		t.Error("Playing() = true, want false")
	}
	if ticks != 2 {
		t.Errorf("ticks before stop = %d, want 2", ticks)
	}
}

func TestTickAutoStopAtZeroInReverse(t *testing.T) {
	c := New(fixedDuration(timecode.FromSeconds(10)), fps24, true)
	c.Seek(timecode.FromSeconds(0.1))
	if err := c.SetSpeed(Speed{Num: -2, Den: 1}); err != nil {
		t.Fatal(err)
	}
	if c.Playing() {
		t.Fatal("SetSpeed() started playback")
	}
	c.Play()
	for c.Tick() {
	}
	if c.Time() != 0 {
		t.Errorf("Time() = %v, want 0", c.Time())
	}
	if c.State().IsPlaying {
		t.Error("IsPlaying = true after reaching zero")
	}
}

func TestTickAdvancesBySpeed(t *testing.T) {
	frame := fps24.Frame()
	tests := []struct {
		name  string
		speed Speed
		want  timecode.Time
	}{
		{"normal", Normal, timecode.Second + frame},
		{"double", Speed{Num: 2, Den: 1}, timecode.Second + 2*frame},
		{"half", Speed{Num: 1, Den: 2}, timecode.Second + frame/2},
		{"reverse", Speed{Num: -1, Den: 1}, timecode.Second - frame},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(fixedDuration(10*timecode.Second), fps24, true)
			c.Seek(timecode.Second)
			c.SetSpeed(tt.speed)
			c.Play()
			if !c.Tick() {
				t.Fatal("Tick() = false, want true")
			}
			if got := c.Time(); got != tt.want {
				t.Errorf("Time() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTickWhileStopped(t *testing.T) {
	c := New(fixedDuration(10*timecode.Second), fps24, true)
	if c.Tick() {
		t.Error("Tick() = true while stopped")
	}
	if c.Time() != 0 {
		t.Errorf("Time() = %v, want 0", c.Time())
	}
}

func TestSeek(t *testing.T) {
	d := 10 * timecode.Second
	frame := fps24.Frame()
	tests := []struct {
		name string
		in   timecode.Time
		want timecode.Time
	}{
		{"negative", -timecode.Second, 0},
		{"past end", 20 * timecode.Second, d},
		{"snaps down", 2*timecode.Second + frame/3, 2 * timecode.Second},
		{"snaps up", 2*timecode.Second + frame*2/3, 2*timecode.Second + frame},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(fixedDuration(d), fps24, true)
			c.Play()
			if got := c.Seek(tt.in); got != tt.want {
				t.Errorf("Seek(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if !c.Playing() {
				t.Error("Seek() changed play state")
			}
		})
	}
}

func TestSeekOffGridDuration(t *testing.T) {
	d := 10*timecode.Second + fps24.Frame()*3/4
	c := New(fixedDuration(d), fps24, true)
	if got := c.Seek(d); got > d {
		t.Errorf("Seek(end) = %v, past duration %v", got, d)
	}
}

func TestStepFrames(t *testing.T) {
	frame := fps24.Frame()
	c := New(fixedDuration(timecode.Second), fps24, true)

	if got := c.StepFrames(3); got != 3*frame {
		t.Errorf("StepFrames(3) = %v, want %v", got, 3*frame)
	}
	if got := c.StepFrames(-10); got != 0 {
		t.Errorf("StepFrames(-10) = %v, want 0", got)
	}
	if got := c.StepFrames(100); got != timecode.Second {
		t.Errorf("StepFrames(100) = %v, want 1s", got)
	}
}

func TestShuttle(t *testing.T) {
	c := New(fixedDuration(60*timecode.Second), fps24, true)

	c.ShuttleForward()
	if !c.Playing() || c.Speed() != Normal {
		t.Fatalf("after L: playing=%v speed=%v, want playing at 1x", c.Playing(), c.Speed())
	}

	wants := []int64{2, 4, 8, 8}
	for _, w := range wants {
		c.ShuttleForward()
		if got := c.Speed(); got != (Speed{Num: w, Den: 1}) {
			t.Errorf("speed = %v, want %dx", got, w)
		}
	}

	c.ShuttleReverse()
	if got := c.Speed(); got != (Speed{Num: -1, Den: 1}) {
		t.Errorf("after J: speed = %v, want -1x", got)
	}
	c.ShuttleReverse()
	if got := c.Speed(); got != (Speed{Num: -2, Den: 1}) {
		t.Errorf("after JJ: speed = %v, want -2x", got)
	}

	c.Stop()
	if c.Playing() || c.Speed() != Normal {
		t.Errorf("after K: playing=%v speed=%v, want stopped at 1x", c.Playing(), c.Speed())
	}

	// Shuttling forward from a paused reverse state restarts at 1x.
	c.SetSpeed(Speed{Num: -4, Den: 1})
	c.ShuttleForward()
	if got := c.Speed(); got != Normal {
		t.Errorf("speed = %v, want 1x", got)
	}
}

func TestToggle(t *testing.T) {
	c := New(fixedDuration(timecode.Second), fps24, true)
	c.Toggle()
	if !c.Playing() {
		t.Error("Toggle() from stopped did not play")
	}
	c.Toggle()
	if c.Playing() {
		t.Error("Toggle() from playing did not pause")
	}
}

func TestParseSpeed(t *testing.T) {
	tests := []struct {
		in      string
		want    Speed
		wantErr error
	}{
		{in: "2", want: Speed{2, 1}},
		{in: "-1", want: Speed{-1, 1}},
		{in: "2/4", want: Speed{1, 2}},
		{in: "0", wantErr: errors.ErrBounds},
		{in: "1/0", wantErr: errors.ErrBounds},
		{in: "fast"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpeed(tt.in)
			if tt.want == (Speed{}) {
				if err == nil {
					t.Fatalf("ParseSpeed(%q) error = nil, want error", tt.in)
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseSpeed(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSpeed(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSpeed(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetZoomClamps(t *testing.T) {
	c := New(fixedDuration(timecode.Second), fps24, true)
	if got := c.SetZoom(0); got != MinZoom {
		t.Errorf("SetZoom(0) = %v, want %v", got, MinZoom)
	}
	if got := c.SetZoom(1000); got != MaxZoom {
		t.Errorf("SetZoom(1000) = %v, want %v", got, MaxZoom)
	}
}

func TestRunStopsAtEnd(t *testing.T) {
	rate := timecode.Rate{Num: 120, Den: 1}
	c := New(fixedDuration(rate.Frame()*5), rate, true)
	c.Play()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var states int
	if err := c.Run(ctx, func(s core.TransportState) { states++ }); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if states != 5 {
		t.Errorf("onTick calls = %d, want 5", states)
	}
	if c.Time() != rate.Frame()*5 {
		t.Errorf("Time() = %v, want end", c.Time())
	}
}

func TestRunCancel(t *testing.T) {
	c := New(fixedDuration(3600*timecode.Second), fps24, true)
	c.Play()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestPlayheadClampedWhenTimelineShrinks(t *testing.T) {
	src := &shrinkingDuration{d: timecode.FromSeconds(30)}
	c := New(src, fps24, true)
	c.Seek(timecode.FromSeconds(25))

	src.d = timecode.FromSeconds(10)

	if got := c.Time(); got != timecode.FromSeconds(10) {
		t.Errorf("Time() = %v, want 10s", got)
	}
	if got := c.State().CurrentTime; got != 10 {
		t.Errorf("State().CurrentTime = %v, want 10", got)
	}
	if got := c.StepFrames(-1); got != timecode.FromSeconds(10)-fps24.Frame() {
		t.Errorf("StepFrames(-1) = %v, want one frame before 10s", got)
	}
}
