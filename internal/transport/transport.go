// Package transport moves the playhead across a timeline: play and pause,
// J/K/L shuttle, seeking and frame stepping, all clamped to the timeline's
// duration.
package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

// DurationSource reports the current length of the material being played.
// *timeline.Timeline satisfies it.
type DurationSource interface {
	Duration() timecode.Time
}

// PlayState is the transport's state machine.
type PlayState int

const (
	Stopped PlayState = iota
	Playing
)

func (s PlayState) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// MaxShuttle bounds the shuttle speed magnitude.
const MaxShuttle = 8

// Zoom limits for the presentation zoom level.
const (
	MinZoom = 0.1
	MaxZoom = 50.0
)

// Controller implements core.Transport over a DurationSource. Control calls
// may come from a different goroutine than Run.
type Controller struct {
	mu sync.Mutex

	source DurationSource
	rate   timecode.Rate
	snap   bool

	current timecode.Time
	state   PlayState
	speed   Speed
	zoom    float64

	log *zap.Logger
}

var _ core.Transport = (*Controller)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger logs state transitions at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a stopped controller at time zero, normal speed.
func New(source DurationSource, rate timecode.Rate, snap bool, opts ...Option) *Controller {
	if rate.Validate() != nil {
		rate = timecode.DefaultRate
	}
	c := &Controller{
		source: source,
		rate:   rate,
		snap:   snap,
		speed:  Normal,
		zoom:   1,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) duration() timecode.Time {
	if c.source == nil {
		return 0
	}
	return c.source.Duration()
}

// position re-clamps the playhead against the current duration. Edits can
// shrink the timeline under a parked playhead.
func (c *Controller) position() timecode.Time {
	c.current = timecode.Clamp(c.current, 0, c.duration())
	return c.current
}

func (c *Controller) setState(s PlayState) {
	if c.state != s {
		c.log.Debug("transport state", zap.Stringer("state", s), zap.Stringer("at", c.current))
	}
	c.state = s
}

// Play starts playback at the current speed.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setState(Playing)
}

// Pause stops playback. The next tick does not advance.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setState(Stopped)
}

// Toggle flips between playing and stopped.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Playing {
		c.setState(Stopped)
	} else {
		c.setState(Playing)
	}
}

// Stop pauses and resets the speed to normal (K).
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setState(Stopped)
	c.speed = Normal
}

// ShuttleForward starts forward playback at normal speed, or doubles the
// speed when already playing forward (L).
func (c *Controller) ShuttleForward() {
	c.shuttle(1)
}

// ShuttleReverse mirrors ShuttleForward (J).
func (c *Controller) ShuttleReverse() {
	c.shuttle(-1)
}

func (c *Controller) shuttle(dir int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Playing && c.speed.sign() == dir {
		c.speed = c.speed.double()
	} else {
		c.speed = Speed{Num: dir, Den: 1}
	}
	c.setState(Playing)
	c.log.Debug("shuttle", zap.Stringer("speed", c.speed))
}

// SetSpeed changes speed without starting playback.
func (c *Controller) SetSpeed(s Speed) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = s.reduce()
	return nil
}

// Speed returns the current signed speed.
func (c *Controller) Speed() Speed {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Seek moves the playhead to the snapped, clamped time. Play state is kept.
func (c *Controller) Seek(t timecode.Time) timecode.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seek(t)
}

func (c *Controller) seek(t timecode.Time) timecode.Time {
	d := c.duration()
	t = timecode.Snap(timecode.Clamp(t, 0, d), c.rate, c.snap)
	// A duration off the frame grid can snap past the end.
	c.current = timecode.Clamp(t, 0, d)
	return c.current
}

// StepFrames moves the playhead by n frames, clamped to the timeline.
func (c *Controller) StepFrames(n int) timecode.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seek(c.position() + timecode.Time(n)*c.rate.Frame())
}

// Tick advances one frame interval at the current speed. Reaching either
// end stops playback there. It reports whether playback continues.
func (c *Controller) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Playing {
		return false
	}

	d := c.duration()
	step := timecode.Time(c.speed.Num * int64(c.rate.Frame()) / c.speed.Den)
	next := c.current + step
	switch {
	case next >= d && step > 0:
		c.current = d
		c.setState(Stopped)
	case next <= 0 && step < 0:
		c.current = 0
		c.setState(Stopped)
	default:
		c.current = timecode.Clamp(next, 0, d)
	}
	return c.state == Playing
}

// Interval is the wall-clock time between ticks: one frame.
func (c *Controller) Interval() time.Duration {
	f := c.rate.Frame()
	return time.Duration(int64(f) * int64(time.Second) / timecode.FlicksPerSecond)
}

// Run ticks at the frame cadence until playback stops or ctx is done.
// onTick, if set, sees the state after every tick.
func (c *Controller) Run(ctx context.Context, onTick func(core.TransportState)) error {
	ticker := time.NewTicker(c.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			playing := c.Tick()
			if onTick != nil {
				onTick(c.State())
			}
			if !playing {
				return nil
			}
		}
	}
}

// Time returns the playhead position.
func (c *Controller) Time() timecode.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position()
}

// Playing reports whether the transport is running.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Playing
}

// Rate returns the frame rate ticks are derived from.
func (c *Controller) Rate() timecode.Rate {
	return c.rate
}

// SetSnap turns seek snapping on or off.
func (c *Controller) SetSnap(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = enabled
}

// SetZoom sets the presentation zoom level, clamped to [MinZoom, MaxZoom].
func (c *Controller) SetZoom(z float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = min(max(z, MinZoom), MaxZoom)
	return c.zoom
}

// Zoom returns the presentation zoom level.
func (c *Controller) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

// State returns a snapshot for rendering.
func (c *Controller) State() core.TransportState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return core.TransportState{
		CurrentTime: c.position().Seconds(),
		IsPlaying:   c.state == Playing,
		Speed:       c.speed.Float(),
		Zoom:        c.zoom,
	}
}

// Restore sets the playhead without snapping, for reopening a saved
// session. The position is still clamped.
func (c *Controller) Restore(t timecode.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = timecode.Clamp(t, 0, c.duration())
}

func (c *Controller) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("%s %v %v", c.state, c.position(), c.speed)
}
