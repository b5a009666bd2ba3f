// Package timecode holds the integer time base shared by the timeline and
// transport. All positions are counted in flicks so that every common frame
// duration is an exact integer and grid arithmetic never drifts.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlicksPerSecond is the number of flicks in one second.
const FlicksPerSecond = 705_600_000

// Time is a timeline position or length in flicks.
type Time int64

// Second is one second of timeline time.
const Second Time = FlicksPerSecond

// FromSeconds converts seconds to the nearest flick.
func FromSeconds(s float64) Time {
	return Time(math.Round(s * FlicksPerSecond))
}

// Seconds returns t as floating point seconds.
func (t Time) Seconds() float64 {
	return float64(t) / FlicksPerSecond
}

func (t Time) String() string {
	return strconv.FormatFloat(t.Seconds(), 'f', 3, 64) + "s"
}

// Clamp bounds t to [lo, hi].
func Clamp(t, lo, hi Time) Time {
	if t < lo {
		return lo
	}
	if t > hi {
		return hi
	}
	return t
}

// Rate is a rational frame rate.
type Rate struct {
	Num int64
	Den int64
}

// Common project frame rates, keyed the way they appear in project settings.
var rates = map[string]Rate{
	"23.976": {24000, 1001},
	"24":     {24, 1},
	"25":     {25, 1},
	"29.97":  {30000, 1001},
	"30":     {30, 1},
	"48":     {48, 1},
	"50":     {50, 1},
	"59.94":  {60000, 1001},
	"60":     {60, 1},
	"120":    {120, 1},
}

// DefaultRate is used when a project does not name one.
var DefaultRate = Rate{24, 1}

// ParseRate accepts a named rate ("23.976"), an integer ("24") or an
// explicit fraction ("24000/1001").
func ParseRate(s string) (Rate, error) {
	s = strings.TrimSpace(s)
	if r, ok := rates[s]; ok {
		return r, nil
	}

	var r Rate
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
		if err != nil {
			return Rate{}, fmt.Errorf("invalid frame rate %q: %w", s, err)
		}
		d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
		if err != nil {
			return Rate{}, fmt.Errorf("invalid frame rate %q: %w", s, err)
		}
		r = Rate{Num: n, Den: d}
	} else {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Rate{}, fmt.Errorf("invalid frame rate %q", s)
		}
		r = Rate{Num: n, Den: 1}
	}

	if err := r.Validate(); err != nil {
		return Rate{}, err
	}
	return r, nil
}

// Validate reports whether one frame of r is a whole number of flicks.
func (r Rate) Validate() error {
	if r.Num <= 0 || r.Den <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d/%d", r.Num, r.Den)
	}
	if (FlicksPerSecond*r.Den)%r.Num != 0 {
		return fmt.Errorf("frame rate %d/%d does not divide the time base", r.Num, r.Den)
	}
	return nil
}

// Frame returns the duration of a single frame.
func (r Rate) Frame() Time {
	return Time(FlicksPerSecond * r.Den / r.Num)
}

// FPS returns the rate as a float, for display.
func (r Rate) FPS() float64 {
	return float64(r.Num) / float64(r.Den)
}

// Nominal is the integer frame count used for timecode labels
// (30 for 29.97, 24 for 23.976).
func (r Rate) Nominal() int64 {
	return (r.Num + r.Den - 1) / r.Den
}

func (r Rate) String() string {
	for name, v := range rates {
		if v == r {
			return name
		}
	}
	if r.Den == 1 {
		return strconv.FormatInt(r.Num, 10)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Frames returns the number of whole frames in t, rounding toward
// negative infinity.
func (r Rate) Frames(t Time) int64 {
	return floorDiv(int64(t), int64(r.Frame()))
}

// Snap rounds t to the nearest frame boundary of r when enabled. Ties round
// up, so the result is deterministic for any input.
func Snap(t Time, r Rate, enabled bool) Time {
	if !enabled {
		return t
	}
	frame := int64(r.Frame())
	if frame <= 0 {
		return t
	}
	n := floorDiv(int64(t)+frame/2, frame)
	return Time(n * frame)
}

// Format renders t as HH:MM:SS:FF using the nominal frame count of r.
func Format(t Time, r Rate) string {
	sign := ""
	if t < 0 {
		sign = "-"
		t = -t
	}
	fps := r.Nominal()
	total := r.Frames(t)

	h := total / (fps * 3600)
	m := (total % (fps * 3600)) / (fps * 60)
	s := (total % (fps * 60)) / fps
	f := total % fps
	return fmt.Sprintf("%s%02d:%02d:%02d:%02d", sign, h, m, s, f)
}

// Parse reads an HH:MM:SS:FF timecode.
func Parse(tc string, r Rate) (Time, error) {
	parts := strings.Split(strings.TrimSpace(tc), ":")
	if len(parts) != 4 {
		return 0, fmt.Errorf("invalid timecode %q: want HH:MM:SS:FF", tc)
	}

	var v [4]int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timecode %q", tc)
		}
		v[i] = n
	}

	fps := r.Nominal()
	if v[1] >= 60 || v[2] >= 60 || v[3] >= fps {
		return 0, fmt.Errorf("invalid timecode %q: field out of range", tc)
	}

	frames := (v[0]*3600+v[1]*60+v[2])*fps + v[3]
	return Time(frames) * r.Frame(), nil
}

// ParseAny accepts either a timecode or plain seconds ("12.5").
func ParseAny(s string, r Rate) (Time, error) {
	if strings.Contains(s, ":") {
		return Parse(s, r)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: use seconds or HH:MM:SS:FF", s)
	}
	return FromSeconds(f), nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
