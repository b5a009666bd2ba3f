package transport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
)

// Speed is a signed rational playback rate. The sign is the direction.
type Speed struct {
	Num int64
	Den int64
}

// ErrZeroSpeed is returned for a speed with a zero numerator.
var ErrZeroSpeed = fmt.Errorf("speed must be non-zero: %w", errors.ErrBounds)

// Normal is forward playback at 1x.
var Normal = Speed{Num: 1, Den: 1}

// ParseSpeed reads "2", "-1", "1/2" or "-3/4".
func ParseSpeed(s string) (Speed, error) {
	s = strings.TrimSpace(s)
	num, den, hasDen := strings.Cut(s, "/")
	n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
	if err != nil {
		return Speed{}, fmt.Errorf("invalid speed %q", s)
	}
	d := int64(1)
	if hasDen {
		d, err = strconv.ParseInt(strings.TrimSpace(den), 10, 64)
		if err != nil {
			return Speed{}, fmt.Errorf("invalid speed %q", s)
		}
	}
	sp := Speed{Num: n, Den: d}
	if err := sp.Validate(); err != nil {
		return Speed{}, err
	}
	return sp.reduce(), nil
}

// Validate rejects zero speeds and non-positive denominators.
func (s Speed) Validate() error {
	if s.Den <= 0 {
		return fmt.Errorf("speed denominator %d: %w", s.Den, errors.ErrBounds)
	}
	if s.Num == 0 {
		return ErrZeroSpeed
	}
	return nil
}

// Float returns the speed as a multiplier.
func (s Speed) Float() float64 {
	if s.Den == 0 {
		return 0
	}
	return float64(s.Num) / float64(s.Den)
}

func (s Speed) String() string {
	if s.Den == 1 {
		return strconv.FormatInt(s.Num, 10) + "x"
	}
	return fmt.Sprintf("%d/%dx", s.Num, s.Den)
}

func (s Speed) sign() int64 {
	switch {
	case s.Num > 0:
		return 1
	case s.Num < 0:
		return -1
	}
	return 0
}

// double returns twice s, with magnitude capped at MaxShuttle.
func (s Speed) double() Speed {
	d := Speed{Num: s.Num * 2, Den: s.Den}.reduce()
	if abs(d.Num) > MaxShuttle*d.Den {
		return Speed{Num: s.sign() * MaxShuttle, Den: 1}
	}
	return d
}

func (s Speed) reduce() Speed {
	g := gcd(abs(s.Num), s.Den)
	if g <= 1 {
		return s
	}
	return Speed{Num: s.Num / g, Den: s.Den / g}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
