package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval is the sentinel wrapped by InvalidIntervalError.
	ErrInvalidInterval = errors.New("invalid timing interval")
	// ErrInvalidTimingPoint is the sentinel wrapped by InvalidTimingPointError.
	ErrInvalidTimingPoint = errors.New("invalid timing point")
)

// InvalidIntervalError reports an interval whose start lies after its end.
type InvalidIntervalError struct {
	Start TimingPoint
	End   TimingPoint
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("%v: start %s is after end %s", ErrInvalidInterval, e.Start, e.End)
}

func (e *InvalidIntervalError) Unwrap() error { return ErrInvalidInterval }

// InvalidTimingPointError reports a point whose fractional part lies outside
// [0,1] or whose x-slot number is negative.
type InvalidTimingPointError struct {
	Point TimingPoint
}

func (e *InvalidTimingPointError) Error() string {
	return fmt.Sprintf("%v: %s is outside its x-slot", ErrInvalidTimingPoint, e.Point)
}

func (e *InvalidTimingPointError) Unwrap() error { return ErrInvalidTimingPoint }

// TimingPoint is a position on the x-slot timeline. Whole is the 1-based
// x-slot number (0 is reserved for whole-sign timing) and Frac the position
// within that x-slot, in [0,1].
type TimingPoint struct {
	Whole int
	Frac  Fraction
}

// NewTimingPoint builds a point from a whole part and a num/den fraction.
func NewTimingPoint(whole int, num, den int64) TimingPoint {
	return TimingPoint{Whole: whole, Frac: NewFraction(num, den)}
}

// Validate checks that p lies within its x-slot.
func (p TimingPoint) Validate() error {
	if p.Whole < 0 || p.Frac.Num() < 0 || p.Frac.Cmp(NewFraction(1, 1)) > 0 {
		return &InvalidTimingPointError{Point: p}
	}

	return nil
}

func (p TimingPoint) String() string {
	return fmt.Sprintf("(%d, %s)", p.Whole, p.Frac)
}

// Cmp orders points by whole part, then fractional part.
func (p TimingPoint) Cmp(q TimingPoint) int {
	switch {
	case p.Whole < q.Whole:
		return -1
	case p.Whole > q.Whole:
		return 1
	default:
		return p.Frac.Cmp(q.Frac)
	}
}

// Equal reports exact equality.
func (p TimingPoint) Equal(q TimingPoint) bool { return p.Cmp(q) == 0 }

// Adjacent reports whether p and q name the same instant from either side of
// an x-slot boundary: the end (frac 1) of one x-slot and the start (frac 0)
// of the next.
func (p TimingPoint) Adjacent(q TimingPoint) bool {
	return adjacentOrdered(p, q) || adjacentOrdered(q, p)
}

func adjacentOrdered(p, q TimingPoint) bool {
	return p.Frac.IsOne() && q.Frac.IsZero() && q.Whole == p.Whole+1
}

// Equivalent reports whether p and q are equal or adjacent.
func (p TimingPoint) Equivalent(q TimingPoint) bool {
	return p.Equal(q) || p.Adjacent(q)
}

// Before reports whether p is strictly earlier than q and not equivalent to it.
func (p TimingPoint) Before(q TimingPoint) bool {
	return p.Cmp(q) < 0 && !p.Adjacent(q)
}

// After reports whether p is strictly later than q and not equivalent to it.
func (p TimingPoint) After(q TimingPoint) bool {
	return q.Before(p)
}

// atMost is the non-strict counterpart of Before.
func (p TimingPoint) atMost(q TimingPoint) bool {
	return p.Cmp(q) <= 0 || p.Equivalent(q)
}

// TimingInterval spans Start..End on the x-slot timeline.
type TimingInterval struct {
	Start TimingPoint
	End   TimingPoint
}

// NewTimingInterval validates both points and start <= end.
func NewTimingInterval(start, end TimingPoint) (TimingInterval, error) {
	i := TimingInterval{Start: start, End: end}
	if err := i.Validate(); err != nil {
		return TimingInterval{}, err
	}

	return i, nil
}

// MustTimingInterval is NewTimingInterval for literals known to be valid.
func MustTimingInterval(start, end TimingPoint) TimingInterval {
	interval, err := NewTimingInterval(start, end)
	if err != nil {
		panic(err)
	}

	return interval
}

// WholeSignInterval is the timing assigned to modules that span the entire
// sign rather than particular x-slots.
func WholeSignInterval() TimingInterval {
	return TimingInterval{Start: NewTimingPoint(0, 0, 1), End: NewTimingPoint(0, 1, 1)}
}

// XslotInterval returns the span of the n-th (1-based) x-slot.
func XslotInterval(n int) TimingInterval {
	return TimingInterval{Start: NewTimingPoint(n, 0, 1), End: NewTimingPoint(n, 1, 1)}
}

func (i TimingInterval) String() string {
	return fmt.Sprintf("%s-%s", i.Start, i.End)
}

// Validate re-checks the point and ordering invariants, for intervals built
// without NewTimingInterval (e.g. decoded from a file).
func (i TimingInterval) Validate() error {
	if err := i.Start.Validate(); err != nil {
		return err
	}

	if err := i.End.Validate(); err != nil {
		return err
	}

	if i.Start.Cmp(i.End) > 0 {
		return &InvalidIntervalError{Start: i.Start, End: i.End}
	}

	return nil
}

// IsPoint reports whether the interval has no duration. Adjacent endpoints
// count as the same instant.
func (i TimingInterval) IsPoint() bool {
	return i.Start.Equivalent(i.End)
}

// IsWholeSign reports whether i is the whole-sign interval.
func (i TimingInterval) IsWholeSign() bool {
	return i.Start.Equal(WholeSignInterval().Start) && i.End.Equal(WholeSignInterval().End)
}

// Before reports whether i ends before q starts. Touching endpoints order two
// intervals only when neither is a point.
func (i TimingInterval) Before(q TimingInterval) bool {
	if i.IsPoint() || q.IsPoint() {
		return i.End.Before(q.Start)
	}

	return i.End.atMost(q.Start)
}

// After reports whether i starts after q ends; it mirrors Before.
func (i TimingInterval) After(q TimingInterval) bool {
	return q.Before(i)
}

// BeforePoint reports whether i ends strictly before p.
func (i TimingInterval) BeforePoint(p TimingPoint) bool {
	return i.End.Before(p)
}

// AfterPoint reports whether i starts strictly after p.
func (i TimingInterval) AfterPoint(p TimingPoint) bool {
	return i.Start.After(p)
}

// ContainsPoint reports whether p lies within [Start, End].
func (i TimingInterval) ContainsPoint(p TimingPoint) bool {
	return i.Start.atMost(p) && p.atMost(i.End)
}

// OverlapsInterval reports whether the open interiors of i and q intersect.
func (i TimingInterval) OverlapsInterval(q TimingInterval) bool {
	if i.IsPoint() || q.IsPoint() {
		return false
	}

	return i.Start.Before(q.End) && q.Start.Before(i.End)
}

// ContainsInterval reports whether q lies entirely within i.
func (i TimingInterval) ContainsInterval(q TimingInterval) bool {
	return i.Start.atMost(q.Start) && q.End.atMost(i.End)
}

// Adjacent reports whether i and q touch end to start.
func (i TimingInterval) Adjacent(q TimingInterval) bool {
	return i.End.Equivalent(q.Start) || q.End.Equivalent(i.Start)
}
