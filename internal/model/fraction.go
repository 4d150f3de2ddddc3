// Package model defines the data structures shared by the sign comparison
// and corpus search engines.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Fraction is a reduced rational number. The zero value is 0/1, and two
// fractions are equal under == iff they denote the same number.
type Fraction struct {
	num int64
	// den-1, so the zero value is a valid 0/1
	denm1 int64
}

// NewFraction returns num/den in lowest terms. It panics if den is zero.
func NewFraction(num, den int64) Fraction {
	if den == 0 {
		panic("model: fraction with zero denominator")
	}

	if den < 0 {
		num, den = -num, -den
	}

	g := gcd(abs(num), den)

	return Fraction{num: num / g, denm1: den/g - 1}
}

// Num returns the numerator.
func (f Fraction) Num() int64 { return f.num }

// Den returns the denominator.
func (f Fraction) Den() int64 { return f.denm1 + 1 }

// Cmp returns -1, 0 or +1 depending on whether f is less than, equal to or
// greater than g.
func (f Fraction) Cmp(g Fraction) int {
	lhs := f.Num() * g.Den()
	rhs := g.Num() * f.Den()

	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

// Equal reports whether f and g denote the same number.
func (f Fraction) Equal(g Fraction) bool { return f == g }

// IsZero reports whether f equals 0.
func (f Fraction) IsZero() bool { return f.num == 0 }

// IsOne reports whether f equals 1.
func (f Fraction) IsOne() bool { return f.num != 0 && f.num == f.Den() }

func (f Fraction) String() string {
	if f.Den() == 1 {
		return strconv.FormatInt(f.num, 10)
	}

	return fmt.Sprintf("%d/%d", f.num, f.Den())
}

// ParseFraction parses "n", "n/d" forms.
func ParseFraction(s string) (Fraction, error) {
	s = strings.TrimSpace(s)

	numStr, denStr, hasDen := strings.Cut(s, "/")

	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return Fraction{}, fmt.Errorf("invalid fraction %q: %w", s, err)
	}

	if !hasDen {
		return NewFraction(num, 1), nil
	}

	den, err := strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
	if err != nil {
		return Fraction{}, fmt.Errorf("invalid fraction %q: %w", s, err)
	}

	if den == 0 {
		return Fraction{}, fmt.Errorf("invalid fraction %q: zero denominator", s)
	}

	return NewFraction(num, den), nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Fraction) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Fraction) UnmarshalText(text []byte) error {
	parsed, err := ParseFraction(string(text))
	if err != nil {
		return err
	}

	*f = parsed

	return nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	if a == 0 {
		return 1
	}

	return a
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}
