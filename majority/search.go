package majority

import (
	"fmt"
	"math"
)

// Interval is a 1-based inclusive range [L, R] of positions in a sorted sequence.
type Interval struct {
	L int `yaml:"l"`
	R int `yaml:"r"`
}

// Count is the number of values inside the interval.
func (iv Interval) Count() int {
	return iv.R - iv.L + 1
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d:%d]", iv.L, iv.R)
}

// validCoefficient reports whether c is a usable majority coefficient.
func validCoefficient(c float64) bool {
	return !math.IsNaN(c) && c > 0 && c <= 1
}

func checkSearch(ps PrefixSum, coeff float64) error {
	if ps.Len() == 0 {
		return ErrEmptySequence
	}
	if !validCoefficient(coeff) {
		return fmt.Errorf("%w: got %v", ErrInvalidCoefficient, coeff)
	}
	if ps.Total() == 0 {
		return fmt.Errorf("%w: %w", ErrNoQualifyingInterval, ErrZeroTotal)
	}
	return nil
}

// sweep runs the two-pointer walk shared by both searches. For every left end
// l it moves r forward to the first position where [l, r] holds at least coeff
// of the mass and hands the pair to visit. r never moves back: raising l only
// removes mass, so the smallest qualifying r can only grow.
func sweep(ps PrefixSum, coeff float64, visit func(l, r int)) {
	n := ps.Len()
	r := 1
	for l := 1; l <= n; l++ {
		r = max(r, l)
		for r <= n && ps.share(l, r) < coeff {
			r++
		}
		if r > n {
			break
		}
		visit(l, r)
	}
}

// MinCountInterval returns the interval with the fewest values whose relative
// mass reaches coeff. Ties keep the interval with the smallest L.
func MinCountInterval(ps PrefixSum, coeff float64) (Interval, error) {
	if err := checkSearch(ps, coeff); err != nil {
		return Interval{}, err
	}

	var best Interval
	found := false
	sweep(ps, coeff, func(l, r int) {
		if !found || r-l+1 < best.Count() {
			best, found = Interval{L: l, R: r}, true
		}
	})
	if !found {
		return Interval{}, ErrNoQualifyingInterval
	}
	return best, nil
}

// MinSpanInterval returns the interval with the narrowest value span
// sorted[R-1]-sorted[L-1] whose relative mass reaches coeff. The mass comes
// from ps, which may be built from the values themselves or from CountPrefixSum.
func MinSpanInterval(sorted []int64, ps PrefixSum, coeff float64) (Interval, error) {
	if len(sorted) != ps.Len() {
		return Interval{}, fmt.Errorf("%w: %d values, prefix sum of %d", ErrLengthMismatch, len(sorted), ps.Len())
	}
	if err := checkSearch(ps, coeff); err != nil {
		return Interval{}, err
	}

	var best Interval
	var bestSpan int64
	found := false
	sweep(ps, coeff, func(l, r int) {
		span := sorted[r-1] - sorted[l-1]
		if !found || span < bestSpan {
			best, bestSpan, found = Interval{L: l, R: r}, span, true
		}
	})
	if !found {
		return Interval{}, ErrNoQualifyingInterval
	}
	return best, nil
}
