// Package majority finds the tightest band of sorted sizes that still holds a
// majority share of a collection, using prefix sums and a two-pointer sweep.
package majority

import "fmt"

// PrefixSum holds cumulative totals of a sorted sequence. Element 0 is zero and
// element i is the sum of the first i values, so it always has n+1 entries.
type PrefixSum []int64

// BuildPrefixSum returns the prefix sum of sorted. The input is expected to be
// sorted ascending already; order is not checked here.
func BuildPrefixSum(sorted []int64) PrefixSum {
	ps := make(PrefixSum, len(sorted)+1)
	for i, v := range sorted {
		ps[i+1] = ps[i] + v
	}
	return ps
}

// CountPrefixSum returns the prefix sum of n ones, weighting every file equally.
func CountPrefixSum(n int) PrefixSum {
	if n < 0 {
		n = 0
	}
	ps := make(PrefixSum, n+1)
	for i := 1; i <= n; i++ {
		ps[i] = int64(i)
	}
	return ps
}

// Len reports the number of values the prefix sum was built from.
func (ps PrefixSum) Len() int {
	if len(ps) == 0 {
		return 0
	}
	return len(ps) - 1
}

// Total is the sum of every value.
func (ps PrefixSum) Total() int64 {
	if len(ps) == 0 {
		return 0
	}
	return ps[len(ps)-1]
}

// Sum returns the total of values l..r, 1-based and inclusive. l is clamped to
// at least 1 and r to at most Len(). A range that is empty after clamping is
// an error rather than a negative total.
func (ps PrefixSum) Sum(l, r int) (int64, error) {
	l, r = max(l, 1), min(r, ps.Len())
	if l > r {
		return 0, fmt.Errorf("sum [%d, %d] of %d values: %w", l, r, ps.Len(), ErrInvalidRange)
	}
	return ps[r] - ps[l-1], nil
}

// RelativeSum returns Sum(l, r) as a fraction of Total().
func (ps PrefixSum) RelativeSum(l, r int) (float64, error) {
	total := ps.Total()
	if total == 0 {
		return 0, ErrZeroTotal
	}
	sum, err := ps.Sum(l, r)
	if err != nil {
		return 0, err
	}
	return float64(sum) / float64(total), nil
}

// share is RelativeSum without clamping or checks, for callers that already
// guarantee 1 <= l <= r <= n and a nonzero total.
func (ps PrefixSum) share(l, r int) float64 {
	return float64(ps[r]-ps[l-1]) / float64(ps[len(ps)-1])
}
