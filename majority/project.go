package majority

import "fmt"

// SegmentKind places a segment relative to the found interval.
type SegmentKind string

const (
	SegmentBefore SegmentKind = "before"
	SegmentWithin SegmentKind = "within"
	SegmentAfter  SegmentKind = "after"
)

// Segment is one slice of the sorted sequence and its share of the mass.
type Segment struct {
	Kind     SegmentKind `yaml:"kind"`
	Interval Interval    `yaml:"interval"`
	Count    int         `yaml:"count"`
	Mass     float64     `yaml:"mass"`
}

// Projection is a found interval expressed in reporting terms.
type Projection struct {
	Interval Interval `yaml:"interval"`
	// Segments holds before/within/after in that order. Before and after are
	// left out when they would be empty.
	Segments []Segment `yaml:"segments"`

	Low  int64 `yaml:"low"`
	High int64 `yaml:"high"`

	Count      int     `yaml:"count"`
	Total      int     `yaml:"total"`
	Bytes      int64   `yaml:"bytes"`
	TotalBytes int64   `yaml:"total_bytes"`
	Share      float64 `yaml:"share"`
	FileShare  float64 `yaml:"file_share"`
}

// Span is High-Low, the width of the band in bytes.
func (p Projection) Span() int64 {
	return p.High - p.Low
}

// Within returns the segment covering the interval itself.
func (p Projection) Within() Segment {
	for _, s := range p.Segments {
		if s.Kind == SegmentWithin {
			return s
		}
	}
	return Segment{}
}

// Project splits the mass in ps around iv. sorted supplies the boundary values
// and byte totals; ps supplies the mass the segments are measured in.
func Project(sorted []int64, ps PrefixSum, iv Interval) (Projection, error) {
	n := ps.Len()
	if len(sorted) != n {
		return Projection{}, fmt.Errorf("%w: %d values, prefix sum of %d", ErrLengthMismatch, len(sorted), n)
	}
	if iv.L < 1 || iv.R > n || iv.L > iv.R {
		return Projection{}, fmt.Errorf("project %s of %d values: %w", iv, n, ErrInvalidRange)
	}
	if ps.Total() == 0 {
		return Projection{}, ErrZeroTotal
	}

	p := Projection{
		Interval: iv,
		Low:      sorted[iv.L-1],
		High:     sorted[iv.R-1],
		Count:    iv.Count(),
		Total:    n,
	}

	add := func(kind SegmentKind, l, r int) {
		seg := Interval{L: l, R: r}
		p.Segments = append(p.Segments, Segment{
			Kind:     kind,
			Interval: seg,
			Count:    seg.Count(),
			Mass:     ps.share(l, r),
		})
	}
	if iv.L > 1 {
		add(SegmentBefore, 1, iv.L-1)
	}
	add(SegmentWithin, iv.L, iv.R)
	if iv.R < n {
		add(SegmentAfter, iv.R+1, n)
	}

	for i, v := range sorted {
		p.TotalBytes += v
		if i+1 >= iv.L && i+1 <= iv.R {
			p.Bytes += v
		}
	}
	p.Share = p.Within().Mass
	p.FileShare = float64(p.Count) / float64(n)
	return p, nil
}
