package timeline

import "math"

// IntervalKind tells what occupies an interval.
type IntervalKind int

const (
	// IntervalBar is an item's bar footprint on a row.
	IntervalBar IntervalKind = iota
	// IntervalLabel is a floating label in a gap.
	IntervalLabel
)

// Interval is an occupied horizontal range on one row or gap, in axis units.
type Interval struct {
	Start, End float64
	Kind       IntervalKind
}

// Width returns End - Start.
func (iv Interval) Width() float64 { return iv.End - iv.Start }

// IntervalsOverlap reports whether a and b come within margin of each other.
func IntervalsOverlap(a, b Interval, margin float64) bool {
	return a.Start < b.End+margin && a.End+margin > b.Start
}

// overlapAmount returns how far a and b overlap; non-positive when disjoint.
func overlapAmount(a, b Interval) float64 {
	return min(a.End, b.End) - max(a.Start, b.Start)
}

// Point is a position in axis space (x in axis units, y in row units).
type Point struct{ X, Y float64 }

// Segment is a straight line between two points.
type Segment struct{ A, B Point }

// Parametric bounds inside which two segments count as crossing. Contact at
// or near an endpoint is allowed, since connectors may share a bar anchor.
const (
	crossLo = 0.05
	crossHi = 0.95
)

// SegmentsIntersect reports whether segment p1-p2 crosses segment p3-p4 away
// from their endpoints. Parallel and collinear segments never cross.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	d := (p2.X-p1.X)*(p4.Y-p3.Y) - (p2.Y-p1.Y)*(p4.X-p3.X)
	if math.Abs(d) < 1e-12 {
		return false
	}
	t := ((p3.X-p1.X)*(p4.Y-p3.Y) - (p3.Y-p1.Y)*(p4.X-p3.X)) / d
	u := ((p3.X-p1.X)*(p2.Y-p1.Y) - (p3.Y-p1.Y)*(p2.X-p1.X)) / d
	return t > crossLo && t < crossHi && u > crossLo && u < crossHi
}

// Crosses is SegmentsIntersect for two Segment values.
func (s Segment) Crosses(o Segment) bool {
	return SegmentsIntersect(s.A, s.B, o.A, o.B)
}
