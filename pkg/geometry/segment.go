package geometry

import "math"

// orientEps is the tolerance below which a cross product is treated as
// zero, i.e. three points are considered collinear. Coordinates are in
// millimeters, so this is far below any feature size.
const orientEps = 1e-9

// Segment is an ordered pair of points. It is undirected for
// intersection purposes.
type Segment struct {
	A Point2D `json:"a"`
	B Point2D `json:"b"`
}

// NewSegment creates a new Segment.
func NewSegment(a, b Point2D) Segment {
	return Segment{A: a, B: b}
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// Intersects reports whether this segment and other cross, touch at an
// endpoint, or overlap collinearly.
func (s Segment) Intersects(other Segment) bool {
	return SegmentsIntersect(s.A, s.B, other.A, other.B)
}

// Orientation returns the turn direction of the ordered triple (a, b, c):
// +1 for counter-clockwise, -1 for clockwise, 0 for collinear (within
// tolerance). Using the sign of the cross product avoids the divisions
// and exact float comparisons of a slope/intercept formulation.
func Orientation(a, b, c Point2D) int {
	cross := b.Sub(a).Cross(c.Sub(a))
	if cross > orientEps {
		return 1
	}
	if cross < -orientEps {
		return -1
	}
	return 0
}

// onSegment reports whether p lies within the axis-aligned extent of
// segment ab. Only meaningful when a, b, p are collinear.
func onSegment(a, b, p Point2D) bool {
	return math.Min(a.X, b.X)-orientEps <= p.X && p.X <= math.Max(a.X, b.X)+orientEps &&
		math.Min(a.Y, b.Y)-orientEps <= p.Y && p.Y <= math.Max(a.Y, b.Y)+orientEps
}

// SegmentsIntersect reports whether segments ab and cd cross, touch at
// an endpoint, or overlap collinearly. Boundary touches count as
// intersecting; disjoint collinear segments do not. Zero-length
// segments are valid: a degenerate segment intersects exactly when its
// point lies on the other segment.
func SegmentsIntersect(a, b, c, d Point2D) bool {
	o1 := Orientation(a, b, c)
	o2 := Orientation(a, b, d)
	o3 := Orientation(c, d, a)
	o4 := Orientation(c, d, b)

	// Proper or endpoint crossing: c and d on opposite sides of ab,
	// and a and b on opposite sides of cd.
	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear cases: an endpoint of one segment lies on the other.
	if o1 == 0 && onSegment(a, b, c) {
		return true
	}
	if o2 == 0 && onSegment(a, b, d) {
		return true
	}
	if o3 == 0 && onSegment(c, d, a) {
		return true
	}
	if o4 == 0 && onSegment(c, d, b) {
		return true
	}
	return false
}
