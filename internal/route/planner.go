package route

import (
	"math"

	"cpw-router/pkg/geometry"
)

// Planner chooses connecting polylines between directed route points.
// It tries a small catalogue of shapes in a fixed preference order:
// a straight segment, an L through one of the two free rectangle
// corners, and an S through the bisector of the start/end rectangle.
// Shapes whose bends arrive strictly aligned with the launch
// directions are preferred; a relaxed pass then tolerates
// perpendicular joins when no strictly aligned shape works.
type Planner struct {
	// Obstacles holds the boxes to avoid. May be nil.
	Obstacles *Obstacles
	// AvoidCollision enables per-segment obstruction checks on every
	// candidate shape.
	AvoidCollision bool
}

// Leg returns the vertices of a polyline from start.Position to
// end.Position, or nil if no shape in the catalogue satisfies the
// direction and collision constraints.
func (p *Planner) Leg(start, end RoutePoint) []geometry.Point2D {
	s := start.Position
	e := end.Position
	delta := e.Sub(s)

	// The stop direction points along the longer edge of the
	// axis-aligned rectangle spanned by start and end. An S-shaped leg
	// bisects that edge.
	var stopDir geometry.Point2D
	wide := math.Abs(delta.X) >= math.Abs(delta.Y)
	if wide {
		stopDir = geometry.Point2D{X: delta.X}
	} else {
		stopDir = geometry.Point2D{Y: delta.Y}
	}

	if s.X == e.X || s.Y == e.Y {
		// Matching x or y coordinate: a single segment can connect the
		// endpoints. It must not run backward out of the start, must
		// not run into a directed end head-on, and must be clear of
		// obstacles when avoidance is on.
		if forwardOrPerp(start, delta) && forwardOrPerp(end, s.Sub(e)) &&
			p.clear(s, e) {
			return []geometry.Point2D{s, e}
		}
		return nil
	}

	// The endpoints span a proper rectangle. corner1 shares x with the
	// start, corner2 shares x with the end.
	corner1 := geometry.Point2D{X: s.X, Y: e.Y}
	corner2 := geometry.Point2D{X: e.X, Y: s.Y}

	// Collision results are computed once per shape and reused by the
	// relaxed pass below.
	viaC1 := p.clear(s, corner1) && p.clear(corner1, e)
	viaC2 := p.clear(s, corner2) && p.clear(corner2, e)

	// Perfect L: both the bend approach and the end approach carry a
	// strictly positive dot product. The second corner is only tried
	// when the first corner's launch was unusable at all.
	if forward(start, corner1.Sub(s)) && viaC1 {
		if forward(end, corner1.Sub(e)) {
			return []geometry.Point2D{s, corner1, e}
		}
	} else if forward(start, corner2.Sub(s)) && viaC2 {
		if forward(end, corner2.Sub(e)) {
			return []geometry.Point2D{s, corner2, e}
		}
	}

	// corner3/corner4 bound the segment bisecting the longer rectangle
	// edge; corner5/corner6 bisect the shorter one.
	var corner3, corner4, corner5, corner6 geometry.Point2D
	midX := (s.X + e.X) / 2
	midY := (s.Y + e.Y) / 2
	if wide {
		corner3 = geometry.Point2D{X: midX, Y: s.Y}
		corner4 = geometry.Point2D{X: midX, Y: e.Y}
		corner5 = geometry.Point2D{X: s.X, Y: midY}
		corner6 = geometry.Point2D{X: e.X, Y: midY}
	} else {
		corner3 = geometry.Point2D{X: s.X, Y: midY}
		corner4 = geometry.Point2D{X: e.X, Y: midY}
		corner5 = geometry.Point2D{X: midX, Y: s.Y}
		corner6 = geometry.Point2D{X: midX, Y: e.Y}
	}

	viaC34 := p.clear(s, corner3) && p.clear(corner3, corner4) && p.clear(corner4, e)
	viaC56 := p.clear(s, corner5) && p.clear(corner5, corner6) && p.clear(corner6, e)

	// Perfect S: the start direction must oppose the stop direction, so
	// the leg is a genuine S rather than a straight continuation.
	if dirDot(start, stopDir) < 0 && forward(start, corner3.Sub(s)) && viaC34 {
		if forward(end, corner4.Sub(e)) {
			return []geometry.Point2D{s, corner3, corner4, e}
		}
	}

	// Relaxed pass: the same shapes re-tested with the direction
	// constraints widened from strict to inclusive, so a perpendicular
	// join is tolerated. The secondary S through corner5/corner6 is
	// only ever tried here.
	if forwardOrPerp(start, corner1.Sub(s)) && viaC1 {
		if forwardOrPerp(end, corner1.Sub(e)) {
			return []geometry.Point2D{s, corner1, e}
		}
	}
	if forwardOrPerp(start, corner2.Sub(s)) && viaC2 {
		if forwardOrPerp(end, corner2.Sub(e)) {
			return []geometry.Point2D{s, corner2, e}
		}
	}
	if forwardOrPerp(start, corner3.Sub(s)) && viaC34 {
		if forwardOrPerp(end, corner4.Sub(e)) {
			return []geometry.Point2D{s, corner3, corner4, e}
		}
	}
	if forwardOrPerp(start, corner5.Sub(s)) && viaC56 {
		if forwardOrPerp(end, corner6.Sub(e)) {
			return []geometry.Point2D{s, corner5, corner6, e}
		}
	}

	return nil
}

// clear reports whether the segment ab passes the obstruction check,
// or trivially true when collision avoidance is off.
func (p *Planner) clear(a, b geometry.Point2D) bool {
	if !p.AvoidCollision {
		return true
	}
	return p.Obstacles.Unobstructed(a, b)
}

// dirDot returns the dot product of the point's direction with v, or
// +1 when the point is undirected (an undirected point constrains
// nothing).
func dirDot(rp RoutePoint, v geometry.Point2D) float64 {
	if !rp.Directed {
		return 1
	}
	return rp.Direction.Dot(v)
}

// forward reports whether v makes strict forward progress relative to
// the point's direction.
func forward(rp RoutePoint, v geometry.Point2D) bool {
	return dirDot(rp, v) > 0
}

// forwardOrPerp reports whether v is forward or perpendicular relative
// to the point's direction.
func forwardOrPerp(rp RoutePoint, v geometry.Point2D) bool {
	return dirDot(rp, v) >= 0
}
