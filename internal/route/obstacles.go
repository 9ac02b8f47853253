package route

import (
	"cpw-router/pkg/geometry"
)

// Obstacles is an explicit collection of axis-aligned bounding boxes a
// route must not cross. It is read-only during planning; callers must
// not mutate the boxes while a build is in progress.
type Obstacles struct {
	boxes []geometry.Rect
}

// NewObstacles creates an obstacle set from component bounding boxes.
// The slice is copied, so later changes to the argument do not affect
// the set.
func NewObstacles(boxes []geometry.Rect) *Obstacles {
	copied := make([]geometry.Rect, len(boxes))
	copy(copied, boxes)
	return &Obstacles{boxes: copied}
}

// Len returns the number of obstacle boxes.
func (o *Obstacles) Len() int {
	if o == nil {
		return 0
	}
	return len(o.boxes)
}

// Unobstructed reports whether the segment from a to b crosses no
// obstacle box. Each box is tested edge by edge with the segment
// intersection predicate; the scan stops at the first hit. A nil
// receiver is an empty set and always unobstructed.
func (o *Obstacles) Unobstructed(a, b geometry.Point2D) bool {
	if o == nil {
		return true
	}
	for _, box := range o.boxes {
		for _, edge := range box.Edges() {
			if geometry.SegmentsIntersect(a, b, edge.A, edge.B) {
				return false
			}
		}
	}
	return true
}
