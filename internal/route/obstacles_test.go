package route

import (
	"testing"

	"cpw-router/pkg/geometry"
)

func TestObstaclesUnobstructed(t *testing.T) {
	obstacles := NewObstacles([]geometry.Rect{
		geometry.NewRect(2, 2, 2, 2), // box spanning (2,2)-(4,4)
		geometry.NewRect(8, 0, 1, 1),
	})

	tests := []struct {
		name string
		a, b geometry.Point2D
		want bool
	}{
		{"Well clear of all boxes", pt(0, 0), pt(1, 1), true},
		{"Straight through the first box", pt(0, 3), pt(6, 3), false},
		{"Straight through the second box", pt(8.5, -1), pt(8.5, 2), false},
		{"Ends on a box edge", pt(0, 0), pt(2, 2), false},
		{"Grazes along a box edge", pt(2, 0), pt(2, 5), false},
		{"Passes between the boxes", pt(6, -2), pt(6, 6), true},
		{"Above everything", pt(0, 10), pt(10, 10), true},
		{"Stops short of a box", pt(0, 3), pt(1.5, 3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := obstacles.Unobstructed(tt.a, tt.b); got != tt.want {
				t.Errorf("Unobstructed(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestObstaclesDegenerateBox(t *testing.T) {
	// A zero-width box degenerates to a vertical line at x=2. It must
	// still block a crossing segment and must not fault the predicate.
	obstacles := NewObstacles([]geometry.Rect{geometry.NewRect(2, -1, 0, 2)})
	if obstacles.Unobstructed(pt(0, 0), pt(5, 0)) {
		t.Error("segment crossing a degenerate box should be obstructed")
	}
	if !obstacles.Unobstructed(pt(0, 5), pt(5, 5)) {
		t.Error("segment clear of a degenerate box should be unobstructed")
	}
}

func TestObstaclesNilAndEmpty(t *testing.T) {
	var nilObstacles *Obstacles
	if !nilObstacles.Unobstructed(pt(0, 0), pt(100, 100)) {
		t.Error("nil obstacle set should never obstruct")
	}
	if nilObstacles.Len() != 0 {
		t.Errorf("nil obstacle set Len() = %d, want 0", nilObstacles.Len())
	}

	empty := NewObstacles(nil)
	if !empty.Unobstructed(pt(0, 0), pt(100, 100)) {
		t.Error("empty obstacle set should never obstruct")
	}
}

func TestObstaclesCopiesInput(t *testing.T) {
	boxes := []geometry.Rect{geometry.NewRect(2, 2, 2, 2)}
	obstacles := NewObstacles(boxes)

	// Mutating the caller's slice must not affect the set.
	boxes[0] = geometry.NewRect(50, 50, 1, 1)
	if obstacles.Unobstructed(pt(0, 3), pt(6, 3)) {
		t.Error("obstacle set should retain the boxes it was built with")
	}
}
