package route

import (
	"testing"

	"cpw-router/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

func TestPlannerLeg_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		start RoutePoint
		end   RoutePoint
		want  []geometry.Point2D
	}{
		{
			name:  "Direct horizontal",
			start: DirectedAt(pt(0, 0), pt(1, 0)),
			end:   At(pt(5, 0)),
			want:  []geometry.Point2D{pt(0, 0), pt(5, 0)},
		},
		{
			name:  "Direct vertical",
			start: DirectedAt(pt(2, 1), pt(0, 1)),
			end:   At(pt(2, 7)),
			want:  []geometry.Point2D{pt(2, 1), pt(2, 7)},
		},
		{
			name:  "Direct refused when start points backward",
			start: DirectedAt(pt(0, 0), pt(-1, 0)),
			end:   At(pt(5, 0)),
			want:  nil,
		},
		{
			name:  "Direct into facing end pin",
			start: DirectedAt(pt(0, 0), pt(1, 0)),
			end:   DirectedAt(pt(5, 0), pt(-1, 0)),
			want:  []geometry.Point2D{pt(0, 0), pt(5, 0)},
		},
		{
			name:  "Direct refused when end pin faces away",
			start: DirectedAt(pt(0, 0), pt(1, 0)),
			end:   DirectedAt(pt(5, 0), pt(1, 0)),
			want:  nil,
		},
		{
			name:  "L via corner sharing start column",
			start: DirectedAt(pt(0, 0), pt(0, 1)),
			end:   DirectedAt(pt(5, 5), pt(-1, 0)),
			want:  []geometry.Point2D{pt(0, 0), pt(0, 5), pt(5, 5)},
		},
		{
			name:  "L via corner sharing end column",
			start: DirectedAt(pt(0, 0), pt(1, 0)),
			end:   DirectedAt(pt(5, 5), pt(0, -1)),
			want:  []geometry.Point2D{pt(0, 0), pt(5, 0), pt(5, 5)},
		},
		{
			name:  "S through long axis bisector",
			start: DirectedAt(pt(0, 0), pt(0, -1)),
			end:   DirectedAt(pt(10, 4), pt(0, 1)),
			want:  []geometry.Point2D{pt(0, 0), pt(5, 0), pt(5, 4), pt(10, 4)},
		},
		{
			name:  "S through short axis bisector",
			start: DirectedAt(pt(0, 0), pt(-1, 1)),
			end:   DirectedAt(pt(10, 4), pt(1, -1)),
			want:  []geometry.Point2D{pt(0, 0), pt(0, 2), pt(10, 2), pt(10, 4)},
		},
		{
			name:  "Undirected endpoints get a simple L",
			start: At(pt(0, 0)),
			end:   At(pt(5, 5)),
			want:  []geometry.Point2D{pt(0, 0), pt(0, 5), pt(5, 5)},
		},
	}

	planner := &Planner{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := planner.Leg(tt.start, tt.end)
			if !pointsEqual(got, tt.want) {
				t.Errorf("Leg() = %v, want %v", got, tt.want)
			}
			if len(got) > 0 {
				if got[0] != tt.start.Position {
					t.Errorf("leg starts at %v, want %v", got[0], tt.start.Position)
				}
				if got[len(got)-1] != tt.end.Position {
					t.Errorf("leg ends at %v, want %v", got[len(got)-1], tt.end.Position)
				}
			}
		})
	}
}

// Whatever shape the planner picks, the first segment must not run
// backward out of the start and the last segment must not run head-on
// into the end direction.
func TestPlannerLeg_DirectionConstraintsHold(t *testing.T) {
	starts := []RoutePoint{
		DirectedAt(pt(0, 0), pt(1, 0)),
		DirectedAt(pt(0, 0), pt(0, 1)),
		DirectedAt(pt(0, 0), pt(-1, 1)),
		At(pt(0, 0)),
	}
	ends := []RoutePoint{
		DirectedAt(pt(7, 3), pt(0, -1)),
		DirectedAt(pt(7, 3), pt(-1, 0)),
		DirectedAt(pt(-4, 6), pt(1, 0)),
		At(pt(3, -9)),
	}

	planner := &Planner{}
	for _, start := range starts {
		for _, end := range ends {
			leg := planner.Leg(start, end)
			if len(leg) == 0 {
				continue
			}
			if start.Directed {
				first := leg[1].Sub(leg[0])
				if start.Direction.Dot(first) < 0 {
					t.Errorf("start %v end %v: first segment %v runs backward", start, end, first)
				}
			}
			if end.Directed {
				n := len(leg)
				back := leg[n-2].Sub(leg[n-1])
				if end.Direction.Dot(back) < 0 {
					t.Errorf("start %v end %v: last segment approaches against end direction", start, end)
				}
			}
		}
	}
}

func TestPlannerLeg_CollisionAvoidance(t *testing.T) {
	// One box squarely astride the straight corridor from (0,0) to (5,0).
	obstacles := NewObstacles([]geometry.Rect{geometry.NewRect(2, -1, 1, 2)})

	t.Run("Blocked collinear leg fails rather than crossing", func(t *testing.T) {
		planner := &Planner{Obstacles: obstacles, AvoidCollision: true}
		if got := planner.Leg(DirectedAt(pt(0, 0), pt(1, 0)), At(pt(5, 0))); got != nil {
			t.Errorf("Leg() = %v, want nil", got)
		}
	})

	t.Run("Avoidance off ignores obstacles", func(t *testing.T) {
		planner := &Planner{Obstacles: obstacles, AvoidCollision: false}
		want := []geometry.Point2D{pt(0, 0), pt(5, 0)}
		if got := planner.Leg(DirectedAt(pt(0, 0), pt(1, 0)), At(pt(5, 0))); !pointsEqual(got, want) {
			t.Errorf("Leg() = %v, want %v", got, want)
		}
	})

	t.Run("Blocked corner forces the detour corner", func(t *testing.T) {
		// Without the obstacle this start/end pair takes the corner at
		// (5,0); the box on that segment forces the (0,5) corner.
		planner := &Planner{Obstacles: obstacles, AvoidCollision: true}
		start := DirectedAt(pt(0, 0), pt(1, 0))
		end := DirectedAt(pt(5, 5), pt(0, -1))

		unblocked := (&Planner{}).Leg(start, end)
		if want := []geometry.Point2D{pt(0, 0), pt(5, 0), pt(5, 5)}; !pointsEqual(unblocked, want) {
			t.Fatalf("unblocked Leg() = %v, want %v", unblocked, want)
		}

		got := planner.Leg(start, end)
		want := []geometry.Point2D{pt(0, 0), pt(0, 5), pt(5, 5)}
		if !pointsEqual(got, want) {
			t.Errorf("Leg() = %v, want %v", got, want)
		}
		for i := 0; i < len(got)-1; i++ {
			if !obstacles.Unobstructed(got[i], got[i+1]) {
				t.Errorf("segment %v-%v crosses an obstacle", got[i], got[i+1])
			}
		}
	})
}

func pointsEqual(a, b []geometry.Point2D) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
