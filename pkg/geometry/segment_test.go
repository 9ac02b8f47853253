package geometry

import "testing"

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d Point2D
		want       bool
	}{
		{
			name: "Crossing diagonals",
			a:    Point2D{0, 0}, b: Point2D{2, 2},
			c: Point2D{0, 2}, d: Point2D{2, 0},
			want: true,
		},
		{
			name: "Shared endpoint",
			a:    Point2D{0, 0}, b: Point2D{1, 0},
			c: Point2D{1, 0}, d: Point2D{1, 1},
			want: true,
		},
		{
			name: "Endpoint touching interior",
			a:    Point2D{0, 0}, b: Point2D{2, 0},
			c: Point2D{1, 0}, d: Point2D{1, 1},
			want: true,
		},
		{
			name: "Disjoint collinear",
			a:    Point2D{0, 0}, b: Point2D{1, 0},
			c: Point2D{2, 0}, d: Point2D{3, 0},
			want: false,
		},
		{
			name: "Overlapping collinear",
			a:    Point2D{0, 0}, b: Point2D{1, 0},
			c: Point2D{0.5, 0}, d: Point2D{2, 0},
			want: true,
		},
		{
			name: "Collinear touching at one point",
			a:    Point2D{0, 0}, b: Point2D{1, 0},
			c: Point2D{1, 0}, d: Point2D{2, 0},
			want: true,
		},
		{
			name: "Parallel horizontal",
			a:    Point2D{0, 0}, b: Point2D{2, 0},
			c: Point2D{0, 1}, d: Point2D{2, 1},
			want: false,
		},
		{
			name: "Parallel vertical",
			a:    Point2D{0, 0}, b: Point2D{0, 2},
			c: Point2D{1, 0}, d: Point2D{1, 2},
			want: false,
		},
		{
			name: "Vertical overlapping collinear",
			a:    Point2D{0, 0}, b: Point2D{0, 2},
			c: Point2D{0, 1}, d: Point2D{0, 3},
			want: true,
		},
		{
			name: "Vertical disjoint collinear",
			a:    Point2D{0, 0}, b: Point2D{0, 1},
			c: Point2D{0, 2}, d: Point2D{0, 3},
			want: false,
		},
		{
			name: "Vertical crossing horizontal",
			a:    Point2D{1, -1}, b: Point2D{1, 1},
			c: Point2D{0, 0}, d: Point2D{2, 0},
			want: true,
		},
		{
			name: "Vertical missing horizontal",
			a:    Point2D{3, -1}, b: Point2D{3, 1},
			c: Point2D{0, 0}, d: Point2D{2, 0},
			want: false,
		},
		{
			name: "Same slope different intercept",
			a:    Point2D{0, 0}, b: Point2D{2, 2},
			c: Point2D{0, 1}, d: Point2D{2, 3},
			want: false,
		},
		{
			name: "Crossing outside both ranges",
			a:    Point2D{0, 0}, b: Point2D{1, 1},
			c: Point2D{3, 0}, d: Point2D{4, 2},
			want: false,
		},
		{
			name: "Crossing inside one range only",
			a:    Point2D{0, 0}, b: Point2D{4, 0},
			c: Point2D{1, 1}, d: Point2D{2, 0.5},
			want: false,
		},
		{
			name: "Degenerate point on segment",
			a:    Point2D{1, 0}, b: Point2D{1, 0},
			c: Point2D{0, 0}, d: Point2D{2, 0},
			want: true,
		},
		{
			name: "Degenerate point off segment",
			a:    Point2D{1, 1}, b: Point2D{1, 1},
			c: Point2D{0, 0}, d: Point2D{2, 0},
			want: false,
		},
		{
			name: "Both degenerate coincident",
			a:    Point2D{1, 1}, b: Point2D{1, 1},
			c: Point2D{1, 1}, d: Point2D{1, 1},
			want: true,
		},
		{
			name: "T junction",
			a:    Point2D{0, 0}, b: Point2D{0, 2},
			c: Point2D{0, 1}, d: Point2D{1, 1},
			want: true,
		},
		{
			name: "Near miss above endpoint",
			a:    Point2D{0, 0}, b: Point2D{2, 0},
			c: Point2D{2.001, 0}, d: Point2D{3, 0},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentsIntersect(tt.a, tt.b, tt.c, tt.d)
			if got != tt.want {
				t.Errorf("SegmentsIntersect(%v,%v,%v,%v) = %v, want %v",
					tt.a, tt.b, tt.c, tt.d, got, tt.want)
			}

			// The predicate must not care which segment comes first
			// or which way round each segment's endpoints are given.
			variants := [][4]Point2D{
				{tt.c, tt.d, tt.a, tt.b},
				{tt.b, tt.a, tt.c, tt.d},
				{tt.a, tt.b, tt.d, tt.c},
				{tt.b, tt.a, tt.d, tt.c},
			}
			for _, v := range variants {
				if SegmentsIntersect(v[0], v[1], v[2], v[3]) != tt.want {
					t.Errorf("SegmentsIntersect(%v,%v,%v,%v) not symmetric with (%v,%v,%v,%v)",
						v[0], v[1], v[2], v[3], tt.a, tt.b, tt.c, tt.d)
				}
			}
		})
	}
}

func TestSegmentIntersectsMethod(t *testing.T) {
	s1 := NewSegment(Point2D{0, 0}, Point2D{2, 2})
	s2 := NewSegment(Point2D{0, 2}, Point2D{2, 0})
	if !s1.Intersects(s2) {
		t.Error("crossing segments should intersect")
	}
	s3 := NewSegment(Point2D{5, 5}, Point2D{6, 6})
	if s1.Intersects(s3) {
		t.Error("disjoint segments should not intersect")
	}
}

func TestOrientation(t *testing.T) {
	a := Point2D{0, 0}
	b := Point2D{1, 0}

	if got := Orientation(a, b, Point2D{1, 1}); got != 1 {
		t.Errorf("counter-clockwise triple: got %d, want 1", got)
	}
	if got := Orientation(a, b, Point2D{1, -1}); got != -1 {
		t.Errorf("clockwise triple: got %d, want -1", got)
	}
	if got := Orientation(a, b, Point2D{2, 0}); got != 0 {
		t.Errorf("collinear triple: got %d, want 0", got)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(1, 2, 3, 4)
	edges := r.Edges()

	// Every edge endpoint must be a corner of the rectangle.
	corners := r.Corners()
	isCorner := func(p Point2D) bool {
		for _, c := range corners {
			if c == p {
				return true
			}
		}
		return false
	}
	for i, e := range edges {
		if !isCorner(e.A) || !isCorner(e.B) {
			t.Errorf("edge %d (%v) endpoints are not rectangle corners", i, e)
		}
		if e.A == e.B {
			t.Errorf("edge %d is degenerate", i)
		}
	}
}

func TestBoundingBox(t *testing.T) {
	pts := []Point2D{{1, 5}, {-2, 3}, {4, -1}}
	box := BoundingBox(pts)
	want := Rect{X: -2, Y: -1, Width: 6, Height: 6}
	if box != want {
		t.Errorf("BoundingBox = %+v, want %+v", box, want)
	}

	if got := BoundingBox(nil); got != (Rect{}) {
		t.Errorf("BoundingBox(nil) = %+v, want zero", got)
	}
}
