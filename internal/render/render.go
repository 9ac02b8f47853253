// Package render turns finished route point sequences into drawable
// CPW geometry: a center trace and the ground-plane cut around it.
package render

import (
	"fmt"

	"cpw-router/pkg/geometry"
)

// Params describes the CPW cross-section to draw.
type Params struct {
	TraceWidth float64 `json:"trace_width"` // center conductor width, mm
	Gap        float64 `json:"gap"`         // gap to ground on each side, mm
	Layer      int     `json:"layer"`
}

// Strip is one straight piece of drawn geometry: a segment stroked to a
// width.
type Strip struct {
	Center geometry.Segment `json:"center"`
	Width  float64          `json:"width"`
}

// Quad returns the four corners of the stroked rectangle, in order
// around its perimeter.
func (s Strip) Quad() [4]geometry.Point2D {
	dir := s.Center.B.Sub(s.Center.A).Normalize()
	// Perpendicular offset of half the width to each side.
	perp := geometry.Point2D{X: -dir.Y, Y: dir.X}.Scale(s.Width / 2)
	return [4]geometry.Point2D{
		s.Center.A.Add(perp),
		s.Center.B.Add(perp),
		s.Center.B.Sub(perp),
		s.Center.A.Sub(perp),
	}
}

// Elements is the drawable geometry of one route: the center polyline,
// one trace strip per segment, and one wider ground-cut strip per
// segment that is subtracted from the ground plane.
type Elements struct {
	CenterLine []geometry.Point2D `json:"center_line"`
	Trace      []Strip            `json:"trace"`
	GroundCut  []Strip            `json:"ground_cut"`
	Layer      int                `json:"layer"`
}

// MakeElements strokes a point sequence into CPW elements. The
// sequence must contain at least two points.
func MakeElements(points []geometry.Point2D, params Params) (Elements, error) {
	if len(points) < 2 {
		return Elements{}, fmt.Errorf("cannot materialize a path of %d points", len(points))
	}

	elems := Elements{
		CenterLine: points,
		Trace:      make([]Strip, 0, len(points)-1),
		GroundCut:  make([]Strip, 0, len(points)-1),
		Layer:      params.Layer,
	}
	for i := 0; i < len(points)-1; i++ {
		seg := geometry.NewSegment(points[i], points[i+1])
		elems.Trace = append(elems.Trace, Strip{Center: seg, Width: params.TraceWidth})
		elems.GroundCut = append(elems.GroundCut, Strip{Center: seg, Width: params.TraceWidth + 2*params.Gap})
	}
	return elems, nil
}

// CPWRenderer materializes routes as CPW elements and collects them.
// It satisfies the router's Renderer interface.
type CPWRenderer struct {
	Params   Params
	Elements []Elements
}

// NewCPWRenderer creates a renderer with the given cross-section.
func NewCPWRenderer(params Params) *CPWRenderer {
	return &CPWRenderer{Params: params}
}

// Materialize strokes the point sequence and stores the result.
func (r *CPWRenderer) Materialize(points []geometry.Point2D) error {
	elems, err := MakeElements(points, r.Params)
	if err != nil {
		return err
	}
	r.Elements = append(r.Elements, elems)
	return nil
}
