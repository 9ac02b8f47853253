package canvas

import (
	"image/color"

	"cpw-router/internal/render"
	"cpw-router/pkg/geometry"
)

// SceneComponent is one component drawn on the floorplan.
type SceneComponent struct {
	ID        string
	Bounds    geometry.Rect
	Footprint []geometry.Point2D
	Pins      []ScenePin
	Imported  bool
}

// ScenePin is a pin with its outward normal, drawn as a tick mark.
type ScenePin struct {
	Name     string
	Position geometry.Point2D
	Normal   geometry.Point2D
}

// SceneRoute is one built trace with its CPW geometry.
type SceneRoute struct {
	ID       string
	Path     []geometry.Point2D
	Elements render.Elements
	Color    color.RGBA
	Selected bool
}

// Scene is everything the floorplan canvas draws, in chip millimeters.
type Scene struct {
	DieOutline geometry.Rect
	Fiducials  []geometry.Point2D
	Components []SceneComponent
	Routes     []SceneRoute
	Anchors    []geometry.Point2D
}

// Bounds returns the scene's extent, falling back to the die outline.
func (s *Scene) Bounds() geometry.Rect {
	bounds := s.DieOutline
	for _, c := range s.Components {
		bounds = bounds.Union(c.Bounds)
	}
	return bounds
}
