// Package layout stores the chip floorplan: placed components, their
// bounding boxes, and the pins that traces connect to.
package layout

import (
	"cpw-router/pkg/geometry"
)

// Pin is a named connection point on a component, with the outward
// normal used as the launch direction for traces. The normal need not
// be normalized; only its sign under dot products matters.
type Pin struct {
	Name     string           `json:"name"`
	Position geometry.Point2D `json:"position"` // absolute chip coordinates, mm
	Normal   geometry.Point2D `json:"normal"`
}

// Component is a placed element on the floorplan. Its bounding box is
// the conservative footprint proxy used for collision checks.
type Component struct {
	ID          string             `json:"id"`   // unique identifier, e.g. "Q1", "RR3"
	Kind        string             `json:"kind"` // e.g. "transmon", "readout", "launcher"
	Description string             `json:"description,omitempty"`
	Bounds      geometry.Rect      `json:"bounds"`
	Footprint   []geometry.Point2D `json:"footprint,omitempty"` // convex outline, optional
	Pins        []Pin              `json:"pins,omitempty"`
	Imported    bool               `json:"imported,omitempty"` // came from a floorplan scan
}

// NewComponent creates a new Component.
func NewComponent(id, kind string) *Component {
	return &Component{ID: id, Kind: kind}
}

// Center returns the center point of the component.
func (c *Component) Center() geometry.Point2D {
	return c.Bounds.Center()
}

// Pin returns the pin with the given name, or nil.
func (c *Component) Pin(name string) *Pin {
	for i := range c.Pins {
		if c.Pins[i].Name == name {
			return &c.Pins[i]
		}
	}
	return nil
}

// AddPin adds a pin to the component.
func (c *Component) AddPin(name string, pos, normal geometry.Point2D) {
	c.Pins = append(c.Pins, Pin{Name: name, Position: pos, Normal: normal})
}

// SetFootprint stores the footprint outline and recomputes the bounding
// box from it.
func (c *Component) SetFootprint(outline []geometry.Point2D) {
	c.Footprint = outline
	c.Bounds = geometry.BoundingBox(outline)
}
