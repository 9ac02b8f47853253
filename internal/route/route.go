// Package route plans collision-aware CPW trace routes across a chip
// floorplan. A route runs from a start pin, through an ordered list of
// anchor points, to an end pin, as an axis-aligned polyline that
// respects pin launch directions and, optionally, avoids component
// bounding boxes.
package route

import (
	"fmt"

	"cpw-router/pkg/geometry"
)

// RoutePoint is a position on the floorplan with an optional direction.
// The direction is not normalized; only its sign under dot products
// matters. Directed is false at free anchors, which constrain position
// but not approach direction.
type RoutePoint struct {
	Position  geometry.Point2D
	Direction geometry.Point2D
	Directed  bool
}

// At returns an undirected route point, used for intermediate anchors.
func At(p geometry.Point2D) RoutePoint {
	return RoutePoint{Position: p}
}

// DirectedAt returns a route point with a launch direction, used for
// pin endpoints and the advancing tip of a route under construction.
func DirectedAt(p, dir geometry.Point2D) RoutePoint {
	return RoutePoint{Position: p, Direction: dir, Directed: true}
}

// Anchor is a mandatory intermediate waypoint. Anchors are visited in
// the order the caller supplied them, never sorted by key.
type Anchor struct {
	Key      string           `json:"key"`
	Position geometry.Point2D `json:"position"`
}

// Route is a finished trace path between two pins.
type Route struct {
	StartPin string             `json:"start_pin"`
	EndPin   string             `json:"end_pin"`
	Points   []geometry.Point2D `json:"points"`
}

// PinResolver resolves a pin reference such as "Q1.readout" to its
// position and outward normal on the floorplan.
type PinResolver interface {
	ResolvePin(ref string) (pos, normal geometry.Point2D, err error)
}

// Renderer consumes a finished point sequence and materializes it as
// drawable trace geometry. The router only guarantees the sequence it
// hands over starts and ends at the requested endpoints.
type Renderer interface {
	Materialize(points []geometry.Point2D) error
}

// LegPlanner plans one polyline leg between two directed points.
// An empty result means no valid leg exists.
type LegPlanner interface {
	Leg(start, end RoutePoint) []geometry.Point2D
}

// NoLegError reports a leg the planner could not connect. It aborts
// the whole build rather than silently emitting a discontinuous path.
type NoLegError struct {
	From geometry.Point2D
	To   geometry.Point2D
}

func (e *NoLegError) Error() string {
	return fmt.Sprintf("no valid route leg from (%g, %g) to (%g, %g)",
		e.From.X, e.From.Y, e.To.X, e.To.Y)
}
