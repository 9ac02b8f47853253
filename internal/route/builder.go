package route

import (
	"fmt"

	"cpw-router/pkg/geometry"
)

// Options configure one anchored route build.
type Options struct {
	// Anchors are visited in order between the two pins.
	Anchors []Anchor
	// LeadIn and LeadOut extend the start and end pins along their
	// outward normals before the freely routed portion begins and ends.
	LeadIn  float64
	LeadOut float64
	// AvoidCollision makes every leg respect the obstacle set.
	AvoidCollision bool
}

// AnchoredRouter builds a route from a start pin, through ordered
// anchors, to an end pin. Each Build call works on fresh state, so
// repeated builds with identical inputs yield identical routes.
type AnchoredRouter struct {
	// Pins resolves pin references to positions and outward normals.
	Pins PinResolver
	// Planner plans individual legs. When nil, a Planner configured
	// from the build's options and obstacles is used.
	Planner LegPlanner
	// Renderer, when set, receives the finished point sequence.
	Renderer Renderer
}

// Build plans the full route. It returns a NoLegError (wrapped with the
// pin names) as soon as any leg cannot be connected; no partial or
// discontinuous path is ever produced.
func (r *AnchoredRouter) Build(startPin, endPin string, opts Options, obs *Obstacles) (Route, error) {
	startPos, startNorm, err := r.Pins.ResolvePin(startPin)
	if err != nil {
		return Route{}, fmt.Errorf("resolve start pin %q: %w", startPin, err)
	}
	endPos, endNorm, err := r.Pins.ResolvePin(endPin)
	if err != nil {
		return Route{}, fmt.Errorf("resolve end pin %q: %w", endPin, err)
	}

	planner := r.Planner
	if planner == nil {
		planner = &Planner{Obstacles: obs, AvoidCollision: opts.AvoidCollision}
	}

	// Lead-in and lead-out extend the pins along their outward normals.
	meanderStart := startPos
	if opts.LeadIn > 0 {
		meanderStart = startPos.Add(startNorm.Normalize().Scale(opts.LeadIn))
	}
	meanderEnd := endPos
	if opts.LeadOut > 0 {
		meanderEnd = endPos.Add(endNorm.Normalize().Scale(opts.LeadOut))
	}

	points := []geometry.Point2D{startPos}
	points = appendPoint(points, meanderStart)
	tip := DirectedAt(meanderStart, startNorm)

	// One leg per anchor, in caller order, then a final leg to the
	// meander end. Each accepted leg contributes its vertices minus the
	// shared joint, and the tip advances to the leg's last segment.
	for _, anchor := range opts.Anchors {
		leg := planner.Leg(tip, At(anchor.Position))
		if len(leg) == 0 {
			return Route{}, fmt.Errorf("route %s -> %s at anchor %q: %w",
				startPin, endPin, anchor.Key,
				&NoLegError{From: tip.Position, To: anchor.Position})
		}
		points = appendLeg(points, leg)
		tip = tipOf(points)
	}

	leg := planner.Leg(tip, DirectedAt(meanderEnd, endNorm))
	if len(leg) == 0 {
		return Route{}, fmt.Errorf("route %s -> %s: %w",
			startPin, endPin,
			&NoLegError{From: tip.Position, To: meanderEnd})
	}
	points = appendLeg(points, leg)
	points = appendPoint(points, endPos)

	if r.Renderer != nil {
		if err := r.Renderer.Materialize(points); err != nil {
			return Route{}, fmt.Errorf("materialize route %s -> %s: %w", startPin, endPin, err)
		}
	}

	return Route{StartPin: startPin, EndPin: endPin, Points: points}, nil
}

// appendLeg appends a leg's vertices minus its first point, which is
// the joint shared with the path so far.
func appendLeg(points []geometry.Point2D, leg []geometry.Point2D) []geometry.Point2D {
	for _, p := range leg[1:] {
		points = appendPoint(points, p)
	}
	return points
}

// appendPoint appends p unless it duplicates the current last point.
func appendPoint(points []geometry.Point2D, p geometry.Point2D) []geometry.Point2D {
	if len(points) > 0 && points[len(points)-1] == p {
		return points
	}
	return append(points, p)
}

// tipOf returns the last path point with the incoming segment as its
// direction, ready to be the next leg's start.
func tipOf(points []geometry.Point2D) RoutePoint {
	last := points[len(points)-1]
	if len(points) < 2 {
		return At(last)
	}
	return DirectedAt(last, last.Sub(points[len(points)-2]))
}
