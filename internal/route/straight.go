package route

import (
	"fmt"

	"cpw-router/pkg/geometry"
)

// Straight builds the trivial pin-to-pin connection used when no
// obstacle avoidance or anchor routing is needed: pin, lead-in point,
// lead-out point, pin. No direction or collision constraints are
// checked.
type Straight struct {
	Pins     PinResolver
	Renderer Renderer
}

// Build connects the two pins directly.
func (s *Straight) Build(startPin, endPin string, leadIn, leadOut float64) (Route, error) {
	startPos, startNorm, err := s.Pins.ResolvePin(startPin)
	if err != nil {
		return Route{}, fmt.Errorf("resolve start pin %q: %w", startPin, err)
	}
	endPos, endNorm, err := s.Pins.ResolvePin(endPin)
	if err != nil {
		return Route{}, fmt.Errorf("resolve end pin %q: %w", endPin, err)
	}

	points := []geometry.Point2D{startPos}
	points = appendPoint(points, startPos.Add(startNorm.Normalize().Scale(leadIn)))
	points = appendPoint(points, endPos.Add(endNorm.Normalize().Scale(leadOut)))
	points = appendPoint(points, endPos)

	if s.Renderer != nil {
		if err := s.Renderer.Materialize(points); err != nil {
			return Route{}, fmt.Errorf("materialize route %s -> %s: %w", startPin, endPin, err)
		}
	}

	return Route{StartPin: startPin, EndPin: endPin, Points: points}, nil
}
