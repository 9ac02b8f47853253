package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cpw-router/pkg/geometry"
)

// Registry holds all components of one floorplan design. It satisfies
// the router's pin resolution interface and provides the bounding-box
// queries collision checks are built from. The registry is read-only
// from the router's point of view; nothing mutates it during a build.
type Registry struct {
	Components []*Component `json:"components"`

	byID map[string]*Component
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Component)}
}

// Add adds a component. Component IDs must be unique.
func (r *Registry) Add(c *Component) error {
	if c.ID == "" {
		return fmt.Errorf("component ID is required")
	}
	if r.byID == nil {
		r.byID = make(map[string]*Component)
	}
	if _, exists := r.byID[c.ID]; exists {
		return fmt.Errorf("duplicate component ID %q", c.ID)
	}
	r.Components = append(r.Components, c)
	r.byID[c.ID] = c
	return nil
}

// Get returns the component with the given ID, or nil.
func (r *Registry) Get(id string) *Component {
	if r.byID == nil {
		return nil
	}
	return r.byID[id]
}

// BoundingBox returns the bounding box of the named component.
func (r *Registry) BoundingBox(id string) (geometry.Rect, bool) {
	c := r.Get(id)
	if c == nil {
		return geometry.Rect{}, false
	}
	return c.Bounds, true
}

// Boxes returns the bounding boxes of all components except the
// excluded IDs. Routing typically excludes the two components a trace
// starts and ends on, since its endpoints lie on their edges.
func (r *Registry) Boxes(exclude ...string) []geometry.Rect {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	boxes := make([]geometry.Rect, 0, len(r.Components))
	for _, c := range r.Components {
		if skip[c.ID] {
			continue
		}
		boxes = append(boxes, c.Bounds)
	}
	return boxes
}

// ResolvePin resolves a "component.pin" reference to the pin's position
// and outward normal.
func (r *Registry) ResolvePin(ref string) (geometry.Point2D, geometry.Point2D, error) {
	compID, pinName, ok := strings.Cut(ref, ".")
	if !ok {
		return geometry.Point2D{}, geometry.Point2D{}, fmt.Errorf("pin reference %q is not of the form component.pin", ref)
	}
	c := r.Get(compID)
	if c == nil {
		return geometry.Point2D{}, geometry.Point2D{}, fmt.Errorf("unknown component %q", compID)
	}
	pin := c.Pin(pinName)
	if pin == nil {
		return geometry.Point2D{}, geometry.Point2D{}, fmt.Errorf("component %q has no pin %q", compID, pinName)
	}
	return pin.Position, pin.Normal, nil
}

// PinComponent returns the component part of a "component.pin"
// reference, or the whole reference if it has no pin part.
func PinComponent(ref string) string {
	compID, _, _ := strings.Cut(ref, ".")
	return compID
}

// Validate checks every component for well-formed geometry: IDs must be
// unique (enforced by Add) and bounding boxes must not be inverted.
func (r *Registry) Validate() error {
	for _, c := range r.Components {
		if c.Bounds.Width < 0 || c.Bounds.Height < 0 {
			return fmt.Errorf("component %q has a malformed bounding box", c.ID)
		}
	}
	return nil
}

// Save writes the registry to a JSON file.
func (r *Registry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadRegistry loads a registry from a JSON file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}

	reg.byID = make(map[string]*Component, len(reg.Components))
	for _, c := range reg.Components {
		if _, exists := reg.byID[c.ID]; exists {
			return nil, fmt.Errorf("duplicate component ID %q", c.ID)
		}
		reg.byID[c.ID] = c
	}

	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	return &reg, nil
}
