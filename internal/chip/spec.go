// Package chip provides die specification definitions and management.
package chip

import (
	"encoding/json"
	"fmt"
	"os"

	"cpw-router/pkg/geometry"
)

// Spec defines a die: its outline, the alignment fiducials etched on
// it, and the default CPW cross-section traces on it use. All
// dimensions are in millimeters with the origin at the lower-left die
// corner.
type Spec struct {
	SpecName string  `json:"name"`
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`

	// Fiducials are the alignment mark positions used to register a
	// floorplan scan against chip coordinates.
	Fiducials []geometry.Point2D `json:"fiducials,omitempty"`

	// Default CPW cross-section for traces on this die.
	TraceWidthMM float64 `json:"trace_width_mm"`
	TraceGapMM   float64 `json:"trace_gap_mm"`
}

// Name returns the spec name.
func (s *Spec) Name() string {
	return s.SpecName
}

// Outline returns the die outline as a rectangle at the origin.
func (s *Spec) Outline() geometry.Rect {
	return geometry.NewRect(0, 0, s.WidthMM, s.HeightMM)
}

// Validate checks the spec for usable values.
func (s *Spec) Validate() error {
	if s.SpecName == "" {
		return fmt.Errorf("die spec name is required")
	}
	if s.WidthMM <= 0 || s.HeightMM <= 0 {
		return fmt.Errorf("die dimensions must be positive")
	}
	if s.TraceWidthMM < 0 || s.TraceGapMM < 0 {
		return fmt.Errorf("trace cross-section must not be negative")
	}
	for i, f := range s.Fiducials {
		if !s.Outline().Contains(f) {
			return fmt.Errorf("fiducial %d at (%g, %g) lies outside the die", i, f.X, f.Y)
		}
	}
	return nil
}

// SaveToFile saves the spec to a JSON file.
func (s *Spec) SaveToFile(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile loads a spec from a JSON file.
func LoadFromFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid die spec: %w", err)
	}
	return &spec, nil
}

// Registry of known die specs
var registry = make(map[string]*Spec)

// Register adds a die spec to the registry.
func Register(spec *Spec) {
	registry[spec.Name()] = spec
}

// GetSpec returns a die spec by name.
func GetSpec(name string) *Spec {
	return registry[name]
}

// ListSpecs returns all registered die spec names.
func ListSpecs() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func init() {
	// Register built-in die specs
	Register(Die5x5Spec())
	Register(Die7x7Spec())
	Register(Die10x10Spec())
}
