// Package app provides application lifecycle management, shared state, and events.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"cpw-router/internal/chip"
	"cpw-router/internal/importer"
	"cpw-router/internal/layout"
	"cpw-router/internal/project"
	"cpw-router/internal/render"
	"cpw-router/internal/route"
	"cpw-router/pkg/geometry"
)

// RouteDef is one trace the user has asked for: which pins to connect
// and how the path should wind between them.
type RouteDef struct {
	ID       string
	StartPin string
	EndPin   string
	Options  route.Options
}

// BuiltRoute pairs a route definition with its planned geometry.
type BuiltRoute struct {
	Def      *RouteDef
	Path     []geometry.Point2D
	Elements render.Elements
}

// State holds the application state including the current project,
// chip layout, and routes.
type State struct {
	mu sync.RWMutex

	// Project
	ProjectPath string
	Modified    bool
	Project     *project.File

	// Die specification
	ChipSpec *chip.Spec

	// Component layout
	Layout *layout.Registry

	// Requested and built routes
	Routes []*RouteDef
	Built  map[string]*BuiltRoute

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventLayoutChanged
	EventFloorplanImported
	EventRoutesChanged
	EventRouteBuilt
	EventSelectionChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state.
func NewState() *State {
	return &State{
		Project:   project.New("untitled", chip.Die5x5Spec().Name()),
		ChipSpec:  chip.Die5x5Spec(),
		Layout:    layout.NewRegistry(),
		Built:     make(map[string]*BuiltRoute),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// LoadProject loads a project and its layout and route files.
func (s *State) LoadProject(path string) error {
	proj, err := project.Load(path)
	if err != nil {
		return err
	}

	spec := chip.GetSpec(proj.DieSpec)
	if spec == nil {
		return fmt.Errorf("unknown die spec: %s", proj.DieSpec)
	}

	reg := layout.NewRegistry()
	layoutPath := proj.GetLayoutPath(path)
	if _, err := os.Stat(layoutPath); err == nil {
		reg, err = layout.LoadRegistry(layoutPath)
		if err != nil {
			return fmt.Errorf("failed to load layout: %w", err)
		}
	}

	var routes []*RouteDef
	routesPath := proj.GetRoutesPath(path)
	if _, err := os.Stat(routesPath); err == nil {
		routes, err = loadRoutes(routesPath)
		if err != nil {
			return fmt.Errorf("failed to load routes: %w", err)
		}
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Project = proj
	s.ChipSpec = spec
	s.Layout = reg
	s.Routes = routes
	s.Built = make(map[string]*BuiltRoute)
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectLoaded, path)
	return nil
}

// SaveProject saves the project file, layout, and routes.
func (s *State) SaveProject(path string) error {
	s.mu.RLock()
	proj := s.Project
	reg := s.Layout
	routes := s.Routes
	s.mu.RUnlock()

	if err := proj.Save(path); err != nil {
		return err
	}
	if err := reg.Save(proj.GetLayoutPath(path)); err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}
	if err := saveRoutes(proj.GetRoutesPath(path), routes); err != nil {
		return fmt.Errorf("failed to save routes: %w", err)
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}

// AddRoute registers a new route definition.
func (s *State) AddRoute(def *RouteDef) error {
	if def.ID == "" {
		return fmt.Errorf("route ID cannot be empty")
	}

	s.mu.Lock()
	for _, r := range s.Routes {
		if r.ID == def.ID {
			s.mu.Unlock()
			return fmt.Errorf("duplicate route ID: %s", def.ID)
		}
	}
	s.Routes = append(s.Routes, def)
	s.mu.Unlock()

	s.Emit(EventRoutesChanged, def.ID)
	s.SetModified(true)
	return nil
}

// RemoveRoute deletes a route definition and any built geometry.
func (s *State) RemoveRoute(id string) {
	s.mu.Lock()
	for i, r := range s.Routes {
		if r.ID == id {
			s.Routes = append(s.Routes[:i], s.Routes[i+1:]...)
			break
		}
	}
	delete(s.Built, id)
	s.mu.Unlock()

	s.Emit(EventRoutesChanged, id)
	s.SetModified(true)
}

// GetRoute returns the route definition with the given ID, or nil.
func (s *State) GetRoute(id string) *RouteDef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.Routes {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// BuildRoute plans the path for one route definition. Components other
// than the two endpoints count as obstacles when collision avoidance
// is enabled.
func (s *State) BuildRoute(id string) (*BuiltRoute, error) {
	s.mu.RLock()
	def := (*RouteDef)(nil)
	for _, r := range s.Routes {
		if r.ID == id {
			def = r
			break
		}
	}
	reg := s.Layout
	settings := s.Project.Settings
	s.mu.RUnlock()

	if def == nil {
		return nil, fmt.Errorf("unknown route: %s", id)
	}

	obs := route.NewObstacles(reg.Boxes(
		layout.PinComponent(def.StartPin),
		layout.PinComponent(def.EndPin),
	))

	renderer := render.NewCPWRenderer(render.Params{
		TraceWidth: settings.TraceWidthMM,
		Gap:        settings.TraceGapMM,
	})
	router := &route.AnchoredRouter{
		Pins:     reg,
		Planner:  &route.Planner{Obstacles: obs, AvoidCollision: def.Options.AvoidCollision},
		Renderer: renderer,
	}

	built, err := router.Build(def.StartPin, def.EndPin, def.Options, obs)
	if err != nil {
		return nil, err
	}

	result := &BuiltRoute{
		Def:      def,
		Path:     built.Points,
		Elements: renderer.Elements[0],
	}

	s.mu.Lock()
	s.Built[id] = result
	s.mu.Unlock()

	s.Emit(EventRouteBuilt, id)
	return result, nil
}

// BuildAllRoutes plans every route definition, collecting errors
// rather than stopping at the first failure.
func (s *State) BuildAllRoutes() []error {
	s.mu.RLock()
	ids := make([]string, len(s.Routes))
	for i, r := range s.Routes {
		ids[i] = r.ID
	}
	s.mu.RUnlock()

	var errs []error
	for _, id := range ids {
		if _, err := s.BuildRoute(id); err != nil {
			errs = append(errs, fmt.Errorf("route %s: %w", id, err))
		}
	}
	return errs
}

// ImportFloorplan extracts components from a scan image, aligns them to
// the die using its fiducial marks, and merges them into the layout.
func (s *State) ImportFloorplan(imagePath string) error {
	s.mu.RLock()
	spec := s.ChipSpec
	s.mu.RUnlock()

	result, err := importer.ImportFloorplan(imagePath, importer.DefaultOptions())
	if err != nil {
		return err
	}

	detected, reference, err := importer.MatchFiducials(result.Fiducials, spec.Fiducials)
	if err != nil {
		return fmt.Errorf("fiducial matching failed: %w", err)
	}
	transform, _, err := importer.FitAlignment(detected, reference, 2000, 0.05)
	if err != nil {
		return fmt.Errorf("alignment failed: %w", err)
	}

	imported, err := importer.ToRegistry(result, transform)
	if err != nil {
		return err
	}

	s.mu.Lock()
	merged := 0
	for _, comp := range imported.Components {
		if err := s.Layout.Add(comp); err == nil {
			merged++
		}
	}
	s.Project.SetScanImage(s.ProjectPath, imagePath)
	s.Project.Aligned = true
	s.mu.Unlock()

	s.Emit(EventFloorplanImported, merged)
	s.SetModified(true)
	return nil
}

// routesFile is the on-disk representation of the route list.
type routesFile struct {
	Version int         `json:"version"`
	Routes  []routeJSON `json:"routes"`
}

type routeJSON struct {
	ID             string       `json:"id"`
	StartPin       string       `json:"start_pin"`
	EndPin         string       `json:"end_pin"`
	Anchors        []anchorJSON `json:"anchors,omitempty"`
	LeadIn         float64      `json:"lead_in,omitempty"`
	LeadOut        float64      `json:"lead_out,omitempty"`
	AvoidCollision bool         `json:"avoid_collision"`
}

type anchorJSON struct {
	Key string  `json:"key"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

func loadRoutes(path string) ([]*RouteDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file routesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	defs := make([]*RouteDef, 0, len(file.Routes))
	for _, rj := range file.Routes {
		opts := route.Options{
			LeadIn:         rj.LeadIn,
			LeadOut:        rj.LeadOut,
			AvoidCollision: rj.AvoidCollision,
		}
		for _, aj := range rj.Anchors {
			opts.Anchors = append(opts.Anchors, route.Anchor{
				Key:      aj.Key,
				Position: geometry.Point2D{X: aj.X, Y: aj.Y},
			})
		}
		defs = append(defs, &RouteDef{
			ID:       rj.ID,
			StartPin: rj.StartPin,
			EndPin:   rj.EndPin,
			Options:  opts,
		})
	}
	return defs, nil
}

func saveRoutes(path string, defs []*RouteDef) error {
	file := routesFile{Version: 1}
	for _, def := range defs {
		rj := routeJSON{
			ID:             def.ID,
			StartPin:       def.StartPin,
			EndPin:         def.EndPin,
			LeadIn:         def.Options.LeadIn,
			LeadOut:        def.Options.LeadOut,
			AvoidCollision: def.Options.AvoidCollision,
		}
		for _, a := range def.Options.Anchors {
			rj.Anchors = append(rj.Anchors, anchorJSON{Key: a.Key, X: a.Position.X, Y: a.Position.Y})
		}
		file.Routes = append(file.Routes, rj)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
