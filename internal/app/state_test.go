package app

import (
	"path/filepath"
	"testing"

	"cpw-router/internal/layout"
	"cpw-router/internal/route"
	"cpw-router/pkg/geometry"
)

// twoQubitLayout builds a minimal layout with two components facing
// each other across the die.
func twoQubitLayout(t *testing.T) *layout.Registry {
	t.Helper()
	reg := layout.NewRegistry()

	q1 := layout.NewComponent("Q1", "transmon")
	q1.Bounds = geometry.NewRect(0.5, 2.0, 0.8, 0.8)
	q1.AddPin("bus", geometry.Point2D{X: 1.3, Y: 2.4}, geometry.Point2D{X: 1, Y: 0})

	q2 := layout.NewComponent("Q2", "transmon")
	q2.Bounds = geometry.NewRect(3.5, 2.0, 0.8, 0.8)
	q2.AddPin("bus", geometry.Point2D{X: 3.5, Y: 2.4}, geometry.Point2D{X: -1, Y: 0})

	for _, c := range []*layout.Component{q1, q2} {
		if err := reg.Add(c); err != nil {
			t.Fatalf("Add(%s): %v", c.ID, err)
		}
	}
	return reg
}

func TestAddRemoveRoute(t *testing.T) {
	s := NewState()

	def := &RouteDef{ID: "bus1", StartPin: "Q1.bus", EndPin: "Q2.bus"}
	if err := s.AddRoute(def); err != nil {
		t.Fatalf("AddRoute: %v", err)
	}
	if err := s.AddRoute(def); err == nil {
		t.Error("expected error for duplicate route ID")
	}
	if err := s.AddRoute(&RouteDef{}); err == nil {
		t.Error("expected error for empty route ID")
	}
	if got := s.GetRoute("bus1"); got != def {
		t.Errorf("GetRoute returned %v", got)
	}

	s.RemoveRoute("bus1")
	if s.GetRoute("bus1") != nil {
		t.Error("route still present after removal")
	}
}

func TestBuildRoute(t *testing.T) {
	s := NewState()
	s.Layout = twoQubitLayout(t)
	s.Project.Settings.TraceWidthMM = 0.010
	s.Project.Settings.TraceGapMM = 0.006

	err := s.AddRoute(&RouteDef{
		ID:       "bus1",
		StartPin: "Q1.bus",
		EndPin:   "Q2.bus",
		Options: route.Options{
			Anchors: []route.Anchor{{Key: "a0", Position: geometry.Point2D{X: 2.4, Y: 1.0}}},
		},
	})
	if err != nil {
		t.Fatalf("AddRoute: %v", err)
	}

	built, err := s.BuildRoute("bus1")
	if err != nil {
		t.Fatalf("BuildRoute: %v", err)
	}
	if len(built.Path) < 2 {
		t.Fatalf("built path has %d points", len(built.Path))
	}
	first, last := built.Path[0], built.Path[len(built.Path)-1]
	if first != (geometry.Point2D{X: 1.3, Y: 2.4}) {
		t.Errorf("path starts at %v", first)
	}
	if last != (geometry.Point2D{X: 3.5, Y: 2.4}) {
		t.Errorf("path ends at %v", last)
	}
	if len(built.Elements.Trace) != len(built.Path)-1 {
		t.Errorf("expected %d trace strips, got %d", len(built.Path)-1, len(built.Elements.Trace))
	}
	if s.Built["bus1"] != built {
		t.Error("built route not stored in state")
	}

	if _, err := s.BuildRoute("nope"); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestBuildAllRoutesCollectsErrors(t *testing.T) {
	s := NewState()
	s.Layout = twoQubitLayout(t)

	s.AddRoute(&RouteDef{ID: "good", StartPin: "Q1.bus", EndPin: "Q2.bus"})
	s.AddRoute(&RouteDef{ID: "bad", StartPin: "Q1.bus", EndPin: "Q9.bus"})

	errs := s.BuildAllRoutes()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if s.Built["good"] == nil {
		t.Error("good route was not built")
	}
}

func TestSaveLoadProjectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.chipproj")

	s := NewState()
	s.Layout = twoQubitLayout(t)
	s.AddRoute(&RouteDef{
		ID:       "bus1",
		StartPin: "Q1.bus",
		EndPin:   "Q2.bus",
		Options: route.Options{
			Anchors:        []route.Anchor{{Key: "mid", Position: geometry.Point2D{X: 2.4, Y: 1.0}}},
			LeadIn:         0.1,
			AvoidCollision: true,
		},
	})

	if err := s.SaveProject(path); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	if s.Modified {
		t.Error("state still modified after save")
	}

	loaded := NewState()
	if err := loaded.LoadProject(path); err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if loaded.Layout.Get("Q1") == nil || loaded.Layout.Get("Q2") == nil {
		t.Error("layout components missing after load")
	}
	def := loaded.GetRoute("bus1")
	if def == nil {
		t.Fatal("route missing after load")
	}
	if def.StartPin != "Q1.bus" || def.EndPin != "Q2.bus" {
		t.Errorf("route pins: %s -> %s", def.StartPin, def.EndPin)
	}
	if len(def.Options.Anchors) != 1 || def.Options.Anchors[0].Key != "mid" {
		t.Errorf("anchors not preserved: %+v", def.Options.Anchors)
	}
	if def.Options.LeadIn != 0.1 || !def.Options.AvoidCollision {
		t.Errorf("options not preserved: %+v", def.Options)
	}

	// Built routes are derived data and do not survive a reload.
	if len(loaded.Built) != 0 {
		t.Error("expected no built routes after load")
	}
}

func TestEvents(t *testing.T) {
	s := NewState()

	var got []EventType
	record := func(e EventType) EventListener {
		return func(interface{}) { got = append(got, e) }
	}
	s.On(EventRoutesChanged, record(EventRoutesChanged))
	s.On(EventModified, record(EventModified))

	s.AddRoute(&RouteDef{ID: "r1", StartPin: "a.p", EndPin: "b.p"})

	if len(got) != 2 || got[0] != EventRoutesChanged || got[1] != EventModified {
		t.Errorf("events fired: %v", got)
	}
}
