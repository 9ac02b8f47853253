package layout

import (
	"path/filepath"
	"testing"

	"cpw-router/pkg/geometry"
)

func testComponent(id string) *Component {
	c := NewComponent(id, "transmon")
	c.Bounds = geometry.NewRect(0, 0, 1, 1)
	c.AddPin("bus", geometry.Point2D{X: 1, Y: 0.5}, geometry.Point2D{X: 1, Y: 0})
	return c
}

func TestRegistryAddAndGet(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Add(testComponent("Q1")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := reg.Add(testComponent("Q1")); err == nil {
		t.Error("duplicate ID should be rejected")
	}
	if err := reg.Add(&Component{}); err == nil {
		t.Error("empty ID should be rejected")
	}

	if got := reg.Get("Q1"); got == nil || got.ID != "Q1" {
		t.Errorf("Get(Q1) = %v", got)
	}
	if reg.Get("missing") != nil {
		t.Error("Get(missing) should be nil")
	}
}

func TestRegistryBoundingBox(t *testing.T) {
	reg := NewRegistry()
	c := testComponent("Q1")
	c.Bounds = geometry.NewRect(2, 3, 4, 5)
	if err := reg.Add(c); err != nil {
		t.Fatal(err)
	}

	box, ok := reg.BoundingBox("Q1")
	if !ok || box != geometry.NewRect(2, 3, 4, 5) {
		t.Errorf("BoundingBox = %+v, %v", box, ok)
	}
	if _, ok := reg.BoundingBox("missing"); ok {
		t.Error("BoundingBox of missing component should report false")
	}
}

func TestRegistryBoxesExcludes(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []string{"Q1", "Q2", "Q3"} {
		if err := reg.Add(testComponent(id)); err != nil {
			t.Fatal(err)
		}
	}

	if got := reg.Boxes(); len(got) != 3 {
		t.Errorf("Boxes() returned %d boxes, want 3", len(got))
	}
	if got := reg.Boxes("Q1", "Q3"); len(got) != 1 {
		t.Errorf("Boxes(Q1, Q3) returned %d boxes, want 1", len(got))
	}
}

func TestResolvePin(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Add(testComponent("Q1")); err != nil {
		t.Fatal(err)
	}

	pos, normal, err := reg.ResolvePin("Q1.bus")
	if err != nil {
		t.Fatalf("ResolvePin failed: %v", err)
	}
	if pos != (geometry.Point2D{X: 1, Y: 0.5}) {
		t.Errorf("pos = %v", pos)
	}
	if normal != (geometry.Point2D{X: 1, Y: 0}) {
		t.Errorf("normal = %v", normal)
	}

	for _, ref := range []string{"Q1", "Q2.bus", "Q1.nope"} {
		if _, _, err := reg.ResolvePin(ref); err == nil {
			t.Errorf("ResolvePin(%q) should fail", ref)
		}
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	reg := NewRegistry()
	c := testComponent("Q1")
	c.SetFootprint([]geometry.Point2D{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}})
	if err := reg.Add(c); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := reg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}
	if len(loaded.Components) != 1 {
		t.Fatalf("loaded %d components, want 1", len(loaded.Components))
	}
	got := loaded.Get("Q1")
	if got == nil {
		t.Fatal("loaded registry is missing Q1")
	}
	if got.Bounds != geometry.NewRect(0, 0, 2, 1) {
		t.Errorf("bounds = %+v", got.Bounds)
	}
	if _, _, err := loaded.ResolvePin("Q1.bus"); err != nil {
		t.Errorf("ResolvePin on loaded registry failed: %v", err)
	}
}

func TestSetFootprintRecomputesBounds(t *testing.T) {
	c := NewComponent("Q1", "readout")
	c.SetFootprint([]geometry.Point2D{{X: -1, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 5}})
	if c.Bounds != geometry.NewRect(-1, 2, 4, 3) {
		t.Errorf("bounds = %+v", c.Bounds)
	}
}
