package project

import (
	"path/filepath"
	"testing"
)

func TestProjectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.chipproj")

	proj := New("demo", "die-7x7")
	proj.Settings.AvoidCollision = true
	if err := proj.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "demo" || loaded.DieSpec != "die-7x7" {
		t.Errorf("loaded project = %+v", loaded)
	}
	if !loaded.Settings.AvoidCollision {
		t.Error("settings not preserved")
	}
}

func TestProjectPathResolution(t *testing.T) {
	proj := New("demo", "die-5x5")
	projectPath := filepath.Join("/work", "demo.chipproj")

	if got := proj.GetLayoutPath(projectPath); got != filepath.Join("/work", "demo_layout.json") {
		t.Errorf("default layout path = %q", got)
	}
	if got := proj.GetRoutesPath(projectPath); got != filepath.Join("/work", "demo_routes.json") {
		t.Errorf("default routes path = %q", got)
	}
	if got := proj.GetScanImagePath(projectPath); got != "" {
		t.Errorf("scan path with no image = %q", got)
	}

	proj.LayoutPath = "sub/components.json"
	if got := proj.GetLayoutPath(projectPath); got != filepath.Join("/work", "sub", "components.json") {
		t.Errorf("relative layout path = %q", got)
	}

	proj.SetScanImage(projectPath, filepath.Join("/work", "scans", "front.tiff"))
	if proj.ScanImagePath != filepath.Join("scans", "front.tiff") {
		t.Errorf("stored scan path = %q", proj.ScanImagePath)
	}
	if got := proj.GetScanImagePath(projectPath); got != filepath.Join("/work", "scans", "front.tiff") {
		t.Errorf("resolved scan path = %q", got)
	}
}
