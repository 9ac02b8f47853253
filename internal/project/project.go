// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// File represents a CPW router project file (.chipproj).
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	DieSpec     string    `json:"die_spec"`
	Description string    `json:"description,omitempty"`

	// Scanned floorplan image (relative to project file)
	ScanImagePath string  `json:"scan_image,omitempty"`
	ScanDPI       float64 `json:"scan_dpi,omitempty"`
	Aligned       bool    `json:"aligned"`

	// Data file paths (relative to project file)
	LayoutPath string `json:"layout,omitempty"`
	RoutesPath string `json:"routes,omitempty"`

	// User settings
	Settings Settings `json:"settings,omitempty"`
}

// Settings holds per-project routing preferences.
type Settings struct {
	LeadLengthMM   float64 `json:"lead_length_mm,omitempty"`
	AvoidCollision bool    `json:"avoid_collision"`
	TraceWidthMM   float64 `json:"trace_width_mm,omitempty"`
	TraceGapMM     float64 `json:"trace_gap_mm,omitempty"`
}

// New creates a new project file with default settings.
func New(name, dieSpec string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		DieSpec:  dieSpec,
		Settings: Settings{
			LeadLengthMM:   0.1,
			AvoidCollision: false,
		},
	}
}

// Load loads a project from a .chipproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, err
	}

	return &proj, nil
}

// Save saves the project to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetScanImage sets the scan image path (relative to project).
func (p *File) SetScanImage(projectPath, imagePath string) {
	rel, err := filepath.Rel(filepath.Dir(projectPath), imagePath)
	if err != nil {
		p.ScanImagePath = imagePath
	} else {
		p.ScanImagePath = rel
	}
	p.Modified = time.Now()
}

// GetScanImagePath returns the absolute path to the scan image.
func (p *File) GetScanImagePath(projectPath string) string {
	return p.resolve(projectPath, p.ScanImagePath, "")
}

// GetLayoutPath returns the absolute path to the layout file.
func (p *File) GetLayoutPath(projectPath string) string {
	return p.resolve(projectPath, p.LayoutPath, "_layout.json")
}

// GetRoutesPath returns the absolute path to the routes file.
func (p *File) GetRoutesPath(projectPath string) string {
	return p.resolve(projectPath, p.RoutesPath, "_routes.json")
}

// resolve turns a possibly-relative stored path into an absolute one.
// When the stored path is empty and a default suffix is given, the
// default is derived from the project file name.
func (p *File) resolve(projectPath, stored, defaultSuffix string) string {
	if stored == "" {
		if defaultSuffix == "" {
			return ""
		}
		base := projectPath[:len(projectPath)-len(filepath.Ext(projectPath))]
		return base + defaultSuffix
	}
	if filepath.IsAbs(stored) {
		return stored
	}
	return filepath.Join(filepath.Dir(projectPath), stored)
}
