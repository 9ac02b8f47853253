// Package importer extracts a chip floorplan from a scanned metallization
// image: component footprints, fiducial marks, and designator labels.
package importer

import (
	"fmt"
	"image"
	"log"

	"gocv.io/x/gocv"

	"cpw-router/internal/layout"
	"cpw-router/pkg/geometry"
)

// Options control how a scan is segmented into floorplan features.
type Options struct {
	// Threshold separates metallized area from substrate (0-255).
	Threshold float64

	// MinComponentArea and MaxComponentArea filter contours by pixel area.
	// Blobs outside this range are not treated as components.
	MinComponentArea float64
	MaxComponentArea float64

	// MinFiducialArea and MaxFiducialArea bound the pixel area of
	// fiducial mark candidates. Fiducials are much smaller than any
	// component, so the ranges should not overlap.
	MinFiducialArea float64
	MaxFiducialArea float64
}

// DefaultOptions returns segmentation parameters tuned for a 600 DPI scan
// of a 5x5 mm die.
func DefaultOptions() Options {
	return Options{
		Threshold:        128,
		MinComponentArea: 400,
		MaxComponentArea: 500000,
		MinFiducialArea:  20,
		MaxFiducialArea:  300,
	}
}

// Candidate is one component found in the scan, in pixel coordinates.
type Candidate struct {
	Bounds    geometry.RectInt
	Footprint []geometry.Point2D
	Label     string
}

// Result holds everything extracted from one scan image.
type Result struct {
	Width      int
	Height     int
	Components []Candidate
	Fiducials  []geometry.Point2D
}

// ImportFloorplan reads a scan image and extracts component footprints
// and fiducial marks. Coordinates in the result are scan pixels; use
// FitAlignment and ToRegistry to convert them to chip millimeters.
func ImportFloorplan(path string, opts Options) (*Result, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		return nil, fmt.Errorf("failed to read image: %s", path)
	}
	defer img.Close()

	return Extract(img, opts)
}

// Extract segments an already-loaded scan image.
func Extract(img gocv.Mat, opts Options) (*Result, error) {
	gray := gocv.NewMat()
	defer gray.Close()
	if img.Channels() > 1 {
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	} else {
		img.CopyTo(&gray)
	}

	// Light blur before thresholding to suppress scan noise.
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(3, 3), 0, 0, gocv.BorderDefault)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(blurred, &mask, float32(opts.Threshold), 255, gocv.ThresholdBinary)

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	result := &Result{
		Width:  img.Cols(),
		Height: img.Rows(),
	}

	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)

		switch {
		case area >= opts.MinFiducialArea && area <= opts.MaxFiducialArea:
			result.Fiducials = append(result.Fiducials, geometry.Centroid(contourPoints(contour)))

		case area >= opts.MinComponentArea && area <= opts.MaxComponentArea:
			rect := gocv.BoundingRect(contour)
			result.Components = append(result.Components, Candidate{
				Bounds: geometry.RectInt{
					X:      rect.Min.X,
					Y:      rect.Min.Y,
					Width:  rect.Dx(),
					Height: rect.Dy(),
				},
				Footprint: geometry.ConvexHull(contourPoints(contour)),
			})
		}
	}

	log.Printf("Floorplan import: %dx%d px, %d components, %d fiducial candidates",
		result.Width, result.Height, len(result.Components), len(result.Fiducials))

	return result, nil
}

// contourPoints converts a GoCV contour to Point2D slice.
func contourPoints(contour gocv.PointVector) []geometry.Point2D {
	points := make([]geometry.Point2D, 0, contour.Size())
	for j := 0; j < contour.Size(); j++ {
		pt := contour.At(j)
		points = append(points, geometry.Point2D{X: float64(pt.X), Y: float64(pt.Y)})
	}
	return points
}

// ToRegistry converts an import result into a component registry,
// mapping scan pixel coordinates to chip millimeters with the given
// transform. Unlabeled components receive sequential X-prefixed IDs.
func ToRegistry(result *Result, transform geometry.AffineTransform) (*layout.Registry, error) {
	reg := layout.NewRegistry()

	for i, cand := range result.Components {
		id := cand.Label
		if id == "" {
			id = fmt.Sprintf("X%d", i+1)
		}

		comp := layout.NewComponent(id, "imported")
		comp.Imported = true

		outline := make([]geometry.Point2D, len(cand.Footprint))
		for j, p := range cand.Footprint {
			outline[j] = transform.Apply(p)
		}
		comp.SetFootprint(outline)

		if err := reg.Add(comp); err != nil {
			// OCR can mis-read two designators as the same text.
			comp.ID = fmt.Sprintf("%s-%d", id, i+1)
			if err := reg.Add(comp); err != nil {
				return nil, fmt.Errorf("failed to register component %s: %w", comp.ID, err)
			}
		}
	}

	return reg, nil
}
