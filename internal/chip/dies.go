package chip

import "cpw-router/pkg/geometry"

// Standard square dies used for small planar devices. Fiducials sit
// inset from the four corners so a scan can be registered even when
// one mark is damaged or covered.

const (
	// Fiducial inset from the die edges in mm
	fiducialInset = 0.25

	// Default CPW cross-section in mm: a 10um center trace with 6um
	// gaps, the common 50-ohm geometry on silicon.
	defaultTraceWidth = 0.010
	defaultTraceGap   = 0.006
)

// cornerFiducials returns four fiducials inset from the die corners.
func cornerFiducials(width, height float64) []geometry.Point2D {
	return []geometry.Point2D{
		{X: fiducialInset, Y: fiducialInset},
		{X: width - fiducialInset, Y: fiducialInset},
		{X: fiducialInset, Y: height - fiducialInset},
		{X: width - fiducialInset, Y: height - fiducialInset},
	}
}

func squareDie(name string, sizeMM float64) *Spec {
	return &Spec{
		SpecName:     name,
		WidthMM:      sizeMM,
		HeightMM:     sizeMM,
		Fiducials:    cornerFiducials(sizeMM, sizeMM),
		TraceWidthMM: defaultTraceWidth,
		TraceGapMM:   defaultTraceGap,
	}
}

// Die5x5Spec returns the 5x5 mm die definition.
func Die5x5Spec() *Spec {
	return squareDie("die-5x5", 5.0)
}

// Die7x7Spec returns the 7x7 mm die definition.
func Die7x7Spec() *Spec {
	return squareDie("die-7x7", 7.0)
}

// Die10x10Spec returns the 10x10 mm die definition.
func Die10x10Spec() *Spec {
	return squareDie("die-10x10", 10.0)
}
