package importer

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"cpw-router/pkg/geometry"
)

// FitAlignment estimates the affine transform mapping scan pixel
// coordinates to chip millimeters from matched fiducial pairs, using
// RANSAC with a least-squares refit over the inliers. Returns the
// transform and the indices of the inlier pairs.
func FitAlignment(scanPoints, chipPoints []geometry.Point2D, iterations int, thresholdMM float64) (geometry.AffineTransform, []int, error) {
	if len(scanPoints) != len(chipPoints) {
		return geometry.AffineTransform{}, nil, fmt.Errorf("point count mismatch: %d vs %d", len(scanPoints), len(chipPoints))
	}
	if len(scanPoints) < 3 {
		return geometry.AffineTransform{}, nil, fmt.Errorf("need at least 3 fiducial pairs, got %d", len(scanPoints))
	}

	n := len(scanPoints)
	bestInliers := []int{}
	var bestTransform geometry.AffineTransform

	for iter := 0; iter < iterations; iter++ {
		indices := rand.Perm(n)[:3]

		sample := make([]geometry.Point2D, 3)
		target := make([]geometry.Point2D, 3)
		for i, idx := range indices {
			sample[i] = scanPoints[idx]
			target[i] = chipPoints[idx]
		}

		transform, err := affineFromThree(sample, target)
		if err != nil {
			continue
		}

		var inliers []int
		for i := range scanPoints {
			if transform.Apply(scanPoints[i]).Distance(chipPoints[i]) < thresholdMM {
				inliers = append(inliers, i)
			}
		}

		if len(inliers) > len(bestInliers) {
			bestInliers = inliers
			bestTransform = transform
		}
	}

	if len(bestInliers) < 3 {
		return geometry.AffineTransform{}, nil, fmt.Errorf("alignment failed: not enough consistent fiducials")
	}

	inlierSrc := make([]geometry.Point2D, len(bestInliers))
	inlierDst := make([]geometry.Point2D, len(bestInliers))
	for i, idx := range bestInliers {
		inlierSrc[i] = scanPoints[idx]
		inlierDst[i] = chipPoints[idx]
	}

	refined, err := affineLeastSquares(inlierSrc, inlierDst)
	if err != nil {
		return bestTransform, bestInliers, nil
	}
	return refined, bestInliers, nil
}

// affineFromThree computes an affine transform from exactly 3 point pairs.
func affineFromThree(src, dst []geometry.Point2D) (geometry.AffineTransform, error) {
	if len(src) != 3 || len(dst) != 3 {
		return geometry.AffineTransform{}, fmt.Errorf("need exactly 3 points")
	}

	A := mat.NewDense(6, 6, nil)
	B := mat.NewVecDense(6, nil)

	for i := 0; i < 3; i++ {
		x, y := src[i].X, src[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		B.SetVec(i*2, dst[i].X)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		B.SetVec(i*2+1, dst[i].Y)
	}

	var params mat.VecDense
	if err := params.SolveVec(A, B); err != nil {
		return geometry.AffineTransform{}, err
	}

	return geometry.AffineTransform{
		A:  params.AtVec(0),
		B:  params.AtVec(1),
		TX: params.AtVec(2),
		C:  params.AtVec(3),
		D:  params.AtVec(4),
		TY: params.AtVec(5),
	}, nil
}

// affineLeastSquares solves the overdetermined system over all pairs
// using QR decomposition.
func affineLeastSquares(src, dst []geometry.Point2D) (geometry.AffineTransform, error) {
	n := len(src)
	if n < 3 {
		return geometry.AffineTransform{}, fmt.Errorf("need at least 3 points")
	}

	A := mat.NewDense(n*2, 6, nil)
	B := mat.NewVecDense(n*2, nil)

	for i := 0; i < n; i++ {
		x, y := src[i].X, src[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		B.SetVec(i*2, dst[i].X)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		B.SetVec(i*2+1, dst[i].Y)
	}

	var qr mat.QR
	qr.Factorize(A)

	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, B); err != nil {
		return geometry.AffineTransform{}, err
	}

	return geometry.AffineTransform{
		A:  params.AtVec(0),
		B:  params.AtVec(1),
		TX: params.AtVec(2),
		C:  params.AtVec(3),
		D:  params.AtVec(4),
		TY: params.AtVec(5),
	}, nil
}

// MatchFiducials pairs detected fiducials with the die's reference
// marks by geometric order: both sets are sorted counterclockwise
// around their centroid starting from the lower-left, which is stable
// for the corner-mark layouts the die specs use. Both slices must have
// the same length.
func MatchFiducials(detected, reference []geometry.Point2D) ([]geometry.Point2D, []geometry.Point2D, error) {
	if len(detected) != len(reference) {
		return nil, nil, fmt.Errorf("fiducial count mismatch: detected %d, expected %d", len(detected), len(reference))
	}
	return sortAroundCentroid(detected), sortAroundCentroid(reference), nil
}

func sortAroundCentroid(points []geometry.Point2D) []geometry.Point2D {
	center := geometry.Centroid(points)
	sorted := make([]geometry.Point2D, len(points))
	copy(sorted, points)
	// Insertion sort by angle; fiducial sets are tiny.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && angleFrom(center, sorted[j]) < angleFrom(center, sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}

func angleFrom(center, p geometry.Point2D) float64 {
	d := p.Sub(center)
	return math.Atan2(d.Y, d.X)
}
