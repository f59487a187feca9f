package gesture

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ayusman/mudra/internal/detector"
)

// Canonical image-plane directions; y grows downward.
var (
	dirUp    = r2.Vec{X: 0, Y: -1}
	dirDown  = r2.Vec{X: 0, Y: 1}
	dirLeft  = r2.Vec{X: -1, Y: 0}
	dirRight = r2.Vec{X: 1, Y: 0}
)

func vec(p detector.Point2D) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// vector returns the displacement from a to b.
func vector(a, b detector.Point2D) r2.Vec {
	return r2.Sub(vec(b), vec(a))
}

// dist returns the Euclidean distance between a and b.
func dist(a, b detector.Point2D) float64 {
	return r2.Norm(vector(a, b))
}

// angleDeg returns the angle between u and v in degrees.
// A zero-length vector yields 180.
func angleDeg(u, v r2.Vec) float64 {
	nu, nv := r2.Norm(u), r2.Norm(v)
	if nu == 0 || nv == 0 {
		return 180
	}
	cos := r2.Dot(u, v) / (nu * nv)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// angleAt returns the interior angle at center between the rays to p1 and p2.
func angleAt(center, p1, p2 detector.Point2D) float64 {
	return angleDeg(vector(center, p1), vector(center, p2))
}

// centroid returns the unweighted mean of the given landmarks.
func centroid(pose detector.Pose, indices []int) detector.Point2D {
	var sum r2.Vec
	for _, i := range indices {
		sum = r2.Add(sum, vec(pose[i]))
	}
	mean := r2.Scale(1/float64(len(indices)), sum)
	return detector.Point2D{X: mean.X, Y: mean.Y}
}
