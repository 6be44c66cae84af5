package contour

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Pt3 returns the point (x, y, z).
func Pt3(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// PlanarDistance returns the euclidean distance between the projections of p
// and q onto the XY plane.
func PlanarDistance(p, q r3.Vec) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// PlanarDistanceSquared returns the squared planar distance between p and q.
func PlanarDistanceSquared(p, q r3.Vec) float64 {
	x := p.X - q.X
	y := p.Y - q.Y
	return x*x + y*y
}

// Lerp linearly interpolates between p and q.
func Lerp(p, q r3.Vec, t float64) r3.Vec {
	return r3.Add(p, r3.Scale(t, r3.Sub(q, p)))
}

// Normalize returns the unit vector colinear to v. It reports false, and
// returns v unchanged, if v has zero or non-finite length.
func Normalize(v r3.Vec) (r3.Vec, bool) {
	l := r3.Norm(v)
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return v, false
	}
	return r3.Scale(1/l, v), true
}

// IsNaN reports whether at least one of x, y and z is NaN.
func IsNaN(v r3.Vec) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// IsInf reports whether at least one of x, y and z is infinite.
func IsInf(v r3.Vec) bool {
	return math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsInf(v.Z, 0)
}

func formatPt(v r3.Vec) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
