package contour

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, p0, p1 r3.Vec, epsilon float64) {
	t.Helper()
	if !scalar.EqualWithinAbs(p0.X, p1.X, epsilon) ||
		!scalar.EqualWithinAbs(p0.Y, p1.Y, epsilon) ||
		!scalar.EqualWithinAbs(p0.Z, p1.Z, epsilon) {
		t.Errorf("distance between %s and %s exceeds %g", formatPt(p0), formatPt(p1), epsilon)
	}
}

// gridMesh triangulates the n×n unit grid, with elevations given by f.
func gridMesh(n int, f func(x, y float64) float64) []Triangle {
	p := func(i, j int) r3.Vec {
		x, y := float64(i), float64(j)
		return Pt3(x, y, f(x, y))
	}
	var tris []Triangle
	for j := range n {
		for i := range n {
			a, b, c, d := p(i, j), p(i+1, j), p(i+1, j+1), p(i, j+1)
			tris = append(tris, Tri(a, b, c), Tri(a, c, d))
		}
	}
	return tris
}

// linearIndex is an [Index] that tests every triangle.
type linearIndex []Triangle

func (li linearIndex) Search(r Rect) []int {
	var out []int
	for i, t := range li {
		if t.BoundingBox().Overlaps(r) {
			out = append(out, i)
		}
	}
	return out
}
