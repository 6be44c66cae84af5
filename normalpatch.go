package contour

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// NormalPatch is a quadratic triangular Bézier field of normals. N200, N020
// and N002 are the normals at the corners with barycentric weights w, u and v
// respectively; the mixed terms correct the linear blend along each edge for
// the curvature implied by the corner normals.
type NormalPatch struct {
	N200, N020, N002 r3.Vec
	N110, N011, N101 r3.Vec
}

// newNormalPatch builds the normal field of the triangle (p1, p2, p3) with
// corner normals n1, n2 and n3. It reports false if an edge has zero length.
func newNormalPatch(p1, p2, p3, n1, n2, n3 r3.Vec) (NormalPatch, bool) {
	n110, ok1 := edgeNormal(p1, p2, n1, n2)
	n011, ok2 := edgeNormal(p2, p3, n2, n3)
	n101, ok3 := edgeNormal(p3, p1, n3, n1)
	if !ok1 || !ok2 || !ok3 {
		return NormalPatch{}, false
	}
	return NormalPatch{
		N200: n1,
		N020: n2,
		N002: n3,
		N110: n110,
		N011: n011,
		N101: n101,
	}, true
}

// edgeNormal returns the mid-edge normal control point of the edge (pi, pj):
// the sum of the corner normals, reflected across the plane perpendicular to
// the edge by how much they tilt towards each other.
func edgeNormal(pi, pj, ni, nj r3.Vec) (r3.Vec, bool) {
	d := r3.Sub(pj, pi)
	l2 := r3.Norm2(d)
	if l2 == 0 {
		return r3.Vec{}, false
	}
	sum := r3.Add(ni, nj)
	v := 2 * r3.Dot(d, sum) / l2
	return r3.Sub(sum, r3.Scale(v, d)), true
}

// Eval evaluates the normal field at barycentric (u, v), with w = 1 − u − v.
// The result is the plain quadratic blend and is not of unit length in
// general.
func (np NormalPatch) Eval(u, v float64) r3.Vec {
	w := 1 - u - v
	out := r3.Scale(w*w, np.N200)
	out = r3.Add(out, r3.Scale(u*u, np.N020))
	out = r3.Add(out, r3.Scale(v*v, np.N002))
	out = r3.Add(out, r3.Scale(w*u, np.N110))
	out = r3.Add(out, r3.Scale(u*v, np.N011))
	out = r3.Add(out, r3.Scale(w*v, np.N101))
	return out
}

// IsNaN reports whether any control normal has a NaN component.
func (np NormalPatch) IsNaN() bool {
	return IsNaN(np.N200) || IsNaN(np.N020) || IsNaN(np.N002) ||
		IsNaN(np.N110) || IsNaN(np.N011) || IsNaN(np.N101)
}
