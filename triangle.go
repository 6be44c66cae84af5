package contour

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// degenerateEpsilon bounds the squared area of a triangle, relative to its
// squared edge lengths, below which the triangle is considered degenerate.
const degenerateEpsilon = 1e-24

// Triangle is a triangle of a TIN, with Z interpreted as elevation. The
// orientation of triangles is not assumed to be consistent across a mesh.
type Triangle struct {
	A r3.Vec
	B r3.Vec
	C r3.Vec
}

// Tri returns the triangle (a, b, c).
func Tri(a, b, c r3.Vec) Triangle {
	return Triangle{A: a, B: b, C: c}
}

func (t Triangle) String() string {
	return fmt.Sprintf("Triangle{%s, %s, %s}", formatPt(t.A), formatPt(t.B), formatPt(t.C))
}

// Vertices returns the triangle's vertices in order.
func (t Triangle) Vertices() [3]r3.Vec {
	return [3]r3.Vec{t.A, t.B, t.C}
}

// Vertex returns the i'th vertex, where i is 0, 1 or 2.
func (t Triangle) Vertex(i int) r3.Vec {
	switch i {
	case 0:
		return t.A
	case 1:
		return t.B
	case 2:
		return t.C
	default:
		panic(fmt.Sprintf("vertex index %d out of range", i))
	}
}

// ZRange returns the lowest and highest elevation of the triangle's vertices.
func (t Triangle) ZRange() (lo, hi float64) {
	return min(t.A.Z, t.B.Z, t.C.Z), max(t.A.Z, t.B.Z, t.C.Z)
}

// BoundingBox returns the planar envelope of the triangle.
func (t Triangle) BoundingBox() Rect {
	return NewRectFromPoints(t.A, t.B).UnionPoint(t.C)
}

// Normal returns the unit normal of the triangle's plane, oriented so that
// its Z component is not negative. This makes normals of neighbouring
// triangles comparable regardless of vertex order.
//
// Normal reports false for degenerate triangles, that is triangles with
// duplicate or collinear vertices.
func (t Triangle) Normal() (r3.Vec, bool) {
	e1 := r3.Sub(t.B, t.A)
	e2 := r3.Sub(t.C, t.A)
	n := r3.Cross(e1, e2)
	scale := r3.Norm2(e1) * r3.Norm2(e2)
	if scale == 0 || r3.Norm2(n) <= degenerateEpsilon*scale {
		return r3.Vec{}, false
	}
	if n.Z < 0 {
		n = r3.Scale(-1, n)
	}
	return Normalize(n)
}

// IsDegenerate reports whether the triangle has duplicate or collinear
// vertices.
func (t Triangle) IsDegenerate() bool {
	_, ok := t.Normal()
	return !ok
}

// MaxSlope returns the steepest absolute slope |Δz / Δxy| along the
// triangle's edges. Edges without planar extent are ignored.
func (t Triangle) MaxSlope() float64 {
	var s float64
	vs := t.Vertices()
	for i := range 3 {
		p, q := vs[i], vs[(i+1)%3]
		dxy := PlanarDistance(p, q)
		if dxy == 0 {
			continue
		}
		s = max(s, math.Abs(q.Z-p.Z)/dxy)
	}
	return s
}

// IsNaN reports whether any vertex has a NaN coordinate.
func (t Triangle) IsNaN() bool {
	return IsNaN(t.A) || IsNaN(t.B) || IsNaN(t.C)
}

// vertexIndex returns the index of the vertex of t that is within tol of pt
// in every coordinate, or -1.
func (t Triangle) vertexIndex(pt r3.Vec, tol float64) int {
	for i, v := range t.Vertices() {
		if math.Abs(v.X-pt.X) <= tol &&
			math.Abs(v.Y-pt.Y) <= tol &&
			math.Abs(v.Z-pt.Z) <= tol {
			return i
		}
	}
	return -1
}
