package contour

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// EdgeMode selects the normal along which the edge control points of a
// [Patch] are displaced.
type EdgeMode int

const (
	// InterpolatedNormals displaces each edge control point along the normal
	// field evaluated at the control point's parametric position, 1/3 or 2/3
	// along the edge. Curvature then varies continuously across the patch.
	InterpolatedNormals EdgeMode = iota
	// CornerNormals displaces each edge control point along the normal of the
	// nearest corner, which is the classic PN triangle construction.
	CornerNormals
)

func (m EdgeMode) String() string {
	switch m {
	case InterpolatedNormals:
		return "interpolated"
	case CornerNormals:
		return "corner"
	default:
		return fmt.Sprintf("EdgeMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m EdgeMode) MarshalText() ([]byte, error) {
	switch m {
	case InterpolatedNormals, CornerNormals:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("invalid edge mode %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *EdgeMode) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "interpolated":
		*m = InterpolatedNormals
	case "corner":
		*m = CornerNormals
	default:
		return fmt.Errorf("unknown edge mode %q", b)
	}
	return nil
}

// Patch is a cubic triangular Bézier patch over one triangle of a TIN, built
// from the triangle's vertices and estimated vertex normals.
//
// The patch is parametrized by barycentric coordinates (u, v) with
// w = 1 − u − v. The corner B300 is at w = 1, B030 at u = 1 and B003 at
// v = 1.
type Patch struct {
	B300, B030, B003 r3.Vec
	B210, B120       r3.Vec
	B021, B012       r3.Vec
	B102, B201       r3.Vec
	B111             r3.Vec

	Normals NormalPatch
}

// NewPatch builds the patch for t with vertex normals n1, n2 and n3 (for t.A,
// t.B and t.C), using [InterpolatedNormals]. See [NewPatchMode].
func NewPatch(t Triangle, n1, n2, n3 r3.Vec, smoothing float64) (Patch, bool) {
	return NewPatchMode(t, n1, n2, n3, smoothing, InterpolatedNormals)
}

// NewPatchMode builds the patch for t with vertex normals n1, n2 and n3.
//
// The corners of the patch are the triangle's vertices. Each edge control
// point starts at the 1/3 or 2/3 point of its edge and is pulled towards the
// tangent plane of the chosen normal; smoothing scales that displacement. A
// smoothing of 0 produces a flat patch that coincides with t.
//
// NewPatchMode reports false if the triangle is degenerate or a normal is
// zero or NaN. Such triangles cannot be smoothed and should be used as they
// are.
func NewPatchMode(t Triangle, n1, n2, n3 r3.Vec, smoothing float64, mode EdgeMode) (Patch, bool) {
	if t.IsDegenerate() || t.IsNaN() {
		return Patch{}, false
	}
	for _, n := range [3]r3.Vec{n1, n2, n3} {
		if r3.Norm2(n) == 0 || IsNaN(n) {
			return Patch{}, false
		}
	}
	np, ok := newNormalPatch(t.A, t.B, t.C, n1, n2, n3)
	if !ok || np.IsNaN() {
		return Patch{}, false
	}

	p := Patch{
		B300:    t.A,
		B030:    t.B,
		B003:    t.C,
		Normals: np,
	}
	normal := func(corner r3.Vec, u, v float64) r3.Vec {
		if mode == CornerNormals {
			return corner
		}
		n, ok := Normalize(np.Eval(u, v))
		if !ok {
			return corner
		}
		return n
	}
	const third = 1.0 / 3.0
	p.B210 = edgePoint(t.A, t.B, normal(n1, third, 0), smoothing)
	p.B120 = edgePoint(t.B, t.A, normal(n2, 2*third, 0), smoothing)
	p.B021 = edgePoint(t.B, t.C, normal(n2, 2*third, third), smoothing)
	p.B012 = edgePoint(t.C, t.B, normal(n3, third, 2*third), smoothing)
	p.B102 = edgePoint(t.C, t.A, normal(n3, 0, 2*third), smoothing)
	p.B201 = edgePoint(t.A, t.C, normal(n1, 0, third), smoothing)

	// The interior point moves away from the centroid by half the offset of
	// the edge points' average.
	e := r3.Scale(1.0/6.0, sum(p.B210, p.B120, p.B021, p.B012, p.B102, p.B201))
	c := r3.Scale(third, sum(t.A, t.B, t.C))
	p.B111 = r3.Add(e, r3.Scale(0.5, r3.Sub(e, c)))

	if p.IsNaN() {
		return Patch{}, false
	}
	return p, true
}

// edgePoint returns the control point one third of the way from pi to pj,
// projected towards the plane through pi with normal n.
func edgePoint(pi, pj, n r3.Vec, smoothing float64) r3.Vec {
	d := r3.Sub(pj, pi)
	w := smoothing * r3.Dot(d, n)
	return r3.Scale(1.0/3.0, r3.Sub(r3.Add(r3.Scale(2, pi), pj), r3.Scale(w, n)))
}

func sum(vs ...r3.Vec) r3.Vec {
	var out r3.Vec
	for _, v := range vs {
		out = r3.Add(out, v)
	}
	return out
}

// ControlPoints returns the ten control points in the order B300, B030, B003,
// B210, B120, B021, B012, B102, B201, B111.
func (p Patch) ControlPoints() [10]r3.Vec {
	return [10]r3.Vec{
		p.B300, p.B030, p.B003,
		p.B210, p.B120,
		p.B021, p.B012,
		p.B102, p.B201,
		p.B111,
	}
}

// ElevationAt evaluates the patch at barycentric (u, v).
//
// Coordinates outside the triangle (u, v or w negative) are not rejected;
// they extrapolate the cubic and are rarely meaningful.
func (p Patch) ElevationAt(u, v float64) r3.Vec {
	return p.eval(u, v, 1-u-v)
}

// eval evaluates the patch at (u, v, w) without requiring w = 1 − u − v to
// be computed from u and v, which keeps grid nodes on the corners exact.
func (p Patch) eval(u, v, w float64) r3.Vec {
	out := r3.Scale(w*w*w, p.B300)
	out = r3.Add(out, r3.Scale(u*u*u, p.B030))
	out = r3.Add(out, r3.Scale(v*v*v, p.B003))
	out = r3.Add(out, r3.Scale(3*w*w*u, p.B210))
	out = r3.Add(out, r3.Scale(3*u*u*w, p.B120))
	out = r3.Add(out, r3.Scale(3*w*w*v, p.B201))
	out = r3.Add(out, r3.Scale(3*u*u*v, p.B021))
	out = r3.Add(out, r3.Scale(3*v*v*w, p.B102))
	out = r3.Add(out, r3.Scale(3*u*v*v, p.B012))
	out = r3.Add(out, r3.Scale(6*u*v*w, p.B111))
	return out
}

// NormalAt evaluates the patch's quadratic normal field at barycentric
// (u, v). See [NormalPatch.Eval].
func (p Patch) NormalAt(u, v float64) r3.Vec {
	return p.Normals.Eval(u, v)
}

// IsNaN reports whether any control point has a NaN coordinate.
func (p Patch) IsNaN() bool {
	for _, c := range p.ControlPoints() {
		if IsNaN(c) {
			return true
		}
	}
	return p.Normals.IsNaN()
}
