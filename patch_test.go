package contour

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r3"
)

func linearAt(t Triangle, u, v float64) r3.Vec {
	w := 1 - u - v
	return r3.Add(r3.Add(r3.Scale(w, t.A), r3.Scale(u, t.B)), r3.Scale(v, t.C))
}

// domeNormals returns normals tilted away from the triangle's centroid, as if
// the triangle were part of a dome.
func domeNormals(t Triangle) [3]r3.Vec {
	c := r3.Scale(1.0/3.0, r3.Add(r3.Add(t.A, t.B), t.C))
	var out [3]r3.Vec
	for i, v := range t.Vertices() {
		d := r3.Sub(v, c)
		out[i], _ = Normalize(Pt3(d.X, d.Y, 1))
	}
	return out
}

var barycentricSamples = [][2]float64{
	{0, 0}, {1, 0}, {0, 1},
	{0.5, 0}, {0, 0.5}, {0.5, 0.5},
	{1.0 / 3.0, 1.0 / 3.0},
	{0.1, 0.7}, {0.6, 0.25},
}

func TestPatchCorners(t *testing.T) {
	tri := Tri(Pt3(0, 0, 0), Pt3(1, 0, 0), Pt3(0, 1, 0))
	ns := domeNormals(tri)
	for _, mode := range []EdgeMode{InterpolatedNormals, CornerNormals} {
		p, ok := NewPatchMode(tri, ns[0], ns[1], ns[2], 1, mode)
		if !ok {
			t.Fatalf("%s: couldn't build patch", mode)
		}
		assertNear(t, tri.A, p.ElevationAt(0, 0), 1e-15)
		assertNear(t, tri.B, p.ElevationAt(1, 0), 1e-15)
		assertNear(t, tri.C, p.ElevationAt(0, 1), 1e-15)
		diff(t, ns[0], p.NormalAt(0, 0))
		diff(t, ns[1], p.NormalAt(1, 0))
		diff(t, ns[2], p.NormalAt(0, 1))

		cps := p.ControlPoints()
		diff(t, [3]r3.Vec{tri.A, tri.B, tri.C}, [3]r3.Vec{cps[0], cps[1], cps[2]})
	}
}

func TestPatchPlanar(t *testing.T) {
	// A triangle whose vertex normals all equal its plane's normal is
	// reproduced exactly, whatever the smoothing.
	tri := Tri(Pt3(0, 0, 0), Pt3(10, 0, 5), Pt3(3, 8, 2))
	n, _ := tri.Normal()
	for _, mode := range []EdgeMode{InterpolatedNormals, CornerNormals} {
		for _, s := range []float64{0, 0.5, 1, 20} {
			p, ok := NewPatchMode(tri, n, n, n, s, mode)
			if !ok {
				t.Fatalf("%s: couldn't build patch", mode)
			}
			for _, uv := range barycentricSamples {
				assertNear(t, linearAt(tri, uv[0], uv[1]), p.ElevationAt(uv[0], uv[1]), 1e-9)
			}
		}
	}
}

func TestPatchNoSmoothing(t *testing.T) {
	tri := Tri(Pt3(0, 0, 0), Pt3(1, 0, 0), Pt3(0, 1, 0))
	ns := domeNormals(tri)
	p, ok := NewPatch(tri, ns[0], ns[1], ns[2], 0)
	if !ok {
		t.Fatal("couldn't build patch")
	}
	for _, uv := range barycentricSamples {
		assertNear(t, linearAt(tri, uv[0], uv[1]), p.ElevationAt(uv[0], uv[1]), 1e-12)
	}
}

func TestPatchFlatControlPoints(t *testing.T) {
	tri := Tri(Pt3(0, 0, 0), Pt3(3, 0, 3), Pt3(0, 6, 9))
	ns := domeNormals(tri)
	p, ok := NewPatch(tri, ns[0], ns[1], ns[2], 0)
	if !ok {
		t.Fatal("couldn't build patch")
	}
	want := [10]r3.Vec{
		tri.A, tri.B, tri.C,
		Pt3(1, 0, 1), Pt3(2, 0, 2),
		Pt3(2, 2, 5), Pt3(1, 4, 7),
		Pt3(0, 4, 6), Pt3(0, 2, 3),
		Pt3(1, 2, 4),
	}
	diff(t, want, p.ControlPoints(), cmpopts.EquateApprox(0, 1e-12))
}

func TestPatchDome(t *testing.T) {
	tri := Tri(Pt3(0, 0, 0), Pt3(1, 0, 0), Pt3(0, 1, 0))
	ns := domeNormals(tri)
	for _, mode := range []EdgeMode{InterpolatedNormals, CornerNormals} {
		p, ok := NewPatchMode(tri, ns[0], ns[1], ns[2], 1, mode)
		if !ok {
			t.Fatalf("%s: couldn't build patch", mode)
		}
		if z := p.ElevationAt(1.0/3.0, 1.0/3.0).Z; !(z > 0) {
			t.Errorf("%s: got elevation %g at the centroid, want it to bulge upwards", mode, z)
		}
		// Along an edge, the patch only depends on the edge's vertices and
		// normals.
		if z := p.ElevationAt(0.5, 0).Z; !(z > 0) {
			t.Errorf("%s: got elevation %g at an edge midpoint, want it to bulge upwards", mode, z)
		}
	}
}

func TestPatchSharedEdge(t *testing.T) {
	// Two triangles sharing the edge from b to c, listed in opposite
	// directions, must agree along it.
	a, b, c, d := Pt3(0, 0, 0), Pt3(4, 0, 1), Pt3(0, 4, 2), Pt3(4, 4, 0)
	t1, t2 := Tri(a, b, c), Tri(d, c, b)
	vn := EstimateNormals([]Triangle{t1, t2}, nil, nil, 0)
	normals := func(t Triangle) [3]r3.Vec {
		var out [3]r3.Vec
		for i, v := range t.Vertices() {
			out[i], _ = vn.At(v)
		}
		return out
	}
	n1, n2 := normals(t1), normals(t2)
	for _, mode := range []EdgeMode{InterpolatedNormals, CornerNormals} {
		p1, ok1 := NewPatchMode(t1, n1[0], n1[1], n1[2], 0.7, mode)
		p2, ok2 := NewPatchMode(t2, n2[0], n2[1], n2[2], 0.7, mode)
		if !ok1 || !ok2 {
			t.Fatalf("%s: couldn't build patches", mode)
		}
		for i := range 11 {
			s := float64(i) / 10
			// In t1, the edge runs from u = 1 to v = 1; in t2 from v = 1 to
			// u = 1.
			assertNear(t, p1.ElevationAt(1-s, s), p2.ElevationAt(s, 1-s), 1e-12)
		}
	}
}

func TestPatchNotSmoothable(t *testing.T) {
	up := Pt3(0, 0, 1)
	tests := []struct {
		name       string
		tri        Triangle
		n1, n2, n3 r3.Vec
	}{
		{"degenerate", Tri(Pt3(0, 0, 0), Pt3(1, 1, 1), Pt3(2, 2, 2)), up, up, up},
		{"zero normal", Tri(Pt3(0, 0, 0), Pt3(1, 0, 0), Pt3(0, 1, 0)), up, r3.Vec{}, up},
		{"NaN normal", Tri(Pt3(0, 0, 0), Pt3(1, 0, 0), Pt3(0, 1, 0)), up, up, Pt3(math.NaN(), 0, 1)},
		{"NaN vertex", Tri(Pt3(0, 0, math.NaN()), Pt3(1, 0, 0), Pt3(0, 1, 0)), up, up, up},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := NewPatch(tt.tri, tt.n1, tt.n2, tt.n3, 1); ok {
				t.Error("built a patch")
			}
		})
	}
}

func TestEdgeModeText(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want EdgeMode
	}{
		{"interpolated", InterpolatedNormals},
		{"", InterpolatedNormals},
		{"corner", CornerNormals},
		{" Corner ", CornerNormals},
	} {
		var m EdgeMode
		if err := m.UnmarshalText([]byte(tt.in)); err != nil {
			t.Errorf("%q: unexpected error: %s", tt.in, err)
			continue
		}
		if m != tt.want {
			t.Errorf("%q: got %s, want %s", tt.in, m, tt.want)
		}
		b, err := m.MarshalText()
		if err != nil {
			t.Errorf("couldn't marshal %s: %s", m, err)
		}
		if string(b) != m.String() {
			t.Errorf("got %q, want %q", b, m.String())
		}
	}

	var m EdgeMode
	if err := m.UnmarshalText([]byte("flat")); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, err := EdgeMode(7).MarshalText(); err == nil {
		t.Error("expected error for invalid mode")
	}
}
