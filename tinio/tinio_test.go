package tinio

import (
	"bytes"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gonum.org/v1/gonum/spatial/r3"

	"honnef.co/go/contour"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

const tin = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[0, 0, 0], [10, 0, 0], [0, 10, 10], [0, 0, 0]]]},
      "properties": {"BREAKLINE": "N"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[10, 0, 0], [10, 10, 5], [0, 10, 10]]]},
      "properties": {"BREAKLINE": "y", "GROUP": 4}
    },
    {
      "type": "Feature",
      "geometry": {"type": "MultiPolygon", "coordinates": [
        [[[20, 0, 1], [30, 0, 2], [20, 10, 3], [20, 0, 1]]],
        [[[30, 0, 2], [30, 10, 4], [20, 10, 3], [30, 0, 2]]]
      ]},
      "properties": {"BREAKLINE": true, "GROUP": "7"}
    },
    {
      "type": "Feature",
      "geometry": null,
      "properties": {}
    }
  ]
}`

func TestReadGeoJSON(t *testing.T) {
	m, err := ReadGeoJSON(strings.NewReader(tin), DefaultFields())
	if err != nil {
		t.Fatal(err)
	}
	p := contour.Pt3
	want := &Mesh{
		Triangles: []contour.Triangle{
			contour.Tri(p(0, 0, 0), p(10, 0, 0), p(0, 10, 10)),
			contour.Tri(p(10, 0, 0), p(10, 10, 5), p(0, 10, 10)),
			contour.Tri(p(20, 0, 1), p(30, 0, 2), p(20, 10, 3)),
			contour.Tri(p(30, 0, 2), p(30, 10, 4), p(20, 10, 3)),
		},
		BreakLines: contour.BreakLines{
			1: contour.WholeTriangle(4),
			2: contour.WholeTriangle(7),
			3: contour.WholeTriangle(7),
		},
	}
	diff(t, want, m)
}

func TestReadGeoJSONFieldNames(t *testing.T) {
	m, err := ReadGeoJSON(strings.NewReader(tin), Fields{BreakLine: "BRUCH", Group: "GRUPPE"})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.BreakLines) != 0 {
		t.Errorf("got break lines %v, want none", m.BreakLines)
	}
}

func TestReadGeoJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{
			"no elevation",
			`{"type": "FeatureCollection", "features": [{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [0, 1], [0, 0]]]}}]}`,
			ErrUnsupportedGeometry,
		},
		{
			"quad",
			`{"type": "FeatureCollection", "features": [{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0], [0, 0, 0]]]}}]}`,
			ErrUnsupportedGeometry,
		},
		{
			"point",
			`{"type": "FeatureCollection", "features": [{"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 0, 0]}}]}`,
			ErrUnsupportedGeometry,
		},
		{
			"not a collection",
			`{"type": "Feature", "geometry": null}`,
			ErrUnsupportedGeometry,
		},
		{
			"empty",
			`{"type": "FeatureCollection", "features": []}`,
			ErrNoTriangles,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGeoJSON(strings.NewReader(tt.in), DefaultFields())
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ReadGeoJSON(strings.NewReader("{"), DefaultFields()); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

var isolines = []contour.Isoline{
	{ID: 0, Level: 5, Points: []r3.Vec{contour.Pt3(0, 0, 5), contour.Pt3(3, 4, 5)}},
	{ID: 1, Level: 7.5, Points: []r3.Vec{
		contour.Pt3(0, 0, 7.5), contour.Pt3(1, 0, 7.5), contour.Pt3(1, 1, 7.5), contour.Pt3(0, 0, 7.5),
	}, Closed: true},
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGeoJSON(&buf, isolines); err != nil {
		t.Fatal(err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("got %d features, want 2", len(fc.Features))
	}
	diff(t, orb.LineString{{0, 0}, {3, 4}}, fc.Features[0].Geometry)
	for i, f := range fc.Features {
		if id := f.Properties.MustInt(IDField); id != isolines[i].ID {
			t.Errorf("got ID %d, want %d", id, isolines[i].ID)
		}
		if v := f.Properties.MustFloat64(ValueField); v != isolines[i].Level {
			t.Errorf("got value %g, want %g", v, isolines[i].Level)
		}
	}
}

func TestTotalLength(t *testing.T) {
	if l := TotalLength(isolines[:1]); l != 5 {
		t.Errorf("got length %g, want 5", l)
	}
}

func TestShapefileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isolines.shp")
	if err := WriteFile(path, isolines); err != nil {
		t.Fatal(err)
	}

	r, err := shp.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	i := 0
	for r.Next() {
		n, s := r.Shape()
		pl, ok := s.(*shp.PolyLineZ)
		if !ok {
			t.Fatalf("got shape %T, want *shp.PolyLineZ", s)
		}
		l := isolines[n]
		if int(pl.NumPoints) != len(l.Points) {
			t.Errorf("shape %d: got %d points, want %d", n, pl.NumPoints, len(l.Points))
		}
		for j, z := range pl.ZArray {
			if z != l.Level {
				t.Errorf("shape %d: point %d has elevation %g, want %g", n, j, z, l.Level)
			}
		}
		if v := strings.TrimSpace(r.ReadAttribute(n, 0)); v != []string{"0", "1"}[n] {
			t.Errorf("shape %d: got ID %q", n, v)
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(r.ReadAttribute(n, 1)), 64); err != nil || v != l.Level {
			t.Errorf("shape %d: got value %g (%v), want %g", n, v, err, l.Level)
		}
		i++
	}
	if i != len(isolines) {
		t.Errorf("read %d shapes, want %d", i, len(isolines))
	}
}

func TestReadShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tin.shp")
	w, err := shp.Create(path, shp.POLYGONZ)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.SetFields([]shp.Field{
		shp.StringField("BREAKLINE", 1),
		shp.NumberField("GROUP", 10),
	}); err != nil {
		t.Fatal(err)
	}
	tris := []contour.Triangle{
		contour.Tri(contour.Pt3(0, 0, 0), contour.Pt3(10, 0, 0), contour.Pt3(0, 10, 10)),
		contour.Tri(contour.Pt3(10, 0, 0), contour.Pt3(10, 10, 5), contour.Pt3(0, 10, 10)),
	}
	for i, tri := range tris {
		vs := tri.Vertices()
		pts := []shp.Point{{X: vs[0].X, Y: vs[0].Y}, {X: vs[1].X, Y: vs[1].Y}, {X: vs[2].X, Y: vs[2].Y}, {X: vs[0].X, Y: vs[0].Y}}
		n := int(w.Write(&shp.PolygonZ{
			Box:       shp.BBoxFromPoints(pts),
			NumParts:  1,
			NumPoints: 4,
			Parts:     []int32{0},
			Points:    pts,
			ZRange:    [2]float64{0, 10},
			ZArray:    []float64{vs[0].Z, vs[1].Z, vs[2].Z, vs[0].Z},
			MArray:    make([]float64, 4),
		}))
		if err := w.WriteAttribute(n, 0, []string{"N", "Y"}[i]); err != nil {
			t.Fatal(err)
		}
		if err := w.WriteAttribute(n, 1, 3); err != nil {
			t.Fatal(err)
		}
	}
	w.Close()

	m, err := ReadFile(path, DefaultFields())
	if err != nil {
		t.Fatal(err)
	}
	diff(t, &Mesh{
		Triangles:  tris,
		BreakLines: contour.BreakLines{1: contour.WholeTriangle(3)},
	}, m)
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := ReadFile("tin.dxf", DefaultFields()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got error %v, want %v", err, ErrUnsupportedFormat)
	}
	if err := WriteFile("out.kml", nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got error %v, want %v", err, ErrUnsupportedFormat)
	}
}

func TestParseFlag(t *testing.T) {
	for _, v := range []any{"Y", "y", " yes ", "TRUE", "1", true, 1.0} {
		if !parseFlag(v) {
			t.Errorf("%#v isn't a set flag", v)
		}
	}
	for _, v := range []any{"N", "", "no", false, 0.0, nil} {
		if parseFlag(v) {
			t.Errorf("%#v is a set flag", v)
		}
	}
}
