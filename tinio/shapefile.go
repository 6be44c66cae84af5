package tinio

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonas-p/go-shp"

	"honnef.co/go/contour"
)

// ReadShapefile reads a TIN from a PolygonZ shapefile. Every shape must be a
// triangle. Break-line attributes are read from the accompanying dBASE file.
func ReadShapefile(path string, fields Fields) (*Mesh, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	blField, groupField := -1, -1
	for i, f := range r.Fields() {
		switch name := f.String(); {
		case strings.EqualFold(name, fields.BreakLine):
			blField = i
		case strings.EqualFold(name, fields.Group):
			groupField = i
		}
	}

	m := &Mesh{}
	for r.Next() {
		n, s := r.Shape()
		tris, err := shapeTriangles(s)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", n, err)
		}
		var bl bool
		var group int
		if blField >= 0 {
			bl = parseFlag(r.ReadAttribute(n, blField))
		}
		if groupField >= 0 {
			group = parseGroup(r.ReadAttribute(n, groupField))
		}
		for _, t := range tris {
			m.add(t, bl, group)
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	if len(m.Triangles) == 0 {
		return nil, ErrNoTriangles
	}
	return m, nil
}

func shapeTriangles(s shp.Shape) ([]contour.Triangle, error) {
	p, ok := s.(*shp.PolygonZ)
	if !ok {
		return nil, fmt.Errorf("%w: %T, want PolygonZ", ErrUnsupportedGeometry, s)
	}
	if len(p.ZArray) != len(p.Points) {
		return nil, fmt.Errorf("%w: %d elevations for %d points", ErrUnsupportedGeometry, len(p.ZArray), len(p.Points))
	}
	var tris []contour.Triangle
	for i, start := range p.Parts {
		end := int32(len(p.Points))
		if i+1 < len(p.Parts) {
			end = p.Parts[i+1]
		}
		ring := make([][3]float64, 0, end-start)
		for j := start; j < end; j++ {
			ring = append(ring, [3]float64{p.Points[j].X, p.Points[j].Y, p.ZArray[j]})
		}
		t, err := triangle(ring)
		if err != nil {
			return nil, err
		}
		tris = append(tris, t)
	}
	return tris, nil
}

// polyLineZ converts an isoline to a single-part PolyLineZ.
func polyLineZ(l contour.Isoline) *shp.PolyLineZ {
	pts := make([]shp.Point, len(l.Points))
	zs := make([]float64, len(l.Points))
	zr := [2]float64{math.Inf(1), math.Inf(-1)}
	for i, pt := range l.Points {
		pts[i] = shp.Point{X: pt.X, Y: pt.Y}
		zs[i] = pt.Z
		zr[0] = min(zr[0], pt.Z)
		zr[1] = max(zr[1], pt.Z)
	}
	return &shp.PolyLineZ{
		Box:       shp.BBoxFromPoints(pts),
		NumParts:  1,
		NumPoints: int32(len(pts)),
		Parts:     []int32{0},
		Points:    pts,
		ZRange:    zr,
		ZArray:    zs,
		MArray:    make([]float64, len(pts)),
	}
}

// WriteShapefile writes isolines to a PolyLineZ shapefile with the attributes
// ID and Value. The .shx and .dbf files are written next to path.
func WriteShapefile(path string, ls []contour.Isoline) error {
	w, err := shp.Create(path, shp.POLYLINEZ)
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.SetFields([]shp.Field{
		shp.NumberField(IDField, 10),
		shp.FloatField(ValueField, 24, 6),
	}); err != nil {
		return err
	}
	for _, l := range ls {
		n := int(w.Write(polyLineZ(l)))
		if err := w.WriteAttribute(n, 0, l.ID); err != nil {
			return err
		}
		if err := w.WriteAttribute(n, 1, l.Level); err != nil {
			return err
		}
	}
	return nil
}
