package tinio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb/geojson"

	"honnef.co/go/contour"
)

// geometry defers decoding of coordinates, which orb would truncate to two
// dimensions.
type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type feature struct {
	Geometry   *geometry          `json:"geometry"`
	Properties geojson.Properties `json:"properties"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

// ReadGeoJSON reads a TIN from a GeoJSON feature collection. Every feature
// must be a Polygon or MultiPolygon whose polygons are triangles with three
// coordinates per position. Holes are not allowed.
func ReadGeoJSON(r io.Reader, fields Fields) (*Mesh, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("%w: GeoJSON type %q, want FeatureCollection", ErrUnsupportedGeometry, fc.Type)
	}
	m := &Mesh{}
	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		bl := parseFlag(f.Properties[fields.BreakLine])
		group := parseGroup(f.Properties[fields.Group])
		tris, err := parseTriangles(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		for _, t := range tris {
			m.add(t, bl, group)
		}
	}
	if len(m.Triangles) == 0 {
		return nil, ErrNoTriangles
	}
	return m, nil
}

// ReadGeoJSONFile reads a TIN from a GeoJSON file. See [ReadGeoJSON].
func ReadGeoJSONFile(path string, fields Fields) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGeoJSON(f, fields)
}

func parseTriangles(g *geometry) ([]contour.Triangle, error) {
	var polys [][][][]float64
	switch g.Type {
	case "Polygon":
		var poly [][][]float64
		if err := json.Unmarshal(g.Coordinates, &poly); err != nil {
			return nil, fmt.Errorf("failed to parse coordinates: %w", err)
		}
		polys = append(polys, poly)
	case "MultiPolygon":
		if err := json.Unmarshal(g.Coordinates, &polys); err != nil {
			return nil, fmt.Errorf("failed to parse coordinates: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, g.Type)
	}

	tris := make([]contour.Triangle, 0, len(polys))
	for _, poly := range polys {
		if len(poly) != 1 {
			return nil, fmt.Errorf("%w: polygon has %d rings, want 1", ErrUnsupportedGeometry, len(poly))
		}
		ring := make([][3]float64, len(poly[0]))
		for i, pos := range poly[0] {
			if len(pos) < 3 {
				return nil, fmt.Errorf("%w: position without elevation", ErrUnsupportedGeometry)
			}
			ring[i] = [3]float64{pos[0], pos[1], pos[2]}
		}
		t, err := triangle(ring)
		if err != nil {
			return nil, err
		}
		tris = append(tris, t)
	}
	return tris, nil
}

// FeatureCollection converts isolines to line string features with the
// properties ID and Value. Elevations are only kept in Value, as orb's
// geometries are planar.
func FeatureCollection(ls []contour.Isoline) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, l := range ls {
		f := geojson.NewFeature(LineString(l))
		f.Properties[IDField] = l.ID
		f.Properties[ValueField] = l.Level
		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON writes isolines as a GeoJSON feature collection.
func WriteGeoJSON(w io.Writer, ls []contour.Isoline) error {
	b, err := FeatureCollection(ls).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteGeoJSONFile writes isolines to a GeoJSON file, replacing it if it
// exists.
func WriteGeoJSONFile(path string, ls []contour.Isoline) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteGeoJSON(f, ls); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
