// Package tinio reads TINs from and writes isolines to vector files.
//
// TINs are read from GeoJSON feature collections and ESRI shapefiles whose
// features are triangles: polygons with a single ring of three distinct
// positions, each position carrying an elevation. Every feature may flag
// itself as part of a break line. Isolines are written as line strings with
// the attributes ID and Value, the latter holding the elevation.
package tinio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"honnef.co/go/contour"
)

var (
	// ErrUnsupportedGeometry is returned for features that aren't triangles
	// with elevations.
	ErrUnsupportedGeometry = errors.New("unsupported geometry")
	// ErrNoTriangles is returned when an input contains no triangles.
	ErrNoTriangles = errors.New("no triangles")
	// ErrUnsupportedFormat is returned for file extensions that aren't
	// recognized.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Attribute names of written isolines.
const (
	IDField    = "ID"
	ValueField = "Value"
)

// Fields names the attributes holding break-line information.
type Fields struct {
	// BreakLine is a flag. Features with the value Y (in any case), yes,
	// true or 1 are break-lined.
	BreakLine string `toml:"breakline" yaml:"breakline"`
	// Group is the integer id of the break line.
	Group string `toml:"group" yaml:"group"`
}

// DefaultFields returns the default attribute names.
func DefaultFields() Fields {
	return Fields{BreakLine: "BREAKLINE", Group: "GROUP"}
}

// Mesh is a TIN read from a file.
type Mesh struct {
	Triangles  []contour.Triangle
	BreakLines contour.BreakLines
}

func (m *Mesh) add(t contour.Triangle, breakLine bool, group int) {
	if breakLine {
		if m.BreakLines == nil {
			m.BreakLines = make(contour.BreakLines)
		}
		m.BreakLines[len(m.Triangles)] = contour.WholeTriangle(group)
	}
	m.Triangles = append(m.Triangles, t)
}

// triangle builds a triangle from a ring, which may or may not repeat its
// first position at the end.
func triangle(ring [][3]float64) (contour.Triangle, error) {
	if len(ring) == 4 && ring[0] == ring[3] {
		ring = ring[:3]
	}
	if len(ring) != 3 {
		return contour.Triangle{}, fmt.Errorf("%w: ring has %d positions, want 3", ErrUnsupportedGeometry, len(ring))
	}
	return contour.Tri(
		contour.Pt3(ring[0][0], ring[0][1], ring[0][2]),
		contour.Pt3(ring[1][0], ring[1][1], ring[1][2]),
		contour.Pt3(ring[2][0], ring[2][1], ring[2][2]),
	), nil
}

func parseFlag(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "y", "yes", "true", "1", "t":
			return true
		}
	}
	return false
}

func parseGroup(v any) int {
	switch v := v.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return int(f)
	}
	return 0
}

// LineString converts an isoline to a planar line string, dropping
// elevations.
func LineString(l contour.Isoline) orb.LineString {
	ls := make(orb.LineString, len(l.Points))
	for i, pt := range l.Points {
		ls[i] = orb.Point{pt.X, pt.Y}
	}
	return ls
}

// TotalLength returns the summed planar length of isolines.
func TotalLength(ls []contour.Isoline) float64 {
	var sum float64
	for _, l := range ls {
		sum += planar.Length(LineString(l))
	}
	return sum
}

// ReadFile reads a TIN from a GeoJSON (.geojson, .json) or shapefile (.shp)
// file.
func ReadFile(path string, fields Fields) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return ReadGeoJSONFile(path, fields)
	case ".shp":
		return ReadShapefile(path, fields)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// WriteFile writes isolines to a GeoJSON (.geojson, .json) or shapefile
// (.shp) file.
func WriteFile(path string, ls []contour.Isoline) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return WriteGeoJSONFile(path, ls)
	case ".shp":
		return WriteShapefile(path, ls)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}
