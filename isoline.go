package contour

import (
	"cmp"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// Isoline is a polyline of constant elevation.
type Isoline struct {
	// ID is unique among the isolines of one extraction.
	ID    int
	Level float64
	// Points has at least two entries, all with Z equal to Level. An isoline
	// stemming from a triangle that merely touches its level consists of the
	// same point twice.
	Points []r3.Vec
	// Closed reports whether the isoline is a ring. The first point of a ring
	// is repeated at its end.
	Closed bool
}

func (l Isoline) String() string {
	kind := "open"
	if l.Closed {
		kind = "closed"
	}
	return fmt.Sprintf("Isoline{ID: %d, Level: %g, %d points, %s}", l.ID, l.Level, len(l.Points), kind)
}

// Len returns the number of points.
func (l Isoline) Len() int { return len(l.Points) }

// Length returns the planar length of the isoline.
func (l Isoline) Length() float64 {
	var sum float64
	for i := 1; i < len(l.Points); i++ {
		sum += PlanarDistance(l.Points[i-1], l.Points[i])
	}
	return sum
}

// BoundingBox returns the planar envelope of the isoline.
func (l Isoline) BoundingBox() Rect {
	r := EmptyRect()
	for _, pt := range l.Points {
		r = r.UnionPoint(pt)
	}
	return r
}

// IsDegenerate reports whether all points of the isoline are the same.
func (l Isoline) IsDegenerate() bool {
	if len(l.Points) < 2 {
		return true
	}
	for _, pt := range l.Points[1:] {
		if pt != l.Points[0] {
			return false
		}
	}
	return true
}

// SortByLevel sorts isolines by level, and isolines of the same level by ID.
func SortByLevel(ls []Isoline) {
	slices.SortFunc(ls, func(a, b Isoline) int {
		if c := cmp.Compare(a.Level, b.Level); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
