package contour

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Rect is an axis-aligned rectangle in the XY plane. It is used as the
// envelope of triangles and as the query shape of an [Index].
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// EmptyRect returns a rectangle that contains nothing and that is the identity
// element of [Rect.Union].
func EmptyRect() Rect {
	return Rect{
		X0: math.Inf(1),
		Y0: math.Inf(1),
		X1: math.Inf(-1),
		Y1: math.Inf(-1),
	}
}

// NewRectFromPoints returns the planar envelope of p0 and p1, ensuring that
// width and height are non-negative.
func NewRectFromPoints(p0, p1 r3.Vec) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// Abs returns a new rectangle with the same extents as r, but ensuring that width and
// height are non-negative.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect{(%g, %g), (%g, %g)}", r.X0, r.Y0, r.X1, r.Y1)
}

// Width returns the rectangle's width, defined as X1 − X0. It may be negative.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the rectangle's height, defined as Y1 − Y0. It may be negative.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// IsEmpty reports whether r has negative width or height.
func (r Rect) IsEmpty() bool {
	return r.X1 < r.X0 || r.Y1 < r.Y0
}

// Union returns the smallest rectangle enclosing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// UnionPoint returns the smallest rectangle enclosing both r and the planar
// projection of pt.
func (r Rect) UnionPoint(pt r3.Vec) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}

// Inflate returns a new rectangle that has been grown by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{
		X0: r.X0 - d,
		Y0: r.Y0 - d,
		X1: r.X1 + d,
		Y1: r.Y1 + d,
	}
}

// Contains reports whether the planar projection of pt lies within r.
// Points on the boundary are contained.
func (r Rect) Contains(pt r3.Vec) bool {
	return pt.X >= r.X0 && pt.X <= r.X1 &&
		pt.Y >= r.Y0 && pt.Y <= r.Y1
}

// Overlaps reports whether r and o share at least one point.
func (r Rect) Overlaps(o Rect) bool {
	return r.X0 <= o.X1 && o.X0 <= r.X1 &&
		r.Y0 <= o.Y1 && o.Y0 <= r.Y1
}
