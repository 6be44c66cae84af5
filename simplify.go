package contour

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Simplify removes interior points of a polyline that lie within tol, in the
// plane, of the chord between the previously kept point and the next point.
// The first and last points are always kept. A ring keeps at least four
// points, so that it still encloses an area. A non-positive tol returns pts
// unchanged.
//
// The returned slice shares no memory with pts unless pts is returned as is.
func Simplify(pts []r3.Vec, tol float64) []r3.Vec {
	if !(tol > 0) || len(pts) < 3 {
		return pts
	}
	out := make([]r3.Vec, 0, len(pts))
	out = append(out, pts[0])
	for i := 1; i < len(pts)-1; i++ {
		if planarSegmentDistance(pts[i], out[len(out)-1], pts[i+1]) <= tol {
			continue
		}
		out = append(out, pts[i])
	}
	out = append(out, pts[len(pts)-1])
	if pts[0] == pts[len(pts)-1] && len(out) < 4 {
		return pts
	}
	return out
}

// planarSegmentDistance returns the planar distance between pt and the
// segment from a to b.
func planarSegmentDistance(pt, a, b r3.Vec) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return PlanarDistance(pt, a)
	}
	t := ((pt.X-a.X)*dx + (pt.Y-a.Y)*dy) / l2
	t = min(max(t, 0), 1)
	return PlanarDistance(pt, r3.Vec{X: a.X + t*dx, Y: a.Y + t*dy})
}
