package contour

import (
	"fmt"
	"iter"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Segment is the intersection of a triangle with a horizontal plane. Both
// points have the same Z, the segment's level.
type Segment struct {
	P0 r3.Vec
	P1 r3.Vec
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment{%s, %s}", formatPt(s.P0), formatPt(s.P1))
}

// Level returns the elevation of the segment.
func (s Segment) Level() float64 { return s.P0.Z }

// IsDegenerate reports whether the segment is a single point. This happens
// when a triangle touches a level with only one vertex.
func (s Segment) IsDegenerate() bool { return s.P0 == s.P1 }

// Reverse returns the segment with its points swapped.
func (s Segment) Reverse() Segment { return Segment{s.P1, s.P0} }

// SliceTriangle intersects t with the plane z = level.
//
// A vertex whose Z equals level counts as lying above it. An edge crosses the
// level if exactly one of its endpoints lies above. Hence a triangle yields a
// segment only if it has vertices on both sides, and a level strictly between
// the lowest and highest vertex always yields exactly one segment. A level
// equal to the highest vertex, with the other two vertices below, yields a
// degenerate segment at that vertex.
//
// Crossing points are interpolated from the lower to the upper endpoint of
// their edge, so that triangles sharing an edge compute identical points
// regardless of vertex order.
func SliceTriangle(t Triangle, level float64) (Segment, bool) {
	vs := t.Vertices()
	var pts [2]r3.Vec
	n := 0
	for i := range 3 {
		p, q := vs[i], vs[(i+1)%3]
		pa, qa := p.Z >= level, q.Z >= level
		if pa == qa {
			continue
		}
		if pa {
			p, q = q, p
		}
		if n == 2 {
			// Unreachable with finite coordinates.
			return Segment{}, false
		}
		pts[n] = crossing(p, q, level)
		n++
	}
	if n != 2 {
		return Segment{}, false
	}
	return Segment{pts[0], pts[1]}, true
}

// onLevelEdge reports whether the segment of t at level is an edge of t: two
// vertices lie exactly on the level and the third lies below it.
func onLevelEdge(t Triangle, level float64) bool {
	var on, below int
	for _, v := range t.Vertices() {
		switch {
		case v.Z == level:
			on++
		case v.Z < level:
			below++
		}
	}
	return on == 2 && below == 1
}

// crossing returns the point on the edge from below to above, where
// below.Z < level <= above.Z, at which the edge reaches level.
func crossing(below, above r3.Vec, level float64) r3.Vec {
	t := (level - below.Z) / (above.Z - below.Z)
	if t >= 1 {
		above.Z = level
		return above
	}
	pt := Lerp(below, above, t)
	pt.Z = level
	return pt
}

// Levels returns the contour levels in [zmin, zmax] in increasing order.
// Every level is an exact integer multiple of step, computed as n*step, so
// that the same level is produced for every triangle it occurs in.
func Levels(zmin, zmax, step float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if !(step > 0) || math.IsInf(step, 0) || !(zmin <= zmax) {
			return
		}
		lo := math.Ceil(zmin/step) - 1
		hi := math.Floor(zmax/step) + 1
		if math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo+1 == lo {
			// Steps too small to be counted.
			return
		}
		for n := lo; n <= hi; n++ {
			l := n * step
			if l < zmin {
				continue
			}
			if l > zmax {
				return
			}
			if !yield(l) {
				return
			}
		}
	}
}
