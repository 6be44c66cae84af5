package contour

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultVertexTolerance is the default coordinate tolerance under which two
// vertices are considered the same mesh vertex.
const DefaultVertexTolerance = 1e-6

// maxGridCoord bounds the cell coordinates of grid hashes. Beyond it, a
// coordinate is keyed by its bits: the tolerance is then below the spacing of
// adjacent floats, so only identical coordinates can be within it.
const maxGridCoord = 1 << 62

// gridCoord is a coordinate of a hash cell.
type gridCoord struct {
	v     int64
	exact bool
}

func newGridCoord(x, tol float64) gridCoord {
	q := math.Floor(x / tol)
	if !(math.Abs(q) < maxGridCoord) {
		return exactCoord(x)
	}
	return gridCoord{v: int64(q)}
}

func exactCoord(x float64) gridCoord {
	return gridCoord{v: int64(math.Float64bits(posZero(x))), exact: true}
}

// neighbours returns the coordinates of the cell and its two neighbours along
// one axis. Exact coordinates have no neighbours.
func (c gridCoord) neighbours() []gridCoord {
	if c.exact {
		return []gridCoord{c}
	}
	return []gridCoord{{v: c.v - 1}, c, {v: c.v + 1}}
}

func posZero(f float64) float64 {
	if f == 0 {
		return 0
	}
	return f
}

type vertexKey [3]gridCoord

type vertexEntry[T any] struct {
	pt    r3.Vec
	value T
}

// vertexTable maps vertex positions to values. Positions within tol of each
// other in every coordinate share an entry, because triangulations commonly
// emit duplicate vertices at shared positions. Positions are bucketed by
// rounded coordinates, and a lookup inspects the neighbouring buckets too.
// See [gridCoord] for coordinates too large for the tolerance.
type vertexTable[T any] struct {
	tol   float64
	cells map[vertexKey][]vertexEntry[T]
	n     int
}

func newVertexTable[T any](tol float64) *vertexTable[T] {
	if !(tol > 0) {
		tol = DefaultVertexTolerance
	}
	return &vertexTable[T]{
		tol:   tol,
		cells: make(map[vertexKey][]vertexEntry[T]),
	}
}

func (vt *vertexTable[T]) key(pt r3.Vec) vertexKey {
	return vertexKey{
		newGridCoord(pt.X, vt.tol),
		newGridCoord(pt.Y, vt.tol),
		newGridCoord(pt.Z, vt.tol),
	}
}

func (vt *vertexTable[T]) find(pt r3.Vec) (T, bool) {
	k := vt.key(pt)
	for _, x := range k[0].neighbours() {
		for _, y := range k[1].neighbours() {
			for _, z := range k[2].neighbours() {
				for _, e := range vt.cells[vertexKey{x, y, z}] {
					if math.Abs(e.pt.X-pt.X) <= vt.tol &&
						math.Abs(e.pt.Y-pt.Y) <= vt.tol &&
						math.Abs(e.pt.Z-pt.Z) <= vt.tol {
						return e.value, true
					}
				}
			}
		}
	}
	var zero T
	return zero, false
}

// insert adds a new entry. Callers check with find first.
func (vt *vertexTable[T]) insert(pt r3.Vec, v T) {
	k := vt.key(pt)
	vt.cells[k] = append(vt.cells[k], vertexEntry[T]{pt, v})
	vt.n++
}

func (vt *vertexTable[T]) len() int { return vt.n }
