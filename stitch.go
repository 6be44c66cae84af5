package contour

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// polyline is an isoline under construction. Points are kept in a deque so
// that both ends can grow in amortized constant time.
type polyline struct {
	seq   int
	level float64
	// front holds the points before back[0], in reverse order.
	front []r3.Vec
	back  []r3.Vec
	// ends are the head and tail endpoints registered in the level's index.
	ends   [2]*endpoint
	closed bool
	dead   bool
}

func (pl *polyline) len() int { return len(pl.front) + len(pl.back) }

func (pl *polyline) first() r3.Vec {
	if len(pl.front) > 0 {
		return pl.front[len(pl.front)-1]
	}
	return pl.back[0]
}

func (pl *polyline) last() r3.Vec {
	if len(pl.back) > 0 {
		return pl.back[len(pl.back)-1]
	}
	return pl.front[0]
}

func (pl *polyline) points() []r3.Vec {
	out := make([]r3.Vec, 0, pl.len())
	for i := len(pl.front) - 1; i >= 0; i-- {
		out = append(out, pl.front[i])
	}
	return append(out, pl.back...)
}

// degenerate reports whether the polyline stems from a single degenerate
// segment and consists of one point, twice.
func (pl *polyline) degenerate() bool {
	return pl.len() == 2 && pl.first() == pl.last()
}

func (pl *polyline) push(tail bool, pt r3.Vec) {
	if tail {
		pl.back = append(pl.back, pt)
	} else {
		pl.front = append(pl.front, pt)
	}
}

func (pl *polyline) reset(pts []r3.Vec) {
	pl.front = nil
	pl.back = pts
}

// endpoint is the head or tail of a polyline, as registered in an endIndex.
type endpoint struct {
	pl   *polyline
	tail bool
	pt   r3.Vec
}

type cellKey [2]gridCoord

// endIndex finds polyline endpoints of one level by planar proximity. With a
// positive tolerance, endpoints are hashed into square cells of the
// tolerance's size, and a query inspects the 3×3 cells around the query
// point. With a tolerance of 0, only identical coordinates match.
type endIndex struct {
	tol   float64
	cells map[cellKey][]*endpoint
}

func newEndIndex(tol float64) *endIndex {
	return &endIndex{
		tol:   tol,
		cells: make(map[cellKey][]*endpoint),
	}
}

func (ix *endIndex) key(pt r3.Vec) cellKey {
	if ix.tol == 0 {
		return cellKey{exactCoord(pt.X), exactCoord(pt.Y)}
	}
	return cellKey{newGridCoord(pt.X, ix.tol), newGridCoord(pt.Y, ix.tol)}
}

func (ix *endIndex) add(e *endpoint) {
	k := ix.key(e.pt)
	ix.cells[k] = append(ix.cells[k], e)
}

func (ix *endIndex) remove(e *endpoint) {
	k := ix.key(e.pt)
	cell := ix.cells[k]
	if i := slices.Index(cell, e); i >= 0 {
		cell = slices.Delete(cell, i, i+1)
	}
	if len(cell) == 0 {
		delete(ix.cells, k)
	} else {
		ix.cells[k] = cell
	}
}

func (ix *endIndex) move(e *endpoint, pt r3.Vec) {
	ix.remove(e)
	e.pt = pt
	ix.add(e)
}

// nearest returns the endpoint within the tolerance of pt, other than
// exclude, that is closest to pt. Ties go to the polyline that was started
// first, and then to its head.
func (ix *endIndex) nearest(pt r3.Vec, exclude *endpoint) *endpoint {
	var best *endpoint
	var bestD float64
	consider := func(cell []*endpoint) {
		for _, e := range cell {
			if e == exclude {
				continue
			}
			d := PlanarDistance(pt, e.pt)
			if d > ix.tol {
				continue
			}
			switch {
			case best == nil,
				d < bestD,
				d == bestD && e.pl.seq < best.pl.seq,
				d == bestD && e.pl.seq == best.pl.seq && !e.tail:
				best, bestD = e, d
			}
		}
	}
	k := ix.key(pt)
	for _, x := range k[0].neighbours() {
		for _, y := range k[1].neighbours() {
			consider(ix.cells[cellKey{x, y}])
		}
	}
	return best
}

// stitcher chains segments into polylines, per level, by matching segment
// endpoints against polyline endpoints within a planar tolerance.
type stitcher struct {
	tol    float64
	seq    int
	levels map[float64]*endIndex
	// open holds polylines in the order they were started.
	open []*polyline
	// rings holds closed polylines in the order they were closed.
	rings []*polyline
	// edges holds the mesh edges lying on a level that have been added.
	edges map[edgeKey]struct{}
	stats *Stats
}

type edgeKey struct {
	level float64
	a, b  [2]gridCoord
}

func newEdgeKey(seg Segment) edgeKey {
	a := [2]gridCoord{exactCoord(seg.P0.X), exactCoord(seg.P0.Y)}
	b := [2]gridCoord{exactCoord(seg.P1.X), exactCoord(seg.P1.Y)}
	if b[0].v < a[0].v || (b[0].v == a[0].v && b[1].v < a[1].v) {
		a, b = b, a
	}
	return edgeKey{posZero(seg.Level()), a, b}
}

func newStitcher(tol float64, stats *Stats) *stitcher {
	return &stitcher{
		tol:    tol,
		levels: make(map[float64]*endIndex),
		edges:  make(map[edgeKey]struct{}),
		stats:  stats,
	}
}

func (s *stitcher) index(level float64) *endIndex {
	ix, ok := s.levels[level]
	if !ok {
		ix = newEndIndex(s.tol)
		s.levels[level] = ix
	}
	return ix
}

// add adds one segment.
//
// A segment with no endpoint near an existing polyline end starts a new
// polyline. A segment with one matching endpoint extends that polyline. A
// segment that matches ends of two different polylines joins them, and one
// that matches both ends of the same polyline closes it into a ring, which is
// then complete. A degenerate segment near an existing end adds nothing, and
// neither does a segment that retraces a polyline of a single segment.
func (s *stitcher) add(seg Segment) {
	ix := s.index(seg.Level())
	if seg.IsDegenerate() {
		if ix.nearest(seg.P0, nil) != nil {
			s.stats.Absorbed++
			return
		}
		s.start(ix, seg)
		return
	}

	ep := ix.nearest(seg.P0, nil)
	eq := ix.nearest(seg.P1, ep)
	switch {
	case ep == nil && eq == nil:
		s.start(ix, seg)
	case eq == nil:
		s.extend(ix, ep, seg.P1)
	case ep == nil:
		s.extend(ix, eq, seg.P0)
	case ep.pl == eq.pl:
		switch {
		case ep.pl.degenerate():
			s.extend(ix, ep, seg.P1)
		case ep.pl.len() == 2:
			// The segment retraces the polyline's only segment.
			s.stats.Absorbed++
		default:
			s.close(ix, ep.pl)
		}
	default:
		s.merge(ix, ep, eq)
	}
}

// addEdge adds a segment that is a mesh edge lying exactly on its level.
// Both triangles sharing such an edge may yield it; only the first counts.
func (s *stitcher) addEdge(seg Segment) {
	k := newEdgeKey(seg)
	if _, ok := s.edges[k]; ok {
		s.stats.Absorbed++
		return
	}
	s.edges[k] = struct{}{}
	s.add(seg)
}

func (s *stitcher) start(ix *endIndex, seg Segment) {
	pl := &polyline{
		seq:   s.seq,
		level: seg.Level(),
		back:  []r3.Vec{seg.P0, seg.P1},
	}
	s.seq++
	pl.ends[0] = &endpoint{pl: pl, pt: seg.P0}
	pl.ends[1] = &endpoint{pl: pl, tail: true, pt: seg.P1}
	ix.add(pl.ends[0])
	ix.add(pl.ends[1])
	s.open = append(s.open, pl)
}

// extend appends pt to the polyline end e.
func (s *stitcher) extend(ix *endIndex, e *endpoint, pt r3.Vec) {
	pl := e.pl
	if pl.degenerate() {
		anchor := pl.first()
		pl.reset([]r3.Vec{anchor, pt})
		ix.move(pl.ends[0], anchor)
		ix.move(pl.ends[1], pt)
		return
	}
	pl.push(e.tail, pt)
	ix.move(e, pt)
}

func (s *stitcher) close(ix *endIndex, pl *polyline) {
	pl.push(true, pl.first())
	pl.closed = true
	ix.remove(pl.ends[0])
	ix.remove(pl.ends[1])
	s.rings = append(s.rings, pl)
}

// merge joins the polylines of ep and eq, which a segment connects. The
// polyline that was started first survives.
func (s *stitcher) merge(ix *endIndex, ep, eq *endpoint) {
	x, y := ep.pl, eq.pl
	a := x.points()
	if !ep.tail {
		slices.Reverse(a)
	}
	if x.degenerate() {
		a = a[:1]
	}
	b := y.points()
	if eq.tail {
		slices.Reverse(b)
	}
	if y.degenerate() {
		b = b[:1]
	}
	pts := append(a, b...)

	keep, drop := x, y
	if drop.seq < keep.seq {
		keep, drop = drop, keep
	}
	drop.dead = true
	ix.remove(drop.ends[0])
	ix.remove(drop.ends[1])
	keep.reset(pts)
	ix.move(keep.ends[0], pts[0])
	ix.move(keep.ends[1], pts[len(pts)-1])
}

// finish returns all polylines: rings in the order they were closed, then
// open polylines in the order they were started.
func (s *stitcher) finish() []*polyline {
	out := slices.Clone(s.rings)
	for _, pl := range s.open {
		if pl.dead || pl.closed {
			continue
		}
		out = append(out, pl)
	}
	return out
}
