package contour

import (
	"iter"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxLevelOfDetail is the highest supported level of detail.
const MaxLevelOfDetail = 9

// RefineOptions configures a [Refiner].
type RefineOptions struct {
	// LevelOfDetail is the number of parametric steps each triangle edge is
	// divided into. Each smoothable triangle is replaced by LevelOfDetail²
	// sub-triangles. 0 passes every triangle through unchanged.
	LevelOfDetail int
	// Smoothing is the absolute displacement factor of the patches' edge
	// control points. [Run] derives it from the mesh's maximum slope and the
	// configured smoothing coefficient.
	Smoothing float64
	EdgeMode  EdgeMode
	// BreakLines lists triangles that must not be smoothed.
	BreakLines BreakLines
	// Normals are the vertex normals of the mesh. If nil and LevelOfDetail is
	// positive, they are estimated by [EstimateNormals].
	Normals *VertexNormals
	// VertexTolerance is passed to [EstimateNormals] when Normals is nil.
	VertexTolerance float64
	Logger          logrus.FieldLogger
}

// RefineStats counts how source triangles were treated during the most
// recent iteration of a [Refiner].
type RefineStats struct {
	// Passthrough counts triangles emitted unchanged because the level of
	// detail is 0 or because they are break-lined.
	Passthrough int
	// NotSmoothable counts triangles emitted unchanged because they are
	// degenerate or a vertex normal is undefined.
	NotSmoothable int
	// Refined counts triangles that were subdivided.
	Refined int
}

// Refiner replaces the triangles of a mesh with finer triangles sampled from
// a smooth Bézier patch per triangle. It is a [Source].
type Refiner struct {
	tris  []Triangle
	opts  RefineOptions
	log   logrus.FieldLogger
	stats RefineStats
}

var _ Source = (*Refiner)(nil)

// NewRefiner returns a refiner over tris. tris is not copied and must not be
// modified while the refiner is in use.
func NewRefiner(tris []Triangle, opts RefineOptions) *Refiner {
	opts.LevelOfDetail = max(opts.LevelOfDetail, 0)
	if opts.LevelOfDetail > 0 && opts.Normals == nil {
		opts.Normals = EstimateNormals(tris, opts.BreakLines, nil, opts.VertexTolerance)
	}
	return &Refiner{
		tris: tris,
		opts: opts,
		log:  logger(opts.Logger),
	}
}

// Len returns the number of source triangles.
func (r *Refiner) Len() int { return len(r.tris) }

// Stats returns the counts of the most recent iteration. They are reset
// whenever iteration starts.
func (r *Refiner) Stats() RefineStats { return r.stats }

// Triangles returns the refined triangles, paired with the index of the
// source triangle they were sampled from. Source triangles are visited in
// order. Sub-triangles are computed on demand, one source triangle at a time.
//
// The sequence can be iterated any number of times and yields the same
// triangles each time.
func (r *Refiner) Triangles() iter.Seq2[int, Triangle] {
	return func(yield func(int, Triangle) bool) {
		r.stats = RefineStats{}
		k := r.opts.LevelOfDetail
		var nodes []r3.Vec
		for i, t := range r.tris {
			if k == 0 || r.opts.BreakLines.Contains(i) {
				r.stats.Passthrough++
				if !yield(i, t) {
					return
				}
				continue
			}
			p, ok := r.patch(t)
			if !ok {
				r.stats.NotSmoothable++
				r.log.WithField("triangle", i).Debug("triangle is not smoothable, using it as is")
				if !yield(i, t) {
					return
				}
				continue
			}
			r.stats.Refined++
			nodes = gridNodes(p, k, nodes[:0])
			if !subdivide(nodes, k, func(t Triangle) bool { return yield(i, t) }) {
				return
			}
		}
	}
}

func (r *Refiner) patch(t Triangle) (Patch, bool) {
	var ns [3]r3.Vec
	for j, v := range t.Vertices() {
		n, ok := r.opts.Normals.At(v)
		if !ok {
			return Patch{}, false
		}
		ns[j] = n
	}
	return NewPatchMode(t, ns[0], ns[1], ns[2], r.opts.Smoothing, r.opts.EdgeMode)
}

// gridIndex returns the position of node (i, j) in a triangular grid of
// resolution k, stored row by row with row j holding k+1-j nodes.
func gridIndex(k, i, j int) int {
	return j*(k+1) - j*(j-1)/2 + i
}

// gridNodes samples p at the nodes of a barycentric grid of resolution k and
// appends them to dst. Node (i, j) lies at u = i/k, v = j/k.
func gridNodes(p Patch, k int, dst []r3.Vec) []r3.Vec {
	fk := float64(k)
	for j := 0; j <= k; j++ {
		for i := 0; i <= k-j; i++ {
			u := float64(i) / fk
			v := float64(j) / fk
			w := float64(k-i-j) / fk
			dst = append(dst, p.eval(u, v, w))
		}
	}
	return dst
}

// subdivide emits the k² sub-triangles of a grid built by gridNodes. It
// returns false if emit did.
func subdivide(nodes []r3.Vec, k int, emit func(Triangle) bool) bool {
	at := func(i, j int) r3.Vec { return nodes[gridIndex(k, i, j)] }
	for j := 0; j < k; j++ {
		for i := 0; i < k-j; i++ {
			if !emit(Tri(at(i, j), at(i+1, j), at(i, j+1))) {
				return false
			}
			if i+j < k-1 {
				if !emit(Tri(at(i+1, j), at(i+1, j+1), at(i, j+1))) {
					return false
				}
			}
		}
	}
	return true
}
