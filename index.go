package contour

import (
	"slices"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// Index answers which triangles of a mesh may touch a planar region. It is
// consulted by [EstimateNormals] to find the triangles incident to a vertex
// without comparing every pair of triangles.
//
// Search may return false positives; it must not miss a triangle whose
// envelope overlaps r.
type Index interface {
	Search(r Rect) []int
}

var _ Index = (*RTree)(nil)

// RTree is an [Index] backed by an R-tree of triangle envelopes.
type RTree struct {
	tree *rtree.Rtree
	n    int
}

type indexedTriangle struct {
	geom.Polygonal
	index int
}

// NewRTree indexes the envelopes of tris. The indices returned by
// [RTree.Search] are positions in tris.
func NewRTree(tris []Triangle) *RTree {
	t := &RTree{
		tree: rtree.NewTree(25, 50),
		n:    len(tris),
	}
	for i, tri := range tris {
		t.tree.Insert(&indexedTriangle{
			Polygonal: geom.Polygon{{
				{X: tri.A.X, Y: tri.A.Y},
				{X: tri.B.X, Y: tri.B.Y},
				{X: tri.C.X, Y: tri.C.Y},
				{X: tri.A.X, Y: tri.A.Y},
			}},
			index: i,
		})
	}
	return t
}

// Len returns the number of indexed triangles.
func (t *RTree) Len() int { return t.n }

// Search returns the indices of all triangles whose envelope overlaps r, in
// increasing order.
func (t *RTree) Search(r Rect) []int {
	found := t.tree.SearchIntersect(&geom.Bounds{
		Min: geom.Point{X: r.X0, Y: r.Y0},
		Max: geom.Point{X: r.X1, Y: r.Y1},
	})
	out := make([]int, 0, len(found))
	for _, g := range found {
		out = append(out, g.(*indexedTriangle).index)
	}
	// Normal summation depends on this order.
	slices.Sort(out)
	return out
}
