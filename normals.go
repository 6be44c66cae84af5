package contour

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// cancelEpsilon is the length under which a sum of unit normals is treated as
// having cancelled out.
const cancelEpsilon = 1e-9

// VertexNormals maps mesh vertices, identified by position, to estimated
// surface normals.
type VertexNormals struct {
	table *vertexTable[vertexNormal]
}

type vertexNormal struct {
	n  r3.Vec
	ok bool
}

// At returns the normal estimated for the vertex at pt. It reports false if
// pt is not a vertex of the mesh, or if its normal is undefined.
func (vn *VertexNormals) At(pt r3.Vec) (r3.Vec, bool) {
	if vn == nil {
		return r3.Vec{}, false
	}
	e, ok := vn.table.find(pt)
	if !ok || !e.ok {
		return r3.Vec{}, false
	}
	return e.n, true
}

// Len returns the number of distinct vertices.
func (vn *VertexNormals) Len() int {
	if vn == nil {
		return 0
	}
	return vn.table.len()
}

// EstimateNormals estimates a unit normal for every distinct vertex of tris
// by averaging the normals of all triangles incident to the vertex.
//
// A triangle is skipped for a vertex if bl flags that vertex of that triangle,
// so that surfaces are not blended across break lines. Degenerate triangles
// contribute nothing. If the contributions cancel out, or none remain, the
// vertex's normal is undefined.
//
// Vertices are identified by coordinates within tol (see
// [DefaultVertexTolerance]). idx must index tris; if it is nil, an [RTree] is
// built.
func EstimateNormals(tris []Triangle, bl BreakLines, idx Index, tol float64) *VertexNormals {
	if idx == nil {
		idx = NewRTree(tris)
	}
	vn := &VertexNormals{table: newVertexTable[vertexNormal](tol)}
	tol = vn.table.tol
	for _, t := range tris {
		for _, pt := range t.Vertices() {
			if _, ok := vn.table.find(pt); ok {
				continue
			}
			var sum r3.Vec
			for _, j := range idx.Search(NewRectFromPoints(pt, pt).Inflate(tol)) {
				k := tris[j].vertexIndex(pt, tol)
				if k < 0 || bl.AtVertex(j, k) {
					continue
				}
				n, ok := tris[j].Normal()
				if !ok {
					continue
				}
				sum = r3.Add(sum, n)
			}
			n, ok := Normalize(sum)
			if r3.Norm(sum) < cancelEpsilon {
				ok = false
			}
			vn.table.insert(pt, vertexNormal{n, ok})
		}
	}
	return vn
}
