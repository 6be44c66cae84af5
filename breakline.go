package contour

import "slices"

// BreakLine marks the vertices of one triangle that lie on a break line,
// such as a ridge or a cliff edge. Break-lined triangles are never smoothed,
// and their normals are not averaged into the normals of the flagged vertices.
type BreakLine struct {
	// Group identifies the break line the triangle belongs to.
	Group int
	// Vertices reports, per vertex of the triangle, whether the vertex lies
	// on the break line.
	Vertices [3]bool
}

// WholeTriangle returns a break line of the given group that flags all three
// vertices. Input records that only carry a per-triangle flag map to it.
func WholeTriangle(group int) BreakLine {
	return BreakLine{Group: group, Vertices: [3]bool{true, true, true}}
}

// BreakLines maps triangle indices to their break-line designation.
// Triangles without an entry are not on a break line.
type BreakLines map[int]BreakLine

// Contains reports whether triangle i is break-lined.
func (bl BreakLines) Contains(i int) bool {
	_, ok := bl[i]
	return ok
}

// AtVertex reports whether vertex v of triangle i is flagged.
func (bl BreakLines) AtVertex(i, v int) bool {
	b, ok := bl[i]
	return ok && b.Vertices[v]
}

// Groups returns the distinct group ids, in increasing order.
func (bl BreakLines) Groups() []int {
	var out []int
	for _, b := range bl {
		out = append(out, b.Group)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
