package contour

import "math"

// MeshStats summarizes a mesh.
type MeshStats struct {
	Triangles int
	// MaxSlope is the steepest |Δz / Δxy| over all triangle edges.
	MaxSlope float64
	// ZMin and ZMax are the elevation range of the mesh. Both are 0 for an
	// empty mesh.
	ZMin, ZMax float64
	// Degenerate counts triangles with duplicate or collinear vertices.
	Degenerate int
}

// ScanMesh computes the statistics of tris in a single pass. If progress is
// not nil, it is notified after each triangle with a total of twice the
// number of triangles, the scan being the first of two passes over the mesh.
func ScanMesh(tris []Triangle, progress Progress) MeshStats {
	ms := MeshStats{
		Triangles: len(tris),
		ZMin:      math.Inf(1),
		ZMax:      math.Inf(-1),
	}
	total := 2 * len(tris)
	for i, t := range tris {
		lo, hi := t.ZRange()
		ms.ZMin = min(ms.ZMin, lo)
		ms.ZMax = max(ms.ZMax, hi)
		ms.MaxSlope = max(ms.MaxSlope, t.MaxSlope())
		if t.IsDegenerate() {
			ms.Degenerate++
		}
		if progress != nil {
			progress.Progress(i+1, total)
		}
	}
	if len(tris) == 0 {
		ms.ZMin, ms.ZMax = 0, 0
	}
	return ms
}
