// Package contour computes isolines (contour lines) of triangulated elevation
// surfaces. The input is a TIN, a set of 3D triangles with Z interpreted as
// elevation; the output is a set of polylines of constant elevation, one
// family per multiple of a configurable equidistance.
//
// Points and vectors are represented by [r3.Vec] from gonum's spatial/r3
// package. [Pt3] constructs them, and this package adds the few operations
// that gonum lacks, such as [PlanarDistance] and [Lerp].
//
// # Pipeline
//
// [Run] drives the whole computation, which is made of the following steps,
// each of which is also available on its own:
//
//   - [ScanMesh] determines the mesh's elevation range and maximum slope.
//   - [EstimateNormals] estimates a normal per mesh vertex by averaging the
//     normals of the incident triangles, using an [Index] to find them.
//   - [NewPatch] builds a cubic Bézier [Patch] per triangle from its vertices
//     and vertex normals.
//   - A [Refiner] samples each patch on a regular grid, replacing every
//     triangle with finer triangles that follow the curved surface.
//   - An [Extractor] slices triangles at every level with [SliceTriangle] and
//     stitches the segments into [Isoline] values.
//
// # Smoothing
//
// A flat TIN produces angular isolines with a kink at every triangle edge.
// Refinement replaces each triangle with a PN triangle, a curved patch whose
// corners coincide with the triangle's vertices and whose tangent planes at
// the corners are given by the vertex normals. Neighbouring patches agree
// along shared edges, so that isolines remain continuous.
//
// The level of detail determines how finely patches are sampled: at level k,
// every triangle becomes k² triangles. Level 0 disables refinement. The
// displacement of the patches' control points is proportional to the mesh's
// steepest slope times the smoothing coefficient of the [Config].
//
// # Break lines
//
// Break lines mark sharp features of the terrain, such as ridges or cliff
// edges, that must not be smoothed away. Triangles listed in [BreakLines] are
// never refined, and their normals are not averaged into the normals of
// flagged vertices.
//
// # Vertex identity
//
// Triangulations commonly duplicate vertices, so vertices are identified by
// their coordinates, within a tolerance, instead of by index. See
// [DefaultVertexTolerance].
//
// # Stitching
//
// Segments of the same level are joined when their endpoints are within the
// cluster tolerance of each other, measured in the plane. When several
// isoline ends are within tolerance, the closest wins; remaining ties go to
// the isoline that was started first, and then to its head. This makes
// results reproducible across runs.
//
// # Literature
//
//   - [Curved PN Triangles] by Vlachos, Peters, Boyd and Mitchell
//
// [Curved PN Triangles]: https://doi.org/10.1145/364338.364387
package contour
