package contour

import (
	"context"

	"github.com/sirupsen/logrus"
)

// RunOptions are the collaborators of [Run]. All fields are optional.
type RunOptions struct {
	// Progress is notified once per input triangle in each of the two
	// passes, with a total of twice the number of triangles.
	Progress Progress
	Logger   logrus.FieldLogger
	// Index is the adjacency index of the input triangles, used to estimate
	// normals. An [RTree] is built if it is nil and refinement is enabled.
	Index Index
}

// Run computes the isolines of a TIN.
//
// The first pass scans the mesh for its maximum slope, which, scaled by
// cfg.Smoothing, becomes the displacement factor of the Bézier patches. The
// second pass refines the mesh according to cfg.LevelOfDetail, skipping
// triangles listed in bl, and extracts isolines from the result.
//
// The configuration is validated before anything else is done. Cancellation
// of ctx is handled as described for [Extractor.Extract].
func Run(ctx context.Context, tris []Triangle, bl BreakLines, cfg Config, opts RunOptions) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger(opts.Logger)

	ms := ScanMesh(tris, opts.Progress)
	log.WithFields(logrus.Fields{
		"triangles":  ms.Triangles,
		"max_slope":  ms.MaxSlope,
		"zmin":       ms.ZMin,
		"zmax":       ms.ZMax,
		"degenerate": ms.Degenerate,
	}).Debug("mesh scanned")

	ropts := RefineOptions{
		LevelOfDetail: cfg.LevelOfDetail,
		Smoothing:     ms.MaxSlope * cfg.Smoothing,
		EdgeMode:      cfg.EdgeNormals,
		BreakLines:    bl,
		Logger:        opts.Logger,
	}
	if cfg.LevelOfDetail > 0 {
		ropts.Normals = EstimateNormals(tris, bl, opts.Index, cfg.VertexTolerance)
		log.WithField("vertices", ropts.Normals.Len()).Debug("normals estimated")
	}

	ex := &Extractor{
		Equidistance:      cfg.Equidistance,
		ClusterTolerance:  cfg.ClusterTolerance,
		SimplifyTolerance: cfg.SimplifyTolerance,
		Logger:            opts.Logger,
	}
	if opts.Progress != nil {
		ex.Progress = offsetProgress{p: opts.Progress, offset: len(tris), total: 2 * len(tris)}
	}
	res, err := ex.Extract(ctx, NewSource(tris, ropts))
	if err != nil {
		return nil, err
	}
	res.Mesh = ms
	return res, nil
}
