package contour

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Stats counts what happened during an extraction. None of the counted
// conditions are errors.
type Stats struct {
	// SourceTriangles is the number of input triangles that were processed.
	SourceTriangles int
	// Triangles is the number of triangles that were sliced, after
	// refinement.
	Triangles int
	// Segments is the number of segments produced by slicing, including
	// degenerate ones.
	Segments int
	// Degenerate counts single-point segments.
	Degenerate int
	// Absorbed counts segments that were dropped because they added nothing:
	// degenerate segments at the end of an existing isoline, and segments
	// retracing one already added, such as a mesh edge on a level that both
	// of its triangles yield.
	Absorbed int

	// RefineStats are the counts of the source, see [Source.Stats]. After a
	// canceled extraction, a [*Refiner] has counted the triangles up to the
	// one at which extraction stopped, while a [RawSource] always counts all
	// of its triangles.
	RefineStats
}

// Result is the outcome of an extraction.
type Result struct {
	Isolines []Isoline
	// Canceled reports whether the extraction stopped early because its
	// context was canceled. Isolines then holds exactly what an extraction
	// of the processed input triangles would have produced.
	Canceled bool
	Stats    Stats
	// Mesh is the result of the mesh scan performed by [Run]. It is the zero
	// value for results of [Extractor.Extract].
	Mesh MeshStats
}

// Extractor slices triangles at regular elevation steps and chains the
// resulting segments into isolines.
type Extractor struct {
	// Equidistance is the step between levels. Levels are the integer
	// multiples of it.
	Equidistance float64
	// ClusterTolerance is the largest planar distance at which two segment
	// endpoints are considered the same point. With a tolerance of 0, only
	// identical points are joined.
	ClusterTolerance float64
	// SimplifyTolerance, if positive, removes nearly collinear points from
	// finished isolines. See [Simplify].
	SimplifyTolerance float64
	// Progress, if not nil, is notified after each input triangle.
	Progress Progress
	Logger   logrus.FieldLogger
}

func (ex *Extractor) validate() error {
	if !(ex.Equidistance > 0) || math.IsInf(ex.Equidistance, 0) {
		return fmt.Errorf("%w: equidistance must be positive and finite, got %g", ErrInvalidConfig, ex.Equidistance)
	}
	if !(ex.ClusterTolerance >= 0) || math.IsInf(ex.ClusterTolerance, 0) {
		return fmt.Errorf("%w: cluster tolerance must not be negative, got %g", ErrInvalidConfig, ex.ClusterTolerance)
	}
	if !(ex.SimplifyTolerance >= 0) {
		return fmt.Errorf("%w: simplify tolerance must not be negative, got %g", ErrInvalidConfig, ex.SimplifyTolerance)
	}
	return nil
}

// Extract computes the isolines of all triangles of src.
//
// Segments are stitched in the order src yields triangles, which makes the
// result reproducible. Rings are emitted in the order they were closed,
// followed by open isolines in the order they were started. IDs number the
// isolines in emission order, starting at 0. Use [SortByLevel] to order them
// by elevation instead.
//
// ctx is checked before each input triangle. If it is canceled, Extract stops
// and returns the isolines of the triangles processed so far, with
// [Result.Canceled] set and a nil error.
func (ex *Extractor) Extract(ctx context.Context, src Source) (*Result, error) {
	if err := ex.validate(); err != nil {
		return nil, err
	}
	log := logger(ex.Logger)

	res := &Result{}
	st := newStitcher(ex.ClusterTolerance, &res.Stats)
	n := src.Len()
	cur := -1
	for i, t := range src.Triangles() {
		if i != cur {
			if cur >= 0 && ex.Progress != nil {
				ex.Progress.Progress(cur+1, n)
			}
			if ctx.Err() != nil {
				res.Canceled = true
				break
			}
			cur = i
			res.Stats.SourceTriangles++
		}
		res.Stats.Triangles++
		lo, hi := t.ZRange()
		for l := range Levels(lo, hi, ex.Equidistance) {
			seg, ok := SliceTriangle(t, l)
			if !ok {
				continue
			}
			res.Stats.Segments++
			switch {
			case seg.IsDegenerate():
				res.Stats.Degenerate++
				st.add(seg)
			case onLevelEdge(t, l):
				st.addEdge(seg)
			default:
				st.add(seg)
			}
		}
	}
	if !res.Canceled && cur >= 0 && ex.Progress != nil {
		ex.Progress.Progress(cur+1, n)
	}

	res.Stats.RefineStats = src.Stats()

	pls := st.finish()
	res.Isolines = make([]Isoline, 0, len(pls))
	for id, pl := range pls {
		res.Isolines = append(res.Isolines, Isoline{
			ID:     id,
			Level:  pl.level,
			Points: Simplify(pl.points(), ex.SimplifyTolerance),
			Closed: pl.closed,
		})
	}

	entry := log.WithFields(logrus.Fields{
		"triangles": res.Stats.Triangles,
		"segments":  res.Stats.Segments,
		"isolines":  len(res.Isolines),
	})
	if res.Canceled {
		entry.WithField("processed", res.Stats.SourceTriangles).Debug("extraction canceled")
	} else {
		entry.Debug("extraction done")
	}
	return res, nil
}
