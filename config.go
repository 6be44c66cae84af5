package contour

import (
	"fmt"
	"math"
)

// Config holds the options of a contouring run.
type Config struct {
	// Equidistance is the elevation step between isolines.
	Equidistance float64 `toml:"equidistance" yaml:"equidistance"`
	// LevelOfDetail is the refinement level, from 0 to [MaxLevelOfDetail].
	// 0 disables smoothing.
	LevelOfDetail int `toml:"level_of_detail" yaml:"level_of_detail"`
	// ClusterTolerance is the planar distance at which segment endpoints are
	// joined.
	ClusterTolerance float64 `toml:"cluster_tolerance" yaml:"cluster_tolerance"`
	// Smoothing is the fraction, from 0.1 to 1, of the mesh's maximum slope
	// used as the displacement factor of the Bézier patches.
	Smoothing float64 `toml:"smoothing" yaml:"smoothing"`
	// EdgeNormals selects how patch edge control points are displaced.
	EdgeNormals EdgeMode `toml:"edge_normals" yaml:"edge_normals"`
	// SimplifyTolerance removes nearly collinear isoline points if positive.
	SimplifyTolerance float64 `toml:"simplify_tolerance" yaml:"simplify_tolerance"`
	// VertexTolerance is the coordinate difference under which two vertices
	// are the same mesh vertex.
	VertexTolerance float64 `toml:"vertex_tolerance" yaml:"vertex_tolerance"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Equidistance:     10,
		LevelOfDetail:    0,
		ClusterTolerance: 0.001,
		Smoothing:        1,
		EdgeNormals:      InterpolatedNormals,
		VertexTolerance:  DefaultVertexTolerance,
	}
}

// Validate reports the first option that is out of range, wrapping
// [ErrInvalidConfig].
func (c Config) Validate() error {
	switch {
	case !(c.Equidistance > 0) || math.IsInf(c.Equidistance, 0):
		return fmt.Errorf("%w: equidistance must be positive and finite, got %g", ErrInvalidConfig, c.Equidistance)
	case c.LevelOfDetail < 0 || c.LevelOfDetail > MaxLevelOfDetail:
		return fmt.Errorf("%w: level of detail must be between 0 and %d, got %d", ErrInvalidConfig, MaxLevelOfDetail, c.LevelOfDetail)
	case !(c.ClusterTolerance >= 0) || math.IsInf(c.ClusterTolerance, 0):
		return fmt.Errorf("%w: cluster tolerance must not be negative, got %g", ErrInvalidConfig, c.ClusterTolerance)
	case !(c.Smoothing >= 0.1 && c.Smoothing <= 1):
		return fmt.Errorf("%w: smoothing must be between 0.1 and 1, got %g", ErrInvalidConfig, c.Smoothing)
	case c.EdgeNormals != InterpolatedNormals && c.EdgeNormals != CornerNormals:
		return fmt.Errorf("%w: unknown edge normal mode %d", ErrInvalidConfig, int(c.EdgeNormals))
	case !(c.SimplifyTolerance >= 0):
		return fmt.Errorf("%w: simplify tolerance must not be negative, got %g", ErrInvalidConfig, c.SimplifyTolerance)
	case !(c.VertexTolerance > 0):
		return fmt.Errorf("%w: vertex tolerance must be positive, got %g", ErrInvalidConfig, c.VertexTolerance)
	}
	return nil
}
