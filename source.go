package contour

import "iter"

// Source is a finite, restartable sequence of triangles to be contoured.
// Each triangle is paired with the index of the input triangle it derives
// from.
//
// The implementations are [RawSource], which yields the input as is, and
// [*Refiner].
type Source interface {
	// Len returns the number of input triangles.
	Len() int
	Triangles() iter.Seq2[int, Triangle]
	// Stats returns how the input triangles were treated by the most recent
	// iteration of Triangles.
	Stats() RefineStats

	source()
}

var _ Source = RawSource(nil)

// RawSource yields its triangles unchanged.
type RawSource []Triangle

func (s RawSource) Len() int { return len(s) }

func (s RawSource) Triangles() iter.Seq2[int, Triangle] {
	return func(yield func(int, Triangle) bool) {
		for i, t := range s {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Stats reports every triangle as passed through.
func (s RawSource) Stats() RefineStats { return RefineStats{Passthrough: len(s)} }

func (RawSource) source() {}
func (*Refiner) source()  {}

// NewSource returns the source for tris: a [RawSource] if the level of detail
// is 0, and a [*Refiner] otherwise.
func NewSource(tris []Triangle, opts RefineOptions) Source {
	if opts.LevelOfDetail <= 0 {
		return RawSource(tris)
	}
	return NewRefiner(tris, opts)
}
