package contour

import (
	"testing"
)

func TestRectFromPoints(t *testing.T) {
	r := NewRectFromPoints(Pt3(10, 0, 1), Pt3(0, 5, 2))
	diff(t, Rect{0, 0, 10, 5}, r)
	if w, h := r.Width(), r.Height(); w != 10 || h != 5 {
		t.Errorf("got size %v×%v, want 10×5", w, h)
	}
}

func TestEmptyRect(t *testing.T) {
	e := EmptyRect()
	if !e.IsEmpty() {
		t.Error("empty rect isn't empty")
	}
	r := Rect{0, 0, 10, 5}
	diff(t, r, e.Union(r))
	diff(t, Rect{3, 4, 3, 4}, e.UnionPoint(Pt3(3, 4, 5)))
	if e.Overlaps(r) {
		t.Error("empty rect overlaps")
	}
}

func TestRectQueries(t *testing.T) {
	r := Rect{0, 0, 10, 5}
	if !r.Contains(Pt3(10, 5, 99)) {
		t.Error("corner isn't contained")
	}
	if r.Contains(Pt3(10.5, 5, 0)) {
		t.Error("outside point is contained")
	}
	if !r.Overlaps(Rect{10, 5, 20, 20}) {
		t.Error("touching rects don't overlap")
	}
	if r.Overlaps(Rect{10.5, 0, 20, 20}) {
		t.Error("disjoint rects overlap")
	}
	diff(t, Rect{-1, -1, 11, 6}, r.Inflate(1))
}
