// Package plot renders isolines for previewing.
package plot

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"honnef.co/go/contour"
)

// XYs implements the gonum.org/v1/plot/plotter.XYer interface for the planar
// projection of points.
type XYs []r3.Vec

// Len returns the number of points.
func (xys XYs) Len() int {
	return len(xys)
}

// XY returns the x and y values at index i, where i < Len().
func (xys XYs) XY(i int) (float64, float64) {
	return xys[i].X, xys[i].Y
}

// Options configures [New].
type Options struct {
	Title string
	// LineWidth defaults to 1pt.
	LineWidth vg.Length
}

// New plots isolines, using one color per level. Each level gets a legend
// entry.
func New(ls []contour.Isoline, opts Options) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	if opts.LineWidth == 0 {
		opts.LineWidth = vg.Points(1)
	}

	var levels []float64
	for _, l := range ls {
		levels = append(levels, l.Level)
	}
	slices.Sort(levels)
	levels = slices.Compact(levels)

	seen := make(map[float64]bool)
	for _, l := range ls {
		line, err := plotter.NewLine(XYs(l.Points))
		if err != nil {
			return nil, fmt.Errorf("isoline %d: %w", l.ID, err)
		}
		i, _ := slices.BinarySearch(levels, l.Level)
		line.Color = plotutil.Color(i)
		line.Width = opts.LineWidth
		p.Add(line)
		if !seen[l.Level] {
			seen[l.Level] = true
			p.Legend.Add(fmt.Sprintf("%g", l.Level), line)
		}
	}
	return p, nil
}

// Save renders isolines to a file. The format is derived from the file
// extension, as documented for [gplot.Plot.Save].
func Save(path string, ls []contour.Isoline, width, height vg.Length, opts Options) error {
	p, err := New(ls, opts)
	if err != nil {
		return err
	}
	return p.Save(width, height, path)
}
