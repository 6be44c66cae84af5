// Command tincontour computes the isolines of a triangulated irregular network.
//
// The TIN is read from a GeoJSON file or a shapefile of triangles with
// elevations, and the isolines are written to a file of the same kinds:
//
//	tincontour -i tin.shp -o isolines.geojson --equidistance 5 --lod 4
//
// Options may also be read from a TOML or YAML file given with --config.
// Command-line flags take precedence over the file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"honnef.co/go/contour"
	"honnef.co/go/contour/internal/config"
	"honnef.co/go/contour/plot"
	"honnef.co/go/contour/tinio"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		cfgPath string
		f       = config.Default()
		edge    = f.Contour.EdgeNormals.String()
	)
	cmd := &cobra.Command{
		Use:           "tincontour",
		Short:         "Compute isolines of a TIN",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	fl := cmd.Flags()
	fl.StringVar(&cfgPath, "config", "", "TOML or YAML configuration file")
	fl.StringVarP(&f.Input, "input", "i", "", "input TIN (.geojson, .json or .shp)")
	fl.StringVarP(&f.Output, "output", "o", "", "output isolines (.geojson, .json or .shp)")
	fl.StringVar(&f.Plot, "plot", "", "also render the isolines to this image (.png, .svg, .pdf)")
	fl.StringVar(&f.LogLevel, "log-level", f.LogLevel, "log level (debug, info, warn, error)")
	fl.Float64Var(&f.Contour.Equidistance, "equidistance", f.Contour.Equidistance, "elevation step between isolines")
	fl.IntVar(&f.Contour.LevelOfDetail, "lod", f.Contour.LevelOfDetail, fmt.Sprintf("level of detail, 0 to %d", contour.MaxLevelOfDetail))
	fl.Float64Var(&f.Contour.ClusterTolerance, "cluster-tolerance", f.Contour.ClusterTolerance, "distance at which segment ends are joined")
	fl.Float64Var(&f.Contour.Smoothing, "smoothing", f.Contour.Smoothing, "smoothing factor, 0.1 to 1")
	fl.StringVar(&edge, "edge-normals", edge, "edge control point normals (interpolated, corner)")
	fl.Float64Var(&f.Contour.SimplifyTolerance, "simplify", f.Contour.SimplifyTolerance, "remove isoline points within this distance of their neighbours' chord")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := f.Contour.EdgeNormals.UnmarshalText([]byte(edge)); err != nil {
			return err
		}
		if cfgPath != "" {
			file, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			f = merge(file, f, cmd)
		}
		log := logrus.New()
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		lvl, err := logrus.ParseLevel(f.LogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(lvl)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if err := run(ctx, f, log); err != nil {
			log.WithError(err).Error("contouring failed")
			return err
		}
		return nil
	}
	return cmd
}

// merge returns the file configuration, overridden by the flags that were
// set on the command line.
func merge(file, flags config.File, cmd *cobra.Command) config.File {
	fl := cmd.Flags()
	set := func(name string, dst, src any) {
		if !fl.Changed(name) {
			return
		}
		switch dst := dst.(type) {
		case *string:
			*dst = *src.(*string)
		case *float64:
			*dst = *src.(*float64)
		case *int:
			*dst = *src.(*int)
		case *contour.EdgeMode:
			*dst = *src.(*contour.EdgeMode)
		}
	}
	set("input", &file.Input, &flags.Input)
	set("output", &file.Output, &flags.Output)
	set("plot", &file.Plot, &flags.Plot)
	set("log-level", &file.LogLevel, &flags.LogLevel)
	set("equidistance", &file.Contour.Equidistance, &flags.Contour.Equidistance)
	set("lod", &file.Contour.LevelOfDetail, &flags.Contour.LevelOfDetail)
	set("cluster-tolerance", &file.Contour.ClusterTolerance, &flags.Contour.ClusterTolerance)
	set("smoothing", &file.Contour.Smoothing, &flags.Contour.Smoothing)
	set("edge-normals", &file.Contour.EdgeNormals, &flags.Contour.EdgeNormals)
	set("simplify", &file.Contour.SimplifyTolerance, &flags.Contour.SimplifyTolerance)
	return file
}

func run(ctx context.Context, f config.File, log *logrus.Logger) error {
	if f.Input == "" || f.Output == "" {
		return errors.New("an input and an output file are required")
	}
	mesh, err := tinio.ReadFile(f.Input, f.Fields)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"path":        f.Input,
		"triangles":   len(mesh.Triangles),
		"break_lines": len(mesh.BreakLines),
	}).Info("read TIN")

	last := -1
	res, err := contour.Run(ctx, mesh.Triangles, mesh.BreakLines, f.Contour, contour.RunOptions{
		Logger: log,
		Progress: contour.ProgressFunc(func(cur, total int) {
			if total == 0 {
				return
			}
			pct := cur * 100 / total
			if pct/10 > last/10 {
				last = pct
				log.Infof("%d%%", pct)
			}
		}),
	})
	if err != nil {
		return err
	}
	entry := log.WithFields(logrus.Fields{
		"isolines":     len(res.Isolines),
		"length":       tinio.TotalLength(res.Isolines),
		"refined":      res.Stats.Refined,
		"passthrough":  res.Stats.Passthrough,
		"unsmoothable": res.Stats.NotSmoothable,
	})
	if res.Canceled {
		entry.Warnf("interrupted after %d of %d triangles, writing partial result", res.Stats.SourceTriangles, res.Mesh.Triangles)
	} else {
		entry.Info("computed isolines")
	}

	if err := tinio.WriteFile(f.Output, res.Isolines); err != nil {
		return err
	}
	log.WithField("path", f.Output).Info("wrote isolines")
	if f.Plot != "" {
		if err := plot.Save(f.Plot, res.Isolines, 8*vg.Inch, 8*vg.Inch, plot.Options{Title: f.Input}); err != nil {
			return err
		}
		log.WithField("path", f.Plot).Info("wrote plot")
	}
	return nil
}
