// Command flightpath draws a route map of the configured points and
// connections as SVG, GeoJSON, or PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/skyroutes/flightpath"
	"github.com/skyroutes/flightpath/geo"
	"github.com/skyroutes/flightpath/internal/config"
	"github.com/skyroutes/flightpath/internal/logging"
	"github.com/skyroutes/flightpath/internal/metrics"
	"github.com/skyroutes/flightpath/render"
	"github.com/skyroutes/flightpath/render/geojson"
	"github.com/skyroutes/flightpath/render/raster"
	"github.com/skyroutes/flightpath/render/svgmap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "flightpath:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("flightpath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to the YAML config (default: flightpath.yaml in . or ./configs)")
	out := fs.String("out", "-", "output file, - for stdout")
	backend := fs.String("backend", "", "override view.backend: svg, geojson or png")
	strategy := fs.String("strategy", "", "override view.strategy: midpoint, perpendicular or parabolic")
	logLevel := fs.String("log-level", "", "override log.level")
	metricsFile := fs.String("metrics-file", "", "override metrics.textfile")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.View.Backend = *backend
	}
	if *strategy != "" {
		s, err := flightpath.ParseStrategy(*strategy)
		if err != nil {
			return err
		}
		cfg.View.Strategy = s
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *metricsFile != "" {
		cfg.Metrics.Textfile = *metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format, stderr)
	render.SetLogger(log)
	defer render.SetLogger(nil)

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return err
	}

	proj := cfg.NewProjection()
	if cfg.View.Backend == config.BackendGeoJSON {
		// GeoJSON coordinates are always longitude and latitude.
		proj = geo.LonLat{}
	}

	start := time.Now()
	sc, err := render.Plan(ctx, render.Input{
		Catalog:     geo.NewCatalog(cfg.Points),
		Connections: cfg.Connections,
		Projection:  proj,
		Strategy:    cfg.View.Strategy,
		Options:     cfg.CurveOptions(),
		Palette:     cfg.Palette(),
		Width:       cfg.View.Width,
		Height:      cfg.View.Height,
		Recorder:    collector,
	})
	if err != nil {
		return err
	}
	collector.ObserveScene(sc, time.Since(start))
	if sc.Stats.Skipped() > 0 {
		log.Warn("some connections were not drawn",
			"unresolved", sc.Stats.Unresolved,
			"projection_miss", sc.Stats.ProjectionMiss)
	}

	if *out == "-" {
		err = write(stdout, sc, cfg)
	} else {
		err = writeFile(*out, sc, cfg)
	}
	if err != nil {
		return err
	}
	log.Info("wrote route map", "backend", cfg.View.Backend, "out", *out, "routes", len(sc.Routes))

	if cfg.Metrics.Textfile != "" {
		if err := collector.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
		log.Debug("wrote metrics", "path", cfg.Metrics.Textfile)
	}
	return nil
}

func writeFile(path string, sc *render.Scene, cfg *config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, sc, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func write(w io.Writer, sc *render.Scene, cfg *config.Config) error {
	switch cfg.View.Backend {
	case config.BackendGeoJSON:
		opts := geojson.DefaultOptions()
		opts.Straight = cfg.View.Straight
		return geojson.Write(w, sc, opts)
	case config.BackendPNG:
		st := raster.DefaultStyle()
		st.Labels = cfg.View.Labels
		return raster.WritePNG(w, sc, st)
	default:
		st := svgmap.DefaultStyle()
		st.Title = cfg.View.Title
		st.Labels = cfg.View.Labels
		st.Legend = cfg.View.Legend
		st.Animate = cfg.View.Animate
		st.Duration = cfg.View.Duration
		if cfg.View.Glyphs {
			st.Arrows = svgmap.GlyphArrows
		}
		return svgmap.Write(w, sc, st)
	}
}
