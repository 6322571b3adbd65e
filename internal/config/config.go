// Package config loads the flightpath configuration from a YAML file and
// FLIGHTPATH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/skyroutes/flightpath"
	"github.com/skyroutes/flightpath/geo"
	"github.com/spf13/viper"
)

// ErrNoPoints is reported when the configuration names no points at all.
var ErrNoPoints = errors.New("no points configured")

// Backends understood by the CLI.
const (
	BackendSVG     = "svg"
	BackendGeoJSON = "geojson"
	BackendPNG     = "png"
)

// Projection kinds.
const (
	ProjectionMercator = "mercator"
	ProjectionLonLat   = "lonlat"
)

// Config holds all application configuration.
type Config struct {
	Log         LogConfig        `mapstructure:"log"`
	View        ViewConfig       `mapstructure:"view"`
	Projection  ProjectionConfig `mapstructure:"projection"`
	Metrics     MetricsConfig    `mapstructure:"metrics"`
	Points      []geo.GeoPoint   `mapstructure:"points"`
	Connections []geo.Connection `mapstructure:"connections"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ViewConfig struct {
	Backend  string              `mapstructure:"backend"`
	Title    string              `mapstructure:"title"`
	Width    float64             `mapstructure:"width"`
	Height   float64             `mapstructure:"height"`
	Strategy flightpath.Strategy `mapstructure:"strategy"`
	// The curve options are left unset to take their defaults. HeightOffset
	// defaults to an eighth of Height.
	HeightOffset    *float64 `mapstructure:"height_offset"`
	Curvature       *float64 `mapstructure:"curvature"`
	Steps           *int     `mapstructure:"steps"`
	HeightFactor    *float64 `mapstructure:"height_factor"`
	ArrowPercentage *float64 `mapstructure:"arrow_percentage"`

	Palette  string        `mapstructure:"palette"`
	Straight bool          `mapstructure:"straight"`
	Glyphs   bool          `mapstructure:"glyphs"`
	Animate  bool          `mapstructure:"animate"`
	Duration time.Duration `mapstructure:"duration"`
	Labels   bool          `mapstructure:"labels"`
	Legend   bool          `mapstructure:"legend"`
}

type ProjectionConfig struct {
	Kind string `mapstructure:"kind"`
	// Scale of zero means the atlas scale, a sixth of the view width.
	Scale float64 `mapstructure:"scale"`
	// Center is (lon, lat) in degrees.
	Center []float64 `mapstructure:"center"`
	Rotate float64   `mapstructure:"rotate"`
	// Clip drops points that land outside the view.
	Clip bool `mapstructure:"clip"`
}

type MetricsConfig struct {
	// Textfile, when set, is where the run's counters are written in the
	// Prometheus text format.
	Textfile string `mapstructure:"textfile"`
}

// curveKeys have no defaults, so they are bound to the environment
// explicitly.
var curveKeys = []string{
	"view.height_offset",
	"view.curvature",
	"view.steps",
	"view.height_factor",
	"view.arrow_percentage",
}

// Load reads configuration from path and environment variables. An empty
// path looks for flightpath.yaml in the working directory and ./configs and
// carries on without a file if there is none.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("view.backend", BackendSVG)
	v.SetDefault("view.title", "Flight routes")
	v.SetDefault("view.width", 800)
	v.SetDefault("view.height", 600)
	v.SetDefault("view.strategy", flightpath.MidpointOffset.String())
	v.SetDefault("view.palette", "vector")
	v.SetDefault("view.straight", false)
	v.SetDefault("view.glyphs", false)
	v.SetDefault("view.animate", false)
	v.SetDefault("view.duration", "3s")
	v.SetDefault("view.labels", false)
	v.SetDefault("view.legend", false)
	v.SetDefault("projection.kind", ProjectionMercator)
	v.SetDefault("projection.scale", 0)
	v.SetDefault("projection.rotate", 0)
	v.SetDefault("projection.clip", false)
	v.SetDefault("metrics.textfile", "")

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("flightpath")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Environment variables: FLIGHTPATH_VIEW_STRATEGY → view.strategy
	v.SetEnvPrefix("FLIGHTPATH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range curveKeys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration can be rendered. Every problem is
// reported, not just the first.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	switch c.View.Backend {
	case BackendSVG, BackendGeoJSON, BackendPNG:
	default:
		errs = append(errs, fmt.Errorf("view.backend must be svg, geojson or png, got %q", c.View.Backend))
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		errs = append(errs, fmt.Errorf("view size must be positive, got %gx%g", c.View.Width, c.View.Height))
	}
	if !c.View.Strategy.Valid() {
		errs = append(errs, fmt.Errorf("view.strategy: %w: %v", flightpath.ErrUnknownStrategy, c.View.Strategy))
	}
	if c.View.Steps != nil && *c.View.Steps < 1 {
		errs = append(errs, fmt.Errorf("view.steps must be at least 1, got %d", *c.View.Steps))
	}
	if _, ok := geo.PaletteByName(c.View.Palette); !ok {
		errs = append(errs, fmt.Errorf("view.palette must be vector or bright, got %q", c.View.Palette))
	}
	if c.View.Duration < 0 {
		errs = append(errs, fmt.Errorf("view.duration must not be negative, got %v", c.View.Duration))
	}

	switch c.Projection.Kind {
	case ProjectionMercator, ProjectionLonLat:
	default:
		errs = append(errs, fmt.Errorf("projection.kind must be mercator or lonlat, got %q", c.Projection.Kind))
	}
	if c.Projection.Scale < 0 {
		errs = append(errs, fmt.Errorf("projection.scale must not be negative, got %g", c.Projection.Scale))
	}
	if n := len(c.Projection.Center); n != 0 && n != 2 {
		errs = append(errs, fmt.Errorf("projection.center must be [lon, lat], got %d values", n))
	}

	if len(c.Points) == 0 {
		errs = append(errs, ErrNoPoints)
	}
	for i, p := range c.Points {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("points[%d].id is required", i))
		}
		if !p.Valid() {
			errs = append(errs, fmt.Errorf("points[%d] %s: coordinates out of range", i, p))
		}
	}
	for i, conn := range c.Connections {
		if conn.From == "" || conn.To == "" {
			errs = append(errs, fmt.Errorf("connections[%d]: from and to are required", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// CurveOptions returns the curve options for the view, starting from
// [flightpath.DefaultOptions] and applying whatever was set.
func (c *Config) CurveOptions() flightpath.Options {
	opts := flightpath.DefaultOptions(c.View.Height)
	if c.View.HeightOffset != nil {
		opts.HeightOffset = *c.View.HeightOffset
	}
	if c.View.Curvature != nil {
		opts.Curvature = *c.View.Curvature
	}
	if c.View.Steps != nil {
		opts.Steps = *c.View.Steps
	}
	if c.View.HeightFactor != nil {
		opts.HeightFactor = *c.View.HeightFactor
	}
	if c.View.ArrowPercentage != nil {
		opts.ArrowPercentage = *c.View.ArrowPercentage
	}
	return opts
}

// Palette returns the configured palette, falling back to the vector one.
func (c *Config) Palette() geo.Palette {
	if p, ok := geo.PaletteByName(c.View.Palette); ok {
		return p
	}
	return geo.VectorPalette
}

// NewProjection builds the configured projection for the view.
func (c *Config) NewProjection() geo.Projection {
	if c.Projection.Kind == ProjectionLonLat {
		return geo.LonLat{}
	}
	m := geo.NewAtlasMercator(c.View.Width, c.View.Height)
	if c.Projection.Scale > 0 {
		m.Scale = c.Projection.Scale
	}
	if len(c.Projection.Center) == 2 {
		m.Center = flightpath.Pt(c.Projection.Center[0], c.Projection.Center[1])
	}
	m.Rotate = c.Projection.Rotate
	if c.Projection.Clip {
		r := flightpath.NewRectFromSize(c.View.Width, c.View.Height)
		m.Clip = &r
	}
	return m
}
