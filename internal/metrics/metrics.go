// Package metrics counts the routes a run draws and skips, in Prometheus
// form.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/skyroutes/flightpath"
	"github.com/skyroutes/flightpath/render"
)

// Collector bundles the Prometheus metrics of a run. It implements
// [render.Recorder].
type Collector struct {
	gatherer prometheus.Gatherer

	RoutesDrawn   *prometheus.CounterVec
	RoutesSkipped *prometheus.CounterVec
	PlanDuration  prometheus.Histogram
	SceneCities   prometheus.Gauge
}

var _ render.Recorder = (*Collector)(nil)

// NewCollector registers the metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	drawn, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flightpath_routes_drawn_total",
		Help: "Total number of connections drawn, labeled by curve strategy.",
	}, []string{"strategy"}), "flightpath_routes_drawn_total")
	if err != nil {
		return nil, err
	}

	skipped, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flightpath_routes_skipped_total",
		Help: "Total number of connections left out, labeled by curve strategy and reason.",
	}, []string{"strategy", "reason"}), "flightpath_routes_skipped_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "flightpath_plan_duration_seconds",
		Help:    "Time taken to plan a scene, in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}), "flightpath_plan_duration_seconds")
	if err != nil {
		return nil, err
	}

	cities, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "flightpath_scene_cities",
		Help: "Number of cities placed on the last planned scene.",
	}), "flightpath_scene_cities")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		RoutesDrawn:   drawn,
		RoutesSkipped: skipped,
		PlanDuration:  duration,
		SceneCities:   cities,
	}, nil
}

// RouteDrawn implements [render.Recorder].
func (c *Collector) RouteDrawn(s flightpath.Strategy) {
	if c == nil || c.RoutesDrawn == nil {
		return
	}
	c.RoutesDrawn.WithLabelValues(s.String()).Inc()
}

// RouteSkipped implements [render.Recorder].
func (c *Collector) RouteSkipped(s flightpath.Strategy, reason string) {
	if c == nil || c.RoutesSkipped == nil {
		return
	}
	c.RoutesSkipped.WithLabelValues(s.String(), reason).Inc()
}

// ObserveScene records how long sc took to plan and how many cities it has.
func (c *Collector) ObserveScene(sc *render.Scene, took time.Duration) {
	if c == nil || sc == nil {
		return
	}
	if c.PlanDuration != nil {
		c.PlanDuration.Observe(took.Seconds())
	}
	if c.SceneCities != nil {
		c.SceneCities.Set(float64(len(sc.Cities)))
	}
}

// WriteTextfile writes every metric of the collector's registry to path in
// the text format read by node_exporter's textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
