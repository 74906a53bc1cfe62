// Package metrics exports search runs to Prometheus. A Collector is an
// algorithm.Observer: attach it to any number of runs with
// algorithm.WithObserver and it counts their events, expansions, solutions
// and outcomes, and measures run durations.
package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/lvsearch/algorithm"
)

const (
	namespace = "lvsearch"
	subsystem = "search"
)

// knownAlgorithms bounds the cardinality of the algorithm label; any other
// name is recorded as "other".
var knownAlgorithms = map[string]bool{
	"bestfirst":    true,
	"breadthfirst": true,
	"depthfirst":   true,
}

func sanitizeAlgorithm(name string) string {
	if knownAlgorithms[name] {
		return name
	}

	return "other"
}

// Collector holds the search metrics. It is safe for concurrent use by runs
// driven from different goroutines.
type Collector struct {
	events     *prometheus.CounterVec
	runs       *prometheus.CounterVec
	expansions *prometheus.CounterVec
	solutions  *prometheus.CounterVec
	active     *prometheus.GaugeVec
	duration   *prometheus.HistogramVec

	mu      sync.Mutex
	started map[uuid.UUID]time.Time
}

// New registers the search metrics with reg; nil means
// prometheus.DefaultRegisterer. It panics if the metrics are already
// registered with reg.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		// Labels: algorithm, kind (event kind in snake_case)
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "events_total",
			Help:      "Events delivered by search runs, by algorithm and kind",
		}, []string{"algorithm", "kind"}),
		// Labels: algorithm, outcome ("exhausted", "budget", "canceled",
		// "timeout", "interrupted" or "failed")
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Completed search runs by algorithm and outcome",
		}, []string{"algorithm", "outcome"}),
		expansions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "expansions_total",
			Help:      "Node expansions by algorithm",
		}, []string{"algorithm"}),
		solutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "solutions_total",
			Help:      "Solution candidates found by algorithm",
		}, []string{"algorithm"}),
		active: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_runs",
			Help:      "Search runs initialized and not yet finished or canceled",
		}, []string{"algorithm"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "run_duration_seconds",
			Help:      "Search run duration from initialization to finish or cancel",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"algorithm"}),
		started: make(map[uuid.UUID]time.Time),
	}
}

// Durations returns the run duration histogram.
func (c *Collector) Durations() *prometheus.HistogramVec { return c.duration }

// OnEvent implements algorithm.Observer.
func (c *Collector) OnEvent(ev algorithm.Event) {
	meta := ev.Meta()
	alg := sanitizeAlgorithm(meta.Algorithm)
	c.events.WithLabelValues(alg, ev.Kind().String()).Inc()

	switch e := ev.(type) {
	case algorithm.AlgorithmInitialized:
		c.mu.Lock()
		c.started[meta.RunID] = meta.Time
		c.mu.Unlock()
		c.active.WithLabelValues(alg).Inc()
	case algorithm.AlgorithmFinished:
		c.expansions.WithLabelValues(alg).Add(float64(e.Expansions))
		outcome := "exhausted"
		if !e.Exhausted {
			outcome = "budget"
		}
		c.finish(alg, meta, outcome)
	case algorithm.AlgorithmCanceled:
		c.finish(alg, meta, outcomeOf(e.Cause))
	}
	// solution events are generic, so they are matched by kind
	if ev.Kind() == algorithm.KindSolutionCandidateFound {
		c.solutions.WithLabelValues(alg).Inc()
	}
}

// finish records the end of a run that was seen starting.
func (c *Collector) finish(alg string, meta algorithm.EventMeta, outcome string) {
	c.runs.WithLabelValues(alg, outcome).Inc()

	c.mu.Lock()
	start, ok := c.started[meta.RunID]
	delete(c.started, meta.RunID)
	c.mu.Unlock()
	if !ok {
		// canceled before initialization
		return
	}
	c.active.WithLabelValues(alg).Dec()
	c.duration.WithLabelValues(alg).Observe(meta.Time.Sub(start).Seconds())
}

func outcomeOf(cause error) string {
	switch {
	case errors.Is(cause, algorithm.ErrCanceled):
		return "canceled"
	case errors.Is(cause, algorithm.ErrTimeout):
		return "timeout"
	case errors.Is(cause, algorithm.ErrInterrupted):
		return "interrupted"
	default:
		return "failed"
	}
}

var _ algorithm.Observer = (*Collector)(nil)
