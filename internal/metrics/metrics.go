package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pomodoro/internal/core/pomodoro"
)

var states = []pomodoro.State{
	pomodoro.StateInitialized,
	pomodoro.StateConcentrating,
	pomodoro.StateBreaking,
	pomodoro.StateLongerBreaking,
	pomodoro.StateFinished,
	pomodoro.StateStopped,
}

// MetricsService exposes Prometheus metrics for a pomodoro session
type MetricsService struct {
	registry *prometheus.Registry

	// Counters
	transitionsTotal *prometheus.CounterVec
	breaksTotal      *prometheus.CounterVec

	// Gauges
	state          *prometheus.GaugeVec
	breakCount     prometheus.Gauge
	elapsedSeconds prometheus.Gauge
	splitSeconds   prometheus.Gauge
}

// NewMetricsService creates and registers the pomodoro collectors on a private registry.
func NewMetricsService() *MetricsService {
	m := &MetricsService{
		registry: prometheus.NewRegistry(),

		transitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pomodoro_transitions_total",
				Help: "Total number of state transitions",
			},
			[]string{"from", "to"},
		),

		breaksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pomodoro_breaks_total",
				Help: "Total number of breaks started by kind",
			},
			[]string{"kind"}, // short, longer
		),

		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pomodoro_state",
				Help: "Current state, 1 for the active state and 0 otherwise",
			},
			[]string{"state"},
		),

		breakCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pomodoro_break_counter",
			Help: "Short breaks taken since the last longer break",
		}),

		elapsedSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pomodoro_elapsed_seconds",
			Help: "Total elapsed session time",
		}),

		splitSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pomodoro_split_elapsed_seconds",
			Help: "Elapsed time in the current break",
		}),
	}

	m.registry.MustRegister(
		m.transitionsTotal,
		m.breaksTotal,
		m.state,
		m.breakCount,
		m.elapsedSeconds,
		m.splitSeconds,
	)
	return m
}

// Observe records the machine's current snapshot.
func (m *MetricsService) Observe(snapshot pomodoro.Snapshot) {
	for _, state := range states {
		value := 0.0
		if state == snapshot.State {
			value = 1
		}
		m.state.WithLabelValues(string(state)).Set(value)
	}
	m.breakCount.Set(float64(snapshot.BreakCount))
	m.elapsedSeconds.Set(snapshot.Elapsed.Seconds())
	m.splitSeconds.Set(snapshot.SplitElapsed.Seconds())
}

// RecordTransition counts a state change.
func (m *MetricsService) RecordTransition(transition pomodoro.Transition) {
	m.transitionsTotal.WithLabelValues(string(transition.From), string(transition.To)).Inc()
	switch transition.To {
	case pomodoro.StateBreaking:
		m.breaksTotal.WithLabelValues("short").Inc()
	case pomodoro.StateLongerBreaking:
		m.breaksTotal.WithLabelValues("longer").Inc()
	}
}

// Registry returns the registry holding the pomodoro collectors.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the HTTP handler for the metrics endpoint
func (m *MetricsService) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
