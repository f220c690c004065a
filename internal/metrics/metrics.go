package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "journal_relay"

// Decoder line outcomes.
const (
	LineDecoded   = "decoded"
	LineUnhandled = "unhandled"
	LineFailed    = "failed"
	LineSkipped   = "skipped"
)

// Convergence outcomes.
const (
	ConvergenceMerged    = "merged"
	ConvergenceAbandoned = "abandoned"
	ConvergenceExhausted = "exhausted"
	ConvergenceFallback  = "fallback"
)

var (
	registerOnce sync.Once

	linesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decoder",
			Name:      "lines_total",
			Help:      "Total journal lines seen by the decoder, by outcome.",
		},
		[]string{"result"},
	)

	eventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "events_total",
			Help:      "Total events dispatched, by kind and whether they reached responders.",
		},
		[]string{"kind", "forwarded"},
	)

	observerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "observer_failures_total",
			Help:      "Total observer invocations that returned an error or panicked.",
		},
		[]string{"observer", "phase"},
	)

	observerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "observer_duration_seconds",
			Help:      "Observer invocation latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"observer", "phase"},
	)

	supervisorRestarts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "supervisor",
			Name:      "restarts_total",
			Help:      "Total restarts of supervised tasks.",
		},
		[]string{"task"},
	)

	convergenceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "profile",
			Name:      "convergence_total",
			Help:      "Total station refreshes after docking, by outcome.",
		},
		[]string{"outcome"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(linesTotal, eventsTotal, observerFailures, observerDuration, supervisorRestarts, convergenceTotal)
	})
}

func RecordLine(result string) {
	RegisterMetrics()
	linesTotal.WithLabelValues(result).Inc()
}

func RecordDispatch(kind string, forwarded bool) {
	RegisterMetrics()
	eventsTotal.WithLabelValues(kind, strconv.FormatBool(forwarded)).Inc()
}

func RecordObserver(observer, phase string, duration time.Duration, failed bool) {
	RegisterMetrics()
	observerDuration.WithLabelValues(observer, phase).Observe(duration.Seconds())
	if failed {
		observerFailures.WithLabelValues(observer, phase).Inc()
	}
}

func RecordRestart(task string) {
	RegisterMetrics()
	supervisorRestarts.WithLabelValues(task).Inc()
}

func RecordConvergence(outcome string) {
	RegisterMetrics()
	convergenceTotal.WithLabelValues(outcome).Inc()
}
