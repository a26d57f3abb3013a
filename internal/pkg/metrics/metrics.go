// Package metrics exposes the watchdog engine's Prometheus collectors. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Registry *prometheus.Registry

	AdEventsTotal         *prometheus.CounterVec
	AdEventDuration       prometheus.Histogram
	MatchesTotal          prometheus.Counter
	SuppressedTotal       prometheus.Counter
	NotificationsSent     prometheus.Counter
	DispatchFailuresTotal prometheus.Counter
	DeactivationsTotal    prometheus.Counter
	WatchdogsCreated      prometheus.Counter
}

func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		AdEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ad_events_total",
			Help:      "Ad events evaluated, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		AdEventDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ad_event_duration_seconds",
			Help:      "Time spent evaluating and dispatching one ad event.",
			Buckets:   prometheus.DefBuckets,
		}),
		MatchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watchdog_matches_total",
			Help:      "Watchdog/ad matches found before deduplication.",
		}),
		SuppressedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watchdog_matches_suppressed_total",
			Help:      "Matches dropped because the pair was already notified or the ledger was unreadable.",
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watchdog_notifications_sent_total",
			Help:      "Digest messages accepted by the mail transport.",
		}),
		DispatchFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watchdog_dispatch_failures_total",
			Help:      "Digest messages the mail transport rejected.",
		}),
		DeactivationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watchdog_deactivations_total",
			Help:      "Watchdogs deactivated because the owner lost VIP status.",
		}),
		WatchdogsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watchdogs_created_total",
			Help:      "Watchdogs registered.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.AdEventsTotal,
		m.AdEventDuration,
		m.MatchesTotal,
		m.SuppressedTotal,
		m.NotificationsSent,
		m.DispatchFailuresTotal,
		m.DeactivationsTotal,
		m.WatchdogsCreated,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) ObserveAdEvent(kind, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.AdEventsTotal.WithLabelValues(kind, outcome).Inc()
	m.AdEventDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) AddMatches(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.MatchesTotal.Add(float64(n))
}

func (m *Metrics) IncSuppressed() {
	if m == nil {
		return
	}
	m.SuppressedTotal.Inc()
}

func (m *Metrics) IncNotificationsSent() {
	if m == nil {
		return
	}
	m.NotificationsSent.Inc()
}

func (m *Metrics) IncDispatchFailures() {
	if m == nil {
		return
	}
	m.DispatchFailuresTotal.Inc()
}

func (m *Metrics) IncDeactivations() {
	if m == nil {
		return
	}
	m.DeactivationsTotal.Inc()
}

func (m *Metrics) AddDeactivations(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.DeactivationsTotal.Add(float64(n))
}

func (m *Metrics) IncWatchdogsCreated() {
	if m == nil {
		return
	}
	m.WatchdogsCreated.Inc()
}
