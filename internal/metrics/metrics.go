// Package metrics exposes Prometheus counters for the comparator pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EventsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mqttdiff_events_received_total",
		Help: "Total number of MQTT messages received.",
	})

	DecodeFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mqttdiff_decode_fallbacks_total",
		Help: "Messages that were not valid JSON and fell back to text or raw bytes.",
	})

	diffEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mqttdiff_diff_entries_total",
		Help: "Diff entries produced, by kind.",
	}, []string{"kind"})
)

// ObserveDiff records the entry counts of one comparison.
func ObserveDiff(added, removed, changed int) {
	diffEntries.WithLabelValues("added").Add(float64(added))
	diffEntries.WithLabelValues("removed").Add(float64(removed))
	diffEntries.WithLabelValues("changed").Add(float64(changed))
}

// Serve exposes /metrics on addr. It blocks until the listener fails.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
