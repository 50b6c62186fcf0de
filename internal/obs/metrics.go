// Package obs exposes Prometheus metrics for module discovery and
// negotiation activity.
package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ModuleLoads counts successful module loads by kind.
	ModuleLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidcaps_module_loads_total",
		Help: "Codec modules loaded and registered, by kind.",
	}, []string{"kind"})

	// ModuleLoadFailures counts modules that failed to load or raised
	// during introspection, by kind.
	ModuleLoadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidcaps_module_load_failures_total",
		Help: "Codec module load or introspection failures, by kind.",
	}, []string{"kind"})

	// NegotiationQueries counts capability negotiation queries by mode
	// (colorspace or rgb).
	NegotiationQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidcaps_negotiation_queries_total",
		Help: "Capability negotiation queries served, by mode.",
	}, []string{"mode"})

	// TableEntries reports how many (outer format, inner format) pairs
	// each capability table currently holds.
	TableEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vidcaps_registry_table_entries",
		Help: "Format pairs held per capability table.",
	}, []string{"table"})
)

// Handler returns the HTTP handler serving the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
