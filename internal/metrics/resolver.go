package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockscope-backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockscope",
		Subsystem: "resolver",
		Name:      "resolve_total",
		Help:      "Count of resolve requests by entity kind.",
	}, []string{"kind", "network", "status"})
	resolveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockscope",
		Subsystem: "resolver",
		Name:      "resolve_duration_seconds",
		Help:      "Duration of resolve requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind", "network", "status"})
	resolveRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockscope",
		Subsystem: "resolver",
		Name:      "retries_total",
		Help:      "Count of retried node fetches after transient failures.",
	}, []string{"network"})
)

// Resolver tracks metrics for the entity resolver pipeline.
type Resolver struct {
	network model.Network
}

// NewResolver constructs a metrics collector for the resolver.
func NewResolver(network model.Network) *Resolver {
	if network == "" {
		network = "unknown"
	}
	return &Resolver{network: network}
}

// ObserveResolve records a resolve outcome and duration.
func (m Resolver) ObserveResolve(kind string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	resolveTotal.WithLabelValues(kind, string(m.network), status).Inc()
	resolveDuration.WithLabelValues(kind, string(m.network), status).
		Observe(time.Since(started).Seconds())
}

// ObserveRetry records a retry after a transient node failure.
func (m Resolver) ObserveRetry() {
	resolveRetriesTotal.WithLabelValues(string(m.network)).Inc()
}
