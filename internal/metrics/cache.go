package metrics

import (
	"github.com/goodnatureofminers/blockscope-backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockscope",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Count of cache hits per tier.",
	}, []string{"network", "tier"})
	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockscope",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Count of cache misses that fell through to compute.",
	}, []string{"network"})
	cacheEvictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockscope",
		Subsystem: "cache",
		Name:      "evictions_total",
		Help:      "Count of entries evicted from the in-memory tier.",
	}, []string{"network"})
	cacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockscope",
		Subsystem: "cache",
		Name:      "invalidations_total",
		Help:      "Count of entries removed by tip-change invalidation.",
	}, []string{"network", "scope"})
	cacheStoreFaultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockscope",
		Subsystem: "cache",
		Name:      "store_faults_total",
		Help:      "Count of persistent tier I/O faults absorbed as misses.",
	}, []string{"network", "operation"})
)

// Cache tracks metrics for the two-tier cache manager.
type Cache struct {
	network model.Network
}

// NewCache constructs a metrics collector for the cache manager.
func NewCache(network model.Network) *Cache {
	if network == "" {
		network = "unknown"
	}
	return &Cache{network: network}
}

// ObserveHit records a hit on the named tier.
func (m Cache) ObserveHit(tier string) {
	cacheHitsTotal.WithLabelValues(string(m.network), tier).Inc()
}

// ObserveMiss records a full miss that reached the compute function.
func (m Cache) ObserveMiss() {
	cacheMissesTotal.WithLabelValues(string(m.network)).Inc()
}

// ObserveEvictions records count entries evicted from the in-memory tier.
func (m Cache) ObserveEvictions(count int) {
	cacheEvictionsTotal.WithLabelValues(string(m.network)).Add(float64(count))
}

// ObserveInvalidation records count entries removed for the given scope.
func (m Cache) ObserveInvalidation(scope string, count int) {
	cacheInvalidationsTotal.WithLabelValues(string(m.network), scope).Add(float64(count))
}

// ObserveStoreFault records an absorbed persistent-tier fault.
func (m Cache) ObserveStoreFault(operation string) {
	cacheStoreFaultsTotal.WithLabelValues(string(m.network), operation).Inc()
}
