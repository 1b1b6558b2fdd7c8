// Package metrics defines prometheus collectors for explorer components.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockscope-backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockscope",
		Subsystem: "node_client",
		Name:      "operations_total",
		Help:      "Count of node REST operations.",
	}, []string{"operation", "network", "status"})
	nodeRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockscope",
		Subsystem: "node_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node REST operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// NodeClient tracks metrics for REST calls to the bitcoin node.
type NodeClient struct {
	network model.Network
}

// NewNodeClient constructs a metrics collector for node REST calls.
func NewNodeClient(network model.Network) *NodeClient {
	if network == "" {
		network = "unknown"
	}
	return &NodeClient{network: network}
}

// Observe records a single REST call outcome and duration.
func (m NodeClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	nodeRequestsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	nodeRequestDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}
