package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockscope-backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	watcherTipUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockscope",
		Subsystem: "watcher",
		Name:      "tip_updates_total",
		Help:      "Count of tip updates by classification.",
	}, []string{"network", "result"})
	watcherReconnectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockscope",
		Subsystem: "watcher",
		Name:      "feed_reconnects_total",
		Help:      "Count of notification feed reconnect attempts.",
	}, []string{"network"})
	watcherTipHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockscope",
		Subsystem: "watcher",
		Name:      "tip_height",
		Help:      "Height of the last observed chain tip.",
	}, []string{"network"})
	watcherPollDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockscope",
		Subsystem: "watcher",
		Name:      "poll_duration_seconds",
		Help:      "Duration of tip poll iterations.",
	}, []string{"network", "status"})
)

// Watcher tracks metrics for the chain-tip watcher.
type Watcher struct {
	network model.Network
}

// NewWatcher constructs a metrics collector for the watcher.
func NewWatcher(network model.Network) *Watcher {
	if network == "" {
		network = "unknown"
	}
	return &Watcher{network: network}
}

// ObserveTipUpdate records a tip update; linked reports whether the new
// block extended the previously known tip.
func (m Watcher) ObserveTipUpdate(linked bool, height uint64) {
	result := "append"
	if !linked {
		result = "reorg"
	}
	watcherTipUpdatesTotal.WithLabelValues(string(m.network), result).Inc()
	watcherTipHeight.WithLabelValues(string(m.network)).Set(float64(height))
}

// ObserveReconnect records a feed reconnect attempt.
func (m Watcher) ObserveReconnect() {
	watcherReconnectsTotal.WithLabelValues(string(m.network)).Inc()
}

// ObservePoll records the duration and outcome of one tip poll iteration.
func (m Watcher) ObservePoll(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	watcherPollDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}
