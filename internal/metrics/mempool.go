package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/blockscope-backend/internal/model"
	"github.com/goodnatureofminers/blockscope-backend/internal/node"
)

var (
	mempoolPollDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockscope",
		Subsystem: "mempool",
		Name:      "poll_duration_seconds",
		Help:      "Duration of mempool info poll iterations.",
	}, []string{"network", "status"})
	mempoolTxCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockscope",
		Subsystem: "mempool",
		Name:      "tx_count",
		Help:      "Number of transactions in the node mempool.",
	}, []string{"network"})
	mempoolVsizeBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockscope",
		Subsystem: "mempool",
		Name:      "vsize_bytes",
		Help:      "Virtual size sum of mempool transactions.",
	}, []string{"network"})
	mempoolUsageBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockscope",
		Subsystem: "mempool",
		Name:      "usage_bytes",
		Help:      "Memory used by the node mempool.",
	}, []string{"network"})
	mempoolTotalFeeSats = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockscope",
		Subsystem: "mempool",
		Name:      "total_fee_sats",
		Help:      "Total fees of mempool transactions in satoshi.",
	}, []string{"network"})
	mempoolMinFeeRate = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockscope",
		Subsystem: "mempool",
		Name:      "min_fee_rate_btc_kvb",
		Help:      "Minimum fee rate for mempool acceptance, BTC/kvB.",
	}, []string{"network"})
)

// Mempool tracks metrics for the mempool poller.
type Mempool struct {
	network model.Network
}

// NewMempool constructs a metrics collector for the mempool poller.
func NewMempool(network model.Network) *Mempool {
	if network == "" {
		network = "unknown"
	}
	return &Mempool{network: network}
}

// ObservePoll records the duration and outcome of one poll iteration.
func (m Mempool) ObservePoll(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	mempoolPollDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}

// ObserveInfo exports the latest mempool snapshot.
func (m Mempool) ObserveInfo(info node.MempoolInfo) {
	network := string(m.network)
	mempoolTxCount.WithLabelValues(network).Set(float64(info.TxCount))
	mempoolVsizeBytes.WithLabelValues(network).Set(float64(info.Bytes))
	mempoolUsageBytes.WithLabelValues(network).Set(float64(info.Usage))
	mempoolTotalFeeSats.WithLabelValues(network).Set(float64(info.TotalFee))
	mempoolMinFeeRate.WithLabelValues(network).Set(info.MinFeeRate)
}
