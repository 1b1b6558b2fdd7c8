// Package mempool keeps a periodically refreshed snapshot of the node's
// mempool totals. The node exposes no push feed for mempool state, so a
// poller holds the latest answer for anything that renders or exports it.
package mempool

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockscope-backend/internal/node"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Source is the slice of the node client the poller needs.
type Source interface {
	MempoolInfo(ctx context.Context) (node.MempoolInfo, error)
}

// Metrics observes poller activity and exports the latest snapshot.
type Metrics interface {
	ObservePoll(err error, started time.Time)
	ObserveInfo(info node.MempoolInfo)
}
