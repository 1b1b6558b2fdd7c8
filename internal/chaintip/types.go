// Package chaintip tracks the node's best block and turns tip changes into
// cache invalidation signals.
package chaintip

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/blockscope-backend/internal/node"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// NodeSource is the slice of the node client the watcher needs.
type NodeSource interface {
	ChainInfo(ctx context.Context) (node.ChainInfo, error)
	FetchHeader(ctx context.Context, hash chainhash.Hash) ([]byte, error)
}

// Invalidator receives tip-change signals. A linked tip only stales the
// "latest" aliases; a reorg additionally drops height-keyed entries at and
// above the fork.
type Invalidator interface {
	InvalidateLatest()
	InvalidateLookback(fromHeight uint64)
}

// Prewarmer is asked to fetch a freshly connected block ahead of demand.
type Prewarmer interface {
	WarmBlock(ctx context.Context, hash chainhash.Hash)
}

// Metrics observes watcher activity.
type Metrics interface {
	ObserveTipUpdate(linked bool, height uint64)
	ObserveReconnect()
	ObservePoll(err error, started time.Time)
}
