// Package resolver answers entity requests by orchestrating the node
// client, the wire decoder and the cache.
package resolver

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/blockscope-backend/internal/cache"
	"github.com/goodnatureofminers/blockscope-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// NodeClient is the slice of the node client the resolver needs. It never
// caches; every call round-trips to the node.
type NodeClient interface {
	FetchBlock(ctx context.Context, hash chainhash.Hash) ([]byte, error)
	FetchHeader(ctx context.Context, hash chainhash.Hash) ([]byte, error)
	FetchTx(ctx context.Context, txid chainhash.Hash) ([]byte, error)
	BlockHashAtHeight(ctx context.Context, height uint64) (chainhash.Hash, error)
}

// Cache is the slice of the cache manager the resolver needs.
type Cache interface {
	GetOrCompute(ctx context.Context, key cache.Key, compute cache.ComputeFunc) ([]byte, error)
	Put(ctx context.Context, key cache.Key, value []byte)
}

// TipSource reports the current best-chain tip.
type TipSource interface {
	CurrentTip() model.ChainTip
}

// Metrics observes resolve outcomes.
type Metrics interface {
	ObserveResolve(kind string, err error, started time.Time)
	ObserveRetry()
}
