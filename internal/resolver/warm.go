package resolver

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockscope-backend/internal/bitcoin"
	"github.com/goodnatureofminers/blockscope-backend/internal/cache"
	"github.com/goodnatureofminers/blockscope-backend/pkg/workerpool"
)

// WarmBlock fetches a freshly connected block ahead of demand and fills the
// per-transaction entries and the tx-to-block association from it, so the
// first explorer views of the new block are served from cache. Failures are
// logged and swallowed; warming is best-effort.
func (r *Resolver) WarmBlock(ctx context.Context, hash chainhash.Hash) {
	raw, err := r.blockBytes(ctx, hash)
	if err != nil {
		r.logger.Warn("block warm failed", zap.Stringer("hash", &hash), zap.Error(err))
		return
	}

	blk, err := bitcoin.ParseBlock(raw)
	if err != nil {
		r.logger.Warn("block warm parse failed", zap.Stringer("hash", &hash), zap.Error(err))
		return
	}

	r.cache.Put(ctx, cache.HeaderKey(hash), blk.Header().Promote().Bytes())

	blockRef := make([]byte, chainhash.HashSize)
	copy(blockRef, hash[:])

	indices := make([]int, blk.TxCount())
	for i := range indices {
		indices[i] = i
	}
	err = workerpool.Process(ctx, r.cfg.WarmWorkers, indices, func(ctx context.Context, i int) error {
		tx := blk.Tx(i).Promote()
		r.cache.Put(ctx, cache.TxKey(tx.TxID()), tx.Bytes())
		r.cache.Put(ctx, cache.TxBlockKey(tx.TxID()), blockRef)
		return nil
	})
	if err != nil {
		r.logger.Warn("block warm interrupted", zap.Stringer("hash", &hash), zap.Error(err))
		return
	}

	r.logger.Debug("block warmed", zap.Stringer("hash", &hash), zap.Int("txs", blk.TxCount()))
}
