package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockscope-backend/internal/bitcoin"
	"github.com/goodnatureofminers/blockscope-backend/internal/cache"
	"github.com/goodnatureofminers/blockscope-backend/internal/clock"
	"github.com/goodnatureofminers/blockscope-backend/internal/model"
	"github.com/goodnatureofminers/blockscope-backend/internal/node"
)

const (
	defaultRetryDelay        = 500 * time.Millisecond
	defaultRecentBlocksDepth = 10
	defaultWarmWorkers       = 4
)

// Config carries resolver construction parameters.
type Config struct {
	// RetryDelay is the pause before the single retry of a fetch that
	// failed with node.ErrUnavailable.
	RetryDelay time.Duration
	// RecentBlocksDepth is how many blocks the recent-blocks summary
	// walks back from the tip.
	RecentBlocksDepth int
	// WarmWorkers bounds the concurrency of block pre-warming.
	WarmWorkers int
}

// Resolver implements the fetch-decode-cache pipeline. Cache values hold
// serialized consensus bytes; decoded views are derived on access, so a
// value round-trips losslessly through both cache tiers.
type Resolver struct {
	logger  *zap.Logger
	node    NodeClient
	cache   Cache
	tips    TipSource
	metrics Metrics
	cfg     Config
	sleep   func(context.Context, time.Duration) error
}

// New builds a Resolver.
func New(cfg Config, nodeClient NodeClient, c Cache, tips TipSource, metrics Metrics, logger *zap.Logger) (*Resolver, error) {
	if nodeClient == nil {
		return nil, errors.New("node client is required")
	}
	if c == nil {
		return nil, errors.New("cache is required")
	}
	if tips == nil {
		return nil, errors.New("tip source is required")
	}
	if metrics == nil {
		return nil, errors.New("resolver metrics is required")
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.RecentBlocksDepth <= 0 {
		cfg.RecentBlocksDepth = defaultRecentBlocksDepth
	}
	if cfg.WarmWorkers <= 0 {
		cfg.WarmWorkers = defaultWarmWorkers
	}

	return &Resolver{
		logger:  logger,
		node:    nodeClient,
		cache:   c,
		tips:    tips,
		metrics: metrics,
		cfg:     cfg,
		sleep:   clock.SleepWithContext,
	}, nil
}

// CurrentTip reports the watcher's best-known tip.
func (r *Resolver) CurrentTip() model.ChainTip {
	return r.tips.CurrentTip()
}

// BlockByHash returns the decoded block for a block hash.
func (r *Resolver) BlockByHash(ctx context.Context, hash chainhash.Hash) (blk *bitcoin.Block, err error) {
	defer func(started time.Time) { r.metrics.ObserveResolve("block_by_hash", err, started) }(time.Now())

	raw, err := r.blockBytes(ctx, hash)
	if err != nil {
		return nil, err
	}
	return bitcoin.ParseBlock(raw)
}

// BlockByHeight resolves the best-chain block hash at height, then the
// block itself. The height mapping is cached under an invalidatable key.
func (r *Resolver) BlockByHeight(ctx context.Context, height uint64) (blk *bitcoin.Block, err error) {
	defer func(started time.Time) { r.metrics.ObserveResolve("block_by_height", err, started) }(time.Now())

	hash, err := r.hashAtHeight(ctx, height)
	if err != nil {
		return nil, err
	}
	raw, err := r.blockBytes(ctx, hash)
	if err != nil {
		return nil, err
	}
	return bitcoin.ParseBlock(raw)
}

// HeaderByHash returns the decoded 80-byte header for a block hash.
func (r *Resolver) HeaderByHash(ctx context.Context, hash chainhash.Hash) (hdr bitcoin.Header, err error) {
	defer func(started time.Time) { r.metrics.ObserveResolve("header_by_hash", err, started) }(time.Now())

	raw, err := r.cache.GetOrCompute(ctx, cache.HeaderKey(hash), func(ctx context.Context) ([]byte, error) {
		raw, err := r.fetchWithRetry(ctx, func(ctx context.Context) ([]byte, error) {
			return r.node.FetchHeader(ctx, hash)
		})
		if err != nil {
			return nil, err
		}
		hdr, err := bitcoin.ParseHeader(raw)
		if err != nil {
			return nil, fmt.Errorf("header %s: %w", hash, err)
		}
		if got := hdr.BlockHash(); got != hash {
			return nil, fmt.Errorf("%w: header hash mismatch: requested %s, got %s", node.ErrProtocol, hash, got)
		}
		return raw[:bitcoin.HeaderLen], nil
	})
	if err != nil {
		return bitcoin.Header{}, err
	}
	return bitcoin.ParseHeader(raw)
}

// TxByID returns the decoded transaction for a txid.
func (r *Resolver) TxByID(ctx context.Context, txid chainhash.Hash) (tx *bitcoin.Tx, err error) {
	defer func(started time.Time) { r.metrics.ObserveResolve("tx_by_id", err, started) }(time.Now())

	raw, err := r.cache.GetOrCompute(ctx, cache.TxKey(txid), func(ctx context.Context) ([]byte, error) {
		raw, err := r.fetchWithRetry(ctx, func(ctx context.Context) ([]byte, error) {
			return r.node.FetchTx(ctx, txid)
		})
		if err != nil {
			return nil, err
		}
		tx, err := bitcoin.ParseTx(raw)
		if err != nil {
			return nil, fmt.Errorf("tx %s: %w", txid, err)
		}
		if got := tx.TxID(); got != txid {
			return nil, fmt.Errorf("%w: txid mismatch: requested %s, got %s", node.ErrProtocol, txid, got)
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return bitcoin.ParseTx(raw)
}

// BlockHashForTx returns the hash of the block containing txid, when the
// association is known. The association is filled by block pre-warming, so
// it covers recently connected blocks; an unknown association reports
// node.ErrNotFound without a node round-trip.
func (r *Resolver) BlockHashForTx(ctx context.Context, txid chainhash.Hash) (chainhash.Hash, error) {
	raw, err := r.cache.GetOrCompute(ctx, cache.TxBlockKey(txid), func(context.Context) ([]byte, error) {
		return nil, fmt.Errorf("tx %s block association: %w", txid, node.ErrNotFound)
	})
	if err != nil {
		return chainhash.Hash{}, err
	}
	hash, err := chainhash.NewHash(raw)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("%w: bad tx block association: %v", node.ErrProtocol, err)
	}
	return *hash, nil
}

// RecentBlock is one row of the recent-blocks summary.
type RecentBlock struct {
	Height  uint64    `json:"height"`
	Hash    string    `json:"hash"`
	Time    time.Time `json:"time"`
	TxCount int       `json:"tx_count"`
	Size    int       `json:"size"`
}

// RecentBlocks returns summaries of the blocks at and below the current
// tip. The rendered artifact is cached under the "latest" alias and
// recomputed after every tip change.
func (r *Resolver) RecentBlocks(ctx context.Context) (blocks []RecentBlock, err error) {
	defer func(started time.Time) { r.metrics.ObserveResolve("recent_blocks", err, started) }(time.Now())

	// The tip is read inside the compute closure: a tip read before the
	// flight could render a pre-invalidation artifact and cache it under
	// the freshly invalidated alias.
	raw, err := r.cache.GetOrCompute(ctx, cache.RecentBlocksKey(), func(ctx context.Context) ([]byte, error) {
		tip := r.tips.CurrentTip()
		if tip.Zero() {
			return nil, fmt.Errorf("tip not resolved yet: %w", node.ErrUnavailable)
		}
		return r.renderRecentBlocks(ctx, tip)
	})
	if err != nil {
		return nil, err
	}

	var out []RecentBlock
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode recent blocks artifact: %w", err)
	}
	return out, nil
}

func (r *Resolver) renderRecentBlocks(ctx context.Context, tip model.ChainTip) ([]byte, error) {
	out := make([]RecentBlock, 0, r.cfg.RecentBlocksDepth)

	hash := tip.Hash
	height := tip.Height
	for i := 0; i < r.cfg.RecentBlocksDepth; i++ {
		raw, err := r.blockBytes(ctx, hash)
		if err != nil {
			return nil, err
		}
		sum, err := bitcoin.ParseBlockSummary(raw)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", hash, err)
		}

		out = append(out, RecentBlock{
			Height:  height,
			Hash:    hash.String(),
			Time:    sum.Time,
			TxCount: sum.TxCount,
			Size:    sum.Size,
		})

		if height == 0 {
			break
		}
		hash = sum.PrevBlock
		height--
	}
	return json.Marshal(out)
}

func (r *Resolver) blockBytes(ctx context.Context, hash chainhash.Hash) ([]byte, error) {
	return r.cache.GetOrCompute(ctx, cache.BlockKey(hash), func(ctx context.Context) ([]byte, error) {
		raw, err := r.fetchWithRetry(ctx, func(ctx context.Context) ([]byte, error) {
			return r.node.FetchBlock(ctx, hash)
		})
		if err != nil {
			return nil, err
		}
		blk, err := bitcoin.ParseBlock(raw)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", hash, err)
		}
		if got := blk.BlockHash(); got != hash {
			return nil, fmt.Errorf("%w: block hash mismatch: requested %s, got %s", node.ErrProtocol, hash, got)
		}
		return raw, nil
	})
}

func (r *Resolver) hashAtHeight(ctx context.Context, height uint64) (chainhash.Hash, error) {
	raw, err := r.cache.GetOrCompute(ctx, cache.HeightKey(height), func(ctx context.Context) ([]byte, error) {
		var hash chainhash.Hash
		err := r.retryOnce(ctx, func(ctx context.Context) error {
			var err error
			hash, err = r.node.BlockHashAtHeight(ctx, height)
			return err
		})
		if err != nil {
			return nil, err
		}
		out := make([]byte, chainhash.HashSize)
		copy(out, hash[:])
		return out, nil
	})
	if err != nil {
		return chainhash.Hash{}, err
	}
	hash, err := chainhash.NewHash(raw)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("%w: bad height mapping: %v", node.ErrProtocol, err)
	}
	return *hash, nil
}

func (r *Resolver) fetchWithRetry(ctx context.Context, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	var raw []byte
	err := r.retryOnce(ctx, func(ctx context.Context) error {
		var err error
		raw, err = fetch(ctx)
		return err
	})
	return raw, err
}

// retryOnce runs op, retrying a single time after a short pause when the
// failure is transient. NotFound and protocol errors surface immediately.
func (r *Resolver) retryOnce(ctx context.Context, op func(context.Context) error) error {
	err := op(ctx)
	if !errors.Is(err, node.ErrUnavailable) {
		return err
	}

	r.metrics.ObserveRetry()
	r.logger.Debug("node unavailable, retrying once", zap.Error(err), zap.Duration("delay", r.cfg.RetryDelay))
	if sleepErr := r.sleep(ctx, r.cfg.RetryDelay); sleepErr != nil {
		return sleepErr
	}
	return op(ctx)
}
