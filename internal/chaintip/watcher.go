package chaintip

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockscope-backend/internal/bitcoin"
	"github.com/goodnatureofminers/blockscope-backend/internal/clock"
	"github.com/goodnatureofminers/blockscope-backend/internal/model"
	"github.com/goodnatureofminers/blockscope-backend/internal/node"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultLookback     = 12
)

// Config carries watcher construction parameters.
type Config struct {
	// PollInterval bounds how stale the tip may get between polls.
	PollInterval time.Duration
	// Lookback is the height window invalidated when a reorg's fork point
	// cannot be located exactly.
	Lookback uint64
}

// Watcher follows the node's best chain. It keeps the current tip readable
// without blocking and, on every tip change, classifies the change as a
// plain extension or a reorg and notifies the invalidator accordingly.
//
// The fork point is located by walking the new tip's header ancestry back
// against the recently observed best hashes. Within the lookback window the
// resulting invalidation is exact; beyond it the whole window is dropped.
type Watcher struct {
	logger      *zap.Logger
	source      NodeSource
	invalidator Invalidator
	prewarmer   Prewarmer
	metrics     Metrics
	cfg         Config
	sleep       func(context.Context, time.Duration) error
	blockSignal <-chan struct{}

	mu     sync.RWMutex
	state  State
	tip    model.ChainTip
	recent map[uint64]chainhash.Hash
}

// NewWatcher builds a Watcher. blockSignal optionally wakes the poll loop
// early, e.g. from a ZMQ hashblock subscription; pass nil to rely on the
// poll interval alone. prewarmer may be nil.
func NewWatcher(
	cfg Config,
	source NodeSource,
	invalidator Invalidator,
	prewarmer Prewarmer,
	metrics Metrics,
	blockSignal <-chan struct{},
	logger *zap.Logger,
) (*Watcher, error) {
	if source == nil {
		return nil, errors.New("node source is required")
	}
	if invalidator == nil {
		return nil, errors.New("invalidator is required")
	}
	if metrics == nil {
		return nil, errors.New("watcher metrics is required")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.Lookback == 0 {
		cfg.Lookback = defaultLookback
	}

	return &Watcher{
		logger:      logger,
		source:      source,
		invalidator: invalidator,
		prewarmer:   prewarmer,
		metrics:     metrics,
		cfg:         cfg,
		sleep:       clock.SleepWithContext,
		blockSignal: blockSignal,
		recent:      make(map[uint64]chainhash.Hash),
	}, nil
}

// SetPrewarmer wires the pre-warming sink after construction, breaking the
// cycle with components that read the tip from this watcher. Must be called
// before Run.
func (w *Watcher) SetPrewarmer(p Prewarmer) {
	w.prewarmer = p
}

// CurrentTip returns the last observed tip. The zero tip means no tip has
// been observed yet.
func (w *Watcher) CurrentTip() model.ChainTip {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tip
}

// State returns the watcher's lifecycle phase.
func (w *Watcher) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

func (w *Watcher) step(ev event) State {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = transition(w.state, ev)
	return w.state
}

// Bootstrap blocks until the node answers a chain info request, records the
// initial tip and returns the info so the caller can verify the network.
func (w *Watcher) Bootstrap(ctx context.Context) (node.ChainInfo, error) {
	w.step(eventStart)

	backoff := clock.Backoff{Base: time.Second, Max: 30 * time.Second}
	for {
		info, err := w.source.ChainInfo(ctx)
		if err == nil {
			w.setTip(model.ChainTip{Height: info.Blocks, Hash: info.BestBlockHash}, nil)
			w.step(eventSyncOK)
			w.logger.Info("tip bootstrapped",
				zap.Uint64("height", info.Blocks), zap.Stringer("hash", &info.BestBlockHash))
			return info, nil
		}

		wait := backoff.Next()
		w.logger.Warn("node not answering, retrying bootstrap",
			zap.Error(err), zap.Duration("sleep", wait))
		if sleepErr := w.sleep(ctx, wait); sleepErr != nil {
			return node.ChainInfo{}, sleepErr
		}
	}
}

// Run polls the node until the context is canceled. Poll failures back off
// exponentially and never terminate the loop.
func (w *Watcher) Run(ctx context.Context) error {
	w.step(eventStart)

	backoff := clock.Backoff{Base: time.Second, Max: 30 * time.Second}
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		started := time.Now()
		err := w.poll(ctx)
		w.metrics.ObservePoll(err, started)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			state := w.step(eventFeedError)
			wait := backoff.Next()
			w.metrics.ObserveReconnect()
			w.logger.Warn("tip poll failed, backing off",
				zap.Error(err), zap.Stringer("state", state), zap.Duration("sleep", wait))
			if sleepErr := w.sleep(ctx, wait); sleepErr != nil {
				return sleepErr
			}
			continue
		}

		if w.State() == StateResubscribing {
			w.logger.Info("resynchronized with node")
		}
		w.step(eventSyncOK)
		backoff.Reset()
		if err := w.wait(ctx); err != nil {
			return err
		}
	}
}

func (w *Watcher) poll(ctx context.Context) error {
	info, err := w.source.ChainInfo(ctx)
	if err != nil {
		return fmt.Errorf("chain info: %w", err)
	}
	return w.advance(ctx, model.ChainTip{Height: info.Blocks, Hash: info.BestBlockHash})
}

func (w *Watcher) advance(ctx context.Context, newTip model.ChainTip) error {
	cur := w.CurrentTip()
	if newTip.Hash == cur.Hash {
		return nil
	}

	if cur.Zero() {
		w.setTip(newTip, nil)
		w.invalidator.InvalidateLatest()
		w.metrics.ObserveTipUpdate(true, newTip.Height)
		w.warm(ctx, newTip.Hash)
		return nil
	}

	linked, invalidateFrom, walked, err := w.walkBack(ctx, newTip, cur)
	if err != nil {
		return err
	}

	w.setTip(newTip, walked)
	if linked {
		w.invalidator.InvalidateLatest()
		w.logger.Info("tip extended",
			zap.Uint64("height", newTip.Height), zap.Stringer("hash", &newTip.Hash))
	} else {
		w.invalidator.InvalidateLookback(invalidateFrom)
		w.logger.Warn("reorg detected",
			zap.Uint64("old_height", cur.Height),
			zap.Uint64("new_height", newTip.Height),
			zap.Uint64("invalidate_from", invalidateFrom))
	}
	w.metrics.ObserveTipUpdate(linked, newTip.Height)
	w.warm(ctx, newTip.Hash)
	return nil
}

// walkBack follows prev-block links from the new tip until it meets a hash
// this watcher already saw on the best chain. Meeting the old tip itself
// means the chain simply grew; meeting an older ancestor pins the fork
// point. Not meeting any within the lookback window degrades to
// invalidating the whole window.
func (w *Watcher) walkBack(ctx context.Context, newTip, cur model.ChainTip) (linked bool, invalidateFrom uint64, walked map[uint64]chainhash.Hash, err error) {
	walked = map[uint64]chainhash.Hash{newTip.Height: newTip.Hash}

	hash := newTip.Hash
	height := newTip.Height
	for steps := uint64(0); steps <= w.cfg.Lookback; steps++ {
		if height <= cur.Height {
			if known, ok := w.recentAt(height); ok && known == hash {
				if height == cur.Height {
					return true, 0, walked, nil
				}
				return false, height + 1, walked, nil
			}
		}
		if height == 0 {
			break
		}

		raw, err := w.source.FetchHeader(ctx, hash)
		if err != nil {
			return false, 0, nil, fmt.Errorf("fetch header %s: %w", hash, err)
		}
		hdr, err := bitcoin.ParseHeader(raw)
		if err != nil {
			return false, 0, nil, fmt.Errorf("parse header %s: %w", hash, err)
		}

		hash = hdr.PrevBlock()
		height--
		walked[height] = hash
	}

	invalidateFrom = 0
	if newTip.Height > w.cfg.Lookback {
		invalidateFrom = newTip.Height - w.cfg.Lookback
	}
	return false, invalidateFrom, walked, nil
}

func (w *Watcher) setTip(tip model.ChainTip, walked map[uint64]chainhash.Hash) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.tip = tip
	w.recent[tip.Height] = tip.Hash
	for height, hash := range walked {
		w.recent[height] = hash
	}
	for height := range w.recent {
		if height+w.cfg.Lookback < tip.Height {
			delete(w.recent, height)
		}
	}
}

func (w *Watcher) recentAt(height uint64) (chainhash.Hash, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	hash, ok := w.recent[height]
	return hash, ok
}

func (w *Watcher) warm(ctx context.Context, hash chainhash.Hash) {
	if w.prewarmer != nil {
		w.prewarmer.WarmBlock(ctx, hash)
	}
}

func (w *Watcher) wait(ctx context.Context) error {
	if w.blockSignal == nil {
		return w.sleep(ctx, w.cfg.PollInterval)
	}

	timer := time.NewTimer(w.cfg.PollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.blockSignal:
		return nil
	case <-timer.C:
		return nil
	}
}
