package cache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/goodnatureofminers/blockscope-backend/pkg/batcher"
)

// ComputeFunc produces the value for a key on a cache miss. It must return
// the complete serialized value; partial results are never cached.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Config carries manager construction parameters.
type Config struct {
	// MaxItems bounds the in-memory tier entry count.
	MaxItems int
	// MaxBytes bounds the in-memory tier total value bytes.
	MaxBytes int
	// WriteFlushSize and WriteFlushInterval shape the write-behind batch
	// into the persistent tier.
	WriteFlushSize     int
	WriteFlushInterval time.Duration
}

type storeRecord struct {
	key   []byte
	value []byte
}

// Manager owns both cache tiers and exposes single-flight get-or-compute.
// Persistent-tier faults degrade to misses; they never fail a request.
type Manager struct {
	logger  *zap.Logger
	mem     *memoryTier
	store   Store
	metrics Metrics
	flights singleflight.Group
	writes  *batcher.Batcher[storeRecord]
}

// NewManager builds a Manager over the given persistent store.
func NewManager(cfg Config, store Store, m Metrics, logger *zap.Logger) (*Manager, error) {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 4096
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 256 << 20
	}
	if cfg.WriteFlushSize <= 0 {
		cfg.WriteFlushSize = 64
	}
	if cfg.WriteFlushInterval <= 0 {
		cfg.WriteFlushInterval = 500 * time.Millisecond
	}

	mem, err := newMemoryTier(cfg.MaxItems, cfg.MaxBytes)
	if err != nil {
		return nil, err
	}

	mgr := &Manager{
		logger:  logger,
		mem:     mem,
		store:   store,
		metrics: m,
	}
	mgr.writes = batcher.New(logger.Named("writes"), mgr.flushRecords,
		cfg.WriteFlushSize, cfg.WriteFlushInterval, 0)
	return mgr, nil
}

// Start begins the write-behind loop for persistent fills.
func (m *Manager) Start(ctx context.Context) {
	m.writes.Start(ctx)
}

// Stop flushes pending persistent writes. The store itself is closed by its
// owner after Stop returns.
func (m *Manager) Stop() {
	m.writes.Stop()
}

// GetOrCompute returns the cached value for key, or runs compute exactly
// once across concurrent callers, filling both tiers on success. Returned
// slices are shared; callers must treat them as read-only.
func (m *Manager) GetOrCompute(ctx context.Context, key Key, compute ComputeFunc) ([]byte, error) {
	memKey := key.String()
	if value, ok := m.mem.Get(memKey); ok {
		m.metrics.ObserveHit("memory")
		return value, nil
	}

	value, err, _ := m.flights.Do(memKey, func() (any, error) {
		// A concurrent flight may have filled the entry between the
		// miss above and acquiring the flight.
		if value, ok := m.mem.Get(memKey); ok {
			m.metrics.ObserveHit("memory")
			return value, nil
		}

		if value, err := m.store.Get(key.storeKey()); err == nil {
			m.metrics.ObserveHit("persistent")
			m.fillMemory(memKey, value)
			return value, nil
		} else if !errors.Is(err, ErrStoreMiss) {
			m.metrics.ObserveStoreFault("get")
			m.logger.Warn("persistent tier read failed, treating as miss",
				zap.String("key", memKey), zap.Error(err))
		}

		m.metrics.ObserveMiss()
		computed, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		m.fill(ctx, key, memKey, computed)
		return computed, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}

// Put stores an already-computed value in both tiers, e.g. when pre-warming
// a freshly connected block.
func (m *Manager) Put(ctx context.Context, key Key, value []byte) {
	m.fill(ctx, key, key.String(), value)
}

func (m *Manager) fill(ctx context.Context, key Key, memKey string, value []byte) {
	m.fillMemory(memKey, value)

	// Unstable entries hit the store synchronously: a write queued behind
	// the batcher could flush after an invalidation and resurrect a stale
	// value under the same key.
	if !key.Stable() {
		if err := m.store.Put(key.storeKey(), value); err != nil {
			m.metrics.ObserveStoreFault("put")
			m.logger.Warn("persistent fill failed", zap.String("key", memKey), zap.Error(err))
		}
		return
	}

	if err := m.writes.Add(ctx, storeRecord{key: key.storeKey(), value: value}); err != nil {
		m.logger.Debug("skipping persistent fill", zap.String("key", memKey), zap.Error(err))
	}
}

func (m *Manager) fillMemory(memKey string, value []byte) {
	if evicted := m.mem.Add(memKey, value); evicted > 0 {
		m.metrics.ObserveEvictions(evicted)
	}
}

func (m *Manager) flushRecords(_ context.Context, records []storeRecord) error {
	for _, rec := range records {
		if err := m.store.Put(rec.key, rec.value); err != nil {
			m.metrics.ObserveStoreFault("put")
			return err
		}
	}
	return nil
}

// InvalidateLatest drops the "latest" alias entries after a tip update that
// extends the known chain. Content-addressed entries stay valid.
func (m *Manager) InvalidateLatest() {
	removed := m.removeAliases()
	m.metrics.ObserveInvalidation("latest", removed)
}

// InvalidateLookback drops height-keyed entries at and above fromHeight plus
// the "latest" aliases, for a suspected reorg. Applying it twice is a no-op
// beyond wasted work.
func (m *Manager) InvalidateLookback(fromHeight uint64) {
	removed := m.removeAliases()

	for _, memKey := range m.mem.Keys() {
		if h, ok := heightFromMemKey(memKey); ok && h >= fromHeight {
			if m.mem.Remove(memKey) {
				removed++
			}
		}
	}

	start, end := heightStoreRange(fromHeight)
	if err := m.store.DeleteRange(start, end); err != nil {
		m.metrics.ObserveStoreFault("delete_range")
		m.logger.Warn("persistent tier height invalidation failed",
			zap.Uint64("from_height", fromHeight), zap.Error(err))
	}

	m.metrics.ObserveInvalidation("lookback", removed)
	m.logger.Info("invalidated height window",
		zap.Uint64("from_height", fromHeight), zap.Int("memory_entries", removed))
}

func (m *Manager) removeAliases() int {
	removed := 0
	key := RecentBlocksKey()
	if m.mem.Remove(key.String()) {
		removed++
	}
	if err := m.store.Delete(key.storeKey()); err != nil {
		m.metrics.ObserveStoreFault("delete")
		m.logger.Warn("persistent tier alias invalidation failed", zap.Error(err))
	}
	return removed
}

// MemoryLen reports the in-memory tier entry count, for introspection.
func (m *Manager) MemoryLen() int {
	return m.mem.Len()
}

// MemoryBytes reports the in-memory tier byte usage, for introspection.
func (m *Manager) MemoryBytes() int {
	return m.mem.Bytes()
}
