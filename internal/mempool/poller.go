package mempool

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockscope-backend/internal/clock"
	"github.com/goodnatureofminers/blockscope-backend/internal/node"
)

const defaultPollInterval = 2 * time.Second

// Config carries poller construction parameters.
type Config struct {
	// PollInterval bounds how stale the mempool snapshot may get.
	PollInterval time.Duration
}

// Poller refreshes the mempool snapshot on a fixed interval. A failed poll
// keeps the previous snapshot; the next interval retries.
type Poller struct {
	logger  *zap.Logger
	source  Source
	metrics Metrics
	cfg     Config
	sleep   func(context.Context, time.Duration) error

	mu        sync.RWMutex
	info      node.MempoolInfo
	updatedAt time.Time
}

// NewPoller builds a Poller.
func NewPoller(cfg Config, source Source, metrics Metrics, logger *zap.Logger) (*Poller, error) {
	if source == nil {
		return nil, errors.New("mempool source is required")
	}
	if metrics == nil {
		return nil, errors.New("mempool metrics is required")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	return &Poller{
		logger:  logger,
		source:  source,
		metrics: metrics,
		cfg:     cfg,
		sleep:   clock.SleepWithContext,
	}, nil
}

// Info returns the latest snapshot and when it was taken. ok is false until
// the first successful poll.
func (p *Poller) Info() (info node.MempoolInfo, updatedAt time.Time, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.info, p.updatedAt, !p.updatedAt.IsZero()
}

// Run polls the node until the context is canceled.
func (p *Poller) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		started := time.Now()
		info, err := p.source.MempoolInfo(ctx)
		p.metrics.ObservePoll(err, started)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Warn("mempool poll failed", zap.Error(err))
		} else {
			p.store(info)
			p.metrics.ObserveInfo(info)
			p.logger.Debug("mempool snapshot updated",
				zap.Uint64("tx_count", info.TxCount), zap.Uint64("vsize", info.Bytes))
		}

		if err := p.sleep(ctx, p.cfg.PollInterval); err != nil {
			return err
		}
	}
}

func (p *Poller) store(info node.MempoolInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.info = info
	p.updatedAt = time.Now()
}
