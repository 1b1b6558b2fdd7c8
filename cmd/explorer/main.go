package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/blockscope-backend/internal/cache"
	"github.com/goodnatureofminers/blockscope-backend/internal/chaintip"
	"github.com/goodnatureofminers/blockscope-backend/internal/mempool"
	"github.com/goodnatureofminers/blockscope-backend/internal/metrics"
	"github.com/goodnatureofminers/blockscope-backend/internal/model"
	"github.com/goodnatureofminers/blockscope-backend/internal/node"
	"github.com/goodnatureofminers/blockscope-backend/internal/resolver"
)

type config struct {
	NodeRESTURL   string        `long:"node-rest-url" env:"EXPLORER_NODE_REST_URL" description:"bitcoind REST endpoint" default:"http://127.0.0.1:8332"`
	Network       model.Network `long:"network" env:"EXPLORER_NETWORK" description:"expected network name" default:"mainnet"`
	ZMQAddr       string        `long:"zmq-addr" env:"EXPLORER_ZMQ_ADDR" description:"bitcoind hashblock ZMQ endpoint (optional)"`
	DBPath        string        `long:"db-path" env:"EXPLORER_DB_PATH" description:"persistent cache directory" default:"./explorer-cache"`
	NodeTimeout   time.Duration `long:"node-timeout" env:"EXPLORER_NODE_TIMEOUT" description:"per-request node timeout" default:"30s"`
	NodeRPS       int           `long:"node-rps" env:"EXPLORER_NODE_RPS" description:"node request rate limit, 0 disables" default:"0"`
	PollInterval  time.Duration `long:"poll-interval" env:"EXPLORER_POLL_INTERVAL" description:"chain tip poll interval" default:"2s"`
	MempoolPoll   time.Duration `long:"mempool-poll-interval" env:"EXPLORER_MEMPOOL_POLL_INTERVAL" description:"mempool summary poll interval" default:"2s"`
	ReorgLookback uint64        `long:"reorg-lookback" env:"EXPLORER_REORG_LOOKBACK" description:"height window invalidated on an unresolvable reorg" default:"12"`
	MemCacheItems int           `long:"mem-cache-items" env:"EXPLORER_MEM_CACHE_ITEMS" description:"in-memory cache entry budget" default:"4096"`
	MemCacheBytes int           `long:"mem-cache-bytes" env:"EXPLORER_MEM_CACHE_BYTES" description:"in-memory cache byte budget" default:"268435456"`
	RecentBlocks  int           `long:"recent-blocks" env:"EXPLORER_RECENT_BLOCKS" description:"depth of the recent-blocks summary" default:"10"`
	MetricsAddr   string        `long:"metrics-addr" env:"EXPLORER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("explorer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	store, err := cache.OpenPebble(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open persistent cache: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close persistent cache", zap.Error(err))
		}
	}()

	manager, err := cache.NewManager(cache.Config{
		MaxItems: cfg.MemCacheItems,
		MaxBytes: cfg.MemCacheBytes,
	}, store, metrics.NewCache(cfg.Network), logger.Named("cache"))
	if err != nil {
		return fmt.Errorf("init cache manager: %w", err)
	}
	manager.Start(ctx)
	defer manager.Stop()

	client := node.New(node.Config{
		BaseURL: cfg.NodeRESTURL,
		Timeout: cfg.NodeTimeout,
		RPS:     cfg.NodeRPS,
	}, metrics.NewNodeClient(cfg.Network))

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger.Named("zmq"))
	if err != nil {
		return fmt.Errorf("start block signal: %w", err)
	}

	watcher, err := chaintip.NewWatcher(chaintip.Config{
		PollInterval: cfg.PollInterval,
		Lookback:     cfg.ReorgLookback,
	}, client, manager, nil, metrics.NewWatcher(cfg.Network), blockSignal, logger.Named("watcher"))
	if err != nil {
		return fmt.Errorf("init watcher: %w", err)
	}

	// The tip must be known before the resolver serves anything.
	info, err := watcher.Bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap tip: %w", err)
	}
	network, err := model.NetworkFromChain(info.Chain)
	if err != nil {
		return err
	}
	if network != cfg.Network {
		return fmt.Errorf("node is on %s, expected %s", network, cfg.Network)
	}

	res, err := resolver.New(resolver.Config{
		RecentBlocksDepth: cfg.RecentBlocks,
	}, client, manager, watcher, metrics.NewResolver(cfg.Network), logger.Named("resolver"))
	if err != nil {
		return fmt.Errorf("init resolver: %w", err)
	}
	watcher.SetPrewarmer(res)

	pool, err := mempool.NewPoller(mempool.Config{
		PollInterval: cfg.MempoolPoll,
	}, client, metrics.NewMempool(cfg.Network), logger.Named("mempool"))
	if err != nil {
		return fmt.Errorf("init mempool poller: %w", err)
	}

	logger.Info("explorer core running",
		zap.String("network", string(network)),
		zap.Uint64("tip_height", info.Blocks),
		zap.Stringer("tip_hash", &info.BestBlockHash))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return watcher.Run(ctx) })
	g.Go(func() error { return pool.Run(ctx) })
	return g.Wait()
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
