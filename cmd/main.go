package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	cache "github.com/krisalay/ttl-cache"
	"github.com/krisalay/ttl-cache/config"
	"github.com/krisalay/ttl-cache/metrics"
	"github.com/krisalay/ttl-cache/notify"
	"github.com/krisalay/ttl-cache/types"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, *configPath); err != nil {
		logger.Fatal("demo failed", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(logger *zap.Logger, configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------- Config ----------------
	cfg := config.Default()
	cfg.Name = "demo"
	cfg.SweepIntervalMs = 100
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	// ---------------- Observers ----------------
	registry := notify.NewRegistry()
	registry.Subscribe(notify.Funcs{
		OnItemEvicted: func(key string, ent *types.Entry) {
			logger.Info("item evicted", zap.String("key", key), zap.Any("value", ent.Value()))
		},
		OnSweepCompleted: func(remaining map[string]any, stats types.SweepStats) {
			logger.Info("sweep completed",
				zap.Int("deleted", stats.Deleted),
				zap.Int("scanned", stats.Scanned),
				zap.Int("remaining", len(remaining)),
			)
		},
	})

	if cfg.ZMQEndpoint != "" {
		pub, err := notify.NewPublisher(ctx, cfg.ZMQEndpoint, logger)
		if err != nil {
			return err
		}
		defer pub.Close()
		registry.Subscribe(pub)
	}

	observer := notify.NewAsync(registry, 1024)

	// ---------------- Metrics ----------------
	reg := prometheus.NewRegistry()
	m := metrics.NewPrometheus(reg, "ttlcache", cfg.Name)
	if cfg.MetricsAddr != "" {
		srv := metrics.NewServer(cfg.MetricsAddr, reg, logger)
		srv.StartAsync()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Stop(shutdownCtx)
		}()
	}

	// ---------------- Cache ----------------
	opts = append(opts,
		cache.WithLogger(logger),
		cache.WithMetrics(m),
		cache.WithObserver(observer),
	)
	c, err := cache.New(opts...)
	if err != nil {
		return err
	}
	defer c.Close()

	logger.Info("cache ready",
		zap.String("policy", c.Policy().String()),
		zap.Duration("ttl", c.TTL()),
		zap.Bool("running", c.Running()),
	)

	// ====================================================
	// 1) set / get
	v, _ := c.Set("a", 42)
	logger.Info("set", zap.Any("a", v))
	v, _ = c.Get(ctx, "a", nil)
	logger.Info("get", zap.Any("a", v))

	// ====================================================
	// 2) miss without populate
	if _, err := c.Get(ctx, "missing", nil); errors.Is(err, cache.ErrNotFound) {
		logger.Info("get missing", zap.Error(err))
	}

	// ====================================================
	// 3) single-flight populate
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			val, err := c.Get(ctx, map[string]any{"user": 7}, func(context.Context) (any, error) {
				logger.Info("populate called", zap.Int("goroutine", id))
				time.Sleep(100 * time.Millisecond)
				return "alice", nil
			})
			logger.Info("populated get", zap.Int("goroutine", id), zap.Any("value", val), zap.Error(err))
		}(i)
	}
	wg.Wait()

	// ====================================================
	// 4) forced sweep
	stats := c.Sweep(true)
	logger.Info("forced sweep", zap.Int("deleted", stats.Deleted), zap.Int("scanned", stats.Scanned))

	// Keep serving metrics until interrupted when an endpoint was asked for.
	if cfg.MetricsAddr != "" || cfg.ZMQEndpoint != "" {
		logger.Info("running until interrupted")
		<-ctx.Done()
	}

	logger.Info("shutting down", zap.Int64("dropped_events", observer.Dropped()))
	return nil
}
