package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/krisalay/ttl-cache/types"
)

type evicted struct {
	key     string
	entry   *types.Entry
	expired bool
}

/*
Sweep removes every entry that is stale or has no value, or every entry at all
when forced is true.

Each shard is scanned and pruned under its own lock, so a concurrent Get or Set on
a key sees the entry either fully present or fully gone. Notifications go out after
the locks are released: one item-evicted per removed entry, then one sweep-completed
if anything was removed.

Sweep never fails.
*/
func (c *TimedCache) Sweep(forced bool) types.SweepStats {
	start := time.Now()
	now := c.engine.Now()

	var (
		stats types.SweepStats
		gone  []evicted
	)

	for _, sh := range c.shards {
		mark := len(gone)

		sh.Mu.Lock()
		stats.Scanned += sh.Store.Size()
		sh.Store.Range(func(k string, ent *types.Entry) bool {
			if evict, expired := c.engine.Evictable(ent, forced, now); evict {
				gone = append(gone, evicted{key: k, entry: ent, expired: expired})
			}
			return true
		})
		for _, g := range gone[mark:] {
			sh.Store.Delete(g.key)
		}
		sh.Mu.Unlock()
	}
	stats.Deleted = len(gone)

	for _, g := range gone {
		c.engine.OnEvicted(g.key, g.entry, g.expired)
	}
	c.engine.OnSweep(c.snapshot, stats, time.Since(start))

	return stats
}

// Start begins the periodic sweep. It returns false if the sweep was already
// running or the cache is closed.
func (c *TimedCache) Start() bool {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	if c.cancel != nil || c.closed.Load() {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel, c.done = cancel, done
	c.running.Store(true)

	go c.sweepLoop(ctx, done)

	c.logger.Info("sweep started", zap.Duration("interval", c.sweepInterval))
	return true
}

/*
Stop halts the periodic sweep and returns false if it was not running.

When Stop returns, the sweep goroutine has exited: a tick that was already
sweeping has finished and no further tick fires. Because of that, Stop must not
be called from an observer running on the sweep goroutine; wrap such observers
in notify.Async.
*/
func (c *TimedCache) Stop() bool {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	if c.cancel == nil {
		return false
	}

	c.cancel()
	<-c.done
	c.cancel, c.done = nil, nil
	c.running.Store(false)

	c.logger.Info("sweep stopped")
	return true
}

// Running reports whether the periodic sweep is active.
func (c *TimedCache) Running() bool {
	return c.running.Load()
}

// sweepLoop runs Sweep(false) on every tick until ctx is cancelled.
func (c *TimedCache) sweepLoop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Both cases may be ready at once; a cancelled loop must not sweep.
			if ctx.Err() != nil {
				return
			}
			c.Sweep(false)
		}
	}
}
