package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/krisalay/ttl-cache/expiration"
	"github.com/krisalay/ttl-cache/notify"
	"github.com/krisalay/ttl-cache/types"
)

/*
CacheEngine is the "brain" of the cache system.
It is responsible for the "behavior" of the cache, NOT storage.
This acts as the policy layer.

It decides:
- When an entry is stale
- Whether a read renews the entry
- What gets reported when an entry is removed or a sweep finishes
- How a populate call is timed, logged and counted

It does NOT:
- Store data
- Handle sharding
- Handle locking
- Schedule sweeps
*/
type CacheEngine struct {

	// Expiration controls when a cache entry should be considered "too old"
	// and whether reads push that point forward.
	Expiration expiration.Strategy

	// Clock is where every timestamp comes from.
	Clock types.Clock

	// Observer receives item-evicted and sweep-completed events.
	Observer notify.Observer

	// Metrics is how we keep track of what the cache is doing.
	Metrics types.Metrics

	// Logger is scoped to the owning cache.
	Logger *zap.Logger
}

/*
NewCacheEngine creates a CacheEngine. Only exp is required; every nil collaborator is
replaced with a no-op (or the system clock).
*/
func NewCacheEngine(
	exp expiration.Strategy,
	clock types.Clock,
	observer notify.Observer,
	metrics types.Metrics,
	logger *zap.Logger,
) *CacheEngine {
	if clock == nil {
		clock = types.SystemClock{}
	}
	if observer == nil {
		observer = notify.NoopObserver{}
	}
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CacheEngine{
		Expiration: exp,
		Clock:      clock,
		Observer:   observer,
		Metrics:    metrics,
		Logger:     logger,
	}
}

// Now reads the engine clock.
func (e *CacheEngine) Now() time.Time {
	return e.Clock.Now()
}

// NewEntry wraps value in an entry stamped with the current time.
func (e *CacheEngine) NewEntry(value any) *types.Entry {
	return types.NewEntry(value, e.Now())
}

/*
Evictable decides whether a sweep at now removes ent, and why.

An entry goes when the sweep is forced, when it carries no value, or when its
ttl has elapsed. The second result is true only in the last case.
*/
func (e *CacheEngine) Evictable(ent *types.Entry, forced bool, now time.Time) (evict, expired bool) {
	if forced || !ent.Valid() {
		return true, false
	}
	if e.Expiration.IsExpired(ent, now) {
		return true, true
	}
	return false, false
}

/*
OnRead is called every time the cache is about to hand a live entry to a caller.
Under the renew policy this is what keeps the entry alive.
*/
func (e *CacheEngine) OnRead(ent *types.Entry, now time.Time) {
	e.Metrics.Hit()
	if e.Expiration.OnAccess(ent, now) {
		e.Metrics.Renew()
	}
}

/*
OnEvicted is called once per removed entry, after the shard lock is released.
*/
func (e *CacheEngine) OnEvicted(key string, ent *types.Entry, expired bool) {
	if expired {
		e.Metrics.Expire()
	} else {
		e.Metrics.Eviction()
	}
	e.Observer.ItemEvicted(key, ent)
}

/*
OnSweep is called at the end of every sweep pass.

Observers only hear about passes that removed something. Metrics see every pass.
*/
func (e *CacheEngine) OnSweep(remaining func() map[string]any, stats types.SweepStats, took time.Duration) {
	e.Metrics.Sweep(stats, took)
	if stats.Deleted == 0 {
		return
	}

	e.Logger.Debug("sweep completed",
		zap.Int("deleted", stats.Deleted),
		zap.Int("scanned", stats.Scanned),
		zap.Duration("took", took),
	)
	e.Observer.SweepCompleted(remaining(), stats)
}

/*
Populate runs a caller's populate callback.

The cache calls this at most once per key at a time and never while holding a lock.
*/
func (e *CacheEngine) Populate(ctx context.Context, key string, fn types.PopulateFunc) (any, error) {
	start := time.Now()
	v, err := fn(ctx)
	e.Metrics.Populate(err)

	if err != nil {
		e.Logger.Warn("populate failed",
			zap.String("key", key),
			zap.Duration("took", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}
	return v, nil
}
