package cache

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/krisalay/ttl-cache/api"
	"github.com/krisalay/ttl-cache/engine"
	"github.com/krisalay/ttl-cache/expiration"
	"github.com/krisalay/ttl-cache/keys"
	"github.com/krisalay/ttl-cache/shard"
	"github.com/krisalay/ttl-cache/types"
)

var _ api.Cache = (*TimedCache)(nil)

/*
TimedCache is the main cache implementation.
This struct is the orchestrator that connects:
- shards (storage and locking)
- the engine (expiry rules, metrics, events, logging)
- single-flight population
- the background sweep
*/
type TimedCache struct {
	name string

	// shards are the actual storage units. Each key belongs to exactly one shard.
	shards []*shard.Shard

	// selector decides which shard a key should go to.
	selector shard.Selector

	// engine contains the "rules" of the cache: ttl, renewal, metrics, observer, logger.
	engine *engine.CacheEngine

	logger *zap.Logger

	// sf makes sure only one populate callback per key is in flight.
	sf singleflight.Group

	sweepInterval time.Duration

	// runMu serialises Start and Stop. cancel and done are only set while running.
	runMu   sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running atomic.Bool

	closed atomic.Bool
}

// New builds a cache and, unless WithAutoStart(false) is given, starts its sweep.
func New(opts ...Option) (*TimedCache, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.policy.Valid() {
		return nil, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, cfg.policy)
	}
	if cfg.ttl <= 0 {
		return nil, fmt.Errorf("%w: ttl must be positive, got %s", ErrInvalidConfig, cfg.ttl)
	}
	if cfg.sweepInterval <= 0 {
		return nil, fmt.Errorf("%w: sweep interval must be positive, got %s", ErrInvalidConfig, cfg.sweepInterval)
	}
	if cfg.shards <= 0 {
		return nil, fmt.Errorf("%w: shard count must be positive, got %d", ErrInvalidConfig, cfg.shards)
	}

	exp, err := expiration.New(cfg.policy, cfg.ttl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	logger := cfg.logger.With(zap.String("cache", cfg.name))

	c := &TimedCache{
		name:          cfg.name,
		shards:        shard.New(cfg.shards),
		selector:      shard.HashSelector{},
		engine:        engine.NewCacheEngine(exp, cfg.clock, cfg.observer, cfg.metrics, logger),
		logger:        logger,
		sweepInterval: cfg.sweepInterval,
	}

	if cfg.autoStart {
		c.Start()
	}
	return c, nil
}

// Name returns the label given with WithName.
func (c *TimedCache) Name() string { return c.name }

// Policy returns the expiry policy.
func (c *TimedCache) Policy() types.Policy { return c.engine.Expiration.Policy() }

// TTL returns the configured time-to-live.
func (c *TimedCache) TTL() time.Duration { return c.engine.Expiration.TTL() }

// Key returns the canonical key dataID is stored under.
func (c *TimedCache) Key(dataID any) (string, error) {
	k, err := keys.Canonicalize(c.Policy(), dataID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return k, nil
}

/*
Get returns the value cached for dataID.

On a miss without populate it fails with ErrNotFound. On a miss with populate,
the callback runs at most once per key no matter how many goroutines ask at the
same time; all of them receive its value, or its error wrapped in ErrPopulateFailed.

populate receives ctx of the caller that started the flight. The cache itself never
cancels it, so a populate that hangs keeps every waiter for that key waiting.
*/
func (c *TimedCache) Get(ctx context.Context, dataID any, populate types.PopulateFunc) (any, error) {
	key, err := c.Key(dataID)
	if err != nil {
		return nil, err
	}

	if v, ok := c.read(key); ok {
		return v, nil
	}
	c.engine.Metrics.Miss()

	if populate == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if c.closed.Load() {
		return nil, ErrClosed
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		// Someone may have stored the key between our miss and this flight,
		// e.g. a flight that finished just before ours started.
		if v, ok := c.read(key); ok {
			return v, nil
		}

		v, err := c.engine.Populate(ctx, key, populate)
		if err != nil {
			return nil, err
		}
		return c.storePopulated(key, v), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPopulateFailed, key, err)
	}
	return v, nil
}

// read looks key up and reports any entry it had to throw away.
func (c *TimedCache) read(key string) (any, bool) {
	v, ok, gone, expired := c.lookup(key)
	if gone != nil {
		c.engine.OnEvicted(key, gone, expired)
	}
	return v, ok
}

/*
lookup returns the live value at key, renewing it when the policy says so.

A stale or valueless entry is removed right here instead of being returned,
and handed back as gone so the caller can report it outside the lock.
*/
func (c *TimedCache) lookup(key string) (v any, ok bool, gone *types.Entry, expired bool) {
	sh := c.selector.Select(key, c.shards)
	now := c.engine.Now()

	sh.Mu.Lock()
	defer sh.Mu.Unlock()

	ent, found := sh.Store.Get(key)
	if !found {
		return nil, false, nil, false
	}

	if evict, exp := c.engine.Evictable(ent, false, now); evict {
		sh.Store.Delete(key)
		return nil, false, ent, exp
	}

	c.engine.OnRead(ent, now)
	return ent.Value(), true, nil, false
}

// storePopulated writes a populate result unless a live entry appeared while the
// callback ran, in which case that entry wins. Nil results are handed back uncached.
func (c *TimedCache) storePopulated(key string, v any) any {
	if v == nil {
		return nil
	}

	sh := c.selector.Select(key, c.shards)
	now := c.engine.Now()

	sh.Mu.Lock()
	defer sh.Mu.Unlock()

	if cur, ok := sh.Store.Get(key); ok {
		if evict, _ := c.engine.Evictable(cur, false, now); !evict {
			return cur.Value()
		}
	}

	sh.Store.Put(key, types.NewEntry(v, now))
	return v
}

// Set stores value under dataID with a fresh entry, replacing whatever was there.
func (c *TimedCache) Set(dataID any, value any) (any, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	key, err := c.Key(dataID)
	if err != nil {
		return nil, err
	}

	sh := c.selector.Select(key, c.shards)
	ent := c.engine.NewEntry(value)

	sh.Mu.Lock()
	sh.Store.Put(key, ent)
	sh.Mu.Unlock()

	return value, nil
}

// Delete removes dataID and reports whether anything was removed.
func (c *TimedCache) Delete(dataID any) (bool, error) {
	key, err := c.Key(dataID)
	if err != nil {
		return false, err
	}

	sh := c.selector.Select(key, c.shards)

	sh.Mu.Lock()
	defer sh.Mu.Unlock()

	return sh.Store.Delete(key), nil
}

// Len returns the number of stored entries, including stale ones not yet swept.
func (c *TimedCache) Len() int {
	n := 0
	for _, sh := range c.shards {
		sh.Mu.Lock()
		n += sh.Store.Size()
		sh.Mu.Unlock()
	}
	return n
}

// Keys returns the stored canonical keys, sorted.
func (c *TimedCache) Keys() []string {
	var out []string
	for _, sh := range c.shards {
		sh.Mu.Lock()
		sh.Store.Range(func(k string, _ *types.Entry) bool {
			out = append(out, k)
			return true
		})
		sh.Mu.Unlock()
	}
	slices.Sort(out)
	return out
}

// snapshot copies every stored value. Each shard is copied under its own lock.
func (c *TimedCache) snapshot() map[string]any {
	out := make(map[string]any)
	for _, sh := range c.shards {
		sh.Mu.Lock()
		sh.Store.Range(func(k string, ent *types.Entry) bool {
			out[k] = ent.Value()
			return true
		})
		sh.Mu.Unlock()
	}
	return out
}

/*
Close stops the sweep and closes the observer if it is an io.Closer.
After Close, Set and the populate path of Get fail with ErrClosed; reads and
deletes keep working on what is left.

Close is safe to call multiple times.
*/
func (c *TimedCache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.Stop()

	if cl, ok := c.engine.Observer.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
