package cache

import (
	"time"

	"go.uber.org/zap"

	"github.com/krisalay/ttl-cache/notify"
	"github.com/krisalay/ttl-cache/types"
)

const (
	// DefaultName labels caches that were not given a name.
	DefaultName = "unnamed-cache"

	// DefaultTTL is how long entries live unless WithTTL says otherwise.
	DefaultTTL = time.Minute

	// DefaultSweepInterval is how often the background sweep runs.
	DefaultSweepInterval = time.Second
)

var nopLogger = zap.NewNop()

type config struct {
	name          string
	policy        types.Policy
	ttl           time.Duration
	sweepInterval time.Duration
	autoStart     bool
	shards        int
	clock         types.Clock
	logger        *zap.Logger
	metrics       types.Metrics
	observer      notify.Observer
}

func defaultConfig() config {
	return config{
		name:          DefaultName,
		policy:        types.Force,
		ttl:           DefaultTTL,
		sweepInterval: DefaultSweepInterval,
		autoStart:     true,
		shards:        1,
		logger:        nopLogger,
	}
}

// Option configures a TimedCache.
type Option func(*config)

// WithName sets a label used in logs and metrics. It has no effect on behavior.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithPolicy selects the expiry policy. The default is types.Force.
func WithPolicy(p types.Policy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithTTL sets how long entries live. It must be positive.
func WithTTL(d time.Duration) Option {
	return func(c *config) {
		c.ttl = d
	}
}

// WithTTLMinutes is WithTTL for callers that think in (possibly fractional) minutes.
func WithTTLMinutes(mins float64) Option {
	return func(c *config) {
		c.ttl = time.Duration(mins * float64(time.Minute))
	}
}

// WithSweepInterval sets how often the background sweep runs. It must be positive.
func WithSweepInterval(d time.Duration) Option {
	return func(c *config) {
		c.sweepInterval = d
	}
}

// WithAutoStart controls whether New starts the background sweep. The default is true.
func WithAutoStart(start bool) Option {
	return func(c *config) {
		c.autoStart = start
	}
}

// WithShards splits the entry map across n independently locked shards.
// The default of 1 keeps the whole cache under one lock.
func WithShards(n int) Option {
	return func(c *config) {
		c.shards = n
	}
}

// WithClock sets a custom clock for time operations.
// Useful for testing ttl behavior.
func WithClock(clk types.Clock) Option {
	return func(c *config) {
		c.clock = clk
	}
}

// WithLogger sets the logger. The cache adds its name as a field.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets where cache events are counted.
func WithMetrics(m types.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithObserver sets who receives item-evicted and sweep-completed events.
// Use a notify.Registry to reach several observers.
func WithObserver(o notify.Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}
