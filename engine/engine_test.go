package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/ttl-cache/engine"
	"github.com/krisalay/ttl-cache/expiration"
	"github.com/krisalay/ttl-cache/notify"
	"github.com/krisalay/ttl-cache/types"
)

type countingMetrics struct {
	types.NoopMetrics
	hits, renews, evictions, expires, sweeps, populates, failures int
}

func (m *countingMetrics) Hit()      { m.hits++ }
func (m *countingMetrics) Renew()    { m.renews++ }
func (m *countingMetrics) Eviction() { m.evictions++ }
func (m *countingMetrics) Expire()   { m.expires++ }

func (m *countingMetrics) Sweep(types.SweepStats, time.Duration) { m.sweeps++ }

func (m *countingMetrics) Populate(err error) {
	m.populates++
	if err != nil {
		m.failures++
	}
}

func newEngine(t *testing.T, p types.Policy, m types.Metrics, obs notify.Observer) *engine.CacheEngine {
	t.Helper()
	exp, err := expiration.New(p, time.Minute)
	require.NoError(t, err)
	return engine.NewCacheEngine(exp, nil, obs, m, nil)
}

func TestNewCacheEngineDefaults(t *testing.T) {
	e := newEngine(t, types.Force, nil, nil)

	assert.IsType(t, types.SystemClock{}, e.Clock)
	assert.IsType(t, notify.NoopObserver{}, e.Observer)
	assert.IsType(t, types.NoopMetrics{}, e.Metrics)
	assert.NotNil(t, e.Logger)
}

func TestEvictable(t *testing.T) {
	e := newEngine(t, types.Force, nil, nil)
	t0 := time.Now()

	live := types.NewEntry("v", t0)
	evict, expired := e.Evictable(live, false, t0.Add(30*time.Second))
	assert.False(t, evict)
	assert.False(t, expired)

	evict, expired = e.Evictable(live, true, t0)
	assert.True(t, evict)
	assert.False(t, expired)

	evict, expired = e.Evictable(types.NewEntry(nil, t0), false, t0)
	assert.True(t, evict)
	assert.False(t, expired)

	evict, expired = e.Evictable(live, false, t0.Add(time.Minute))
	assert.True(t, evict)
	assert.True(t, expired)
}

func TestOnReadRenewsOnlyUnderRenew(t *testing.T) {
	t0 := time.Now()

	m := &countingMetrics{}
	e := newEngine(t, types.Force, m, nil)
	ent := types.NewEntry("v", t0)
	e.OnRead(ent, t0.Add(time.Second))
	assert.Equal(t, t0, ent.LastRenewedAt())
	assert.Equal(t, 1, m.hits)
	assert.Equal(t, 0, m.renews)

	m = &countingMetrics{}
	e = newEngine(t, types.Renew, m, nil)
	ent = types.NewEntry("v", t0)
	e.OnRead(ent, t0.Add(time.Second))
	assert.Equal(t, t0.Add(time.Second), ent.LastRenewedAt())
	assert.Equal(t, 1, m.renews)
}

func TestOnSweepSkipsObserverWhenNothingDeleted(t *testing.T) {
	m := &countingMetrics{}
	sweeps := 0
	obs := notify.Funcs{OnSweepCompleted: func(map[string]any, types.SweepStats) { sweeps++ }}
	e := newEngine(t, types.Force, m, obs)

	remaining := func() map[string]any { return map[string]any{} }
	e.OnSweep(remaining, types.SweepStats{Deleted: 0, Scanned: 4}, 0)
	e.OnSweep(remaining, types.SweepStats{Deleted: 1, Scanned: 4}, 0)

	assert.Equal(t, 2, m.sweeps)
	assert.Equal(t, 1, sweeps)
}

func TestOnEvictedCountsByReason(t *testing.T) {
	m := &countingMetrics{}
	var keys []string
	obs := notify.Funcs{OnItemEvicted: func(k string, _ *types.Entry) { keys = append(keys, k) }}
	e := newEngine(t, types.Force, m, obs)

	e.OnEvicted("a", nil, true)
	e.OnEvicted("b", nil, false)

	assert.Equal(t, 1, m.expires)
	assert.Equal(t, 1, m.evictions)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestPopulate(t *testing.T) {
	m := &countingMetrics{}
	e := newEngine(t, types.Force, m, nil)
	ctx := context.Background()

	v, err := e.Populate(ctx, "k", func(context.Context) (any, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	boom := errors.New("boom")
	_, err = e.Populate(ctx, "k", func(context.Context) (any, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	assert.Equal(t, 2, m.populates)
	assert.Equal(t, 1, m.failures)
}
