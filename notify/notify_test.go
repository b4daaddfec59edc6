package notify_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/ttl-cache/notify"
	"github.com/krisalay/ttl-cache/types"
)

// recorder keeps every event it sees.
type recorder struct {
	mu     sync.Mutex
	keys   []string
	sweeps []types.SweepStats
}

func (r *recorder) ItemEvicted(key string, _ *types.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
}

func (r *recorder) SweepCompleted(_ map[string]any, stats types.SweepStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweeps = append(r.sweeps, stats)
}

func (r *recorder) evicted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}

func TestRegistryFansOutInOrder(t *testing.T) {
	reg := notify.NewRegistry()

	var order []string
	reg.Subscribe(notify.Funcs{OnItemEvicted: func(k string, _ *types.Entry) { order = append(order, "first:"+k) }})
	reg.Subscribe(notify.Funcs{OnItemEvicted: func(k string, _ *types.Entry) { order = append(order, "second:"+k) }})

	reg.ItemEvicted("a", nil)

	assert.Equal(t, []string{"first:a", "second:a"}, order)
}

func TestRegistryUnsubscribe(t *testing.T) {
	reg := notify.NewRegistry()
	rec := &recorder{}

	unsubscribe := reg.Subscribe(rec)
	require.Equal(t, 1, reg.Len())

	reg.SweepCompleted(nil, types.SweepStats{Deleted: 1, Scanned: 2})
	unsubscribe()
	unsubscribe()
	reg.SweepCompleted(nil, types.SweepStats{Deleted: 3, Scanned: 3})

	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, []types.SweepStats{{Deleted: 1, Scanned: 2}}, rec.sweeps)
}

func TestRegistryUnsubscribeFromCallback(t *testing.T) {
	reg := notify.NewRegistry()

	calls := 0
	var unsubscribe func()
	unsubscribe = reg.Subscribe(notify.Funcs{OnItemEvicted: func(string, *types.Entry) {
		calls++
		unsubscribe()
	}})

	reg.ItemEvicted("a", nil)
	reg.ItemEvicted("b", nil)

	assert.Equal(t, 1, calls)
}

func TestFuncsIgnoresNilHandlers(t *testing.T) {
	var f notify.Funcs
	assert.NotPanics(t, func() {
		f.ItemEvicted("a", nil)
		f.SweepCompleted(nil, types.SweepStats{})
	})
}

func TestAsyncDeliversInOrderAndDrainsOnClose(t *testing.T) {
	rec := &recorder{}
	a := notify.NewAsync(rec, 64)

	for _, k := range []string{"a", "b", "c"} {
		a.ItemEvicted(k, types.NewEntry(k, time.Now()))
	}
	require.NoError(t, a.Close())

	assert.Equal(t, []string{"a", "b", "c"}, rec.evicted())
	assert.Zero(t, a.Dropped())
}

func TestAsyncDropsAfterClose(t *testing.T) {
	rec := &recorder{}
	a := notify.NewAsync(rec, 1)
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	a.ItemEvicted("late", nil)

	assert.Empty(t, rec.evicted())
	assert.Equal(t, int64(1), a.Dropped())
}

func TestAsyncDropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	blocking := notify.Funcs{OnItemEvicted: func(string, *types.Entry) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
	}}

	a := notify.NewAsync(blocking, 1)
	a.ItemEvicted("held", nil)
	<-started

	a.ItemEvicted("queued", nil)
	a.ItemEvicted("dropped", nil)

	close(release)
	require.NoError(t, a.Close())
	assert.Equal(t, int64(1), a.Dropped())
}
