package notify

import (
	"sync"
	"sync/atomic"

	"github.com/krisalay/ttl-cache/types"
)

// event is one pending notification waiting for the worker.
type event struct {
	key       string
	entry     *types.Entry
	remaining map[string]any
	stats     types.SweepStats
	sweep     bool
}

/*
Async hands events to a single background worker so a slow observer never holds up
a sweep or a Get.

- Events reach the wrapped Observer in the order they were queued
- If the queue is full the event is DROPPED and counted, because blocking would
  stall the sweep that produced it
- Close drains what is already queued, then stops the worker
*/
type Async struct {
	next Observer

	// ch is a buffered channel that holds pending events.
	ch chan event

	mu     sync.RWMutex
	closed bool

	dropped atomic.Int64

	// wg is used to wait for the worker to finish during shutdown.
	wg sync.WaitGroup
}

// NewAsync wraps next with a queue of the given size.
func NewAsync(next Observer, buffer int) *Async {
	if buffer < 1 {
		buffer = 1
	}
	a := &Async{
		next: next,
		ch:   make(chan event, buffer),
	}

	a.wg.Add(1)
	go a.worker()

	return a
}

func (a *Async) ItemEvicted(key string, ent *types.Entry) {
	a.enqueue(event{key: key, entry: ent})
}

func (a *Async) SweepCompleted(remaining map[string]any, stats types.SweepStats) {
	a.enqueue(event{remaining: remaining, stats: stats, sweep: true})
}

func (a *Async) enqueue(ev event) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		a.dropped.Add(1)
		return
	}

	select {
	case a.ch <- ev:
	default:
		a.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded because the queue was full or closed.
func (a *Async) Dropped() int64 {
	return a.dropped.Load()
}

func (a *Async) worker() {
	defer a.wg.Done()

	for ev := range a.ch {
		if ev.sweep {
			a.next.SweepCompleted(ev.remaining, ev.stats)
			continue
		}
		a.next.ItemEvicted(ev.key, ev.entry)
	}
}

// Close stops accepting events, delivers the queued ones and waits for the worker.
// It is safe to call more than once.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.ch)
	a.mu.Unlock()

	a.wg.Wait()
	return nil
}
