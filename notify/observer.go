// Package notify carries cache lifecycle events to whoever wants them.
//
// The cache emits two kinds of event:
//   - item-evicted, once per removed entry
//   - sweep-completed, once per sweep pass that removed at least one entry
//
// Within one sweep, item-evicted events are delivered before the sweep-completed
// event that summarises them. Nothing else about ordering is promised.
package notify

import "github.com/krisalay/ttl-cache/types"

// Event names, as published on the wire.
const (
	TopicItemEvicted    = "item-evicted"
	TopicSweepCompleted = "sweep-completed"
)

// Observer receives cache events. Implementations run on the goroutine that caused
// the event (a sweep tick or a Get), so slow observers should be wrapped in Async.
type Observer interface {
	// ItemEvicted is called after key has been removed. ent is no longer reachable
	// through the cache.
	ItemEvicted(key string, ent *types.Entry)

	// SweepCompleted is called after a sweep pass that removed something.
	// remaining is a copy of the values still cached.
	SweepCompleted(remaining map[string]any, stats types.SweepStats)
}

// NoopObserver drops every event.
type NoopObserver struct{}

func (NoopObserver) ItemEvicted(string, *types.Entry)                {}
func (NoopObserver) SweepCompleted(map[string]any, types.SweepStats) {}

// Funcs adapts plain functions to Observer. Nil fields are skipped.
type Funcs struct {
	OnItemEvicted    func(key string, ent *types.Entry)
	OnSweepCompleted func(remaining map[string]any, stats types.SweepStats)
}

func (f Funcs) ItemEvicted(key string, ent *types.Entry) {
	if f.OnItemEvicted != nil {
		f.OnItemEvicted(key, ent)
	}
}

func (f Funcs) SweepCompleted(remaining map[string]any, stats types.SweepStats) {
	if f.OnSweepCompleted != nil {
		f.OnSweepCompleted(remaining, stats)
	}
}
