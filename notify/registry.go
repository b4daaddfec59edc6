package notify

import (
	"sync"

	"github.com/krisalay/ttl-cache/types"
)

// Registry fans events out to every subscribed Observer, in subscription order.
// It is itself an Observer, so a cache only ever needs one.
type Registry struct {
	mu   sync.RWMutex
	next uint64
	subs []subscription
}

type subscription struct {
	id  uint64
	obs Observer
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Subscribe adds obs and returns a func that removes it again.
// Calling the returned func more than once is harmless.
func (r *Registry) Subscribe(obs Observer) (unsubscribe func()) {
	r.mu.Lock()
	r.next++
	id := r.next
	r.subs = append(r.subs, subscription{id: id, obs: obs})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(id) })
	}
}

func (r *Registry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscribers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

// snapshot lets observers unsubscribe from inside a callback without deadlocking.
func (r *Registry) snapshot() []subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.subs
}

func (r *Registry) ItemEvicted(key string, ent *types.Entry) {
	for _, s := range r.snapshot() {
		s.obs.ItemEvicted(key, ent)
	}
}

func (r *Registry) SweepCompleted(remaining map[string]any, stats types.SweepStats) {
	for _, s := range r.snapshot() {
		s.obs.SweepCompleted(remaining, stats)
	}
}
