package shard

import (
	"github.com/krisalay/ttl-cache/types"
)

// ShardStore is the interface used by a shard to store and retrieve cache entries.
type ShardStore interface {

	// Get retrieves an entry by key.
	Get(string) (*types.Entry, bool)

	// Put inserts or replaces an entry.
	Put(string, *types.Entry)

	// Delete removes an entry and reports whether it was there.
	Delete(string) bool

	// Range calls fn for every entry until fn returns false.
	// fn must not modify the store.
	Range(fn func(string, *types.Entry) bool)

	// Size returns how many entries are stored.
	Size() int
}

// mapStore is a plain map. Ordering is not needed anywhere.
type mapStore struct {
	data map[string]*types.Entry
}

func NewMapStore() ShardStore {
	return &mapStore{data: make(map[string]*types.Entry)}
}

func (s *mapStore) Get(key string) (*types.Entry, bool) {
	ent, ok := s.data[key]
	return ent, ok
}

func (s *mapStore) Put(key string, ent *types.Entry) {
	s.data[key] = ent
}

func (s *mapStore) Delete(key string) bool {
	if _, ok := s.data[key]; !ok {
		return false
	}
	delete(s.data, key)
	return true
}

func (s *mapStore) Range(fn func(string, *types.Entry) bool) {
	for k, v := range s.data {
		if !fn(k, v) {
			return
		}
	}
}

func (s *mapStore) Size() int {
	return len(s.data)
}
