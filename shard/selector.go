package shard

import "hash/fnv"

/*
This file decides HOW a cache key is assigned to a shard.
A key must always land on the same shard, otherwise two goroutines could
hold different locks while touching the same key.
*/

/*
Selector is the interface that decides which shard should handle a given key.
The cache does not care HOW this decision is made. Different strategies can be plugged in.
*/
type Selector interface {
	Select(string, []*Shard) *Shard
}

// HashSelector picks shards by FNV-1a hash of the key.
type HashSelector struct{}

// hash converts a string key into a number. FNV is a fast, non-cryptographic hash commonly used in systems like this.
func hash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// Select chooses the shard for a given key.
func (HashSelector) Select(key string, shards []*Shard) *Shard {
	if len(shards) == 1 {
		return shards[0]
	}
	idx := int(hash(key) % uint32(len(shards)))
	return shards[idx]
}
