package shard

import (
	"sync"
)

/*
A shard is a small, independent piece of the cache. Each shard:
- Holds some portion of the entries
- Has its own lock

Every read, write, renewal and eviction of a key happens under the lock of the one
shard that owns the key. That is what makes eviction atomic with respect to a Get or
Set on the same key. With a single shard the whole cache runs under one lock.
*/
type Shard struct {

	// Store holds the key → entry data for this shard. It is NOT safe on its own;
	// callers hold Mu.
	Store ShardStore

	// Mu guards Store and every entry inside it, including renewals on read.
	Mu sync.Mutex
}

func NewShard() *Shard {
	return &Shard{Store: NewMapStore()}
}

// New creates n shards.
func New(n int) []*Shard {
	s := make([]*Shard, n)
	for i := range s {
		s[i] = NewShard()
	}
	return s
}
