package expiration

import (
	"time"

	"github.com/krisalay/ttl-cache/types"
)

// ExpireAfterWrite implements the "force" policy: an entry lives for Duration after it
// was written, however often it is read.
type ExpireAfterWrite struct {
	Duration time.Duration
}

func (e *ExpireAfterWrite) Policy() types.Policy { return types.Force }

func (e *ExpireAfterWrite) TTL() time.Duration { return e.Duration }

// IsExpired measures from the last renewal. Nothing renews under this policy, so that is
// the creation time.
func (e *ExpireAfterWrite) IsExpired(ent *types.Entry, now time.Time) bool {
	return ent.IsStale(e.Duration, now)
}

// OnAccess leaves the entry alone.
func (e *ExpireAfterWrite) OnAccess(*types.Entry, time.Time) bool { return false }
