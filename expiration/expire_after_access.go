package expiration

import (
	"time"

	"github.com/krisalay/ttl-cache/types"
)

/*
ExpireAfterAccess implements the "renew" policy, also called sliding TTL.
Every time someone reads the data, the expiration timer is pushed forward. As long as the data keeps
getting used, it stays alive. If nobody touches it for a while, it expires.
*/
type ExpireAfterAccess struct {

	// Duration defines how long the entry stays valid AFTER its last read.
	Duration time.Duration
}

func (e *ExpireAfterAccess) Policy() types.Policy { return types.Renew }

func (e *ExpireAfterAccess) TTL() time.Duration { return e.Duration }

// IsExpired checks whether the entry is expired at this moment.
func (e *ExpireAfterAccess) IsExpired(ent *types.Entry, now time.Time) bool {
	return ent.IsStale(e.Duration, now)
}

/*
OnAccess is called every time the cache successfully returns a value. This is the key part of "expire after access":
the entry's renewal time becomes now, so the full Duration starts again.
*/
func (e *ExpireAfterAccess) OnAccess(ent *types.Entry, now time.Time) bool {
	ent.Renew(now)
	return true
}
