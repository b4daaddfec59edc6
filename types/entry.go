package types

import "time"

/*
Entry is one cached value plus the two timestamps the expiration rules look at.

- createdAt is fixed when the entry is built
- lastRenewedAt starts equal to createdAt and only moves forward through Renew

The value itself never changes after construction. Writing a new value for a key
always produces a new Entry.

Entry is not safe for concurrent use on its own. The cache only touches an entry
while holding the lock of the shard that owns it.
*/
type Entry struct {
	value         any
	createdAt     time.Time
	lastRenewedAt time.Time
}

// NewEntry wraps value with both timestamps set to now.
func NewEntry(value any, now time.Time) *Entry {
	return &Entry{
		value:         value,
		createdAt:     now,
		lastRenewedAt: now,
	}
}

// Value returns the stored payload.
func (e *Entry) Value() any { return e.value }

// CreatedAt returns when the entry was built.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

// LastRenewedAt returns the last time the entry was renewed (or created).
func (e *Entry) LastRenewedAt() time.Time { return e.lastRenewedAt }

// Valid reports whether the entry carries a value at all.
// Entries without one are swept like expired ones.
func (e *Entry) Valid() bool {
	return e != nil && e.value != nil
}

/*
IsStale reports whether ttl has fully elapsed since the last renewal.

The boundary counts as stale: an entry written at T with a one minute ttl is
stale at exactly T+1m.
*/
func (e *Entry) IsStale(ttl time.Duration, now time.Time) bool {
	return now.Sub(e.lastRenewedAt) >= ttl
}

// Renew moves lastRenewedAt to now. It never goes back before createdAt.
func (e *Entry) Renew(now time.Time) {
	if now.Before(e.createdAt) {
		now = e.createdAt
	}
	e.lastRenewedAt = now
}
