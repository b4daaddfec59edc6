// This file defines how cache entries expire over time.

package expiration

import (
	"fmt"
	"time"

	"github.com/krisalay/ttl-cache/types"
)

/*
Strategy is the interface that all expiration rules must follow. Instead of hard-coding
expiration logic into the cache, we define a strategy so expiration behavior can be swapped easily.
*/
type Strategy interface {

	// Policy names the rule. It also namespaces canonical keys.
	Policy() types.Policy

	// TTL returns how long an entry lives past its reference point.
	TTL() time.Duration

	// IsExpired checks if the entry is expired at now.
	IsExpired(*types.Entry, time.Time) bool

	// OnAccess is called whenever a cache entry is read successfully.
	// It reports whether the entry's expiry moved.
	OnAccess(*types.Entry, time.Time) bool
}

// New builds the strategy for a policy.
func New(p types.Policy, ttl time.Duration) (Strategy, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	switch p {
	case types.Force:
		return &ExpireAfterWrite{Duration: ttl}, nil
	case types.Renew:
		return &ExpireAfterAccess{Duration: ttl}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q", p)
	}
}
