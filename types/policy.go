package types

import (
	"fmt"
	"strings"
)

// Policy decides which reference point the ttl is measured from.
type Policy string

const (
	// Force measures the ttl from the write. Reads never extend an entry's life.
	Force Policy = "force"

	// Renew measures the ttl from the last read. Every successful read extends life.
	Renew Policy = "renew"
)

// Valid reports whether p is one of the known policies.
func (p Policy) Valid() bool {
	return p == Force || p == Renew
}

func (p Policy) String() string { return string(p) }

// ParsePolicy accepts "force" or "renew" in any case.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown policy %q", s)
	}
	return p, nil
}
