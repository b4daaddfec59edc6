// Package keys turns caller supplied identifiers into the string keys the cache stores under.
//
// A canonical key is "{policy}_{json}". The JSON encoding sorts map keys and writes struct
// fields in declaration order, so structurally equal identifiers always produce the same key.
// The policy prefix keeps entries written under one policy out of reach of the other.
package keys

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/krisalay/ttl-cache/types"
)

// Canonicalize returns the canonical key for dataID under policy p.
func Canonicalize(p types.Policy, dataID any) (string, error) {
	b, err := json.Marshal(dataID)
	if err != nil {
		return "", fmt.Errorf("serialize %T: %w", dataID, err)
	}
	return p.String() + "_" + string(b), nil
}
