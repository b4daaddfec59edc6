package keys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/ttl-cache/keys"
	"github.com/krisalay/ttl-cache/types"
)

type userID struct {
	Tenant string `json:"tenant"`
	ID     int    `json:"id"`
}

func TestCanonicalizeString(t *testing.T) {
	k, err := keys.Canonicalize(types.Force, "a")
	require.NoError(t, err)
	assert.Equal(t, `force_"a"`, k)
}

func TestCanonicalizePolicyNamespaces(t *testing.T) {
	f, err := keys.Canonicalize(types.Force, 42)
	require.NoError(t, err)
	r, err := keys.Canonicalize(types.Renew, 42)
	require.NoError(t, err)

	assert.Equal(t, "force_42", f)
	assert.Equal(t, "renew_42", r)
	assert.NotEqual(t, f, r)
}

func TestCanonicalizeMapOrderIsStable(t *testing.T) {
	a := map[string]any{"b": 2, "a": 1, "c": []int{3}}
	b := map[string]any{"c": []int{3}, "a": 1, "b": 2}

	ka, err := keys.Canonicalize(types.Renew, a)
	require.NoError(t, err)
	kb, err := keys.Canonicalize(types.Renew, b)
	require.NoError(t, err)

	assert.Equal(t, ka, kb)
	assert.Equal(t, `renew_{"a":1,"b":2,"c":[3]}`, ka)
}

func TestCanonicalizeStruct(t *testing.T) {
	k, err := keys.Canonicalize(types.Force, userID{Tenant: "acme", ID: 7})
	require.NoError(t, err)
	assert.Equal(t, `force_{"tenant":"acme","id":7}`, k)
}

func TestCanonicalizeUnsupported(t *testing.T) {
	_, err := keys.Canonicalize(types.Force, make(chan int))
	require.Error(t, err)
}
