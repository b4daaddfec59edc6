package types

import "context"

/*
PopulateFunc is called when Get misses and the caller wants the cache filled.

1. Cache checks memory → key not found
2. Cache calls the PopulateFunc (once per key, however many callers are waiting)
3. The func fetches from wherever it likes (DB, remote API, computation)
4. Cache stores the result and hands it to every waiter

The cache puts no deadline on the call. Use ctx if the fetch needs one.
*/
type PopulateFunc func(ctx context.Context) (any, error)

// SweepStats summarises one sweep pass.
type SweepStats struct {
	// Deleted is how many entries the pass removed.
	Deleted int `json:"delete_count"`

	// Scanned is how many entries were present when the pass started.
	Scanned int `json:"cache_count"`
}
