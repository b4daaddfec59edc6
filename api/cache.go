package api

import (
	"context"

	"github.com/krisalay/ttl-cache/types"
)

/*
Cache defines the PUBLIC API of the timed cache.
This is a contract that guarantees certain behaviors, without exposing internals.
Sharding, locking, single-flight population and the sweep goroutine are all hidden
behind this interface.
*/
type Cache interface {

	/*
		Get retrieves the value cached for dataID.

		BEHAVIOR:
		-------------------
		1. If a live entry exists:
		   - Under the renew policy its expiry is pushed forward
		   - Its value is returned (cache hit)

		2. If no live entry exists and populate is nil:
		   - ErrNotFound is returned and nothing changes

		3. If no live entry exists and populate is given:
		   - populate runs once, even if many goroutines ask at the same time
		   - Its value is stored and returned to every one of them
		   - If it fails, every one of them gets ErrPopulateFailed and nothing is stored
	*/
	Get(ctx context.Context, dataID any, populate types.PopulateFunc) (any, error)

	/*
		Set stores value under dataID with a fresh entry and returns value.
		Whatever was stored before is replaced, timestamps included.
	*/
	Set(dataID any, value any) (any, error)

	/*
		Delete removes dataID.
		It reports whether an entry was actually removed.
	*/
	Delete(dataID any) (bool, error)

	// Key returns the canonical key dataID is stored under.
	Key(dataID any) (string, error)

	/*
		Sweep removes stale and valueless entries, or all of them when forced.

		One item-evicted event is emitted per removed entry, followed by one
		sweep-completed event. Passes that remove nothing emit no events.
	*/
	Sweep(forced bool) types.SweepStats

	// Start begins the periodic sweep. It returns false if it was already running.
	Start() bool

	// Stop halts the periodic sweep. It returns false if it was not running.
	// No sweep fires after Stop returns.
	Stop() bool

	// Running reports whether the periodic sweep is active.
	Running() bool

	// Len returns the number of stored entries.
	Len() int

	/*
		Close gracefully shuts down the cache.

		BEHAVIOR:
		---------
		- Stops the sweep goroutine
		- Closes the observer when it holds resources (sockets, queues)
		- Rejects further writes
	*/
	Close() error
}
