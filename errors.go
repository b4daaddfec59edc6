package cache

import "errors"

var (
	// ErrNotFound is returned by Get when nothing is cached for the key and no
	// populate callback was given.
	ErrNotFound = errors.New("cache: not found")

	// ErrPopulateFailed wraps the error of a failed populate callback. Every caller
	// waiting on that populate receives it.
	ErrPopulateFailed = errors.New("cache: populate failed")

	// ErrInvalidConfig is returned by New for a non-positive ttl, sweep interval or
	// shard count, or an unknown policy.
	ErrInvalidConfig = errors.New("cache: invalid config")

	// ErrInvalidKey is returned when an identifier cannot be canonicalized.
	ErrInvalidKey = errors.New("cache: invalid key")

	// ErrClosed is returned by writes after Close.
	ErrClosed = errors.New("cache: closed")
)
