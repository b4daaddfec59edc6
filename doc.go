// Package cache is a time-bounded, in-process key/value cache.
//
// Values are stored under a canonical key derived from any JSON-encodable
// identifier. Entries expire a fixed time after they were written (types.Force)
// or a fixed time after they were last read (types.Renew). A background sweep
// removes expired entries and reports each removal to a notify.Observer.
//
// Get with a populate callback is single-flight per key: however many goroutines
// miss on the same key at once, the callback runs once and they all share its result.
package cache
