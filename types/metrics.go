package types

import "time"

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle. The cache will call these methods whenever something happens.
*/
type Metrics interface {

	// Hit is called when Get finds a live entry.
	Hit()

	// Miss is called when Get finds nothing usable for the key.
	Miss()

	// Renew is called when a read pushes an entry's expiry forward.
	Renew()

	// Populate is called after a populate callback returns. err is nil on success.
	Populate(err error)

	// Eviction is called when an entry is removed for a reason other than its ttl:
	// a forced sweep or a missing value.
	Eviction()

	// Expire is called when an entry is removed because its ttl elapsed.
	Expire()

	// Sweep is called once per sweep pass with its outcome and duration.
	Sweep(stats SweepStats, took time.Duration)
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

Callers who don't care about metrics get a working cache
without nil checks on every event.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()                            {}
func (NoopMetrics) Miss()                           {}
func (NoopMetrics) Renew()                          {}
func (NoopMetrics) Populate(error)                  {}
func (NoopMetrics) Eviction()                       {}
func (NoopMetrics) Expire()                         {}
func (NoopMetrics) Sweep(SweepStats, time.Duration) {}

