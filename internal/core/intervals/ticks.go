package intervals

import "time"

// Handle identifies a periodic schedule created by a TickSource.
type Handle uint64

// TickSource drives the Engine. Real implementations wrap a wall clock ticker,
// tests inject a manual source.
type TickSource interface {
	SchedulePeriodic(callback func(), period time.Duration) Handle
	Cancel(handle Handle)
}
