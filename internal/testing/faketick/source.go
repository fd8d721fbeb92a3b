// Package faketick provides a manually driven TickSource for tests.
package faketick

import (
	"sort"
	"sync"
	"time"

	"workouttimer/internal/core/intervals"
)

type schedule struct {
	callback func()
	period   time.Duration
}

// Source delivers ticks only when Tick is called.
type Source struct {
	mu        sync.Mutex
	next      intervals.Handle
	schedules map[intervals.Handle]schedule
	cancelled int
}

// New returns a Source with no active schedules.
func New() *Source {
	return &Source{schedules: make(map[intervals.Handle]schedule)}
}

// SchedulePeriodic registers callback and returns its handle.
func (source *Source) SchedulePeriodic(callback func(), period time.Duration) intervals.Handle {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.next++
	source.schedules[source.next] = schedule{callback: callback, period: period}
	return source.next
}

// Cancel removes a schedule. Unknown handles are ignored.
func (source *Source) Cancel(handle intervals.Handle) {
	source.mu.Lock()
	defer source.mu.Unlock()
	if _, ok := source.schedules[handle]; ok {
		delete(source.schedules, handle)
		source.cancelled++
	}
}

// Tick fires every active schedule n times, in handle order.
func (source *Source) Tick(n int) {
	for i := 0; i < n; i++ {
		for _, callback := range source.callbacks() {
			callback()
		}
	}
}

// Active returns the number of live schedules.
func (source *Source) Active() int {
	source.mu.Lock()
	defer source.mu.Unlock()
	return len(source.schedules)
}

// Cancelled returns how many schedules have been cancelled.
func (source *Source) Cancelled() int {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.cancelled
}

// Periods returns the period of every live schedule.
func (source *Source) Periods() []time.Duration {
	source.mu.Lock()
	defer source.mu.Unlock()
	handles := source.sortedHandlesLocked()
	periods := make([]time.Duration, 0, len(handles))
	for _, handle := range handles {
		periods = append(periods, source.schedules[handle].period)
	}
	return periods
}

// Capture returns the callback of a live schedule so tests can deliver a tick
// late, after the schedule was cancelled.
func (source *Source) Capture(handle intervals.Handle) func() {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.schedules[handle].callback
}

func (source *Source) callbacks() []func() {
	source.mu.Lock()
	defer source.mu.Unlock()
	handles := source.sortedHandlesLocked()
	callbacks := make([]func(), 0, len(handles))
	for _, handle := range handles {
		callbacks = append(callbacks, source.schedules[handle].callback)
	}
	return callbacks
}

func (source *Source) sortedHandlesLocked() []intervals.Handle {
	handles := make([]intervals.Handle, 0, len(source.schedules))
	for handle := range source.schedules {
		handles = append(handles, handle)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	return handles
}

var _ intervals.TickSource = (*Source)(nil)
