package platform

import (
	"sync"
	"time"

	"workouttimer/internal/core/intervals"
)

// Ticker is a wall clock TickSource backed by time.Ticker.
type Ticker struct {
	mu    sync.Mutex
	next  intervals.Handle
	stops map[intervals.Handle]chan struct{}
}

// NewTicker returns a Ticker with no running schedules.
func NewTicker() *Ticker {
	return &Ticker{stops: make(map[intervals.Handle]chan struct{})}
}

// SchedulePeriodic calls callback every period on a dedicated goroutine until
// the handle is cancelled. Callbacks of one schedule never overlap.
func (ticker *Ticker) SchedulePeriodic(callback func(), period time.Duration) intervals.Handle {
	if period <= 0 {
		period = time.Second
	}
	stopCh := make(chan struct{})

	ticker.mu.Lock()
	ticker.next++
	handle := ticker.next
	ticker.stops[handle] = stopCh
	ticker.mu.Unlock()

	go run(callback, period, stopCh)
	return handle
}

// Cancel stops a schedule. It does not wait for an in-flight callback.
func (ticker *Ticker) Cancel(handle intervals.Handle) {
	ticker.mu.Lock()
	stopCh, ok := ticker.stops[handle]
	delete(ticker.stops, handle)
	ticker.mu.Unlock()

	if ok {
		close(stopCh)
	}
}

// Stop cancels every schedule.
func (ticker *Ticker) Stop() {
	ticker.mu.Lock()
	stops := ticker.stops
	ticker.stops = make(map[intervals.Handle]chan struct{})
	ticker.mu.Unlock()

	for _, stopCh := range stops {
		close(stopCh)
	}
}

func run(callback func(), period time.Duration, stopCh <-chan struct{}) {
	timeTicker := time.NewTicker(period)
	defer timeTicker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-timeTicker.C:
			select {
			case <-stopCh:
				return
			default:
			}
			callback()
		}
	}
}

var _ intervals.TickSource = (*Ticker)(nil)
