package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains flash timing values.
type Config struct {
	Pulses int
	On     time.Duration
	Off    time.Duration
}

// DefaultConfig returns three quick pulses.
func DefaultConfig() Config {
	return Config{
		Pulses: 3,
		On:     150 * time.Millisecond,
		Off:    150 * time.Millisecond,
	}
}

// Flasher runs highlight pulses. Starting a new flash cancels the running one.
type Flasher struct {
	mu     sync.Mutex
	config Config
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a Flasher.
func New(config Config) *Flasher {
	if config.Pulses <= 0 {
		config.Pulses = 1
	}
	return &Flasher{config: config}
}

// Flash calls set(true) and set(false) once per pulse on its own goroutine.
// The last call is always set(false), also when the flash is cancelled.
func (flasher *Flasher) Flash(ctx context.Context, set func(bool)) {
	flasher.mu.Lock()
	flasher.stopLocked()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	flasher.cancel = cancel
	flasher.done = done
	flasher.mu.Unlock()

	go func() {
		defer close(done)
		defer set(false)
		for i := 0; i < flasher.config.Pulses; i++ {
			set(true)
			if !sleepWithContext(runCtx, flasher.config.On) {
				return
			}
			set(false)
			if !sleepWithContext(runCtx, flasher.config.Off) {
				return
			}
		}
	}()
}

// Stop cancels the running flash and waits for it to restore the highlight.
func (flasher *Flasher) Stop() {
	flasher.mu.Lock()
	defer flasher.mu.Unlock()
	flasher.stopLocked()
}

func (flasher *Flasher) stopLocked() {
	if flasher.cancel == nil {
		return
	}
	flasher.cancel()
	<-flasher.done
	flasher.cancel = nil
	flasher.done = nil
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
