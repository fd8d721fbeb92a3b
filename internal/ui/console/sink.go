// Package console renders the timer on a terminal and reads line commands.
package console

import (
	"fmt"
	"io"
	"sync"

	"workouttimer/internal/core/intervals"
)

// Sink writes a single, continuously rewritten status line.
type Sink struct {
	mu     sync.Mutex
	out    io.Writer
	clock  string
	phase  intervals.Phase
	cycles int
	bell   bool
}

// NewSink creates a console sink. With bell set, phase alerts ring the
// terminal bell.
func NewSink(out io.Writer, bell bool) *Sink {
	return &Sink{
		out:   out,
		clock: "--:--",
		phase: intervals.PhaseWork,
		bell:  bell,
	}
}

// SetBell toggles the terminal bell.
func (sink *Sink) SetBell(bell bool) {
	sink.mu.Lock()
	sink.bell = bell
	sink.mu.Unlock()
}

func (sink *Sink) OnTimeUpdate(minutes, seconds int) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.clock = intervals.FormatClock(minutes, seconds)
	sink.renderLocked()
}

func (sink *Sink) OnPhaseChanged(phase intervals.Phase) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.phase = phase
	sink.renderLocked()
}

func (sink *Sink) OnCycleCountChanged(count int) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.cycles = count
	sink.renderLocked()
}

func (sink *Sink) OnPhaseAlert() {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.bell {
		fmt.Fprint(sink.out, "\a")
	}
}

func (sink *Sink) renderLocked() {
	fmt.Fprintf(sink.out, "\r[%s] %s  cycles: %d ", sink.phase.Label(), sink.clock, sink.cycles)
}

var _ intervals.Sink = (*Sink)(nil)
