package intervals

import (
	"fmt"
	"sync"
	"time"
)

// Phase is one leg of a work/rest cycle.
type Phase string

const (
	PhaseWork Phase = "work"
	PhaseRest Phase = "rest"
)

// Label returns the human readable phase name.
func (phase Phase) Label() string {
	if phase == PhaseRest {
		return "Rest time"
	}
	return "Work time"
}

// Field selects a configurable duration.
type Field string

const (
	FieldWork Field = "work"
	FieldRest Field = "rest"
)

// Sink receives display and audio notifications from the Engine.
// Notifications are delivered while the engine lock is held, so a Sink must
// not call back into the Engine synchronously.
type Sink interface {
	OnTimeUpdate(minutes, seconds int)
	OnPhaseChanged(phase Phase)
	OnCycleCountChanged(count int)
	OnPhaseAlert()
}

// NopSink ignores every notification. Embed it to implement part of Sink.
type NopSink struct{}

func (NopSink) OnTimeUpdate(int, int) {}
func (NopSink) OnPhaseChanged(Phase) {}
func (NopSink) OnCycleCountChanged(int) {}
func (NopSink) OnPhaseAlert() {}

type multiSink []Sink

// Sinks fans notifications out to every non-nil sink in order.
func Sinks(sinks ...Sink) Sink {
	filtered := make(multiSink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			filtered = append(filtered, sink)
		}
	}
	return filtered
}

func (sinks multiSink) OnTimeUpdate(minutes, seconds int) {
	for _, sink := range sinks {
		sink.OnTimeUpdate(minutes, seconds)
	}
}

func (sinks multiSink) OnPhaseChanged(phase Phase) {
	for _, sink := range sinks {
		sink.OnPhaseChanged(phase)
	}
}

func (sinks multiSink) OnCycleCountChanged(count int) {
	for _, sink := range sinks {
		sink.OnCycleCountChanged(count)
	}
}

func (sinks multiSink) OnPhaseAlert() {
	for _, sink := range sinks {
		sink.OnPhaseAlert()
	}
}

// FormatClock renders minutes and seconds as zero padded MM:SS.
func FormatClock(minutes, seconds int) string {
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// EventType defines the type of Engine event.
type EventType string

const (
	EventTime   EventType = "time"
	EventPhase  EventType = "phase"
	EventCycles EventType = "cycles"
	EventAlert  EventType = "alert"
)

// Event is a Sink notification captured for channel observers.
type Event struct {
	Type    EventType
	Minutes int
	Seconds int
	Phase   Phase
	Cycles  int
	At      time.Time
}

// ChannelSink converts notifications into Events on subscriber channels.
// Sends never block; an event is dropped for a subscriber whose buffer is full.
type ChannelSink struct {
	mu     sync.Mutex
	events []chan Event
	now    func() time.Time
}

// NewChannelSink creates a sink with no subscribers.
func NewChannelSink() *ChannelSink {
	return &ChannelSink{now: time.Now}
}

// Subscribe registers a new observer channel.
func (sink *ChannelSink) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	sink.mu.Lock()
	sink.events = append(sink.events, ch)
	sink.mu.Unlock()
	return ch
}

// Close closes all observer channels.
func (sink *ChannelSink) Close() {
	sink.mu.Lock()
	events := sink.events
	sink.events = nil
	sink.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (sink *ChannelSink) OnTimeUpdate(minutes, seconds int) {
	sink.emit(Event{Type: EventTime, Minutes: minutes, Seconds: seconds})
}

func (sink *ChannelSink) OnPhaseChanged(phase Phase) {
	sink.emit(Event{Type: EventPhase, Phase: phase})
}

func (sink *ChannelSink) OnCycleCountChanged(count int) {
	sink.emit(Event{Type: EventCycles, Cycles: count})
}

func (sink *ChannelSink) OnPhaseAlert() {
	sink.emit(Event{Type: EventAlert})
}

func (sink *ChannelSink) emit(event Event) {
	event.At = sink.now()
	sink.mu.Lock()
	events := append([]chan Event(nil), sink.events...)
	sink.mu.Unlock()

	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
