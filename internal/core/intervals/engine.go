package intervals

import (
	"io"
	"sync"
	"time"

	"workouttimer/internal/core/model"

	log "github.com/sirupsen/logrus"
)

// Options contains the collaborators of an Engine.
type Options struct {
	Ticks  TickSource
	Sink   Sink
	Period time.Duration
	Logger log.FieldLogger
}

// State is a read-only copy of the engine state.
type State struct {
	WorkSeconds     int
	RestSeconds     int
	Remaining       int
	Phase           Phase
	Running         bool
	CompletedCycles int
}

// Minutes returns the whole minutes of the remaining time.
func (state State) Minutes() int {
	return state.Remaining / 60
}

// Seconds returns the seconds part of the remaining time.
func (state State) Seconds() int {
	return state.Remaining % 60
}

// Config returns the durations as an IntervalConfig.
func (state State) Config() model.IntervalConfig {
	return model.IntervalConfig{
		WorkSeconds: state.WorkSeconds,
		RestSeconds: state.RestSeconds,
	}
}

// Engine is the work/rest interval state machine.
type Engine struct {
	mu         sync.Mutex
	ticks      TickSource
	sink       Sink
	period     time.Duration
	logger     log.FieldLogger
	work       int
	rest       int
	remaining  int
	phase      Phase
	running    bool
	cycles     int
	handle     Handle
	scheduled  bool
	generation uint64
}

// New creates a stopped Engine in the work phase.
func New(config model.IntervalConfig, options Options) *Engine {
	if options.Period <= 0 {
		options.Period = time.Second
	}
	if options.Sink == nil {
		options.Sink = NopSink{}
	}
	if options.Logger == nil {
		discard := log.New()
		discard.SetOutput(io.Discard)
		options.Logger = discard
	}
	config = config.Normalize()

	return &Engine{
		ticks:     options.Ticks,
		sink:      options.Sink,
		period:    options.Period,
		logger:    options.Logger,
		work:      config.WorkSeconds,
		rest:      config.RestSeconds,
		remaining: config.WorkSeconds,
		phase:     PhaseWork,
	}
}

// Snapshot returns the current state.
func (engine *Engine) Snapshot() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// Refresh re-emits time, phase and cycle notifications without changing state.
func (engine *Engine) Refresh() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.refreshLocked()
}

// Start begins ticking. It has no effect while already running.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.running {
		return
	}
	engine.running = true
	engine.generation++
	generation := engine.generation
	if engine.ticks != nil {
		engine.handle = engine.ticks.SchedulePeriodic(func() {
			engine.tick(generation)
		}, engine.period)
		engine.scheduled = true
	}
	engine.logger.WithField("phase", engine.phase).Debug("Timer started.")
}

// Reset stops ticking and returns to the start of the work phase with zero cycles.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopLocked()
	engine.phase = PhaseWork
	engine.remaining = engine.work
	engine.cycles = 0
	engine.refreshLocked()
	engine.logger.Debug("Timer reset.")
}

// Close cancels the tick schedule without touching the rest of the state.
func (engine *Engine) Close() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopLocked()
}

// Configure updates a phase duration. Non-positive values are ignored, and the
// work duration cannot change while running. Rest changes take effect on the
// next entry into the rest phase. It reports whether the value was applied.
func (engine *Engine) Configure(field Field, seconds int) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if seconds <= 0 {
		return false
	}

	switch field {
	case FieldWork:
		if engine.running {
			return false
		}
		engine.work = seconds
		engine.remaining = seconds
		engine.emitTimeLocked()
	case FieldRest:
		engine.rest = seconds
	default:
		return false
	}

	engine.logger.WithFields(log.Fields{
		"field":   field,
		"seconds": seconds,
	}).Debug("Duration configured.")
	return true
}

// ConfigureText parses user input and applies it with Configure.
func (engine *Engine) ConfigureText(field Field, value string) bool {
	seconds, ok := model.PositiveSeconds(value)
	if !ok {
		return false
	}
	return engine.Configure(field, seconds)
}

func (engine *Engine) tick(generation uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if !engine.running || generation != engine.generation {
		return
	}

	engine.remaining--
	if engine.remaining < 0 {
		engine.switchPhaseLocked()
	}
	engine.emitTimeLocked()
}

func (engine *Engine) switchPhaseLocked() {
	engine.sink.OnPhaseAlert()
	if engine.phase == PhaseWork {
		engine.phase = PhaseRest
		engine.remaining = engine.rest
		engine.cycles++
		engine.sink.OnCycleCountChanged(engine.cycles)
	} else {
		engine.phase = PhaseWork
		engine.remaining = engine.work
	}
	engine.sink.OnPhaseChanged(engine.phase)

	engine.logger.WithFields(log.Fields{
		"phase":  engine.phase,
		"cycles": engine.cycles,
	}).Info("Phase switched.")
}

func (engine *Engine) stopLocked() {
	engine.running = false
	engine.generation++
	if engine.scheduled {
		engine.ticks.Cancel(engine.handle)
		engine.scheduled = false
	}
}

func (engine *Engine) refreshLocked() {
	engine.emitTimeLocked()
	engine.sink.OnPhaseChanged(engine.phase)
	engine.sink.OnCycleCountChanged(engine.cycles)
}

func (engine *Engine) emitTimeLocked() {
	state := engine.snapshotLocked()
	engine.sink.OnTimeUpdate(state.Minutes(), state.Seconds())
}

func (engine *Engine) snapshotLocked() State {
	return State{
		WorkSeconds:     engine.work,
		RestSeconds:     engine.rest,
		Remaining:       engine.remaining,
		Phase:           engine.phase,
		Running:         engine.running,
		CompletedCycles: engine.cycles,
	}
}
