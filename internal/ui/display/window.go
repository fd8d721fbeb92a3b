package display

import (
	"context"
	"fmt"
	"image/color"
	"strconv"
	"sync/atomic"

	"workouttimer/internal/core/intervals"
	"workouttimer/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Controller is the part of the engine the window drives.
type Controller interface {
	Start()
	Reset()
	ConfigureText(field intervals.Field, value string) bool
	Snapshot() intervals.State
}

var (
	workColor      = color.NRGBA{R: 0xb7, G: 0x3a, B: 0x2f, A: 0xff}
	restColor      = color.NRGBA{R: 0x2e, G: 0x7d, B: 0x4f, A: 0xff}
	highlightColor = color.NRGBA{R: 0xf5, G: 0xd1, B: 0x4a, A: 0xff}
	textColor      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Window is the main timer window. It implements intervals.Sink.
type Window struct {
	window      fyne.Window
	controller  Controller
	background  *canvas.Rectangle
	clock       *canvas.Text
	phaseLabel  *canvas.Text
	cycleLabel  *canvas.Text
	workEntry   *widget.Entry
	restEntry   *widget.Entry
	startButton *widget.Button
	resetButton *widget.Button
	prefsButton *widget.Button
	flasher     *animation.Flasher
	flash       atomic.Bool
	phase       intervals.Phase
	highlighted bool
	onPrefs     func()
	onRunning   func(bool)
	do          func(func())
}

// New creates the timer window. Bind must be called before the window is used.
func New(app fyne.App, flash animation.Config) *Window {
	window := app.NewWindow("Workout Timer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	background := canvas.NewRectangle(workColor)

	clock := canvas.NewText("--:--", textColor)
	clock.Alignment = fyne.TextAlignCenter
	clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	clock.TextSize = 72

	phaseLabel := canvas.NewText(intervals.PhaseWork.Label(), textColor)
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = 24

	cycleLabel := canvas.NewText(cycleText(0), textColor)
	cycleLabel.Alignment = fyne.TextAlignCenter
	cycleLabel.TextSize = 16

	workEntry := widget.NewEntry()
	restEntry := widget.NewEntry()

	display := &Window{
		window:     window,
		background: background,
		clock:      clock,
		phaseLabel: phaseLabel,
		cycleLabel: cycleLabel,
		workEntry:  workEntry,
		restEntry:  restEntry,
		flasher:    animation.New(flash),
		phase:      intervals.PhaseWork,
		do:         fyne.Do,
	}
	display.flash.Store(true)

	display.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), display.Start)
	display.startButton.Importance = widget.HighImportance
	display.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), display.Reset)
	display.prefsButton = widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if display.onPrefs != nil {
			display.onPrefs()
		}
	})

	workEntry.OnSubmitted = func(string) { display.applyEntry(intervals.FieldWork) }
	restEntry.OnSubmitted = func(string) { display.applyEntry(intervals.FieldRest) }

	durations := container.NewGridWithColumns(2,
		widget.NewLabel("Work (seconds)"), workEntry,
		widget.NewLabel("Rest (seconds)"), restEntry,
	)
	buttons := container.NewHBox(display.startButton, display.resetButton, display.prefsButton)
	content := container.NewVBox(
		phaseLabel,
		clock,
		cycleLabel,
		container.NewPadded(durations),
		container.NewCenter(buttons),
	)

	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	window.Resize(fyne.NewSize(380, 420))

	return display
}

// Bind attaches the engine and loads its durations into the entries.
func (display *Window) Bind(controller Controller) {
	display.controller = controller
	display.syncEntries()
	display.setLocked(controller.Snapshot().Running)
}

// Show displays the window.
func (display *Window) Show() {
	display.window.Show()
	display.window.RequestFocus()
}

// SetCloseIntercept sets the window close handler.
func (display *Window) SetCloseIntercept(handler func()) {
	display.window.SetCloseIntercept(handler)
}

// Hide hides the window.
func (display *Window) Hide() {
	display.window.Hide()
}

// SetOnPreferences sets the preferences button handler.
func (display *Window) SetOnPreferences(handler func()) {
	display.onPrefs = handler
}

// SetOnRunningChanged sets a handler called after Start and Reset.
func (display *Window) SetOnRunningChanged(handler func(bool)) {
	display.onRunning = handler
}

// SetFlashEnabled toggles the phase change flash.
func (display *Window) SetFlashEnabled(enabled bool) {
	display.flash.Store(enabled)
	if !enabled {
		display.flasher.Stop()
	}
}

// Start applies pending entry edits, starts the engine and locks the inputs.
func (display *Window) Start() {
	if display.controller == nil {
		return
	}
	display.applyEntry(intervals.FieldWork)
	display.applyEntry(intervals.FieldRest)
	display.controller.Start()
	display.setLocked(true)
	display.notifyRunning(true)
}

// Reset resets the engine and unlocks the inputs.
func (display *Window) Reset() {
	if display.controller == nil {
		return
	}
	display.controller.Reset()
	display.syncEntries()
	display.setLocked(false)
	display.notifyRunning(false)
}

// Refresh reloads entries and lock state after the engine was changed elsewhere.
func (display *Window) Refresh() {
	if display.controller == nil {
		return
	}
	display.do(func() {
		display.syncEntries()
		display.setLocked(display.controller.Snapshot().Running)
	})
}

// OnTimeUpdate shows the remaining time.
func (display *Window) OnTimeUpdate(minutes, seconds int) {
	text := intervals.FormatClock(minutes, seconds)
	display.do(func() {
		display.clock.Text = text
		display.clock.Refresh()
	})
}

// OnPhaseChanged updates the phase label and colours.
func (display *Window) OnPhaseChanged(phase intervals.Phase) {
	display.do(func() {
		display.phase = phase
		display.phaseLabel.Text = phase.Label()
		display.phaseLabel.Refresh()
		display.paintBackground()
	})
}

// OnCycleCountChanged shows the completed cycle count.
func (display *Window) OnCycleCountChanged(count int) {
	display.do(func() {
		display.cycleLabel.Text = cycleText(count)
		display.cycleLabel.Refresh()
	})
}

// OnPhaseAlert flashes the window.
func (display *Window) OnPhaseAlert() {
	if !display.flash.Load() {
		return
	}
	display.flasher.Flash(context.Background(), func(on bool) {
		display.do(func() {
			display.highlighted = on
			display.paintBackground()
		})
	})
}

func (display *Window) notifyRunning(running bool) {
	if display.onRunning != nil {
		display.onRunning(running)
	}
}

func (display *Window) applyEntry(field intervals.Field) {
	if display.controller == nil {
		return
	}
	entry, current := display.entryFor(field)
	if entry.Text == strconv.Itoa(current) {
		return
	}
	if !display.controller.ConfigureText(field, entry.Text) {
		_, current = display.entryFor(field)
		entry.SetText(strconv.Itoa(current))
	}
}

func (display *Window) entryFor(field intervals.Field) (*widget.Entry, int) {
	state := display.controller.Snapshot()
	if field == intervals.FieldRest {
		return display.restEntry, state.RestSeconds
	}
	return display.workEntry, state.WorkSeconds
}

func (display *Window) syncEntries() {
	state := display.controller.Snapshot()
	display.workEntry.SetText(strconv.Itoa(state.WorkSeconds))
	display.restEntry.SetText(strconv.Itoa(state.RestSeconds))
}

func (display *Window) setLocked(locked bool) {
	widgets := []fyne.Disableable{display.startButton, display.workEntry, display.restEntry}
	for _, item := range widgets {
		if locked {
			item.Disable()
		} else {
			item.Enable()
		}
	}
}

func (display *Window) paintBackground() {
	switch {
	case display.highlighted:
		display.background.FillColor = highlightColor
	case display.phase == intervals.PhaseRest:
		display.background.FillColor = restColor
	default:
		display.background.FillColor = workColor
	}
	display.background.Refresh()
}

func cycleText(count int) string {
	return fmt.Sprintf("Cycles: %d", count)
}

var _ intervals.Sink = (*Window)(nil)
