package tray

import (
	"fmt"

	"workouttimer/internal/core/intervals"

	"fyne.io/fyne/v2"
)

// TrayApp is the system tray capability of a desktop fyne app.
type TrayApp interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStart       func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state. It implements intervals.Sink to keep the
// status line current.
type Manager struct {
	intervals.NopSink

	app        TrayApp
	menu       *fyne.Menu
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	resetItem  *fyne.MenuItem
	callbacks  Callbacks
	phase      intervals.Phase
	clock      string
	running    bool
	do         func(func())
}

// New creates a tray manager with the provided callbacks.
func New(app TrayApp, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		phase:     intervals.PhaseWork,
		clock:     "--:--",
		do:        fyne.Do,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	show := fyne.NewMenuItem("Show timer", func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})
	manager.startItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnStart != nil {
			manager.callbacks.OnStart()
		}
	})
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})
	preferences := fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})
	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu("Workout Timer",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		show,
		manager.startItem,
		manager.resetItem,
		preferences,
		fyne.NewMenuItemSeparator(),
		quit,
	)
	manager.refreshStatus()
	return manager
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// SetRunning toggles the Start item.
func (manager *Manager) SetRunning(running bool) {
	manager.running = running
	manager.startItem.Disabled = running
	manager.refreshStatus()
}

// OnTimeUpdate updates the remaining time in the status line.
func (manager *Manager) OnTimeUpdate(minutes, seconds int) {
	clock := intervals.FormatClock(minutes, seconds)
	manager.do(func() {
		manager.clock = clock
		manager.refreshStatus()
	})
}

// OnPhaseChanged updates the phase in the status line.
func (manager *Manager) OnPhaseChanged(phase intervals.Phase) {
	manager.do(func() {
		manager.phase = phase
		manager.refreshStatus()
	})
}

func (manager *Manager) refreshStatus() {
	status := fmt.Sprintf("%s %s", manager.phase.Label(), manager.clock)
	if !manager.running {
		status += " (stopped)"
	}
	manager.statusItem.Label = status
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}
