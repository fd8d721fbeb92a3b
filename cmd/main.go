package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"workouttimer/internal/audio"
	"workouttimer/internal/core/intervals"
	"workouttimer/internal/platform"
	"workouttimer/internal/storage"
	"workouttimer/internal/ui/animation"
	"workouttimer/internal/ui/console"
	"workouttimer/internal/ui/display"
	"workouttimer/internal/ui/preferences"
	"workouttimer/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Version is set with -ldflags during release builds.
var Version = "dev"

type options struct {
	Work        int    `long:"work" description:"Work phase length in seconds"`
	Rest        int    `long:"rest" description:"Rest phase length in seconds"`
	Console     bool   `long:"console" description:"Run in the terminal instead of opening a window"`
	NoSound     bool   `long:"no-sound" description:"Disable alert sounds"`
	Debug       bool   `long:"debug" description:"Enable debug logging"`
	Config      string `long:"config" description:"Path to the settings file"`
	ShowVersion bool   `long:"version" description:"Print the version and exit"`
}

func main() {
	if err := timerMain(os.Args[1:]); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// timerMain is the real entry point, kept separate so deferred cleanups run
// before os.Exit.
func timerMain(args []string) error {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)

	opts, err := parseOptions(args)
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		return nil
	} else if err != nil {
		return errors.Errorf("Failed parsing arguments: %v", err)
	}

	if opts.Debug {
		log.SetLevel(log.DebugLevel)
		log.Debug("Setting debug mode.")
	}
	if opts.ShowVersion {
		log.Infof("Version %s", Version)
		return nil
	}

	settingsPath := opts.Config
	if settingsPath == "" {
		settingsPath, err = storage.SettingsPath(platform.AppName)
		if err != nil {
			return errors.Wrap(err, "Could not resolve settings path")
		}
	}

	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		log.WithError(err).Warn("Could not load settings, using defaults.")
	}
	settings = applyOverrides(settings, opts)
	log.WithFields(log.Fields{
		"work": settings.WorkSeconds,
		"rest": settings.RestSeconds,
		"path": settingsPath,
	}).Debug("Loaded settings.")

	ticker := platform.NewTicker()
	defer ticker.Stop()

	if opts.Console {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runConsole(ctx, settings, settingsPath, opts, ticker, os.Stdin, os.Stdout)
	}
	return runDesktop(settings, settingsPath, opts, ticker)
}

func parseOptions(args []string) (options, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	_, err := parser.ParseArgs(args)
	return opts, err
}

// applyOverrides applies command line durations; invalid values keep the file values.
func applyOverrides(settings preferences.Settings, opts options) preferences.Settings {
	if opts.Work > 0 {
		settings.WorkSeconds = opts.Work
	}
	if opts.Rest > 0 {
		settings.RestSeconds = opts.Rest
	}
	if opts.NoSound {
		settings.SoundEnabled = false
	}
	config := settings.IntervalConfig()
	settings.WorkSeconds = config.WorkSeconds
	settings.RestSeconds = config.RestSeconds
	return settings
}

// applyDurations pushes reloaded durations into the engine. The engine keeps
// its running-state guard on the work duration.
func applyDurations(engine *intervals.Engine, settings preferences.Settings) {
	config := settings.IntervalConfig()
	current := engine.Snapshot().Config()
	if config.WorkSeconds != current.WorkSeconds {
		engine.Configure(intervals.FieldWork, config.WorkSeconds)
	}
	if config.RestSeconds != current.RestSeconds {
		engine.Configure(intervals.FieldRest, config.RestSeconds)
	}
}

// soundEnabled reports whether alerts should be audible; --no-sound always wins.
func soundEnabled(settings preferences.Settings, opts options) bool {
	return settings.SoundEnabled && !opts.NoSound
}

// subscribeEventLog logs engine events at debug level until the sink is closed.
func subscribeEventLog() *intervals.ChannelSink {
	events := intervals.NewChannelSink()
	go logEvents(events.Subscribe(16), log.WithField("system", "events"))
	return events
}

func logEvents(events <-chan intervals.Event, logger log.FieldLogger) {
	for event := range events {
		entry := logger.WithField("event", event.Type)
		switch event.Type {
		case intervals.EventTime:
			entry.WithField("remaining", intervals.FormatClock(event.Minutes, event.Seconds)).Trace("Tick.")
		case intervals.EventPhase:
			entry.WithField("phase", event.Phase).Debug("Phase changed.")
		case intervals.EventCycles:
			entry.WithField("cycles", event.Cycles).Debug("Cycle count changed.")
		case intervals.EventAlert:
			entry.Debug("Phase alert.")
		}
	}
}

// consoleReload applies a reloaded settings file to a console session.
func consoleReload(engine *intervals.Engine, screen *console.Sink, opts options) func(preferences.Settings) {
	return func(updated preferences.Settings) {
		applyDurations(engine, updated)
		screen.SetBell(soundEnabled(updated, opts))
	}
}

// runConsole drives the timer from line commands. The terminal bell is the
// only alert in this mode. The timer waits for the start command.
func runConsole(ctx context.Context, settings preferences.Settings, settingsPath string, opts options, ticks intervals.TickSource, in io.Reader, out io.Writer) error {
	events := subscribeEventLog()
	defer events.Close()

	screen := console.NewSink(out, soundEnabled(settings, opts))
	engine := intervals.New(settings.IntervalConfig(), intervals.Options{
		Ticks:  ticks,
		Sink:   intervals.Sinks(screen, events),
		Logger: log.WithField("system", "engine"),
	})
	defer engine.Close()

	watcher, err := storage.NewWatcher(settingsPath, consoleReload(engine, screen, opts), log.WithField("system", "settings"))
	if err != nil {
		log.WithError(err).Warn("Settings changes will not be picked up.")
	} else {
		defer watcher.Close()
	}

	log.Info("Type s to start, q to quit.")
	engine.Refresh()
	if err := console.Run(ctx, in, out, engine); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "Could not read commands")
	}
	return nil
}

func runDesktop(settings preferences.Settings, settingsPath string, opts options, ticks intervals.TickSource) error {
	guard, err := platform.AcquireSingleInstance(platform.AppName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		log.WithError(err).Info("Another instance is running, asked it to show its window.")
		return nil
	} else if err != nil {
		return errors.Wrap(err, "single instance")
	}
	defer func() {
		_ = guard.Release()
	}()
	log.WithField("address", guard.Address()).Debug("Holding single instance lock.")

	player := audio.NewPlayer(audio.DefaultTone())
	defer player.Close()
	alert := audio.NewAlertSink(player, log.WithField("system", "audio"))
	alert.SetEnabled(soundEnabled(settings, opts))

	events := subscribeEventLog()
	defer events.Close()

	fyneApp := app.NewWithID(platform.AppID)
	fyneApp.SetIcon(theme.HistoryIcon())

	window := display.New(fyneApp, animation.DefaultConfig())
	window.SetFlashEnabled(settings.FlashEnabled)

	var prefsWindow *preferences.Window
	showPreferences := func() {
		if prefsWindow != nil {
			prefsWindow.Show()
		}
	}

	sinks := []intervals.Sink{window, alert, events}
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:        window.Show,
			OnStart:       window.Start,
			OnReset:       window.Reset,
			OnPreferences: showPreferences,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
		window.SetOnRunningChanged(trayManager.SetRunning)
		window.SetCloseIntercept(window.Hide)
		sinks = append(sinks, trayManager)
	} else {
		log.Info("System tray unsupported on this platform.")
	}

	engine := intervals.New(settings.IntervalConfig(), intervals.Options{
		Ticks:  ticks,
		Sink:   intervals.Sinks(sinks...),
		Logger: log.WithField("system", "engine"),
	})
	defer engine.Close()
	window.Bind(engine)

	service := platform.NewService()
	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		state := engine.Snapshot()
		updated.WorkSeconds = state.WorkSeconds
		updated.RestSeconds = state.RestSeconds

		if updated.Autostart != settings.Autostart {
			if err := platform.SetAutostart(service, platform.AppName, updated.Autostart); err != nil {
				log.WithError(err).Error("Could not change autostart.")
				updated.Autostart = settings.Autostart
				prefsWindow.UpdateSettings(updated)
			}
		}
		settings = updated
		alert.SetEnabled(soundEnabled(settings, opts))
		window.SetFlashEnabled(settings.FlashEnabled)

		if err := storage.SaveSettings(settingsPath, settings); err != nil {
			log.WithError(err).Error("Could not save settings.")
		}
	})
	window.SetOnPreferences(showPreferences)
	guard.OnActivate(func() {
		fyne.Do(window.Show)
	})

	watcher, err := storage.NewWatcher(settingsPath, func(updated preferences.Settings) {
		applyDurations(engine, updated)
		alert.SetEnabled(soundEnabled(updated, opts))
		window.SetFlashEnabled(updated.FlashEnabled)
		window.Refresh()
	}, log.WithField("system", "settings"))
	if err != nil {
		log.WithError(err).Warn("Settings changes will not be picked up.")
	} else {
		defer watcher.Close()
	}

	engine.Refresh()
	window.Show()
	fyneApp.Run()
	return nil
}
