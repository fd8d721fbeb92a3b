package audio

import (
	"io"
	"sync"

	"workouttimer/internal/core/intervals"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Playback plays the alert tone.
type Playback interface {
	Play() error
}

// AlertSink plays the alert on every phase switch. Playback failures are
// logged and never reach the engine.
type AlertSink struct {
	intervals.NopSink

	mu          sync.Mutex
	player      Playback
	enabled     bool
	logger      log.FieldLogger
	unsupported bool
}

// NewAlertSink creates an enabled alert sink.
func NewAlertSink(player Playback, logger log.FieldLogger) *AlertSink {
	if logger == nil {
		discard := log.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &AlertSink{
		player:  player,
		enabled: true,
		logger:  logger,
	}
}

// SetEnabled toggles the alert sound.
func (sink *AlertSink) SetEnabled(enabled bool) {
	sink.mu.Lock()
	sink.enabled = enabled
	sink.mu.Unlock()
}

// OnPhaseAlert plays the tone.
func (sink *AlertSink) OnPhaseAlert() {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if !sink.enabled || sink.player == nil || sink.unsupported {
		return
	}

	err := sink.player.Play()
	if err == nil {
		return
	}
	if errors.Is(err, ErrPlaybackUnsupported) {
		sink.unsupported = true
		sink.logger.Warn("No audio device available, alerts will be silent.")
		return
	}
	sink.logger.WithError(err).Error("Could not play alert.")
}
