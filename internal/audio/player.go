package audio

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

// ErrPlaybackUnsupported indicates the speaker could not be opened.
var ErrPlaybackUnsupported = errors.New("audio playback unsupported")

// Player plays a prerendered tone on the default output device.
type Player struct {
	mu     sync.Mutex
	buffer *beep.Buffer

	initSpeaker  func(beep.SampleRate, int) error
	play         func(...beep.Streamer)
	closeSpeaker func()
	ready        bool
	initErr      error
}

// NewPlayer renders tone and returns a Player for it. The speaker is opened
// on the first Play.
func NewPlayer(tone Tone) *Player {
	return &Player{
		buffer:       tone.Buffer(),
		initSpeaker:  speaker.Init,
		play:         speaker.Play,
		closeSpeaker: speaker.Close,
	}
}

// Play queues the tone and returns without waiting for it to finish.
func (player *Player) Play() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if err := player.initLocked(); err != nil {
		return err
	}

	player.play(player.buffer.Streamer(0, player.buffer.Len()))
	return nil
}

// Close releases the speaker.
func (player *Player) Close() {
	player.mu.Lock()
	defer player.mu.Unlock()
	if !player.ready {
		return
	}
	player.closeSpeaker()
	player.ready = false
}

func (player *Player) initLocked() error {
	if player.ready {
		return nil
	}
	if player.initErr != nil {
		return player.initErr
	}
	rate := player.buffer.Format().SampleRate
	if err := player.initSpeaker(rate, rate.N(time.Second/10)); err != nil {
		player.initErr = errors.Wrapf(ErrPlaybackUnsupported, "init speaker: %v", err)
		return player.initErr
	}
	player.ready = true
	return nil
}
