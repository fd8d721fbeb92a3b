package audio

import (
	"testing"

	"github.com/pkg/errors"
)

type fakePlayback struct {
	calls int
	err   error
}

func (playback *fakePlayback) Play() error {
	playback.calls++
	return playback.err
}

func TestAlertSink_PlaysOnAlert(t *testing.T) {
	playback := &fakePlayback{}
	sink := NewAlertSink(playback, nil)

	sink.OnTimeUpdate(1, 1)
	sink.OnCycleCountChanged(1)
	sink.OnPhaseAlert()
	sink.OnPhaseAlert()

	if playback.calls != 2 {
		t.Errorf("Play() calls = %d, want 2", playback.calls)
	}
}

func TestAlertSink_Disabled(t *testing.T) {
	playback := &fakePlayback{}
	sink := NewAlertSink(playback, nil)
	sink.SetEnabled(false)

	sink.OnPhaseAlert()

	if playback.calls != 0 {
		t.Errorf("Play() calls = %d, want 0", playback.calls)
	}

	sink.SetEnabled(true)
	sink.OnPhaseAlert()
	if playback.calls != 1 {
		t.Errorf("Play() calls after re-enable = %d, want 1", playback.calls)
	}
}

func TestAlertSink_StopsAfterUnsupported(t *testing.T) {
	playback := &fakePlayback{err: ErrPlaybackUnsupported}
	sink := NewAlertSink(playback, nil)

	sink.OnPhaseAlert()
	sink.OnPhaseAlert()

	if playback.calls != 1 {
		t.Errorf("Play() calls = %d, want 1", playback.calls)
	}
}

func TestAlertSink_KeepsTryingAfterFailure(t *testing.T) {
	playback := &fakePlayback{err: errors.New("device busy")}
	sink := NewAlertSink(playback, nil)

	sink.OnPhaseAlert()
	sink.OnPhaseAlert()

	if playback.calls != 2 {
		t.Errorf("Play() calls = %d, want 2", playback.calls)
	}
}
