package audio

import (
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"
)

func drain(streamer beep.Streamer) [][2]float64 {
	var out [][2]float64
	chunk := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(chunk)
		out = append(out, chunk[:n]...)
		if !ok {
			return out
		}
	}
}

func TestDefaultTone(t *testing.T) {
	tone := DefaultTone()
	if tone.Frequency != 800 || tone.Duration != 500*time.Millisecond || tone.SampleRate != 44100 {
		t.Errorf("DefaultTone() = %+v", tone)
	}
	if format := tone.Format(); format.NumChannels != 2 || format.SampleRate != 44100 {
		t.Errorf("Format() = %+v", format)
	}
}

func TestStreamer_LengthAndDecay(t *testing.T) {
	samples := drain(DefaultTone().Streamer())
	if len(samples) != 22050 {
		t.Fatalf("len(samples) = %d, want 22050", len(samples))
	}

	peak := func(from, to int) float64 {
		var max float64
		for _, sample := range samples[from:to] {
			if sample[0] != sample[1] {
				t.Fatalf("channels differ: %v", sample)
			}
			if v := math.Abs(sample[0]); v > max {
				max = v
			}
		}
		return max
	}
	head := peak(0, 1000)
	tail := peak(len(samples)-1000, len(samples))
	if head <= tail*5 {
		t.Errorf("tone does not decay: head peak %.3f, tail peak %.3f", head, tail)
	}
	if head > 0.31 {
		t.Errorf("head peak %.3f exceeds start gain", head)
	}
}

func TestStreamer_InvalidTone(t *testing.T) {
	if got := drain((Tone{}).Streamer()); len(got) != 0 {
		t.Errorf("zero tone rendered %d samples, want 0", len(got))
	}
}

func TestBuffer(t *testing.T) {
	tone := Tone{Frequency: 440, Duration: 10 * time.Millisecond, StartGain: 0.5, EndGain: 0.1, SampleRate: 8000}
	buffer := tone.Buffer()
	if buffer.Len() != 80 {
		t.Errorf("Len() = %d, want 80", buffer.Len())
	}
	if got := len(drain(buffer.Streamer(0, buffer.Len()))); got != 80 {
		t.Errorf("buffer streamed %d samples, want 80", got)
	}
}
