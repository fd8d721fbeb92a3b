// Package audio synthesizes the phase alert tone and plays it on the speaker.
package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// Tone describes a sine tone with an exponential gain ramp.
type Tone struct {
	Frequency  float64
	Duration   time.Duration
	StartGain  float64
	EndGain    float64
	SampleRate beep.SampleRate
}

// DefaultTone returns the 800Hz half second alert.
func DefaultTone() Tone {
	return Tone{
		Frequency:  800,
		Duration:   500 * time.Millisecond,
		StartGain:  0.3,
		EndGain:    0.01,
		SampleRate: 44100,
	}
}

// Format is the stereo format the tone is rendered in.
func (tone Tone) Format() beep.Format {
	return beep.Format{SampleRate: tone.SampleRate, NumChannels: 2, Precision: 2}
}

// Streamer renders the tone once. A tone without a sample rate or duration
// is empty.
func (tone Tone) Streamer() beep.Streamer {
	total := 0
	if tone.SampleRate > 0 && tone.Duration > 0 {
		total = tone.SampleRate.N(tone.Duration)
	}
	startGain := math.Max(tone.StartGain, 1e-4)
	ratio := math.Max(tone.EndGain, 1e-4) / startGain
	step := 2 * math.Pi * tone.Frequency / float64(tone.SampleRate)

	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if position >= total {
			return 0, false
		}
		for n < len(samples) && position < total {
			gain := startGain * math.Pow(ratio, float64(position)/float64(total))
			value := gain * math.Sin(step*float64(position))
			samples[n][0], samples[n][1] = value, value
			n++
			position++
		}
		return n, true
	})
}

// Buffer renders the whole tone into memory.
func (tone Tone) Buffer() *beep.Buffer {
	buffer := beep.NewBuffer(tone.Format())
	buffer.Append(tone.Streamer())
	return buffer
}
