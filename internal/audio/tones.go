// Package audio provides the cometfall sound board: short synthesized
// cues streamed through the system speaker. Generators are plain
// beep.Streamer implementations, so they stay testable without a
// device.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
)

// cueVolume keeps the synthesized cues well below full scale.
const cueVolume = 0.2

// edgeDuration is the attack and release ramp length applied to every
// cue so they start and stop without clicks.
const edgeDuration = 5 * time.Millisecond

// Tone streams a fixed-frequency wave with a linear attack/release
// envelope.
type Tone struct {
	freq    float64
	wave    Wave
	rate    beep.SampleRate
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

// NewTone creates a tone streamer of the given pitch and duration.
func NewTone(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) *Tone {
	total := rate.N(duration)
	edge := rate.N(edgeDuration)
	if 2*edge > total {
		edge = total / 2
	}
	return &Tone{
		freq:    freq,
		wave:    wave,
		rate:    rate,
		total:   total,
		attack:  edge,
		release: edge,
	}
}

func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSquare:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		v *= cueVolume * envelopeGain(t.pos, t.total, t.attack, t.release)

		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *Tone) Err() error { return nil }

// Sweep streams a sine tone whose pitch glides exponentially from one
// frequency to another over its duration, with the same envelope
// shaping as Tone.
type Sweep struct {
	from    float64
	to      float64
	rate    beep.SampleRate
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

// NewSweep creates a frequency glide of the given duration.
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) *Sweep {
	total := rate.N(duration)
	edge := rate.N(edgeDuration)
	if 2*edge > total {
		edge = total / 2
	}
	return &Sweep{
		from:    from,
		to:      to,
		rate:    rate,
		total:   total,
		attack:  edge,
		release: edge,
	}
}

func (s *Sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}

		progress := float64(s.pos) / float64(s.total)
		freq := s.from * math.Pow(s.to/s.from, progress)

		v := math.Sin(2*math.Pi*s.phase) * cueVolume * envelopeGain(s.pos, s.total, s.attack, s.release)
		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *Sweep) Err() error { return nil }

// envelopeGain returns the linear attack/release gain for sample pos
// of a cue total samples long.
func envelopeGain(pos, total, attack, release int) float64 {
	if attack > 0 && pos < attack {
		return float64(pos) / float64(attack)
	}
	if release > 0 && pos >= total-release {
		return float64(total-pos) / float64(release)
	}
	return 1
}
