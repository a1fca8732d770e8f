package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// sampleRate is the fixed output rate for the speaker and all cues.
const sampleRate = beep.SampleRate(44100)

// Board plays the game's cues through a shared mixer. A board that
// failed to open the speaker, or was never initialized, swallows cue
// calls instead of stopping the game.
type Board struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	ready bool
	muted bool
}

// NewBoard creates a silent board. Call Init to open the speaker.
func NewBoard() *Board {
	return &Board{mixer: &beep.Mixer{}}
}

// Init opens the system speaker and starts the mixer. On failure the
// board stays silent and the error is returned for the caller's log.
func (b *Board) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.ready = true
	return nil
}

// SetMuted turns the cues off or back on.
func (b *Board) SetMuted(muted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = muted
}

// Muted reports whether the board is muted.
func (b *Board) Muted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}

// LaneShift plays a short blip acknowledging a lane change.
func (b *Board) LaneShift() {
	b.play(LaneShiftCue(sampleRate))
}

// GameOver plays a descending sweep marking the end of a run.
func (b *Board) GameOver() {
	b.play(GameOverCue(sampleRate))
}

func (b *Board) play(s beep.Streamer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready || b.muted {
		return
	}
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

// LaneShiftCue returns the blip played after a successful lane change.
func LaneShiftCue(rate beep.SampleRate) beep.Streamer {
	return NewTone(880, 45*time.Millisecond, WaveSquare, rate)
}

// GameOverCue returns the falling sweep played when a comet reaches
// the ship.
func GameOverCue(rate beep.SampleRate) beep.Streamer {
	return NewSweep(620, 110, 650*time.Millisecond, rate)
}
