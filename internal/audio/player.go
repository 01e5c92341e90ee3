package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/fchimpan/bamboo-breaker/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// output is the process-wide audio device.
type output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Clear()
	Close()
}

// speakerOutput forwards to beep's speaker package.
type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, n int) error { return speaker.Init(sr, n) }
func (speakerOutput) Play(s ...beep.Streamer)              { speaker.Play(s...) }
func (speakerOutput) Lock()                                { speaker.Lock() }
func (speakerOutput) Unlock()                              { speaker.Unlock() }
func (speakerOutput) Clear()                               { speaker.Clear() }
func (speakerOutput) Close()                               { speaker.Close() }

// Player plays the game's named sounds through the system speaker.
// Sounds are synthesized on demand; there are no asset files.
type Player struct {
	mu          sync.Mutex
	out         output
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return newPlayer(speakerOutput{})
}

func newPlayer(out output) *Player {
	return &Player{out: out, mixer: &beep.Mixer{}}
}

// Init opens the speaker. Until it succeeds, PlaySound is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := p.out.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return err
	}
	p.out.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) PlaySound(s game.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	st, ok := Streamer(s, sampleRate)
	if !ok {
		return
	}
	p.out.Lock()
	p.mixer.Add(st)
	p.out.Unlock()
}

// Close silences everything still playing and releases the device.
// A closed Player can be initialized again.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.out.Clear()
	p.out.Close()
	p.mixer = &beep.Mixer{}
	p.initialized = false
}

// Silent discards every sound. Used with --mute or when no audio device is available.
type Silent struct{}

func (Silent) PlaySound(game.Sound) {}
func (Silent) Close()               {}
