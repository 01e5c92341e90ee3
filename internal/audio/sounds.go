package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/fchimpan/bamboo-breaker/internal/game"
)

// Streamer returns a finite streamer for the named sound, or false if the name is unknown.
func Streamer(s game.Sound, sr beep.SampleRate) (beep.Streamer, bool) {
	var st beep.Streamer
	switch s {
	case game.SoundBlip:
		st = tone(sr, 880, 50*time.Millisecond)
	case game.SoundPaddleBlip:
		st = tone(sr, 440, 70*time.Millisecond)
	case game.SoundBreak:
		st = &crack{sr: sr, n: sr.N(300 * time.Millisecond), rng: rand.New(rand.NewPCG(uint64(sr), 0x5bd1e995))}
	case game.SoundWon:
		st = melody(sr, 120*time.Millisecond, 523.25, 659.25, 783.99, 1046.5)
	case game.SoundLost:
		st = melody(sr, 180*time.Millisecond, 392, 329.63, 261.63)
	default:
		return nil, false
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: -1.5}, true
}

func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	n := sr.N(d)
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		// Only fails for frequencies above Nyquist.
		return beep.Take(n, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
			clear(samples)
			return len(samples), true
		}))
	}
	return &fade{s: beep.Take(n, sine), n: n}
}

func melody(sr beep.SampleRate, step time.Duration, freqs ...float64) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		notes = append(notes, tone(sr, f, step))
	}
	return beep.Seq(notes...)
}

// fade applies a linear fade-out over n samples so tones end without a click.
type fade struct {
	s   beep.Streamer
	n   int
	pos int
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1 - float64(f.pos)/float64(f.n)
		if g < 0 {
			g = 0
		}
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

// crack is a short burst of decaying noise over a low rumble.
type crack struct {
	sr  beep.SampleRate
	n   int
	pos int
	rng *rand.Rand
}

func (c *crack) Stream(samples [][2]float64) (int, bool) {
	if c.pos >= c.n {
		return 0, false
	}
	i := 0
	for ; i < len(samples) && c.pos < c.n; i++ {
		t := float64(c.pos) / float64(c.sr)
		env := math.Exp(-t * 10)
		noise := c.rng.Float64()*2 - 1
		rumble := 0.3 * math.Sin(2*math.Pi*90*t)
		v := env * (0.5*noise + rumble)
		samples[i][0] = v
		samples[i][1] = v
		c.pos++
	}
	return i, true
}

func (c *crack) Err() error { return nil }
