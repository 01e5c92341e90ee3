package game

import (
	"testing"
	"time"
)

type recordedEffect struct {
	effect   Effect
	at       Vec
	lifetime time.Duration
}

type recorder struct {
	sounds  []Sound
	effects []recordedEffect
	scenes  []Transition
}

func (r *recorder) PlaySound(s Sound) { r.sounds = append(r.sounds, s) }
func (r *recorder) SpawnEffect(e Effect, at Vec, lifetime time.Duration) {
	r.effects = append(r.effects, recordedEffect{effect: e, at: at, lifetime: lifetime})
}
func (r *recorder) PresentScene(t Transition) { r.scenes = append(r.scenes, t) }

// scriptedStepper returns queued contact batches, one per Step.
type scriptedStepper struct {
	launched int
	batches  [][]Contact
	steps    int
}

func (s *scriptedStepper) Launch(w *World) { s.launched++ }

func (s *scriptedStepper) Step(w *World, dt float64) []Contact {
	s.steps++
	if len(s.batches) == 0 {
		return nil
	}
	b := s.batches[0]
	s.batches = s.batches[1:]
	return b
}

const (
	testWidth  = 200.0
	testHeight = 100.0
)

// newTestWorld builds a world with n blocks and a 40-wide paddle centered at x=100.
func newTestWorld(t *testing.T, n int) *World {
	t.Helper()
	bodies := []Body{
		{ID: 1, Category: CategoryBorder, Pos: Vec{X: 100, Y: 50}, HalfW: 100, HalfH: 50},
		{ID: 2, Category: CategoryBottom, Pos: Vec{X: 100, Y: 99.5}, HalfW: 100, HalfH: 0.5},
		{ID: 3, Category: CategoryPaddle, Pos: Vec{X: 100, Y: 97.5}, HalfW: 20, HalfH: 0.5},
		{ID: 4, Category: CategoryBall, Pos: Vec{X: 100, Y: 96.5}, HalfW: 0.5, HalfH: 0.5},
	}
	for i := range n {
		bodies = append(bodies, Body{
			ID:       10 + i,
			Category: CategoryBlock,
			Pos:      Vec{X: 10 + float64(i)*20, Y: 20.5},
			HalfW:    10,
			HalfH:    0.5,
		})
	}
	w, err := NewWorld(testWidth, testHeight, bodies)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func newTestGame(t *testing.T, blocks int) (*Game, *recorder, *scriptedStepper) {
	t.Helper()
	rec := &recorder{}
	st := &scriptedStepper{}
	g, err := New(newTestWorld(t, blocks), Options{Effects: rec, Stepper: st})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, rec, st
}

// playingGame returns a game that has been tapped into Playing.
func playingGame(t *testing.T, blocks int) (*Game, *recorder, *scriptedStepper) {
	t.Helper()
	g, rec, st := newTestGame(t, blocks)
	g.Tap()
	if g.Mode() != ModePlaying {
		t.Fatalf("expected playing after tap, got %s", g.Mode())
	}
	return g, rec, st
}

func contact(a, b *Body) Contact { return Contact{A: a, B: b} }

func firstBlock(t *testing.T, w *World) *Body {
	t.Helper()
	blocks := w.Blocks()
	if len(blocks) == 0 {
		t.Fatalf("no blocks left")
	}
	return blocks[0]
}
