package physics

import (
	"math"
	"math/rand/v2"

	"github.com/fchimpan/bamboo-breaker/internal/game"
)

const (
	launchVX         = 10.0
	launchVY         = -18.0
	paddleSpin       = 12.0
	maxSpeed         = 40.0
	minVerticalSpeed = 6.0
)

// Stepper integrates the ball on the terminal grid and reports contact-begin
// events. It reflects the ball off the border, the paddle and blocks, but
// leaves every body in the world; removing blocks is the game's decision.
type Stepper struct {
	rng *rand.Rand

	// Bodies the ball touched during the previous step. A contact is only
	// reported when it begins.
	touching map[int]bool
}

var _ game.Stepper = (*Stepper)(nil)

func New(seed uint64) *Stepper {
	return &Stepper{
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		touching: map[int]bool{},
	}
}

// Launch gives the ball its initial velocity: upwards with a random horizontal component.
func (s *Stepper) Launch(w *game.World) {
	vx := (s.rng.Float64()*2 - 1) * launchVX
	if vx == 0 {
		vx = launchVX / 2
	}
	w.Ball.Vel = game.Vec{X: vx, Y: launchVY}
	clear(s.touching)
}

func (s *Stepper) Step(w *game.World, dt float64) []game.Contact {
	ball := w.Ball
	prev := ball.Pos

	ball.Pos.X += ball.Vel.X * dt
	ball.Pos.Y += ball.Vel.Y * dt

	var touched []*game.Body

	// Border: left, right and top walls.
	hitWall := false
	if minX := ball.HalfW; ball.Pos.X < minX {
		ball.Pos.X = minX
		ball.Vel.X = math.Abs(ball.Vel.X)
		hitWall = true
	} else if maxX := w.Width - ball.HalfW; ball.Pos.X > maxX {
		ball.Pos.X = maxX
		ball.Vel.X = -math.Abs(ball.Vel.X)
		hitWall = true
	}
	if minY := ball.HalfH; ball.Pos.Y < minY {
		ball.Pos.Y = minY
		ball.Vel.Y = math.Abs(ball.Vel.Y)
		hitWall = true
	}
	if hitWall {
		touched = append(touched, w.Border)
	}

	// Paddle: the ball crosses the paddle's top edge while descending.
	p := w.Paddle
	top := p.Pos.Y - p.HalfH
	if ball.Vel.Y > 0 && prev.Y <= top && ball.Pos.Y >= top &&
		ball.Pos.X >= p.Pos.X-p.HalfW && ball.Pos.X <= p.Pos.X+p.HalfW {
		rel := (ball.Pos.X - p.Pos.X) / p.HalfW // -1..+1
		ball.Pos.Y = top
		ball.Vel.Y = -math.Abs(ball.Vel.Y)
		ball.Vel.X += rel * paddleSpin
		touched = append(touched, p)
	}

	// Blocks: the first live block containing the ball, in ID order.
	for b := range w.LiveBlocks() {
		if !b.Contains(ball.Pos) {
			continue
		}
		bounceOff(ball, prev, b)
		touched = append(touched, b)
		break
	}

	// Bottom: the ball reached the strip below the paddle.
	if ball.Pos.Y >= w.Bottom.Pos.Y-w.Bottom.HalfH {
		touched = append(touched, w.Bottom)
	}

	limitSpeed(ball)

	var contacts []game.Contact
	now := make(map[int]bool, len(touched))
	for _, b := range touched {
		now[b.ID] = true
		if !s.touching[b.ID] {
			contacts = append(contacts, game.Contact{A: ball, B: b})
		}
	}
	s.touching = now
	return contacts
}

// bounceOff reflects the ball based on which side of b it entered from.
func bounceOff(ball *game.Body, prev game.Vec, b *game.Body) {
	left := b.Pos.X - b.HalfW
	right := b.Pos.X + b.HalfW
	top := b.Pos.Y - b.HalfH
	bottom := b.Pos.Y + b.HalfH

	const eps = 0.01
	switch {
	case prev.X < left && ball.Pos.X >= left:
		ball.Pos.X = left - eps
		ball.Vel.X = -math.Abs(ball.Vel.X)
	case prev.X >= right && ball.Pos.X < right:
		ball.Pos.X = right + eps
		ball.Vel.X = math.Abs(ball.Vel.X)
	case prev.Y < top && ball.Pos.Y >= top:
		ball.Pos.Y = top - eps
		ball.Vel.Y = -math.Abs(ball.Vel.Y)
	case prev.Y >= bottom && ball.Pos.Y < bottom:
		ball.Pos.Y = bottom + eps
		ball.Vel.Y = math.Abs(ball.Vel.Y)
	default:
		// Corner cases: flip vertical.
		ball.Vel.Y = -ball.Vel.Y
	}
}

// limitSpeed caps the ball speed and keeps it from settling into a horizontal loop.
func limitSpeed(ball *game.Body) {
	v := ball.Vel
	if v.Y != 0 && math.Abs(v.Y) < minVerticalSpeed {
		v.Y = math.Copysign(minVerticalSpeed, v.Y)
	}
	if speed := math.Hypot(v.X, v.Y); speed > maxSpeed {
		v.X *= maxSpeed / speed
		v.Y *= maxSpeed / speed
	}
	ball.Vel = v
}
