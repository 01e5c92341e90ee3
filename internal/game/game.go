package game

import (
	"errors"
	"fmt"
	"log/slog"
)

// Stepper is the physics host: it launches the ball and advances the world,
// returning contact-begin events in delivery order. It must not remove bodies.
type Stepper interface {
	Launch(w *World)
	Step(w *World, dt float64) []Contact
}

var ErrNoStepper = errors.New("stepper is nil")

type Banner int

const (
	BannerTapToPlay Banner = iota
	BannerYouWon
	BannerGameOver
)

func (b Banner) String() string {
	switch b {
	case BannerYouWon:
		return "YOU WON!"
	case BannerGameOver:
		return "GAME OVER"
	default:
		return "TAP TO PLAY"
	}
}

// bannerScaleDuration is the time a banner takes to grow from 0 to 1 (or back).
const bannerScaleDuration = 0.25

type Options struct {
	Effects Effects
	Stepper Stepper
	Logger  *slog.Logger
}

// Game is one game instance. Restarting means building a new Game; nothing is
// shared between instances.
type Game struct {
	world   *World
	machine *Machine
	effects Effects
	stepper Stepper
	logger  *slog.Logger

	drag paddleDrag

	banner      Banner
	bannerScale float64
	bannerGoal  float64
}

func New(w *World, opts Options) (*Game, error) {
	if w == nil {
		return nil, fmt.Errorf("new game: %w: world", ErrMissingBody)
	}
	if opts.Stepper == nil {
		return nil, fmt.Errorf("new game: %w", ErrNoStepper)
	}
	if opts.Effects == nil {
		opts.Effects = NopEffects{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	g := &Game{
		world:      w,
		effects:    opts.Effects,
		stepper:    opts.Stepper,
		logger:     opts.Logger,
		banner:     BannerTapToPlay,
		bannerGoal: 1,
	}
	g.machine = NewMachine(MachineHooks{
		Exit:     g.onExit,
		Enter:    g.onEnter,
		GameOver: g.onGameOver,
	})
	return g, nil
}

func (g *Game) World() *World        { return g.world }
func (g *Game) Mode() Mode           { return g.machine.Mode() }
func (g *Game) Outcome() Outcome     { return g.machine.Outcome() }
func (g *Game) Dragging() bool       { return g.drag.active }
func (g *Game) Banner() Banner       { return g.banner }
func (g *Game) BannerScale() float64 { return g.bannerScale }

// Tap is a pointer-down with no position (e.g. a key press).
func (g *Game) Tap() {
	g.pointerDown(Vec{}, false)
}

// PointerDown handles a pointer press at p in field coordinates.
func (g *Game) PointerDown(p Vec) {
	g.pointerDown(p, true)
}

func (g *Game) pointerDown(p Vec, located bool) {
	switch g.machine.Mode() {
	case ModeWaitingForTap:
		if err := g.machine.Start(); err != nil {
			g.logger.Error("start failed", "err", err)
			return
		}
		g.drag.begin(p.X, located)
	case ModePlaying:
		if located && g.world.BodyAt(p) == g.world.Paddle {
			g.drag.begin(p.X, true)
		}
	case ModeGameOver:
		g.logger.Info("restart requested", "transition", FlipVertical.Name)
		g.effects.PresentScene(FlipVertical)
	}
}

// PointerMove shifts the paddle by the horizontal pointer delta while a drag is active.
func (g *Game) PointerMove(p Vec) {
	if !g.drag.active || g.machine.Mode() == ModeGameOver {
		return
	}
	if g.drag.hasLast {
		g.movePaddleBy(p.X - g.drag.lastX)
	}
	g.drag.lastX = p.X
	g.drag.hasLast = true
}

func (g *Game) PointerUp() {
	g.drag.end()
}

// NudgePaddle moves the paddle by dx as a single-step drag that begins and ends
// within the call, so Dragging is unchanged. Only effective while Playing.
func (g *Game) NudgePaddle(dx float64) {
	if g.machine.Mode() != ModePlaying {
		return
	}
	g.movePaddleBy(dx)
}

// Tick advances the game by dt seconds. The physics host only runs while Playing;
// its contacts are resolved in the order it reports them.
func (g *Game) Tick(dt float64) {
	g.animateBanner(dt)
	if g.machine.Mode() != ModePlaying {
		return
	}
	for _, c := range g.stepper.Step(g.world, dt) {
		g.ResolveContact(c)
	}
}

func (g *Game) finish(outcome Outcome) {
	if err := g.machine.Finish(outcome); err != nil {
		g.logger.Error("finish failed", "outcome", outcome, "err", err)
	}
}

func (g *Game) onExit(from Mode) {
	if from == ModeWaitingForTap {
		g.bannerGoal = 0
	}
}

func (g *Game) onEnter(to Mode) {
	g.logger.Debug("mode changed", "mode", to)
	switch to {
	case ModePlaying:
		g.stepper.Launch(g.world)
	case ModeGameOver:
		g.drag.end()
		g.world.Ball.Vel = Vec{}
	}
}

func (g *Game) onGameOver(outcome Outcome) {
	g.logger.Info("game over", "outcome", outcome, "blocks_left", g.world.BlockCount())
	if outcome == OutcomeWon {
		g.banner = BannerYouWon
		g.effects.PlaySound(SoundWon)
	} else {
		g.banner = BannerGameOver
		g.effects.PlaySound(SoundLost)
	}
	g.bannerGoal = 1
}

func (g *Game) animateBanner(dt float64) {
	step := dt / bannerScaleDuration
	switch {
	case g.bannerScale < g.bannerGoal:
		g.bannerScale = min(g.bannerScale+step, g.bannerGoal)
	case g.bannerScale > g.bannerGoal:
		g.bannerScale = max(g.bannerScale-step, g.bannerGoal)
	}
}
