package tui

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fchimpan/bamboo-breaker/internal/game"
	"github.com/fchimpan/bamboo-breaker/internal/layout"
	"github.com/fchimpan/bamboo-breaker/internal/physics"
)

// SoundPlayer plays named sounds. Implementations must not block.
type SoundPlayer interface {
	PlaySound(s game.Sound)
}

type Options struct {
	Blocks int
	Seed   uint64
	Speed  float64
	Sound  SoundPlayer
	Logger *slog.Logger
}

// Model hosts one game at a time: it turns bubbletea messages into taps,
// pointer events and fixed-step ticks, and implements game.Effects.
type Model struct {
	blocks int
	seed   uint64
	speed  float64
	sound  SoundPlayer
	logger *slog.Logger

	keys keyMap
	help help.Model

	lastTick time.Time
	acc      float64

	rng    *rand.Rand
	bursts []burst
	trail  ballTrail

	ready bool
	w     int
	h     int

	fieldW int
	fieldH int

	game *game.Game

	// Scene presentation requested by the game during the current update.
	pending *game.Transition
	flip    flipTransition

	err error

	viewBuf bytes.Buffer
	grid    cellGrid
}

var _ game.Effects = (*Model)(nil)

const (
	minSpeed = 0.25
	maxSpeed = 5.0

	// Cells the paddle moves per key press.
	nudgeCells = 3.0
)

func NewModel(opts Options) *Model {
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	if opts.Blocks <= 0 {
		opts.Blocks = layout.DefaultBlocks
	}
	if opts.Sound == nil {
		opts.Sound = nopSound{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Model{
		blocks: opts.Blocks,
		seed:   opts.Seed,
		speed:  opts.Speed,
		sound:  opts.Sound,
		logger: opts.Logger,
		keys:   newKeyMap(),
		help:   help.New(),
		rng:    rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}
}

type nopSound struct{}

func (nopSound) PlaySound(game.Sound) {}

// Err returns the setup fault that ended the program, if any.
func (m *Model) Err() error { return m.err }

// Game returns the current game instance (nil until the first window size is known).
func (m *Model) Game() *game.Game { return m.game }

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		d = time.Second / 60
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tickCmd(time.Second / 60)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.err != nil {
		return m, tea.Quit
	}
	if m.pending != nil {
		m.present(*m.pending)
		m.pending = nil
		if m.err != nil {
			return m, tea.Quit
		}
	}
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.h = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return nil
	case tickMsg:
		now := time.Time(msg)
		if m.lastTick.IsZero() {
			m.lastTick = now
			return tickCmd(m.frameDuration())
		}

		// Measure real elapsed time, but clamp to avoid a huge "warp" when the app lags.
		dt := now.Sub(m.lastTick).Seconds()
		m.lastTick = now
		dt = min(max(dt, 0), 0.05)

		m.step(dt)
		return tickCmd(m.frameDuration())
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed+0.1, maxSpeed)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed-0.1, minSpeed)
		case !m.live():
		case key.Matches(msg, m.keys.Tap):
			m.game.Tap()
		case key.Matches(msg, m.keys.Left):
			m.game.NudgePaddle(-nudgeCells)
		case key.Matches(msg, m.keys.Right):
			m.game.NudgePaddle(nudgeCells)
		}
		return nil
	case tea.MouseMsg:
		if !m.live() {
			return nil
		}
		p := m.fieldPoint(msg.X, msg.Y)
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.game.PointerDown(p)
			}
		case tea.MouseActionMotion:
			m.game.PointerMove(p)
		case tea.MouseActionRelease:
			m.game.PointerUp()
		}
		return nil
	default:
		return nil
	}
}

// live reports whether input should reach the game.
func (m *Model) live() bool {
	return m.ready && m.game != nil && !m.flip.active
}

// step advances effects and the transition by real time, and the game by
// fixed steps scaled by the speed multiplier.
func (m *Model) step(dt float64) {
	m.updateBursts(dt)
	m.flip.update(dt)
	if !m.live() {
		return
	}

	m.acc += dt * m.speed
	const fixed = 1.0 / 120.0
	const maxStepsPerTick = 10

	steps := 0
	for m.acc >= fixed && steps < maxStepsPerTick {
		m.game.Tick(fixed)
		m.acc -= fixed
		steps++
	}
	// If we are too far behind, drop the remainder to keep the app responsive.
	if steps >= maxStepsPerTick {
		m.acc = math.Mod(m.acc, fixed)
	}

	if m.game.Mode() == game.ModePlaying {
		m.trail.push(m.game.World().Ball.Pos)
	} else {
		m.trail.reset()
	}
}

func (m *Model) frameDuration() time.Duration {
	if m.ready && m.game != nil && m.game.Mode() == game.ModeGameOver &&
		!m.flip.active && len(m.bursts) == 0 && m.game.BannerScale() >= 1 {
		return time.Second / 15
	}
	return time.Second / 60
}

// resize fits the field to the terminal. A game that has left WaitingForTap
// keeps its world; the new size applies from the next presented game.
func (m *Model) resize() {
	m.ready = true
	if m.game != nil && m.game.Mode() != game.ModeWaitingForTap {
		return
	}
	w, h := m.fieldW, m.fieldH
	m.fitField()
	if m.game != nil && w == m.fieldW && h == m.fieldH {
		return
	}
	m.newGame()
}

func (m *Model) fitField() {
	// Borders (2 cols) plus a column of padding each side.
	m.fieldW = max(m.w-4, layout.MinWidth)
	// HUD, info, top and bottom frame, help.
	m.fieldH = max(m.h-5, layout.MinHeight)
}

func (m *Model) newGame() {
	world, err := layout.Build(layout.Config{
		Width:  m.fieldW,
		Height: m.fieldH,
		Blocks: m.blocks,
	})
	if err != nil {
		m.err = fmt.Errorf("failed to lay out the field: %w", err)
		return
	}
	g, err := game.New(world, game.Options{
		Effects: m,
		Stepper: physics.New(m.seed),
		Logger:  m.logger,
	})
	if err != nil {
		m.err = fmt.Errorf("failed to start a game: %w", err)
		return
	}
	m.game = g
	m.lastTick = time.Time{}
	m.acc = 0
	m.bursts = nil
	m.trail.reset()
	m.logger.Debug("new game", "width", m.fieldW, "height", m.fieldH, "blocks", world.BlockCount(), "seed", m.seed)
}

// present replaces the current game with a fresh one and plays the transition.
func (m *Model) present(t game.Transition) {
	// Change seed so each game launches differently.
	m.seed++
	m.fitField()
	m.newGame()
	m.flip.start(t.Duration)
}

func (m *Model) PlaySound(s game.Sound) {
	m.sound.PlaySound(s)
}

func (m *Model) SpawnEffect(e game.Effect, at game.Vec, lifetime time.Duration) {
	switch e {
	case game.EffectBrokenPlatform:
		m.spawnBurst(at, lifetime)
	default:
		m.logger.Warn("unknown effect", "effect", e)
	}
}

func (m *Model) PresentScene(t game.Transition) {
	if m.pending == nil && !m.flip.active {
		m.pending = &t
	}
}

// fieldOrigin returns the screen cell of field cell (0,0).
func (m *Model) fieldOrigin() (x, y int) {
	contentW := m.fieldW + 2
	leftPad := 0
	if m.w > contentW {
		leftPad = (m.w - contentW) / 2
	}
	// HUD(1) + info(1) + frame(1) + field + frame(1) + help(1)
	contentH := 3 + m.fieldH + 2
	topPad := 0
	if m.h > contentH {
		topPad = (m.h - contentH) / 2
	}
	return leftPad + 1, topPad + 3
}

// fieldPoint maps a screen cell to the center of the matching field cell.
func (m *Model) fieldPoint(sx, sy int) game.Vec {
	ox, oy := m.fieldOrigin()
	return game.Vec{X: float64(sx-ox) + 0.5, Y: float64(sy-oy) + 0.5}
}

type flipTransition struct {
	active   bool
	elapsed  float64
	duration float64
}

func (f *flipTransition) start(d time.Duration) {
	f.active = d > 0
	f.elapsed = 0
	f.duration = d.Seconds()
}

func (f *flipTransition) update(dt float64) {
	if !f.active {
		return
	}
	f.elapsed += dt
	if f.elapsed >= f.duration {
		*f = flipTransition{}
	}
}

// visibleHalf is the fraction (0..1) of the field's half-height revealed so far.
func (f *flipTransition) visibleHalf() float64 {
	if !f.active || f.duration <= 0 {
		return 1
	}
	return min(f.elapsed/f.duration, 1)
}

type shard struct {
	X    float64
	Y    float64
	VX   float64
	VY   float64
	Cell string
}

type burst struct {
	ttl    float64
	shards []shard
}

const (
	shardsPerBurst = 10
	shardGravity   = 30.0
)

func (m *Model) spawnBurst(at game.Vec, lifetime time.Duration) {
	b := burst{ttl: lifetime.Seconds(), shards: make([]shard, 0, shardsPerBurst)}
	for range shardsPerBurst {
		ci := m.rng.IntN(len(shardChars))
		co := m.rng.IntN(len(shardColors))
		b.shards = append(b.shards, shard{
			X:    at.X + (m.rng.Float64()*2-1)*2,
			Y:    at.Y,
			VX:   (m.rng.Float64()*2 - 1) * 12,
			VY:   -m.rng.Float64() * 10,
			Cell: shardCells[ci][co],
		})
	}
	m.bursts = append(m.bursts, b)
}

func (m *Model) updateBursts(dt float64) {
	out := m.bursts[:0]
	for _, b := range m.bursts {
		b.ttl -= dt
		if b.ttl <= 0 {
			continue
		}
		for i := range b.shards {
			s := &b.shards[i]
			s.VY += shardGravity * dt
			s.X += s.VX * dt
			s.Y += s.VY * dt
		}
		out = append(out, b)
	}
	m.bursts = out
}

const trailLen = 8

type trailCell struct{ x, y int }

// ballTrail is a ring of the last cells the ball passed through, newest last.
type ballTrail struct {
	cells [trailLen]trailCell
	head  int
	n     int
}

func (t *ballTrail) push(p game.Vec) {
	c := trailCell{x: int(math.Floor(p.X)), y: int(math.Floor(p.Y))}
	if t.n > 0 && t.at(0) == c {
		return
	}
	t.cells[t.head] = c
	t.head = (t.head + 1) % trailLen
	t.n = min(t.n+1, trailLen)
}

// at returns the cell age steps behind the newest one.
func (t *ballTrail) at(age int) trailCell {
	return t.cells[(t.head-1-age+2*trailLen)%trailLen]
}

func (t *ballTrail) reset() { *t = ballTrail{} }
