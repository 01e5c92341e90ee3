package game

import (
	"errors"
	"fmt"
)

type Mode int

const (
	ModeWaitingForTap Mode = iota
	ModePlaying
	ModeGameOver
)

func (m Mode) String() string {
	switch m {
	case ModeWaitingForTap:
		return "waiting-for-tap"
	case ModePlaying:
		return "playing"
	case ModeGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

type Outcome int

const (
	OutcomeUndecided Outcome = iota
	OutcomeLost
	OutcomeWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLost:
		return "lost"
	case OutcomeWon:
		return "won"
	default:
		return "undecided"
	}
}

var ErrNoOutcome = errors.New("game over needs a won or lost outcome")

// TransitionError reports a mode change that the transition table does not allow.
type TransitionError struct {
	From Mode
	To   Mode
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

// next is the only allowed successor of each mode within one game instance.
// GameOver has none: leaving it means presenting a new instance.
var next = map[Mode]Mode{
	ModeWaitingForTap: ModePlaying,
	ModePlaying:       ModeGameOver,
}

// MachineHooks run synchronously inside the transition that triggers them.
type MachineHooks struct {
	Exit     func(from Mode)
	Enter    func(to Mode)
	GameOver func(outcome Outcome)
}

// Machine holds the current game mode. It starts in WaitingForTap.
type Machine struct {
	mode    Mode
	outcome Outcome
	hooks   MachineHooks
}

func NewMachine(hooks MachineHooks) *Machine {
	return &Machine{mode: ModeWaitingForTap, hooks: hooks}
}

func (m *Machine) Mode() Mode       { return m.mode }
func (m *Machine) Outcome() Outcome { return m.outcome }

// Start moves WaitingForTap to Playing.
func (m *Machine) Start() error {
	return m.enter(ModePlaying)
}

// Finish moves Playing to GameOver and records the outcome.
func (m *Machine) Finish(outcome Outcome) error {
	if outcome == OutcomeUndecided {
		return ErrNoOutcome
	}
	if err := m.enter(ModeGameOver); err != nil {
		return err
	}
	m.outcome = outcome
	if m.hooks.GameOver != nil {
		m.hooks.GameOver(outcome)
	}
	return nil
}

func (m *Machine) enter(to Mode) error {
	if n, ok := next[m.mode]; !ok || n != to {
		return &TransitionError{From: m.mode, To: to}
	}
	from := m.mode
	if m.hooks.Exit != nil {
		m.hooks.Exit(from)
	}
	m.mode = to
	if m.hooks.Enter != nil {
		m.hooks.Enter(to)
	}
	return nil
}
