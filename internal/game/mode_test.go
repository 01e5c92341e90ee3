package game

import (
	"errors"
	"testing"
)

func TestMachine_FollowsTransitionTable(t *testing.T) {
	t.Parallel()

	var entered []Mode
	var outcomes []Outcome
	m := NewMachine(MachineHooks{
		Enter:    func(to Mode) { entered = append(entered, to) },
		GameOver: func(o Outcome) { outcomes = append(outcomes, o) },
	})
	if m.Mode() != ModeWaitingForTap {
		t.Fatalf("initial mode = %s", m.Mode())
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Finish(OutcomeWon); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if m.Mode() != ModeGameOver || m.Outcome() != OutcomeWon {
		t.Fatalf("got %s/%s, want game-over/won", m.Mode(), m.Outcome())
	}
	if len(entered) != 2 || entered[0] != ModePlaying || entered[1] != ModeGameOver {
		t.Fatalf("entered = %v", entered)
	}
	if len(outcomes) != 1 || outcomes[0] != OutcomeWon {
		t.Fatalf("game over hook calls = %v", outcomes)
	}
}

func TestMachine_RejectsInvalidTransitions(t *testing.T) {
	t.Parallel()

	lose := func(m *Machine) {
		_ = m.Start()
		_ = m.Finish(OutcomeLost)
	}

	tests := []struct {
		name  string
		setup func(m *Machine)
		try   func(m *Machine) error
		mode  Mode
	}{
		{
			name: "finish while waiting",
			try:  func(m *Machine) error { return m.Finish(OutcomeLost) },
			mode: ModeWaitingForTap,
		},
		{
			name:  "start twice",
			setup: func(m *Machine) { _ = m.Start() },
			try:   func(m *Machine) error { return m.Start() },
			mode:  ModePlaying,
		},
		{
			name:  "finish twice",
			setup: lose,
			try:   func(m *Machine) error { return m.Finish(OutcomeWon) },
			mode:  ModeGameOver,
		},
		{
			name:  "start after game over",
			setup: lose,
			try:   func(m *Machine) error { return m.Start() },
			mode:  ModeGameOver,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewMachine(MachineHooks{})
			if tt.setup != nil {
				tt.setup(m)
			}
			err := tt.try(m)
			var te *TransitionError
			if !errors.As(err, &te) {
				t.Fatalf("expected *TransitionError, got %v", err)
			}
			if m.Mode() != tt.mode {
				t.Fatalf("mode changed to %s, want %s", m.Mode(), tt.mode)
			}
		})
	}
}

func TestMachine_OutcomeSetOnce(t *testing.T) {
	t.Parallel()

	m := NewMachine(MachineHooks{})
	_ = m.Start()
	if err := m.Finish(OutcomeUndecided); !errors.Is(err, ErrNoOutcome) {
		t.Fatalf("err = %v, want ErrNoOutcome", err)
	}
	if m.Mode() != ModePlaying {
		t.Fatalf("mode = %s, want playing", m.Mode())
	}
	if err := m.Finish(OutcomeLost); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	_ = m.Finish(OutcomeWon)
	if m.Outcome() != OutcomeLost {
		t.Fatalf("outcome = %s, want lost", m.Outcome())
	}
}
