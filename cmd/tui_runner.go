package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fchimpan/bamboo-breaker/internal/audio"
	"github.com/fchimpan/bamboo-breaker/internal/tui"
)

func defaultRunTUI(ctx context.Context, opts tui.Options) error {
	m := tui.NewModel(opts)
	p := tea.NewProgram(
		m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.Err()
}

func defaultNewSound() (SoundDevice, error) {
	p := audio.NewPlayer()
	if err := p.Init(); err != nil {
		return nil, err
	}
	return p, nil
}
