package cmd

import (
	"context"
	"fmt"

	"github.com/fchimpan/bamboo-breaker/internal/audio"
	"github.com/fchimpan/bamboo-breaker/internal/tui"
)

func run(ctx context.Context, deps Deps, cfg config) error {
	if deps.RunTUI == nil {
		return fmt.Errorf("deps.RunTUI is nil")
	}
	if deps.NewSound == nil {
		return fmt.Errorf("deps.NewSound is nil")
	}
	if deps.OpenLog == nil {
		return fmt.Errorf("deps.OpenLog is nil")
	}

	path, err := logPath(cfg.logFile)
	if err != nil {
		return err
	}
	lw, err := deps.OpenLog(path)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	defer lw.Close()
	logger := newLogger(lw, cfg.logLevel)

	var sound SoundDevice = audio.Silent{}
	if !cfg.mute {
		dev, err := deps.NewSound()
		if err != nil {
			// Non-fatal, the game runs without sound.
			logger.Warn("audio unavailable, running muted", "err", err)
		} else {
			sound = dev
		}
	}
	defer sound.Close()

	logger.Info("starting", "blocks", cfg.blocks, "speed", cfg.speed, "seed", cfg.seed, "mute", cfg.mute)
	err = deps.RunTUI(ctx, tui.Options{
		Blocks: cfg.blocks,
		Seed:   cfg.seed,
		Speed:  cfg.speed,
		Sound:  sound,
		Logger: logger,
	})
	if err != nil {
		logger.Error("game ended with error", "err", err)
		return err
	}
	return nil
}
