package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fchimpan/bamboo-breaker/internal/layout"
	"github.com/fchimpan/bamboo-breaker/internal/tui"
)

// SoundDevice is an opened audio output.
type SoundDevice interface {
	tui.SoundPlayer
	Close()
}

type Deps struct {
	RunTUI   func(ctx context.Context, opts tui.Options) error
	NewSound func() (SoundDevice, error)
	OpenLog  func(path string) (io.WriteCloser, error)
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
}

func DefaultDeps() Deps {
	return Deps{
		RunTUI:   defaultRunTUI,
		NewSound: defaultNewSound,
		OpenLog:  defaultOpenLog,
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

type config struct {
	blocks   int
	speed    float64
	seed     uint64
	mute     bool
	logLevel string
	logFile  string
}

func NewRootCmd(deps Deps) *cobra.Command {
	var cfg config

	c := &cobra.Command{
		Use:          "bamboo-breaker",
		Short:        "Break a row of bamboo blocks with a ball and a paddle, in your terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.speed <= 0 {
				return fmt.Errorf("--speed must be > 0")
			}
			if cfg.blocks < 1 || cfg.blocks > layout.MaxBlocks {
				return fmt.Errorf("--blocks must be between 1 and %d", layout.MaxBlocks)
			}
			if !cmd.Flags().Changed("seed") {
				cfg.seed = uint64(deps.Now().UnixNano())
			}
			return run(cmd.Context(), deps, cfg)
		},
	}

	c.Flags().IntVarP(&cfg.blocks, "blocks", "b", layout.DefaultBlocks, "number of blocks in the row")
	c.Flags().Float64VarP(&cfg.speed, "speed", "s", 1.0, "game speed multiplier (1.0 is normal)")
	c.Flags().Uint64Var(&cfg.seed, "seed", 0, "random seed for the ball launch (default: time-based)")
	c.Flags().BoolVarP(&cfg.mute, "mute", "m", false, "disable sound")
	c.Flags().StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	c.Flags().StringVar(&cfg.logFile, "log-file", "", "log file path (default: $XDG_STATE_HOME/"+defaultLogFile+")")

	c.SetOut(deps.Stdout)
	c.SetErr(deps.Stderr)
	return c
}
