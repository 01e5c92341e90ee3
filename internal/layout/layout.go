package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/fchimpan/bamboo-breaker/internal/game"
)

const (
	DefaultBlocks     = 8
	MaxBlocks         = 32
	DefaultBlockWidth = 6
	minBlockWidth     = 2

	// Blocks sit at 20% of the field height from the top.
	blockRowRatio = 0.2

	MinWidth  = 24
	MinHeight = 12
)

// Body IDs. Blocks are numbered from FirstBlockID in left-to-right order.
const (
	BorderID = iota + 1
	BottomID
	PaddleID
	BallID
	FirstBlockID = 10
)

var ErrFieldTooSmall = errors.New("field too small")

type Config struct {
	Width      int
	Height     int
	Blocks     int
	BlockWidth int
}

// Build lays out the world for one game: border, bottom strip, paddle, ball
// resting on the paddle, and a centered row of blocks.
//
// If the row does not fit, block width is reduced down to 2 cells before giving up.
func Build(cfg Config) (*game.World, error) {
	if cfg.Width < MinWidth || cfg.Height < MinHeight {
		return nil, fmt.Errorf("%w: %dx%d (need at least %dx%d)", ErrFieldTooSmall, cfg.Width, cfg.Height, MinWidth, MinHeight)
	}
	if cfg.Blocks <= 0 {
		cfg.Blocks = DefaultBlocks
	}
	if cfg.BlockWidth <= 0 {
		cfg.BlockWidth = DefaultBlockWidth
	}

	bw := cfg.BlockWidth
	for bw > minBlockWidth && bw*cfg.Blocks > cfg.Width {
		bw--
	}
	if bw*cfg.Blocks > cfg.Width {
		return nil, fmt.Errorf("%w: %d blocks need %d columns, have %d", ErrFieldTooSmall, cfg.Blocks, bw*cfg.Blocks, cfg.Width)
	}

	w := float64(cfg.Width)
	h := float64(cfg.Height)

	paddleW := math.Max(6, math.Floor(w/5))
	paddleY := h - 2.5 // center of the second-to-last row
	bodies := []game.Body{
		{ID: BorderID, Category: game.CategoryBorder, Pos: game.Vec{X: w / 2, Y: h / 2}, HalfW: w / 2, HalfH: h / 2},
		{ID: BottomID, Category: game.CategoryBottom, Pos: game.Vec{X: w / 2, Y: h - 0.5}, HalfW: w / 2, HalfH: 0.5},
		{ID: PaddleID, Category: game.CategoryPaddle, Pos: game.Vec{X: w / 2, Y: paddleY}, HalfW: paddleW / 2, HalfH: 0.5},
		{ID: BallID, Category: game.CategoryBall, Pos: game.Vec{X: w / 2, Y: paddleY - 1}, HalfW: 0.5, HalfH: 0.5},
	}

	xOffset := math.Floor((w - float64(bw*cfg.Blocks)) / 2)
	rowY := math.Floor(h*blockRowRatio) + 0.5
	for i := range cfg.Blocks {
		bodies = append(bodies, game.Body{
			ID:       FirstBlockID + i,
			Category: game.CategoryBlock,
			Pos:      game.Vec{X: xOffset + (float64(i)+0.5)*float64(bw), Y: rowY},
			HalfW:    float64(bw) / 2,
			HalfH:    0.5,
		})
	}

	return game.NewWorld(w, h, bodies)
}
