package game

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// Category classifies a body's role for contact resolution.
// The ordinal order is used to normalize contact pairs.
type Category int

const (
	CategoryBall Category = iota
	CategoryBottom
	CategoryBlock
	CategoryPaddle
	CategoryBorder
)

func (c Category) String() string {
	switch c {
	case CategoryBall:
		return "ball"
	case CategoryBottom:
		return "bottom"
	case CategoryBlock:
		return "block"
	case CategoryPaddle:
		return "paddle"
	case CategoryBorder:
		return "border"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

type Vec struct {
	X float64
	Y float64
}

// Body is an axis-aligned rectangle in field coordinates (cells, y grows downward).
// Pos is the center.
type Body struct {
	ID       int
	Category Category
	Pos      Vec
	HalfW    float64
	HalfH    float64
	Vel      Vec
}

func (b *Body) Contains(p Vec) bool {
	return p.X >= b.Pos.X-b.HalfW && p.X < b.Pos.X+b.HalfW &&
		p.Y >= b.Pos.Y-b.HalfH && p.Y < b.Pos.Y+b.HalfH
}

var (
	ErrMissingBody   = errors.New("missing required body")
	ErrDuplicateBody = errors.New("duplicate body")
)

// World is the complete set of live bodies for one game instance.
type World struct {
	Width  float64
	Height float64

	Ball   *Body
	Paddle *Body
	Border *Body
	Bottom *Body

	blocks []*Body // ordered by ID
}

// NewWorld assembles a world from bodies. Exactly one ball, paddle, border and
// bottom are required; any number of blocks may be given.
func NewWorld(width, height float64, bodies []Body) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid field size %vx%v", width, height)
	}
	w := &World{Width: width, Height: height}
	seen := make(map[int]bool, len(bodies))
	for i := range bodies {
		b := bodies[i]
		if seen[b.ID] {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateBody, b.ID)
		}
		seen[b.ID] = true

		var slot **Body
		switch b.Category {
		case CategoryBall:
			slot = &w.Ball
		case CategoryPaddle:
			slot = &w.Paddle
		case CategoryBorder:
			slot = &w.Border
		case CategoryBottom:
			slot = &w.Bottom
		case CategoryBlock:
			w.blocks = append(w.blocks, &b)
			continue
		default:
			return nil, fmt.Errorf("body %d: unknown %s", b.ID, b.Category)
		}
		if *slot != nil {
			return nil, fmt.Errorf("%w: second %s", ErrDuplicateBody, b.Category)
		}
		*slot = &b
	}

	switch {
	case w.Ball == nil:
		return nil, fmt.Errorf("%w: %s", ErrMissingBody, CategoryBall)
	case w.Paddle == nil:
		return nil, fmt.Errorf("%w: %s", ErrMissingBody, CategoryPaddle)
	case w.Border == nil:
		return nil, fmt.Errorf("%w: %s", ErrMissingBody, CategoryBorder)
	case w.Bottom == nil:
		return nil, fmt.Errorf("%w: %s", ErrMissingBody, CategoryBottom)
	}

	slices.SortFunc(w.blocks, func(a, b *Body) int { return a.ID - b.ID })
	return w, nil
}

func (w *World) BlockCount() int {
	return len(w.blocks)
}

// Blocks returns the live blocks in ID order. The slice is a copy; the bodies are not.
func (w *World) Blocks() []*Body {
	return slices.Clone(w.blocks)
}

// LiveBlocks iterates the live blocks in ID order without copying.
// The world must not change while iterating.
func (w *World) LiveBlocks() iter.Seq[*Body] {
	return slices.Values(w.blocks)
}

// RemoveBlock removes the block with the given ID and reports whether it was live.
func (w *World) RemoveBlock(id int) bool {
	i := slices.IndexFunc(w.blocks, func(b *Body) bool { return b.ID == id })
	if i < 0 {
		return false
	}
	w.blocks = slices.Delete(w.blocks, i, i+1)
	return true
}

// BodyAt hit-tests p against the solid bodies (paddle, ball, blocks).
// Border and bottom are edges and never returned.
func (w *World) BodyAt(p Vec) *Body {
	if w.Paddle.Contains(p) {
		return w.Paddle
	}
	if w.Ball.Contains(p) {
		return w.Ball
	}
	for _, b := range w.blocks {
		if b.Contains(p) {
			return b
		}
	}
	return nil
}

// PaddleBounds returns the allowed range for the paddle center.
func (w *World) PaddleBounds() (lo, hi float64) {
	return w.Paddle.HalfW, w.Width - w.Paddle.HalfW
}
