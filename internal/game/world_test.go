package game

import (
	"errors"
	"testing"
)

func TestNewWorld_RequiresBodies(t *testing.T) {
	t.Parallel()

	full := []Body{
		{ID: 1, Category: CategoryBorder},
		{ID: 2, Category: CategoryBottom},
		{ID: 3, Category: CategoryPaddle},
		{ID: 4, Category: CategoryBall},
	}
	for i := range full {
		bodies := append(append([]Body{}, full[:i]...), full[i+1:]...)
		if _, err := NewWorld(10, 10, bodies); !errors.Is(err, ErrMissingBody) {
			t.Fatalf("without %s: expected ErrMissingBody, got %v", full[i].Category, err)
		}
	}

	dup := append(append([]Body{}, full...), Body{ID: 5, Category: CategoryBall})
	if _, err := NewWorld(10, 10, dup); !errors.Is(err, ErrDuplicateBody) {
		t.Fatalf("expected ErrDuplicateBody for second ball, got %v", err)
	}
	sameID := append(append([]Body{}, full...), Body{ID: 4, Category: CategoryBlock})
	if _, err := NewWorld(10, 10, sameID); !errors.Is(err, ErrDuplicateBody) {
		t.Fatalf("expected ErrDuplicateBody for reused id, got %v", err)
	}
	if _, err := NewWorld(0, 10, full); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestWorld_BlocksOrderedAndRemovable(t *testing.T) {
	t.Parallel()

	bodies := []Body{
		{ID: 1, Category: CategoryBorder},
		{ID: 2, Category: CategoryBottom},
		{ID: 3, Category: CategoryPaddle},
		{ID: 4, Category: CategoryBall},
		{ID: 12, Category: CategoryBlock},
		{ID: 10, Category: CategoryBlock},
		{ID: 11, Category: CategoryBlock},
	}
	w, err := NewWorld(10, 10, bodies)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	var ids []int
	for _, b := range w.Blocks() {
		ids = append(ids, b.ID)
	}
	if len(ids) != 3 || ids[0] != 10 || ids[1] != 11 || ids[2] != 12 {
		t.Fatalf("block ids = %v", ids)
	}
	if !w.RemoveBlock(11) {
		t.Fatalf("expected block 11 to be removed")
	}
	if w.RemoveBlock(11) {
		t.Fatalf("block 11 removed twice")
	}
	if w.RemoveBlock(3) {
		t.Fatalf("paddle must not be removable as a block")
	}
	if w.BlockCount() != 2 {
		t.Fatalf("blocks = %d, want 2", w.BlockCount())
	}

	ids = ids[:0]
	for b := range w.LiveBlocks() {
		ids = append(ids, b.ID)
	}
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 12 {
		t.Fatalf("live block ids = %v", ids)
	}
}

func TestWorld_BodyAt(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t, 2)
	if b := w.BodyAt(Vec{X: 85, Y: 97.5}); b != w.Paddle {
		t.Fatalf("expected paddle, got %v", b)
	}
	if b := w.BodyAt(Vec{X: 25, Y: 20.5}); b == nil || b.Category != CategoryBlock || b.ID != 11 {
		t.Fatalf("expected block 11, got %+v", b)
	}
	if b := w.BodyAt(Vec{X: 150, Y: 50}); b != nil {
		t.Fatalf("expected nothing in open field, got %+v", b)
	}
	if b := w.BodyAt(Vec{X: 150, Y: 99.5}); b != nil {
		t.Fatalf("bottom edge must not be hit-testable, got %+v", b)
	}
}

func TestClampPaddleX(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x, half, width, want float64
	}{
		{x: 50 - 40, half: 20, width: 200, want: 20},
		{x: 250, half: 20, width: 200, want: 180},
		{x: 90, half: 20, width: 200, want: 90},
		{x: 5, half: 30, width: 40, want: 20},
	}
	for _, tt := range tests {
		if got := ClampPaddleX(tt.x, tt.half, tt.width); got != tt.want {
			t.Fatalf("ClampPaddleX(%v, %v, %v) = %v, want %v", tt.x, tt.half, tt.width, got, tt.want)
		}
	}
}
