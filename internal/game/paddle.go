package game

import "math"

// paddleDrag tracks a pointer gesture that moves the paddle.
type paddleDrag struct {
	active  bool
	hasLast bool
	lastX   float64
}

func (d *paddleDrag) begin(x float64, known bool) {
	d.active = true
	d.hasLast = known
	d.lastX = x
}

func (d *paddleDrag) end() {
	*d = paddleDrag{}
}

// ClampPaddleX keeps a paddle center inside [halfWidth, fieldWidth-halfWidth].
func ClampPaddleX(x, halfWidth, fieldWidth float64) float64 {
	lo := halfWidth
	hi := fieldWidth - halfWidth
	if hi < lo {
		// Paddle wider than the field: pin to the middle.
		return fieldWidth / 2
	}
	return math.Min(math.Max(x, lo), hi)
}

func (g *Game) movePaddleBy(dx float64) {
	p := g.world.Paddle
	p.Pos.X = ClampPaddleX(p.Pos.X+dx, p.HalfW, g.world.Width)
}
