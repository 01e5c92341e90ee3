package tui

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fchimpan/bamboo-breaker/internal/game"
)

func (m *Model) View() string {
	if !m.ready || m.game == nil {
		return "loading...\n"
	}

	m.viewBuf.Reset()
	b := &m.viewBuf

	w := m.game.World()
	ox, oy := m.fieldOrigin()
	leftPadStr := strings.Repeat(" ", ox-1)
	for range oy - 3 {
		b.WriteByte('\n')
	}

	b.WriteString(leftPadStr)
	b.WriteString(renderHUD(m.game.Mode(), w.BlockCount(), m.blocks, m.speed))
	b.WriteByte('\n')

	b.WriteString(leftPadStr)
	b.WriteString(styleHudDim.Render(infoLine(m.game.Mode(), m.game.Dragging())))
	b.WriteByte('\n')

	var overlay *fieldOverlay
	if !m.flip.active {
		overlay = bannerOverlay(m.game, m.blocks)
	}
	m.renderField(b, overlay, leftPadStr)

	b.WriteString(leftPadStr)
	b.WriteString(m.help.View(m.keys))
	b.WriteByte('\n')
	return b.String()
}

func infoLine(mode game.Mode, dragging bool) string {
	switch mode {
	case game.ModeWaitingForTap:
		return "click the field or press space to start"
	case game.ModePlaying:
		if dragging {
			return "dragging the paddle"
		}
		return "drag the paddle with the mouse, or use ←/→"
	default:
		return "tap to play again"
	}
}

func renderHUD(mode game.Mode, remaining, total int, speed float64) string {
	sep := styleHudDim.Render("  |  ")

	remaining = max(remaining, 0)
	total = max(total, remaining)
	done := total - remaining

	barW := 16
	fill := 0
	if total > 0 {
		fill = min(barW*done/total, barW)
	}
	bar := styleHudLabel.Render("[") +
		styleHudOk.Render(strings.Repeat("█", fill)) +
		styleHudDim.Render(strings.Repeat("░", barW-fill)) +
		styleHudLabel.Render("]")

	return strings.Join([]string{
		styleHudLabel.Render("mode ") + styleHudValue.Render(mode.String()),
		sep,
		styleHudLabel.Render("blocks ") + styleHudValue.Render(fmt.Sprintf("%2d/%2d", remaining, total)) + " " + bar,
		sep,
		styleHudLabel.Render("speed ") + styleHudValue.Render(fmt.Sprintf("%.2fx", speed)),
	}, "")
}

type fieldOverlay struct {
	Title  string
	Lines  []string
	Footer string
	Won    bool
	Scale  float64
}

func bannerOverlay(g *game.Game, total int) *fieldOverlay {
	scale := g.BannerScale()
	if scale <= 0 {
		return nil
	}
	ov := &fieldOverlay{Title: g.Banner().String(), Scale: scale}
	switch g.Banner() {
	case game.BannerTapToPlay:
		ov.Lines = []string{
			fmt.Sprintf("break all %d bamboo blocks", total),
			"drag the paddle to keep the ball up",
		}
		ov.Footer = "click or press space to start"
	case game.BannerYouWon:
		ov.Won = true
		ov.Lines = []string{"nice break!", fmt.Sprintf("%d/%d blocks broken", total, total)}
		ov.Footer = "tap to play again, q to quit"
	case game.BannerGameOver:
		left := g.World().BlockCount()
		ov.Lines = []string{fmt.Sprintf("%d/%d blocks broken", total-left, total)}
		ov.Footer = "tap to play again, q to quit"
	}
	return ov
}

// ===== Render helpers (cached styles) =====

var (
	stylePaddle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d0d7de"))
	styleBall   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd33d"))
	styleFrame  = lipgloss.NewStyle().Foreground(lipgloss.Color("#30363d"))
	styleBottom = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e2b2b"))

	paddleCell = stylePaddle.Render("=")
	ballCell   = styleBall.Render("●")
	bottomCell = styleBottom.Render("┄")

	// Alternating bamboo greens so neighbouring blocks stay distinguishable.
	blockCells = [2]string{
		lipgloss.NewStyle().Background(lipgloss.Color("#40c463")).Render(" "),
		lipgloss.NewStyle().Background(lipgloss.Color("#216e39")).Render(" "),
	}
	blockJoint = lipgloss.NewStyle().Background(lipgloss.Color("#30a14e")).Foreground(lipgloss.Color("#9be9a8")).Render("╎")

	styleHudLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	styleHudValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d0d7de"))
	styleHudOk    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7ee787"))
	styleHudDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)

var (
	shardChars  = []rune{'/', '\\', '|', '-', '\'', ','}
	shardColors = []lipgloss.Color{
		lipgloss.Color("#9be9a8"),
		lipgloss.Color("#40c463"),
		lipgloss.Color("#30a14e"),
		lipgloss.Color("#c9b458"),
	}
	// Ball trail, newest first.
	trailCells = func() []string {
		shades := []string{"#e3b341", "#b08800", "#7a5d00", "#4d3b00"}
		cells := make([]string, len(shades))
		for i, c := range shades {
			cells[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("·")
		}
		return cells
	}()
	shardCells = func() [][]string {
		cells := make([][]string, len(shardChars))
		for i, ch := range shardChars {
			row := make([]string, len(shardColors))
			for j, col := range shardColors {
				row[j] = lipgloss.NewStyle().Foreground(col).Render(string(ch))
			}
			cells[i] = row
		}
		return cells
	}()
)

// cellGrid holds one pre-rendered cell per field column and row.
type cellGrid struct {
	rows [][]string
}

// reset sizes the grid to w x h and blanks every cell, reusing rows when the size is unchanged.
func (g *cellGrid) reset(w, h int) {
	if gw, gh := g.size(); gw != w || gh != h {
		g.rows = make([][]string, h)
		for y := range g.rows {
			g.rows[y] = make([]string, w)
		}
	}
	for _, row := range g.rows {
		for x := range row {
			row[x] = " "
		}
	}
}

func (g *cellGrid) size() (w, h int) {
	if len(g.rows) == 0 {
		return 0, 0
	}
	return len(g.rows[0]), len(g.rows)
}

func (g *cellGrid) put(x, y int, cell string) {
	if y < 0 || y >= len(g.rows) || x < 0 || x >= len(g.rows[y]) {
		return
	}
	g.rows[y][x] = cell
}

// span fills columns [x0,x1) of row y.
func (g *cellGrid) span(x0, x1, y int, cell string) {
	for x := x0; x < x1; x++ {
		g.put(x, y, cell)
	}
}

// text writes s one rune per cell from (x, y), stopping before column limit.
func (g *cellGrid) text(x, y, limit int, s string, st lipgloss.Style) {
	for _, r := range s {
		if x >= limit {
			return
		}
		g.put(x, y, st.Render(string(r)))
		x++
	}
}

// cellSpan returns the cell columns [x0,x1) covered by a body.
func cellSpan(b *game.Body) (x0, x1 int) {
	return int(math.Floor(b.Pos.X - b.HalfW + 0.001)), int(math.Floor(b.Pos.X + b.HalfW + 0.001))
}

func (m *Model) renderField(out *bytes.Buffer, overlay *fieldOverlay, leftPad string) {
	w := m.game.World()
	fw := int(w.Width)
	fh := int(w.Height)
	if fw <= 0 || fh <= 0 {
		return
	}

	g := &m.grid
	g.reset(fw, fh)

	g.span(0, fw, int(w.Bottom.Pos.Y), bottomCell)

	for blk := range w.LiveBlocks() {
		x0, x1 := cellSpan(blk)
		y := int(blk.Pos.Y)
		g.span(x0, x1, y, blockCells[blk.ID%2])
		// Bamboo node in the middle of each block.
		if x1-x0 >= 4 {
			g.put((x0+x1)/2, y, blockJoint)
		}
	}

	// Oldest first so newer cells win.
	for age := m.trail.n - 1; age >= 0; age-- {
		c := m.trail.at(age)
		g.put(c.x, c.y, trailCells[age*len(trailCells)/trailLen])
	}

	px0, px1 := cellSpan(w.Paddle)
	g.span(px0, px1, int(w.Paddle.Pos.Y), paddleCell)

	g.put(int(math.Floor(w.Ball.Pos.X)), int(math.Floor(w.Ball.Pos.Y)), ballCell)

	for _, b := range m.bursts {
		for _, s := range b.shards {
			g.put(int(math.Floor(s.X)), int(math.Floor(s.Y)), s.Cell)
		}
	}

	if overlay != nil {
		drawBanner(g, overlay)
	}

	writeFramed(out, g, m.flip.visibleHalf(), leftPad)
}

// writeFramed writes the grid inside a rounded frame. Rows outside a band of
// reveal (0..1) times the half-height around the middle are blank, which
// plays the vertical flip.
func writeFramed(out *bytes.Buffer, g *cellGrid, reveal float64, leftPad string) {
	fw, fh := g.size()
	border := lipgloss.RoundedBorder()
	side := styleFrame.Render(border.Left)
	blank := strings.Repeat(" ", fw)
	half := float64(fh) / 2

	out.WriteString(leftPad)
	out.WriteString(styleFrame.Render(border.TopLeft + strings.Repeat(border.Top, fw) + border.TopRight))
	out.WriteByte('\n')
	for y, row := range g.rows {
		out.WriteString(leftPad)
		out.WriteString(side)
		if math.Abs(float64(y)+0.5-half) > reveal*half {
			out.WriteString(blank)
		} else {
			for _, cell := range row {
				out.WriteString(cell)
			}
		}
		out.WriteString(side)
		out.WriteByte('\n')
	}
	out.WriteString(leftPad)
	out.WriteString(styleFrame.Render(border.BottomLeft + strings.Repeat(border.Bottom, fw) + border.BottomRight))
	out.WriteByte('\n')
}

var (
	stylePanel     = lipgloss.NewStyle().Background(lipgloss.Color("#161b22"))
	stylePanelText = stylePanel.Foreground(lipgloss.Color("#d0d7de"))
	stylePanelHelp = stylePanel.Foreground(lipgloss.Color("#8b949e"))
)

// drawBanner draws the message panel centered in the grid at ov.Scale of its
// full size. The text only shows once the panel is full size.
func drawBanner(g *cellGrid, ov *fieldOverlay) {
	gw, gh := g.size()
	if gw == 0 || gh == 0 || ov.Scale <= 0 {
		return
	}

	lines := append([]string{ov.Title}, ov.Lines...)
	if ov.Footer != "" {
		lines = append(lines, ov.Footer)
	}
	textW := 0
	for _, l := range lines {
		textW = max(textW, lipgloss.Width(l))
	}

	// One cell of border and one of padding on each side.
	scale := min(ov.Scale, 1)
	boxW := max(int(math.Round(float64(min(textW+4, gw))*scale)), 2)
	boxH := max(int(math.Round(float64(min(len(lines)+4, gh))*scale)), 2)
	x0 := (gw - boxW) / 2
	y0 := (gh - boxH) / 2
	x1 := x0 + boxW - 1
	y1 := y0 + boxH - 1

	edgeColor, titleColor := lipgloss.Color("#30363d"), lipgloss.Color("#ff7b72")
	if ov.Won {
		edgeColor, titleColor = lipgloss.Color("#7ee787"), lipgloss.Color("#7ee787")
	}
	edge := stylePanel.Bold(true).Foreground(edgeColor)
	border := lipgloss.RoundedBorder()
	inside := stylePanel.Render(" ")

	for y := y0; y <= y1; y++ {
		left, fill, right := edge.Render(border.Left), inside, edge.Render(border.Right)
		switch y {
		case y0:
			left, fill, right = edge.Render(border.TopLeft), edge.Render(border.Top), edge.Render(border.TopRight)
		case y1:
			left, fill, right = edge.Render(border.BottomLeft), edge.Render(border.Bottom), edge.Render(border.BottomRight)
		}
		g.put(x0, y, left)
		g.span(x0+1, x1, y, fill)
		g.put(x1, y, right)
	}

	if scale < 1 {
		return
	}
	for i, l := range lines {
		y := y0 + 2 + i
		if y >= y1-1 {
			break
		}
		st := stylePanelText
		switch {
		case i == 0:
			st = stylePanel.Bold(true).Foreground(titleColor)
		case i == len(lines)-1 && ov.Footer != "":
			st = stylePanelHelp
		}
		x := x0 + 2 + (textW-lipgloss.Width(l))/2
		g.text(x, y, x1-1, l, st)
	}
}
