package tui

import (
	"math"
	"path/filepath"
	"strings"

	"casedesk/internal/desktop"
	"casedesk/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// One terminal cell covers unitsPerCol x unitsPerRow desktop units, so an icon is 8x4
// cells and a layout cell 12x6.
const (
	unitsPerCol = 10
	unitsPerRow = 20

	iconCols = desktop.IconSize / unitsPerCol
	iconRows = desktop.IconSize / unitsPerRow
)

func cellToPos(col, row int) model.Position {
	return model.Position{X: float64(col * unitsPerCol), Y: float64(row * unitsPerRow)}
}

func posToCell(p model.Position) (col, row int) {
	return int(math.Floor(p.X / unitsPerCol)), int(math.Floor(p.Y / unitsPerRow))
}

func canvasViewport(cols, rows int) desktop.Viewport {
	return desktop.Viewport{Width: float64(cols * unitsPerCol), Height: float64(rows * unitsPerRow)}
}

type cell struct {
	r  rune
	st int
}

// canvas is a grid of runes, each tagged with an index into styles. Runs of equal style
// are rendered together.
type canvas struct {
	cols, rows int
	cells      [][]cell
	styles     []lipgloss.Style
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, styles: []lipgloss.Style{lipgloss.NewStyle()}}
	c.cells = make([][]cell, rows)
	for y := range c.cells {
		c.cells[y] = make([]cell, cols)
		for x := range c.cells[y] {
			c.cells[y][x] = cell{r: ' '}
		}
	}
	return c
}

func (c *canvas) style(st lipgloss.Style) int {
	c.styles = append(c.styles, st)
	return len(c.styles) - 1
}

func (c *canvas) set(x, y int, r rune, st int) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.cells[y][x] = cell{r: r, st: st}
}

func (c *canvas) text(x, y int, s string, st int) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, st)
	}
}

func (c *canvas) String() string {
	lines := make([]string, c.rows)
	for y, row := range c.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].st == row[start].st {
				continue
			}
			var run strings.Builder
			for _, ce := range row[start:x] {
				run.WriteRune(ce.r)
			}
			if row[start].st == 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(c.styles[row[start].st].Render(run.String()))
			}
			start = x
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// iconState carries the per-item flags the renderer needs.
type iconState struct {
	selected bool
	target   bool
	dragged  bool
}

func (c *canvas) drawIcon(it model.Item, st iconState) {
	x, y := posToCell(it.Position)

	border := lipgloss.NewStyle().Foreground(colorIconBorder)
	body := lipgloss.NewStyle().Foreground(colorSurfaceFg)
	if it.Type == model.ItemTypeNote && it.Color != "" {
		body = body.Foreground(lipgloss.Color(it.Color))
	}
	if it.Type.IsCase() {
		border = border.Foreground(colorCase)
	}
	if st.selected {
		border = border.Foreground(colorSelectedBorder).Bold(true)
		body = body.Background(colorSelectedBg).Foreground(colorSelectedFg)
	}
	if st.target {
		border = border.Background(colorDropBg)
		body = body.Background(colorDropBg)
	}
	if st.dragged {
		border = faintIfDark(border)
	}
	bi, ti := c.style(border), c.style(body)

	inner := iconCols - 2
	top, bottom := "┌"+strings.Repeat("─", inner)+"┐", "└"+strings.Repeat("─", inner)+"┘"
	if it.Type.IsContainer() {
		top = "╭" + strings.Repeat("─", inner) + "╮"
		bottom = "╰" + strings.Repeat("─", inner) + "╯"
	}
	c.text(x, y, top, bi)
	c.text(x, y+iconRows-1, bottom, bi)
	for row := 1; row < iconRows-1; row++ {
		c.set(x, y+row, '│', bi)
		c.set(x+iconCols-1, y+row, '│', bi)
	}
	c.text(x+1, y+1, cellText(iconLabel(it), inner), ti)
	c.text(x+1, y+2, cellText(it.Name, inner), ti)

	if badge, color := statusBadge(it.AnalysisStatus); badge != 0 {
		c.set(x+iconCols-2, y, badge, c.style(lipgloss.NewStyle().Foreground(color).Bold(true)))
	}
}

// drawBox outlines the rubber-band rectangle.
func (c *canvas) drawBox(r desktop.Rect) {
	x0, y0 := posToCell(model.Position{X: r.X, Y: r.Y})
	x1, y1 := posToCell(model.Position{X: r.Right(), Y: r.Bottom()})
	st := c.style(lipgloss.NewStyle().Foreground(colorAccent))
	for x := x0; x <= x1; x++ {
		c.set(x, y0, '┄', st)
		c.set(x, y1, '┄', st)
	}
	for y := y0; y <= y1; y++ {
		c.set(x0, y, '┆', st)
		c.set(x1, y, '┆', st)
	}
}

func iconLabel(it model.Item) string {
	switch it.Type {
	case model.ItemTypeFolder:
		return "[dir]"
	case model.ItemTypeSmartFolder:
		return "[case]"
	case model.ItemTypeNote:
		return "[note]"
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(it.Name)), "."); ext != "" {
		return "[" + ext + "]"
	}
	return "[file]"
}

func statusBadge(s model.AnalysisStatus) (rune, lipgloss.TerminalColor) {
	switch s {
	case model.AnalysisPending:
		return '•', colorPending
	case model.AnalysisAnalyzing:
		return '◌', colorAnalyzing
	case model.AnalysisFailed:
		return '!', colorFailed
	default:
		return 0, nil
	}
}

// cellText fits s into width single-width cells.
func cellText(s string, width int) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\t' || xansi.StringWidth(string(r)) != 1 {
			r = ' '
		}
		b.WriteRune(r)
	}
	out := []rune(b.String())
	if len(out) > width {
		out = append(out[:width-1], '…')
	}
	for len(out) < width {
		out = append(out, ' ')
	}
	return string(out)
}
