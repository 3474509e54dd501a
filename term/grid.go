// Package term is the terminal frontend: a tcell input source that turns mouse
// and keyboard events into the pointer signal, and a renderer that draws
// snapshots onto the character grid.
package term

import (
	"math"

	"fingershooter/game"
)

// hudRows is the number of rows above the playfield; one status row sits below it
const hudRows = 1

// Grid maps world coordinates onto terminal cells
type Grid struct {
	Cols, Rows int
	World      game.Rect
}

// NewGrid returns the grid for a terminal of cols×rows showing world
func NewGrid(cols, rows int, world game.Rect) Grid {
	return Grid{Cols: max(1, cols), Rows: max(hudRows+2, rows), World: world}
}

// PlayRows is the number of rows the playfield spans
func (g Grid) PlayRows() int {
	return g.Rows - hudRows - 1
}

// StatusRow is the row below the playfield
func (g Grid) StatusRow() int {
	return hudRows + g.PlayRows()
}

// ToCell returns the cell containing world point (x, y)
func (g Grid) ToCell(x, y float64) (col, row int) {
	col = int(math.Floor((x - g.World.X) / g.World.W * float64(g.Cols)))
	row = hudRows + int(math.Floor((y-g.World.Y)/g.World.H*float64(g.PlayRows())))
	return col, row
}

// ToWorld returns the world point at the center of a cell
func (g Grid) ToWorld(col, row int) (x, y float64) {
	x = g.World.X + (float64(col)+0.5)/float64(g.Cols)*g.World.W
	y = g.World.Y + (float64(row-hudRows)+0.5)/float64(g.PlayRows())*g.World.H
	return x, y
}

// InPlayfield reports whether a cell lies inside the playfield area
func (g Grid) InPlayfield(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= hudRows && row < hudRows+g.PlayRows()
}

// Span returns the inclusive cell range covered by r. Every rectangle covers
// at least one cell.
func (g Grid) Span(r game.Rect) (c0, r0, c1, r1 int) {
	c0, r0 = g.ToCell(r.X, r.Y)
	c1 = int(math.Ceil((r.Right()-g.World.X)/g.World.W*float64(g.Cols))) - 1
	r1 = hudRows + int(math.Ceil((r.Bottom()-g.World.Y)/g.World.H*float64(g.PlayRows()))) - 1
	return c0, r0, max(c0, c1), max(r0, r1)
}

// PointerAt returns the normalized pointer that steers the player's center
// onto the given cell
func PointerAt(cfg game.Config, g Grid, col, row int) *game.Pointer {
	x, y := g.ToWorld(col, row)
	p := game.PointerAt(cfg, x, y)
	return &p
}
