package tui

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/schelling/internal/core"
	"github.com/vovakirdan/schelling/internal/schelling"
)

const (
	agentRune = '●'
	emptyRune = '·'
)

// BlockSize returns how many grid cells per side one screen character
// covers when a grid of the given side is fit into area.
func BlockSize(side int, area core.Rect) int {
	if side <= 0 || area.Empty() {
		return 1
	}
	return core.Max(1, core.Max(core.CeilDiv(side, area.W), core.CeilDiv(side, area.H)))
}

// DrawGrid draws the grid centered in area and returns the rectangle it used.
// Grids larger than the area are shrunk: each character shows the majority
// of its block, ties going to A, then B, then empty.
func DrawGrid(dst *core.Screen, g *schelling.Grid, area core.Rect) core.Rect {
	if g == nil || area.Empty() {
		return core.Rect{}
	}

	side := g.Side()
	block := BlockSize(side, area)
	cols := core.CeilDiv(side, block)
	rows := cols

	used := core.NewRect(
		area.X+(area.W-cols)/2,
		area.Y+(area.H-rows)/2,
		core.Min(cols, area.W),
		core.Min(rows, area.H),
	)

	for by := 0; by < used.H; by++ {
		for bx := 0; bx < used.W; bx++ {
			r, c := blockRune(g, by*block, bx*block, block)
			dst.SetColored(used.X+bx, used.Y+by, r, c)
		}
	}
	return used
}

// blockRune picks the rune and color for the block whose top-left grid
// cell is (row, col).
func blockRune(g *schelling.Grid, row, col, block int) (rune, core.Color) {
	var a, b, empty int
	for dr := 0; dr < block; dr++ {
		for dc := 0; dc < block; dc++ {
			if !g.InBounds(row+dr, col+dc) {
				continue
			}
			cell := g.At(row+dr, col+dc)
			switch {
			case cell.IsEmpty():
				empty++
			case cell.Kind == schelling.KindA:
				a++
			default:
				b++
			}
		}
	}

	switch {
	case a >= b && a >= empty && a > 0:
		return agentRune, core.ColorPink
	case b >= empty && b > 0:
		return agentRune, core.ColorSlate
	default:
		return emptyRune, core.ColorDim
	}
}

// hudLine formats the status line shown under the grid.
func hudLine(st schelling.Stats, tickRate int, state string) string {
	return fmt.Sprintf("tick %s  A %s  B %s  empty %s  unhappy %s  like %.1f%%  %d/s  %s",
		humanize.Comma(int64(st.Tick)),
		humanize.Comma(int64(st.CountA)),
		humanize.Comma(int64(st.CountB)),
		humanize.Comma(int64(st.Empty)),
		humanize.Comma(int64(st.Disgruntled)),
		st.Similarity*100,
		tickRate,
		state,
	)
}
