package schelling

// Neighbors counts the occupied cells in the Moore window around i.
// The cell itself, off-grid positions and empty cells are not counted.
// same is the number of those neighbors sharing the subject's kind.
func Neighbors(g *Grid, i int) (same, total int) {
	subject := g.Get(i)
	row, col := g.Coord(i)

	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if !g.InBounds(r, c) {
				continue
			}
			neighbor := g.cells[g.Index(r, c)]
			if !neighbor.Occupied {
				continue
			}
			total++
			if subject.SameKind(neighbor) {
				same++
			}
		}
	}
	return same, total
}

// SameFraction returns same/total for the agent at i.
// An agent with no occupied neighbors has fraction 0.
func SameFraction(g *Grid, i int) float64 {
	same, total := Neighbors(g, i)
	if total == 0 {
		return 0
	}
	return float64(same) / float64(total)
}

// IsDisgruntled reports whether the agent at i wants to move.
// Empty cells are never disgruntled.
func IsDisgruntled(g *Grid, i int, threshold float64) bool {
	if g.Get(i).IsEmpty() {
		return false
	}
	return SameFraction(g, i) < threshold
}
