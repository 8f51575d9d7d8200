package schelling

import (
	"fmt"
	"strings"
)

// Grid is the square world of cells.
// Cells are stored in row-major order: index = row*N + col.
type Grid struct {
	n     int
	cells []Cell
}

// NewGrid creates an N×N grid with every cell empty.
func NewGrid(n int) *Grid {
	if n < 0 {
		n = 0
	}
	return &Grid{
		n:     n,
		cells: make([]Cell, n*n),
	}
}

// GridFromRows builds a grid from explicit rows.
// Panics if the rows do not form a square.
func GridFromRows(rows [][]Cell) *Grid {
	g := NewGrid(len(rows))
	for r, row := range rows {
		if len(row) != g.n {
			panic(fmt.Sprintf("schelling: row %d has %d cells, want %d", r, len(row), g.n))
		}
		copy(g.cells[r*g.n:], row)
	}
	return g
}

// Side returns N, the length of one side.
func (g *Grid) Side() int {
	return g.n
}

// Len returns the number of cells (N*N).
func (g *Grid) Len() int {
	return len(g.cells)
}

// Get returns the cell at a linear index.
func (g *Grid) Get(i int) Cell {
	g.check(i)
	return g.cells[i]
}

// Set stores a cell at a linear index.
func (g *Grid) Set(i int, c Cell) {
	g.check(i)
	g.cells[i] = c
}

func (g *Grid) check(i int) {
	if i < 0 || i >= len(g.cells) {
		panic(fmt.Sprintf("schelling: linear index %d out of range [0,%d)", i, len(g.cells)))
	}
}

// Index converts (row, col) to a linear index.
func (g *Grid) Index(row, col int) int {
	return row*g.n + col
}

// Coord converts a linear index to (row, col).
func (g *Grid) Coord(i int) (row, col int) {
	return i / g.n, i % g.n
}

// InBounds returns true if (row, col) lies on the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.n && col >= 0 && col < g.n
}

// At returns the cell at (row, col).
// Off-grid positions read as empty.
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Empty()
	}
	return g.cells[g.Index(row, col)]
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{n: g.n, cells: cells}
}

// Equal returns true if two grids have the same side and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.n != other.n {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// Counts tallies the cell population.
type Counts struct {
	A     int
	B     int
	Empty int
}

// Occupied returns the number of agents.
func (c Counts) Occupied() int {
	return c.A + c.B
}

// Counts returns how many cells hold each kind and how many are empty.
func (g *Grid) Counts() Counts {
	var c Counts
	for _, cell := range g.cells {
		switch {
		case !cell.Occupied:
			c.Empty++
		case cell.Kind == KindA:
			c.A++
		default:
			c.B++
		}
	}
	return c
}

// String dumps the grid as rows of 'A', 'B' and '.'.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(len(g.cells) + g.n)
	for row := 0; row < g.n; row++ {
		if row > 0 {
			sb.WriteRune('\n')
		}
		for col := 0; col < g.n; col++ {
			sb.WriteRune(g.cells[g.Index(row, col)].Rune())
		}
	}
	return sb.String()
}
