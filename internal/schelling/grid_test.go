package schelling_test

import (
	"testing"

	"github.com/vovakirdan/schelling/internal/schelling"
)

// parseGrid builds a grid from rows of 'A', 'B' and '.'.
func parseGrid(t *testing.T, rows ...string) *schelling.Grid {
	t.Helper()
	cells := make([][]schelling.Cell, len(rows))
	for r, row := range rows {
		cells[r] = make([]schelling.Cell, 0, len(row))
		for _, ch := range row {
			switch ch {
			case 'A':
				cells[r] = append(cells[r], schelling.Agent(schelling.KindA))
			case 'B':
				cells[r] = append(cells[r], schelling.Agent(schelling.KindB))
			case '.':
				cells[r] = append(cells[r], schelling.Empty())
			default:
				t.Fatalf("unexpected rune %q in row %d", ch, r)
			}
		}
	}
	return schelling.GridFromRows(cells)
}

func TestGridIndexMapping(t *testing.T) {
	g := schelling.NewGrid(4)

	if g.Side() != 4 || g.Len() != 16 {
		t.Fatalf("expected 4x4 grid with 16 cells, got side=%d len=%d", g.Side(), g.Len())
	}

	for i := 0; i < g.Len(); i++ {
		row, col := g.Coord(i)
		if row != i/4 || col != i%4 {
			t.Errorf("Coord(%d) = (%d,%d), want (%d,%d)", i, row, col, i/4, i%4)
		}
		if back := g.Index(row, col); back != i {
			t.Errorf("Index(Coord(%d)) = %d", i, back)
		}
	}
}

func TestGridSetAndGet(t *testing.T) {
	g := schelling.NewGrid(3)

	g.Set(5, schelling.Agent(schelling.KindB))
	if got := g.At(1, 2); got != schelling.Agent(schelling.KindB) {
		t.Errorf("At(1,2) = %+v, want B agent", got)
	}
	if got := g.Get(5); !got.Occupied || got.Kind != schelling.KindB {
		t.Errorf("Get(5) = %+v, want B agent", got)
	}

	g.Set(5, schelling.Empty())
	if !g.Get(5).IsEmpty() {
		t.Error("expected cell 5 to be empty after clearing")
	}
}

func TestGridAtOffGridIsEmpty(t *testing.T) {
	g := parseGrid(t, "AA", "AA")

	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if !g.At(pos[0], pos[1]).IsEmpty() {
			t.Errorf("At(%d,%d) should read as empty", pos[0], pos[1])
		}
	}
}

func TestGridOutOfRangePanics(t *testing.T) {
	g := schelling.NewGrid(2)

	for _, idx := range []int{-1, 4, 100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Get(%d) should panic", idx)
				}
			}()
			g.Get(idx)
		}()
	}
}

func TestGridFromRowsRejectsRagged(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-square rows")
		}
	}()
	schelling.GridFromRows([][]schelling.Cell{
		{schelling.Empty(), schelling.Empty()},
		{schelling.Empty()},
	})
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := parseGrid(t, "AB", ".A")
	clone := g.Clone()

	if !g.Equal(clone) {
		t.Fatal("clone should equal original")
	}

	clone.Set(2, schelling.Agent(schelling.KindB))
	if g.Equal(clone) {
		t.Error("modifying clone should not affect original")
	}
	if !g.Get(2).IsEmpty() {
		t.Error("original cell 2 should still be empty")
	}
}

func TestGridCountsAndString(t *testing.T) {
	g := parseGrid(t, "AA.", ".B.", "A.B")

	counts := g.Counts()
	want := schelling.Counts{A: 3, B: 2, Empty: 4}
	if counts != want {
		t.Errorf("Counts() = %+v, want %+v", counts, want)
	}
	if counts.Occupied() != 5 {
		t.Errorf("Occupied() = %d, want 5", counts.Occupied())
	}
	if g.String() != "AA.\n.B.\nA.B" {
		t.Errorf("String() = %q", g.String())
	}
}
