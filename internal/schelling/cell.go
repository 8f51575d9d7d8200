// Package schelling provides the segregation model: grid, neighborhood
// evaluation, randomized relocation and initial population.
// This package is UI-agnostic and deterministic for a given random stream.
package schelling

// Kind identifies one of the two agent populations.
type Kind uint8

const (
	KindA Kind = iota
	KindB
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindA:
		return "A"
	case KindB:
		return "B"
	default:
		return "?"
	}
}

// Cell represents a single location on the grid.
type Cell struct {
	Occupied bool // Whether an agent lives here
	Kind     Kind // Valid only when Occupied is true
}

// Empty returns an unoccupied cell.
func Empty() Cell {
	return Cell{}
}

// Agent returns a cell occupied by an agent of the given kind.
func Agent(k Kind) Cell {
	return Cell{Occupied: true, Kind: k}
}

// IsEmpty returns true if no agent occupies the cell.
func (c Cell) IsEmpty() bool {
	return !c.Occupied
}

// SameKind returns true if both cells hold agents of the same kind.
func (c Cell) SameKind(other Cell) bool {
	return c.Occupied && other.Occupied && c.Kind == other.Kind
}

// Rune returns the ASCII glyph used in text dumps.
func (c Cell) Rune() rune {
	if !c.Occupied {
		return '.'
	}
	if c.Kind == KindA {
		return 'A'
	}
	return 'B'
}
