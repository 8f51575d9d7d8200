package schelling

import (
	"errors"
	"fmt"
	"math"
)

// Configuration errors reported by Build and Initialize.
var (
	ErrInvalidLocations    = errors.New("total locations must be positive")
	ErrInvalidDistribution = errors.New("distribution fractions must be within [0,1]")
	ErrInvalidThreshold    = errors.New("threshold must be within [0,1]")
)

// Distribution gives the initial share of each cell kind.
// Shares are expected to sum to 1; the empty share is taken as the complement
// of the occupied share when they do not.
type Distribution struct {
	A     float64
	B     float64
	Empty float64
}

// DefaultDistribution is a quarter of each kind and half the world empty.
func DefaultDistribution() Distribution {
	return Distribution{A: 0.25, B: 0.25, Empty: 0.50}
}

// Validate checks that every share lies in [0,1].
func (d Distribution) Validate() error {
	for _, v := range []struct {
		name  string
		share float64
	}{
		{"A", d.A},
		{"B", d.B},
		{"empty", d.Empty},
	} {
		if math.IsNaN(v.share) || v.share < 0 || v.share > 1 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidDistribution, v.name, v.share)
		}
	}
	return nil
}

// ValidateThreshold checks that a satisfaction threshold lies in [0,1].
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	return nil
}

// SideFor returns round(sqrt(totalLocations)).
func SideFor(totalLocations int) int {
	return int(math.Round(math.Sqrt(float64(totalLocations))))
}

// PopulationFor returns how many cells of each kind an ordered fill of
// totalLocations produces. Position i holds kind A while i < A*total and
// kind B while i < (1-Empty)*total; the remainder is empty.
func PopulationFor(totalLocations int, d Distribution) Counts {
	total := float64(totalLocations)
	countA := clampInt(cellsBelow(d.A*total), 0, totalLocations)
	occupied := clampInt(cellsBelow((1-d.Empty)*total), countA, totalLocations)
	return Counts{
		A:     countA,
		B:     occupied - countA,
		Empty: totalLocations - occupied,
	}
}

// Build creates the initial world.
// Cells are laid down in order (A, then B, then empty) and the whole grid is
// then shuffled. When totalLocations is not a perfect square the grid is
// round(sqrt)×round(sqrt): surplus trailing cells of the ordered fill are
// dropped and missing ones stay empty.
func Build(totalLocations int, d Distribution, threshold float64, rng Rand) (*Grid, error) {
	if totalLocations <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLocations, totalLocations)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	g := NewGrid(SideFor(totalLocations))
	pop := PopulationFor(totalLocations, d)

	limit := min(totalLocations, g.Len())
	for i := 0; i < limit; i++ {
		switch {
		case i < pop.A:
			g.cells[i] = Agent(KindA)
		case i < pop.A+pop.B:
			g.cells[i] = Agent(KindB)
		default:
			g.cells[i] = Empty()
		}
	}

	Shuffle[Cell](g, rng)
	return g, nil
}

// cellsBelow counts the non-negative integers i with float64(i) < limit.
func cellsBelow(limit float64) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(limit))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
