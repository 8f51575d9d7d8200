package schelling

// Stats describes the world at one point in time.
type Stats struct {
	Tick        uint64
	CountA      int
	CountB      int
	Empty       int
	Disgruntled int
	// Similarity is the mean same-kind neighbor fraction over agents that
	// have at least one occupied neighbor. 0 when no agent has neighbors.
	Similarity float64
	Settled    bool
}

// Measure computes population and satisfaction statistics for g.
func Measure(g *Grid, threshold float64) Stats {
	counts := g.Counts()
	s := Stats{
		CountA: counts.A,
		CountB: counts.B,
		Empty:  counts.Empty,
	}

	var sum float64
	var withNeighbors int
	for i, c := range g.cells {
		if !c.Occupied {
			continue
		}
		same, total := Neighbors(g, i)
		fraction := 0.0
		if total > 0 {
			fraction = float64(same) / float64(total)
			sum += fraction
			withNeighbors++
		}
		if fraction < threshold {
			s.Disgruntled++
		}
	}

	if withNeighbors > 0 {
		s.Similarity = sum / float64(withNeighbors)
	}
	s.Settled = s.Disgruntled == 0
	return s
}
