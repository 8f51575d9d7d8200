package schelling

// StepResult summarizes what happened during one tick.
type StepResult struct {
	Disgruntled int // Agents unhappy at the start of the tick
	Moved       int // Agents relocated this tick
	Skipped     int // Unhappy agents left in place for lack of free cells
}

// Settled returns true if nobody wanted to move.
func (r StepResult) Settled() bool {
	return r.Disgruntled == 0
}

// EmptySlots lists the linear indices of empty cells in ascending order.
func EmptySlots(g *Grid) Indices {
	slots := make(Indices, 0)
	for i, c := range g.cells {
		if !c.Occupied {
			slots = append(slots, i)
		}
	}
	return slots
}

// DisgruntledAgents lists the linear indices of unhappy agents in ascending order.
func DisgruntledAgents(g *Grid, threshold float64) Indices {
	movers := make(Indices, 0)
	for i := range g.cells {
		if IsDisgruntled(g, i, threshold) {
			movers = append(movers, i)
		}
	}
	return movers
}

// Advance runs one tick on g in place and returns g's summary.
//
// Tick rules:
//  1. Free slots and unhappy agents are both collected from the start-of-tick grid
//  2. Free slots are shuffled so destinations are assigned uniformly
//  3. The i-th unhappy agent moves into the i-th shuffled free slot
//  4. Unhappy agents beyond the number of free slots stay where they are
//
// Vacated cells are not reused within the same tick.
func Advance(g *Grid, threshold float64, rng Rand) StepResult {
	free := EmptySlots(g)
	movers := DisgruntledAgents(g, threshold)
	Shuffle[int](free, rng)

	moves := min(len(movers), len(free))
	for i := 0; i < moves; i++ {
		agent := g.cells[movers[i]]
		g.cells[movers[i]] = Empty()
		g.cells[free[i]] = agent
	}

	return StepResult{
		Disgruntled: len(movers),
		Moved:       moves,
		Skipped:     len(movers) - moves,
	}
}
