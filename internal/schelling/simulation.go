package schelling

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Params configures a simulation run.
type Params struct {
	Locations    int          // Total number of locations; the grid side is round(sqrt)
	Distribution Distribution // Initial share of A, B and empty cells
	Threshold    float64      // Minimum same-kind neighbor fraction an agent accepts
	Seed         int64        // RNG seed; 0 picks one from the clock
}

// DefaultParams returns the classic setup: 65536 cells, a quarter of each
// kind, half empty, agents wanting 70% like neighbors.
func DefaultParams() Params {
	return Params{
		Locations:    65536,
		Distribution: DefaultDistribution(),
		Threshold:    0.7,
	}
}

// Validate reports configuration errors before a run starts.
func (p Params) Validate() error {
	if p.Locations <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLocations, p.Locations)
	}
	if err := p.Distribution.Validate(); err != nil {
		return err
	}
	return ValidateThreshold(p.Threshold)
}

// Simulation owns one world and the random stream that drives it.
// It is not safe for concurrent use: the host must not read the grid while
// Advance is running.
type Simulation struct {
	params Params
	grid   *Grid
	rng    *rand.Rand
	tick   uint64
	last   StepResult
}

// Initialize builds the initial world for p.
func Initialize(p Params) (*Simulation, error) {
	if p.Seed == 0 {
		p.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(p.Seed))

	grid, err := Build(p.Locations, p.Distribution, p.Threshold, rng)
	if err != nil {
		return nil, err
	}

	return &Simulation{
		params: p,
		grid:   grid,
		rng:    rng,
	}, nil
}

// Advance runs one tick with the configured threshold.
func (s *Simulation) Advance() StepResult {
	return s.AdvanceWith(s.params.Threshold)
}

// AdvanceWith runs one tick with an explicit threshold.
// Out-of-range thresholds are clamped to [0,1].
func (s *Simulation) AdvanceWith(threshold float64) StepResult {
	threshold = max(0, min(1, threshold))
	s.last = Advance(s.grid, threshold, s.rng)
	s.tick++
	return s.last
}

// CellAt returns the cell at (row, col). Off-grid positions read as empty.
func (s *Simulation) CellAt(row, col int) Cell {
	return s.grid.At(row, col)
}

// Side returns the grid side length.
func (s *Simulation) Side() int {
	return s.grid.Side()
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// Params returns the parameters the simulation was built with.
// Seed holds the effective seed, including a clock-derived one.
func (s *Simulation) Params() Params {
	return s.params
}

// LastStep returns the result of the most recent tick.
func (s *Simulation) LastStep() StepResult {
	return s.last
}

// Snapshot returns a copy of the grid that stays valid across later ticks.
func (s *Simulation) Snapshot() *Grid {
	return s.grid.Clone()
}

// Stats measures the current world.
func (s *Simulation) Stats() Stats {
	st := Measure(s.grid, s.params.Threshold)
	st.Tick = s.tick
	return st
}

// RunUntilSettled advances until no agent is unhappy or maxTicks ticks have
// run. Returns the ticks taken and whether the world settled.
func (s *Simulation) RunUntilSettled(maxTicks int) (int, bool) {
	steps, settled, _ := s.Run(context.Background(), maxTicks, nil)
	return steps, settled
}

// Run is RunUntilSettled with cancellation. ctx is checked before every
// tick and onTick, when set, sees each tick's result. The error is ctx.Err()
// if the run was cut short.
func (s *Simulation) Run(ctx context.Context, maxTicks int, onTick func(StepResult)) (int, bool, error) {
	steps := 0
	for steps < maxTicks {
		if err := ctx.Err(); err != nil {
			return steps, false, err
		}
		res := s.Advance()
		steps++
		if onTick != nil {
			onTick(res)
		}
		if res.Settled() {
			return steps, true, nil
		}
	}
	return steps, false, nil
}
