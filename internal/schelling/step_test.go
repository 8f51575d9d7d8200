package schelling_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/schelling/internal/schelling"
)

func TestEmptySlotsAndDisgruntledAscending(t *testing.T) {
	g := parseGrid(t, "AA.", ".B.", "A.B")

	if got := schelling.EmptySlots(g); !slices.Equal(got, schelling.Indices{2, 3, 5, 7}) {
		t.Errorf("EmptySlots = %v, want [2 3 5 7]", got)
	}
	if got := schelling.DisgruntledAgents(g, 0.5); !slices.Equal(got, schelling.Indices{4, 6}) {
		t.Errorf("DisgruntledAgents = %v, want [4 6]", got)
	}
}

func TestAdvanceScriptedMoves(t *testing.T) {
	g := parseGrid(t, "AA.", ".B.", "A.B")

	// Free slots [2 3 5 7] shuffle to [3 5 7 2] with all-zero draws.
	rng := &scriptedRand{t: t, values: []int{0, 0, 0, 0}}
	res := schelling.Advance(g, 0.5, rng)

	if res.Disgruntled != 2 || res.Moved != 2 || res.Skipped != 0 {
		t.Errorf("StepResult = %+v, want 2 disgruntled, 2 moved, 0 skipped", res)
	}

	want := "AA.\nB.A\n..B"
	if g.String() != want {
		t.Errorf("grid after tick =\n%s\nwant\n%s", g, want)
	}
}

func TestAdvanceUsesStartOfTickState(t *testing.T) {
	// Both A agents are unhappy. Once the first moves, the second's
	// neighborhood changes, but it must still move this tick.
	g := parseGrid(t, "AB.", "BB.", "..A")

	movers := schelling.DisgruntledAgents(g, 0.5)
	if !slices.Equal(movers, schelling.Indices{0, 8}) {
		t.Fatalf("DisgruntledAgents = %v, want [0 8]", movers)
	}

	res := schelling.Advance(g, 0.5, rand.New(rand.NewSource(3)))
	if res.Moved != 2 {
		t.Errorf("Moved = %d, want 2", res.Moved)
	}
	if !g.Get(0).IsEmpty() || !g.Get(8).IsEmpty() {
		t.Errorf("both movers should have vacated their cells:\n%s", g)
	}
}

func TestAdvanceSkipsExcessMovers(t *testing.T) {
	// No free cells at all: nobody can move.
	full := parseGrid(t, "AB", "BA")
	before := full.Clone()

	res := schelling.Advance(full, 1, rand.New(rand.NewSource(1)))
	if res.Disgruntled != 4 || res.Moved != 0 || res.Skipped != 4 {
		t.Errorf("StepResult = %+v, want 4 disgruntled, 0 moved, 4 skipped", res)
	}
	if !full.Equal(before) {
		t.Errorf("grid changed without free cells:\n%s", full)
	}

	// One free cell, three unhappy agents: only the first mover relocates.
	tight := parseGrid(t, "AB", "B.")
	res = schelling.Advance(tight, 1, &scriptedRand{t: t, values: []int{0}})
	if res.Disgruntled != 3 || res.Moved != 1 || res.Skipped != 2 {
		t.Errorf("StepResult = %+v, want 3 disgruntled, 1 moved, 2 skipped", res)
	}
	if tight.String() != ".B\nBA" {
		t.Errorf("grid after tight tick =\n%s\nwant\n.B\nBA", tight)
	}
}

func TestAdvanceConservesPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g, err := schelling.Build(900, schelling.Distribution{A: 0.4, B: 0.3, Empty: 0.3}, 0.6, rng)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := g.Counts()

	for tick := 0; tick < 40; tick++ {
		schelling.Advance(g, 0.6, rng)
		if got := g.Counts(); got != want {
			t.Fatalf("tick %d: counts %+v, want %+v", tick, got, want)
		}
	}
}

func TestAdvanceNeverMovesSatisfiedAgents(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g, err := schelling.Build(400, schelling.DefaultDistribution(), 0.5, rng)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for tick := 0; tick < 10; tick++ {
		before := g.Clone()
		schelling.Advance(g, 0.5, rng)

		for i := 0; i < before.Len(); i++ {
			c := before.Get(i)
			if c.IsEmpty() || schelling.IsDisgruntled(before, i, 0.5) {
				continue
			}
			if g.Get(i) != c {
				t.Fatalf("tick %d: satisfied agent at %d moved", tick, i)
			}
		}
	}
}

func TestAdvanceSettledWorldIsStable(t *testing.T) {
	g := parseGrid(t, "AA..", "AA..", "..BB", "..BB")
	before := g.Clone()

	res := schelling.Advance(g, 0.5, rand.New(rand.NewSource(8)))
	if !res.Settled() {
		t.Errorf("expected settled world, got %+v", res)
	}
	if !g.Equal(before) {
		t.Errorf("settled world changed:\n%s", g)
	}
}
