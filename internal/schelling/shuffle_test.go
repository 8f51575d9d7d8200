package schelling_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/schelling/internal/schelling"
)

// scriptedRand replays fixed draws and records the bounds it was asked for.
type scriptedRand struct {
	t      *testing.T
	values []int
	bounds []int
}

func (r *scriptedRand) Intn(n int) int {
	r.t.Helper()
	pos := len(r.bounds)
	r.bounds = append(r.bounds, n)
	if pos >= len(r.values) {
		r.t.Fatalf("scripted stream exhausted after %d draws", pos)
	}
	v := r.values[pos]
	if v < 0 || v >= n {
		r.t.Fatalf("scripted value %d outside [0,%d)", v, n)
	}
	return v
}

func TestShufflePinnedStream(t *testing.T) {
	rng := &scriptedRand{t: t, values: []int{1, 3, 0, 1, 0}}
	seq := schelling.Sequential(5)

	schelling.Shuffle[int](seq, rng)

	want := schelling.Indices{2, 4, 0, 3, 1}
	if !slices.Equal(seq, want) {
		t.Errorf("Shuffle = %v, want %v", seq, want)
	}
	if !slices.Equal(rng.bounds, []int{5, 4, 3, 2, 1}) {
		t.Errorf("draw bounds = %v, want [5 4 3 2 1]", rng.bounds)
	}
}

func TestShuffleTrivialLengths(t *testing.T) {
	empty := schelling.Indices{}
	schelling.Shuffle[int](empty, &scriptedRand{t: t})
	if len(empty) != 0 {
		t.Errorf("empty sequence changed length to %d", len(empty))
	}

	single := schelling.Indices{7}
	schelling.Shuffle[int](single, &scriptedRand{t: t, values: []int{0}})
	if single[0] != 7 {
		t.Errorf("single element changed to %d", single[0])
	}
}

func TestShufflePreservesElements(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, n := range []int{2, 3, 10, 257} {
		seq := schelling.Sequential(n)
		schelling.Shuffle[int](seq, rng)

		sorted := slices.Clone(seq)
		slices.Sort(sorted)
		if !slices.Equal(sorted, schelling.Sequential(n)) {
			t.Errorf("n=%d: shuffle lost or duplicated elements: %v", n, seq)
		}
	}
}

func TestShuffleSeededIsReproducible(t *testing.T) {
	a := schelling.Sequential(50)
	b := schelling.Sequential(50)

	schelling.Shuffle[int](a, rand.New(rand.NewSource(2024)))
	schelling.Shuffle[int](b, rand.New(rand.NewSource(2024)))

	if !slices.Equal(a, b) {
		t.Errorf("same seed produced different orders:\n%v\n%v", a, b)
	}
}

func TestShuffleUniformPositions(t *testing.T) {
	const (
		n      = 5
		trials = 20000
	)
	rng := rand.New(rand.NewSource(7))
	var freq [n][n]int // freq[position][value]

	for range trials {
		seq := schelling.Sequential(n)
		schelling.Shuffle[int](seq, rng)
		for pos, v := range seq {
			freq[pos][v]++
		}
	}

	expected := float64(trials) / n
	tolerance := expected * 0.1
	for pos := range n {
		for v := range n {
			got := float64(freq[pos][v])
			if got < expected-tolerance || got > expected+tolerance {
				t.Errorf("value %d at position %d: %v times, want %.0f±%.0f", v, pos, got, expected, tolerance)
			}
		}
	}
}

func TestShuffleGridAdapter(t *testing.T) {
	g := schelling.GridFromRows([][]schelling.Cell{
		{schelling.Agent(schelling.KindA), schelling.Agent(schelling.KindB)},
		{schelling.Empty(), schelling.Agent(schelling.KindA)},
	})
	before := g.Counts()

	// Draws: swap 0<->3, 2<->2, 0<->1, 0<->0
	schelling.Shuffle[schelling.Cell](g, &scriptedRand{t: t, values: []int{0, 2, 0, 0}})

	want := "BA\n.A"
	if g.String() != want {
		t.Errorf("grid after shuffle =\n%s\nwant\n%s", g, want)
	}
	if g.Counts() != before {
		t.Errorf("counts changed: %+v -> %+v", before, g.Counts())
	}
}
