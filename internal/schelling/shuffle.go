package schelling

// Rand is the random stream consumed by Shuffle.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Sequence gives index-based access to a fixed-length collection.
type Sequence[T any] interface {
	Len() int
	Get(i int) T
	Set(i int, v T)
}

// Shuffle permutes seq in place with the tail-to-head Fisher-Yates walk:
// for each i, a position n in [0, L-1-i] is drawn and swapped with L-1-i.
// Every ordering is equally likely given a uniform stream.
func Shuffle[T any](seq Sequence[T], rng Rand) {
	length := seq.Len()
	for i := 0; i < length; i++ {
		last := length - 1 - i
		n := rng.Intn(last + 1)
		tmp := seq.Get(n)
		seq.Set(n, seq.Get(last))
		seq.Set(last, tmp)
	}
}

// Indices is a flat list of linear grid indices.
type Indices []int

// Len returns the number of indices.
func (s Indices) Len() int { return len(s) }

// Get returns the index stored at position i.
func (s Indices) Get(i int) int { return s[i] }

// Set stores v at position i.
func (s Indices) Set(i int, v int) { s[i] = v }

// Sequential returns [0, 1, ..., n-1].
func Sequential(n int) Indices {
	s := make(Indices, n)
	for i := range s {
		s[i] = i
	}
	return s
}
