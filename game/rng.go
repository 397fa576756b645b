package game

import "golang.org/x/exp/rand"

// Randomizer is the single source of chance in a game: dice, shuffles,
// robber steals and discards all draw from it. Substitute it to force
// outcomes in tests.
type Randomizer interface {
	RollDice() (int, int)
	Intn(n int) int
	// Clone returns an independent randomizer positioned at the same point
	// of the stream.
	Clone() Randomizer
}

type pcgRandomizer struct {
	src *rand.PCGSource
	rng *rand.Rand
}

// NewRandomizer returns a PCG-backed randomizer seeded with seed.
func NewRandomizer(seed uint64) Randomizer {
	src := &rand.PCGSource{}
	src.Seed(seed)
	return &pcgRandomizer{src: src, rng: rand.New(src)}
}

func (p *pcgRandomizer) RollDice() (int, int) {
	return p.rng.Intn(6) + 1, p.rng.Intn(6) + 1
}

func (p *pcgRandomizer) Intn(n int) int {
	return p.rng.Intn(n)
}

func (p *pcgRandomizer) Clone() Randomizer {
	src := *p.src
	return &pcgRandomizer{src: &src, rng: rand.New(&src)}
}

// shuffle is a Fisher-Yates shuffle driven by r.
func shuffle(r Randomizer, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}
