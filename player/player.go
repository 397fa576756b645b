package player

import (
	"settlers/engine"
	"settlers/game"

	"golang.org/x/exp/rand"
)

// First always plays the first offered action. Useful as a deterministic
// opponent in tests.
type First struct {
	color game.Color
}

func NewFirst(color game.Color) *First {
	return &First{color: color}
}

func (p *First) Color() game.Color {
	return p.color
}

func (p *First) Decide(_ *game.GameState, actions []game.Action) game.Action {
	return actions[0]
}

// Random picks uniformly among the offered actions, seeded for replay.
type Random struct {
	color game.Color
	rng   *rand.Rand
}

func NewRandom(color game.Color, seed uint64) *Random {
	return &Random{color: color, rng: rand.New(rand.NewSource(seed))}
}

func (p *Random) Color() game.Color {
	return p.color
}

func (p *Random) Decide(_ *game.GameState, actions []game.Action) game.Action {
	return actions[p.rng.Intn(len(actions))]
}

var (
	_ engine.Player = (*First)(nil)
	_ engine.Player = (*Random)(nil)
)
