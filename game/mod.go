package game

type StateHash uint64

// State is what a search agent needs from a game. Play never mutates the
// receiver; it returns the successor state.
type State interface {
	Player() Color
	LegalActions() []Action
	Play(Action) State
	Hash() StateHash
	Winner() Color
}

// Evaluate scores a state between -1 and 1 from color's perspective.
type Evaluate func(s State, color Color) float64

var _ State = (*GameState)(nil)
