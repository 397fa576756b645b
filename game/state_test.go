package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedRandomizer replays rolls in a loop and always picks the first option.
type fixedRandomizer struct {
	rolls [][2]int
	next  int
}

func (f *fixedRandomizer) RollDice() (int, int) {
	roll := f.rolls[f.next%len(f.rolls)]
	f.next++
	return roll[0], roll[1]
}

func (f *fixedRandomizer) Intn(n int) int { return 0 }

func (f *fixedRandomizer) Clone() Randomizer {
	cp := *f
	return &cp
}

// placedGame finishes the initial placement by always taking the first legal
// action, then empties every hand into the bank.
func placedGame(t *testing.T, r Randomizer) *GameState {
	t.Helper()
	if r == nil {
		r = &fixedRandomizer{rolls: [][2]int{{2, 3}}}
	}
	gs := NewGameState(BaseMap(), NewStandardRules(), Colors, r)
	for gs.Prompt == InitialBuildPrompt {
		require.NoError(t, gs.Apply(gs.LegalActions()[0]))
	}
	for _, p := range gs.Players {
		gs.Bank.Return(p.Hand)
		p.Hand = ResourceCounts{}
	}
	return gs
}

func give(t *testing.T, gs *GameState, color Color, cards ResourceCounts) {
	t.Helper()
	require.NoError(t, gs.Bank.DrawAll(cards))
	p := gs.PlayerState(color)
	p.Hand = p.Hand.Add(cards)
}

func rolled(t *testing.T, gs *GameState) {
	t.Helper()
	require.Equal(t, PlayTurnPrompt, gs.Prompt)
	gs.CurrentPlayer().HasRolled = true
}

func TestNewGameState(t *testing.T) {
	gs := NewGameState(BaseMap(), NewStandardRules(), Colors, NewRandomizer(1))

	require.Equal(t, InitialBuildPrompt, gs.Prompt)
	require.Equal(t, Red, gs.Player())
	require.Equal(t, 95, gs.Bank.Total())
	require.Len(t, gs.DevDeck, 25)
	require.Equal(t, Cube{}, gs.Robber())
	require.Equal(t, NoColor, gs.Winner())
	for _, p := range gs.Players {
		require.Equal(t, 5, p.SettlementsLeft)
		require.Equal(t, 4, p.CitiesLeft)
		require.Equal(t, 15, p.RoadsLeft)
	}

	for _, a := range gs.LegalActions() {
		require.IsType(t, BuildSettlement{}, a, "Opening actions should all be settlements")
	}
	require.Len(t, gs.LegalActions(), 54)
}

func TestInitialPlacement(t *testing.T) {
	gs := NewGameState(BaseMap(), NewStandardRules(), Colors, NewRandomizer(3))

	var order []Color
	for gs.Prompt == InitialBuildPrompt {
		actions := gs.LegalActions()
		require.NotEmpty(t, actions)
		if _, ok := actions[0].(BuildSettlement); ok {
			order = append(order, gs.Player())
		} else {
			for _, a := range actions {
				require.IsType(t, BuildRoad{}, a, "A settlement must be followed by its road")
			}
		}
		require.NoError(t, gs.Apply(actions[len(actions)/2]))
	}

	t.Run("snake order", func(t *testing.T) {
		require.Equal(t, []Color{Red, Blue, White, Orange, Orange, White, Blue, Red}, order)
	})

	t.Run("ends on the first seat's turn", func(t *testing.T) {
		require.Equal(t, PlayTurnPrompt, gs.Prompt)
		require.Equal(t, Red, gs.Player())
		require.Equal(t, []Action{Roll{Color: Red}}, gs.LegalActions())
	})

	t.Run("each player placed two of each", func(t *testing.T) {
		for _, p := range gs.Players {
			require.Equal(t, 2, gs.PublicVictoryPoints(p.Color))
			require.Equal(t, 2, gs.Board.CountRoads(p.Color))
			require.Equal(t, 3, p.SettlementsLeft)
			require.Equal(t, 13, p.RoadsLeft)
		}
	})

	t.Run("second settlement is paid from the bank", func(t *testing.T) {
		held := 0
		for _, p := range gs.Players {
			held += p.Hand.Total()
		}
		require.Positive(t, held)
		require.Equal(t, 95, gs.Bank.Total()+held)
	})

	t.Run("two players", func(t *testing.T) {
		gs := NewGameState(BaseMap(), NewStandardRules(), []Color{Red, Blue}, NewRandomizer(4))
		var order []Color
		for gs.Prompt == InitialBuildPrompt {
			actions := gs.LegalActions()
			if _, ok := actions[0].(BuildSettlement); ok {
				order = append(order, gs.Player())
			}
			require.NoError(t, gs.Apply(actions[len(actions)/3]))
		}

		require.Equal(t, []Color{Red, Blue, Blue, Red}, order)
		require.Equal(t, Red, gs.Player())
		for _, c := range []Color{Red, Blue} {
			require.Equal(t, 2, gs.PublicVictoryPoints(c))
			require.Equal(t, 2, gs.ActualVictoryPoints(c))
		}
	})
}

func TestCopy(t *testing.T) {
	gs := placedGame(t, nil)
	hash := gs.Hash()

	cp := gs.Copy()
	require.Equal(t, hash, cp.Hash())

	give(t, cp, Red, ResourceCounts{Wood: 1})
	require.NoError(t, cp.Board.MoveRobber(directions[0]))
	cp.DevDeck[0] = VictoryPoint
	require.Equal(t, hash, gs.Hash(), "Mutating a copy should not touch the original")
	require.NotEqual(t, hash, cp.Hash())

	t.Run("play leaves the receiver untouched", func(t *testing.T) {
		next := gs.Play(Roll{Color: Red})
		require.Equal(t, hash, gs.Hash())
		require.False(t, gs.PlayerState(Red).HasRolled)
		require.True(t, next.(*GameState).PlayerState(Red).HasRolled)
	})

	t.Run("play panics on an illegal action", func(t *testing.T) {
		require.Panics(t, func() { gs.Play(EndTurn{Color: Red}) })
	})
}

func TestDeterminize(t *testing.T) {
	gs := placedGame(t, NewRandomizer(5))
	a, b := gs.Copy(), gs.Copy()
	a.Determinize(NewRandomizer(1))
	b.Determinize(NewRandomizer(1))
	require.Equal(t, a.DevDeck, b.DevDeck)

	a.Apply(Roll{Color: Red})
	b.Apply(Roll{Color: Red})
	require.Equal(t, a.LastRoll, b.LastRoll)
	require.Equal(t, a.Hash(), b.Hash())
}

func TestLongestRoadTitle(t *testing.T) {
	gs := NewGameState(BaseMap(), NewStandardRules(), Colors, NewRandomizer(1))
	m := gs.Map
	red := simplePath(m, 0, 7, nil)
	var blue []NodeID
	for start := NodeID(m.NumNodes() - 1); blue == nil && start >= 0; start-- {
		blue = simplePath(m, start, 7, append(red, m.NodeNeighbors[red[0]]...))
	}
	require.NotNil(t, blue)

	build := func(color Color, path []NodeID, roads int) {
		if gs.Board.CountBuildings(color, Settlement) == 0 {
			require.NoError(t, gs.Board.BuildSettlement(color, path[0], true))
		}
		for i := gs.Board.CountRoads(color) + 1; i <= roads; i++ {
			require.NoError(t, gs.Board.BuildRoad(color, NewEdge(path[i-1], path[i])))
		}
		gs.updateLongestRoad()
	}

	build(Red, red, 4)
	require.Equal(t, NoColor, gs.LongestRoadHolder, "Four roads are not enough")

	build(Red, red, 5)
	require.Equal(t, Red, gs.LongestRoadHolder)
	require.Equal(t, 2, gs.PublicVictoryPoints(Red)-gs.Board.CountBuildings(Red, Settlement))

	build(Blue, blue, 5)
	require.Equal(t, Red, gs.LongestRoadHolder, "Holder keeps the title on a tie")

	build(Blue, blue, 6)
	require.Equal(t, Blue, gs.LongestRoadHolder, "A strictly longer road takes the title")
	require.Equal(t, 6, gs.PlayerState(Blue).LongestRoadLength)

	t.Run("tie among challengers leaves it unclaimed", func(t *testing.T) {
		gs.LongestRoadHolder = NoColor
		build(Red, red, 6)
		require.Equal(t, NoColor, gs.LongestRoadHolder)
	})
}

func TestHash(t *testing.T) {
	a := placedGame(t, nil)
	b := placedGame(t, nil)
	require.Equal(t, a.Hash(), b.Hash(), "Same setup should hash the same")

	give(t, b, Blue, ResourceCounts{Sheep: 1})
	require.NotEqual(t, a.Hash(), b.Hash())
}
