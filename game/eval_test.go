package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	require.Zero(t, normalize(0, 0))
	require.Equal(t, 1.0, normalize(4, 0))
	require.Equal(t, -1.0, normalize(0, 4))
	require.InDelta(t, 0.2, normalize(6, 4), 1e-9)
}

func TestEvaluate(t *testing.T) {
	t.Run("symmetric start scores zero points", func(t *testing.T) {
		gs := placedGame(t, nil)
		for _, c := range Colors {
			require.Zero(t, EvaluateVictoryPoints(gs, c))
		}
	})

	t.Run("winner scores one", func(t *testing.T) {
		gs := placedGame(t, nil)
		gs.Won = Blue
		require.Equal(t, 1.0, EvaluateVictoryPoints(gs, Blue))
		require.Equal(t, -1.0, EvaluateVictoryPoints(gs, Red))
		require.Equal(t, 1.0, EvaluateBalanced(gs, Blue))
		require.Equal(t, -1.0, EvaluateBalanced(gs, Red))
	})

	t.Run("city raises production and points", func(t *testing.T) {
		gs := placedGame(t, nil)
		beforeProduction := EvaluateProduction(gs, Red)
		beforeBalanced := EvaluateBalanced(gs, Red)
		for i, b := range gs.Board.Buildings {
			if b.Owner == Red && b.Kind == Settlement {
				require.NoError(t, gs.Board.BuildCity(Red, NodeID(i)))
				break
			}
		}
		require.Greater(t, EvaluateVictoryPoints(gs, Red), 0.0)
		require.GreaterOrEqual(t, EvaluateProduction(gs, Red), beforeProduction)
		require.Greater(t, EvaluateBalanced(gs, Red), beforeBalanced)
	})

	t.Run("scores stay in range", func(t *testing.T) {
		gs := NewGameState(RandomMap(NewRandomizer(5)), NewStandardRules(), Colors, NewRandomizer(5))
		chooser := NewRandomizer(6)
		for step := 0; step < 500 && gs.Winner() == NoColor; step++ {
			actions := gs.LegalActions()
			require.NoError(t, gs.Apply(actions[chooser.Intn(len(actions))]))
			for _, c := range Colors {
				for _, evaluate := range []Evaluate{EvaluateVictoryPoints, EvaluateProduction, EvaluateBalanced} {
					score := evaluate(gs, c)
					require.GreaterOrEqual(t, score, -1.0)
					require.LessOrEqual(t, score, 1.0)
				}
			}
		}
	})

	t.Run("other state types panic", func(t *testing.T) {
		require.Panics(t, func() { EvaluateBalanced(nil, Red) })
	})
}
