package engine_test

import (
	"bytes"
	"context"
	"testing"

	"settlers/engine"
	"settlers/engine/mocks"
	"settlers/game"
	"settlers/player"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newState(seed uint64, colors ...game.Color) *game.GameState {
	return game.NewGameState(game.BaseMap(), game.NewStandardRules(), colors, game.NewRandomizer(seed))
}

func mockPlayer(ctrl *gomock.Controller, color game.Color) *mocks.MockPlayer {
	p := mocks.NewMockPlayer(ctrl)
	p.EXPECT().Color().Return(color).AnyTimes()
	return p
}

func TestNewGame(t *testing.T) {
	t.Run("every color needs a player", func(t *testing.T) {
		_, err := engine.NewGame(newState(1, game.Red, game.Blue), []engine.Player{player.NewFirst(game.Red)})
		require.ErrorIs(t, err, engine.ErrMissingPlayer)
	})

	t.Run("duplicate colors", func(t *testing.T) {
		_, err := engine.NewGame(newState(1, game.Red), []engine.Player{player.NewFirst(game.Red), player.NewFirst(game.Red)})
		require.Error(t, err)
	})

	t.Run("ids are unique", func(t *testing.T) {
		a, err := engine.NewGame(newState(1, game.Red), []engine.Player{player.NewFirst(game.Red)})
		require.NoError(t, err)
		b, err := engine.NewGame(newState(1, game.Red), []engine.Player{player.NewFirst(game.Red)})
		require.NoError(t, err)
		require.NotEqual(t, a.ID, b.ID)
	})
}

func TestPlayTick(t *testing.T) {
	t.Run("player decides on a copy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		red := mockPlayer(ctrl, game.Red)
		g, err := engine.NewGame(newState(1, game.Red), []engine.Player{red})
		require.NoError(t, err)

		red.EXPECT().Decide(gomock.Any(), gomock.Any()).DoAndReturn(
			func(view *game.GameState, actions []game.Action) game.Action {
				require.NotSame(t, g.State(), view, "Player should get a copy")
				require.Equal(t, g.State().LegalActions(), actions)
				return actions[0]
			})

		action, err := g.PlayTick()
		require.NoError(t, err)
		require.Equal(t, game.BuildSettlementAction, action.Type())
		require.Equal(t, 1, g.Ticks())
		require.Equal(t, game.Red, g.State().Board.Buildings[0].Owner)
	})

	t.Run("view hides the deck order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		red := mockPlayer(ctrl, game.Red)
		g, err := engine.NewGame(newState(1, game.Red), []engine.Player{red}, engine.WithViewSeed(8))
		require.NoError(t, err)

		red.EXPECT().Decide(gomock.Any(), gomock.Any()).DoAndReturn(
			func(view *game.GameState, actions []game.Action) game.Action {
				require.Equal(t, g.State().Hash(), view.Hash(), "Observable state should match")
				require.ElementsMatch(t, g.State().DevDeck, view.DevDeck)
				require.NotEqual(t, g.State().DevDeck, view.DevDeck, "Deck order should be reshuffled")
				return actions[0]
			})
		_, err = g.PlayTick()
		require.NoError(t, err)
	})

	t.Run("illegal choice is rejected without side effects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		red := mockPlayer(ctrl, game.Red)
		g, err := engine.NewGame(newState(1, game.Red), []engine.Player{red})
		require.NoError(t, err)
		hash := g.State().Hash()

		red.EXPECT().Decide(gomock.Any(), gomock.Any()).Return(game.Roll{Color: game.Red})
		_, err = g.PlayTick()
		require.ErrorIs(t, err, game.ErrActionNotLegalNow)
		require.Equal(t, hash, g.State().Hash())
		require.Zero(t, g.Ticks())
	})

	t.Run("observer sees every tick", func(t *testing.T) {
		var ticks []engine.Tick
		g, err := engine.NewGame(newState(1, game.Red, game.Blue),
			[]engine.Player{player.NewFirst(game.Red), player.NewFirst(game.Blue)},
			engine.WithObserver(func(tick engine.Tick) { ticks = append(ticks, tick) }))
		require.NoError(t, err)

		for i := 0; i < 4; i++ {
			_, err := g.PlayTick()
			require.NoError(t, err)
		}
		require.Len(t, ticks, 4)
		require.Equal(t, game.Red, ticks[0].Player)
		require.Equal(t, game.Red, ticks[1].Player, "Settlement then road")
		require.Equal(t, game.Blue, ticks[2].Player)
		require.Equal(t, 4, ticks[3].Number)
	})
}

func TestExecute(t *testing.T) {
	g, err := engine.NewGame(newState(1, game.Red), []engine.Player{player.NewFirst(game.Red)})
	require.NoError(t, err)

	t.Run("wrong phase", func(t *testing.T) {
		err := g.Execute(game.EndTurn{Color: game.Red})
		require.ErrorIs(t, err, game.ErrActionNotLegalNow)
	})

	t.Run("specific cause is kept", func(t *testing.T) {
		require.NoError(t, g.Execute(game.BuildSettlement{Color: game.Red, Node: 0}))

		m := g.State().Map
		var far game.Edge
		for _, e := range m.Edges {
			if e.A != 0 && e.B != 0 {
				far = e
				break
			}
		}
		err := g.Execute(game.BuildRoad{Color: game.Red, Edge: far})
		require.ErrorIs(t, err, game.ErrActionNotLegalNow)
		require.ErrorIs(t, err, game.ErrIllegalPlacement)
	})

	t.Run("nil action", func(t *testing.T) {
		require.ErrorIs(t, g.Execute(nil), game.ErrActionNotLegalNow)
	})
}

func TestRun(t *testing.T) {
	t.Run("random players", func(t *testing.T) {
		colors := []game.Color{game.Red, game.Blue, game.White}
		state := game.NewGameState(game.BaseMap(), &game.StandardRules{VictoryPoints: 4}, colors, game.NewRandomizer(3))
		var players []engine.Player
		for i, c := range colors {
			players = append(players, player.NewRandom(c, uint64(i)))
		}
		g, err := engine.NewGame(state, players)
		require.NoError(t, err)

		winner, err := g.Run(context.Background(), 5000)
		require.NoError(t, err)
		require.LessOrEqual(t, g.Ticks(), 5000)
		require.Equal(t, g.Winner(), winner)
		if winner != game.NoColor {
			require.GreaterOrEqual(t, g.State().ActualVictoryPoints(winner), 4)
			_, err := g.PlayTick()
			require.ErrorIs(t, err, engine.ErrGameOver)
		}
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		g, err := engine.NewGame(newState(1, game.Red), []engine.Player{player.NewFirst(game.Red)})
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		winner, err := g.Run(ctx, 100)
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, game.NoColor, winner)
		require.Zero(t, g.Ticks())
	})

	t.Run("tick limit", func(t *testing.T) {
		g, err := engine.NewGame(newState(1, game.Red, game.Blue),
			[]engine.Player{player.NewFirst(game.Red), player.NewFirst(game.Blue)})
		require.NoError(t, err)

		winner, err := g.Run(context.Background(), 10)
		require.NoError(t, err)
		require.Equal(t, game.NoColor, winner)
		require.Equal(t, 10, g.Ticks())
	})
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	g, err := engine.NewGame(newState(1, game.Red), []engine.Player{player.NewFirst(game.Red)},
		engine.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	require.NoError(t, err)

	_, err = g.Run(context.Background(), 2)
	require.NoError(t, err)
	require.Contains(t, buf.String(), g.ID, "Entries should carry the game id")
	require.Contains(t, buf.String(), "BUILD_SETTLEMENT")
}
