package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"settlers/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const MaxTicks = 10000

var (
	ErrGameOver      = errors.New("game is over")
	ErrMissingPlayer = errors.New("no player for color")
)

//go:generate go tool mockgen -destination=./mocks/player_mock.go -package=mocks . Player

// Player picks one of the offered actions. The view is a determinized copy
// the player may mutate or search from freely.
type Player interface {
	Color() game.Color
	Decide(view *game.GameState, actions []game.Action) game.Action
}

// Tick describes one executed action.
type Tick struct {
	Number  int
	Player  game.Color
	Action  game.Action
	Elapsed time.Duration // time the player spent deciding
}

type Option func(g *Game)

// WithLogger replaces the global logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithViewSeed seeds the randomizers of the views handed to players.
func WithViewSeed(seed uint64) Option {
	return func(g *Game) {
		g.views = rand.New(rand.NewSource(seed))
	}
}

// WithObserver registers a callback run after every executed tick.
func WithObserver(observe func(Tick)) Option {
	return func(g *Game) {
		if observe != nil {
			g.observe = observe
		}
	}
}

// Game drives a single game: it asks the acting player for a choice, checks
// it against the legal set and applies it.
type Game struct {
	ID      string
	state   *game.GameState
	players map[game.Color]Player
	ticks   int
	logger  zerolog.Logger
	observe func(Tick)
	views   *rand.Rand
}

// NewGame seats players on state. Every color in state needs exactly one player.
func NewGame(state *game.GameState, players []Player, options ...Option) (*Game, error) {
	g := &Game{
		ID:      uuid.NewString(),
		state:   state,
		players: make(map[game.Color]Player, len(players)),
		logger:  log.Logger,
		observe: func(Tick) {},
		views:   rand.New(rand.NewSource(uint64(state.Hash()))),
	}
	for _, p := range players {
		if _, ok := g.players[p.Color()]; ok {
			return nil, fmt.Errorf("two players for %s", p.Color())
		}
		g.players[p.Color()] = p
	}
	for _, c := range state.Colors() {
		if _, ok := g.players[c]; !ok {
			return nil, fmt.Errorf("%w %s", ErrMissingPlayer, c)
		}
	}
	for _, option := range options {
		option(g)
	}
	g.logger = g.logger.With().Str("game", g.ID).Logger()
	return g, nil
}

func (g *Game) State() *game.GameState {
	return g.state
}

func (g *Game) Winner() game.Color {
	return g.state.Winner()
}

// Ticks is the number of executed actions.
func (g *Game) Ticks() int {
	return g.ticks
}

// PlayTick lets the acting player choose and executes its choice.
func (g *Game) PlayTick() (game.Action, error) {
	if g.state.Winner() != game.NoColor {
		return nil, ErrGameOver
	}
	color := g.state.Player()
	player := g.players[color]
	actions := g.state.LegalActions()

	// The view gets its own dice and deck order so it cannot foresee chance.
	view := g.state.Copy()
	view.Determinize(game.NewRandomizer(g.views.Uint64()))

	start := time.Now()
	action := player.Decide(view, actions)
	elapsed := time.Since(start)

	if err := g.Execute(action); err != nil {
		return action, fmt.Errorf("%s at tick %d: %w", color, g.ticks, err)
	}
	g.observe(Tick{Number: g.ticks, Player: color, Action: action, Elapsed: elapsed})
	return action, nil
}

// Execute applies action if it is in the legal set. A rejected action reports
// ErrActionNotLegalNow together with the specific cause.
func (g *Game) Execute(action game.Action) error {
	if g.state.Winner() != game.NoColor {
		return ErrGameOver
	}
	if !game.ContainsAction(g.state.LegalActions(), action) {
		// Apply a copy to learn why.
		err := g.state.Copy().Apply(action)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %T is not offered", game.ErrActionNotLegalNow, action)
		case errors.Is(err, game.ErrActionNotLegalNow):
			return err
		default:
			return fmt.Errorf("%w: %w", game.ErrActionNotLegalNow, err)
		}
	}
	if err := g.state.Apply(action); err != nil {
		return err
	}
	g.ticks++

	g.logger.Debug().
		Int("tick", g.ticks).
		Stringer("player", action.Player()).
		Stringer("action", action.Type()).
		Stringer("prompt", g.state.Prompt).
		Msgf("%+v", action)
	if w := g.state.Winner(); w != game.NoColor {
		g.logger.Info().Msgf("%s won after %d ticks and %d turns", w, g.ticks, g.state.Turns)
	}
	return nil
}

// Run plays ticks until someone wins, maxTicks actions have been executed or
// ctx is done. The winner is NoColor when the game was cut short.
func (g *Game) Run(ctx context.Context, maxTicks int) (game.Color, error) {
	if maxTicks <= 0 {
		maxTicks = MaxTicks
	}
	g.logger.Info().Msgf("starting game with %d players", len(g.players))
	for g.state.Winner() == game.NoColor && g.ticks < maxTicks {
		if err := ctx.Err(); err != nil {
			return game.NoColor, err
		}
		if _, err := g.PlayTick(); err != nil {
			return game.NoColor, err
		}
	}
	if g.state.Winner() == game.NoColor {
		g.logger.Info().Msgf("stopped after %d ticks without a winner", g.ticks)
	}
	return g.state.Winner(), nil
}
