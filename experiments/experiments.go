package experiments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"settlers/config"
	"settlers/engine"
	"settlers/experiments/metrics"
	"settlers/game"
	"settlers/player"
	"settlers/searcher"
	"settlers/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Result summarizes a finished batch.
type Result struct {
	Dir   string // where the CSV files went
	Games []metrics.GameRecord
	Wins  map[game.Color]int
}

// Run plays cfg.Games games, at most cfg.Parallelism at a time, and writes
// agent configs, game records and move records under cfg.OutputDir.
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	writer, err := metrics.NewWriter(cfg.OutputDir, cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(agentConfigs(cfg)); err != nil {
		return nil, err
	}
	log.Info().Msgf("starting %s experiment with %d games in %s", cfg.Name, cfg.Games, writer.Dir())

	games := make([]metrics.GameRecord, cfg.Games)
	moves := make([][]metrics.MoveRecord, cfg.Games)
	var mu sync.Mutex
	wins := map[game.Color]int{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	for i := 0; i < cfg.Games; i++ {
		g.Go(func() error {
			record, moveRecords, err := PlayGame(gctx, cfg, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			games[i] = metrics.GameRecord{Index: i + 1, GameMetric: record}
			moves[i] = moveRecords

			mu.Lock()
			wins[record.Winner]++
			mu.Unlock()
			log.Info().
				Int("game", i+1).
				Stringer("winner", record.Winner).
				Int("moves", record.TotalMoves).
				Int("turns", record.Turns).
				Dur("duration", record.Duration).
				Msgf("completed game %d of %d", i+1, cfg.Games)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := writer.WriteGameRecords(games); err != nil {
		return nil, err
	}
	var all []metrics.MoveRecord
	for _, m := range moves {
		all = append(all, m...)
	}
	if err := writer.WriteMoveRecords(all); err != nil {
		return nil, err
	}
	log.Info().Msgf("completed %s experiment, wins %v", cfg.Name, wins)

	return &Result{Dir: writer.Dir(), Games: games, Wins: wins}, nil
}

// PlayGame plays the i-th game of cfg. The seating rotates by i so every
// configured player gets to start, and all randomness derives from
// cfg.Seed+i.
func PlayGame(ctx context.Context, cfg *config.Config, i int) (metrics.GameMetric, []metrics.MoveRecord, error) {
	seed := cfg.Seed + uint64(i)
	rng := game.NewRandomizer(seed)
	m := game.BaseMap()
	if cfg.RandomMap {
		m = game.RandomMap(rng)
	}

	seats := rotate(cfg.Players, i)
	colors := make([]game.Color, len(seats))
	players := make([]engine.Player, len(seats))
	byColor := make(map[game.Color]engine.Player, len(seats))
	for j, seat := range seats {
		p, err := NewPlayer(seat, seed*uint64(len(game.Colors)+1)+uint64(j))
		if err != nil {
			return metrics.GameMetric{}, nil, err
		}
		colors[j] = p.Color()
		players[j] = p
		byColor[p.Color()] = p
	}

	state := game.NewGameState(m, &game.StandardRules{VictoryPoints: cfg.VictoryPoints}, colors, rng)
	var moves []metrics.MoveMetric
	observe := func(tick engine.Tick) {
		search := metrics.SearchMetric{Duration: tick.Elapsed}
		if a, ok := byColor[tick.Player].(agent.Agent); ok && a.LastMetric().Episodes > 0 {
			search = a.LastMetric()
		}
		moves = append(moves, metrics.MoveMetric{
			Step:         tick.Number,
			Player:       tick.Player,
			Action:       tick.Action.Type(),
			SearchMetric: search,
		})
	}
	logger := log.With().Int("index", i+1).Uint64("seed", seed).Logger()
	eg, err := engine.NewGame(state, players,
		engine.WithObserver(observe),
		engine.WithLogger(logger),
		engine.WithViewSeed(seed),
	)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	start := time.Now()
	winner, err := eg.Run(ctx, cfg.MaxTicks)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	end := time.Now()

	records := make([]metrics.MoveRecord, len(moves))
	for j, mm := range moves {
		records[j] = metrics.MoveRecord{Game: eg.ID, MoveMetric: mm}
	}
	return metrics.GameMetric{
		ID:             eg.ID,
		Seed:           seed,
		StartingPlayer: colors[0],
		Winner:         winner,
		StartTime:      start,
		EndTime:        end,
		Duration:       end.Sub(start),
		TotalMoves:     eg.Ticks(),
		Turns:          state.Turns,
	}, records, nil
}

// NewPlayer builds the configured kind of player.
func NewPlayer(p config.Player, seed uint64) (engine.Player, error) {
	color, err := config.ParseColor(p.Color)
	if err != nil {
		return nil, err
	}
	switch p.Kind {
	case config.KindFirst:
		return player.NewFirst(color), nil
	case config.KindRandom:
		return player.NewRandom(color, seed), nil
	case config.KindMCTS:
		mcts, err := createMCTS(p.Search, seed)
		if err != nil {
			return nil, err
		}
		return agent.NewEvaluationAgent(color, mcts), nil
	case config.KindTraining:
		mcts, err := createMCTS(p.Search, seed)
		if err != nil {
			return nil, err
		}
		return agent.NewTrainingAgent(color, mcts, p.Search.Temperature, seed), nil
	default:
		return nil, fmt.Errorf("%w: unknown player kind %q", config.ErrInvalidConfig, p.Kind)
	}
}

func createMCTS(s config.Search, seed uint64) (*searcher.MCTS, error) {
	evaluate, err := config.ParseEvaluation(s.Evaluation)
	if err != nil {
		return nil, err
	}
	if s.Episodes <= 0 && s.Duration <= 0 {
		return nil, fmt.Errorf("%w: search needs episodes or a duration", config.ErrInvalidConfig)
	}
	return searcher.NewMCTS(
		searcher.WithGoroutines(s.Goroutines),
		searcher.WithEpisodes(s.Episodes),
		searcher.WithDuration(s.Duration),
		searcher.WithCutoff(s.Cutoff),
		searcher.WithEvaluationFn(evaluate),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	), nil
}

func rotate(players []config.Player, k int) []config.Player {
	n := len(players)
	rotated := make([]config.Player, n)
	for j := range players {
		rotated[j] = players[(j+k)%n]
	}
	return rotated
}

func agentConfigs(cfg *config.Config) []metrics.AgentConfig {
	configs := make([]metrics.AgentConfig, len(cfg.Players))
	for i, p := range cfg.Players {
		configs[i] = metrics.AgentConfig{
			Seat:       i,
			Color:      p.Color,
			Kind:       p.Kind,
			Goroutines: p.Search.Goroutines,
			Duration:   p.Search.Duration,
			Episodes:   p.Search.Episodes,
			Cutoff:     p.Search.Cutoff,
		}
	}
	return configs
}
