package experiments

import (
	"context"
	"fmt"
	"time"

	"settlers/config"
	"settlers/experiments/metrics"
	"settlers/game"
	"settlers/player"
	"settlers/searcher"

	"github.com/rs/zerolog/log"
)

// ThroughputPosition plays a random game for warmup ticks from the base map
// and returns the position, a typical mid-game search root.
func ThroughputPosition(seed uint64, warmup int) *game.GameState {
	state := game.NewGameState(game.BaseMap(), game.NewStandardRules(), game.Colors, game.NewRandomizer(seed))
	players := map[game.Color]*player.Random{}
	for j, c := range game.Colors {
		players[c] = player.NewRandom(c, seed+uint64(j))
	}
	for i := 0; i < warmup && state.Winner() == game.NoColor; i++ {
		p := players[state.Player()]
		if err := state.Apply(p.Decide(nil, state.LegalActions())); err != nil {
			panic(fmt.Sprintf("offered action failed: %v", err))
		}
	}
	return state
}

// RunThroughput searches the same position once per goroutine count with a
// fixed time budget and writes the episode rates to cfg.OutputDir.
func RunThroughput(ctx context.Context, cfg *config.Config, goroutines []int, budget time.Duration) ([]metrics.SearchMetric, error) {
	writer, err := metrics.NewWriter(cfg.OutputDir, cfg.Name+"_throughput")
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	position := ThroughputPosition(cfg.Seed, 200)

	log.Info().Msgf("starting throughput experiment in %s", writer.Dir())
	searches := make([]metrics.SearchMetric, 0, len(goroutines))
	for _, n := range goroutines {
		mcts := searcher.NewMCTS(
			searcher.WithGoroutines(n),
			searcher.WithDuration(budget),
			searcher.WithSeed(cfg.Seed),
			searcher.WithMetrics(),
		)
		_, metric, err := mcts.Simulate(ctx, position)
		if err != nil {
			return nil, err
		}
		log.Info().
			Int("goroutines", n).
			Int("episodes", metric.Episodes).
			Int("tree_nodes", metric.TreeNodes).
			Msg("completed search")
		searches = append(searches, metric)
	}

	if err := writer.WriteThroughput(searches); err != nil {
		return nil, err
	}
	return searches, nil
}
