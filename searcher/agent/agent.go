package agent

import (
	"context"

	"settlers/engine"
	"settlers/experiments/metrics"
	"settlers/game"
	"settlers/searcher"

	"github.com/rs/zerolog/log"
)

// Agent is a search-backed player that reports how its last search went.
type Agent interface {
	engine.Player
	LastMetric() metrics.SearchMetric
}

// base runs the search shared by every agent kind.
type base struct {
	color  game.Color
	mcts   *searcher.MCTS
	metric metrics.SearchMetric
}

func (a *base) Color() game.Color {
	return a.color
}

func (a *base) LastMetric() metrics.SearchMetric {
	return a.metric
}

// search returns the visit share of every offered action. With a single
// option no search is run.
func (a *base) search(view *game.GameState, actions []game.Action) (map[game.Action]float64, bool) {
	a.metric = metrics.SearchMetric{}
	if len(actions) == 1 {
		return nil, false
	}
	policy, metric, err := a.mcts.Simulate(context.Background(), view)
	a.metric = metric
	if err != nil || len(policy) == 0 {
		log.Warn().Err(err).Msgf("%s search found no policy, playing the first action", a.color)
		return nil, false
	}
	return policy, true
}
