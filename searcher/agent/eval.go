package agent

import (
	"settlers/game"
	"settlers/searcher"
)

type evaluationAgent struct {
	base
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(color game.Color, mcts *searcher.MCTS) Agent {
	return &evaluationAgent{base{color: color, mcts: mcts}}
}

func (a *evaluationAgent) Decide(view *game.GameState, actions []game.Action) game.Action {
	policy, ok := a.search(view, actions)
	if !ok {
		return actions[0]
	}
	return findMax(policy, actions)
}

// findMax returns the most visited action, the earliest offered on ties.
func findMax(policy map[game.Action]float64, actions []game.Action) game.Action {
	best := actions[0]
	maxVisit := -1.0
	for _, action := range actions {
		if visit := policy[action]; visit > maxVisit {
			maxVisit = visit
			best = action
		}
	}
	return best
}
