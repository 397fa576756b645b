package agent

import (
	"math"

	"settlers/game"
	"settlers/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	base
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training. It
// samples actions in proportion to visits raised to 1/temperature.
func NewTrainingAgent(color game.Color, mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return &trainingAgent{
		base:        base{color: color, mcts: mcts},
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) Decide(view *game.GameState, actions []game.Action) game.Action {
	policy, ok := a.search(view, actions)
	if !ok {
		return actions[0]
	}
	return sample(adjustTemperature(policy, actions, a.temperature), actions, a.rng.Float64())
}

// adjustTemperature returns action probabilities in the order of actions.
func adjustTemperature(policy map[game.Action]float64, actions []game.Action, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(actions))
	for i, action := range actions {
		adjusted[i] = math.Pow(policy[action], exponent)
		sum += adjusted[i]
	}
	if sum == 0 {
		return adjusted
	}
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(probs []float64, actions []game.Action, sampled float64) game.Action {
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return actions[i]
		}
	}
	return actions[len(actions)-1] // Fallback in case of rounding errors
}
