package searcher

import (
	"math"

	"settlers/game"

	"golang.org/x/exp/rand"
)

const noParent = -1

// node lives in a tree arena and links to its parent by index. A decision
// node's children line up with its actions; a chance node's children are the
// outcomes seen so far, told apart by state hash.
type node struct {
	parent   int
	mover    game.Color // player whose action led here; rewards are from its view
	player   game.Color // player to act, decision nodes only
	chance   bool
	hash     game.StateHash
	actions  []game.Action
	children []int
	rewards  float64
	visits   float64
}

// tree is searched by a single goroutine.
type tree struct {
	nodes    []node
	rng      *rand.Rand
	cutoff   int
	evaluate game.Evaluate
	onFull   func() // called when a rollout reaches the end of the game
}

func newTree(root game.State, rng *rand.Rand, cutoff int, evaluate game.Evaluate) *tree {
	t := &tree{rng: rng, cutoff: cutoff, evaluate: evaluate, onFull: func() {}}
	t.addDecision(noParent, game.NoColor, root)
	return t
}

func (t *tree) addDecision(parent int, mover game.Color, state game.State) int {
	actions := state.LegalActions()
	if state.Winner() != game.NoColor {
		actions = nil
	}
	shuffled := make([]game.Action, len(actions))
	copy(shuffled, actions)
	t.rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	t.nodes = append(t.nodes, node{
		parent:  parent,
		mover:   mover,
		player:  state.Player(),
		hash:    state.Hash(),
		actions: shuffled,
	})
	id := len(t.nodes) - 1
	if parent != noParent {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	return id
}

func (t *tree) addChance(parent int, mover game.Color) int {
	t.nodes = append(t.nodes, node{parent: parent, mover: mover, player: mover, chance: true})
	id := len(t.nodes) - 1
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// outcome returns the child of chance node id whose state hashes to h.
func (t *tree) outcome(id int, h game.StateHash) int {
	for _, child := range t.nodes[id].children {
		if t.nodes[child].hash == h {
			return child
		}
	}
	return noParent
}

// selectThenExpand descends from the root with UCT until it adds a node or
// reaches a terminal one, returning that node and its state.
func (t *tree) selectThenExpand(state game.State) (int, game.State) {
	id := 0
	for {
		if t.nodes[id].chance {
			h := state.Hash()
			child := t.outcome(id, h)
			if child == noParent {
				return t.addDecision(id, t.nodes[id].mover, state), state
			}
			id = child
			continue
		}

		n := &t.nodes[id]
		if len(n.actions) == 0 { // Terminal node
			return id, state
		}
		if len(n.children) < len(n.actions) { // Expandable node
			action := n.actions[len(n.children)]
			mover := n.player
			state = state.Play(action)
			if !action.IsStochastic() {
				return t.addDecision(id, mover, state), state
			}
			id = t.addChance(id, mover)
			continue
		}

		ith := t.pickChild(id)
		state = state.Play(n.actions[ith])
		id = n.children[ith]
	}
}

// pickChild returns the child index with the highest UCT value.
func (t *tree) pickChild(id int) int {
	n := &t.nodes[id]
	if n.visits == 0 {
		panic("node has children but no visits")
	}
	numerator := CSquared * math.Log(n.visits)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range n.children {
		c := &t.nodes[child]
		if score := ucb(c.rewards, c.visits, numerator); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// ucb is q/n + sqrt(c^2*ln(N)/n); unvisited children come first.
func ucb(q, n, numerator float64) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	return q/n + math.Sqrt(numerator/n)
}

// rollout plays random actions until the game ends or the cutoff is hit and
// returns a reward per color.
func (t *tree) rollout(state game.State) func(game.Color) float64 {
	actions := state.LegalActions()
	for depth := 0; len(actions) > 0 && state.Winner() == game.NoColor && depth < t.cutoff; depth++ {
		state = state.Play(actions[t.rng.Intn(len(actions))])
		actions = state.LegalActions()
	}

	if winner := state.Winner(); winner != game.NoColor {
		t.onFull()
		return rewarder(winner)
	}

	// At cutoff, score from every player's perspective
	scores := map[game.Color]float64{}
	return func(c game.Color) float64 {
		if s, ok := scores[c]; ok {
			return s
		}
		scores[c] = t.evaluate(state, c)
		return scores[c]
	}
}

func rewarder(winner game.Color) func(game.Color) float64 {
	return func(player game.Color) float64 {
		if player == winner {
			return Win
		}
		return Loss
	}
}

// backup walks parent links from id to the root.
func (t *tree) backup(id int, reward func(game.Color) float64) {
	for id != noParent {
		n := &t.nodes[id]
		if n.mover != game.NoColor {
			n.rewards += reward(n.mover)
		}
		n.visits++
		id = n.parent
	}
}

func (t *tree) episode(state game.State) {
	id, state := t.selectThenExpand(state)
	t.backup(id, t.rollout(state))
}

// rootVisits counts visits per root action.
func (t *tree) rootVisits() map[game.Action]float64 {
	root := &t.nodes[0]
	visits := make(map[game.Action]float64, len(root.children))
	for i, child := range root.children {
		visits[root.actions[i]] += t.nodes[child].visits
	}
	return visits
}
