package searcher

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"settlers/experiments/metrics"
	"settlers/game"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(mcts *MCTS)

// MCTS runs root-parallel Monte Carlo tree search: every goroutine grows its
// own tree over its own determinization of the hidden information, and the
// root visit counts are summed.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	metrics    metrics.Collector

	mu  sync.Mutex
	rng *rand.Rand
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: 1,
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluateBalanced,
		metrics:    metrics.NewDummyCollector(),
		rng:        rand.New(rand.NewSource(1)),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the share of root visits per
// action. Calls are serialized.
func (m *MCTS) Simulate(ctx context.Context, state *game.GameState) (map[game.Action]float64, metrics.SearchMetric, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metrics.Start(m.goroutines, m.cutoff)
	parent := ctx
	if m.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.duration)
		defer cancel()
	}

	var remaining atomic.Int64
	remaining.Store(int64(m.episodes))
	next := func(ctx context.Context) bool {
		if ctx.Err() != nil {
			return false
		}
		return m.episodes <= 0 || remaining.Add(-1) >= 0
	}

	visits := make([]map[game.Action]float64, m.goroutines)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < m.goroutines; i++ {
		rng := rand.New(rand.NewSource(m.rng.Uint64()))
		g.Go(func() error {
			t := newTree(state, rng, m.cutoff, m.evaluate)
			t.onFull = m.metrics.AddFullPlayout
			for next(gctx) {
				episode := state.Copy()
				episode.Determinize(game.NewRandomizer(rng.Uint64()))
				t.episode(episode)
				m.metrics.AddEpisode()
			}
			m.metrics.AddTreeNodes(len(t.nodes))
			visits[i] = t.rootVisits()
			return nil
		})
	}
	g.Wait()

	metric := m.metrics.Complete()
	if err := parent.Err(); err != nil {
		return nil, metric, err
	}
	return normalizeVisits(visits), metric, nil
}

func normalizeVisits(trees []map[game.Action]float64) map[game.Action]float64 {
	policy := make(map[game.Action]float64)
	total := 0.0
	for _, visits := range trees {
		for action, n := range visits {
			policy[action] += n
			total += n
		}
	}
	if total == 0 {
		return policy
	}
	for action := range policy {
		policy[action] /= total
	}
	return policy
}
