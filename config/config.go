package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"settlers/game"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Player kinds.
const (
	KindFirst    = "first"
	KindRandom   = "random"
	KindMCTS     = "mcts"       // plays the most visited action
	KindTraining = "mcts-train" // samples visits with temperature
)

// Evaluation function names.
const (
	EvalBalanced      = "balanced"
	EvalVictoryPoints = "vp"
	EvalProduction    = "production"
)

var ErrInvalidConfig = errors.New("invalid config")

type Search struct {
	Goroutines  int           `yaml:"goroutines"`
	Episodes    int           `yaml:"episodes"`
	Duration    time.Duration `yaml:"duration"`
	Cutoff      int           `yaml:"cutoff"`
	Evaluation  string        `yaml:"evaluation"`
	Temperature float64       `yaml:"temperature"`
}

type Player struct {
	Color  string `yaml:"color"`
	Kind   string `yaml:"kind"`
	Search Search `yaml:"search"`
}

// Config describes one batch of games.
type Config struct {
	Name          string   `yaml:"name"`
	Players       []Player `yaml:"players"` // seating order of the first game
	Games         int      `yaml:"games"`
	Parallelism   int      `yaml:"parallelism"`
	Seed          uint64   `yaml:"seed"`
	VictoryPoints int      `yaml:"victory_points"`
	MaxTicks      int      `yaml:"max_ticks"`
	RandomMap     bool     `yaml:"random_map"`
	LogLevel      string   `yaml:"log_level"`
	OutputDir     string   `yaml:"output_dir"`
}

// Default is one MCTS agent against three random players on the base map.
func Default() *Config {
	return &Config{
		Name: "selfplay",
		Players: []Player{
			{Color: "RED", Kind: KindMCTS, Search: Search{Goroutines: 4, Episodes: 400, Cutoff: 100, Evaluation: EvalBalanced}},
			{Color: "BLUE", Kind: KindRandom},
			{Color: "WHITE", Kind: KindRandom},
			{Color: "ORANGE", Kind: KindRandom},
		},
		Games:         10,
		Parallelism:   2,
		Seed:          1,
		VictoryPoints: 10,
		MaxTicks:      5000,
		LogLevel:      "info",
		OutputDir:     "results",
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Players) < 2 || len(c.Players) > len(game.Colors) {
		return fmt.Errorf("%w: need 2 to %d players, got %d", ErrInvalidConfig, len(game.Colors), len(c.Players))
	}
	seen := map[game.Color]bool{}
	for i, p := range c.Players {
		color, err := ParseColor(p.Color)
		if err != nil {
			return fmt.Errorf("player %d: %w", i, err)
		}
		if seen[color] {
			return fmt.Errorf("%w: %s seated twice", ErrInvalidConfig, color)
		}
		seen[color] = true
		if err := p.validate(); err != nil {
			return fmt.Errorf("player %d: %w", i, err)
		}
	}
	switch {
	case c.Games < 1:
		return fmt.Errorf("%w: games must be positive", ErrInvalidConfig)
	case c.Parallelism < 1:
		return fmt.Errorf("%w: parallelism must be positive", ErrInvalidConfig)
	case c.VictoryPoints < 3:
		return fmt.Errorf("%w: victory points must be at least 3", ErrInvalidConfig)
	case c.MaxTicks < 1:
		return fmt.Errorf("%w: max ticks must be positive", ErrInvalidConfig)
	case c.OutputDir == "":
		return fmt.Errorf("%w: output dir is empty", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (p Player) validate() error {
	switch p.Kind {
	case KindFirst, KindRandom:
		return nil
	case KindMCTS, KindTraining:
	default:
		return fmt.Errorf("%w: unknown player kind %q", ErrInvalidConfig, p.Kind)
	}
	s := p.Search
	if s.Episodes <= 0 && s.Duration <= 0 {
		return fmt.Errorf("%w: search needs episodes or a duration", ErrInvalidConfig)
	}
	if s.Goroutines < 0 || s.Cutoff < 0 || s.Temperature < 0 {
		return fmt.Errorf("%w: negative search option", ErrInvalidConfig)
	}
	if _, err := ParseEvaluation(s.Evaluation); err != nil {
		return err
	}
	return nil
}

func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return level, nil
}

// Colors returns the configured seating order.
func (c *Config) Colors() []game.Color {
	colors := make([]game.Color, len(c.Players))
	for i, p := range c.Players {
		colors[i], _ = ParseColor(p.Color)
	}
	return colors
}

func ParseColor(name string) (game.Color, error) {
	for _, c := range game.Colors {
		if c.String() == name {
			return c, nil
		}
	}
	return game.NoColor, fmt.Errorf("%w: unknown color %q", ErrInvalidConfig, name)
}

// ParseEvaluation maps a name to a leaf evaluation; empty means balanced.
func ParseEvaluation(name string) (game.Evaluate, error) {
	switch name {
	case "", EvalBalanced:
		return game.EvaluateBalanced, nil
	case EvalVictoryPoints:
		return game.EvaluateVictoryPoints, nil
	case EvalProduction:
		return game.EvaluateProduction, nil
	default:
		return nil, fmt.Errorf("%w: unknown evaluation %q", ErrInvalidConfig, name)
	}
}
