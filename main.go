package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"settlers/config"
	"settlers/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file, defaults are used when empty")
	games := flag.Int("games", 0, "Override the number of games")
	parallelism := flag.Int("parallelism", 0, "Override the number of games played at once")
	seed := flag.Uint64("seed", 0, "Override the base seed")
	logLevel := flag.String("log-level", "", "Override the log level")
	throughput := flag.String("throughput", "", "Comma separated goroutine counts; runs the throughput experiment instead of games")
	budget := flag.Duration("budget", 100*time.Millisecond, "Search time per goroutine count in the throughput experiment")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *parallelism > 0 {
		cfg.Parallelism = *parallelism
	}
	if *seed > 0 {
		cfg.Seed = *seed
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *throughput != "" {
		var counts []int
		for _, field := range strings.Split(*throughput, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil || n < 1 {
				log.Fatal().Msgf("invalid goroutine count %q", field)
			}
			counts = append(counts, n)
		}
		if _, err := experiments.RunThroughput(ctx, cfg, counts, *budget); err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
		return
	}

	result, err := experiments.Run(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	log.Info().Str("dir", result.Dir).Msgf("wins %v", result.Wins)
}
