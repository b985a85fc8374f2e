// autoplay benchmarks the solver by playing it against many secrets. The
// per-game CSV log goes to stdout; the summary and histogram go to stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordlebot/automatic"
	"github.com/domino14/wordlebot/config"
	"github.com/domino14/wordlebot/dictionary"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("autoplay-failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	dict, err := dictionary.FromConfig(cfg)
	if err != nil {
		return err
	}
	secrets := dict.Words()
	if args := cfg.Args(); len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("number of games: %w", err)
		}
		secrets = dict.Sample(n)
	}
	log.Info().Int("games", len(secrets)).Int("threads", cfg.GetInt(config.ConfigAutoplayThreads)).
		Str("fingerprint", dict.Fingerprint()).Msg("starting")

	start := time.Now()
	summary, err := automatic.Run(ctx, cfg, dict, secrets, cfg.GetInt(config.ConfigAutoplayThreads), os.Stdout)
	switch {
	case errors.Is(err, context.Canceled) && summary != nil:
		log.Warn().Int("played", summary.Games).Msg("interrupted; partial results follow")
	case err != nil:
		return err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("done")

	if err := summary.WriteYAML(os.Stderr); err != nil {
		return err
	}
	return summary.Plot(os.Stderr)
}
