// solve plays one game against a secret word and prints each turn.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordlebot/config"
	"github.com/domino14/wordlebot/dictionary"
	"github.com/domino14/wordlebot/filter"
	"github.com/domino14/wordlebot/game"
	"github.com/domino14/wordlebot/solver"
	"github.com/domino14/wordlebot/word"
)

// Candidate lists are printed once they are this short.
const showCandidates = 10

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
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	dict, err := dictionary.FromConfig(cfg)
	if err != nil {
		return err
	}
	var secret word.Word
	if args := cfg.Args(); len(args) > 0 {
		if secret, err = word.New(strings.ToUpper(args[0])); err != nil {
			return err
		}
	} else {
		secret = dict.Random()
	}

	words := dict.Words()
	g, err := game.New(secret, words, solver.FromConfig(cfg),
		game.WithMaxTurns(cfg.GetInt(config.ConfigMaxTurns)))
	if err != nil {
		return err
	}

	fmt.Printf("True word: %v\n", secret)
	fmt.Printf("Dictionary size: %d words\n\n", dict.Len())

	maxTurns := cfg.GetInt(config.ConfigMaxTurns)
	for !g.Solved() {
		if maxTurns > 0 && g.Turn() >= maxTurns {
			return fmt.Errorf("%w: %d turns", game.ErrTurnLimit, maxTurns)
		}
		rec, err := g.Step()
		if errors.Is(err, solver.ErrContradiction) {
			return fmt.Errorf("%v is not in the dictionary: %w", secret, err)
		} else if err != nil {
			return err
		}
		fmt.Printf("Guess %d: %v\n", g.Turn(), rec.Guess)
		fmt.Printf("Colors: %s\n", rec.Pattern.Emoji())
		fmt.Printf("Remaining possibilities: %d\n", g.Remaining())
		if g.Remaining() <= showCandidates {
			fmt.Printf("Possible words: %v\n", filter.Candidates(words, g.History()))
		}
		fmt.Println()
	}
	fmt.Printf("✅ Solved in %d guesses!\n", g.Turn())
	return nil
}
