// Package automatic plays the solver against many secrets without a human
// in the loop, to measure how many guesses it needs.
package automatic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/wordlebot/config"
	"github.com/domino14/wordlebot/game"
	"github.com/domino14/wordlebot/solver"
	"github.com/domino14/wordlebot/word"
)

// CSVHeader is the first line of an autoplay log.
const CSVHeader = "secret,turns,solved,guesses,error\n"

// GameRunner plays games for one worker. It is not safe for concurrent use;
// each worker gets its own.
type GameRunner struct {
	words    []word.Word
	solver   *solver.Solver
	maxTurns int
	logchan  chan<- string
}

// NewGameRunner builds a runner from the solver and turn-cap settings in cfg.
func NewGameRunner(logchan chan<- string, cfg *config.Config, words []word.Word) *GameRunner {
	return &GameRunner{
		words:    words,
		solver:   solver.FromConfig(cfg),
		maxTurns: cfg.GetInt(config.ConfigMaxTurns),
		logchan:  logchan,
	}
}

// PlayGame plays one full game against secret. Losing a game (turn limit,
// contradiction) is reported in the result, not as an error; only context
// cancellation and malformed secrets come back as errors.
func (r *GameRunner) PlayGame(ctx context.Context, secret word.Word) (game.Result, error) {
	g, err := game.New(secret, r.words, r.solver, game.WithMaxTurns(r.maxTurns))
	if err != nil {
		return game.Result{}, err
	}
	res, playErr := g.Play(ctx)
	if errors.Is(playErr, context.Canceled) || errors.Is(playErr, context.DeadlineExceeded) {
		return res, playErr
	}
	if r.logchan != nil {
		r.logchan <- logLine(res, playErr)
	}
	return res, nil
}

func logLine(res game.Result, err error) string {
	guesses := make([]string, len(res.History))
	for i, rec := range res.History {
		guesses[i] = rec.Guess.String()
	}
	errStr := ""
	if err != nil {
		errStr = strings.ReplaceAll(err.Error(), ",", ";")
	}
	return fmt.Sprintf("%v,%d,%v,%s,%s\n", res.Secret, res.Turns(), res.Solved,
		strings.Join(guesses, " "), errStr)
}
