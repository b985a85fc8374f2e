// Package game runs a single puzzle: it holds the secret and the history,
// asks the solver for guesses and scores them. The solver itself never sees
// the secret.
package game

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordlebot/feedback"
	"github.com/domino14/wordlebot/filter"
	"github.com/domino14/wordlebot/solver"
	"github.com/domino14/wordlebot/word"
)

var (
	ErrTurnLimit       = errors.New("turn limit reached without solving")
	ErrNotInDictionary = errors.New("secret is not in the dictionary")
	ErrGameOver        = errors.New("game is already solved")
)

// Guesser is what a game needs from a solver.
type Guesser interface {
	NextGuess(h feedback.History, legal []word.Word) (word.Word, error)
}

var _ Guesser = (*solver.Solver)(nil)

type Game struct {
	secret   word.Word
	words    []word.Word
	guesser  Guesser
	maxTurns int
	strict   bool
	resume   feedback.History

	history feedback.History
	// remaining[i] is the candidate count after guess i.
	remaining []int
}

type Option func(*Game)

// WithMaxTurns caps the number of guesses; 0 means no cap.
func WithMaxTurns(n int) Option {
	return func(g *Game) {
		g.maxTurns = max(n, 0)
	}
}

// WithStrictSecret makes New reject a secret outside the dictionary. Without
// it such a game ends in solver.ErrContradiction once the feedback rules
// out every legal word.
func WithStrictSecret() Option {
	return func(g *Game) {
		g.strict = true
	}
}

// WithHistory resumes a game from earlier guesses. The records are
// re-scored against the secret, so only the guesses matter.
func WithHistory(h feedback.History) Option {
	return func(g *Game) {
		g.resume = h
	}
}

// New sets up a game. words must stay unchanged for the life of the game.
func New(secret word.Word, words []word.Word, guesser Guesser, opts ...Option) (*Game, error) {
	if !word.Valid(string(secret)) {
		return nil, fmt.Errorf("%w: %q", word.ErrMalformedWord, secret)
	}
	g := &Game{secret: secret, words: words, guesser: guesser}
	for _, o := range opts {
		o(g)
	}
	if g.strict && !slices.Contains(words, secret) {
		return nil, fmt.Errorf("%w: %v", ErrNotInDictionary, secret)
	}
	for _, rec := range g.resume {
		g.record(rec.Guess)
	}
	g.resume = nil
	return g, nil
}

// Result summarizes a finished (or abandoned) game.
type Result struct {
	Secret    word.Word
	History   feedback.History
	Remaining []int
	Solved    bool
}

func (r Result) Turns() int {
	return len(r.History)
}

// Step plays a single turn.
func (g *Game) Step() (feedback.Record, error) {
	if g.Solved() {
		return feedback.Record{}, ErrGameOver
	}
	guess, err := g.guesser.NextGuess(g.history, g.words)
	if err != nil {
		return feedback.Record{}, err
	}
	rec := g.record(guess)
	log.Debug().Int("turn", g.Turn()).Str("guess", guess.String()).
		Str("pattern", rec.Pattern.String()).Int("remaining", g.Remaining()).Msg("played")
	return rec, nil
}

func (g *Game) record(guess word.Word) feedback.Record {
	rec := feedback.Record{Guess: guess, Pattern: feedback.MustEvaluate(g.secret, guess)}
	g.history = g.history.With(rec)
	g.remaining = append(g.remaining, len(filter.Candidates(g.words, g.history)))
	return rec
}

// Play runs turns until the secret is found, the turn cap is hit or ctx is
// done. The partial result is returned alongside any error.
func (g *Game) Play(ctx context.Context) (Result, error) {
	for !g.Solved() {
		if err := ctx.Err(); err != nil {
			return g.Result(), err
		}
		if g.maxTurns > 0 && g.Turn() >= g.maxTurns {
			return g.Result(), fmt.Errorf("%w: %d turns, secret %v", ErrTurnLimit, g.maxTurns, g.secret)
		}
		if _, err := g.Step(); err != nil {
			return g.Result(), err
		}
	}
	return g.Result(), nil
}

func (g *Game) Result() Result {
	return Result{
		Secret:    g.secret,
		History:   g.History(),
		Remaining: slices.Clone(g.remaining),
		Solved:    g.Solved(),
	}
}

func (g *Game) Solved() bool {
	return g.history.Solved()
}

func (g *Game) Turn() int {
	return g.history.Turn()
}

// History returns a copy of the guesses so far.
func (g *Game) History() feedback.History {
	return slices.Clone(g.history)
}

// Remaining returns the candidate count after the most recent guess, or
// the dictionary size before the first.
func (g *Game) Remaining() int {
	if len(g.remaining) == 0 {
		return len(g.words)
	}
	return g.remaining[len(g.remaining)-1]
}

func (g *Game) Secret() word.Word {
	return g.secret
}
