// Package solver picks the next guess: a fixed opener on the first turn,
// then the guess whose feedback is expected to carry the most information
// about the remaining candidates.
package solver

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/wordlebot/config"
	"github.com/domino14/wordlebot/entropy"
	"github.com/domino14/wordlebot/feedback"
	"github.com/domino14/wordlebot/filter"
	"github.com/domino14/wordlebot/word"
)

var (
	ErrEmptyDictionary = errors.New("no legal words supplied")
	// ErrContradiction means no legal word fits the feedback so far. The
	// feedback source or the dictionary is wrong; guessing on would hide it.
	ErrContradiction = errors.New("no legal word is consistent with the feedback history")
)

const (
	DefaultPoolCap        = 1000
	DefaultCandidateBonus = 0.1
	// Below this many candidates there is nothing to gain from scoring.
	scoringThreshold = 2
)

// DefaultOpeners is the first-turn priority list.
var DefaultOpeners = word.MustFromStrings(config.DefaultOpeners...)

type Solver struct {
	openers        []word.Word
	poolCap        int
	candidateBonus float64
}

type Option func(*Solver)

// WithOpeners replaces the first-turn priority list.
func WithOpeners(openers []word.Word) Option {
	return func(s *Solver) {
		s.openers = slices.Clone(openers)
	}
}

// WithPoolCap sets how many words from the front of the dictionary are
// scored as guesses in addition to the candidates themselves.
func WithPoolCap(n int) Option {
	return func(s *Solver) {
		s.poolCap = max(n, 0)
	}
}

// WithCandidateBonus sets the score bonus a guess gets for still being a
// possible answer.
func WithCandidateBonus(b float64) Option {
	return func(s *Solver) {
		s.candidateBonus = b
	}
}

func New(opts ...Option) *Solver {
	s := &Solver{
		openers:        DefaultOpeners,
		poolCap:        DefaultPoolCap,
		candidateBonus: DefaultCandidateBonus,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FromConfig builds a solver from the opener, pool-cap and candidate-bonus
// settings. Malformed openers are skipped with a warning.
func FromConfig(cfg *config.Config) *Solver {
	var openers []word.Word
	for _, o := range cfg.GetStringSlice(config.ConfigOpeners) {
		w, err := word.New(o)
		if err != nil {
			log.Warn().Err(err).Msg("skipping-opener")
			continue
		}
		openers = append(openers, w)
	}
	return New(
		WithOpeners(openers),
		WithPoolCap(cfg.GetInt(config.ConfigPoolCap)),
		WithCandidateBonus(cfg.GetFloat64(config.ConfigCandidateBonus)),
	)
}

// Ranked is a scored guess.
type Ranked struct {
	Word        word.Word
	Entropy     float64
	Bonus       float64
	IsCandidate bool
}

func (r Ranked) Score() float64 {
	return r.Entropy + r.Bonus
}

// NextGuess returns the guess to make given the history so far. It has no
// side effects, and for the same inputs it always returns the same word.
func (s *Solver) NextGuess(h feedback.History, legal []word.Word) (word.Word, error) {
	if len(legal) == 0 {
		return "", ErrEmptyDictionary
	}
	if len(h) == 0 {
		return s.opener(legal), nil
	}
	candidates := filter.Candidates(legal, h)
	log.Debug().Int("turn", h.Turn()).Int("candidates", len(candidates)).Msg("filtered")

	switch {
	case len(candidates) == 0:
		return "", fmt.Errorf("%w (after %d guesses)", ErrContradiction, h.Turn())
	case len(candidates) <= scoringThreshold:
		// Candidates are in dictionary order already.
		return candidates[0], nil
	}

	best := s.rank(candidates, legal, 1)[0]
	log.Debug().Str("guess", best.Word.String()).Float64("entropy", best.Entropy).
		Bool("candidate", best.IsCandidate).Msg("best-guess")
	return best.Word, nil
}

// Rank scores the guess pool for h and returns the top n entries, best
// first. It is what NextGuess consults when scoring is in play.
func (s *Solver) Rank(h feedback.History, legal []word.Word, n int) ([]Ranked, error) {
	if len(legal) == 0 {
		return nil, ErrEmptyDictionary
	}
	candidates := filter.Candidates(legal, h)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w (after %d guesses)", ErrContradiction, h.Turn())
	}
	return s.rank(candidates, legal, n), nil
}

func (s *Solver) opener(legal []word.Word) word.Word {
	in := filter.NewSet(legal)
	for _, o := range s.openers {
		if in.Contains(o) {
			return o
		}
	}
	return legal[0]
}

// pool is the candidates plus a bounded prefix of the dictionary,
// deduplicated and sorted so that ties always resolve the same way.
func (s *Solver) pool(candidates, legal []word.Word) []word.Word {
	prefix := legal[:min(s.poolCap, len(legal))]
	p := lo.Uniq(append(slices.Clone(candidates), prefix...))
	slices.Sort(p)
	return p
}

func (s *Solver) rank(candidates, legal []word.Word, n int) []Ranked {
	isCandidate := filter.NewSet(candidates)
	pool := s.pool(candidates, legal)
	ranked := make([]Ranked, len(pool))
	for i, w := range pool {
		r := Ranked{Word: w, Entropy: entropy.Score(w, candidates)}
		if isCandidate.Contains(w) {
			r.IsCandidate = true
			r.Bonus = s.candidateBonus
		}
		ranked[i] = r
	}
	// Stable, so among equal scores the lexicographically first wins.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
