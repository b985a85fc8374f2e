// Package filter narrows a dictionary down to the words that could still
// be the secret given the feedback received so far.
package filter

import (
	"github.com/samber/lo"

	"github.com/domino14/wordlebot/feedback"
	"github.com/domino14/wordlebot/word"
)

// IsConsistent reports whether w, had it been the secret, would have
// produced exactly the recorded pattern for every guess in h.
func IsConsistent(w word.Word, h feedback.History) bool {
	for _, rec := range h {
		if feedback.MustEvaluate(w, rec.Guess) != rec.Pattern {
			return false
		}
	}
	return true
}

// Candidates returns the words consistent with h, in the order they appear
// in words.
func Candidates(words []word.Word, h feedback.History) []word.Word {
	return lo.Filter(words, func(w word.Word, _ int) bool {
		return IsConsistent(w, h)
	})
}

// Set is a membership set over a candidate list.
type Set map[word.Word]struct{}

func NewSet(words []word.Word) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s Set) Contains(w word.Word) bool {
	_, ok := s[w]
	return ok
}
