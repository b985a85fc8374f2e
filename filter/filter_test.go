package filter

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordlebot/feedback"
	"github.com/domino14/wordlebot/word"
)

var dict = word.MustFromStrings(
	"ADIEU", "ALERT", "AROSE", "CRANE", "CRATE", "GRACE", "LLAMA", "PLANE",
	"RAISE", "SLATE", "STARE", "TEARS", "TRACE", "WHELP", "BRACE", "REACT",
)

// historyFor plays the guesses against secret.
func historyFor(secret word.Word, guesses ...word.Word) feedback.History {
	var h feedback.History
	for _, g := range guesses {
		h = h.With(feedback.Record{Guess: g, Pattern: feedback.MustEvaluate(secret, g)})
	}
	return h
}

func TestEmptyHistoryIsConsistent(t *testing.T) {
	is := is.New(t)
	for _, w := range dict {
		is.True(IsConsistent(w, nil))
	}
	is.Equal(Candidates(dict, nil), dict)
}

func TestSecretAlwaysConsistent(t *testing.T) {
	is := is.New(t)
	for _, secret := range dict {
		h := historyFor(secret, "RAISE", "CLOUT", "LLAMA", "WHELP")
		is.True(IsConsistent(secret, h))
		is.True(NewSet(Candidates(dict, h)).Contains(secret))
	}
}

func TestCandidatesShrink(t *testing.T) {
	is := is.New(t)
	guesses := word.MustFromStrings("STARE", "PLANE", "GRACE", "CRANE")
	for _, secret := range dict {
		prev := len(dict)
		var h feedback.History
		for _, g := range guesses {
			h = h.With(feedback.Record{Guess: g, Pattern: feedback.MustEvaluate(secret, g)})
			n := len(Candidates(dict, h))
			is.True(n <= prev)
			is.True(n >= 1)
			prev = n
		}
	}
}

func TestCandidatesKeepDictionaryOrder(t *testing.T) {
	is := is.New(t)
	h := historyFor("CRANE", "STARE")
	got := Candidates(dict, h)
	// STARE against CRANE: S,T absent; A exact; R present; E exact.
	is.Equal(got, word.MustFromStrings("CRANE", "GRACE", "BRACE"))
}

func TestContradictionYieldsNothing(t *testing.T) {
	is := is.New(t)
	h := feedback.History{
		{Guess: "CRANE", Pattern: feedback.Solved},
		{Guess: "TRACE", Pattern: feedback.Solved},
	}
	is.Equal(len(Candidates(dict, h)), 0)
}
