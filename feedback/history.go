package feedback

import (
	"fmt"
	"strings"

	"github.com/domino14/wordlebot/word"
)

// Record is one guess and the feedback it received.
type Record struct {
	Guess   word.Word
	Pattern Pattern
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s", r.Guess, r.Pattern)
}

// History is the ordered list of records for a game. It is owned by
// whoever drives the game; the solver only reads it.
type History []Record

// With returns a new history with rec appended. The receiver is never
// modified and the result never shares a backing array with it.
func (h History) With(rec Record) History {
	out := make(History, len(h), len(h)+1)
	copy(out, h)
	return append(out, rec)
}

// Turn is the number of guesses made so far.
func (h History) Turn() int {
	return len(h)
}

// Solved reports whether the last record is all-exact.
func (h History) Solved() bool {
	return len(h) > 0 && h[len(h)-1].Pattern.AllExact()
}

// Emoji renders one row per guess, the way a finished game is usually shared.
func (h History) Emoji() string {
	rows := make([]string, len(h))
	for i, r := range h {
		rows[i] = r.Pattern.Emoji()
	}
	return strings.Join(rows, "\n")
}
