// Package feedback computes the per-letter color pattern a guess receives
// against a secret, and holds the guess history a game accumulates.
package feedback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/wordlebot/word"
)

var (
	ErrLengthMismatch = errors.New("secret and guess must both be 5 letters")
	ErrBadPattern     = errors.New("unrecognized pattern")
)

// Color is the feedback for a single letter of a guess.
type Color uint8

const (
	Absent Color = iota
	Present
	Exact
)

func (c Color) String() string {
	switch c {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Exact:
		return "exact"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Pattern is the feedback for a whole guess, positionally aligned to it.
// It is comparable, so it can be used directly as a map key.
type Pattern [word.Length]Color

// AllExact is the win condition.
func (p Pattern) AllExact() bool {
	for _, c := range p {
		if c != Exact {
			return false
		}
	}
	return true
}

// Code packs the pattern into a base-3 number in [0, 243).
func (p Pattern) Code() uint8 {
	var code uint8
	for i := word.Length - 1; i >= 0; i-- {
		code = code*3 + uint8(p[i])
	}
	return code
}

// Count returns the number of positions with color c.
func (p Pattern) Count(c Color) int {
	n := 0
	for _, pc := range p {
		if pc == c {
			n++
		}
	}
	return n
}

// String renders the pattern as B/Y/G letters (black, yellow, green).
func (p Pattern) String() string {
	var sb strings.Builder
	for _, c := range p {
		switch c {
		case Exact:
			sb.WriteByte('G')
		case Present:
			sb.WriteByte('Y')
		default:
			sb.WriteByte('B')
		}
	}
	return sb.String()
}

// Emoji renders the pattern as colored squares.
func (p Pattern) Emoji() string {
	var sb strings.Builder
	for _, c := range p {
		switch c {
		case Exact:
			sb.WriteString("🟩")
		case Present:
			sb.WriteString("🟨")
		default:
			sb.WriteString("⬜")
		}
	}
	return sb.String()
}

// ParsePattern accepts the letter forms people type when copying feedback
// from a real game: G/Y/B, X/P/A (exact/present/absent), or 2/1/0.
// Case is ignored.
func ParsePattern(s string) (Pattern, error) {
	var p Pattern
	if len(s) != word.Length {
		return p, fmt.Errorf("%w: %q is not %d characters", ErrBadPattern, s, word.Length)
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'G', 'g', 'X', 'x', '2':
			p[i] = Exact
		case 'Y', 'y', 'P', 'p', '1':
			p[i] = Present
		case 'B', 'b', 'A', 'a', '0', '.', '-':
			p[i] = Absent
		default:
			return p, fmt.Errorf("%w: bad character %q in %q", ErrBadPattern, s[i], s)
		}
	}
	return p, nil
}

// Solved is the all-exact pattern.
var Solved = Pattern{Exact, Exact, Exact, Exact, Exact}

// Evaluate returns the color pattern guess receives when secret is the
// hidden word. Exact matches are taken first; then each remaining guess
// letter, scanning left to right, consumes one unmatched occurrence of that
// letter in the secret if one is left.
func Evaluate(secret, guess string) (Pattern, error) {
	if len(secret) != word.Length || len(guess) != word.Length {
		return Pattern{}, fmt.Errorf("%w: secret=%q guess=%q", ErrLengthMismatch, secret, guess)
	}
	return evaluate(secret, guess), nil
}

// MustEvaluate is Evaluate for words already known to be well-formed.
// This is the path the solver uses in its inner loops.
func MustEvaluate(secret, guess word.Word) Pattern {
	return evaluate(string(secret), string(guess))
}

func evaluate(secret, guess string) Pattern {
	var p Pattern
	// Unmatched secret letters. Indexed by byte so that stray input never
	// panics; the caller has already checked the length.
	var remaining [256]uint8

	for i := 0; i < word.Length; i++ {
		if guess[i] == secret[i] {
			p[i] = Exact
		} else {
			remaining[secret[i]]++
		}
	}
	for i := 0; i < word.Length; i++ {
		if p[i] == Exact {
			continue
		}
		if remaining[guess[i]] > 0 {
			p[i] = Present
			remaining[guess[i]]--
		}
	}
	return p
}
