// Package word defines the fixed-length word type the solver operates on.
package word

import (
	"errors"
	"fmt"
)

// Length is the number of letters in every word.
const Length = 5

var ErrMalformedWord = errors.New("word must be exactly 5 letters A-Z")

// Word is an uppercase, 5-letter ASCII word. Callers that build a Word
// by conversion instead of New are responsible for keeping it well-formed.
type Word string

// New validates s and returns it as a Word. No case folding happens here;
// normalization belongs to the dictionary loader.
func New(s string) (Word, error) {
	if !Valid(s) {
		return "", fmt.Errorf("%w: %q", ErrMalformedWord, s)
	}
	return Word(s), nil
}

// MustNew is like New but panics. It is meant for literals in tests and
// package-level tables.
func MustNew(s string) Word {
	w, err := New(s)
	if err != nil {
		panic(err)
	}
	return w
}

// Valid reports whether s is 5 uppercase letters.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// FromStrings converts a list of strings, failing on the first bad one.
func FromStrings(ss []string) ([]Word, error) {
	ws := make([]Word, len(ss))
	for i, s := range ss {
		w, err := New(s)
		if err != nil {
			return nil, err
		}
		ws[i] = w
	}
	return ws, nil
}

// MustFromStrings is FromStrings for test fixtures.
func MustFromStrings(ss ...string) []Word {
	ws, err := FromStrings(ss)
	if err != nil {
		panic(err)
	}
	return ws
}

func (w Word) String() string {
	return string(w)
}
