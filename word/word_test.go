package word

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestNew(t *testing.T) {
	is := is.New(t)
	type tc struct {
		in    string
		valid bool
	}
	cases := []tc{
		{"CRANE", true},
		{"ZZZZZ", true},
		{"crane", false},
		{"CRANES", false},
		{"CRAN", false},
		{"CR4NE", false},
		{"", false},
		{"CRÄNE", false},
	}
	for _, c := range cases {
		w, err := New(c.in)
		if c.valid {
			is.NoErr(err)
			is.Equal(w.String(), c.in)
		} else {
			is.True(errors.Is(err, ErrMalformedWord))
		}
	}
}

func TestFromStrings(t *testing.T) {
	is := is.New(t)
	ws, err := FromStrings([]string{"CRANE", "TRACE"})
	is.NoErr(err)
	is.Equal(ws, []Word{"CRANE", "TRACE"})

	_, err = FromStrings([]string{"CRANE", "trace"})
	is.True(errors.Is(err, ErrMalformedWord))
}
