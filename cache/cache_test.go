package cache

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestGetLoadsOnce(t *testing.T) {
	is := is.New(t)
	c := New[int]()
	calls := 0
	load := func(key string) (int, error) {
		calls++
		return len(key), nil
	}
	v, err := c.Get("hello", load)
	is.NoErr(err)
	is.Equal(v, 5)
	v, err = c.Get("hello", load)
	is.NoErr(err)
	is.Equal(v, 5)
	is.Equal(calls, 1)

	c.Reset()
	is.Equal(c.Len(), 0)
	_, err = c.Get("hello", load)
	is.NoErr(err)
	is.Equal(calls, 2)
}

func TestFailedLoadNotStored(t *testing.T) {
	is := is.New(t)
	c := New[string]()
	boom := errors.New("boom")
	_, err := c.Get("k", func(string) (string, error) { return "", boom })
	is.True(errors.Is(err, boom))
	is.Equal(c.Len(), 0)
}
