package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		turns []int
		mean  float64
		stdev float64
	}
	cases := []tc{
		{[]int{3, 4, 4, 5, 3, 4, 6, 3}, 4, 1.0690449676497},
		{[]int{2, 3, 3, 4, 4, 4, 5, 5, 6, 7}, 4.3, 1.4944341180973},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{4, 4}, 4, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, turn := range c.turns {
			s.Push(float64(turn))
		}
		is.Equal(s.Count(), len(c.turns))
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
	}
}

func TestMerge(t *testing.T) {
	is := is.New(t)
	turns := []int{2, 3, 3, 4, 4, 4, 5, 5, 6, 7}
	all := &Statistic{}
	a, b := &Statistic{}, &Statistic{}
	for i, turn := range turns {
		all.Push(float64(turn))
		if i%3 == 0 {
			a.Push(float64(turn))
		} else {
			b.Push(float64(turn))
		}
	}
	merged := &Statistic{}
	merged.Merge(a)
	merged.Merge(b)
	merged.Merge(&Statistic{})
	is.Equal(merged.Count(), all.Count())
	is.True(FuzzyEqual(merged.Mean(), all.Mean()))
	is.True(FuzzyEqual(merged.Variance(), all.Variance()))
	is.Equal(merged.Min(), 2.0)
	is.Equal(merged.Max(), 7.0)
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489004))

	s := &Statistic{}
	for _, v := range []float64{3, 4, 5} {
		s.Push(v)
	}
	// stdev 1, n 3
	is.True(FuzzyEqual(s.MarginOfError(95), 1.959963984540054/1.7320508075688772))
}
