package entropy

import (
	"math"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordlebot/feedback"
	"github.com/domino14/wordlebot/stats"
	"github.com/domino14/wordlebot/word"
)

var set = word.MustFromStrings(
	"ADIEU", "ALERT", "AROSE", "CRANE", "CRATE", "GRACE", "LLAMA", "PLANE",
	"RAISE", "SLATE", "STARE", "TEARS", "TRACE", "WHELP", "BRACE", "REACT",
)

func TestScoreTrivialSets(t *testing.T) {
	is := is.New(t)
	is.Equal(Score("CRANE", nil), 0.0)
	is.Equal(Score("CRANE", word.MustFromStrings("TRACE")), 0.0)
	is.Equal(Score("CRANE", word.MustFromStrings("CRANE")), 0.0)
}

func TestScoreBounds(t *testing.T) {
	is := is.New(t)
	for n := 2; n <= len(set); n++ {
		sub := set[:n]
		for _, g := range set {
			s := Score(g, sub)
			is.True(s >= 0)
			is.True(s <= MaxScore(n))
		}
	}
}

func TestScorePerfectSplit(t *testing.T) {
	is := is.New(t)
	// CRANE puts each of these in its own group, which is the log2(n) ceiling.
	sub := word.MustFromStrings("CRANE", "WHELP", "LLAMA", "ADIEU")
	groups := Partition("CRANE", sub)
	is.Equal(len(groups), 4)
	is.True(stats.FuzzyEqual(Score("CRANE", sub), 2))
}

func TestScoreEvenSplitNeverExceedsCeiling(t *testing.T) {
	is := is.New(t)
	// Against ABCDE every word here lands in its own group.
	distinct := word.MustFromStrings(
		"AZZZZ", "ZBZZZ", "ZZCZZ", "ZZZDZ", "ZZZZE", "ZZZZZ",
		"BZZZZ", "ZAZZZ", "ABZZZ", "ZZDZZ", "ZZZCZ", "EZZZZ",
	)
	is.Equal(len(Partition("ABCDE", distinct)), len(distinct))
	for n := 2; n <= len(distinct); n++ {
		s := Score("ABCDE", distinct[:n])
		is.True(s <= MaxScore(n))
		is.True(stats.FuzzyEqual(s, MaxScore(n)))
	}
}

func TestScoreSingleGroup(t *testing.T) {
	is := is.New(t)
	// None of these share a letter with ZZZZZ; everything is all-absent.
	sub := word.MustFromStrings("CRANE", "TRACE", "SLATE")
	groups := Partition("ZZZZZ", sub)
	is.Equal(groups, map[feedback.Pattern]int{{}: 3})
	is.Equal(Score("ZZZZZ", sub), 0.0)
	is.True(!math.Signbit(Score("ZZZZZ", sub)))
	is.Equal(ExpectedRemaining("ZZZZZ", sub), 3.0)
}

func TestScoreMatchesDefinition(t *testing.T) {
	is := is.New(t)
	for _, g := range set {
		groups := Partition(g, set)
		total := 0
		want := 0.0
		for _, n := range groups {
			total += n
			p := float64(n) / float64(len(set))
			want -= p * math.Log2(p)
		}
		is.Equal(total, len(set))
		is.True(stats.FuzzyEqual(Score(g, set), want))
	}
}

func TestScoreIsReproducible(t *testing.T) {
	is := is.New(t)
	for _, g := range set {
		first := Score(g, set)
		for i := 0; i < 20; i++ {
			// Bitwise identical, not just close.
			is.Equal(Score(g, set), first)
		}
	}
}

func TestExpectedRemaining(t *testing.T) {
	is := is.New(t)
	sub := word.MustFromStrings("CRANE", "WHELP", "LLAMA", "ADIEU")
	is.Equal(ExpectedRemaining("CRANE", sub), 1.0)
	is.Equal(ExpectedRemaining("CRANE", nil), 0.0)
}

func BenchmarkScore(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Score("RAISE", set)
	}
}
