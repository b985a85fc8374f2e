// Package entropy scores a guess by how evenly it splits a candidate set
// across the feedback patterns it could receive.
package entropy

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/domino14/wordlebot/feedback"
	"github.com/domino14/wordlebot/word"
)

// Partition groups set by the pattern guess would receive if each member
// were the secret, returning the size of each group.
func Partition(guess word.Word, set []word.Word) map[feedback.Pattern]int {
	groups := make(map[feedback.Pattern]int)
	for _, secret := range set {
		groups[feedback.MustEvaluate(secret, guess)]++
	}
	return groups
}

// groupSizes returns the partition's group sizes in ascending order. Map
// iteration order is random, and floating point addition is not
// associative, so the sizes are sorted before anything is summed over them.
func groupSizes(guess word.Word, set []word.Word) []int {
	groups := Partition(guess, set)
	sizes := make([]int, 0, len(groups))
	for _, g := range groups {
		sizes = append(sizes, g)
	}
	slices.Sort(sizes)
	return sizes
}

// Score is the Shannon entropy, in bits, of the partition guess induces on
// set. It lies in [0, log2(len(set))] and is 0 when len(set) <= 1.
func Score(guess word.Word, set []word.Word) float64 {
	if len(set) <= 1 {
		return 0
	}
	sizes := groupSizes(guess, set)
	total := float64(len(set))
	probs := make([]float64, len(sizes))
	for i, g := range sizes {
		probs[i] = float64(g) / total
	}
	// stat.Entropy uses the natural log.
	bits := stat.Entropy(probs) / math.Ln2
	if bits <= 0 {
		// -0 when there is a single group.
		return 0
	}
	// Rounding can overshoot an even split by an ulp.
	return min(bits, MaxScore(len(set)))
}

// ExpectedRemaining is the expected size of the candidate set after
// guessing guess, assuming every member of set is equally likely.
func ExpectedRemaining(guess word.Word, set []word.Word) float64 {
	if len(set) == 0 {
		return 0
	}
	sizes := groupSizes(guess, set)
	sumSq := 0.0
	for _, g := range sizes {
		sumSq += float64(g * g)
	}
	return sumSq / float64(len(set))
}

// MaxScore is the best score any guess can achieve on a set of size n.
func MaxScore(n int) float64 {
	if n <= 1 {
		return 0
	}
	return math.Log2(float64(n))
}
