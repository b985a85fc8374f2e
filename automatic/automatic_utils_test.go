package automatic

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/domino14/wordlebot/config"
	"github.com/domino14/wordlebot/dictionary"
	"github.com/domino14/wordlebot/word"
)

var DefaultConfig = config.DefaultConfig()

func smallDict(t *testing.T) *dictionary.Dictionary {
	d, err := dictionary.FromWords(word.MustFromStrings(
		"ADIEU", "ALERT", "AROSE", "CRANE", "CRATE", "GRACE", "LLAMA", "PLANE",
		"RAISE", "SLATE", "STARE", "TEARS", "TRACE", "WHELP", "BRACE", "REACT",
	))
	require.NoError(t, err)
	return d
}

func TestRunAllSecrets(t *testing.T) {
	is := is.New(t)
	d := smallDict(t)
	var logbuf bytes.Buffer
	summary, err := Run(context.Background(), DefaultConfig, d, d.Words(), 4, &logbuf)
	is.NoErr(err)
	is.Equal(summary.Games, d.Len())
	is.Equal(summary.Solved, d.Len())
	is.Equal(summary.Failed, 0)
	is.True(summary.WorstTurns <= 6)
	is.True(summary.MeanTurns >= 1)
	is.Equal(summary.Fingerprint, d.Fingerprint())

	total := 0
	for _, n := range summary.Histogram {
		total += n
	}
	is.Equal(total, d.Len())

	lines := strings.Split(strings.TrimSpace(logbuf.String()), "\n")
	is.Equal(lines[0]+"\n", CSVHeader)
	is.Equal(len(lines), d.Len()+1)
}

func TestRunIsDeterministicAcrossThreads(t *testing.T) {
	d := smallDict(t)
	one, err := Run(context.Background(), DefaultConfig, d, d.Words(), 1, nil)
	require.NoError(t, err)
	many, err := Run(context.Background(), DefaultConfig, d, d.Words(), 8, nil)
	require.NoError(t, err)
	assert.Equal(t, one.Histogram, many.Histogram)
	assert.InDelta(t, one.MeanTurns, many.MeanTurns, 1e-9)
}

func TestRunCountsFailures(t *testing.T) {
	d := smallDict(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigMaxTurns, 1)
	// ZESTY is not in the dictionary; everything else needs more than one turn
	// except the opener.
	secrets := word.MustFromStrings("ADIEU", "BRACE", "ZESTY")
	summary, err := Run(context.Background(), cfg, d, secrets, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Games)
	assert.Equal(t, 1, summary.Solved)
	assert.Equal(t, []string{"BRACE", "ZESTY"}, summary.Failures)
	assert.Equal(t, map[int]int{1: 1}, summary.Histogram)
}

func TestRunCanceled(t *testing.T) {
	d := smallDict(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := Run(ctx, DefaultConfig, d, d.Words(), 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Less(t, summary.Games, d.Len())
}

func TestSummaryOutput(t *testing.T) {
	is := is.New(t)
	d := smallDict(t)
	summary, err := Run(context.Background(), DefaultConfig, d, d.Words(), 2, nil)
	is.NoErr(err)

	var buf bytes.Buffer
	is.NoErr(summary.WriteYAML(&buf))
	var back Summary
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &back))
	is.Equal(back.Games, summary.Games)
	is.Equal(back.Histogram, summary.Histogram)

	buf.Reset()
	is.NoErr(summary.Plot(&buf))
	is.True(buf.Len() > 0)
	is.True(strings.Contains(summary.String(), "16 games"))
}

func TestMalformedSecret(t *testing.T) {
	d := smallDict(t)
	_, err := Run(context.Background(), DefaultConfig, d, []word.Word{"bad"}, 1, nil)
	assert.ErrorIs(t, err, word.ErrMalformedWord)
}

func BenchmarkRun(b *testing.B) {
	d := dictionary.Default()
	secrets := d.Words()[:50]
	for i := 0; i < b.N; i++ {
		Run(context.Background(), DefaultConfig, d, secrets, 4, nil)
	}
}
