package automatic

import (
	"fmt"
	"io"
	"slices"

	"github.com/aybabtme/uniplot/histogram"
	"gopkg.in/yaml.v3"

	"github.com/domino14/wordlebot/game"
	"github.com/domino14/wordlebot/stats"
)

// Summary aggregates autoplay results. Turn statistics cover solved games
// only.
type Summary struct {
	Games       int         `yaml:"games"`
	Solved      int         `yaml:"solved"`
	Failed      int         `yaml:"failed"`
	MeanTurns   float64     `yaml:"mean_turns"`
	StdevTurns  float64     `yaml:"stdev_turns"`
	CI95        float64     `yaml:"ci95"`
	WorstTurns  int         `yaml:"worst_turns"`
	Histogram   map[int]int `yaml:"histogram"`
	Failures    []string    `yaml:"failures,omitempty"`
	Fingerprint string      `yaml:"dictionary_fingerprint,omitempty"`

	turns stats.Statistic
}

func newSummary() *Summary {
	return &Summary{Histogram: make(map[int]int)}
}

func (s *Summary) add(res game.Result) {
	s.Games++
	if !res.Solved {
		s.Failed++
		s.Failures = append(s.Failures, res.Secret.String())
		return
	}
	s.Solved++
	s.Histogram[res.Turns()]++
	s.turns.Push(float64(res.Turns()))
}

func (s *Summary) merge(o *Summary) {
	s.Games += o.Games
	s.Solved += o.Solved
	s.Failed += o.Failed
	for k, v := range o.Histogram {
		s.Histogram[k] += v
	}
	s.Failures = append(s.Failures, o.Failures...)
	s.turns.Merge(&o.turns)
}

// finalize fills in the derived fields. Worker scheduling decides the
// order games finish in, so failures are sorted.
func (s *Summary) finalize() {
	slices.Sort(s.Failures)
	s.MeanTurns = s.turns.Mean()
	s.StdevTurns = s.turns.Stdev()
	s.CI95 = s.turns.MarginOfError(95)
	s.WorstTurns = int(s.turns.Max())
}

// WriteYAML writes the summary as a YAML document.
func (s *Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d games, %d solved, %d failed; mean %.3f ± %.3f turns (sd %.3f), worst %d",
		s.Games, s.Solved, s.Failed, s.MeanTurns, s.CI95, s.StdevTurns, s.WorstTurns)
}

// Plot draws a text histogram of the number of turns solved games took.
func (s *Summary) Plot(w io.Writer) error {
	if s.Solved == 0 {
		_, err := io.WriteString(w, "no solved games\n")
		return err
	}
	var data []float64
	turns := make([]int, 0, len(s.Histogram))
	for t := range s.Histogram {
		turns = append(turns, t)
	}
	slices.Sort(turns)
	if len(turns) == 1 {
		// Nothing to bin.
		_, err := fmt.Fprintf(w, "%d turns: %d games\n", turns[0], s.Histogram[turns[0]])
		return err
	}
	for _, t := range turns {
		for i := 0; i < s.Histogram[t]; i++ {
			data = append(data, float64(t))
		}
	}
	bins := max(turns[len(turns)-1]-turns[0]+1, 1)
	hist := histogram.Hist(bins, data)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
