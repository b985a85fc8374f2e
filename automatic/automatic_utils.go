package automatic

// Batch autoplay: every secret is played to the end by a pool of workers.

import (
	"context"
	"errors"
	"expvar"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/wordlebot/config"
	"github.com/domino14/wordlebot/dictionary"
	"github.com/domino14/wordlebot/word"
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

var (
	GamesCounter *expvar.Int
	IsPlaying    *expvar.Int

	playing atomic.Bool
)

func init() {
	GamesCounter = expvar.NewInt("autoplayGames")
	IsPlaying = expvar.NewInt("autoplayIsPlaying")
}

// Run plays one game per secret on threads workers and returns the
// aggregate. If logw is non-nil a CSV line per game is written to it.
// On cancellation the summary of the games finished so far is returned
// along with the context error.
func Run(ctx context.Context, cfg *config.Config, dict *dictionary.Dictionary,
	secrets []word.Word, threads int, logw io.Writer) (*Summary, error) {

	if !playing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer playing.Store(false)

	threads = max(threads, 1)
	log.Debug().Int("games", len(secrets)).Int("threads", threads).
		Str("dictionary", dict.Fingerprint()).Msg("starting-autoplay")

	summary := newSummary()
	summary.Fingerprint = dict.Fingerprint()
	var mu sync.Mutex

	logChan := make(chan string, 100)
	writer := errgroup.Group{}
	writer.Go(func() error {
		var werr error
		if logw != nil {
			_, werr = io.WriteString(logw, CSVHeader)
		}
		// Keep draining even after a write error so workers never block.
		for msg := range logChan {
			if logw != nil && werr == nil {
				_, werr = io.WriteString(logw, msg)
			}
		}
		return werr
	})

	tstart := time.Now()
	jobs := make(chan word.Word)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i, s := range secrets {
			select {
			case jobs <- s:
			case <-gctx.Done():
				log.Info().Int("queued", i).Msg("got stop signal, exiting soon...")
				return gctx.Err()
			}
		}
		return nil
	})

	for t := 0; t < threads; t++ {
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			r := NewGameRunner(logChan, cfg, dict.Words())
			local := newSummary()
			// Merge whatever was played, even if we stop early.
			defer func() {
				mu.Lock()
				summary.merge(local)
				mu.Unlock()
			}()
			for secret := range jobs {
				res, err := r.PlayGame(gctx, secret)
				if err != nil {
					return err
				}
				local.add(res)
				GamesCounter.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	close(logChan)
	if werr := writer.Wait(); werr != nil && err == nil {
		err = werr
	}
	summary.finalize()
	log.Info().Int("games", summary.Games).Int("solved", summary.Solved).
		Float64("mean-turns", summary.MeanTurns).Dur("elapsed", time.Since(tstart)).
		Msg("autoplay-done")
	return summary, err
}
