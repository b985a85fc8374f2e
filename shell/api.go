package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/wordlebot/automatic"
	"github.com/domino14/wordlebot/config"
	"github.com/domino14/wordlebot/dictionary"
	"github.com/domino14/wordlebot/entropy"
	"github.com/domino14/wordlebot/feedback"
	"github.com/domino14/wordlebot/filter"
	"github.com/domino14/wordlebot/game"
	"github.com/domino14/wordlebot/solver"
	"github.com/domino14/wordlebot/word"
)

const (
	defaultListSize = 10
	// Candidate lists longer than this are truncated unless asked for.
	maxShownCandidates = 10
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("no game in progress; use new or feedback first")
	errAssistedMode      = errors.New("no secret in assisted mode; use feedback to enter results")
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// extractFields splits a command line into the command, its positional
// arguments and its -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[idx][1:]] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func parseWord(s string) (word.Word, error) {
	return word.New(strings.ToUpper(s))
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage()), nil
	}
	return msg(helpFor(cmd.args[0])), nil
}

// newGame starts a self-play game. Without an argument the secret is drawn
// at random and kept hidden.
func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	var secret word.Word
	if len(cmd.args) > 0 {
		w, err := parseWord(cmd.args[0])
		if err != nil {
			return nil, err
		}
		secret = w
	} else {
		secret = sc.dict.Random()
	}
	if !sc.dict.Contains(secret) {
		log.Warn().Str("secret", secret.String()).Msg("secret-not-in-dictionary")
	}
	sc.secret = secret
	sc.history = nil
	return msg(fmt.Sprintf("New game; %d words in dictionary.", sc.dict.Len())), nil
}

// reset switches to assisted mode with an empty history.
func (sc *ShellController) reset(cmd *shellcmd) (*Response, error) {
	sc.secret = ""
	sc.history = nil
	return msg("Assisted mode. Enter results with: feedback <guess> <pattern>"), nil
}

func (sc *ShellController) suggest(cmd *shellcmd) (*Response, error) {
	g, err := sc.solver.NextGuess(sc.history, sc.dict.Words())
	if err != nil {
		return nil, err
	}
	return msg("Suggested guess: " + g.String()), nil
}

func (sc *ShellController) step(cmd *shellcmd) (*Response, error) {
	if sc.secret == "" {
		return nil, errAssistedMode
	}
	if sc.history.Solved() {
		return msg("Already solved."), nil
	}
	g, err := sc.newSelfPlay()
	if err != nil {
		return nil, err
	}
	rec, err := g.Step()
	if err != nil {
		return nil, err
	}
	sc.history = g.History()
	return msg(sc.turnLine(len(sc.history), rec, g.Remaining())), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.secret == "" {
		return nil, errAssistedMode
	}
	g, err := sc.newSelfPlay()
	if err != nil {
		return nil, err
	}
	start := g.Turn()
	res, playErr := g.Play(context.Background())
	sc.history = res.History
	var sb strings.Builder
	for i := start; i < len(res.History); i++ {
		sb.WriteString(sc.turnLine(i+1, res.History[i], res.Remaining[i]))
		sb.WriteString("\n")
	}
	if playErr != nil {
		return nil, fmt.Errorf("%s%w", sb.String(), playErr)
	}
	fmt.Fprintf(&sb, "Solved in %d guesses!", res.Turns())
	return msg(sb.String()), nil
}

func (sc *ShellController) newSelfPlay() (*game.Game, error) {
	return game.New(sc.secret, sc.dict.Words(), sc.solver,
		game.WithMaxTurns(sc.config.GetInt(config.ConfigMaxTurns)),
		game.WithHistory(sc.history))
}

func (sc *ShellController) turnLine(turn int, rec feedback.Record, remaining int) string {
	return fmt.Sprintf("Guess %d: %s  %s  (%d remaining)", turn, rec.Guess, rec.Pattern.Emoji(), remaining)
}

// solve plays a full game against the given secret without touching the
// current game.
func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: solve <secret>")
	}
	secret, err := parseWord(cmd.args[0])
	if err != nil {
		return nil, err
	}
	saveSecret, saveHistory := sc.secret, sc.history
	defer func() {
		sc.secret, sc.history = saveSecret, saveHistory
	}()
	sc.secret, sc.history = secret, nil
	return sc.play(cmd)
}

// feedback records the result of a guess made in an outside game.
func (sc *ShellController) feedback(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: feedback <guess> <pattern>, pattern like BGYBB or 02100")
	}
	if sc.secret != "" {
		return nil, errors.New("a self-play game is in progress; use reset for assisted mode")
	}
	guess, err := parseWord(cmd.args[0])
	if err != nil {
		return nil, err
	}
	p, err := feedback.ParsePattern(cmd.args[1])
	if err != nil {
		return nil, err
	}
	h := sc.history.With(feedback.Record{Guess: guess, Pattern: p})
	n := len(filter.Candidates(sc.dict.Words(), h))
	if n == 0 {
		return nil, fmt.Errorf("%w; not recorded", solver.ErrContradiction)
	}
	sc.history = h
	if p.AllExact() {
		return msg(fmt.Sprintf("Solved in %d guesses!", len(h))), nil
	}
	return msg(fmt.Sprintf("%s  %s  (%d remaining)", guess, p.Emoji(), n)), nil
}

func (sc *ShellController) candidates(cmd *shellcmd) (*Response, error) {
	n := maxShownCandidates
	if len(cmd.args) > 0 {
		var err error
		if n, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	cands := filter.Candidates(sc.dict.Words(), sc.history)
	shown := cands
	if n > 0 && n < len(cands) {
		shown = cands[:n]
	}
	strs := make([]string, len(shown))
	for i, w := range shown {
		strs[i] = w.String()
	}
	out := fmt.Sprintf("%d candidates: %s", len(cands), strings.Join(strs, " "))
	if len(shown) < len(cands) {
		out += " ..."
	}
	return msg(out), nil
}

func (sc *ShellController) rank(cmd *shellcmd) (*Response, error) {
	n, err := cmd.options.IntDefault("n", defaultListSize)
	if err != nil {
		return nil, err
	}
	if len(cmd.args) > 0 {
		if n, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	words := sc.dict.Words()
	ranked, err := sc.solver.Rank(sc.history, words, n)
	if err != nil {
		return nil, err
	}
	cands := filter.Candidates(words, sc.history)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d candidates, at most %.4f bits\n", len(cands), entropy.MaxScore(len(cands)))
	sb.WriteString("     Guess  Entropy  Bonus  ExpLeft\n")
	for i, r := range ranked {
		fmt.Fprintf(&sb, "%3d: %-6s %-8.4f %-6.2f %-7.2f\n", i+1, r.Word, r.Entropy, r.Bonus,
			entropy.ExpectedRemaining(r.Word, cands))
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) showHistory(cmd *shellcmd) (*Response, error) {
	if len(sc.history) == 0 {
		return nil, errNoGame
	}
	var sb strings.Builder
	for i, rec := range sc.history {
		fmt.Fprintf(&sb, "%d: %s  %s\n", i+1, rec.Guess, rec.Pattern.Emoji())
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if len(sc.history) == 0 {
		return nil, errNoGame
	}
	sc.history = sc.history[:len(sc.history)-1]
	return msg(fmt.Sprintf("Back to turn %d.", len(sc.history))), nil
}

func (sc *ShellController) reveal(cmd *shellcmd) (*Response, error) {
	if sc.secret == "" {
		return nil, errAssistedMode
	}
	return msg("The secret is " + sc.secret.String()), nil
}

// autoplay benchmarks the solver. By default it plays every word in the
// dictionary; -n plays that many random secrets instead.
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	n, err := cmd.options.IntDefault("n", 0)
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	secrets := sc.dict.Words()
	if n > 0 {
		secrets = sc.dict.Sample(n)
	}

	var logw io.Writer
	if path := cmd.options.String("file"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		logw = f
	}

	ctx, cancel := context.WithCancel(context.Background())
	sc.setAutoplayCancel(cancel)
	defer func() {
		cancel()
		sc.setAutoplayCancel(nil)
	}()

	summary, err := automatic.Run(ctx, sc.config, sc.dict, secrets, threads, logw)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	sb.WriteString(summary.String())
	sb.WriteString("\n")
	if err := summary.Plot(&sb); err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: setconfig <key> <value>")
	}
	key := cmd.args[0]
	value := cmd.args[1]

	switch key {
	case config.ConfigOpeners:
		sc.config.Set(key, strings.Split(strings.ToUpper(value), ","))
	case config.ConfigPoolCap, config.ConfigMaxTurns, config.ConfigAutoplayThreads:
		i, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, i)
	case config.ConfigCandidateBonus:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, f)
	case config.ConfigWordList, config.ConfigWordListEncoding:
		prev := sc.config.GetString(key)
		sc.config.Set(key, value)
		d, err := dictionary.FromConfig(sc.config)
		if err != nil {
			sc.config.Set(key, prev)
			return nil, err
		}
		sc.dict = d
		sc.secret, sc.history = "", nil
	default:
		sc.config.Set(key, value)
	}
	sc.solver = solver.FromConfig(sc.config)

	if err := sc.config.Write(); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("Set %s to %s and saved the config.", key, value)), nil
}

func (sc *ShellController) showConfig(cmd *shellcmd) (*Response, error) {
	out, err := yaml.Marshal(sc.config.AllSettings())
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(string(out), "\n")), nil
}

func (sc *ShellController) showDict(cmd *shellcmd) (*Response, error) {
	return msg(fmt.Sprintf("%d words, fingerprint %s", sc.dict.Len(), sc.dict.Fingerprint())), nil
}
