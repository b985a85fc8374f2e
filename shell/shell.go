package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordlebot/config"
	"github.com/domino14/wordlebot/dictionary"
	"github.com/domino14/wordlebot/feedback"
	"github.com/domino14/wordlebot/solver"
	"github.com/domino14/wordlebot/word"
)

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config *config.Config
	dict   *dictionary.Dictionary
	solver *solver.Solver

	// secret is empty in assisted mode, where feedback comes from a game
	// played somewhere else and is typed in.
	secret  word.Word
	history feedback.History

	// Loop runs commands on its own goroutine while Cleanup is called
	// from main, so the cancel func is guarded.
	cancelMu       sync.Mutex
	autoplayCancel context.CancelFunc
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config) (*ShellController, error) {
	dict, err := dictionary.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	sc := newController(cfg, dict, os.Stdout)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mwordlebot>\033[0m ",
		HistoryFile:     "/tmp/wordlebot_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc, nil
}

// newController builds a controller without a terminal.
func newController(cfg *config.Config, dict *dictionary.Dictionary, out io.Writer) *ShellController {
	log.Info().Int("words", dict.Len()).Str("fingerprint", dict.Fingerprint()).Msg("dictionary")
	return &ShellController{
		out:    out,
		config: cfg,
		dict:   dict,
		solver: solver.FromConfig(cfg),
	}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// Execute runs a single command line, as if typed at the prompt.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	if err := sc.standardModeSwitch(line, sig); err != nil {
		log.Error().Err(err).Msg("")
	}
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) error {
	cmd, err := extractFields(line)
	if errors.Is(err, errNoData) {
		return nil
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	if cmd.cmd == "exit" {
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")
	}
	resp, err := sc.dispatch(cmd)
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "reset":
		return sc.reset(cmd)
	case "suggest":
		return sc.suggest(cmd)
	case "step", "next", "n":
		return sc.step(cmd)
	case "play":
		return sc.play(cmd)
	case "solve":
		return sc.solve(cmd)
	case "feedback", "fb":
		return sc.feedback(cmd)
	case "candidates", "cands":
		return sc.candidates(cmd)
	case "rank":
		return sc.rank(cmd)
	case "history", "h":
		return sc.showHistory(cmd)
	case "undo":
		return sc.undo(cmd)
	case "reveal":
		return sc.reveal(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "setconfig":
		return sc.setConfig(cmd)
	case "config":
		return sc.showConfig(cmd)
	case "dict":
		return sc.showDict(cmd)
	}
	return nil, fmt.Errorf("command %q not found; try help", cmd.cmd)
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		if err := sc.standardModeSwitch(line, sig); err != nil {
			log.Error().Err(err).Msg("")
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) setAutoplayCancel(cancel context.CancelFunc) {
	sc.cancelMu.Lock()
	defer sc.cancelMu.Unlock()
	sc.autoplayCancel = cancel
}

// Cleanup stops anything still running in the background.
func (sc *ShellController) Cleanup() {
	sc.cancelMu.Lock()
	defer sc.cancelMu.Unlock()
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
	}
}
