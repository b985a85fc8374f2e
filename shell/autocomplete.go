package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/wordlebot/config"
)

// ShellCompleter completes command names, options and setting keys.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"autoplay": {
		Options: []string{"-n", "-threads", "-file"},
	},
	"rank": {
		Options: []string{"-n"},
	},
	"setconfig": {
		Args: []string{
			config.ConfigOpeners, config.ConfigPoolCap, config.ConfigCandidateBonus,
			config.ConfigMaxTurns, config.ConfigAutoplayThreads, config.ConfigWordList,
			config.ConfigWordListEncoding,
		},
	},
	"help": {
		Args: []string{"feedback", "autoplay", "rank", "setconfig"},
	},
}

var commandNames = []string{
	"help", "new", "reset", "suggest", "step", "next", "n", "play", "solve", "feedback",
	"fb", "candidates", "cands", "rank", "history", "h", "undo", "reveal",
	"autoplay", "setconfig", "config", "dict", "exit",
}

// Do implements readline.AutoCompleter.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		// Guesses and secrets complete from the dictionary once a few
		// letters are typed.
		if (cmdName == "feedback" || cmdName == "fb" || cmdName == "solve" || cmdName == "new") &&
			len(fields) <= 2 && len(prefix) >= 2 {
			upper := strings.ToUpper(prefix)
			for _, w := range c.sc.dict.Words() {
				if strings.HasPrefix(w.String(), upper) {
					completions = append(completions, prefix+w.String()[len(prefix):])
				}
			}
		} else if metadata, ok := commandMetadata[cmdName]; ok {
			if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
				completions = metadata.Options
			} else {
				completions = metadata.Args
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
