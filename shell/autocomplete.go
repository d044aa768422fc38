package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/agentsearch/search"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"miu": {
		Options: []string{"-from", "-to", "-algo", "-max", "-depth", "-verbose"},
		Args:    []string{"next", "search"},
	},
	"maze": {
		Options: []string{"-width", "-height", "-walls", "-seed", "-algo", "-max", "-depth", "-verbose"},
		Args:    []string{"gen", "show", "use", "search"},
	},
	"compare": {
		Options: []string{"-from", "-to", "-max", "-depth"},
		Args:    []string{"miu", "maze"},
	},
	"hist": {
		Options: []string{"-bins"},
	},
	"set": {
		Args: settable,
	},
	"help": {
		Args: commandNames,
	},
}

var commandNames = []string{
	"help", "set", "miu", "maze", "compare", "path", "hist", "export", "dot",
	"demo", "script", "exit", "bye",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// Unbalanced quotes; fall back to plain splitting.
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

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch lastCompleteField {
		case "-algo":
			completions = lo.Map(search.Algorithms, func(a search.Algorithm, _ int) string {
				return a.String()
			})
		case "-verbose":
			completions = boolValues
		case "use":
			if cmdName == "maze" {
				completions = c.sc.sessions.IDs()
			}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(fields) > 2 || (len(fields) == 2 && endsWithSpace) {
					completions = metadata.Options
				} else if len(metadata.Args) > 0 {
					completions = metadata.Args
				} else {
					completions = metadata.Options
				}
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
