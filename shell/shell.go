package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/agentsearch/config"
	"github.com/domino14/agentsearch/report"
	"github.com/domino14/agentsearch/session"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("quit")
	errNoRun             = errors.New("nothing has been searched yet")
	errBadBins           = errors.New("bins must be positive")
)

// lastSearch keeps what the path, hist, export and dot commands need from the
// most recent search. The closures hide the state type.
type lastSearch struct {
	run  report.Run
	dot  func(name string) ([]byte, error)
	hist func(w io.Writer, bins int) error
}

type ShellController struct {
	l *readline.Instance

	config   *config.Config
	sessions *session.Store
	out      io.Writer

	last *lastSearch
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
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

func NewShellController(cfg *config.Config, sessions *session.Store) *ShellController {
	if sessions == nil {
		sessions = session.NewStore()
	}
	return &ShellController{config: cfg, sessions: sessions, out: os.Stdout}
}

// SetOutput redirects command output, which goes to stdout by default.
func (sc *ShellController) SetOutput(w io.Writer) {
	sc.out = w
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, its positional arguments and
// its -key value options.
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
		if strings.HasPrefix(fields[idx], "-") && len(fields[idx]) > 1 {
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

func (sc *ShellController) handle(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "set":
		return sc.set(cmd)
	case "miu":
		return sc.miu(cmd)
	case "maze":
		return sc.maze(cmd)
	case "compare":
		return sc.compare(cmd)
	case "path":
		return sc.path(cmd)
	case "hist":
		return sc.hist(cmd)
	case "export":
		return sc.export(cmd)
	case "dot":
		return sc.dot(cmd)
	case "demo":
		return sc.demo(cmd)
	case "script":
		return sc.script(cmd)
	default:
		log.Debug().Msgf("you said: %q", line)
		return nil, fmt.Errorf("command %v not found", cmd.cmd)
	}
}

// Execute runs one line non-interactively.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.handle(line)
	if errors.Is(err, errQuit) {
		sig <- syscall.SIGINT
		return
	}
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[34magentsearch>\033[0m ",
		HistoryFile:     sc.config.GetString(config.ConfigHistoryFile),
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Err(err).Msg("could-not-start-readline")
		sig <- syscall.SIGINT
		return
	}
	sc.l = l
	sc.out = l.Stdout()
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
		if line == "" {
			continue
		}
		resp, err := sc.handle(line)
		if errors.Is(err, errQuit) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
