package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/redblack/cache"
	"github.com/domino14/redblack/config"
	"github.com/domino14/redblack/evtable"
	"github.com/domino14/redblack/montecarlo"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
)

type Response struct {
	message string
}

func Msg(message string) *Response {
	return &Response{message: message}
}

func (r *Response) Message() string {
	return r.message
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

type ShellController struct {
	l       *readline.Instance
	out     io.Writer
	config  *config.Config
	options *ShellOptions

	table   *evtable.Builder
	lastSim *montecarlo.Result
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("ev"),
	readline.PcItem("value"),
	readline.PcItem("decide"),
	readline.PcItem("table"),
	readline.PcItem("deck"),
	readline.PcItem("sim",
		readline.PcItem("-black"), readline.PcItem("-hand"),
		readline.PcItem("-seed"), readline.PcItem("-log")),
	readline.PcItem("hist"),
	readline.PcItem("set",
		readline.PcItem("confidence"), readline.PcItem("bins"),
		readline.PcItem("iterations"), readline.PcItem("seed")),
	readline.PcItem("show"),
	readline.PcItem("help",
		readline.PcItem("ev"), readline.PcItem("sim"), readline.PcItem("deck")),
	readline.PcItem("exit"),
)

// NewShellController creates an interactive shell. The table for the
// configured deck size is filled up front.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mredblack>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		AutoComplete:    completer,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc, err := newController(cfg, l.Stderr())
	if err != nil {
		l.Close()
		return nil, err
	}
	sc.l = l
	return sc, nil
}

func newController(cfg *config.Config, out io.Writer) (*ShellController, error) {
	opts := NewShellOptions()
	opts.SetDefaults(cfg)
	table, err := cache.Load(cfg, 0)
	if err != nil {
		return nil, err
	}
	return &ShellController{out: out, config: cfg, options: opts, table: table}, nil
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

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
	options := map[string]string{}
	for i := 1; i < len(fields); i++ {
		// negative numbers are arguments, not options
		if strings.HasPrefix(fields[i], "-") && !isNumber(fields[i]) {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[i][1:]] = fields[i+1]
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// Execute runs a single shell command line.
func (sc *ShellController) Execute(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	return sc.handle(cmd)
}

func (sc *ShellController) handle(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "ev":
		return sc.ev(cmd)
	case "value", "v":
		return sc.value(cmd)
	case "decide", "d":
		return sc.decide(cmd)
	case "table":
		return sc.dumpTable(cmd)
	case "deck":
		return sc.deck(cmd)
	case "sim":
		return sc.sim(cmd)
	case "hist":
		return sc.hist(cmd)
	case "set":
		return sc.set(cmd)
	case "show":
		return Msg(sc.options.ToDisplayText()), nil
	case "help":
		return sc.help(cmd)
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
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

		if line == "exit" || line == "bye" {
			sig <- syscall.SIGINT
			break
		} else if line == "" {
			continue
		}
		resp, err := sc.Execute(line)
		if err != nil {
			sc.showError(err)
		} else if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup closes the readline instance if it is still open.
func (sc *ShellController) Cleanup() {
	if sc.l != nil {
		sc.l.Close()
	}
}
