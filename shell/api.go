package shell

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/redblack/cache"
	"github.com/domino14/redblack/montecarlo"
)

var errNoSim = errors.New("no simulation has been run; try `sim` first")

func intArgs(args []string, usage string) ([]int, error) {
	vals := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%v is not an integer; usage: %s", strconv.Quote(a), usage)
		}
		vals[i] = v
	}
	return vals, nil
}

func (sc *ShellController) ev(cmd *shellcmd) (*Response, error) {
	const usage = "ev [black_in_hand cards_in_hand]"
	black, hand := 0, 0
	switch len(cmd.args) {
	case 0:
	case 2:
		vals, err := intArgs(cmd.args, usage)
		if err != nil {
			return nil, err
		}
		black, hand = vals[0], vals[1]
	default:
		return nil, errors.New(usage)
	}
	v, err := sc.table.Query(black, hand)
	if err != nil {
		return nil, err
	}
	return Msg(fmt.Sprintf("The expected value with %d black cards in your hand, and %d cards in your hand is: %.2f",
		black, hand, v)), nil
}

func (sc *ShellController) state(cmd *shellcmd, usage string) (int, int, error) {
	if len(cmd.args) != 2 {
		return 0, 0, errors.New(usage)
	}
	vals, err := intArgs(cmd.args, usage)
	if err != nil {
		return 0, 0, err
	}
	return vals[0], vals[1], nil
}

func (sc *ShellController) value(cmd *shellcmd) (*Response, error) {
	pos, neg, err := sc.state(cmd, "value <black_remaining> <red_remaining>")
	if err != nil {
		return nil, err
	}
	v, err := sc.table.ValueAt(pos, neg)
	if err != nil {
		return nil, err
	}
	return Msg(fmt.Sprintf("%.4f", v)), nil
}

func (sc *ShellController) decide(cmd *shellcmd) (*Response, error) {
	pos, neg, err := sc.state(cmd, "decide <black_remaining> <red_remaining>")
	if err != nil {
		return nil, err
	}
	stop, err := sc.table.ShouldStop(pos, neg)
	if err != nil {
		return nil, err
	}
	v, _ := sc.table.ValueAt(pos, neg)
	action := "draw"
	if stop {
		action = "stop"
	}
	return Msg(fmt.Sprintf("%s (value %.4f)", action, v)), nil
}

func (sc *ShellController) dumpTable(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	if err := sc.table.WriteTable(&sb); err != nil {
		return nil, err
	}
	return Msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) deck(cmd *shellcmd) (*Response, error) {
	switch len(cmd.args) {
	case 0:
		return Msg(fmt.Sprintf("deck size: %d of each color", sc.table.DeckSize())), nil
	case 1:
		vals, err := intArgs(cmd.args, "deck [size]")
		if err != nil {
			return nil, err
		}
		if vals[0] == 0 {
			// cache.Load treats 0 as "use the configured size"
			return nil, errors.New("deck size must be positive")
		}
		t, err := cache.Load(sc.config, vals[0])
		if err != nil {
			return nil, err
		}
		sc.table = t
		sc.lastSim = nil
		return Msg(fmt.Sprintf("deck size set to %d of each color", t.DeckSize())), nil
	}
	return nil, errors.New("deck [size]")
}

func seedBytes(seed string) []byte {
	sum := sha256.Sum256([]byte(seed))
	return sum[:]
}

func (sc *ShellController) sim(cmd *shellcmd) (*Response, error) {
	iterations := sc.options.iterations
	black, hand := 0, 0
	seed := sc.options.seed
	var err error

	if len(cmd.args) > 1 {
		return nil, errors.New("sim [iterations] [-black n] [-hand n] [-seed s] [-log file]")
	}
	if len(cmd.args) == 1 {
		if iterations, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	for opt, val := range cmd.options {
		switch opt {
		case "black":
			black, err = strconv.Atoi(val)
		case "hand":
			hand, err = strconv.Atoi(val)
		case "seed":
			seed = val
		case "log":
		default:
			err = fmt.Errorf("option %v not recognized", opt)
		}
		if err != nil {
			return nil, err
		}
	}

	opts := []montecarlo.Option{}
	if seed != "" {
		opts = append(opts, montecarlo.WithSeed(seedBytes(seed)))
	}
	if logPath, ok := cmd.options["log"]; ok {
		f, err := os.Create(logPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		opts = append(opts, montecarlo.WithLogStream(f))
	}
	simmer, err := montecarlo.NewSimmer(sc.table, opts...)
	if err != nil {
		return nil, err
	}
	ctx := log.Logger.WithContext(context.Background())
	res, err := simmer.Simulate(ctx, black, hand, iterations)
	if err != nil {
		return nil, err
	}
	sc.lastSim = res
	return Msg(res.Summary(sc.options.confidence)), nil
}

func (sc *ShellController) hist(cmd *shellcmd) (*Response, error) {
	if sc.lastSim == nil {
		return nil, errNoSim
	}
	bins := sc.options.histogramBins
	if b, ok := cmd.options["bins"]; ok {
		var err error
		if bins, err = strconv.Atoi(b); err != nil {
			return nil, err
		}
	}
	var sb strings.Builder
	if err := sc.lastSim.WriteHistogram(&sb, bins); err != nil {
		return nil, err
	}
	return Msg(sb.String()), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("set <option> <value>")
	}
	if err := sc.options.Set(cmd.args[0], cmd.args[1]); err != nil {
		return nil, err
	}
	_, val := sc.options.Show(cmd.args[0])
	return Msg(cmd.args[0] + " set to " + val), nil
}
