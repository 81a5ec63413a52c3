// expcards prints the expected winnings of the red/black card game for a
// given hand, playing optimally from there on.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/redblack/cache"
	"github.com/domino14/redblack/config"
)

func setupLogging(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.WarnLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func run(args []string, w io.Writer) error {
	cfg := &config.Config{}
	positional, err := cfg.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintln(w, help(config.DefaultDeckSize))
		return nil
	} else if err != nil {
		log.Debug().Err(err).Msg("flag parsing failed")
		return errBadArguments
	}
	setupLogging(cfg)
	deckSize := cfg.GetInt(config.ConfigDeckSize)

	black, hand, err := parseArgs(positional, deckSize)
	if errors.Is(err, errHelp) {
		fmt.Fprintln(w, help(deckSize))
		return nil
	} else if err != nil {
		return err
	}

	table, err := cache.Load(cfg, deckSize)
	if err != nil {
		return err
	}
	if cfg.GetBool(config.ConfigPrintTable) {
		if err := table.WriteTable(w); err != nil {
			return err
		}
	}
	v, err := table.Query(black, hand)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "The expected value with %d black cards in your hand, and %d cards in your hand is: %.2f\n",
		black, hand, v)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
