package config

import (
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/spf13/pflag"
)

func TestDefaultConfig(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigDeckSize), 26)
	is.Equal(cfg.GetBool(ConfigDebug), false)
	is.Equal(cfg.GetInt(ConfigHistogramBins), 15)
	is.Equal(cfg.GetFloat64(ConfigConfidence), 99.0)
}

func TestLoadFlagsAndPositionals(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	rest, err := cfg.Load([]string{"--deck-size", "4", "1", "3", "--debug"})
	is.NoErr(err)
	is.Equal(rest, []string{"1", "3"})
	is.Equal(cfg.GetInt(ConfigDeckSize), 4)
	is.True(cfg.GetBool(ConfigDebug))
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	os.Setenv("REDBLACK_DECK_SIZE", "10")
	defer os.Unsetenv("REDBLACK_DECK_SIZE")
	cfg := &Config{}
	_, err := cfg.Load(nil)
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigDeckSize), 10)
}

func TestLoadErrors(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	_, err := cfg.Load([]string{"--help"})
	is.True(errors.Is(err, pflag.ErrHelp))

	_, err = cfg.Load([]string{"--deck-size", "0"})
	is.True(err != nil)
}
