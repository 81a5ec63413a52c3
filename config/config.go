package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDeckSize      = "deck-size"
	ConfigDebug         = "debug"
	ConfigSimIterations = "sim-iterations"
	ConfigSimSeed       = "sim-seed"
	ConfigConfidence    = "confidence"
	ConfigHistogramBins = "histogram-bins"
	ConfigHistoryFile   = "history-file"
	ConfigPrintTable    = "print-table"
)

const (
	DefaultDeckSize      = 26
	DefaultSimIterations = 100000
	DefaultConfidence    = 99.0
	DefaultHistogramBins = 15
	DefaultHistoryFile   = "/tmp/redblack_readline.tmp"
)

type Config struct {
	*viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDeckSize, DefaultDeckSize)
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigSimIterations, DefaultSimIterations)
	v.SetDefault(ConfigSimSeed, "")
	v.SetDefault(ConfigConfidence, DefaultConfidence)
	v.SetDefault(ConfigHistogramBins, DefaultHistogramBins)
	v.SetDefault(ConfigHistoryFile, DefaultHistoryFile)
	v.SetDefault(ConfigPrintTable, false)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("redblack")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load parses the given command-line flags into the config. Anything that
// is not a flag is returned so binaries can treat it as positional input.
// Environment variables such as REDBLACK_DECK_SIZE override defaults, and
// explicitly-set flags override both.
func (c *Config) Load(args []string) ([]string, error) {
	c.Viper = newViper()

	fs := pflag.NewFlagSet("redblack", pflag.ContinueOnError)
	fs.Int(ConfigDeckSize, DefaultDeckSize, "number of cards of each color in the deck")
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.Int(ConfigSimIterations, DefaultSimIterations, "default number of games per simulation")
	fs.String(ConfigSimSeed, "", "seed for simulations (random if empty)")
	fs.Float64(ConfigConfidence, DefaultConfidence, "confidence level, in percent, for simulation intervals")
	fs.Int(ConfigHistogramBins, DefaultHistogramBins, "number of bins in simulation histograms")
	fs.String(ConfigHistoryFile, DefaultHistoryFile, "readline history file for the shell")
	fs.Bool(ConfigPrintTable, false, "print the whole expected value table")
	fs.Usage = func() {}

	// -h and --help come back as pflag.ErrHelp; callers print their own help.
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.BindPFlags(fs); err != nil {
		return nil, err
	}
	if c.GetInt(ConfigDeckSize) <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d", ConfigDeckSize, c.GetInt(ConfigDeckSize))
	}
	return fs.Args(), nil
}

// SanitizedSettings returns the settings as a map, suitable for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

func DefaultConfig() Config {
	return Config{Viper: newViper()}
}
