package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/redblack/config"
)

var optionKeys = []string{"confidence", "bins", "iterations", "seed"}

// Options to configure the interactive shell
type ShellOptions struct {
	confidence    float64
	histogramBins int
	iterations    int
	seed          string
}

func NewShellOptions() *ShellOptions {
	return &ShellOptions{
		confidence:    config.DefaultConfidence,
		histogramBins: config.DefaultHistogramBins,
		iterations:    config.DefaultSimIterations,
	}
}

func (opts *ShellOptions) SetDefaults(cfg *config.Config) {
	opts.confidence = cfg.GetFloat64(config.ConfigConfidence)
	opts.histogramBins = cfg.GetInt(config.ConfigHistogramBins)
	opts.iterations = cfg.GetInt(config.ConfigSimIterations)
	opts.seed = cfg.GetString(config.ConfigSimSeed)
}

func (opts *ShellOptions) Set(key, value string) error {
	if !lo.Contains(optionKeys, key) {
		return errors.New("no such option: " + key)
	}
	switch key {
	case "confidence":
		c, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		if c <= 0 || c >= 100 {
			return errors.New("confidence must be between 0 and 100")
		}
		opts.confidence = c
	case "bins":
		b, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if b <= 0 {
			return errors.New("bins must be positive")
		}
		opts.histogramBins = b
	case "iterations":
		it, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if it <= 0 {
			return errors.New("iterations must be positive")
		}
		opts.iterations = it
	case "seed":
		opts.seed = value
	}
	return nil
}

func (opts *ShellOptions) Show(key string) (bool, string) {
	switch key {
	case "confidence":
		return true, fmt.Sprintf("%v", opts.confidence)
	case "bins":
		return true, strconv.Itoa(opts.histogramBins)
	case "iterations":
		return true, strconv.Itoa(opts.iterations)
	case "seed":
		if opts.seed == "" {
			return true, "(random)"
		}
		return true, opts.seed
	default:
		return false, "No such option: " + key
	}
}

func (opts *ShellOptions) ToDisplayText() string {
	out := strings.Builder{}
	out.WriteString("Settings:\n")
	for _, key := range optionKeys {
		_, val := opts.Show(key)
		out.WriteString("  " + key + ": ")
		out.WriteString(val + "\n")
	}
	return out.String()
}
