package montecarlo

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
)

const histogramWidth = 50

var errNoPayoffs = errors.New("no payoffs to plot")

func (r *Result) Histogram(bins int) histogram.Histogram {
	return histogram.Hist(bins, r.Payoffs)
}

// WriteHistogram plots the payoff distribution.
func (r *Result) WriteHistogram(w io.Writer, bins int) error {
	if len(r.Payoffs) == 0 {
		return errNoPayoffs
	}
	return histogram.Fprint(w, r.Histogram(bins), histogram.Linear(histogramWidth))
}

// Summary describes the simulation at the given confidence level.
func (r *Result) Summary(confidence float64) string {
	var ss strings.Builder
	lo, hi := r.ConfidenceInterval(confidence)
	fmt.Fprintf(&ss, "Deck: %d black, %d red remaining (deck size %d)\n",
		r.Positive, r.Negative, r.DeckSize)
	fmt.Fprintf(&ss, "%-22s%d\n", "Games:", r.Stats.Iterations())
	fmt.Fprintf(&ss, "%-22s%.4f\n", "Table value:", r.Expected)
	fmt.Fprintf(&ss, "%-22s%.4f ± %.4f\n", "Simulated mean:", r.Stats.Mean(), r.Stats.StandardError())
	fmt.Fprintf(&ss, "%-22s[%.4f, %.4f]\n", fmt.Sprintf("%.1f%% interval:", confidence), lo, hi)
	fmt.Fprintf(&ss, "%-22s%.0f to %.0f (stdev %.3f)\n", "Payoffs:", r.Stats.Min(), r.Stats.Max(), r.Stats.Stdev())
	fmt.Fprintf(&ss, "%-22s%.2f\n", "Mean cards drawn:", r.Drawn.Mean())
	if r.Consistent(confidence) {
		ss.WriteString("Table value is inside the interval.\n")
	} else {
		ss.WriteString("Table value is OUTSIDE the interval.\n")
	}
	return ss.String()
}

func (r *Result) String() string {
	return fmt.Sprintf("<sim (%d, %d): %d games, mean %.4f, expected %.4f>",
		r.Positive, r.Negative, r.Stats.Iterations(), r.Stats.Mean(), r.Expected)
}
