// Package montecarlo plays the red/black game against randomly shuffled
// decks, stopping whenever the expected value table says to, and compares
// the observed payoffs with the table's prediction.
package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"

	"github.com/domino14/redblack/evtable"
	"github.com/domino14/redblack/stats"
)

const (
	ctxCheckInterval = 1024
	seedLength       = 32
)

var (
	ErrTableNotFilled = errors.New("simulation needs a filled table")
	ErrNoIterations   = errors.New("number of iterations must be positive")
	ErrBadSeed        = fmt.Errorf("seed must be %d bytes", seedLength)
)

// LogGame is a single simulated game, for writing to a log stream.
type LogGame struct {
	Iteration int    `yaml:"iteration"`
	Deck      string `yaml:"deck"`
	Drawn     int    `yaml:"drawn"`
	Payoff    int    `yaml:"payoff"`
}

type Simmer struct {
	table     *evtable.Builder
	rng       *frand.RNG
	logStream io.Writer
	deck      []bool
}

type Option func(*Simmer) error

// WithSeed makes the simulation reproducible.
func WithSeed(seed []byte) Option {
	return func(s *Simmer) error {
		if len(seed) != seedLength {
			return ErrBadSeed
		}
		s.rng = frand.NewCustom(seed, 1024, 12)
		return nil
	}
}

// WithLogStream writes every simulated game as YAML to w.
func WithLogStream(w io.Writer) Option {
	return func(s *Simmer) error {
		s.logStream = w
		return nil
	}
}

func NewSimmer(table *evtable.Builder, opts ...Option) (*Simmer, error) {
	if table == nil || !table.Filled() {
		return nil, ErrTableNotFilled
	}
	s := &Simmer{
		table: table,
		deck:  make([]bool, 0, 2*table.DeckSize()),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.rng == nil {
		s.rng = frand.New()
	}
	return s, nil
}

func (s *Simmer) shuffledDeck(pos, neg int) []bool {
	s.deck = s.deck[:0]
	for i := 0; i < pos; i++ {
		s.deck = append(s.deck, true)
	}
	for i := 0; i < neg; i++ {
		s.deck = append(s.deck, false)
	}
	s.rng.Shuffle(len(s.deck), func(i, j int) {
		s.deck[i], s.deck[j] = s.deck[j], s.deck[i]
	})
	return s.deck
}

// play draws from the deck until the table says to stop. It returns the
// final bank and the number of cards drawn.
func (s *Simmer) play(pos, neg int) (float64, int, error) {
	deck := s.shuffledDeck(pos, neg)
	drawn := 0
	for {
		stop, err := s.table.ShouldStop(pos, neg)
		if err != nil {
			return 0, drawn, err
		}
		if stop {
			break
		}
		if deck[drawn] {
			pos--
		} else {
			neg--
		}
		drawn++
	}
	return evtable.Bank(s.table.DeckSize(), pos, neg), drawn, nil
}

// PlayOne plays a single game starting with pos positive and neg negative
// cards left in the deck, and returns the payoff.
func (s *Simmer) PlayOne(pos, neg int) (float64, error) {
	payoff, _, err := s.play(pos, neg)
	return payoff, err
}

func deckString(deck []bool, drawn int) string {
	out := make([]byte, len(deck))
	for i, positive := range deck {
		switch {
		case positive && i < drawn:
			out[i] = 'B'
		case i < drawn:
			out[i] = 'R'
		case positive:
			out[i] = 'b'
		default:
			out[i] = 'r'
		}
	}
	return string(out)
}

// Simulate plays iterations games from the state left by the given hand.
func (s *Simmer) Simulate(ctx context.Context, positiveInHand, cardsInHand, iterations int) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	if iterations <= 0 {
		return nil, ErrNoIterations
	}
	n := s.table.DeckSize()
	pos, neg, err := evtable.Remaining(n, positiveInHand, cardsInHand)
	if err != nil {
		return nil, err
	}
	expected, err := s.table.ValueAt(pos, neg)
	if err != nil {
		return nil, err
	}

	res := &Result{
		DeckSize: n,
		Positive: pos,
		Negative: neg,
		Expected: expected,
		Payoffs:  make([]float64, 0, iterations),
	}
	logger.Debug().Int("positive", pos).Int("negative", neg).
		Int("iterations", iterations).Msg("sim-started")

	for i := 0; i < iterations; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				logger.Info().Int("iterations", i).Msg("sim-cancelled")
				return res, err
			}
		}
		payoff, drawn, err := s.play(pos, neg)
		if err != nil {
			return res, err
		}
		res.Stats.Push(payoff)
		res.Drawn.Push(float64(drawn))
		res.Payoffs = append(res.Payoffs, payoff)

		if s.logStream != nil {
			out, err := yaml.Marshal([]LogGame{{
				Iteration: i,
				Deck:      deckString(s.deck, drawn),
				Drawn:     drawn,
				Payoff:    int(payoff),
			}})
			if err != nil {
				return res, err
			}
			if _, err := s.logStream.Write(out); err != nil {
				return res, err
			}
		}
	}
	logger.Debug().Float64("mean", res.Stats.Mean()).Float64("expected", expected).
		Msg("sim-ended")
	return res, nil
}

// Result holds the payoffs of a finished (or cancelled) simulation.
type Result struct {
	DeckSize int
	Positive int
	Negative int
	// Expected is the table's value for the starting state.
	Expected float64
	Stats    stats.Statistic
	Drawn    stats.Statistic
	Payoffs  []float64
}

func (r *Result) ConfidenceInterval(confidence float64) (float64, float64) {
	return stats.Interval(&r.Stats, confidence)
}

// Consistent reports whether the table's value lies inside the confidence
// interval of the simulated mean.
func (r *Result) Consistent(confidence float64) bool {
	lo, hi := r.ConfidenceInterval(confidence)
	return lo-stats.Epsilon <= r.Expected && r.Expected <= hi+stats.Epsilon
}
