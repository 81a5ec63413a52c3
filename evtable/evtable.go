// Package evtable computes the expected payoff of the stop-anytime red/black
// card game. A deck holds n positive (black) and n negative (red) cards. The
// player draws one card at a time; each positive card drawn adds one to the
// bank and each negative card drawn takes one away. Before any draw the player
// may stop and collect the bank.
//
// The Builder tabulates, for every state (b, r) of b positive and r negative
// cards left in the deck, the expected final payoff under optimal stopping.
package evtable

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidDeckSize = errors.New("deck size must be positive")
	ErrOutOfRangeState = errors.New("state out of range")
	ErrNotFilled       = errors.New("table has not been filled")
)

// Builder owns an (n+1)x(n+1) table of expected values indexed by the
// number of positive and negative cards remaining.
type Builder struct {
	n      int
	stride int
	table  []float64
	filled bool
}

// New allocates an unfilled table for a deck with n cards of each color.
func New(n int) (*Builder, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDeckSize, n)
	}
	return &Builder{
		n:      n,
		stride: n + 1,
		table:  make([]float64, (n+1)*(n+1)),
	}, nil
}

func (b *Builder) DeckSize() int {
	return b.n
}

func (b *Builder) Filled() bool {
	return b.filled
}

func (b *Builder) idx(pos, neg int) int {
	return pos*b.stride + neg
}

// Bank is the payoff of stopping with pos positive and neg negative cards
// left in a deck of n per color: positives drawn minus negatives drawn.
func Bank(n, pos, neg int) float64 {
	return float64((n - pos) - (n - neg))
}

// Fill populates the table. The boundaries are pinned first:
// with no negative cards left the value is 0, and with no positive cards
// left the value is the number of negative cards remaining. Interior cells
// are then filled row by row, so that (pos-1, neg) and (pos, neg-1) are
// always ready before (pos, neg).
// Fill only does work the first time it is called.
func (b *Builder) Fill() {
	if b.filled {
		log.Warn().Int("deck-size", b.n).Msg("table already filled; ignoring")
		return
	}
	for pos := 0; pos <= b.n; pos++ {
		b.table[b.idx(pos, 0)] = 0
	}
	for neg := 0; neg <= b.n; neg++ {
		b.table[b.idx(0, neg)] = float64(neg)
	}
	for pos := 1; pos <= b.n; pos++ {
		for neg := 1; neg <= b.n; neg++ {
			b.table[b.idx(pos, neg)] = b.cellValue(pos, neg)
		}
	}
	b.filled = true
	log.Debug().Int("deck-size", b.n).
		Float64("full-deck-value", b.table[b.idx(b.n, b.n)]).
		Msg("filled expected value table")
}

// continuation is the expected payoff of drawing one more card at an
// interior state and playing optimally afterwards.
func (b *Builder) continuation(pos, neg int) float64 {
	total := float64(pos + neg)
	posProb := float64(pos) / total
	negProb := float64(neg) / total
	return posProb*b.table[b.idx(pos-1, neg)] + negProb*b.table[b.idx(pos, neg-1)]
}

func (b *Builder) cellValue(pos, neg int) float64 {
	cont := b.continuation(pos, neg)
	stop := Bank(b.n, pos, neg)
	// Ties stop.
	if cont > stop {
		return cont
	}
	return stop
}

func (b *Builder) checkState(pos, neg int) error {
	if !b.filled {
		return ErrNotFilled
	}
	if pos < 0 || pos > b.n || neg < 0 || neg > b.n {
		return fmt.Errorf("%w: (%d, %d) with deck size %d", ErrOutOfRangeState, pos, neg, b.n)
	}
	return nil
}

// ValueAt returns the expected value with pos positive and neg negative
// cards remaining in the deck.
func (b *Builder) ValueAt(pos, neg int) (float64, error) {
	if err := b.checkState(pos, neg); err != nil {
		return 0, err
	}
	return b.table[b.idx(pos, neg)], nil
}

// ShouldStop reports whether the optimal player stops at (pos, neg).
// With no positive cards left there is nothing to gain, so it stops. With
// only positive cards left the table assumes the deck is drawn out, so it
// keeps drawing until the deck is empty.
func (b *Builder) ShouldStop(pos, neg int) (bool, error) {
	if err := b.checkState(pos, neg); err != nil {
		return false, err
	}
	switch {
	case pos == 0:
		return true, nil
	case neg == 0:
		return false, nil
	}
	return !(b.continuation(pos, neg) > Bank(b.n, pos, neg)), nil
}

// Remaining converts a hand into the deck state it leaves behind: the hand
// holds positiveInHand positive cards out of cardsInHand drawn so far.
func Remaining(n, positiveInHand, cardsInHand int) (pos, neg int, err error) {
	if cardsInHand < positiveInHand {
		return 0, 0, fmt.Errorf("%w: %d positive cards in a hand of %d",
			ErrOutOfRangeState, positiveInHand, cardsInHand)
	}
	pos = n - positiveInHand
	neg = n - (cardsInHand - positiveInHand)
	if pos < 0 || pos > n || neg < 0 || neg > n {
		return 0, 0, fmt.Errorf("%w: hand (%d positive, %d total) with deck size %d",
			ErrOutOfRangeState, positiveInHand, cardsInHand, n)
	}
	return pos, neg, nil
}

// Query returns the expected value of the game for a player holding
// positiveInHand positive cards out of cardsInHand drawn.
func (b *Builder) Query(positiveInHand, cardsInHand int) (float64, error) {
	if !b.filled {
		return 0, ErrNotFilled
	}
	pos, neg, err := Remaining(b.n, positiveInHand, cardsInHand)
	if err != nil {
		return 0, err
	}
	return b.ValueAt(pos, neg)
}
