package evtable

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(t *testing.T, n int) *Builder {
	b, err := New(n)
	require.NoError(t, err)
	b.Fill()
	return b
}

func TestNewInvalidDeckSize(t *testing.T) {
	is := is.New(t)
	for _, n := range []int{0, -1, -26} {
		b, err := New(n)
		is.True(errors.Is(err, ErrInvalidDeckSize))
		is.True(b == nil)
	}
}

func TestUnfilledTable(t *testing.T) {
	is := is.New(t)
	b, err := New(3)
	is.NoErr(err)
	is.True(!b.Filled())
	_, err = b.ValueAt(0, 0)
	is.True(errors.Is(err, ErrNotFilled))
	_, err = b.Query(0, 0)
	is.True(errors.Is(err, ErrNotFilled))
	_, err = b.ShouldStop(1, 1)
	is.True(errors.Is(err, ErrNotFilled))
	is.True(errors.Is(b.WriteTable(&bytes.Buffer{}), ErrNotFilled))
}

func TestTinyDeck(t *testing.T) {
	b := filled(t, 2)
	type testcase struct {
		pos, neg int
		ev       float64
	}
	for _, tc := range []testcase{
		{0, 0, 0},
		{0, 1, 1},
		{0, 2, 2},
		{1, 0, 0},
		{2, 0, 0},
		{1, 1, 0.5},
		{1, 2, 1},
		{2, 1, 1.0 / 3},
		{2, 2, 2.0 / 3},
	} {
		v, err := b.ValueAt(tc.pos, tc.neg)
		require.NoError(t, err)
		assert.InDelta(t, tc.ev, v, 1e-12, "state (%d, %d)", tc.pos, tc.neg)
	}
	// Worked by hand: 0.5*1 + 0.5*0 beats stopping at 0.
	v, _ := b.ValueAt(1, 1)
	assert.Equal(t, 0.5, v)
}

func TestFullDeck(t *testing.T) {
	b := filled(t, 26)
	full, err := b.ValueAt(26, 26)
	require.NoError(t, err)
	assert.InDelta(t, 2.6244755489939244, full, 1e-9)

	q, err := b.Query(0, 0)
	require.NoError(t, err)
	assert.Equal(t, full, q)
	assert.Equal(t, "2.62", fmt.Sprintf("%.2f", q))
}

func TestBoundaries(t *testing.T) {
	is := is.New(t)
	for _, n := range []int{1, 2, 5, 26, 40} {
		b := filled(t, n)
		for i := 0; i <= n; i++ {
			v, err := b.ValueAt(0, i)
			is.NoErr(err)
			is.Equal(v, float64(i))
			v, err = b.ValueAt(i, 0)
			is.NoErr(err)
			is.Equal(v, 0.0)
		}
	}
}

func TestMonotoneAndAboveBank(t *testing.T) {
	for _, n := range []int{1, 3, 10, 26} {
		b := filled(t, n)
		for pos := 0; pos <= n; pos++ {
			prev := -1.0
			for neg := 0; neg <= n; neg++ {
				v, err := b.ValueAt(pos, neg)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, v, prev, "n=%d (%d, %d)", n, pos, neg)
				assert.GreaterOrEqual(t, v, Bank(n, pos, neg), "n=%d (%d, %d)", n, pos, neg)
				prev = v
			}
		}
	}
}

func TestFillIsIdempotent(t *testing.T) {
	is := is.New(t)
	b := filled(t, 8)
	var first, second bytes.Buffer
	is.NoErr(b.WriteTable(&first))
	b.Fill()
	is.NoErr(b.WriteTable(&second))
	is.Equal(first.String(), second.String())

	v1, _ := b.ValueAt(8, 8)
	v2, _ := b.ValueAt(8, 8)
	is.Equal(v1, v2)
}

func TestQuery(t *testing.T) {
	b := filled(t, 26)
	type testcase struct {
		black, hand int
		pos, neg    int
	}
	for _, tc := range []testcase{
		{0, 0, 26, 26},
		{3, 5, 23, 24},
		{26, 52, 0, 0},
		{0, 26, 26, 0},
		{26, 26, 0, 26},
	} {
		q, err := b.Query(tc.black, tc.hand)
		require.NoError(t, err)
		v, err := b.ValueAt(tc.pos, tc.neg)
		require.NoError(t, err)
		assert.Equal(t, v, q)
	}
}

func TestOutOfRange(t *testing.T) {
	is := is.New(t)
	b := filled(t, 26)
	for _, hand := range [][2]int{
		{5, 4},   // more positives than cards
		{27, 27}, // too many positives
		{-1, 0},
		{0, 27},  // more than 26 negatives
		{10, 53}, // bigger than the deck
	} {
		_, err := b.Query(hand[0], hand[1])
		is.True(errors.Is(err, ErrOutOfRangeState))
	}
	for _, st := range [][2]int{{-1, 0}, {0, -1}, {27, 0}, {0, 27}} {
		_, err := b.ValueAt(st[0], st[1])
		is.True(errors.Is(err, ErrOutOfRangeState))
		_, err = b.ShouldStop(st[0], st[1])
		is.True(errors.Is(err, ErrOutOfRangeState))
	}
}

func TestShouldStop(t *testing.T) {
	is := is.New(t)
	b := filled(t, 2)
	type testcase struct {
		pos, neg int
		stop     bool
	}
	for _, tc := range []testcase{
		{0, 0, true},
		{0, 2, true},
		{2, 0, false},
		{1, 1, false},
		// cont = 1/3*2 + 2/3*0.5 = 1, bank = 1: ties stop
		{1, 2, true},
		{2, 2, false},
	} {
		stop, err := b.ShouldStop(tc.pos, tc.neg)
		is.NoErr(err)
		is.Equal(stop, tc.stop)
	}

	// Wherever the optimal player stops, the table holds the bank.
	b = filled(t, 26)
	for pos := 0; pos <= 26; pos++ {
		for neg := 1; neg <= 26; neg++ {
			stop, err := b.ShouldStop(pos, neg)
			is.NoErr(err)
			if stop {
				v, _ := b.ValueAt(pos, neg)
				is.Equal(v, Bank(26, pos, neg))
			}
		}
	}
}

func TestWriteTable(t *testing.T) {
	is := is.New(t)
	b := filled(t, 2)
	var buf bytes.Buffer
	is.NoErr(b.WriteTable(&buf))
	is.Equal(buf.String(), "0.00 1.00 2.00 \n0.00 0.50 1.00 \n0.00 0.33 0.67 \n")
}

func BenchmarkFill(b *testing.B) {
	for i := 0; i < b.N; i++ {
		t, _ := New(26)
		t.Fill()
	}
}
