package evtable

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
)

// WriteTable dumps the whole table, one row per count of positive cards
// remaining, each row listing values for 0..n negative cards remaining.
func (b *Builder) WriteTable(w io.Writer) error {
	if !b.filled {
		return ErrNotFilled
	}
	var sb strings.Builder
	for pos := 0; pos <= b.n; pos++ {
		row := b.table[b.idx(pos, 0) : b.idx(pos, b.n)+1]
		sb.WriteString(strings.Join(lo.Map(row, func(v float64, _ int) string {
			return fmt.Sprintf("%.2f", v)
		}), " "))
		sb.WriteString(" \n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
