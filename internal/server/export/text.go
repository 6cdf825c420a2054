package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/worklog/internal/timex"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

// Latin1 re-encodes s as ISO-8859-1 bytes. Runes outside the charset become '?'.
func Latin1(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return string(out)
}

// FormatTimestamp renders t as dd/mm/yyyy HH:MM.
func FormatTimestamp(t time.Time) string {
	return t.Format(timex.DisplayLayout)
}

// FormatCurrency renders d as "<symbol> #,##0.00", rounding half away from zero.
func FormatCurrency(symbol string, d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if symbol != "" {
		b.WriteString(symbol)
		b.WriteByte(' ')
	}
	if d.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatHours renders hours with one decimal, e.g. "2.5 h".
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.1f h", hours)
}
