package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyMarks are stripped from amounts. Longer marks first.
var currencyMarks = []string{"PLN", "EUR", "USD", "CHF", "GBP", "zł", "€", "$", "£", "%"}

var amountRE = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// ParseAmount parses a locale formatted amount: "1 234,56 zł", "-1.234,5",
// "€1,234.50", "12.5%". Spaces (no-break included) are thousands separators.
// When both ',' and '.' are present, the last one is the decimal separator.
// A single ',' is a decimal separator, repeated ones are thousands separators.
func ParseAmount(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	for _, m := range currencyMarks {
		v = strings.ReplaceAll(v, m, "")
	}
	v = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "'", "", "\u2212", "-").Replace(v)
	negative := strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")")
	if negative {
		v = "-" + strings.Trim(v, "()")
	}

	comma, dot := strings.LastIndex(v, ","), strings.LastIndex(v, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		v = strings.ReplaceAll(v, ",", "")
	case strings.Count(v, ",") == 1:
		v = strings.Replace(v, ",", ".", 1)
	case strings.Count(v, ",") > 1:
		v = strings.ReplaceAll(v, ",", "")
	case strings.Count(v, ".") > 1:
		v = strings.ReplaceAll(v, ".", "")
	}
	if !amountRE.MatchString(v) {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return decimal.NewFromString(v)
}
