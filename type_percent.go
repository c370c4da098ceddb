package snowball

import (
	"fmt"
	"math"
)

// Percent is a ratio expressed in percent: 12.5 means 12.5%.
type Percent float64

// PercentOf returns the ratio r (0.125) as a Percent (12.5).
func PercentOf(r float64) Percent { return Percent(100 * r) }

// Ratio returns the percent as a plain ratio (12.5% is 0.125).
func (p Percent) Ratio() float64 { return float64(p) / 100 }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

// Round returns p rounded to 'places' decimals.
func (p Percent) Round(places int) Percent {
	f := math.Pow10(places)
	return Percent(math.Round(float64(p)*f) / f)
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}

// ptr returns a pointer to a copy of p, for optional fields.
func (p Percent) ptr() *Percent { return &p }
