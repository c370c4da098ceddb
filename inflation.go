package snowball

import (
	"github.com/etnz/snowball/date"
	"github.com/shopspring/decimal"
)

// RateTable maps a month to a rate for that month, as a ratio (0.003 for 0.3%).
type RateTable map[date.Month]float64

// RealValues deflates the timeline total values with monthly inflation rates.
//
// The real value is chain linked: each month only its nominal change plus the
// already deflated base are deflated by that month's rate.
//
//	real[0] = total[0]
//	real[i] = (real[i-1] + total[i] - total[i-1]) / (1 + rate[i])
//
// Missing rates are 0.
func RealValues(t Timeline, cpi RateTable) []Money {
	res := make([]Money, len(t))
	for i, r := range t {
		if i == 0 {
			res[i] = r.TotalValue
			continue
		}
		v := res[i-1].Add(r.TotalValue.Sub(t[i-1].TotalValue))
		if rate := cpi[r.Month]; rate != 0 && rate > -1 {
			v = Money{value: v.value.Div(decimal.NewFromFloat(1 + rate)), cur: v.cur}
		}
		res[i] = v
	}
	return res
}
