package snowball

import (
	"math"

	"github.com/etnz/snowball/date"
)

// PeriodReturn returns the time weighted return between prev and cur, as a
// ratio. The net flow of the period is assumed to happen at its start:
//
//	flow = cur.Investment - prev.Investment
//	r    = (cur.TotalValue - prev.TotalValue - flow) / (prev.TotalValue + flow)
//
// ok is false when the denominator is zero, such a period is a no-op in a chain.
func PeriodReturn(prev, cur GlobalHistoryRow) (r float64, ok bool) {
	flow := cur.Investment.Sub(prev.Investment)
	gain := cur.TotalValue.Sub(prev.TotalValue).Sub(flow)
	return gain.Ratio(prev.TotalValue.Add(flow))
}

// ChainTWR chains the period returns of rows from..to (both included, each
// row i being the transition from i-1 to i) and returns Π(1+r)-1 as a ratio.
// from is clamped to 1 and to to the last row.
func ChainTWR(t Timeline, from, to int) float64 {
	from = max(from, 1)
	to = min(to, len(t)-1)
	factor := 1.0
	for i := from; i <= to; i++ {
		if r, ok := PeriodReturn(t[i-1], t[i]); ok {
			factor *= 1 + r
		}
	}
	return factor - 1
}

// CumulativeTWR returns the cumulative time weighted return at every row, as
// ratios. The first row is seeded with its money weighted return.
func CumulativeTWR(t Timeline) []float64 {
	res := make([]float64, len(t))
	if len(t) == 0 {
		return res
	}
	res[0] = roiRatio(t[0])
	for i := 1; i < len(t); i++ {
		res[i] = res[i-1]
		if r, ok := PeriodReturn(t[i-1], t[i]); ok {
			res[i] = (1+res[i-1])*(1+r) - 1
		}
	}
	return res
}

// ROI returns the money weighted return profit/investment of a row, 0 when
// nothing is invested.
func ROI(r GlobalHistoryRow) Percent { return PercentOf(roiRatio(r)) }

func roiRatio(r GlobalHistoryRow) float64 {
	if !r.Investment.IsPositive() {
		return 0
	}
	ratio, _ := r.Profit.Ratio(r.Investment)
	return ratio
}

// Annualize returns the yearly rate equivalent to total (a ratio) earned over
// years. Histories no longer than half a year, and total losses, are not
// annualized: total is returned as is.
func Annualize(total, years float64) float64 {
	if years <= 0.5 || 1+total <= 0 {
		return total
	}
	return math.Pow(1+total, 1/years) - 1
}

// span returns the years elapsed from the end of the first month to target,
// which defaults to the end of the last month.
func span(t Timeline, target date.Date) float64 {
	if target.IsZero() {
		target = t.Last().Month.End()
	}
	return date.YearsBetween(t[0].Month.End(), target)
}

// CAGR annualizes the current money weighted return up to target.
func CAGR(t Timeline, target date.Date) Percent {
	if len(t) == 0 {
		return 0
	}
	return PercentOf(Annualize(roiRatio(t.Last()), span(t, target)))
}

// TimeWeightedCAGR annualizes the cumulative time weighted return up to target.
func TimeWeightedCAGR(t Timeline, target date.Date) Percent {
	if len(t) == 0 {
		return 0
	}
	cum := CumulativeTWR(t)
	return PercentOf(Annualize(cum[len(cum)-1], span(t, target)))
}

// LTM chains the last 12 monthly transitions, or fewer for a shorter history.
func LTM(t Timeline) Percent {
	last := len(t) - 1
	if last < 1 {
		return 0
	}
	return PercentOf(ChainTWR(t, max(1, last-11), last))
}

// YTD chains the transitions from the first row of the last row's year,
// the December to January transition included.
func YTD(t Timeline) Percent {
	last := len(t) - 1
	if last < 1 {
		return 0
	}
	first := yearStart(t)
	return PercentOf(ChainTWR(t, max(1, first), last))
}

// yearStart returns the index of the first row of the last row's year.
func yearStart(t Timeline) int {
	year := t.Last().Month.Year()
	i := len(t) - 1
	for i > 0 && t[i-1].Month.Year() == year {
		i--
	}
	return i
}

// LTMMoneyWeighted returns the profit made since the row one year before the
// last one (the latest row not after that month, or the first row), over the
// average of both ends' invested capital.
func LTMMoneyWeighted(t Timeline) Percent {
	if len(t) == 0 {
		return 0
	}
	target := t.Last().Month.Add(-12)
	base := t[0]
	for _, r := range t {
		if r.Month.After(target) {
			break
		}
		base = r
	}
	return moneyWeighted(base, t.Last())
}

// YTDMoneyWeighted is LTMMoneyWeighted from the last row of the previous
// year, or the first row of the year.
func YTDMoneyWeighted(t Timeline) Percent {
	if len(t) == 0 {
		return 0
	}
	i := yearStart(t)
	base := t[i]
	if i > 0 {
		base = t[i-1]
	}
	return moneyWeighted(base, t.Last())
}

func moneyWeighted(base, last GlobalHistoryRow) Percent {
	avg := base.Investment.Add(last.Investment).Float() / 2
	if avg == 0 {
		return 0
	}
	return PercentOf(last.Profit.Sub(base.Profit).Float() / avg)
}
