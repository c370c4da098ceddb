package snowball

import "github.com/etnz/snowball/date"

// PLN is a helper for test to create zloty money from const
func PLN(v float64) Money { return M(v, "PLN") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// snap is a helper to create a snapshot from a month string.
func snap(month string, invested, profit float64) AccountSnapshot {
	return AccountSnapshot{Month: date.MustParseMonth(month), NetInvested: PLN(invested), Profit: PLN(profit)}
}

// rows is a helper to create a single account timeline from (investment, profit)
// pairs, one per month starting January 2024.
func rows(pairs ...[2]float64) Timeline {
	s := AccountSeries{Kind: Brokerage}
	m := date.NewMonth(2024, 1)
	for i, p := range pairs {
		s.Snapshots = append(s.Snapshots, AccountSnapshot{Month: m.Add(i), NetInvested: PLN(p[0]), Profit: PLN(p[1])})
	}
	return Merge([]AccountSeries{s})
}
