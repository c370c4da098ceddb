package snowball

import (
	"slices"

	"github.com/etnz/snowball/date"
)

// AccountShare is one account's contribution to a timeline row.
type AccountShare struct {
	Kind       AccountKind `json:"kind"`
	Investment Money       `json:"investment"`
	Profit     Money       `json:"profit"`
	Value      Money       `json:"value"`
	// Share is Value over the row's TotalValue, 0 when the total is 0.
	Share Percent `json:"share"`
}

// GlobalHistoryRow is one month of the merged timeline.
type GlobalHistoryRow struct {
	Month          date.Month        `json:"month"`
	Investment     Money             `json:"investment"`
	Profit         Money             `json:"profit"`
	TotalValue     Money             `json:"totalValue"`
	RealTotalValue Money             `json:"realTotalValue"`
	ROI            Percent           `json:"roi"`
	CumulativeTWR  Percent           `json:"cumulativeTwr"`
	Accounts       []AccountShare    `json:"accounts,omitempty"`
	Benchmarks     []BenchmarkReturn `json:"benchmarks,omitempty"`
}

// Account returns the share of kind k in the row.
func (r GlobalHistoryRow) Account(k AccountKind) (AccountShare, bool) {
	for _, a := range r.Accounts {
		if a.Kind == k {
			return a, true
		}
	}
	return AccountShare{Kind: k}, false
}

// Timeline is the merged chronological history, one row per month.
type Timeline []GlobalHistoryRow

// Last returns the last row, the zero row for an empty timeline.
func (t Timeline) Last() GlobalHistoryRow {
	if len(t) == 0 {
		return GlobalHistoryRow{}
	}
	return t[len(t)-1]
}

// IndexOf returns the index of the row for month m, or -1.
func (t Timeline) IndexOf(m date.Month) int {
	i, found := slices.BinarySearchFunc(t, m, func(r GlobalHistoryRow, m date.Month) int { return r.Month.Compare(m) })
	if !found {
		return -1
	}
	return i
}

// Span is the range of days covered by the timeline, zero when empty.
func (t Timeline) Span() date.Range {
	if len(t) == 0 {
		return date.Range{}
	}
	return date.NewRange(t[0].Month.Start(), t.Last().Month.End())
}

// Within returns the rows whose month overlaps r.
func (t Timeline) Within(r date.Range) Timeline {
	var res Timeline
	for _, row := range t {
		if r.Overlaps(row.Month) {
			res = append(res, row)
		}
	}
	return res
}

// Without returns the timeline rebuilt without the given account kinds.
// Derived fields (real value, ROI, TWR, benchmarks) are reset, call Enrich
// to compute them.
func (t Timeline) Without(kinds ...AccountKind) Timeline {
	out := make(Timeline, len(t))
	for i, r := range t {
		row := GlobalHistoryRow{Month: r.Month}
		for _, a := range r.Accounts {
			if slices.Contains(kinds, a.Kind) {
				continue
			}
			row.Accounts = append(row.Accounts, a)
		}
		out[i] = row.totalize()
	}
	return out
}

// Active returns the actively managed sub-portfolio timeline.
func (t Timeline) Active() Timeline {
	var passive []AccountKind
	for _, k := range AccountKinds {
		if !k.Active() {
			passive = append(passive, k)
		}
	}
	return t.Without(passive...)
}

// totalize computes the row totals and the account shares from r.Accounts.
func (r GlobalHistoryRow) totalize() GlobalHistoryRow {
	r.Investment, r.Profit = Money{}, Money{}
	for _, a := range r.Accounts {
		r.Investment = r.Investment.Add(a.Investment)
		r.Profit = r.Profit.Add(a.Profit)
	}
	r.TotalValue = r.Investment.Add(r.Profit)
	accounts := make([]AccountShare, len(r.Accounts))
	for i, a := range r.Accounts {
		a.Value = a.Investment.Add(a.Profit)
		a.Share = 0
		if s, ok := a.Value.Ratio(r.TotalValue); ok {
			a.Share = PercentOf(s)
		}
		accounts[i] = a
	}
	r.Accounts = accounts
	return r
}
