package snowball

import (
	"slices"

	"github.com/etnz/snowball/date"
)

// Merge unions the months of all series and forward fills each account to
// produce one row per month.
//
// An account contributes zero before its first snapshot. Excluded kinds
// contribute nothing at all, their months included.
func Merge(series []AccountSeries, exclude ...AccountKind) Timeline {
	type account struct {
		kind    AccountKind
		history *date.History[AccountSnapshot]
	}
	var (
		accounts  []account
		histories []*date.History[AccountSnapshot]
	)
	for _, s := range series {
		if slices.Contains(exclude, s.Kind) {
			continue
		}
		h := s.history()
		accounts = append(accounts, account{s.Kind, h})
		histories = append(histories, h)
	}
	slices.SortStableFunc(accounts, func(a, b account) int { return int(a.kind) - int(b.kind) })

	var t Timeline
	for m := range date.Iterate(histories...) {
		row := GlobalHistoryRow{Month: m}
		for _, a := range accounts {
			// stateful left join: the last known state carries forward.
			snap, _ := a.history.ValueAsOf(m)
			row.Accounts = addShare(row.Accounts, AccountShare{
				Kind:       a.kind,
				Investment: snap.NetInvested,
				Profit:     snap.Profit,
			})
		}
		t = append(t, row.totalize())
	}
	return t
}

// addShare adds s to the share of the same kind, or appends it.
func addShare(shares []AccountShare, s AccountShare) []AccountShare {
	for i, a := range shares {
		if a.Kind == s.Kind {
			shares[i].Investment = a.Investment.Add(s.Investment)
			shares[i].Profit = a.Profit.Add(s.Profit)
			return shares
		}
	}
	return append(shares, s)
}

// WithLive returns a new timeline whose last row has the per account
// components of live accounts replaced by their live snapshot. Accounts
// absent from live keep their forward filled figures. t is not modified.
//
// The last row keeps its month. An empty t yields a single row dated with
// the latest live month.
func WithLive(t Timeline, live map[AccountKind]AccountSnapshot) Timeline {
	if len(live) == 0 {
		return slices.Clone(t)
	}
	out := slices.Clone(t)
	var last GlobalHistoryRow
	if len(out) == 0 {
		for _, snap := range live {
			if last.Month.IsZero() || snap.Month.After(last.Month) {
				last.Month = snap.Month
			}
		}
		out = append(out, last)
	} else {
		last = out[len(out)-1]
	}

	accounts := slices.Clone(last.Accounts)
	for _, k := range AccountKinds {
		snap, ok := live[k]
		if !ok {
			continue
		}
		s := AccountShare{Kind: k, Investment: snap.NetInvested, Profit: snap.Profit}
		if i := slices.IndexFunc(accounts, func(a AccountShare) bool { return a.Kind == k }); i >= 0 {
			accounts[i] = s
		} else {
			accounts = append(accounts, s)
		}
	}
	slices.SortStableFunc(accounts, func(a, b AccountShare) int { return int(a.Kind) - int(b.Kind) })
	out[len(out)-1] = GlobalHistoryRow{Month: last.Month, Accounts: accounts}.totalize()
	return out
}
