package snowball

import (
	"fmt"

	"github.com/etnz/snowball/date"
)

const (
	// MathIntegrityTolerance is the largest accepted gap, in currency units,
	// in the identity purchaseValue + profit = currentValue.
	MathIntegrityTolerance = 1.00
	// HistoryReconcileTolerance is the largest accepted gap, in currency units,
	// between the live net invested capital and the one recomputed from history.
	HistoryReconcileTolerance = 5.00
)

// Reconciliation details the net invested capital of one account.
//
//	NetInvested = OpenCost - RealizedProfit - ActiveFlows
//
// Realized profit is summed as is, losses included. Only internal flows
// (dividends, interests) with an Active status are subtracted.
type Reconciliation struct {
	Account        AccountKind `json:"account"`
	OpenCost       Money       `json:"openCost"`
	RealizedProfit Money       `json:"realizedProfit"`
	ActiveFlows    Money       `json:"activeFlows"`
	NetInvested    Money       `json:"netInvested"`
	// CurrentValue is the value of open and cash positions.
	CurrentValue Money `json:"currentValue"`
	// Positions is the number of open and cash positions.
	Positions int `json:"positions"`
}

// Reconcile computes the externally funded capital of every account found
// in assets, closed or flows.
func Reconcile(assets []LiveAsset, closed []ClosedPosition, flows []CashFlow) map[AccountKind]Reconciliation {
	res := make(map[AccountKind]Reconciliation)
	for _, a := range assets {
		r := res[a.Account]
		r.Account = a.Account
		if a.Status.repriced() {
			r.OpenCost = r.OpenCost.Add(a.PurchaseValue)
			r.CurrentValue = r.CurrentValue.Add(a.CurrentValue)
			r.Positions++
		}
		res[a.Account] = r
	}
	for _, c := range closed {
		r := res[c.Account]
		r.Account = c.Account
		r.RealizedProfit = r.RealizedProfit.Add(c.RealizedProfit)
		res[c.Account] = r
	}
	for _, f := range flows {
		if f.Kind.external() || f.Status != Active {
			continue
		}
		r := res[f.Account]
		r.Account = f.Account
		r.ActiveFlows = r.ActiveFlows.Add(f.Amount)
		res[f.Account] = r
	}
	for k, r := range res {
		r.NetInvested = r.OpenCost.Sub(r.RealizedProfit).Sub(r.ActiveFlows)
		res[k] = r
	}
	return res
}

// LiveSnapshots returns the live snapshot of every account holding at least
// one open or cash position: NetInvested from Reconcile and
// Profit = CurrentValue - NetInvested.
func LiveSnapshots(assets []LiveAsset, closed []ClosedPosition, flows []CashFlow, asOf date.Month) map[AccountKind]AccountSnapshot {
	live := make(map[AccountKind]AccountSnapshot)
	for k, r := range Reconcile(assets, closed, flows) {
		if r.Positions == 0 {
			continue
		}
		live[k] = AccountSnapshot{
			Month:       asOf,
			NetInvested: r.NetInvested,
			Profit:      r.CurrentValue.Sub(r.NetInvested),
		}
	}
	return live
}

// CheckAssets verifies purchaseValue + profit = currentValue on open and
// cash positions.
func CheckAssets(assets []LiveAsset) Report {
	var report Report
	for _, a := range assets {
		if !a.Status.repriced() {
			continue
		}
		sum := a.PurchaseValue.Add(a.Profit)
		if sum.Within(a.CurrentValue, MathIntegrityTolerance) {
			continue
		}
		report.Add(Message{
			Category:    Consistency,
			Account:     a.Account.String(),
			Ref:         a.Symbol,
			Text:        fmt.Sprintf("purchase value %v + profit %v does not match current value %v", a.PurchaseValue, a.Profit, a.CurrentValue),
			Discrepancy: sum.Sub(a.CurrentValue),
		})
	}
	return report
}

// CheckHistory recomputes each live account's net invested capital from the
// last recorded month before the live one plus the external deposits and
// withdrawals made after it, and reports mismatches with the live figure.
// Series of the same kind are summed, as Merge does.
func CheckHistory(series []AccountSeries, live map[AccountKind]AccountSnapshot, flows []CashFlow) Report {
	var report Report
	for _, k := range AccountKinds {
		snap, ok := live[k]
		if !ok {
			continue
		}
		var (
			expected Money
			prior    date.Month
			found    bool
		)
		for _, s := range series {
			if s.Kind != k {
				continue
			}
			p, ok := s.history().ValueAsOf(snap.Month.Add(-1))
			if !ok {
				continue
			}
			if !found {
				expected = p.NetInvested
			} else {
				expected = expected.Add(p.NetInvested)
			}
			if !found || p.Month.After(prior) {
				prior = p.Month
			}
			found = true
		}
		if !found {
			continue
		}
		for _, f := range flows {
			if f.Account != k || !date.MonthOf(f.Date).After(prior) {
				continue
			}
			switch f.Kind {
			case Deposit:
				expected = expected.Add(f.Amount)
			case Withdrawal:
				expected = expected.Sub(f.Amount.Abs())
			}
		}
		if snap.NetInvested.Within(expected, HistoryReconcileTolerance) {
			continue
		}
		report.Add(Message{
			Category:    Consistency,
			Account:     k.String(),
			Ref:         prior.String(),
			Text:        fmt.Sprintf("live net invested %v differs from recorded history %v", snap.NetInvested, expected),
			Discrepancy: snap.NetInvested.Sub(expected),
		})
	}
	return report
}

// CheckSeries reports duplicate months and negative net invested capital.
func CheckSeries(series []AccountSeries) Report {
	var report Report
	for _, s := range series {
		seen := make(map[date.Month]bool)
		for _, snap := range s.Snapshots {
			if seen[snap.Month] {
				report.Addf(Consistency, s.Kind.String(), snap.Month.String(), "duplicate month, the last record wins")
			}
			seen[snap.Month] = true
			if snap.NetInvested.IsNegative() {
				report.Add(Message{
					Category:    Consistency,
					Account:     s.Kind.String(),
					Ref:         snap.Month.String(),
					Text:        "negative net invested capital",
					Discrepancy: snap.NetInvested,
				})
			}
		}
	}
	return report
}
