package snowball

import (
	"fmt"
	"slices"

	"github.com/etnz/snowball/date"
)

// Inputs are all the data an analysis depends on.
type Inputs struct {
	Currency   string           `json:"currency"`
	Series     []AccountSeries  `json:"series"`
	Assets     []LiveAsset      `json:"assets"`
	Closed     []ClosedPosition `json:"closed,omitempty"`
	CashFlows  []CashFlow       `json:"cashFlows,omitempty"`
	Prices     PriceSources     `json:"prices"`
	CPI        RateTable        `json:"cpi,omitempty"`
	Benchmarks []Benchmark      `json:"benchmarks,omitempty"`
}

// AnalysisOptions tune an analysis.
type AnalysisOptions struct {
	// Exclude removes account kinds from every figure, for every month.
	Exclude []AccountKind `json:"exclude,omitempty"`
	// AsOf is the valuation day, it defaults to the end of the last
	// recorded month, or today without any history. It cannot be before the
	// last recorded month.
	AsOf date.Date `json:"asOf,omitzero"`
}

// Analysis is the complete output of Analyze. It is plain data.
type Analysis struct {
	Currency        string                         `json:"currency"`
	Timeline        Timeline                       `json:"timeline"`
	Assets          []LiveAsset                    `json:"assets"`
	Reconciliations map[AccountKind]Reconciliation `json:"reconciliations"`
	Summary         SummaryStats                   `json:"summary"`
	Calendar        []CalendarYear                 `json:"calendar"`
	Seasonality     Seasonality                    `json:"seasonality"`
	Drawdown        []DrawdownPoint                `json:"drawdown"`
	ActiveDrawdown  []DrawdownPoint                `json:"activeDrawdown"`
	Report          Report                         `json:"report"`
}

// Analyze runs the whole pipeline: prices are resolved, accounts are
// reconciled, series are merged and the last row replaced with live figures,
// then every derived view is computed.
//
// Only structural problems are errors. Every other finding is in the report.
func Analyze(in Inputs, opts AnalysisOptions) (*Analysis, error) {
	if len(in.Series) == 0 && len(in.Assets) == 0 {
		return nil, fmt.Errorf("no account series nor assets: %w", ErrEmptyTimeline)
	}
	var report Report
	report.Merge(CheckSeries(in.Series))

	assets, priceReport := ResolvePrices(included(in.Assets, opts.Exclude, func(a LiveAsset) AccountKind { return a.Account }), in.Prices)
	report.Merge(priceReport)
	report.Merge(CheckAssets(assets))
	closed := included(in.Closed, opts.Exclude, func(c ClosedPosition) AccountKind { return c.Account })
	flows := included(in.CashFlows, opts.Exclude, func(f CashFlow) AccountKind { return f.Account })

	merged := Merge(in.Series, opts.Exclude...)
	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = date.Today()
		if len(merged) > 0 {
			asOf = merged.Last().Month.End()
		}
	}
	if len(merged) > 0 && date.MonthOf(asOf).Before(merged.Last().Month) {
		return nil, fmt.Errorf("%v is before %v: %w", asOf, merged.Last().Month, ErrAsOfBeforeHistory)
	}

	live := LiveSnapshots(assets, closed, flows, date.MonthOf(asOf))
	report.Merge(CheckHistory(in.Series, live, flows))

	t := WithLive(merged, live)
	if len(t) == 0 {
		return nil, ErrEmptyTimeline
	}
	t = Enrich(t, in.CPI, in.Benchmarks)
	calendar := ActiveCalendar(t)

	return &Analysis{
		Currency:        in.Currency,
		Timeline:        t,
		Assets:          assets,
		Reconciliations: Reconcile(assets, closed, flows),
		Summary:         NewSummary(t, assets, asOf),
		Calendar:        calendar,
		Seasonality:     NewSeasonality(calendar),
		Drawdown:        Drawdown(t),
		ActiveDrawdown:  Drawdown(t.Active()),
		Report:          report,
	}, nil
}

// included filters out items of excluded account kinds.
func included[T any](items []T, exclude []AccountKind, kind func(T) AccountKind) []T {
	if len(exclude) == 0 {
		return items
	}
	var res []T
	for _, it := range items {
		if !slices.Contains(exclude, kind(it)) {
			res = append(res, it)
		}
	}
	return res
}
