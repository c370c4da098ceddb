package snowball

import (
	"github.com/etnz/snowball/date"
	"github.com/shopspring/decimal"
)

// TaxShieldRate is the flat capital gains tax rate used to estimate the tax
// avoided on tax sheltered accounts. It is an estimate, not a tax model.
const TaxShieldRate = 0.19

// SummaryStats are the headline figures of an analysis.
type SummaryStats struct {
	AsOf        date.Date `json:"asOf"`
	TotalValue  Money     `json:"totalValue"`
	TotalProfit Money     `json:"totalProfit"`
	Investment  Money     `json:"investment"`
	// CurrentROI is the money weighted return of the last row.
	CurrentROI       Percent `json:"currentRoi"`
	CumulativeTWR    Percent `json:"cumulativeTwr"`
	CAGR             Percent `json:"cagr"`
	TimeWeightedCAGR Percent `json:"timeWeightedCagr"`
	// LTM and YTD are time weighted, the MoneyWeighted variants are the
	// simpler profit over average capital ratios.
	LTM              Percent `json:"ltm"`
	LTMMoneyWeighted Percent `json:"ltmMoneyWeighted"`
	YTD              Percent `json:"ytd"`
	YTDMoneyWeighted Percent `json:"ytdMoneyWeighted"`
	// DailyTrend is the value weighted 24h change of live assets, absent
	// when no asset has a 24h change.
	DailyTrend     *Percent `json:"dailyTrend,omitempty"`
	RealTotalValue Money    `json:"realTotalValue"`
	TaxShield      Money    `json:"taxShield"`
}

// NewSummary computes the summary of an enriched timeline up to asOf.
func NewSummary(t Timeline, assets []LiveAsset, asOf date.Date) SummaryStats {
	last := t.Last()
	return SummaryStats{
		AsOf:             asOf,
		TotalValue:       last.TotalValue,
		TotalProfit:      last.Profit,
		Investment:       last.Investment,
		CurrentROI:       ROI(last),
		CumulativeTWR:    last.CumulativeTWR,
		CAGR:             CAGR(t, asOf),
		TimeWeightedCAGR: TimeWeightedCAGR(t, asOf),
		LTM:              LTM(t),
		LTMMoneyWeighted: LTMMoneyWeighted(t),
		YTD:              YTD(t),
		YTDMoneyWeighted: YTDMoneyWeighted(t),
		DailyTrend:       DailyTrend(assets),
		RealTotalValue:   last.RealTotalValue,
		TaxShield:        TaxShield(last),
	}
}

// DailyTrend returns the current value weighted average of the assets' 24h
// change, nil when none has one.
func DailyTrend(assets []LiveAsset) *Percent {
	var sum, weight float64
	for _, a := range assets {
		if a.Change24h == nil {
			continue
		}
		v := a.CurrentValue.Float()
		sum += v * float64(*a.Change24h)
		weight += v
	}
	if weight == 0 {
		return nil
	}
	return Percent(sum / weight).ptr()
}

// TaxShield estimates the tax avoided on the profit of tax sheltered accounts.
func TaxShield(r GlobalHistoryRow) Money {
	var shield Money
	for _, a := range r.Accounts {
		if !a.Kind.strategy().taxSheltered || !a.Profit.IsPositive() {
			continue
		}
		shield = shield.Add(Money{value: a.Profit.value.Mul(decimal.NewFromFloat(TaxShieldRate)), cur: a.Profit.cur})
	}
	return shield
}
