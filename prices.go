package snowball

import "github.com/shopspring/decimal"

// PriceSources are the price maps available for one revaluation.
type PriceSources struct {
	// Online prices come from the live feed and may be nil when the feed failed.
	Online Prices `json:"online,omitempty"`
	// Fallback prices are always available.
	Fallback Prices `json:"fallback,omitempty"`
	// Previous holds the previous session prices, for the 24h change.
	Previous Prices `json:"previous,omitempty"`
}

// resolve returns the price of symbol and whether it came from the online map.
func (src PriceSources) resolve(symbol string) (price float64, live, found bool) {
	if p, ok := src.Online.positive(symbol); ok {
		return p, true, true
	}
	if p, ok := src.Fallback.positive(symbol); ok {
		return p, false, true
	}
	return 0, false, false
}

// ResolvePrices revalues open and cash positions. It returns new assets, the
// input slice is not modified.
//
// A position without any price keeps its stored figures, is flagged non live
// and reported as a MissingPrice message. Cash positions, and accounts valued
// at face value, are not reported.
func ResolvePrices(assets []LiveAsset, src PriceSources) ([]LiveAsset, Report) {
	var report Report
	out := make([]LiveAsset, len(assets))
	for i, a := range assets {
		out[i] = a
		if !a.Status.repriced() {
			continue
		}
		res := &out[i]
		res.IsLivePrice, res.Change24h = false, nil
		price, live, found := src.resolve(a.Symbol)
		if !found {
			if a.Status == Open && a.Account.strategy().repriced {
				report.Add(Message{
					Category: MissingPrice,
					Account:  a.Account.String(),
					Ref:      a.Symbol,
					Text:     "no online or fallback price, keeping last known value " + a.CurrentValue.String(),
				})
			}
			continue
		}
		res.IsLivePrice = live
		res.CurrentValue = valueAt(a, price)
		res.Profit = res.CurrentValue.Sub(a.PurchaseValue)
		res.ROI = roi(res.Profit, a.PurchaseValue)
		if live {
			if prev, ok := src.Previous.positive(a.Symbol); ok {
				res.Change24h = PercentOf((price - prev) / prev).ptr()
			}
		}
	}
	return out, report
}

// valueAt returns quantity*price, or price itself when the position has no
// positive quantity (a fund quoted as a total value).
func valueAt(a LiveAsset, price float64) Money {
	p := Money{value: decimal.NewFromFloat(price), cur: a.PurchaseValue.cur}
	if a.Quantity.IsPositive() {
		return p.Mul(a.Quantity)
	}
	return p
}

// roi returns profit/purchase in percent rounded to 2 decimals, 0 for a zero purchase.
func roi(profit, purchase Money) Percent {
	r, ok := profit.Ratio(purchase)
	if !ok {
		return 0
	}
	return PercentOf(r).Round(2)
}
