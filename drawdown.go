package snowball

import "github.com/etnz/snowball/date"

// DrawdownPoint is the decline from the running peak at one month.
type DrawdownPoint struct {
	Month    date.Month `json:"month"`
	Value    Money      `json:"value"`
	Peak     Money      `json:"peak"`
	Drawdown Percent    `json:"drawdown"`
}

// Drawdown computes the drawdown of the total value at each row. It is 0 at
// every new peak and never positive. A non positive peak gives 0.
func Drawdown(t Timeline) []DrawdownPoint {
	res := make([]DrawdownPoint, len(t))
	var peak Money
	for i, r := range t {
		if i == 0 || r.TotalValue.GreaterThan(peak) {
			peak = r.TotalValue
		}
		p := DrawdownPoint{Month: r.Month, Value: r.TotalValue, Peak: peak}
		if peak.IsPositive() {
			if d, ok := r.TotalValue.Sub(peak).Ratio(peak); ok && d < 0 {
				p.Drawdown = PercentOf(d)
			}
		}
		res[i] = p
	}
	return res
}

// MaxDrawdown returns the deepest point, the zero point for an empty series.
func MaxDrawdown(points []DrawdownPoint) DrawdownPoint {
	var worst DrawdownPoint
	for i, p := range points {
		if i == 0 || p.Drawdown < worst.Drawdown {
			worst = p
		}
	}
	return worst
}
