package snowball

import (
	"math"

	"github.com/etnz/snowball/date"
	"github.com/shopspring/decimal"
)

// DefaultMaxMonths bounds projections, 30 years.
const DefaultMaxMonths = 360

// ProjectionOptions selects when a projection stops. Zero fields are unset.
type ProjectionOptions struct {
	// TargetValue stops the projection once reached.
	TargetValue Money
	// TargetMonth stops the projection at that month.
	TargetMonth date.Month
	// MaxMonths bounds the number of months, DefaultMaxMonths when 0.
	MaxMonths int
}

// ProjectionPoint is one projected month.
type ProjectionPoint struct {
	Month date.Month `json:"month"`
	Value Money      `json:"value"`
}

// Projection is a compounded forward path.
type Projection struct {
	MonthlyRate float64           `json:"monthlyRate"`
	Points      []ProjectionPoint `json:"points"`
	// Reached is true when a target was reached within the bound.
	Reached bool `json:"reached"`
}

// End returns the last projected point.
func (p Projection) End() ProjectionPoint {
	if len(p.Points) == 0 {
		return ProjectionPoint{}
	}
	return p.Points[len(p.Points)-1]
}

// AnnualToMonthly returns the monthly rate compounding to the annual one.
func AnnualToMonthly(annual float64) float64 { return math.Pow(1+annual, 1.0/12) - 1 }

// TrailingMonthlyRate returns the geometric mean monthly time weighted
// return over the last 'months' transitions of t. A total loss gives -1.
func TrailingMonthlyRate(t Timeline, months int) float64 {
	last := len(t) - 1
	from := max(1, last-months+1)
	n := last - from + 1
	if n <= 0 {
		return 0
	}
	factor := 1 + ChainTWR(t, from, last)
	if factor <= 0 {
		return -1
	}
	return math.Pow(factor, 1/float64(n)) - 1
}

// Project compounds start every month at rate from the month after 'from'
// until a target of opts is reached or the bound is hit.
func Project(start Money, from date.Month, rate float64, opts ProjectionOptions) Projection {
	maxMonths := opts.MaxMonths
	if maxMonths <= 0 {
		maxMonths = DefaultMaxMonths
	}
	p := Projection{MonthlyRate: rate, Points: []ProjectionPoint{{Month: from, Value: start}}}
	factor := decimal.NewFromFloat(1 + rate)
	value, month := start, from
	for range maxMonths {
		if p.reached(value, month, opts) {
			break
		}
		month = month.Add(1)
		value = Money{value: value.value.Mul(factor), cur: value.cur}
		p.Points = append(p.Points, ProjectionPoint{Month: month, Value: value})
	}
	p.Reached = p.reached(value, month, opts)
	return p
}

func (p Projection) reached(value Money, month date.Month, opts ProjectionOptions) bool {
	if !opts.TargetValue.IsZero() && value.GreaterThanOrEqual(opts.TargetValue) {
		return true
	}
	if !opts.TargetMonth.IsZero() && !month.Before(opts.TargetMonth) {
		return true
	}
	return false
}
