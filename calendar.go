package snowball

import (
	"time"

	"github.com/etnz/snowball/date"
)

// CalendarYear is one line of the monthly returns heatmap. Blank cells are nil.
type CalendarYear struct {
	Year     int          `json:"year"`
	Months   [12]*Percent `json:"months"`
	Quarters [4]*Percent  `json:"quarters"`
	Total    *Percent     `json:"total"`
}

// NewCalendar computes the monthly return of every month of every year
// spanned by t.
//
// A cell needs the exact rows of the month and of the previous month, there
// is no forward fill: missing rows give a blank cell. Quarters and totals
// chain the cells present in their bucket.
func NewCalendar(t Timeline) []CalendarYear {
	if len(t) == 0 {
		return nil
	}
	rows := make(map[date.Month]GlobalHistoryRow, len(t))
	for _, r := range t {
		rows[r.Month] = r
	}
	first, last := t[0].Month.Year(), t.Last().Month.Year()
	years := make([]CalendarYear, 0, last-first+1)
	for y := first; y <= last; y++ {
		cy := CalendarYear{Year: y}
		for m := range 12 {
			month := date.NewMonth(y, time.January+time.Month(m))
			prev, ok1 := rows[month.Add(-1)]
			cur, ok2 := rows[month]
			if !ok1 || !ok2 {
				continue
			}
			if r, ok := PeriodReturn(prev, cur); ok {
				cy.Months[m] = PercentOf(r).ptr()
			}
		}
		for q := range 4 {
			cy.Quarters[q] = link(cy.Months[3*q : 3*q+3])
		}
		cy.Total = link(cy.Months[:])
		years = append(years, cy)
	}
	return years
}

// link chains the non nil cells, nil when there are none.
func link(cells []*Percent) *Percent {
	factor, n := 1.0, 0
	for _, c := range cells {
		if c == nil {
			continue
		}
		factor *= 1 + c.Ratio()
		n++
	}
	if n == 0 {
		return nil
	}
	return PercentOf(factor - 1).ptr()
}

// ActiveCalendar is the calendar of the actively managed sub-portfolio.
func ActiveCalendar(t Timeline) []CalendarYear { return NewCalendar(t.Active()) }

// Seasonality is the average return of each calendar month, January first.
type Seasonality [12]*Percent

// NewSeasonality averages each month's cells across years, arithmetically.
func NewSeasonality(calendar []CalendarYear) Seasonality {
	var (
		s      Seasonality
		sums   [12]float64
		counts [12]int
	)
	for _, y := range calendar {
		for m, c := range y.Months {
			if c != nil {
				sums[m] += float64(*c)
				counts[m]++
			}
		}
	}
	for m := range s {
		if counts[m] > 0 {
			s[m] = Percent(sums[m] / float64(counts[m])).ptr()
		}
	}
	return s
}
