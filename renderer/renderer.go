// Package renderer formats analysis outputs as GitHub flavoured markdown.
package renderer

import (
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/etnz/snowball"
)

// Summary renders the headline figures.
func Summary(s snowball.SummaryStats) string {
	d := newDocument()
	d.Printf("# Portfolio Summary on %s\n\n", s.AsOf)
	d.Table("lr", "Metric", "Value")
	d.Row("Total Value", s.TotalValue.String())
	d.Row("Net Invested", s.Investment.String())
	d.Row("Total Profit", s.TotalProfit.SignedString())
	d.Row("Real Value", s.RealTotalValue.String())
	d.Printf("\n")

	d.Printf("## Returns\n\n")
	d.Table("lrr", "Measure", "Time Weighted", "Money Weighted")
	d.Row("Since Inception", s.CumulativeTWR.SignedString(), s.CurrentROI.SignedString())
	d.Row("Annualized", s.TimeWeightedCAGR.SignedString(), s.CAGR.SignedString())
	d.Row("Last 12 Months", s.LTM.SignedString(), s.LTMMoneyWeighted.SignedString())
	d.Row("Year to Date", s.YTD.SignedString(), s.YTDMoneyWeighted.SignedString())
	d.Printf("\n")

	ConditionalBlock(d, func(w io.Writer) bool {
		fmt.Fprintf(w, "**24h trend:** %s\n\n", signed(s.DailyTrend))
		return s.DailyTrend != nil
	})
	ConditionalBlock(d, func(w io.Writer) bool {
		fmt.Fprintf(w, "**Estimated tax shield:** %s\n\n", s.TaxShield)
		return s.TaxShield.IsPositive()
	})
	return d.String()
}

// Timeline renders one row per month, with a column per benchmark.
func Timeline(t snowball.Timeline) string {
	d := newDocument()
	d.Printf("# Timeline\n\n")
	if len(t) == 0 {
		d.Printf("No history.\n")
		return d.String()
	}
	var names []string
	for _, r := range t {
		for _, b := range r.Benchmarks {
			if !slices.Contains(names, b.Name) {
				names = append(names, b.Name)
			}
		}
	}
	header := append([]string{"Month", "Invested", "Profit", "Value", "Real Value", "ROI", "TWR"}, names...)
	d.Table("l", header...)
	for _, r := range t {
		cells := []string{
			r.Month.String(),
			r.Investment.String(),
			r.Profit.SignedString(),
			r.TotalValue.String(),
			r.RealTotalValue.String(),
			r.ROI.SignedString(),
			r.CumulativeTWR.SignedString(),
		}
		for _, name := range names {
			cell := none
			for _, b := range r.Benchmarks {
				if b.Name == name {
					cell = signed(b.Return)
				}
			}
			cells = append(cells, cell)
		}
		d.Row(cells...)
	}
	d.Printf("\n")
	return d.String()
}

// Allocation renders the account breakdown of a row.
func Allocation(r snowball.GlobalHistoryRow) string {
	d := newDocument()
	d.Printf("## Allocation on %s\n\n", r.Month)
	d.Table("lrrrr", "Account", "Invested", "Profit", "Value", "Share")
	for _, a := range r.Accounts {
		d.Row(a.Kind.String(), a.Investment.String(), a.Profit.SignedString(), a.Value.String(), a.Share.String())
	}
	d.Printf("\n")
	return d.String()
}

// Calendar renders the monthly returns heatmap, one line per year.
func Calendar(years []snowball.CalendarYear) string {
	d := newDocument()
	d.Printf("# Monthly Returns\n\n")
	header := []string{"Year"}
	for m := time.January; m <= time.December; m++ {
		header = append(header, m.String()[:3])
	}
	header = append(header, "Q1", "Q2", "Q3", "Q4", "Total")
	d.Table("l", header...)
	for _, y := range years {
		cells := []string{fmt.Sprint(y.Year)}
		for _, c := range y.Months {
			cells = append(cells, percent(c))
		}
		for _, c := range y.Quarters {
			cells = append(cells, percent(c))
		}
		cells = append(cells, percent(y.Total))
		d.Row(cells...)
	}
	d.Printf("\n")
	return d.String()
}

// Seasonality renders the average return of each calendar month.
func Seasonality(s snowball.Seasonality) string {
	d := newDocument()
	d.Printf("# Seasonality\n\n")
	d.Table("lr", "Month", "Average")
	for i, c := range s {
		d.Row((time.January + time.Month(i)).String(), percent(c))
	}
	d.Printf("\n")
	return d.String()
}

// Drawdown renders the drawdown series and its maximum.
func Drawdown(title string, points []snowball.DrawdownPoint) string {
	d := newDocument()
	d.Printf("# %s\n\n", title)
	if len(points) == 0 {
		d.Printf("No history.\n")
		return d.String()
	}
	worst := snowball.MaxDrawdown(points)
	d.Printf("**Maximum drawdown:** %s in %s\n\n", worst.Drawdown, worst.Month)
	d.Table("lrrr", "Month", "Value", "Peak", "Drawdown")
	for _, p := range points {
		d.Row(p.Month.String(), p.Value.String(), p.Peak.String(), p.Drawdown.String())
	}
	d.Printf("\n")
	return d.String()
}

// Assets renders live positions, then the per account reconciliation.
func Assets(assets []snowball.LiveAsset, recs map[snowball.AccountKind]snowball.Reconciliation) string {
	d := newDocument()
	d.Printf("# Assets\n\n")
	d.Table("llrrrrrr", "Symbol", "Account", "Quantity", "Cost", "Value", "Profit", "ROI", "24h")
	for _, a := range assets {
		symbol := escape(a.Symbol)
		if !a.IsLivePrice && a.Status == snowball.Open {
			symbol += " *"
		}
		d.Row(symbol, a.Account.String(), a.Quantity.String(), a.PurchaseValue.String(),
			a.CurrentValue.String(), a.Profit.SignedString(), a.ROI.SignedString(), signed(a.Change24h))
	}
	d.Printf("\n")
	ConditionalBlock(d, func(w io.Writer) bool {
		fmt.Fprintf(w, "\\* not repriced from a live quote\n\n")
		return slices.ContainsFunc(assets, func(a snowball.LiveAsset) bool { return !a.IsLivePrice && a.Status == snowball.Open })
	})

	ConditionalBlock(d, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Net Invested Capital\n\n")
		fmt.Fprintf(w, "| Account | Open Cost | Realized | Income | Net Invested | Value |\n")
		fmt.Fprintf(w, "|:---|---:|---:|---:|---:|---:|\n")
		for _, k := range snowball.AccountKinds {
			r, ok := recs[k]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n", k, r.OpenCost, r.RealizedProfit.SignedString(),
				r.ActiveFlows.SignedString(), r.NetInvested, r.CurrentValue)
		}
		fmt.Fprintf(w, "\n")
		return len(recs) > 0
	})
	return d.String()
}

// Report renders the findings grouped by category.
func Report(r snowball.Report) string {
	d := newDocument()
	d.Printf("# Data Report\n\n")
	if r.Empty() {
		d.Printf("No issue found.\n")
		return d.String()
	}
	for _, c := range []snowball.Category{snowball.Structural, snowball.Value, snowball.Consistency, snowball.MissingPrice} {
		ConditionalBlock(d, func(w io.Writer) bool {
			fmt.Fprintf(w, "## %s (%d)\n\n", c, r.Count(c))
			fmt.Fprintf(w, "| Account | Where | Message | Discrepancy |\n")
			fmt.Fprintf(w, "|:---|:---|:---|---:|\n")
			for _, m := range r.Messages {
				if m.Category != c {
					continue
				}
				account, ref, gap := m.Account, m.Ref, none
				if account == "" {
					account = none
				}
				if ref == "" {
					ref = none
				}
				if !m.Discrepancy.IsZero() {
					gap = m.Discrepancy.SignedString()
				}
				fmt.Fprintf(w, "| %s | %s | %s | %s |\n", account, escape(ref), escape(m.Text), gap)
			}
			fmt.Fprintf(w, "\n")
			return r.Count(c) > 0
		})
	}
	return d.String()
}

// Projection renders a compounded forward path, one line per year and the
// final month.
func Projection(p snowball.Projection, opts snowball.ProjectionOptions) string {
	d := newDocument()
	d.Printf("# Projection\n\n")
	d.Printf("**Monthly rate:** %s (%s a year)\n\n",
		snowball.PercentOf(p.MonthlyRate).SignedString(), snowball.PercentOf(annual(p.MonthlyRate)).SignedString())
	switch {
	case !opts.TargetValue.IsZero() && p.Reached:
		d.Printf("Target %s reached in %s.\n\n", opts.TargetValue, p.End().Month)
	case !opts.TargetValue.IsZero():
		d.Printf("Target %s not reached by %s.\n\n", opts.TargetValue, p.End().Month)
	}
	if len(p.Points) == 0 {
		return d.String()
	}
	d.Table("lr", "Month", "Value")
	last := len(p.Points) - 1
	for i, pt := range p.Points {
		if i == last || pt.Month.Month() == time.December {
			d.Row(pt.Month.String(), pt.Value.String())
		}
	}
	d.Printf("\n")
	return d.String()
}

func annual(monthly float64) float64 {
	return math.Pow(1+monthly, 12) - 1
}

// Analysis renders the summary, allocation, calendar and report of an
// analysis in one document.
func Analysis(a *snowball.Analysis) string {
	d := newDocument()
	d.WriteString(Summary(a.Summary))
	if last := a.Timeline.Last(); !last.Month.IsZero() {
		d.WriteString(Allocation(last))
	}
	d.WriteString(Calendar(a.Calendar))
	if !a.Report.Empty() {
		d.WriteString(Report(a.Report))
	}
	return d.String()
}
