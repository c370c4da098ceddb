package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// parsed is the structure of a rendered markdown document.
type parsed struct {
	headings []string
	tables   [][][]string // table, row, cell. The header is row 0.
}

func parse(t *testing.T, doc string) parsed {
	t.Helper()
	src := []byte(doc)
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(src))

	var p parsed
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			p.headings = append(p.headings, inline(n, src))
			return ast.WalkSkipChildren, nil
		case *extast.Table:
			var rows [][]string
			for row := n.FirstChild(); row != nil; row = row.NextSibling() {
				var cells []string
				for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
					cells = append(cells, inline(cell, src))
				}
				rows = append(rows, cells)
			}
			p.tables = append(p.tables, rows)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return p
}

// inline concatenates the text below n.
func inline(n ast.Node, src []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(src))
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// column returns the cells of the column named name, header excluded.
func column(t *testing.T, table [][]string, name string) []string {
	t.Helper()
	require.NotEmpty(t, table)
	for i, h := range table[0] {
		if h == name {
			var col []string
			for _, row := range table[1:] {
				col = append(col, row[i])
			}
			return col
		}
	}
	t.Fatalf("no column %q in %v", name, table[0])
	return nil
}

func pct(v float64) *snowball.Percent {
	p := snowball.Percent(v)
	return &p
}

func TestSummary(t *testing.T) {
	s := snowball.SummaryStats{
		AsOf:          date.New(2024, 6, 30),
		TotalValue:    snowball.M(1200, ""),
		TotalProfit:   snowball.M(200, ""),
		Investment:    snowball.M(1000, ""),
		CurrentROI:    20,
		CumulativeTWR: 18.5,
		LTM:           4.25,
	}
	got := parse(t, Summary(s))

	assert.Equal(t, []string{"Portfolio Summary on 2024-06-30", "Returns"}, got.headings)
	require.Len(t, got.tables, 2)
	assert.Equal(t, []string{"1200.00", "1000.00", "+200.00", "0.00"}, column(t, got.tables[0], "Value"))
	assert.Equal(t, []string{"+18.50%", "-", "+4.25%", "-"}, column(t, got.tables[1], "Time Weighted"))

	out := Summary(s)
	assert.NotContains(t, out, "24h trend", "absent trend must not be printed")
	assert.NotContains(t, out, "tax shield")

	s.DailyTrend = pct(-1.5)
	s.TaxShield = snowball.M(38, "")
	out = Summary(s)
	assert.Contains(t, out, "**24h trend:** -1.50%")
	assert.Contains(t, out, "**Estimated tax shield:** 38.00")
}

func TestTimeline(t *testing.T) {
	tl := snowball.Timeline{
		{
			Month:      date.NewMonth(2024, 1),
			Investment: snowball.M(1000, ""),
			TotalValue: snowball.M(1000, ""),
			Benchmarks: []snowball.BenchmarkReturn{{Name: "MSCI", Return: pct(0)}},
		},
		{
			Month:         date.NewMonth(2024, 2),
			Investment:    snowball.M(1000, ""),
			Profit:        snowball.M(50, ""),
			TotalValue:    snowball.M(1050, ""),
			ROI:           5,
			CumulativeTWR: 5,
			Benchmarks:    []snowball.BenchmarkReturn{{Name: "MSCI"}},
		},
	}
	got := parse(t, Timeline(tl))
	require.Len(t, got.tables, 1)
	table := got.tables[0]

	assert.Equal(t, []string{"Month", "Invested", "Profit", "Value", "Real Value", "ROI", "TWR", "MSCI"}, table[0])
	assert.Equal(t, []string{"2024-01", "2024-02"}, column(t, table, "Month"))
	assert.Equal(t, []string{"-", "+5.00%"}, column(t, table, "TWR"))
	// both a nil and a flat benchmark return print as a dash
	assert.Equal(t, []string{"-", "-"}, column(t, table, "MSCI"))
}

func TestTimeline_Empty(t *testing.T) {
	got := Timeline(nil)
	assert.Contains(t, got, "No history.")
	assert.Empty(t, parse(t, got).tables)
}

func TestCalendar(t *testing.T) {
	y := snowball.CalendarYear{Year: 2024, Total: pct(3)}
	y.Months[0] = pct(1)
	y.Months[1] = pct(0)
	y.Quarters[0] = pct(1)
	got := parse(t, Calendar([]snowball.CalendarYear{y}))
	require.Len(t, got.tables, 1)
	table := got.tables[0]

	require.Len(t, table[0], 18)
	assert.Equal(t, []string{"1.00%"}, column(t, table, "Jan"))
	assert.Equal(t, []string{"0.00%"}, column(t, table, "Feb"), "zero is a value")
	assert.Equal(t, []string{"-"}, column(t, table, "Mar"), "missing month is blank")
	assert.Equal(t, []string{"-"}, column(t, table, "Q2"))
	assert.Equal(t, []string{"3.00%"}, column(t, table, "Total"))
}

func TestSeasonality(t *testing.T) {
	var s snowball.Seasonality
	s[11] = pct(2.5)
	got := parse(t, Seasonality(s))
	require.Len(t, got.tables, 1)
	avg := column(t, got.tables[0], "Average")
	require.Len(t, avg, 12)
	assert.Equal(t, "-", avg[0])
	assert.Equal(t, "2.50%", avg[11])
}

func TestDrawdown(t *testing.T) {
	points := []snowball.DrawdownPoint{
		{Month: date.NewMonth(2024, 1), Value: snowball.M(100, ""), Peak: snowball.M(100, "")},
		{Month: date.NewMonth(2024, 2), Value: snowball.M(80, ""), Peak: snowball.M(100, ""), Drawdown: -20},
		{Month: date.NewMonth(2024, 3), Value: snowball.M(90, ""), Peak: snowball.M(100, ""), Drawdown: -10},
	}
	out := Drawdown("Drawdown", points)
	assert.Contains(t, out, "**Maximum drawdown:** -20.00% in 2024-02")
	got := parse(t, out)
	require.Len(t, got.tables, 1)
	assert.Equal(t, []string{"0.00%", "-20.00%", "-10.00%"}, column(t, got.tables[0], "Drawdown"))

	assert.Contains(t, Drawdown("Drawdown", nil), "No history.")
}

func TestAssets(t *testing.T) {
	assets := []snowball.LiveAsset{
		{Symbol: "VWCE", Account: snowball.Brokerage, Status: snowball.Open, Quantity: snowball.Q(2),
			PurchaseValue: snowball.M(200, ""), CurrentValue: snowball.M(220, ""), Profit: snowball.M(20, ""),
			ROI: 10, IsLivePrice: true, Change24h: pct(0.5)},
		{Symbol: "BTC", Account: snowball.Crypto, Status: snowball.Open, Quantity: snowball.Q(1),
			PurchaseValue: snowball.M(100, ""), CurrentValue: snowball.M(100, "")},
	}
	recs := map[snowball.AccountKind]snowball.Reconciliation{
		snowball.Brokerage: {Account: snowball.Brokerage, OpenCost: snowball.M(200, ""), NetInvested: snowball.M(200, ""), CurrentValue: snowball.M(220, "")},
	}
	out := Assets(assets, recs)
	got := parse(t, out)

	assert.Equal(t, []string{"Assets", "Net Invested Capital"}, got.headings)
	require.Len(t, got.tables, 2)
	assert.Equal(t, []string{"+0.50%", "-"}, column(t, got.tables[0], "24h"))
	assert.Equal(t, []string{"200.00"}, column(t, got.tables[1], "Net Invested"))
	assert.Contains(t, out, "not repriced from a live quote")
}

func TestReport(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := Report(snowball.Report{})
		assert.Contains(t, got, "No issue found.")
	})
	t.Run("grouped", func(t *testing.T) {
		var r snowball.Report
		r.Addf(snowball.MissingPrice, "brokerage", "VWCE", "no price")
		r.Addf(snowball.Value, "", "history.csv:3", "invalid amount")
		r.Add(snowball.Message{Category: snowball.Consistency, Account: "crypto", Text: "net invested drift", Discrepancy: snowball.M(-12, "")})

		got := parse(t, Report(r))
		assert.Equal(t, []string{"Data Report", "value (1)", "consistency (1)", "missing-price (1)"}, got.headings)
		require.Len(t, got.tables, 3)
		assert.Equal(t, []string{"-"}, column(t, got.tables[0], "Account"))
		assert.Equal(t, []string{"-12.00"}, column(t, got.tables[1], "Discrepancy"))
		assert.Equal(t, []string{"-"}, column(t, got.tables[1], "Where"))
	})
}

func TestProjection(t *testing.T) {
	opts := snowball.ProjectionOptions{TargetValue: snowball.M(1100, ""), MaxMonths: 24}
	p := snowball.Project(snowball.M(1000, ""), date.NewMonth(2024, 10), 0.01, opts)
	require.True(t, p.Reached)

	out := Projection(p, opts)
	assert.Contains(t, out, "**Monthly rate:** +1.00% (+12.68% a year)")
	assert.Contains(t, out, "reached in "+p.End().Month.String())

	got := parse(t, out)
	require.Len(t, got.tables, 1)
	months := column(t, got.tables[0], "Month")
	assert.Equal(t, "2024-12", months[0], "one line per year end")
	assert.Equal(t, p.End().Month.String(), months[len(months)-1])
}

func TestAnalysis(t *testing.T) {
	in := snowball.Inputs{
		Series: []snowball.AccountSeries{{
			Kind: snowball.Brokerage,
			Snapshots: []snowball.AccountSnapshot{
				{Month: date.NewMonth(2024, 1), NetInvested: snowball.M(1000, ""), Profit: snowball.M(0, "")},
				{Month: date.NewMonth(2024, 2), NetInvested: snowball.M(1000, ""), Profit: snowball.M(50, "")},
			},
		}},
	}
	a, err := snowball.Analyze(in, snowball.AnalysisOptions{})
	require.NoError(t, err)

	got := parse(t, Analysis(a))
	assert.Contains(t, got.headings, "Allocation on 2024-02")
	assert.Contains(t, got.headings, "Monthly Returns")
}
