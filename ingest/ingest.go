// Package ingest parses the CSV exports of every account into typed engine
// inputs.
//
// Parsing has partial success semantics: a row with an invalid value is
// skipped and reported as a Value message, a file missing a required column
// is rejected as a whole with an error wrapping snowball.ErrMissingColumn.
package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/date"
	"github.com/shopspring/decimal"
)

// Parser parses amounts in Currency.
type Parser struct {
	Currency string
}

var historyColumns = []column{
	{name: "month", aliases: []string{"date", "data", "miesiac"}},
	{name: "invested", aliases: []string{"net_invested", "invested_capital", "capital", "wplaty"}},
	{name: "profit", aliases: []string{"cumulative_profit", "zysk"}},
}

// History parses an account's monthly history: month, invested, profit.
func (p Parser) History(r io.Reader, name string, kind snowball.AccountKind) (snowball.AccountSeries, snowball.Report, error) {
	var report snowball.Report
	series := snowball.AccountSeries{Kind: kind}
	t, err := readTable(r, name, historyColumns, &report)
	if err != nil {
		return series, report, err
	}
	for row := range t.rows {
		m, err := date.ParseMonth(row.get("month"))
		if err != nil {
			report.Addf(snowball.Value, kind.String(), row.ref(), "%v", err)
			continue
		}
		invested, err1 := p.money(row.get("invested"))
		profit, err2 := p.money(row.get("profit"))
		if err1 != nil || err2 != nil {
			report.Addf(snowball.Value, kind.String(), row.ref(), "%v", firstErr(err1, err2))
			continue
		}
		series.Snapshots = append(series.Snapshots, snowball.AccountSnapshot{Month: m, NetInvested: invested, Profit: profit})
	}
	return series, report, nil
}

var positionColumns = []column{
	{name: "symbol", aliases: []string{"ticker", "asset"}},
	{name: "account"},
	{name: "status", optional: true},
	{name: "quantity", aliases: []string{"qty", "units"}, optional: true},
	{name: "purchase_value", aliases: []string{"cost", "cost_basis", "purchase"}},
	{name: "current_value", aliases: []string{"value"}, optional: true},
}

// Positions parses the position ledger. Status defaults to open, current
// value to the purchase value.
func (p Parser) Positions(r io.Reader, name string) ([]snowball.LiveAsset, snowball.Report, error) {
	var report snowball.Report
	t, err := readTable(r, name, positionColumns, &report)
	if err != nil {
		return nil, report, err
	}
	var assets []snowball.LiveAsset
	for row := range t.rows {
		a, err := p.position(row)
		if err != nil {
			report.Addf(snowball.Value, row.get("account"), row.ref(), "%v", err)
			continue
		}
		assets = append(assets, a)
	}
	return assets, report, nil
}

func (p Parser) position(row record) (snowball.LiveAsset, error) {
	a := snowball.LiveAsset{Symbol: row.get("symbol")}
	if a.Symbol == "" {
		return a, fmt.Errorf("empty symbol")
	}
	var err error
	if a.Account, err = snowball.ParseAccountKind(row.get("account")); err != nil {
		return a, err
	}
	if s := strings.ToLower(row.get("status")); s != "" {
		if a.Status, err = snowball.ParsePositionStatus(s); err != nil {
			return a, err
		}
	}
	if s := row.get("quantity"); s != "" {
		q, err := ParseAmount(s)
		if err != nil {
			return a, err
		}
		a.Quantity = snowball.Q(q)
	}
	if a.PurchaseValue, err = p.money(row.get("purchase_value")); err != nil {
		return a, err
	}
	a.CurrentValue = a.PurchaseValue
	if s := row.get("current_value"); s != "" {
		if a.CurrentValue, err = p.money(s); err != nil {
			return a, err
		}
	}
	a.Profit = a.CurrentValue.Sub(a.PurchaseValue)
	return a, nil
}

var closedColumns = []column{
	{name: "symbol", aliases: []string{"ticker", "asset"}},
	{name: "account"},
	{name: "purchase_value", aliases: []string{"cost", "purchase"}, optional: true},
	{name: "sale_value", aliases: []string{"sale", "proceeds"}, optional: true},
	{name: "realized_profit", aliases: []string{"profit", "realized"}, optional: true},
	{name: "closed", aliases: []string{"date", "sold"}, optional: true},
}

// Closed parses closed positions. The realized profit is sale - purchase
// when not given.
func (p Parser) Closed(r io.Reader, name string) ([]snowball.ClosedPosition, snowball.Report, error) {
	var report snowball.Report
	t, err := readTable(r, name, closedColumns, &report)
	if err != nil {
		return nil, report, err
	}
	_, hasProfit := t.index["realized_profit"]
	_, hasSale := t.index["sale_value"]
	if !hasProfit && !hasSale {
		report.Addf(snowball.Structural, "", name, "missing column %q", "realized_profit")
		return nil, report, fmt.Errorf("%s: %w realized_profit", name, snowball.ErrMissingColumn)
	}
	var closed []snowball.ClosedPosition
	for row := range t.rows {
		c, err := p.closed(row)
		if err != nil {
			report.Addf(snowball.Value, row.get("account"), row.ref(), "%v", err)
			continue
		}
		closed = append(closed, c)
	}
	return closed, report, nil
}

func (p Parser) closed(row record) (snowball.ClosedPosition, error) {
	c := snowball.ClosedPosition{Symbol: row.get("symbol")}
	var err error
	if c.Account, err = snowball.ParseAccountKind(row.get("account")); err != nil {
		return c, err
	}
	if c.PurchaseValue, err = p.optionalMoney(row.get("purchase_value")); err != nil {
		return c, err
	}
	if c.SaleValue, err = p.optionalMoney(row.get("sale_value")); err != nil {
		return c, err
	}
	if s := row.get("realized_profit"); s != "" {
		if c.RealizedProfit, err = p.money(s); err != nil {
			return c, err
		}
	} else {
		c.RealizedProfit = c.SaleValue.Sub(c.PurchaseValue)
	}
	if s := row.get("closed"); s != "" {
		if c.Closed, err = date.Parse(s); err != nil {
			return c, err
		}
	}
	return c, nil
}

var flowColumns = []column{
	{name: "date"},
	{name: "account"},
	{name: "kind", aliases: []string{"type"}},
	{name: "amount"},
	{name: "status", optional: true},
	{name: "note", aliases: []string{"comment"}, optional: true},
}

// CashFlows parses deposits, withdrawals, dividends and interests.
func (p Parser) CashFlows(r io.Reader, name string) ([]snowball.CashFlow, snowball.Report, error) {
	var report snowball.Report
	t, err := readTable(r, name, flowColumns, &report)
	if err != nil {
		return nil, report, err
	}
	var flows []snowball.CashFlow
	for row := range t.rows {
		f, err := p.flow(row)
		if err != nil {
			report.Addf(snowball.Value, row.get("account"), row.ref(), "%v", err)
			continue
		}
		flows = append(flows, f)
	}
	return flows, report, nil
}

func (p Parser) flow(row record) (snowball.CashFlow, error) {
	f := snowball.CashFlow{Note: row.get("note")}
	var err error
	if f.Date, err = date.Parse(row.get("date")); err != nil {
		return f, err
	}
	if f.Account, err = snowball.ParseAccountKind(row.get("account")); err != nil {
		return f, err
	}
	if f.Kind, err = snowball.ParseFlowKind(strings.ToLower(row.get("kind"))); err != nil {
		return f, err
	}
	if f.Amount, err = p.money(row.get("amount")); err != nil {
		return f, err
	}
	if f.Status, err = snowball.ParseFlowStatus(strings.ToLower(row.get("status"))); err != nil {
		return f, err
	}
	return f, nil
}

var priceColumns = []column{
	{name: "symbol", aliases: []string{"ticker", "asset"}},
	{name: "price", aliases: []string{"value", "close"}},
}

// Prices parses a symbol,price table.
func Prices(r io.Reader, name string) (snowball.Prices, snowball.Report, error) {
	var report snowball.Report
	t, err := readTable(r, name, priceColumns, &report)
	if err != nil {
		return nil, report, err
	}
	prices := make(snowball.Prices)
	for row := range t.rows {
		v, err := ParseAmount(row.get("price"))
		if err != nil || row.get("symbol") == "" {
			report.Addf(snowball.Value, "", row.ref(), "invalid price row: %v", firstErr(err, fmt.Errorf("empty symbol")))
			continue
		}
		prices[row.get("symbol")] = v.InexactFloat64()
	}
	return prices, report, nil
}

var rateColumns = []column{
	{name: "month", aliases: []string{"date"}},
	{name: "rate", aliases: []string{"inflation", "cpi"}},
}

// Rates parses a month,rate table. Rates are written in percent: 0.3 is 0.3%.
func Rates(r io.Reader, name string) (snowball.RateTable, snowball.Report, error) {
	var report snowball.Report
	t, err := readTable(r, name, rateColumns, &report)
	if err != nil {
		return nil, report, err
	}
	rates := make(snowball.RateTable)
	for row := range t.rows {
		m, err1 := date.ParseMonth(row.get("month"))
		v, err2 := ParseAmount(row.get("rate"))
		if err1 != nil || err2 != nil {
			report.Addf(snowball.Value, "", row.ref(), "%v", firstErr(err1, err2))
			continue
		}
		rates[m] = v.InexactFloat64() / 100
	}
	return rates, report, nil
}

var indexColumns = []column{
	{name: "month", aliases: []string{"date"}},
	{name: "value", aliases: []string{"index", "close"}},
}

// Index parses a benchmark month,value table.
func Index(r io.Reader, name string) (snowball.Benchmark, snowball.Report, error) {
	var report snowball.Report
	b := snowball.Benchmark{Name: name, Index: make(map[date.Month]float64)}
	t, err := readTable(r, name, indexColumns, &report)
	if err != nil {
		return b, report, err
	}
	for row := range t.rows {
		m, err1 := date.ParseMonth(row.get("month"))
		v, err2 := ParseAmount(row.get("value"))
		if err1 != nil || err2 != nil {
			report.Addf(snowball.Value, "", row.ref(), "%v", firstErr(err1, err2))
			continue
		}
		b.Index[m] = v.InexactFloat64()
	}
	return b, report, nil
}

func (p Parser) money(s string) (snowball.Money, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return snowball.Money{}, err
	}
	return snowball.M(d, p.Currency), nil
}

// optionalMoney is money, with empty meaning zero.
func (p Parser) optionalMoney(s string) (snowball.Money, error) {
	if s == "" {
		return snowball.M(decimal.Zero, p.Currency), nil
	}
	return p.money(s)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
