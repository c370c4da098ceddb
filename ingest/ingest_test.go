package ingest

import (
	"errors"
	"math"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/date"
)

func TestHistory(t *testing.T) {
	csv := `Date;Net Invested;Cumulative Profit
2024-01;1 000,00 zł;0
2024-02;1 200,00 zł;50,00
not a month;1;1
2024-03;1 200,00 zł;oops
31.03.2024;1 200,00 zł;140,00
`
	p := Parser{Currency: "PLN"}
	s, report, err := p.History(strings.NewReader(csv), "ike.csv", snowball.Brokerage)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if got := len(s.Snapshots); got != 3 {
		t.Fatalf("len(Snapshots) = %d, want 3", got)
	}
	if got := report.Count(snowball.Value); got != 2 {
		t.Errorf("Count(Value) = %d, want 2: %v", got, report.Messages)
	}
	last := s.Snapshots[2]
	if last.Month != date.NewMonth(2024, 3) || !last.Profit.Equal(snowball.M(140, "PLN")) {
		t.Errorf("last snapshot = %v %v, want 2024-03 140", last.Month, last.Profit)
	}
	if ref := report.Messages[0].Ref; ref != "ike.csv:4" {
		t.Errorf("Ref = %q, want %q", ref, "ike.csv:4")
	}
}

func TestHistory_MissingColumn(t *testing.T) {
	csv := "month,invested\n2024-01,1000\n"
	_, report, err := Parser{Currency: "PLN"}.History(strings.NewReader(csv), "crypto.csv", snowball.Crypto)
	if !errors.Is(err, snowball.ErrMissingColumn) {
		t.Fatalf("History() error = %v, want ErrMissingColumn", err)
	}
	if !report.HasStructural() {
		t.Error("HasStructural() = false, want true")
	}
	if !strings.Contains(report.Messages[0].Text, `"profit"`) {
		t.Errorf("message = %q, want it to name the column", report.Messages[0].Text)
	}
}

func TestPositions(t *testing.T) {
	csv := `symbol,account,status,quantity,purchase_value,current_value
ETF,ike,open,10,"1 100,00","1 150,00"
PLN,ike,cash,,150,
BTC,crypto,open,0.5,10000,abc
`
	assets, report, err := Parser{Currency: "PLN"}.Positions(strings.NewReader(csv), "positions.csv")
	if err != nil {
		t.Fatalf("Positions() error = %v", err)
	}
	if len(assets) != 2 || report.Count(snowball.Value) != 1 {
		t.Fatalf("Positions() = %d assets, %v", len(assets), report.Messages)
	}
	etf := assets[0]
	if etf.Account != snowball.Brokerage || !etf.Profit.Equal(snowball.M(50, "PLN")) || !etf.Quantity.Equal(snowball.Q(10)) {
		t.Errorf("ETF = %+v", etf)
	}
	if cash := assets[1]; cash.Status != snowball.CashPosition || !cash.CurrentValue.Equal(snowball.M(150, "PLN")) {
		t.Errorf("cash = %+v", cash)
	}
}

func TestClosed(t *testing.T) {
	csv := `symbol,account,purchase_value,sale_value,closed
OLD,ike,1000,1800,2024-05-02
`
	closed, _, err := Parser{Currency: "PLN"}.Closed(strings.NewReader(csv), "closed.csv")
	if err != nil {
		t.Fatalf("Closed() error = %v", err)
	}
	if len(closed) != 1 || !closed[0].RealizedProfit.Equal(snowball.M(800, "PLN")) {
		t.Errorf("Closed() = %+v, want a realized profit of 800", closed)
	}
	if closed[0].Closed != date.New(2024, 5, 2) {
		t.Errorf("Closed = %v", closed[0].Closed)
	}

	_, _, err = Parser{}.Closed(strings.NewReader("symbol,account\nA,ike\n"), "closed.csv")
	if !errors.Is(err, snowball.ErrMissingColumn) {
		t.Errorf("Closed() without profit error = %v, want ErrMissingColumn", err)
	}
}

func TestCashFlows(t *testing.T) {
	csv := `date,account,kind,amount,status,note
2024-03-01,ike,Dividend,10,active,
2024-03-02,ike,dividend,7,legacy,old broker
2024-03-03,ike,deposit,500,,
2024-03-04,ike,gift,1,,
`
	flows, report, err := Parser{Currency: "PLN"}.CashFlows(strings.NewReader(csv), "cashflows.csv")
	if err != nil {
		t.Fatalf("CashFlows() error = %v", err)
	}
	if len(flows) != 3 || report.Count(snowball.Value) != 1 {
		t.Fatalf("CashFlows() = %d flows, %v", len(flows), report.Messages)
	}
	if flows[1].Status != snowball.Legacy || flows[1].Note != "old broker" {
		t.Errorf("flows[1] = %+v", flows[1])
	}
	if flows[2].Kind != snowball.Deposit || flows[2].Status != snowball.Active {
		t.Errorf("flows[2] = %+v", flows[2])
	}
}

func TestRates(t *testing.T) {
	rates, _, err := Rates(strings.NewReader("month;rate\n2024-01;0,5\n2024-02;-0.2%\n"), "cpi.csv")
	if err != nil {
		t.Fatalf("Rates() error = %v", err)
	}
	if got := rates[date.NewMonth(2024, 1)]; math.Abs(got-0.005) > 1e-12 {
		t.Errorf("rate = %v, want 0.005", got)
	}
	if got := rates[date.NewMonth(2024, 2)]; math.Abs(got+0.002) > 1e-12 {
		t.Errorf("rate = %v, want -0.002", got)
	}
}

func TestLoadDir(t *testing.T) {
	fsys := fstest.MapFS{
		"history/ike.csv":         {Data: []byte("month,invested,profit\n2024-01,1000,0\n2024-02,1200,50\n")},
		"history/ppk.csv":         {Data: []byte("month,invested,profit\n2024-01,400,0\n")},
		"history/crypto.csv":      {Data: []byte("month,invested\n2024-01,100\n")},
		"history/notes.csv":       {Data: []byte("month,invested,profit\n")},
		"positions.csv":           {Data: []byte("symbol,account,quantity,purchase_value\nETF,ike,10,1100\n")},
		"prices.csv":              {Data: []byte("symbol,price\nETF,115\n")},
		"benchmarks/wig20.csv":    {Data: []byte("month,value\n2024-01,2400\n2024-02,2450\n")},
		"cpi.csv":                 {Data: []byte("month,rate\n2024-02,0.3\n")},
		"benchmarks/readme.md":    {Data: []byte("ignored")},
		"history/archive/old.csv": {Data: []byte("ignored")},
	}
	in, report, err := LoadDir(fsys, "PLN")
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if got := len(in.Series); got != 2 {
		t.Errorf("len(Series) = %d, want 2 (crypto is rejected)", got)
	}
	if got := report.Count(snowball.Structural); got != 2 {
		t.Errorf("Count(Structural) = %d, want 2: %v", got, report.Messages)
	}
	if len(in.Assets) != 1 || in.Prices.Fallback["ETF"] != 115 {
		t.Errorf("assets = %v, prices = %v", in.Assets, in.Prices.Fallback)
	}
	if len(in.Benchmarks) != 1 || in.Benchmarks[0].Name != "wig20" {
		t.Errorf("benchmarks = %v", in.Benchmarks)
	}
	if math.Abs(in.CPI[date.NewMonth(2024, 2)]-0.003) > 1e-12 {
		t.Errorf("cpi = %v", in.CPI)
	}
	if in.Closed != nil || in.CashFlows != nil {
		t.Error("missing optional files must leave their inputs empty")
	}
}

func TestLoadDir_NoHistory(t *testing.T) {
	if _, _, err := LoadDir(fstest.MapFS{}, "PLN"); err == nil {
		t.Error("LoadDir() error = nil, want an error without history")
	}
}
