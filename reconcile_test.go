package snowball

import (
	"testing"

	"github.com/etnz/snowball/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_Snowball(t *testing.T) {
	assets := []LiveAsset{
		{Symbol: "A", Account: Brokerage, Status: Open, PurchaseValue: PLN(6000), CurrentValue: PLN(6500)},
		{Symbol: "B", Account: Brokerage, Status: Open, PurchaseValue: PLN(4000), CurrentValue: PLN(3900)},
	}
	closed := []ClosedPosition{
		{Symbol: "C", Account: Brokerage, RealizedProfit: PLN(1000)},
		{Symbol: "D", Account: Brokerage, RealizedProfit: PLN(-200)},
	}
	flows := []CashFlow{
		{Account: Brokerage, Kind: Dividend, Amount: PLN(150), Status: Active},
		{Account: Brokerage, Kind: Dividend, Amount: PLN(70), Status: Legacy},
		{Account: Brokerage, Kind: Deposit, Amount: PLN(5000), Status: Active},
	}
	got := Reconcile(assets, closed, flows)[Brokerage]

	assert.True(t, got.OpenCost.Equal(PLN(10000)), "OpenCost = %v", got.OpenCost)
	assert.True(t, got.RealizedProfit.Equal(PLN(800)), "RealizedProfit = %v", got.RealizedProfit)
	assert.True(t, got.ActiveFlows.Equal(PLN(150)), "ActiveFlows = %v", got.ActiveFlows)
	assert.True(t, got.NetInvested.Equal(PLN(9050)), "NetInvested = %v, want 9050", got.NetInvested)
	assert.Equal(t, 2, got.Positions)
}

func TestLiveSnapshots(t *testing.T) {
	asOf := date.NewMonth(2025, 3)
	assets := []LiveAsset{
		{Symbol: "A", Account: Brokerage, Status: Open, PurchaseValue: PLN(1000), CurrentValue: PLN(1300)},
		{Symbol: "Z", Account: Crypto, Status: Closed, PurchaseValue: PLN(10), CurrentValue: PLN(10)},
	}
	closed := []ClosedPosition{{Account: Brokerage, RealizedProfit: PLN(100)}}
	live := LiveSnapshots(assets, closed, nil, asOf)

	require.Len(t, live, 1, "accounts without open positions have no live snapshot")
	s := live[Brokerage]
	assert.Equal(t, asOf, s.Month)
	assert.True(t, s.NetInvested.Equal(PLN(900)))
	assert.True(t, s.Profit.Equal(PLN(400)))
	assert.True(t, s.TotalValue().Equal(PLN(1300)))
}

func TestCheckAssets_Tolerance(t *testing.T) {
	assets := []LiveAsset{
		{Symbol: "OK", Account: Brokerage, Status: Open, PurchaseValue: PLN(100), Profit: PLN(10), CurrentValue: PLN(111)},
		{Symbol: "KO", Account: Brokerage, Status: Open, PurchaseValue: PLN(100), Profit: PLN(10), CurrentValue: PLN(111.01)},
		{Symbol: "CLOSED", Account: Brokerage, Status: Closed, PurchaseValue: PLN(100), CurrentValue: PLN(500)},
	}
	report := CheckAssets(assets)
	require.Len(t, report.Messages, 1)
	m := report.Messages[0]
	assert.Equal(t, Consistency, m.Category)
	assert.Equal(t, "KO", m.Ref)
	assert.True(t, m.Discrepancy.Equal(PLN(-1.01)), "Discrepancy = %v", m.Discrepancy)
}

func TestCheckHistory(t *testing.T) {
	series := []AccountSeries{{Kind: Brokerage, Snapshots: []AccountSnapshot{
		snap("2025-01", 1000, 0),
		snap("2025-02", 1200, 30),
	}}}
	flows := []CashFlow{
		{Date: date.New(2025, 2, 10), Account: Brokerage, Kind: Deposit, Amount: PLN(200)},
		{Date: date.New(2025, 3, 5), Account: Brokerage, Kind: Deposit, Amount: PLN(300)},
		{Date: date.New(2025, 3, 6), Account: Brokerage, Kind: Withdrawal, Amount: PLN(100)},
	}
	tests := []struct {
		name string
		live float64
		want int
	}{
		{"exact", 1400, 0},
		{"within tolerance", 1405, 0},
		{"beyond tolerance", 1405.01, 1},
		{"below", 1390, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			live := map[AccountKind]AccountSnapshot{Brokerage: {Month: date.NewMonth(2025, 3), NetInvested: PLN(tt.live)}}
			report := CheckHistory(series, live, flows)
			assert.Equal(t, tt.want, report.Count(Consistency), "%v", report.Messages)
			assert.False(t, report.HasStructural())
		})
	}
}

func TestCheckHistory_SameKind(t *testing.T) {
	// ike and brokerage files both load as Brokerage series.
	series := []AccountSeries{
		{Kind: Brokerage, Snapshots: []AccountSnapshot{snap("2024-12", 1000, 50)}},
		{Kind: Brokerage, Snapshots: []AccountSnapshot{snap("2024-12", 500, 10)}},
	}
	tests := []struct {
		name string
		live float64
		want int
	}{
		{"summed", 1500, 0},
		{"first file only", 1000, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			live := map[AccountKind]AccountSnapshot{Brokerage: {Month: date.NewMonth(2025, 1), NetInvested: PLN(tt.live)}}
			report := CheckHistory(series, live, nil)
			require.Equal(t, tt.want, report.Count(Consistency), "%v", report.Messages)
			if tt.want > 0 {
				assert.True(t, report.Messages[0].Discrepancy.Equal(PLN(-500)), "discrepancy = %v", report.Messages[0].Discrepancy)
			}
		})
	}
}

func TestCheckSeries(t *testing.T) {
	series := []AccountSeries{{Kind: Cash, Snapshots: []AccountSnapshot{
		snap("2025-01", 100, 0),
		snap("2025-01", 110, 0),
		snap("2025-02", -5, 0),
	}}}
	report := CheckSeries(series)
	assert.Equal(t, 2, report.Count(Consistency))
	assert.Len(t, report.Warnings(), 2)
}
