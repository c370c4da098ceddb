package snowball

import (
	"testing"

	"github.com/etnz/snowball/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyTrend(t *testing.T) {
	up, down := Percent(10), Percent(-5)
	assets := []LiveAsset{
		{CurrentValue: PLN(300), Change24h: &up},
		{CurrentValue: PLN(100), Change24h: &down},
		{CurrentValue: PLN(10000)}, // not live
	}
	got := DailyTrend(assets)
	require.NotNil(t, got)
	assert.InDelta(t, (300*10.0-100*5)/400, float64(*got), 1e-9)
	assert.Nil(t, DailyTrend(assets[2:]))
}

func TestTaxShield(t *testing.T) {
	r := GlobalHistoryRow{Accounts: []AccountShare{
		{Kind: Retirement, Profit: PLN(1000)},
		{Kind: Brokerage, Profit: PLN(5000)},
	}}
	assert.True(t, TaxShield(r).Equal(PLN(190)), "TaxShield() = %v", TaxShield(r))

	r.Accounts[0].Profit = PLN(-10)
	assert.True(t, TaxShield(r).IsZero())
}

func TestNewSummary(t *testing.T) {
	tl := Enrich(rows([2]float64{1000, 0}, [2]float64{1200, 50}, [2]float64{1200, 140}), nil, nil)
	s := NewSummary(tl, nil, date.New(2024, 3, 31))

	assert.True(t, s.TotalValue.Equal(PLN(1340)))
	assert.True(t, s.TotalProfit.Equal(PLN(140)))
	assert.Equal(t, Percent(11.67), s.CurrentROI.Round(2))
	assert.InDelta(t, float64(s.CurrentROI), float64(s.CAGR), 1e-9, "short histories are not annualized")
	assert.Nil(t, s.DailyTrend)
	assert.True(t, s.RealTotalValue.Equal(s.TotalValue))
}
