package snowball

import (
	"testing"

	"github.com/etnz/snowball/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeries() []AccountSeries {
	return []AccountSeries{
		{Kind: Brokerage, Snapshots: []AccountSnapshot{
			snap("2024-01", 1000, 0),
			snap("2024-02", 1100, 20),
			snap("2024-04", 1300, 50),
		}},
		{Kind: Retirement, Snapshots: []AccountSnapshot{
			snap("2024-02", 500, 10),
			snap("2024-03", 600, 15),
		}},
	}
}

func TestMerge(t *testing.T) {
	tl := Merge(testSeries())

	months := make([]string, len(tl))
	for i, r := range tl {
		months[i] = r.Month.String()
	}
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03", "2024-04"}, months)

	tests := []struct {
		month              string
		investment, profit float64
	}{
		{"2024-01", 1000, 0},  // retirement has no history yet
		{"2024-02", 1600, 30}, // both sampled
		{"2024-03", 1700, 35}, // brokerage forward filled from 2024-02
		{"2024-04", 1900, 65}, // retirement forward filled from 2024-03
	}
	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			r := tl[tl.IndexOf(date.MustParseMonth(tt.month))]
			assert.True(t, r.Investment.Equal(PLN(tt.investment)), "Investment = %v, want %v", r.Investment, tt.investment)
			assert.True(t, r.Profit.Equal(PLN(tt.profit)), "Profit = %v, want %v", r.Profit, tt.profit)
		})
	}
}

func TestMerge_TotalIdentity(t *testing.T) {
	for _, r := range Merge(testSeries()) {
		assert.True(t, r.TotalValue.Equal(r.Investment.Add(r.Profit)), "%v: totalValue != investment + profit", r.Month)
		var sum Percent
		for _, a := range r.Accounts {
			sum += a.Share
		}
		assert.InDelta(t, 100, float64(sum), 1e-9, "%v: shares must add up to 100%%", r.Month)
	}
}

func TestMerge_ForwardFill(t *testing.T) {
	tl := Merge(testSeries())
	// brokerage silent in 2024-03, last record in 2024-02.
	a, ok := tl[tl.IndexOf(date.NewMonth(2024, 3))].Account(Brokerage)
	require.True(t, ok)
	assert.True(t, a.Investment.Equal(PLN(1100)))
	assert.True(t, a.Profit.Equal(PLN(20)))
}

func TestMerge_Exclude(t *testing.T) {
	tl := Merge(testSeries(), Retirement)
	for _, r := range tl {
		_, ok := r.Account(Retirement)
		assert.False(t, ok, "%v: excluded account must not contribute", r.Month)
	}
	assert.True(t, tl[tl.IndexOf(date.NewMonth(2024, 2))].Investment.Equal(PLN(1100)))
	assert.True(t, tl.Last().TotalValue.Equal(PLN(1350)))
}

func TestTimeline_Active(t *testing.T) {
	tl := Merge(testSeries())
	active := tl.Active()
	require.Len(t, active, len(tl))
	assert.True(t, active[1].TotalValue.Equal(PLN(1120)))
	a, _ := active[1].Account(Brokerage)
	assert.Equal(t, Percent(100), a.Share)
}

func TestWithLive(t *testing.T) {
	tl := Merge(testSeries())
	before := tl.Last()
	live := map[AccountKind]AccountSnapshot{
		Brokerage: {Month: date.NewMonth(2024, 5), NetInvested: PLN(1350), Profit: PLN(90)},
	}
	got := WithLive(tl, live)

	require.Len(t, got, len(tl))
	last := got.Last()
	assert.Equal(t, before.Month, last.Month, "the last row keeps its month")
	assert.True(t, last.Investment.Equal(PLN(1950)), "Investment = %v", last.Investment)
	assert.True(t, last.Profit.Equal(PLN(105)), "Profit = %v", last.Profit)
	assert.True(t, tl.Last().Investment.Equal(before.Investment), "the input timeline must not be modified")
	assert.Equal(t, tl[0], got[0], "history rows are unchanged")
}

func TestWithLive_EmptyHistory(t *testing.T) {
	live := map[AccountKind]AccountSnapshot{
		Crypto: {Month: date.NewMonth(2025, 6), NetInvested: PLN(100), Profit: PLN(5)},
		Cash:   {Month: date.NewMonth(2025, 6), NetInvested: PLN(50)},
	}
	got := WithLive(nil, live)
	require.Len(t, got, 1)
	assert.Equal(t, date.NewMonth(2025, 6), got[0].Month)
	assert.True(t, got[0].TotalValue.Equal(PLN(155)))
	assert.Equal(t, Crypto, got[0].Accounts[0].Kind)
}

func TestTimeline_Within(t *testing.T) {
	tl := Merge(testSeries())
	assert.Equal(t, date.NewRange(date.New(2024, 1, 1), date.New(2024, 4, 30)), tl.Span())

	got := tl.Within(date.NewRange(date.New(2024, 2, 15), date.New(2024, 3, 1)))
	require.Len(t, got, 2)
	assert.Equal(t, "2024-02", got[0].Month.String())
	assert.Equal(t, "2024-03", got[1].Month.String())

	q := date.Quarterly.Range(tl.Span().To)
	assert.Len(t, tl.Within(q), 1, "second quarter holds 2024-04 only")

	assert.Empty(t, Timeline{}.Within(tl.Span()))
	assert.Equal(t, date.Range{}, Timeline{}.Span())
}
