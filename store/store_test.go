package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/date"
	"github.com/etnz/snowball/pricefeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "quotes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	day := date.New(2025, 3, 14)

	_, ok, err := s.Session(ctx, day)
	require.NoError(t, err)
	assert.False(t, ok)

	q := pricefeed.Quotes{
		Day:      day,
		Current:  snowball.Prices{"AAA": 10.5, "BBB": 2},
		Previous: snowball.Prices{"AAA": 10},
	}
	require.NoError(t, s.SaveSession(ctx, q))

	got, ok, err := s.Session(ctx, day)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, q.Current, got.Current)
	assert.Equal(t, q.Previous, got.Previous)
	assert.Equal(t, day, got.Day)

	// saving again replaces the session.
	q.Current = snowball.Prices{"AAA": 11}
	require.NoError(t, s.SaveSession(ctx, q))
	got, _, err = s.Session(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, snowball.Prices{"AAA": 11}, got.Current)
}

func TestLatestSession(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	for _, d := range []date.Date{date.New(2025, 3, 10), date.New(2025, 3, 12), date.New(2025, 3, 14)} {
		require.NoError(t, s.SaveSession(ctx, pricefeed.Quotes{Day: d, Current: snowball.Prices{"AAA": float64(d.Day())}}))
	}

	got, ok, err := s.LatestSession(ctx, date.New(2025, 3, 14))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, date.New(2025, 3, 12), got.Day)
	assert.Equal(t, 12.0, got.Current["AAA"])

	_, ok, err = s.LatestSession(ctx, date.New(2025, 3, 10))
	require.NoError(t, err)
	assert.False(t, ok)
}
