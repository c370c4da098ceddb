// Package store persists price sessions in a SQLite database, so that
// valuations are refreshed at most once per session and the previous
// session prices are known for the 24h change.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/date"
	"github.com/etnz/snowball/pricefeed"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS quotes (
	session  TEXT NOT NULL,
	symbol   TEXT NOT NULL,
	price    REAL NOT NULL,
	previous REAL,
	PRIMARY KEY (session, symbol)
);
CREATE INDEX IF NOT EXISTS idx_quotes_session ON quotes(session);
`

// Store is a SQLite quote store.
type Store struct {
	db *sql.DB
}

// Open opens, or creates, the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema in %q: %w", path, err)
	}
	log.Printf("quote store %q ready", path)
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// SaveSession replaces the quotes of session q.Day.
func (s *Store) SaveSession(ctx context.Context, q pricefeed.Quotes) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	session := q.Day.String()
	if _, err := tx.ExecContext(ctx, `DELETE FROM quotes WHERE session = ?`, session); err != nil {
		return fmt.Errorf("failed to clear session %s: %w", session, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO quotes(session, symbol, price, previous) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for symbol, price := range q.Current {
		var previous sql.NullFloat64
		if p, ok := q.Previous[symbol]; ok {
			previous = sql.NullFloat64{Float64: p, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, session, symbol, price, previous); err != nil {
			return fmt.Errorf("failed to save quote %q: %w", symbol, err)
		}
	}
	return tx.Commit()
}

// Session returns the quotes saved for day, and false if there are none.
func (s *Store) Session(ctx context.Context, day date.Date) (pricefeed.Quotes, bool, error) {
	return s.load(ctx, day)
}

// LatestSession returns the most recent session strictly before day, and
// false if there is none.
func (s *Store) LatestSession(ctx context.Context, before date.Date) (pricefeed.Quotes, bool, error) {
	var session string
	err := s.db.QueryRowContext(ctx, `SELECT session FROM quotes WHERE session < ? ORDER BY session DESC LIMIT 1`, before.String()).Scan(&session)
	if errors.Is(err, sql.ErrNoRows) {
		return pricefeed.Quotes{}, false, nil
	}
	if err != nil {
		return pricefeed.Quotes{}, false, err
	}
	day, err := date.Parse(session)
	if err != nil {
		return pricefeed.Quotes{}, false, fmt.Errorf("invalid session %q: %w", session, err)
	}
	return s.load(ctx, day)
}

func (s *Store) load(ctx context.Context, day date.Date) (pricefeed.Quotes, bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT symbol, price, previous FROM quotes WHERE session = ?`, day.String())
	if err != nil {
		return pricefeed.Quotes{}, false, err
	}
	defer rows.Close()
	q := pricefeed.Quotes{Day: day, Current: make(snowball.Prices), Previous: make(snowball.Prices)}
	for rows.Next() {
		var (
			symbol   string
			price    float64
			previous sql.NullFloat64
		)
		if err := rows.Scan(&symbol, &price, &previous); err != nil {
			return pricefeed.Quotes{}, false, err
		}
		q.Current[symbol] = price
		if previous.Valid {
			q.Previous[symbol] = previous.Float64
		}
	}
	if err := rows.Err(); err != nil {
		return pricefeed.Quotes{}, false, err
	}
	return q, len(q.Current) > 0, nil
}
