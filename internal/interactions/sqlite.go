package interactions

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"bizmatch-engine/internal/domain"
)

// SQLite is the default durable backend. One row per listing id; rows stay
// around even when every flag is cleared.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	// modernc sqlite DSN: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite wants a single writer
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS interactions (
  listing_id TEXT PRIMARY KEY,
  favorite INTEGER NOT NULL DEFAULT 0,
  interest INTEGER NOT NULL DEFAULT 0,
  dismissed INTEGER NOT NULL DEFAULT 0,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) Get(ctx context.Context, listingID string) (domain.InteractionRecord, error) {
	r := domain.InteractionRecord{ListingID: listingID}
	err := s.db.QueryRowContext(ctx, `
SELECT favorite, interest, dismissed
FROM interactions
WHERE listing_id = ?;`, listingID).Scan(&r.Favorite, &r.Interest, &r.Dismissed)
	if err == sql.ErrNoRows {
		return r, nil
	}
	if err != nil {
		return r, fmt.Errorf("interactions: get %s: %w", listingID, err)
	}
	return r, nil
}

func (s *SQLite) SetFavorite(ctx context.Context, listingID string, v bool) error {
	return s.set(ctx, listingID, "favorite", v)
}

func (s *SQLite) SetInterest(ctx context.Context, listingID string, v bool) error {
	return s.set(ctx, listingID, "interest", v)
}

func (s *SQLite) SetDismissed(ctx context.Context, listingID string, v bool) error {
	return s.set(ctx, listingID, "dismissed", v)
}

func (s *SQLite) set(ctx context.Context, listingID, col string, v bool) error {
	// col is one of the three fixed flag columns, never user input.
	q := fmt.Sprintf(`
INSERT INTO interactions(listing_id, %[1]s, updated_at)
VALUES(?, ?, ?)
ON CONFLICT(listing_id) DO UPDATE SET %[1]s = excluded.%[1]s, updated_at = excluded.updated_at;`, col)

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, q, listingID, boolInt(v), now); err != nil {
		return fmt.Errorf("interactions: set %s %s: %w", col, listingID, err)
	}
	return nil
}

func (s *SQLite) List(ctx context.Context, pred Predicate) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT listing_id, favorite, interest, dismissed
FROM interactions
ORDER BY listing_id;`)
	if err != nil {
		return nil, fmt.Errorf("interactions: list: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var r domain.InteractionRecord
		if err := rows.Scan(&r.ListingID, &r.Favorite, &r.Interest, &r.Dismissed); err != nil {
			return nil, err
		}
		if pred(r) {
			ids = append(ids, r.ListingID)
		}
	}
	return ids, rows.Err()
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
