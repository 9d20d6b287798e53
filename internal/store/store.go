// Package store handles SQLite persistence of the externally captured
// key-frequency and co-occurrence observations the offline builder consumes.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/verte-zerg/padtype/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for frequency data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS key_counts (
			key TEXT PRIMARY KEY,
			count REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS pair_counts (
			a TEXT NOT NULL,
			b TEXT NOT NULL,
			count REAL NOT NULL,
			PRIMARY KEY (a, b)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_pair_counts_b ON pair_counts(b);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// AddKeyCounts accumulates key frequencies into the store.
func (s *Store) AddKeyCounts(ctx context.Context, counts []model.KeyCount) error {
	if len(counts) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO key_counts (key, count) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET count = count + excluded.count`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, kc := range counts {
		if _, err = stmt.ExecContext(ctx, kc.Key, kc.Count); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AddPairCounts accumulates co-occurrence counts. Pairs are stored in
// canonical undirected order (a < b); self-pairs are skipped.
func (s *Store) AddPairCounts(ctx context.Context, pairs []model.PairCount) error {
	if len(pairs) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pair_counts (a, b, count) VALUES (?, ?, ?)
		 ON CONFLICT(a, b) DO UPDATE SET count = count + excluded.count`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, pc := range pairs {
		a, b := pc.A, pc.B
		if a == b {
			continue
		}
		if a > b {
			a, b = b, a
		}
		if _, err = stmt.ExecContext(ctx, a, b, pc.Count); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// KeyCounts returns the frequency table, most frequent first.
func (s *Store) KeyCounts(ctx context.Context) ([]model.KeyCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, count FROM key_counts ORDER BY count DESC, key ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.KeyCount
	for rows.Next() {
		var kc model.KeyCount
		if err := rows.Scan(&kc.Key, &kc.Count); err != nil {
			return nil, err
		}
		result = append(result, kc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// PairCounts returns all co-occurrence rows in canonical order.
func (s *Store) PairCounts(ctx context.Context) ([]model.PairCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT a, b, count FROM pair_counts ORDER BY a ASC, b ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.PairCount
	for rows.Next() {
		var pc model.PairCount
		if err := rows.Scan(&pc.A, &pc.B, &pc.Count); err != nil {
			return nil, err
		}
		result = append(result, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
