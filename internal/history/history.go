// Package history keeps a local SQLite record of manual predictions so the
// predict tab can list recent results. Failed calls are never recorded.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
	"github.com/Zachdehooge/fireguard-dashboard/internal/risk"
)

// FileName is the database file created inside the history directory.
const FileName = "history.db"

// Entry is one recorded prediction.
type Entry struct {
	ID          string
	CreatedAt   time.Time
	Province    string
	Probability float64
	Tier        risk.Tier
	RiskLevel   string
	IsFire      bool
}

// Store is a SQLite-backed prediction history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the history database in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, FileName)+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	_, err := s.db.ExecContext(context.Background(), `
	CREATE TABLE IF NOT EXISTS predictions (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		province TEXT NOT NULL,
		probability REAL NOT NULL,
		tier TEXT NOT NULL,
		risk_level TEXT NOT NULL,
		is_fire INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_predictions_created ON predictions(created_at);
	`)
	return err
}

// Record stores a successful prediction for a manual input.
func (s *Store) Record(ctx context.Context, in fetcher.ManualInput, res *fetcher.PredictResult) (Entry, error) {
	e := Entry{
		ID:          uuid.NewString(),
		CreatedAt:   s.now().UTC(),
		Province:    in.Province,
		Probability: res.Probability,
		Tier:        res.Tier(),
		RiskLevel:   res.RiskLevel,
		IsFire:      res.IsFire,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO predictions (id, created_at, province, probability, tier, risk_level, is_fire)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt.UnixNano(), e.Province, e.Probability, string(e.Tier), e.RiskLevel, e.IsFire,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record prediction: %w", err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return []Entry{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, province, probability, tier, risk_level, is_fire
		 FROM predictions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e       Entry
			created int64
			tier    string
		)
		if err := rows.Scan(&e.ID, &created, &e.Province, &e.Probability, &tier, &e.RiskLevel, &e.IsFire); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.CreatedAt = time.Unix(0, created).UTC()
		e.Tier = risk.Tier(tier)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
