//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := encodeConfig(run.Config)
	if err != nil {
		return fmt.Errorf("encode run %s config: %w", run.ID, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, sim, width, height, seed, config, started)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sim = excluded.sim,
			width = excluded.width,
			height = excluded.height,
			seed = excluded.seed,
			config = excluded.config,
			started = excluded.started
	`, run.ID, run.Sim, run.Width, run.Height, run.Seed, payload, run.Started.UTC().Format(time.RFC3339Nano))
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}

	var (
		run     Run
		payload []byte
		started string
	)
	err = db.QueryRowContext(ctx, `
		SELECT id, sim, width, height, seed, config, started FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Sim, &run.Width, &run.Height, &run.Seed, &payload, &started)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, false, nil
		}
		return Run{}, false, err
	}

	run.Config, err = decodeConfig(payload)
	if err != nil {
		return Run{}, false, fmt.Errorf("decode run %s config: %w", id, err)
	}
	run.Started, err = time.Parse(time.RFC3339Nano, started)
	if err != nil {
		return Run{}, false, fmt.Errorf("parse run %s start time: %w", id, err)
	}
	return run, true, nil
}

func (s *SQLiteStore) AppendFrames(ctx context.Context, runID string, frames []Frame) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO frames (run_id, tick, changed, population, agents, row_cursor)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, tick) DO UPDATE SET
			changed = excluded.changed,
			population = excluded.population,
			agents = excluded.agents,
			row_cursor = excluded.row_cursor
	`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, f := range frames {
		if _, err := stmt.ExecContext(ctx, runID, f.Tick, f.Changed, f.Population, f.Agents, f.Row); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert frame %d: %w", f.Tick, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListFrames(ctx context.Context, runID string) ([]Frame, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT tick, changed, population, agents, row_cursor FROM frames WHERE run_id = ? ORDER BY tick
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		if err := rows.Scan(&f.Tick, &f.Changed, &f.Population, &f.Agents, &f.Row); err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			sim TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			config BLOB NOT NULL,
			started TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS frames (
			run_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			changed INTEGER NOT NULL,
			population INTEGER NOT NULL,
			agents INTEGER NOT NULL,
			row_cursor INTEGER NOT NULL,
			PRIMARY KEY (run_id, tick)
		);
	`)
	return err
}
