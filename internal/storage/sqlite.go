// Package storage provides the SQLite-backed replay journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for recorded runs.
type Store struct {
	db *sql.DB
}

// Run is one recorded play session. Ticks, Phase and Score are filled in
// when the run finishes; until then Phase is PhaseRecording.
type Run struct {
	ID         string
	GameID     string
	Seed       int64
	TickRate   int
	Difficulty string
	StartedAt  time.Time
	Ticks      int64
	Phase      string
	Score      int
}

// PhaseRecording marks a run that has not been finished.
const PhaseRecording = "recording"

// Finished reports whether the run was closed with FinishRun.
func (r Run) Finished() bool {
	return r.Phase != PhaseRecording
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions share one store; serialize writers at the pool.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			started_at INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			phase TEXT NOT NULL DEFAULT 'recording',
			score INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id, started_at DESC);

		CREATE TABLE IF NOT EXISTS run_events (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			key TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginRun inserts a new unfinished run and returns it.
func (s *Store) BeginRun(gameID string, seed int64, tickRate int, difficulty string) (Run, error) {
	run := Run{
		ID:         uuid.NewString(),
		GameID:     gameID,
		Seed:       seed,
		TickRate:   tickRate,
		Difficulty: difficulty,
		StartedAt:  time.UnixMilli(time.Now().UnixMilli()),
		Phase:      PhaseRecording,
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, game_id, seed, tick_rate, difficulty, started_at, phase)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.GameID, run.Seed, run.TickRate, run.Difficulty, run.StartedAt.UnixMilli(), run.Phase,
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot begin run: %w", err)
	}
	return run, nil
}

// AppendEvents adds journal entries to a run, continuing its sequence.
func (s *Store) AppendEvents(runID string, entries []engine.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next sql.NullInt64
	if err := tx.QueryRow("SELECT MAX(seq) FROM run_events WHERE run_id = ?", runID).Scan(&next); err != nil {
		return fmt.Errorf("storage: cannot read sequence: %w", err)
	}
	seq := int64(0)
	if next.Valid {
		seq = next.Int64 + 1
	}

	stmt, err := tx.Prepare("INSERT INTO run_events (run_id, seq, tick, kind, key) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(runID, seq, e.Frame, e.Event.Kind.String(), e.Event.Key.String()); err != nil {
			return fmt.Errorf("storage: cannot append event: %w", err)
		}
		seq++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit events: %w", err)
	}
	return nil
}

// FinishRun records how a run ended.
func (s *Store) FinishRun(id string, ticks int64, phase engine.Phase, score int) error {
	res, err := s.db.Exec(
		"UPDATE runs SET ticks = ?, phase = ?, score = ? WHERE id = ?",
		ticks, phase.String(), score, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

const runColumns = "id, game_id, seed, tick_rate, difficulty, started_at, ticks, phase, score"

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var started int64
	if err := row.Scan(&r.ID, &r.GameID, &r.Seed, &r.TickRate, &r.Difficulty, &started, &r.Ticks, &r.Phase, &r.Score); err != nil {
		return Run{}, err
	}
	r.StartedAt = time.UnixMilli(started)
	return r, nil
}

// Runs lists recorded runs, newest first. An empty gameID lists every game.
func (s *Store) Runs(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := "SELECT " + runColumns + " FROM runs"
	args := []any{}
	if gameID != "" {
		query += " WHERE game_id = ?"
		args = append(args, gameID)
	}
	query += " ORDER BY started_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// LoadRun returns a run and its journal in sequence order.
func (s *Store) LoadRun(id string) (Run, []engine.JournalEntry, error) {
	run, err := scanRun(s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, ErrNotFound
	}
	if err != nil {
		return Run{}, nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	rows, err := s.db.Query("SELECT tick, kind, key FROM run_events WHERE run_id = ? ORDER BY seq", id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var entries []engine.JournalEntry
	for rows.Next() {
		var tick int64
		var kind, key string
		if err := rows.Scan(&tick, &kind, &key); err != nil {
			return Run{}, nil, fmt.Errorf("storage: cannot scan event: %w", err)
		}
		k, ok := core.ParseEventKind(kind)
		if !ok {
			return Run{}, nil, fmt.Errorf("storage: run %s has unknown event kind %q", id, kind)
		}
		entries = append(entries, engine.JournalEntry{
			Frame: tick,
			Event: core.InputEvent{Kind: k, Key: core.ParseKey(key)},
		})
	}

	if err := rows.Err(); err != nil {
		return Run{}, nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return run, entries, nil
}

// DeleteRun removes a run and its journal.
func (s *Store) DeleteRun(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM run_events WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete events: %w", err)
	}
	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
