// Package progress persists study state in a SQLite database under the
// workspace .qed directory: which lessons have been read and the history of
// factoring runs.
package progress

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"qed/internal/config"
	"qed/internal/shor"
)

// Store manages the progress database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// LessonRead is the reading record for one lesson.
type LessonRead struct {
	Slug      string
	FirstRead time.Time
	LastRead  time.Time
	Count     int
}

// FactorRun is one recorded invocation of the factoring shell.
type FactorRun struct {
	ID       string
	N        int64
	Factors  [2]int64
	Base     int64
	Order    int64
	Attempts int
	Duration time.Duration
	When     time.Time
}

// Open creates or opens the progress store for a workspace.
func Open(workspace string) (*Store, error) {
	dir := filepath.Join(workspace, config.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("progress: creating %s: %w", dir, err)
	}
	dbPath := filepath.Join(dir, "progress.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("progress: opening database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("progress: initializing schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS lesson_reads (
		slug TEXT PRIMARY KEY,
		first_read DATETIME NOT NULL,
		last_read DATETIME NOT NULL,
		read_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS factor_runs (
		id TEXT PRIMARY KEY,
		n INTEGER NOT NULL,
		factor1 INTEGER NOT NULL,
		factor2 INTEGER NOT NULL,
		base INTEGER NOT NULL,
		ord INTEGER NOT NULL,
		attempts INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_factor_runs_created ON factor_runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// MarkLessonRead records a reading of the lesson, bumping the counter.
func (s *Store) MarkLessonRead(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	_, err := s.db.Exec(`
		INSERT INTO lesson_reads (slug, first_read, last_read, read_count)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(slug) DO UPDATE SET
			last_read = excluded.last_read,
			read_count = read_count + 1`,
		slug, now, now)
	if err != nil {
		return fmt.Errorf("progress: marking %s read: %w", slug, err)
	}
	return nil
}

// LessonReads returns all reading records keyed by slug.
func (s *Store) LessonReads() (map[string]LessonRead, error) {
	rows, err := s.db.Query(`SELECT slug, first_read, last_read, read_count FROM lesson_reads`)
	if err != nil {
		return nil, fmt.Errorf("progress: querying lesson reads: %w", err)
	}
	defer rows.Close()

	reads := make(map[string]LessonRead)
	for rows.Next() {
		var r LessonRead
		if err := rows.Scan(&r.Slug, &r.FirstRead, &r.LastRead, &r.Count); err != nil {
			return nil, fmt.Errorf("progress: scanning lesson read: %w", err)
		}
		reads[r.Slug] = r
	}
	return reads, rows.Err()
}

// RecordFactorRun stores the outcome of a successful factoring run and
// returns the run's id.
func (s *Store) RecordFactorRun(res shor.Result, elapsed time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO factor_runs (id, n, factor1, factor2, base, ord, attempts, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, res.N, res.Factors[0], res.Factors[1], res.Base, res.Order,
		res.Attempts, elapsed.Milliseconds(), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("progress: recording factor run: %w", err)
	}
	return id, nil
}

// RecentRuns returns the latest factoring runs, newest first.
func (s *Store) RecentRuns(limit int) ([]FactorRun, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT id, n, factor1, factor2, base, ord, attempts, duration_ms, created_at
		FROM factor_runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("progress: querying runs: %w", err)
	}
	defer rows.Close()

	var runs []FactorRun
	for rows.Next() {
		var r FactorRun
		var ms int64
		if err := rows.Scan(&r.ID, &r.N, &r.Factors[0], &r.Factors[1], &r.Base, &r.Order, &r.Attempts, &ms, &r.When); err != nil {
			return nil, fmt.Errorf("progress: scanning run: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Reset clears all progress.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM lesson_reads; DELETE FROM factor_runs;`)
	if err != nil {
		return fmt.Errorf("progress: resetting: %w", err)
	}
	return nil
}
