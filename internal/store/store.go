// Package store persists solve results in a local SQLite database so
// the CLI can reuse and list past solves. The solving core never
// touches it.
package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/gridlock/pkg/gridlock"
	"github.com/mesh-intelligence/gridlock/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

const dbFileName = "gridlock.db"

// Record is one row of solve history.
type Record struct {
	ID        string        `json:"id"`
	Puzzle    string        `json:"puzzle"`
	Solutions []string      `json:"solutions"`
	Truncated bool          `json:"truncated"`
	Nodes     int64         `json:"nodes"`
	Elapsed   time.Duration `json:"elapsed"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store is a SQLite-backed solve-history store. Callers attach with a
// Config, read and write records, and detach when done.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// New creates a Store. It is not attached; call Attach with a Config
// to open the database.
func New() *Store {
	return &Store{}
}

// Attach opens (or creates) the database under config.DataDir and
// applies the schema. Returns ErrAlreadyAttached if called while
// attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	s.db = db
	s.config = config
	s.attached = true
	return nil
}

// Detach closes the database. Idempotent: detaching a detached store
// succeeds. After Detach, record operations return ErrStoreDetached.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.attached = false
	return err
}

// Save records the result of solving puzzle, replacing any previous
// record for the same puzzle. Returns the record ID.
func (s *Store) Save(puzzle string, res *gridlock.Result) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return "", types.ErrStoreDetached
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate ID: %w", err)
	}
	sols, err := json.Marshal(solutionStrings(res.Solutions))
	if err != nil {
		return "", fmt.Errorf("encode solutions: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO solves (id, puzzle, solutions, truncated, nodes, elapsed_ns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(puzzle) DO UPDATE SET
			solutions = excluded.solutions,
			truncated = excluded.truncated,
			nodes = excluded.nodes,
			elapsed_ns = excluded.elapsed_ns,
			created_at = excluded.created_at`,
		id.String(), puzzle, string(sols), boolToInt(res.Truncated),
		res.Stats.Nodes, int64(res.Stats.Duration),
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("save record: %w", err)
	}
	return id.String(), nil
}

// Get returns the record for a puzzle. Returns ErrNotFound if the
// puzzle has never been solved through this store.
func (s *Store) Get(puzzle string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}

	row := s.db.QueryRow(`
		SELECT id, puzzle, solutions, truncated, nodes, elapsed_ns, created_at
		FROM solves WHERE puzzle = ?`, puzzle)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// List returns all records, newest first.
func (s *Store) List() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := s.db.Query(`
		SELECT id, puzzle, solutions, truncated, nodes, elapsed_ns, created_at
		FROM solves ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list records: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		rec       Record
		sols      string
		truncated int
		elapsed   int64
		created   string
	)
	if err := row.Scan(&rec.ID, &rec.Puzzle, &sols, &truncated, &rec.Nodes, &elapsed, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(sols), &rec.Solutions); err != nil {
		return nil, fmt.Errorf("decode solutions: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("decode created_at: %w", err)
	}
	rec.Truncated = truncated != 0
	rec.Elapsed = time.Duration(elapsed)
	rec.CreatedAt = ts
	return &rec, nil
}

// solutionStrings folds solutions into their 81-digit string forms.
func solutionStrings(sols [][]int) []string {
	out := make([]string, len(sols))
	for i, sol := range sols {
		b := make([]byte, len(sol))
		for j, v := range sol {
			b[j] = byte('0' + v)
		}
		out[i] = string(b)
	}
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
