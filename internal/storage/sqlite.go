package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Zie619/n8n-workflows/pkg/types"
)

// ErrNotFound is returned when a requested record doesn't exist
var ErrNotFound = errors.New("not found")

// SQLiteStore implements the Store interface using SQLite with an FTS5
// shadow table kept in sync by triggers.
type SQLiteStore struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Single connection: each upsert is one statement, so a concurrent
	// reader waits at most one record's write.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// NewSQLiteStore opens (creating if necessary) the index database at dbPath
// and applies any pending migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const workflowColumns = `id, filename, name, workflow_id, folder, active, trigger_type,
       complexity, node_count, integrations, tags, description,
       created_at, updated_at, file_hash, file_size, analyzed_at`

// UpsertWorkflow inserts or replaces the record keyed by filename. The write
// is a single statement, so the FTS triggers fire in the same transaction
// and a reader never observes the record without its shadow entry.
func (s *SQLiteStore) UpsertWorkflow(ctx context.Context, wf *types.Workflow) error {
	integrations, err := json.Marshal(orEmpty(wf.Integrations))
	if err != nil {
		return fmt.Errorf("failed to encode integrations: %w", err)
	}
	tags, err := json.Marshal(orEmpty(wf.Tags))
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	if wf.AnalyzedAt.IsZero() {
		wf.AnalyzedAt = time.Now()
	}

	query := `
		INSERT INTO workflows (
			filename, name, workflow_id, folder, active, trigger_type,
			complexity, node_count, integrations, tags, description,
			created_at, updated_at, file_hash, file_size, analyzed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			name = excluded.name,
			workflow_id = excluded.workflow_id,
			folder = excluded.folder,
			active = excluded.active,
			trigger_type = excluded.trigger_type,
			complexity = excluded.complexity,
			node_count = excluded.node_count,
			integrations = excluded.integrations,
			tags = excluded.tags,
			description = excluded.description,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			file_hash = excluded.file_hash,
			file_size = excluded.file_size,
			analyzed_at = excluded.analyzed_at
		RETURNING id
	`
	err = s.db.QueryRowContext(ctx, query,
		wf.Filename, wf.Name, wf.WorkflowID, wf.Folder, wf.Active, string(wf.TriggerType),
		string(wf.Complexity), wf.NodeCount, string(integrations), string(tags), wf.Description,
		wf.CreatedAt, wf.UpdatedAt, wf.FileHash, wf.FileSize, wf.AnalyzedAt).Scan(&wf.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert workflow: %w", err)
	}
	return nil
}

// GetWorkflow returns the record for filename, or ErrNotFound.
func (s *SQLiteStore) GetWorkflow(ctx context.Context, filename string) (*types.Workflow, error) {
	query := `SELECT ` + workflowColumns + ` FROM workflows WHERE filename = ?`
	wf, err := scanWorkflow(s.db.QueryRowContext(ctx, query, filename))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return wf, nil
}

// GetFileHash returns only the stored content fingerprint for filename, or
// ErrNotFound. The indexer uses this for its skip decision without loading
// the full record.
func (s *SQLiteStore) GetFileHash(ctx context.Context, filename string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, "SELECT file_hash FROM workflows WHERE filename = ?", filename).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

// DeleteWorkflow removes the record for filename. Deleting a missing record
// is not an error.
func (s *SQLiteStore) DeleteWorkflow(ctx context.Context, filename string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM workflows WHERE filename = ?", filename)
	return err
}

// ListWorkflows returns every record ordered by filename.
func (s *SQLiteStore) ListWorkflows(ctx context.Context) ([]*types.Workflow, error) {
	query := `SELECT ` + workflowColumns + ` FROM workflows ORDER BY filename`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanWorkflows(rows)
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkflow(row scanner) (*types.Workflow, error) {
	var wf types.Workflow
	var active int
	var trigger, complexity, integrations, tags string

	err := row.Scan(
		&wf.ID, &wf.Filename, &wf.Name, &wf.WorkflowID, &wf.Folder, &active, &trigger,
		&complexity, &wf.NodeCount, &integrations, &tags, &wf.Description,
		&wf.CreatedAt, &wf.UpdatedAt, &wf.FileHash, &wf.FileSize, &wf.AnalyzedAt,
	)
	if err != nil {
		return nil, err
	}

	wf.Active = active != 0
	wf.TriggerType = types.TriggerType(trigger)
	wf.Complexity = types.Complexity(complexity)
	if err := json.Unmarshal([]byte(integrations), &wf.Integrations); err != nil {
		return nil, fmt.Errorf("failed to decode integrations for %s: %w", wf.Filename, err)
	}
	if err := json.Unmarshal([]byte(tags), &wf.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags for %s: %w", wf.Filename, err)
	}
	return &wf, nil
}

func scanWorkflows(rows *sql.Rows) ([]*types.Workflow, error) {
	workflows := make([]*types.Workflow, 0)
	for rows.Next() {
		wf, err := scanWorkflow(rows)
		if err != nil {
			return nil, err
		}
		workflows = append(workflows, wf)
	}
	return workflows, rows.Err()
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
