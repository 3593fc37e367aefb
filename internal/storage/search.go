package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Zie619/n8n-workflows/pkg/types"
)

// Search runs one filtered, paginated query against the index and returns
// the page plus the total count of matching records. Results are ordered by
// name (case-insensitive) with filename as tiebreak, so repeated identical
// queries against an unchanged index return identical pages.
func (s *SQLiteStore) Search(ctx context.Context, params SearchParams) ([]*types.Workflow, int, error) {
	var (
		from  string
		where []string
		args  []interface{}
	)

	if params.Match != "" {
		// The FTS table name must appear unaliased on the left of MATCH;
		// SQLite does not resolve an alias there.
		from = `FROM workflows_fts JOIN workflows w ON w.id = workflows_fts.rowid`
		where = append(where, "workflows_fts MATCH ?")
		args = append(args, params.Match)
	} else {
		from = `FROM workflows w`
	}

	if params.TriggerType != "" {
		where = append(where, "w.trigger_type = ?")
		args = append(args, params.TriggerType)
	}
	if params.Complexity != "" {
		where = append(where, "w.complexity = ?")
		args = append(args, params.Complexity)
	}
	if params.ActiveOnly {
		where = append(where, "w.active = 1")
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	// Total reflects the filtered-but-unpaginated count.
	var total int
	countQuery := `SELECT COUNT(*) ` + from + clause
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	query := `SELECT ` + prefixedWorkflowColumns + ` ` + from + clause +
		` ORDER BY w.name COLLATE NOCASE ASC, w.filename ASC LIMIT ? OFFSET ?`
	pageArgs := append(append([]interface{}{}, args...), params.Limit, params.Offset)

	rows, err := s.db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search workflows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results, err := scanWorkflows(rows)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

const prefixedWorkflowColumns = `w.id, w.filename, w.name, w.workflow_id, w.folder, w.active, w.trigger_type,
       w.complexity, w.node_count, w.integrations, w.tags, w.description,
       w.created_at, w.updated_at, w.file_hash, w.file_size, w.analyzed_at`
