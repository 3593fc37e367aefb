package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
)

// GetStats computes the aggregate view of the whole index.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		Triggers:   make(map[string]int),
		Complexity: make(map[string]int),
	}

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(active), 0), COALESCE(SUM(node_count), 0) FROM workflows").
		Scan(&stats.Total, &stats.Active, &stats.TotalNodes)
	if err != nil {
		return nil, err
	}
	stats.Inactive = stats.Total - stats.Active

	if err := s.histogram(ctx, "trigger_type", stats.Triggers); err != nil {
		return nil, err
	}
	if err := s.histogram(ctx, "complexity", stats.Complexity); err != nil {
		return nil, err
	}

	integrations, err := s.integrationUnion(ctx)
	if err != nil {
		return nil, err
	}
	stats.UniqueIntegrations = len(integrations)

	var lastIndexed sql.NullTime
	err = s.db.QueryRowContext(ctx,
		"SELECT analyzed_at FROM workflows ORDER BY analyzed_at DESC LIMIT 1").Scan(&lastIndexed)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if lastIndexed.Valid {
		stats.LastIndexed = lastIndexed.Time
	}

	return stats, nil
}

// ListIntegrations returns the sorted, deduplicated union of every record's
// integration set.
func (s *SQLiteStore) ListIntegrations(ctx context.Context) ([]string, error) {
	union, err := s.integrationUnion(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(union))
	for name := range union {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *SQLiteStore) histogram(ctx context.Context, column string, into map[string]int) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+column+", COUNT(*) FROM workflows GROUP BY "+column)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		into[key] = count
	}
	return rows.Err()
}

// integrationUnion decodes every record's integrations column and unions
// them. The column holds small JSON arrays, so this stays cheap at corpus
// scale (thousands of rows).
func (s *SQLiteStore) integrationUnion(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT integrations FROM workflows WHERE integrations != '[]'")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	union := make(map[string]struct{})
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var names []string
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			return nil, err
		}
		for _, name := range names {
			union[name] = struct{}{}
		}
	}
	return union, rows.Err()
}
