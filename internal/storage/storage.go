package storage

import (
	"context"
	"time"

	"github.com/Zie619/n8n-workflows/pkg/types"
)

// Store defines the interface for persisting and querying indexed workflow
// metadata. The indexer is the only writer; the searcher and the aggregation
// views are read-only consumers.
type Store interface {
	// Record operations
	UpsertWorkflow(ctx context.Context, wf *types.Workflow) error
	GetWorkflow(ctx context.Context, filename string) (*types.Workflow, error)
	GetFileHash(ctx context.Context, filename string) (string, error)
	DeleteWorkflow(ctx context.Context, filename string) error
	ListWorkflows(ctx context.Context) ([]*types.Workflow, error)

	// Search operations
	Search(ctx context.Context, params SearchParams) ([]*types.Workflow, int, error)

	// Aggregation views
	GetStats(ctx context.Context) (*Stats, error)
	ListIntegrations(ctx context.Context) ([]string, error)

	Close() error
}

// SearchParams describes one search against the index. Match is a prebuilt
// FTS5 expression; empty means match-all. Empty TriggerType/Complexity mean
// no filter on that column.
type SearchParams struct {
	Match       string
	TriggerType string
	Complexity  string
	ActiveOnly  bool
	Limit       int
	Offset      int
}

// Stats aggregates the whole index.
type Stats struct {
	Total              int
	Active             int
	Inactive           int
	Triggers           map[string]int
	Complexity         map[string]int
	TotalNodes         int
	UniqueIntegrations int
	LastIndexed        time.Time
}
