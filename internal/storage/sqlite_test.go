package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zie619/n8n-workflows/pkg/types"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testWorkflow(filename, name string) *types.Workflow {
	return &types.Workflow{
		Filename:     filename,
		Name:         name,
		Folder:       "",
		Active:       true,
		TriggerType:  types.TriggerWebhook,
		Complexity:   types.ComplexityLow,
		NodeCount:    3,
		Integrations: []string{"Slack"},
		Tags:         []string{"ops"},
		Description:  "Webhook workflow integrating Slack. Uses 3 nodes (low complexity).",
		FileHash:     "hash-" + filename,
		FileSize:     128,
		AnalyzedAt:   time.Now().UTC(),
	}
}

func TestUpsertAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	wf := testWorkflow("0001_slack_alert.json", "Slack Alert")
	wf.WorkflowID = "abc123"
	wf.CreatedAt = "2024-01-15T10:00:00Z"
	require.NoError(t, store.UpsertWorkflow(ctx, wf))
	assert.NotZero(t, wf.ID)

	got, err := store.GetWorkflow(ctx, "0001_slack_alert.json")
	require.NoError(t, err)
	assert.Equal(t, wf.ID, got.ID)
	assert.Equal(t, "Slack Alert", got.Name)
	assert.Equal(t, "abc123", got.WorkflowID)
	assert.Equal(t, "2024-01-15T10:00:00Z", got.CreatedAt)
	assert.Equal(t, []string{"Slack"}, got.Integrations)
	assert.Equal(t, []string{"ops"}, got.Tags)
	assert.True(t, got.Active)
}

func TestUpsertReplacesByFilename(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	wf := testWorkflow("wf.json", "First Name")
	require.NoError(t, store.UpsertWorkflow(ctx, wf))
	firstID := wf.ID

	updated := testWorkflow("wf.json", "Second Name")
	updated.FileHash = "hash-v2"
	updated.NodeCount = 7
	updated.Complexity = types.ComplexityMedium
	require.NoError(t, store.UpsertWorkflow(ctx, updated))

	// Still one row, same rowid, new values.
	assert.Equal(t, firstID, updated.ID)

	all, err := store.ListWorkflows(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Second Name", all[0].Name)
	assert.Equal(t, "hash-v2", all[0].FileHash)
	assert.Equal(t, 7, all[0].NodeCount)
}

func TestGetFileHash(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertWorkflow(ctx, testWorkflow("wf.json", "Name")))

	hash, err := store.GetFileHash(ctx, "wf.json")
	require.NoError(t, err)
	assert.Equal(t, "hash-wf.json", hash)

	_, err = store.GetFileHash(ctx, "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetWorkflowNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetWorkflow(context.Background(), "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteWorkflow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertWorkflow(ctx, testWorkflow("wf.json", "Name")))
	require.NoError(t, store.DeleteWorkflow(ctx, "wf.json"))

	_, err := store.GetWorkflow(ctx, "wf.json")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleted rows no longer match full-text queries.
	results, total, err := store.Search(ctx, SearchParams{Match: `"Name"*`, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, results)
}

func TestSearch_FullText(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	wf1 := testWorkflow("0001_slack_alert.json", "Slack Alert")
	wf2 := testWorkflow("0002_gmail_digest.json", "Gmail Digest")
	wf2.Integrations = []string{"Gmail"}
	wf2.Description = "Scheduled workflow integrating Gmail. Uses 3 nodes (low complexity)."
	require.NoError(t, store.UpsertWorkflow(ctx, wf1))
	require.NoError(t, store.UpsertWorkflow(ctx, wf2))

	results, total, err := store.Search(ctx, SearchParams{Match: `"slack"*`, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "0001_slack_alert.json", results[0].Filename)
}

func TestSearch_ReflectsUpdates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	wf := testWorkflow("wf.json", "Slack Alert")
	require.NoError(t, store.UpsertWorkflow(ctx, wf))

	updated := testWorkflow("wf.json", "Telegram Alert")
	updated.Integrations = []string{"Telegram"}
	updated.Description = "Webhook workflow integrating Telegram. Uses 3 nodes (low complexity)."
	require.NoError(t, store.UpsertWorkflow(ctx, updated))

	// The old text must not match anymore; the new text must.
	_, total, err := store.Search(ctx, SearchParams{Match: `"slack"*`, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)

	results, total, err := store.Search(ctx, SearchParams{Match: `"telegram"*`, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "Telegram Alert", results[0].Name)
}

func TestSearch_Filters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	webhook := testWorkflow("a.json", "Webhook One")
	scheduled := testWorkflow("b.json", "Scheduled One")
	scheduled.TriggerType = types.TriggerScheduled
	scheduled.Complexity = types.ComplexityHigh
	scheduled.NodeCount = 20
	inactive := testWorkflow("c.json", "Webhook Two")
	inactive.Active = false
	require.NoError(t, store.UpsertWorkflow(ctx, webhook))
	require.NoError(t, store.UpsertWorkflow(ctx, scheduled))
	require.NoError(t, store.UpsertWorkflow(ctx, inactive))

	t.Run("trigger filter", func(t *testing.T) {
		results, total, err := store.Search(ctx, SearchParams{TriggerType: string(types.TriggerScheduled), Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, results, 1)
		assert.Equal(t, "b.json", results[0].Filename)
	})

	t.Run("complexity filter", func(t *testing.T) {
		_, total, err := store.Search(ctx, SearchParams{Complexity: string(types.ComplexityLow), Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("active only", func(t *testing.T) {
		results, total, err := store.Search(ctx, SearchParams{ActiveOnly: true, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		for _, wf := range results {
			assert.True(t, wf.Active)
		}
	})

	t.Run("filters combine with match", func(t *testing.T) {
		results, total, err := store.Search(ctx, SearchParams{
			Match:       `"webhook"*`,
			TriggerType: string(types.TriggerWebhook),
			ActiveOnly:  true,
			Limit:       10,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, results, 1)
		assert.Equal(t, "a.json", results[0].Filename)
	})
}

func TestSearch_PaginationAndOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	names := []string{"delta", "alpha", "Charlie", "bravo"}
	for i, name := range names {
		wf := testWorkflow(fmt.Sprintf("%d.json", i), name)
		require.NoError(t, store.UpsertWorkflow(ctx, wf))
	}

	page1, total, err := store.Search(ctx, SearchParams{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, page1, 2)

	page2, total, err := store.Search(ctx, SearchParams{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, page2, 2)

	// Case-insensitive name ordering across the full result set.
	got := []string{page1[0].Name, page1[1].Name, page2[0].Name, page2[1].Name}
	assert.Equal(t, []string{"alpha", "bravo", "Charlie", "delta"}, got)
}

func TestSearch_EmptyIndex(t *testing.T) {
	store := newTestStore(t)

	results, total, err := store.Search(context.Background(), SearchParams{Match: `"anything"*`, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, results)
}

func TestGetStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("empty index", func(t *testing.T) {
		stats, err := store.GetStats(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.Total)
		assert.Zero(t, stats.TotalNodes)
		assert.True(t, stats.LastIndexed.IsZero())
	})

	wf1 := testWorkflow("a.json", "One")
	wf1.Integrations = []string{"Slack", "Gmail"}
	wf2 := testWorkflow("b.json", "Two")
	wf2.Active = false
	wf2.TriggerType = types.TriggerScheduled
	wf2.Complexity = types.ComplexityHigh
	wf2.NodeCount = 20
	wf2.Integrations = []string{"Slack", "Telegram"}
	require.NoError(t, store.UpsertWorkflow(ctx, wf1))
	require.NoError(t, store.UpsertWorkflow(ctx, wf2))

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Inactive)
	assert.Equal(t, 23, stats.TotalNodes)
	assert.Equal(t, map[string]int{"Webhook": 1, "Scheduled": 1}, stats.Triggers)
	assert.Equal(t, map[string]int{"low": 1, "high": 1}, stats.Complexity)
	assert.Equal(t, 3, stats.UniqueIntegrations)
	assert.False(t, stats.LastIndexed.IsZero())
}

func TestListIntegrations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	wf1 := testWorkflow("a.json", "One")
	wf1.Integrations = []string{"Slack", "Gmail"}
	wf2 := testWorkflow("b.json", "Two")
	wf2.Integrations = []string{"Slack", "Airtable"}
	wf3 := testWorkflow("c.json", "Three")
	wf3.Integrations = nil
	require.NoError(t, store.UpsertWorkflow(ctx, wf1))
	require.NoError(t, store.UpsertWorkflow(ctx, wf2))
	require.NoError(t, store.UpsertWorkflow(ctx, wf3))

	integrations, err := store.ListIntegrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Airtable", "Gmail", "Slack"}, integrations)
}

func TestMigrationsIdempotentOnDisk(t *testing.T) {
	dbPath := t.TempDir() + "/workflows.db"

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.UpsertWorkflow(context.Background(), testWorkflow("wf.json", "Name")))
	require.NoError(t, store.Close())

	// Reopening an already-migrated database must not fail or lose rows.
	store2, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer func() { _ = store2.Close() }()

	all, err := store2.ListWorkflows(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
