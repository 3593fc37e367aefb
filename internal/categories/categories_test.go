package categories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zie619/n8n-workflows/internal/storage"
	"github.com/Zie619/n8n-workflows/pkg/types"
)

func TestCategorize(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name         string
		integrations []string
		want         string
	}{
		{"messaging service", []string{"Telegram"}, "Messaging"},
		{"email service", []string{"Gmail"}, "Email"},
		{"development service", []string{"Github"}, "Development"},
		{"case insensitive", []string{"SLACK"}, "Messaging"},
		{"substring match", []string{"GooglesheetsTrigger"}, "Cloud Storage"},
		{"no match falls back", []string{"Frobnicator"}, Fallback},
		{"empty integrations fall back", nil, Fallback},
		{"first rule wins", []string{"Stripe", "Telegram"}, "Messaging"},
		{"rule order beats integration order", []string{"Github", "Gmail"}, "Email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Categorize(tt.integrations))
		})
	}
}

func TestCategorize_CustomRules(t *testing.T) {
	c := NewClassifier([]Rule{
		{Name: "Internal", Match: []string{"ourtool"}},
	})

	assert.Equal(t, "Internal", c.Categorize([]string{"OurTool"}))
	// Custom rules replace the built-ins entirely.
	assert.Equal(t, Fallback, c.Categorize([]string{"Telegram"}))
}

func TestNames(t *testing.T) {
	names := NewClassifier(nil).Names()
	assert.Equal(t, "Messaging", names[0])
	assert.Equal(t, Fallback, names[len(names)-1])
}

func seedWorkflow(t *testing.T, store storage.Store, filename string, integrations []string) {
	t.Helper()
	require.NoError(t, store.UpsertWorkflow(context.Background(), &types.Workflow{
		Filename:     filename,
		Name:         filename,
		TriggerType:  types.TriggerManual,
		Complexity:   types.ComplexityLow,
		Integrations: integrations,
		Tags:         []string{},
		FileHash:     "hash-" + filename,
		AnalyzedAt:   time.Now().UTC(),
	}))
}

func TestGroupWorkflows(t *testing.T) {
	store, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	seedWorkflow(t, store, "a.json", []string{"Telegram"})
	seedWorkflow(t, store, "b.json", []string{"Slack"})
	seedWorkflow(t, store, "c.json", []string{"Gmail"})
	seedWorkflow(t, store, "d.json", []string{"Frobnicator"})

	buckets, err := NewClassifier(nil).GroupWorkflows(context.Background(), store)
	require.NoError(t, err)

	require.Len(t, buckets, 3)
	assert.Equal(t, "Messaging", buckets[0].Name)
	assert.Equal(t, 2, buckets[0].Count)
	require.Len(t, buckets[0].Workflows, 2)
	assert.Equal(t, "a.json", buckets[0].Workflows[0].Filename)
	assert.Equal(t, "b.json", buckets[0].Workflows[1].Filename)

	// Equal counts tie-break on name.
	assert.Equal(t, "Email", buckets[1].Name)
	require.Len(t, buckets[1].Workflows, 1)
	assert.Equal(t, "c.json", buckets[1].Workflows[0].Filename)
	assert.Equal(t, "Other", buckets[2].Name)
}

func TestMapping(t *testing.T) {
	store, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	seedWorkflow(t, store, "a.json", []string{"Telegram"})
	seedWorkflow(t, store, "b.json", nil)

	mapping, err := NewClassifier(nil).Mapping(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"a.json": "Messaging",
		"b.json": "Other",
	}, mapping)
}
