package types

import "time"

// TriggerType classifies what starts a workflow.
type TriggerType string

const (
	TriggerManual    TriggerType = "Manual"
	TriggerWebhook   TriggerType = "Webhook"
	TriggerScheduled TriggerType = "Scheduled"
	TriggerTriggered TriggerType = "Triggered"
)

// ValidTriggerType reports whether s is a known trigger classification.
func ValidTriggerType(s string) bool {
	switch TriggerType(s) {
	case TriggerManual, TriggerWebhook, TriggerScheduled, TriggerTriggered:
		return true
	}
	return false
}

// Complexity buckets workflows by node count.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// ComplexityForNodeCount maps a node count to its complexity tier.
func ComplexityForNodeCount(n int) Complexity {
	switch {
	case n <= 5:
		return ComplexityLow
	case n <= 15:
		return ComplexityMedium
	default:
		return ComplexityHigh
	}
}

// ValidComplexity reports whether s is a known complexity tier.
func ValidComplexity(s string) bool {
	switch Complexity(s) {
	case ComplexityLow, ComplexityMedium, ComplexityHigh:
		return true
	}
	return false
}

// Workflow is the indexed metadata for one workflow document.
// The filename is the natural key; the source file remains the system of
// record for full document content.
type Workflow struct {
	ID           int64
	Filename     string
	Name         string
	WorkflowID   string // opaque "id" field from the source document
	Folder       string // path segment relative to the corpus root, "" at root
	Active       bool
	TriggerType  TriggerType
	Complexity   Complexity
	NodeCount    int
	Integrations []string
	Tags         []string
	Description  string
	CreatedAt    string // opaque source timestamps, never reparsed
	UpdatedAt    string
	FileHash     string // sha256 hex of the source file at analysis time
	FileSize     int64
	AnalyzedAt   time.Time
}
