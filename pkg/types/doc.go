// Package types provides shared domain types for the workflow index.
//
// The central type is Workflow, the derived metadata record the indexer
// extracts from one workflow JSON document:
//
//	wf := &types.Workflow{
//	    Filename:    "0001_slack_backup_scheduled.json",
//	    Name:        "Slack Backup Scheduled",
//	    TriggerType: types.TriggerScheduled,
//	    Complexity:  types.ComplexityMedium,
//	    NodeCount:   12,
//	}
//
// Trigger types classify what starts a workflow (Manual, Webhook, Scheduled,
// Triggered). Complexity tiers bucket workflows by node count: up to 5 nodes
// is low, 6-15 is medium, above 15 is high.
package types
