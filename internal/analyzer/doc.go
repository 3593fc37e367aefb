// Package analyzer derives searchable metadata from workflow JSON documents.
//
// One call to Analyze reads one document and produces a fully specified
// types.Workflow: node count, complexity tier, trigger classification,
// integration set, a readable name, a one-line description, and a sha256
// content fingerprint for change detection.
//
// # Trigger classification
//
// Each node's type identifier is matched against substrings, in order:
//
//	webhook          -> Webhook
//	cron, schedule   -> Scheduled
//	trigger          -> Triggered
//
// A document with no matching node is Manual. The classification from the
// last matching node wins; this mirrors the behavior the rest of the corpus
// tooling has always exhibited and is relied on by existing indexes.
//
// # Integrations
//
// The second segment of a dotted node type names the integrated service
// ("n8n-nodes-base.slack" -> "Slack"). The literal segments "core" and
// "base" are infrastructure nodes and are skipped. The resulting set is
// deduplicated and sorted.
//
// # Failure isolation
//
// Unreadable or malformed documents return *AnalysisError. Callers indexing
// a corpus count these and continue; a bad file never aborts a batch.
package analyzer
