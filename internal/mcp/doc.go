// Package mcp implements the Model Context Protocol (MCP) server for the
// workflow index.
//
// The server exposes eight tools to MCP clients:
//   - index_workflows: Scan the corpus and index new or changed files
//   - search_workflows: Full-text search with filters and pagination
//   - get_workflow: One workflow's metadata plus its raw JSON document
//   - get_workflow_diagram: A workflow's node graph as Mermaid source
//   - get_stats: Corpus-wide totals and histograms
//   - list_integrations: Sorted union of referenced integrations
//   - list_categories: Workflows bucketed into service categories
//   - category_mappings: Filename to category for every workflow
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// # Basic Usage
//
// The server is started by the workflowdb binary and listens on stdin
// for protocol messages, writing responses to stdout. Diagnostic output
// goes to stderr so it never corrupts the protocol stream.
//
// # Tool: index_workflows
//
//	Request:
//	{
//	  "name": "index_workflows",
//	  "arguments": {"force": false}
//	}
//
//	Response:
//	{
//	  "processed": 212,
//	  "skipped": 1834,
//	  "errors": 3,
//	  "total": 2049,
//	  "duration_ms": 1840
//	}
//
// Only one indexing run executes at a time; concurrent calls fail with
// an indexing-in-progress error.
//
// # Tool: search_workflows
//
//	Request:
//	{
//	  "name": "search_workflows",
//	  "arguments": {
//	    "query": "telegram notification",
//	    "trigger": "Webhook",
//	    "complexity": "all",
//	    "active_only": false,
//	    "limit": 20,
//	    "offset": 0
//	  }
//	}
//
// The response carries one page of workflow summaries plus total,
// limit, offset, and has_more so callers can page through results.
//
// # Error Handling
//
// Invalid parameters (bad filter values, malformed arguments) are
// protocol errors. A lookup that finds nothing is a normal result with
// "found": false, not an error.
package mcp
