package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Zie619/n8n-workflows/internal/analyzer"
	"github.com/Zie619/n8n-workflows/internal/indexer"
	"github.com/Zie619/n8n-workflows/internal/searcher"
	"github.com/Zie619/n8n-workflows/internal/storage"
	"github.com/Zie619/n8n-workflows/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodeIndexingInProgress = -32001 // Another indexing run is already in flight
)

// handleIndexWorkflows handles the index_workflows tool invocation
func (s *Server) handleIndexWorkflows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	force := getBoolDefault(args, "force", false)

	// One run at a time. Concurrent invocations get a clean error rather
	// than racing each other over the same rows.
	if !s.lock.TryAcquire() {
		return nil, newMCPError(ErrorCodeIndexingInProgress, "an indexing run is already in progress", nil)
	}
	defer s.lock.Release()

	stats, err := s.indexer.IndexCorpus(ctx, &indexer.Config{
		Workers:      s.workers,
		ForceReindex: force,
	})
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "indexing failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Cached search pages may now describe stale rows.
	s.searcher.Invalidate()

	response := map[string]interface{}{
		"processed":   stats.Processed,
		"skipped":     stats.Skipped,
		"errors":      stats.Errors,
		"total":       stats.Total,
		"duration_ms": stats.Duration.Milliseconds(),
	}
	if len(stats.ErrorMessages) > 0 {
		if len(stats.ErrorMessages) > 5 {
			response["error_messages"] = stats.ErrorMessages[:5]
		} else {
			response["error_messages"] = stats.ErrorMessages
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSearchWorkflows handles the search_workflows tool invocation
func (s *Server) handleSearchWorkflows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	req := searcher.Request{
		Query:      getStringDefault(args, "query", ""),
		Trigger:    getStringDefault(args, "trigger", searcher.FilterAll),
		Complexity: getStringDefault(args, "complexity", searcher.FilterAll),
		ActiveOnly: getBoolDefault(args, "active_only", false),
		Limit:      getIntDefault(args, "limit", searcher.DefaultLimit),
		Offset:     getIntDefault(args, "offset", 0),
	}

	result, err := s.searcher.Search(ctx, req)
	if errors.Is(err, searcher.ErrInvalidTriggerFilter) || errors.Is(err, searcher.ErrInvalidComplexityFilter) {
		return nil, newMCPError(ErrorCodeInvalidParams, err.Error(), nil)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	workflows := make([]map[string]interface{}, 0, len(result.Workflows))
	for _, wf := range result.Workflows {
		workflows = append(workflows, workflowSummary(wf))
	}

	response := map[string]interface{}{
		"workflows": workflows,
		"total":     result.Total,
		"limit":     result.Limit,
		"offset":    result.Offset,
		"has_more":  result.HasMore,
		"query":     result.Query,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetWorkflow handles the get_workflow tool invocation
func (s *Server) handleGetWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	filename, ok := args["filename"].(string)
	if !ok || filename == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "filename parameter is required", map[string]interface{}{
			"param":  "filename",
			"reason": "missing or empty",
		})
	}

	wf, err := s.store.GetWorkflow(ctx, filename)
	if errors.Is(err, storage.ErrNotFound) {
		// Not a protocol error: the caller asked a well-formed question
		// with a negative answer.
		response := map[string]interface{}{
			"found":    false,
			"filename": filename,
			"message":  "Workflow not indexed. Run index_workflows first.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load workflow", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"found":    true,
		"workflow": workflowDetail(wf),
	}

	// The raw document is read from disk on demand, never stored.
	raw, err := os.ReadFile(filepath.Join(s.corpusDir, filepath.FromSlash(wf.Folder), wf.Filename))
	if err != nil {
		response["raw_document"] = nil
		response["raw_error"] = fmt.Sprintf("source file unavailable: %v", err)
	} else {
		response["raw_document"] = json.RawMessage(raw)
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetWorkflowDiagram handles the get_workflow_diagram tool invocation
func (s *Server) handleGetWorkflowDiagram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	filename, ok := args["filename"].(string)
	if !ok || filename == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "filename parameter is required", map[string]interface{}{
			"param":  "filename",
			"reason": "missing or empty",
		})
	}

	wf, err := s.store.GetWorkflow(ctx, filename)
	if errors.Is(err, storage.ErrNotFound) {
		response := map[string]interface{}{
			"found":    false,
			"filename": filename,
			"message":  "Workflow not indexed. Run index_workflows first.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load workflow", map[string]interface{}{
			"error": err.Error(),
		})
	}

	raw, err := os.ReadFile(filepath.Join(s.corpusDir, filepath.FromSlash(wf.Folder), wf.Filename))
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "source file unavailable", map[string]interface{}{
			"error": err.Error(),
		})
	}

	diagram, err := analyzer.MermaidDiagram(raw)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to generate diagram", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"found":    true,
		"filename": filename,
		"diagram":  diagram,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStats handles the get_stats tool invocation
func (s *Server) handleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to compute stats", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"total":               stats.Total,
		"active":              stats.Active,
		"inactive":            stats.Inactive,
		"triggers":            stats.Triggers,
		"complexity":          stats.Complexity,
		"total_nodes":         stats.TotalNodes,
		"unique_integrations": stats.UniqueIntegrations,
	}
	if !stats.LastIndexed.IsZero() {
		response["last_indexed"] = stats.LastIndexed.Format("2006-01-02T15:04:05Z07:00")
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListIntegrations handles the list_integrations tool invocation
func (s *Server) handleListIntegrations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	integrations, err := s.store.ListIntegrations(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list integrations", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"integrations": integrations,
		"count":        len(integrations),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListCategories handles the list_categories tool invocation
func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	buckets, err := s.classifier.GroupWorkflows(ctx, s.store)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to group workflows", map[string]interface{}{
			"error": err.Error(),
		})
	}

	shaped := make([]map[string]interface{}, 0, len(buckets))
	for _, bucket := range buckets {
		members := make([]map[string]interface{}, 0, len(bucket.Workflows))
		for _, wf := range bucket.Workflows {
			members = append(members, workflowSummary(wf))
		}
		shaped = append(shaped, map[string]interface{}{
			"name":      bucket.Name,
			"count":     bucket.Count,
			"workflows": members,
		})
	}

	response := map[string]interface{}{
		"categories": shaped,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleCategoryMappings handles the category_mappings tool invocation
func (s *Server) handleCategoryMappings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mapping, err := s.classifier.Mapping(ctx, s.store)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to map workflows", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"mappings": mapping,
		"count":    len(mapping),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Response shaping

// workflowSummary is the search-result projection of a workflow.
func workflowSummary(wf *types.Workflow) map[string]interface{} {
	return map[string]interface{}{
		"filename":     wf.Filename,
		"name":         wf.Name,
		"folder":       wf.Folder,
		"active":       wf.Active,
		"trigger_type": wf.TriggerType,
		"complexity":   wf.Complexity,
		"node_count":   wf.NodeCount,
		"integrations": wf.Integrations,
		"tags":         wf.Tags,
		"description":  wf.Description,
	}
}

// workflowDetail extends the summary with provenance fields.
func workflowDetail(wf *types.Workflow) map[string]interface{} {
	detail := workflowSummary(wf)
	detail["workflow_id"] = wf.WorkflowID
	detail["created_at"] = wf.CreatedAt
	detail["updated_at"] = wf.UpdatedAt
	detail["file_hash"] = wf.FileHash
	detail["file_size"] = wf.FileSize
	if !wf.AnalyzedAt.IsZero() {
		detail["analyzed_at"] = wf.AnalyzedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return detail
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// arguments extracts the request argument map, tolerating absent args.
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
