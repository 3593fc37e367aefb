package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// indexWorkflowsTool returns the tool definition for index_workflows
func indexWorkflowsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_workflows",
		Description: "Scan the workflow corpus and index new or changed workflow files",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"force": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, re-index every file ignoring stored content hashes (full rebuild)",
					"default":     false,
				},
			},
		},
	}
}

// searchWorkflowsTool returns the tool definition for search_workflows
func searchWorkflowsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_workflows",
		Description: "Full-text search over indexed workflows with optional filters and pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text query. Quoted phrases match exactly; other terms are prefix-matched. Empty matches everything.",
					"default":     "",
				},
				"trigger": map[string]interface{}{
					"type":        "string",
					"description": "Filter by trigger type",
					"enum":        []string{"all", "Manual", "Webhook", "Scheduled", "Triggered"},
					"default":     "all",
				},
				"complexity": map[string]interface{}{
					"type":        "string",
					"description": "Filter by complexity bucket",
					"enum":        []string{"all", "low", "medium", "high"},
					"default":     "all",
				},
				"active_only": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, return only active workflows",
					"default":     false,
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results per page (1-100)",
					"default":     50,
					"minimum":     1,
					"maximum":     100,
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Number of results to skip",
					"default":     0,
					"minimum":     0,
				},
			},
		},
	}
}

// getWorkflowTool returns the tool definition for get_workflow
func getWorkflowTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_workflow",
		Description: "Fetch one workflow's indexed metadata together with its raw JSON document",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"filename": map[string]interface{}{
					"type":        "string",
					"description": "Workflow filename as returned by search_workflows",
				},
			},
			Required: []string{"filename"},
		},
	}
}

// getWorkflowDiagramTool returns the tool definition for get_workflow_diagram
func getWorkflowDiagramTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_workflow_diagram",
		Description: "Render one workflow's node graph as Mermaid flowchart source",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"filename": map[string]interface{}{
					"type":        "string",
					"description": "Workflow filename as returned by search_workflows",
				},
			},
			Required: []string{"filename"},
		},
	}
}

// getStatsTool returns the tool definition for get_stats
func getStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_stats",
		Description: "Summary statistics over the indexed corpus (totals, trigger and complexity histograms, integrations)",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// listIntegrationsTool returns the tool definition for list_integrations
func listIntegrationsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_integrations",
		Description: "List every distinct integration referenced by indexed workflows, sorted",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// listCategoriesTool returns the tool definition for list_categories
func listCategoriesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_categories",
		Description: "Group indexed workflows into service categories with per-category counts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// categoryMappingsTool returns the tool definition for category_mappings
func categoryMappingsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "category_mappings",
		Description: "Map every indexed workflow filename to its service category",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
