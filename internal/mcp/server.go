package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/Zie619/n8n-workflows/internal/categories"
	"github.com/Zie619/n8n-workflows/internal/config"
	"github.com/Zie619/n8n-workflows/internal/indexer"
	"github.com/Zie619/n8n-workflows/internal/searcher"
	"github.com/Zie619/n8n-workflows/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "n8n-workflows"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp        *server.MCPServer
	store      storage.Store
	indexer    *indexer.Indexer
	searcher   *searcher.Searcher
	classifier *categories.Classifier
	corpusDir  string
	workers    int
	lock       *indexer.IndexLock
}

// NewServer creates a new MCP server instance from configuration
func NewServer(cfg *config.Config) (*Server, error) {
	store, err := storage.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	idx := indexer.New(store, cfg.Corpus.Dir)

	srch, err := searcher.New(store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize searcher: %w", err)
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:        mcpServer,
		store:      store,
		indexer:    idx,
		searcher:   srch,
		classifier: categories.NewClassifier(cfg.Categories),
		corpusDir:  cfg.Corpus.Dir,
		workers:    cfg.Index.Workers,
		lock:       &indexer.IndexLock{},
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.store.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(indexWorkflowsTool(), s.handleIndexWorkflows)
	s.mcp.AddTool(searchWorkflowsTool(), s.handleSearchWorkflows)
	s.mcp.AddTool(getWorkflowTool(), s.handleGetWorkflow)
	s.mcp.AddTool(getWorkflowDiagramTool(), s.handleGetWorkflowDiagram)
	s.mcp.AddTool(getStatsTool(), s.handleGetStats)
	s.mcp.AddTool(listIntegrationsTool(), s.handleListIntegrations)
	s.mcp.AddTool(listCategoriesTool(), s.handleListCategories)
	s.mcp.AddTool(categoryMappingsTool(), s.handleCategoryMappings)
}
