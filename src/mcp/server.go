// Package mcp provides the MCP server exposing dune build diagnostics to
// LLM clients under a strict token budget.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"dunemcp/src/logger"
	"dunemcp/src/provider"
	"dunemcp/src/request"
	"dunemcp/src/respond"
	"dunemcp/src/store"
	"dunemcp/src/tokens"
)

// Server is the MCP server for dunemcp.
type Server struct {
	mcpServer *server.MCPServer
	provider  provider.BuildStatusProvider
	sessions  store.Store
	estimator *tokens.Estimator
	budget    respond.Budget
	logger    logger.Logger
}

// NewServer creates a new MCP server over a build-status provider.
// sessions may be nil, in which case the drill-down tool reports that no
// session store is configured.
func NewServer(p provider.BuildStatusProvider, sessions store.Store, budget respond.Budget, log logger.Logger) *Server {
	s := server.NewMCPServer(
		"dunemcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{
		mcpServer: s,
		provider:  p,
		sessions:  sessions,
		estimator: tokens.NewEstimator(),
		budget:    budget,
		logger:    log,
	}
	srv.registerTools()

	return srv
}

// registerTools registers all available tools.
func (s *Server) registerTools() {
	statusTool := mcp.NewTool("dune_build_status",
		mcp.WithDescription("Get the current dune build status with compiler diagnostics. Results are filtered, error-first ordered, paginated, and bounded so the response never exceeds the token budget. Use next_cursor to page through large diagnostic sets."),
		mcp.WithArray("targets",
			mcp.Description("Build targets to report on (default: all)"),
		),
		mcp.WithNumber("max_diagnostics",
			mcp.Description("Page size, 1-1000 (default: 50)"),
		),
		mcp.WithNumber("page",
			mcp.Description("Zero-based page index (default: 0)"),
		),
		mcp.WithString("severity_filter",
			mcp.Description("Retain only \"error\" or \"warning\" diagnostics, or \"all\" (default: all, case-insensitive)"),
		),
		mcp.WithString("file_pattern",
			mcp.Description("Glob filter on file paths, e.g. \"*.ml\" or \"src/**/*.ml\" (max 200 chars, 10 wildcards)"),
		),
	)

	detailsTool := mcp.NewTool("get_diagnostic_details",
		mcp.WithDescription("Get one full diagnostic from a recorded build session by index. Use after dune_build_status to drill into a truncated set."),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session ID from a dune_build_status response"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Zero-based index into the session's diagnostics"),
		),
	)

	s.mcpServer.AddTool(statusTool, s.handleBuildStatus)
	s.mcpServer.AddTool(detailsTool, s.handleDiagnosticDetails)
}

// Run starts the MCP server on stdio.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// handleBuildStatus handles the dune_build_status tool call: validate the
// request, fetch the build report, and assemble the bounded response.
func (s *Server) handleBuildStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.ValidateArguments(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := s.provider.Report(ctx, query.Targets)
	if err != nil {
		return mcp.NewToolResultError(provider.WrapError(err).Error()), nil
	}

	response := respond.Assemble(s.estimator, report.Status, report.Summary, report.Diagnostics, query, s.budget)
	response.SessionID = report.SessionID

	jsonBytes, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	s.logger.Debug("dune_build_status: %d/%d diagnostics, %d tokens",
		response.Summary.ReturnedDiagnostics, response.Summary.TotalDiagnostics, response.TokenCount)

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// handleDiagnosticDetails handles the get_diagnostic_details tool call.
func (s *Server) handleDiagnosticDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.sessions == nil {
		return mcp.NewToolResultError("no session store configured; drill-down requires the collector deployment"), nil
	}

	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}

	index := req.GetInt("index", -1)
	if index < 0 {
		return mcp.NewToolResultError("index parameter is required and must be >= 0"), nil
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(provider.WrapError(fmt.Errorf("%w: %s", provider.ErrSessionNotFound, sessionID)).Error()), nil
	}

	if index >= len(session.Diagnostics) {
		return mcp.NewToolResultError(fmt.Sprintf("index %d out of range: session %s has %d diagnostics", index, sessionID, len(session.Diagnostics))), nil
	}

	jsonBytes, err := json.Marshal(session.Diagnostics[index])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal diagnostic: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}
