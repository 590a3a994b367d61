// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
)

// NewMCPServer initializes and configures the Scorepad MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Scorepad Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_board ---
	s.AddTool(mcp.NewTool("score_board",
		mcp.WithDescription("Compute the ranked scoreboard of a play session: every column score, player totals, and competition ranks."),
		mcp.WithString("session_file", mcp.Description("Path to a session JSON file.")),
		mcp.WithString("session", mcp.Description("Session id in the store, used when no file is given.")),
		mcp.WithNumber("precision", mcp.Description("Decimal places for scores (0-4). Defaults to 2.")),
	), h.handleScoreBoard)

	// --- 2. Tool: check_template ---
	s.AddTool(mcp.NewTool("check_template",
		mcp.WithDescription("Diagnose the auto columns of a session's template: dangling column references and formula math errors."),
		mcp.WithString("session_file", mcp.Description("Path to a session JSON file.")),
		mcp.WithString("session", mcp.Description("Session id in the store, used when no file is given.")),
	), h.handleCheckTemplate)

	// --- 3. Tool: eval_formula ---
	s.AddTool(mcp.NewTool("eval_formula",
		mcp.WithDescription("Evaluate an arithmetic formula with optional variable bindings, using the same safe evaluator as auto columns."),
		mcp.WithString("formula", mcp.Description("The formula to evaluate (e.g. 'x1*2+max(x2,3)')."), mcp.Required()),
		mcp.WithString("vars", mcp.Description("Comma-separated variable bindings (e.g. 'x1=4,x2=7').")),
		mcp.WithString("tables", mcp.Description("JSON object mapping function names to mapping-rule arrays (e.g. '{\"f1\": [{\"min\": 0, \"max\": 3, \"score\": 1}]}').")),
	), h.handleEvalFormula)

	// --- 4. Tool: migrate_template ---
	s.AddTool(mcp.NewTool("migrate_template",
		mcp.WithDescription("Migrate a legacy template JSON document to the canonical format, inferring formula and input type per column."),
		mcp.WithString("template_json", mcp.Description("The template document as a JSON string."), mcp.Required()),
	), h.handleMigrateTemplate)

	return s
}

// StartMCPServer starts the Scorepad MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
