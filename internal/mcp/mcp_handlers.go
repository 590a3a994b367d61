package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/louieddxu2/BoardGameScorePad-sub001/core"
	"github.com/louieddxu2/BoardGameScorePad-sub001/core/formula"
	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleScoreBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.SessionFile = request.GetString("session_file", "")
	if s := request.GetString("session", ""); s != "" {
		cfg.SessionID = s
	}
	if p := request.GetInt("precision", -1); p >= 0 && p <= contract.MaxPrecision {
		cfg.Precision = p
	}

	rows, err := core.GetBoardResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	type boardEntry struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.BoardRow
	}
	positions := schema.BoardPositions(rows)
	entries := make([]boardEntry, len(rows))
	for i, row := range rows {
		entries[i] = boardEntry{
			Rank:     positions[i],
			Label:    contract.GetPlainLabel(positions[i], len(rows)),
			BoardRow: row,
		}
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCheckTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.SessionFile = request.GetString("session_file", "")
	if s := request.GetString("session", ""); s != "" {
		cfg.SessionID = s
	}

	session, err := core.LoadSession(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	issues := core.CheckTemplate(&session.Template, session.Players)
	jsonData, _ := json.MarshalIndent(issues, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEvalFormula(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr := request.GetString("formula", "")
	if strings.TrimSpace(expr) == "" {
		return mcp.NewToolResultError("formula is required"), nil
	}

	var bindings []string
	if raw := request.GetString("vars", ""); raw != "" {
		bindings = strings.Split(raw, ",")
	}
	vars, err := contract.ParseVarBindings(bindings)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid variable bindings: %v", err)), nil
	}

	var funcs map[string]formula.Func
	if raw := request.GetString("tables", ""); raw != "" {
		var tables map[string][]schema.MappingRule
		if err := json.Unmarshal([]byte(raw), &tables); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("malformed tables JSON: %v", err)), nil
		}
		funcs = make(map[string]formula.Func, len(tables))
		for name, rules := range tables {
			funcs[name] = formula.Func(core.NewLookupFunc(rules))
		}
	}

	result, err := formula.EvaluateStrict(expr, vars, funcs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	return mcp.NewToolResultText(schema.FormatScore(result, contract.MaxPrecision)), nil
}

func (h *toolHandler) handleMigrateTemplate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("template_json", "")
	if strings.TrimSpace(raw) == "" {
		return mcp.NewToolResultError("template_json is required"), nil
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("malformed template JSON: %v", err)), nil
	}

	template := core.MigrateTemplate(doc)
	jsonData, _ := json.MarshalIndent(template, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
