package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	mcp_internal "github.com/louieddxu2/BoardGameScorePad-sub001/internal/mcp"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

const sessionJSON = `{
	"id": "s-1",
	"name": "Friday night",
	"template": {
		"id": "tpl-1",
		"name": "Azul",
		"columns": [
			{"id": "tiles", "name": "Tiles", "formula": "a1", "isScoring": true}
		]
	},
	"players": [
		{"id": "p1", "name": "Ada", "scores": {"tiles": {"parts": [12]}}},
		{"id": "p2", "name": "Ben", "scores": {"tiles": {"parts": [8]}}}
	]
}`

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers(t *testing.T) {
	baseCfg := &contract.Config{
		Precision: 2,
		Output:    schema.TextOut,
	}

	// A nil manager is fine: every tested path resolves sessions from files
	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	t.Run("eval_formula with bindings", func(t *testing.T) {
		res := callTool(t, s, "eval_formula", map[string]any{
			"formula": "x1*2+max(x2,3)",
			"vars":    "x1=4,x2=7",
		})
		assert.False(t, res.IsError)
		assert.Equal(t, "15", resultText(t, res))
	})

	t.Run("eval_formula undeclared variable", func(t *testing.T) {
		res := callTool(t, s, "eval_formula", map[string]any{
			"formula": "x1+y9",
			"vars":    "x1=4",
		})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "evaluation failed")
	})

	t.Run("eval_formula with lookup table", func(t *testing.T) {
		res := callTool(t, s, "eval_formula", map[string]any{
			"formula": "f1(x1)",
			"vars":    "x1=5",
			"tables":  `{"f1": [{"min": 0, "max": 3, "score": 1}, {"min": 4, "score": 4}]}`,
		})
		assert.False(t, res.IsError)
		assert.Equal(t, "4", resultText(t, res))
	})

	t.Run("eval_formula malformed tables", func(t *testing.T) {
		res := callTool(t, s, "eval_formula", map[string]any{
			"formula": "f1(1)",
			"tables":  "{not json",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "malformed tables JSON")
	})

	t.Run("eval_formula missing formula", func(t *testing.T) {
		res := callTool(t, s, "eval_formula", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "formula is required")
	})

	t.Run("migrate_template legacy select column", func(t *testing.T) {
		res := callTool(t, s, "migrate_template", map[string]any{
			"template_json": `{
				"id": "tpl-old",
				"name": "Old Game",
				"columns": [
					{"id": "c1", "name": "Bonus", "type": "select", "options": [
						{"label": "None", "value": 0},
						{"label": "Full", "value": 5}
					]}
				]
			}`,
		})
		assert.False(t, res.IsError)
		text := resultText(t, res)
		assert.Contains(t, text, `"formula": "a1"`)
		assert.Contains(t, text, `"inputType": "clicker"`)
		assert.Contains(t, text, `"label": "Full"`)
	})

	t.Run("migrate_template malformed JSON", func(t *testing.T) {
		res := callTool(t, s, "migrate_template", map[string]any{
			"template_json": "{not json",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "malformed template JSON")
	})

	t.Run("score_board from session file", func(t *testing.T) {
		sessionFile := filepath.Join(t.TempDir(), "session.json")
		require.NoError(t, os.WriteFile(sessionFile, []byte(sessionJSON), 0o644))

		res := callTool(t, s, "score_board", map[string]any{
			"session_file": sessionFile,
		})
		assert.False(t, res.IsError)
		text := resultText(t, res)
		assert.Contains(t, text, `"player": "Ada"`)
		assert.Contains(t, text, `"rank": 1`)
		assert.Contains(t, text, `"label": "Leader"`)
		assert.Contains(t, text, `"total": 12`)
	})

	t.Run("check_template missing session", func(t *testing.T) {
		res := callTool(t, s, "check_template", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "no session given")
	})
}
