// Package core has core logic for scoring, ranking and migration.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/outwriter"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// ExecuteBoard loads a session, computes every column score and player
// total, and writes the ranked scoreboard. It serves as the main entry
// point for the 'board' command.
func ExecuteBoard(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	session, err := LoadSession(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	rows := BuildBoard(session)
	duration := time.Since(start)
	return outwriter.WriteBoardResults(rows, &session.Template, cfg, duration)
}

// ExecuteCheck runs the auto-column diagnostics for a session's template and
// writes the findings. Returns contract.ErrIssuesFound when any column is
// broken so the CLI can exit nonzero for CI-style use.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	session, err := LoadSession(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	issues := CheckTemplate(&session.Template, session.Players)
	if err := outwriter.WriteCheckResults(issues, &session.Template, cfg); err != nil {
		return err
	}
	for _, issue := range issues {
		if issue.Issue != schema.IssueNone {
			return contract.ErrIssuesFound
		}
	}
	return nil
}

// GetBoardResults computes a scoreboard without writing it. Exposed for the
// MCP server, which renders results itself.
func GetBoardResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.BoardRow, error) {
	session, err := LoadSession(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}
	return BuildBoard(session), nil
}

// LoadSession resolves the session the command operates on: a JSON file when
// a path was given, otherwise a session saved in the store. Legacy payload
// shapes are migrated on load, so the rest of the engine only ever sees the
// canonical model.
func LoadSession(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.Session, error) {
	if cfg.SessionFile != "" {
		data, err := os.ReadFile(cfg.SessionFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read session file: %w", err)
		}
		return ParseSession(data)
	}
	if cfg.SessionID == "" {
		return nil, fmt.Errorf("no session given: pass a session file or --session id")
	}
	record, err := mgr.GetSessionStore().Get(ctx, cfg.SessionID)
	if err != nil {
		return nil, fmt.Errorf("cannot load session %q: %w", cfg.SessionID, err)
	}
	return ParseSession([]byte(record.Payload))
}

// ParseSession decodes session JSON, tolerating legacy shapes. The template
// goes through MigrateTemplate and every player's scores through
// MigrateScores, which is what keeps multi-year-old exports loadable.
func ParseSession(data []byte) (*schema.Session, error) {
	var raw struct {
		ID        string          `json:"id"`
		Name      string          `json:"name"`
		Template  json.RawMessage `json:"template"`
		Players   []rawPlayer     `json:"players"`
		CreatedAt int64           `json:"createdAt"`
		UpdatedAt int64           `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed session JSON: %w", err)
	}
	if len(raw.Template) == 0 {
		return nil, fmt.Errorf("session has no template")
	}

	var anyTemplate map[string]any
	if err := json.Unmarshal(raw.Template, &anyTemplate); err != nil {
		return nil, fmt.Errorf("malformed template JSON: %w", err)
	}
	template := MigrateTemplate(anyTemplate)

	session := &schema.Session{
		ID:        raw.ID,
		Name:      raw.Name,
		Template:  template,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}
	for _, p := range raw.Players {
		session.Players = append(session.Players, schema.Player{
			ID:     p.ID,
			Name:   p.Name,
			Color:  p.Color,
			Scores: MigrateScores(p.Scores, &template),
		})
	}
	return session, nil
}

type rawPlayer struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Color  string         `json:"color"`
	Scores map[string]any `json:"scores"`
}
