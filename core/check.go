package core

import (
	"math"

	"github.com/louieddxu2/BoardGameScorePad-sub001/core/formula"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// CheckAutoColumn is the read-only diagnostic companion of the score
// calculator. It never mutates and never panics. Non-auto columns and calls
// without a context report no issue; a variable reference to a deleted
// column reports IssueMissingDependency; a formula that fails a dry-run with
// every variable mocked to 1 and every function mocked to identity (or
// produces a non-finite number) reports IssueMathError.
func CheckAutoColumn(col *schema.ScoreColumn, ctx *schema.ScoringContext) schema.AutoColumnIssue {
	if !col.IsAuto || ctx == nil {
		return schema.IssueNone
	}

	for _, ref := range col.VariableMap {
		if ref.ID == schema.PlayerCountRef {
			continue
		}
		if schema.ColumnByID(ctx.AllColumns, ref.ID) == nil {
			return schema.IssueMissingDependency
		}
	}

	vars := make(map[string]float64, len(col.VariableMap))
	for name := range col.VariableMap {
		vars[name] = 1
	}

	identity := formula.Func(func(v float64) float64 { return v })
	_, funcNames := formula.ExtractIdentifiers(col.Formula)
	funcs := make(map[string]formula.Func, len(funcNames)+len(col.Functions)+1)
	for _, name := range funcNames {
		funcs[name] = identity
	}
	for name := range col.Functions {
		funcs[name] = identity
	}
	if len(col.F1) > 0 {
		funcs["f1"] = identity
	}

	result, err := formula.EvaluateStrict(col.Formula, vars, funcs)
	if err != nil || math.IsNaN(result) || math.IsInf(result, 0) {
		return schema.IssueMathError
	}
	return schema.IssueNone
}

// CheckTemplate runs the diagnostic over every auto column of a template.
// Healthy columns are included with IssueNone so the report shows full
// coverage, not just failures.
func CheckTemplate(template *schema.GameTemplate, players []schema.Player) []schema.ColumnIssue {
	var playerScores map[string]schema.ScoreValue
	if len(players) > 0 {
		playerScores = players[0].Scores
	}
	ctx := &schema.ScoringContext{
		AllColumns:   template.Columns,
		PlayerScores: playerScores,
		AllPlayers:   players,
	}

	var issues []schema.ColumnIssue
	for i := range template.Columns {
		col := &template.Columns[i]
		if !col.IsAuto {
			continue
		}
		issues = append(issues, schema.ColumnIssue{
			ColumnID:   col.ID,
			ColumnName: col.Name,
			Issue:      CheckAutoColumn(col, ctx),
		})
	}
	return issues
}
