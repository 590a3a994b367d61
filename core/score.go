package core

import (
	"math"
	"strings"

	"github.com/louieddxu2/BoardGameScorePad-sub001/core/formula"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// CalculateColumnScore computes a column's final numeric score from a
// player's raw input parts, or, for auto columns, from the scoring context.
// It is total: malformed definitions and dangling references degrade to 0
// so the scoreboard always renders.
func CalculateColumnScore(col *schema.ScoreColumn, parts []float64, ctx *schema.ScoringContext) float64 {
	if col.IsAuto {
		return applyRounding(calculateAutoScore(col, ctx), col.Rounding)
	}

	// No input, no score.
	if len(parts) == 0 {
		return 0
	}

	var score float64
	switch {
	case strings.Contains(col.Formula, "+next"):
		for _, p := range parts {
			score += p
		}

	case col.Formula == "a1×a2":
		// Missing second factor defaults to the identity multiplier, not 0.
		// Long-standing behavior that stored sessions depend on.
		first := partAt(parts, 0, 0)
		second := partAt(parts, 1, 1)
		score = first * second

	case strings.HasPrefix(col.Formula, "f1"):
		score = NewLookupFunc(legacyRules(col))(partAt(parts, 0, 0))

	default:
		score = partAt(parts, 0, 0)
		if col.Formula == "a1×c1" {
			score *= schema.EffectiveC1(col)
		}
	}

	return applyRounding(score, col.Rounding)
}

// calculateAutoScore resolves an auto column's variables against the context
// and evaluates its formula. Recursion through other auto columns is bounded
// by schema.MaxAutoDepth; past the guard the score degrades to 0.
func calculateAutoScore(col *schema.ScoreColumn, ctx *schema.ScoringContext) float64 {
	if ctx == nil {
		return 0
	}
	if ctx.Depth > schema.MaxAutoDepth {
		return 0
	}

	vars := make(map[string]float64, len(col.VariableMap))
	for name, ref := range col.VariableMap {
		vars[name] = resolveVariable(ref, ctx)
	}

	return formula.Evaluate(col.Formula, vars, buildColumnFuncs(col))
}

// resolveVariable computes the numeric value a variable reference stands for:
// the player count sentinel, the referenced column's score for the current
// player, or a rank/tie transform of that score across all players.
func resolveVariable(ref schema.VariableRef, ctx *schema.ScoringContext) float64 {
	if ref.ID == schema.PlayerCountRef {
		return float64(len(ctx.AllPlayers))
	}

	target := schema.ColumnByID(ctx.AllColumns, ref.ID)
	if target == nil {
		// Dangling reference. CheckAutoColumn surfaces it; scoring
		// substitutes 0 so the board stays renderable.
		return 0
	}

	value := scoreForPlayer(target, ctx.PlayerScores, ctx)

	switch ref.Mode {
	case schema.ModeRankScore, schema.ModeRankPlayer, schema.ModeTieCount:
	default:
		return value
	}

	if len(ctx.AllPlayers) == 0 {
		return 1
	}
	allValues := make([]float64, 0, len(ctx.AllPlayers))
	for _, p := range ctx.AllPlayers {
		allValues = append(allValues, scoreForPlayer(target, p.Scores, ctx))
	}

	switch ref.Mode {
	case schema.ModeRankScore:
		return float64(ScoreRank(value, allValues))
	case schema.ModeRankPlayer:
		return float64(PlayerRank(value, allValues))
	default:
		return float64(TieCount(value, allValues))
	}
}

// scoreForPlayer computes a target column's score using one player's stored
// parts, descending a level in the recursion guard.
func scoreForPlayer(target *schema.ScoreColumn, scores map[string]schema.ScoreValue, ctx *schema.ScoringContext) float64 {
	return CalculateColumnScore(target, scores[target.ID].Parts, &schema.ScoringContext{
		AllColumns:   ctx.AllColumns,
		PlayerScores: scores,
		AllPlayers:   ctx.AllPlayers,
		Depth:        ctx.Depth + 1,
	})
}

// buildColumnFuncs wraps a column's mapping-rule tables as formula callables.
// Functions wins over the legacy F1 alias when both define f1.
func buildColumnFuncs(col *schema.ScoreColumn) map[string]formula.Func {
	funcs := make(map[string]formula.Func, len(col.Functions)+1)
	for name, rules := range col.Functions {
		funcs[name] = formula.Func(NewLookupFunc(rules))
	}
	if _, ok := funcs["f1"]; !ok && len(col.F1) > 0 {
		funcs["f1"] = formula.Func(NewLookupFunc(col.F1))
	}
	return funcs
}

// legacyRules returns the lookup table of an f1-mode column, reading the
// legacy alias first the way old templates stored it.
func legacyRules(col *schema.ScoreColumn) []schema.MappingRule {
	if len(col.F1) > 0 {
		return col.F1
	}
	return col.Functions["f1"]
}

// partAt reads parts[i], falling back when the input is shorter.
func partAt(parts []float64, i int, fallback float64) float64 {
	if i < len(parts) {
		return parts[i]
	}
	return fallback
}

// applyRounding applies the column's rounding mode to the final score.
func applyRounding(score float64, mode schema.Rounding) float64 {
	switch mode {
	case schema.RoundFloor:
		return math.Floor(score)
	case schema.RoundCeil:
		return math.Ceil(score)
	case schema.RoundHalf:
		return math.Round(score)
	default:
		return score
	}
}
