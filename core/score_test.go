package core

import (
	"testing"

	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
	"github.com/stretchr/testify/assert"
)

// TestCalculateColumnScoreBasicModes tests every manual formula family.
func TestCalculateColumnScoreBasicModes(t *testing.T) {
	tests := []struct {
		name     string
		col      schema.ScoreColumn
		parts    []float64
		expected float64
	}{
		{
			name:     "standard passthrough",
			col:      schema.ScoreColumn{ID: "c", Formula: "a1"},
			parts:    []float64{42},
			expected: 42,
		},
		{
			name:     "empty parts scores zero",
			col:      schema.ScoreColumn{ID: "c", Formula: "a1"},
			parts:    nil,
			expected: 0,
		},
		{
			name:     "weighted",
			col:      schema.ScoreColumn{ID: "c", Formula: "a1×c1", Constants: &schema.ColumnConstants{C1: schema.Float64Ptr(3)}},
			parts:    []float64{4},
			expected: 12,
		},
		{
			name:     "weighted without constant defaults to one",
			col:      schema.ScoreColumn{ID: "c", Formula: "a1×c1"},
			parts:    []float64{4},
			expected: 4,
		},
		{
			name:     "sum parts",
			col:      schema.ScoreColumn{ID: "c", Formula: "a1+next"},
			parts:    []float64{10, 5, 3},
			expected: 18,
		},
		{
			name:     "sum parts order independent",
			col:      schema.ScoreColumn{ID: "c", Formula: "a1+next"},
			parts:    []float64{3, 10, 5},
			expected: 18,
		},
		{
			name:     "product",
			col:      schema.ScoreColumn{ID: "c", Formula: "a1×a2"},
			parts:    []float64{6, 7},
			expected: 42,
		},
		{
			name:     "product missing second factor",
			col:      schema.ScoreColumn{ID: "c", Formula: "a1×a2"},
			parts:    []float64{5},
			expected: 5,
		},
		{
			name:     "product empty parts",
			col:      schema.ScoreColumn{ID: "c", Formula: "a1×a2"},
			parts:    []float64{},
			expected: 0,
		},
		{
			name: "legacy lookup",
			col: schema.ScoreColumn{ID: "c", Formula: "f1(a1)", F1: []schema.MappingRule{
				{Max: 2.0, Score: 1},
				{Min: schema.Float64Ptr(3), Score: 9},
			}},
			parts:    []float64{7},
			expected: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateColumnScore(&tt.col, tt.parts, nil)
			assert.InDelta(t, tt.expected, result, 0.0001)
		})
	}
}

// TestCalculateColumnScoreRounding verifies the score rounds exactly as the
// unrounded value would round independently.
func TestCalculateColumnScoreRounding(t *testing.T) {
	tests := []struct {
		name     string
		rounding schema.Rounding
		expected float64
	}{
		{
			name:     "round half",
			rounding: schema.RoundHalf,
			expected: 4,
		},
		{
			name:     "floor",
			rounding: schema.RoundFloor,
			expected: 3,
		},
		{
			name:     "ceil",
			rounding: schema.RoundCeil,
			expected: 4,
		},
		{
			name:     "none",
			rounding: schema.RoundNone,
			expected: 3.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := schema.ScoreColumn{ID: "c", Formula: "a1", Rounding: tt.rounding}
			result := CalculateColumnScore(&col, []float64{3.5}, nil)
			assert.InDelta(t, tt.expected, result, 0.0001)
		})
	}
}

// TestCalculateAutoColumn tests formula-driven columns resolved against a
// scoring context.
func TestCalculateAutoColumn(t *testing.T) {
	base := schema.ScoreColumn{ID: "base", Formula: "a1", IsScoring: true}
	auto := schema.ScoreColumn{
		ID:      "auto",
		Formula: "x1*2",
		IsAuto:  true,
		VariableMap: map[string]schema.VariableRef{
			"x1": {ID: "base"},
		},
	}
	scores := map[string]schema.ScoreValue{"base": {Parts: []float64{21}}}
	ctx := &schema.ScoringContext{
		AllColumns:   []schema.ScoreColumn{base, auto},
		PlayerScores: scores,
		AllPlayers:   []schema.Player{{ID: "p1", Scores: scores}},
	}

	t.Run("references another column", func(t *testing.T) {
		result := CalculateColumnScore(&auto, nil, ctx)
		assert.InDelta(t, 42, result, 0.0001)
	})

	t.Run("nil context scores zero", func(t *testing.T) {
		result := CalculateColumnScore(&auto, nil, nil)
		assert.Zero(t, result)
	})

	t.Run("player count sentinel", func(t *testing.T) {
		col := schema.ScoreColumn{
			ID:      "pc",
			Formula: "n*10",
			IsAuto:  true,
			VariableMap: map[string]schema.VariableRef{
				"n": {ID: schema.PlayerCountRef},
			},
		}
		threePlayers := &schema.ScoringContext{
			AllColumns: []schema.ScoreColumn{col},
			AllPlayers: make([]schema.Player, 3),
		}
		result := CalculateColumnScore(&col, nil, threePlayers)
		assert.InDelta(t, 30, result, 0.0001)
	})

	t.Run("dangling reference substitutes zero", func(t *testing.T) {
		col := schema.ScoreColumn{
			ID:      "broken",
			Formula: "x1+5",
			IsAuto:  true,
			VariableMap: map[string]schema.VariableRef{
				"x1": {ID: "missing_col"},
			},
		}
		result := CalculateColumnScore(&col, nil, ctx)
		assert.InDelta(t, 5, result, 0.0001)
	})

	t.Run("rounding applies to auto result", func(t *testing.T) {
		col := schema.ScoreColumn{
			ID:      "half",
			Formula: "x1/2",
			IsAuto:  true,
			Rounding: schema.RoundFloor,
			VariableMap: map[string]schema.VariableRef{
				"x1": {ID: "base"},
			},
		}
		result := CalculateColumnScore(&col, nil, ctx)
		assert.InDelta(t, 10, result, 0.0001)
	})
}

// TestCalculateAutoColumnRankModes tests rank and tie variable resolution
// across players.
func TestCalculateAutoColumnRankModes(t *testing.T) {
	base := schema.ScoreColumn{ID: "vp", Formula: "a1", IsScoring: true}
	players := []schema.Player{
		{ID: "p1", Scores: map[string]schema.ScoreValue{"vp": {Parts: []float64{10}}}},
		{ID: "p2", Scores: map[string]schema.ScoreValue{"vp": {Parts: []float64{10}}}},
		{ID: "p3", Scores: map[string]schema.ScoreValue{"vp": {Parts: []float64{8}}}},
	}

	rankCol := func(mode schema.VariableMode) schema.ScoreColumn {
		return schema.ScoreColumn{
			ID:      "bonus",
			Formula: "x1",
			IsAuto:  true,
			VariableMap: map[string]schema.VariableRef{
				"x1": {ID: "vp", Mode: mode},
			},
		}
	}
	ctxFor := func(p schema.Player, col schema.ScoreColumn) *schema.ScoringContext {
		return &schema.ScoringContext{
			AllColumns:   []schema.ScoreColumn{base, col},
			PlayerScores: p.Scores,
			AllPlayers:   players,
		}
	}

	tests := []struct {
		name     string
		mode     schema.VariableMode
		player   int
		expected float64
	}{
		{
			name:     "rank score ties share top rank",
			mode:     schema.ModeRankScore,
			player:   0,
			expected: 1,
		},
		{
			name:     "rank score skips after tie",
			mode:     schema.ModeRankScore,
			player:   2,
			expected: 3,
		},
		{
			name:     "rank player matches rank score",
			mode:     schema.ModeRankPlayer,
			player:   2,
			expected: 3,
		},
		{
			name:     "tie count",
			mode:     schema.ModeTieCount,
			player:   1,
			expected: 2,
		},
		{
			name:     "tie count unique value",
			mode:     schema.ModeTieCount,
			player:   2,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := rankCol(tt.mode)
			result := CalculateColumnScore(&col, nil, ctxFor(players[tt.player], col))
			assert.InDelta(t, tt.expected, result, 0.0001)
		})
	}

	t.Run("no players defaults rank to one", func(t *testing.T) {
		col := rankCol(schema.ModeRankScore)
		ctx := &schema.ScoringContext{AllColumns: []schema.ScoreColumn{base, col}}
		result := CalculateColumnScore(&col, nil, ctx)
		assert.InDelta(t, 1, result, 0.0001)
	})
}

// TestCalculateColumnScoreRecursionGuard ensures mutually-referencing auto
// columns resolve to a finite number instead of overflowing the stack.
func TestCalculateColumnScoreRecursionGuard(t *testing.T) {
	colA := schema.ScoreColumn{
		ID:      "a",
		Formula: "x1+1",
		IsAuto:  true,
		VariableMap: map[string]schema.VariableRef{
			"x1": {ID: "b"},
		},
	}
	colB := schema.ScoreColumn{
		ID:      "b",
		Formula: "x1+1",
		IsAuto:  true,
		VariableMap: map[string]schema.VariableRef{
			"x1": {ID: "a"},
		},
	}
	scores := map[string]schema.ScoreValue{}
	ctx := &schema.ScoringContext{
		AllColumns:   []schema.ScoreColumn{colA, colB},
		PlayerScores: scores,
		AllPlayers:   []schema.Player{{ID: "p1", Scores: scores}},
	}

	resultA := CalculateColumnScore(&colA, nil, ctx)
	resultB := CalculateColumnScore(&colB, nil, ctx)
	assert.LessOrEqual(t, resultA, float64(schema.MaxAutoDepth)+1)
	assert.LessOrEqual(t, resultB, float64(schema.MaxAutoDepth)+1)
}

// BenchmarkCalculateColumnScore benchmarks an auto column with a lookup
// function and a cross-column reference.
func BenchmarkCalculateColumnScore(b *testing.B) {
	base := schema.ScoreColumn{ID: "base", Formula: "a1"}
	auto := schema.ScoreColumn{
		ID:      "auto",
		Formula: "f1(x1)",
		IsAuto:  true,
		VariableMap: map[string]schema.VariableRef{
			"x1": {ID: "base"},
		},
		Functions: map[string][]schema.MappingRule{
			"f1": {
				{Max: 5.0, Score: 1},
				{Min: schema.Float64Ptr(6), Score: 2, IsLinear: true, Unit: schema.Float64Ptr(2)},
			},
		},
	}
	scores := map[string]schema.ScoreValue{"base": {Parts: []float64{9}}}
	ctx := &schema.ScoringContext{
		AllColumns:   []schema.ScoreColumn{base, auto},
		PlayerScores: scores,
		AllPlayers:   []schema.Player{{ID: "p1", Scores: scores}},
	}

	for b.Loop() {
		CalculateColumnScore(&auto, nil, ctx)
	}
}
