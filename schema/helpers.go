package schema

import (
	"math"
	"strconv"
	"strings"
)

// ColumnByID finds a column by id in a column list.
// Returns nil when the id is absent (a dangling reference).
func ColumnByID(columns []ScoreColumn, id string) *ScoreColumn {
	for i := range columns {
		if columns[i].ID == id {
			return &columns[i]
		}
	}
	return nil
}

// ScoringColumns returns the columns that contribute to a player's total.
func ScoringColumns(columns []ScoreColumn) []ScoreColumn {
	var scoring []ScoreColumn
	for _, c := range columns {
		if c.IsScoring {
			scoring = append(scoring, c)
		}
	}
	return scoring
}

// IsDisposableTemplate reports whether a template carries nothing worth
// keeping: no columns, no image and not pinned. Callers use this to decide
// on automatic cleanup; the engine never calls it during scoring.
func IsDisposableTemplate(t *GameTemplate) bool {
	if t == nil {
		return true
	}
	return len(t.Columns) == 0 && !t.HasImage && !t.IsPinned
}

// FormatScore renders a score with up to precision decimals, trimming
// trailing zeros. Negative zero keeps its sign so that "-0" entered by a
// player (e.g. a voided penalty) round-trips to the display.
func FormatScore(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "ERR"
	}
	if v == 0 && math.Signbit(v) {
		return "-0"
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// BoardPositions returns the competition-style position of each board row.
// Rows are assumed sorted by descending total; tied totals share a position
// and the next distinct total skips the vacated slots.
func BoardPositions(rows []BoardRow) []int {
	positions := make([]int, len(rows))
	for i := range rows {
		if i > 0 && rows[i].Total == rows[i-1].Total {
			positions[i] = positions[i-1]
		} else {
			positions[i] = i + 1
		}
	}
	return positions
}

// EffectiveC1 returns the c1 multiplier of a column, defaulting to 1.
func EffectiveC1(col *ScoreColumn) float64 {
	if col.Constants != nil && col.Constants.C1 != nil {
		return *col.Constants.C1
	}
	return 1
}

// Float64Ptr returns a pointer to v. Shorthand for literal rule tables.
func Float64Ptr(v float64) *float64 {
	return &v
}
