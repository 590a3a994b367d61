// Package schema has configs, models and global variables for all parts of scorepad.
package schema

import "time"

// GameTemplate defines the scoring rules for one board game: a named,
// ordered set of columns plus presentation metadata. Templates are the
// read-only input to the scoring engine; they are authored elsewhere
// and persisted as JSON.
type GameTemplate struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	BggID           string        `json:"bggId,omitempty"`
	Columns         []ScoreColumn `json:"columns"`
	SupportedColors []string      `json:"supportedColors,omitempty"`
	HasImage        bool          `json:"hasImage,omitempty"`
	IsPinned        bool          `json:"isPinned,omitempty"`
	CreatedAt       int64         `json:"createdAt,omitempty"`
	UpdatedAt       int64         `json:"updatedAt,omitempty"`
}

// ScoreColumn is one scoring dimension of a template. The Formula field is a
// small DSL string selecting the computation mode ("a1", "a1×c1", "a1×a2",
// "a1+next", "f1(a1)"), or a free-form arithmetic expression when IsAuto is set.
type ScoreColumn struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Formula   string `json:"formula"`
	InputType InputType `json:"inputType,omitempty"`

	// IsAuto marks a column whose score is derived from other columns via
	// Formula, VariableMap and Functions; direct input parts are ignored.
	IsAuto      bool                     `json:"isAuto,omitempty"`
	VariableMap map[string]VariableRef   `json:"variableMap,omitempty"`
	Functions   map[string][]MappingRule `json:"functions,omitempty"`

	// F1 is the legacy alias of Functions["f1"], kept in sync so old
	// clients keep working.
	F1 []MappingRule `json:"f1,omitempty"`

	Constants *ColumnConstants `json:"constants,omitempty"`
	Rounding  Rounding         `json:"rounding,omitempty"`
	IsScoring bool             `json:"isScoring"`

	// Presentational metadata, never read by the engine.
	Unit         string        `json:"unit,omitempty"`
	SubUnits     []string      `json:"subUnits,omitempty"`
	Color        string        `json:"color,omitempty"`
	QuickActions []QuickAction `json:"quickActions,omitempty"`
}

// ColumnConstants holds named constants referenced by a column formula.
// Today only C1 exists (the multiplier of the "a1×c1" mode).
type ColumnConstants struct {
	C1 *float64 `json:"c1,omitempty"`
}

// VariableRef binds a formula variable (x1, x2, ...) to another column or to
// the player-count sentinel, with a mode selecting the raw value or a
// rank/tie transform across all players.
type VariableRef struct {
	ID   string       `json:"id"`
	Name string       `json:"name,omitempty"`
	Mode VariableMode `json:"mode,omitempty"`
}

// MappingRule is one interval of a range-based lookup table.
// Max may be a number, the string "next" (bound is the next rule's Min - 1),
// or absent (unbounded above). A linear rule grows in steps of Unit, adding
// UnitScore per step on top of the cumulative score at Min-1.
type MappingRule struct {
	Min       *float64 `json:"min,omitempty"`
	Max       any      `json:"max,omitempty"`
	Score     float64  `json:"score"`
	IsLinear  bool     `json:"isLinear,omitempty"`
	Unit      *float64 `json:"unit,omitempty"`
	UnitScore *float64 `json:"unitScore,omitempty"`
}

// QuickAction is a tap-to-add increment shown by clicker-style inputs.
type QuickAction struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ScoreValue is a player's stored input for one column. Parts is always a
// flat array of finished numbers; transient UI shapes (partial text, factor
// pairs, tap history) are resolved before storage by the migration layer.
type ScoreValue struct {
	Parts []float64 `json:"parts"`
}

// Player is one participant of a session. TotalScore is derived and must be
// recomputed whenever any score or the template changes.
type Player struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Color      string                `json:"color,omitempty"`
	Scores     map[string]ScoreValue `json:"scores"`
	TotalScore float64               `json:"totalScore"`
}

// Session bundles a template with its players: the unit the CLI loads,
// scores and saves.
type Session struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Template  GameTemplate `json:"template"`
	Players   []Player     `json:"players"`
	CreatedAt int64        `json:"createdAt,omitempty"`
	UpdatedAt int64        `json:"updatedAt,omitempty"`
}

// ScoringContext carries the auxiliary state auto columns need: the full
// column list for dependency lookups, the current player's scores, the other
// players for rank/tie modes, and the recursion depth guard.
type ScoringContext struct {
	AllColumns   []ScoreColumn
	PlayerScores map[string]ScoreValue
	AllPlayers   []Player
	Depth        int
}

// BoardRow is one scoreboard line: a player with every column resolved to a
// number plus the aggregated total.
type BoardRow struct {
	PlayerID     string             `json:"playerId"`
	PlayerName   string             `json:"player"`
	ColumnScores map[string]float64 `json:"columnScores"`
	Total        float64            `json:"total"`
}

// ColumnIssue is one diagnostic finding for an auto column.
type ColumnIssue struct {
	ColumnID   string          `json:"columnId"`
	ColumnName string          `json:"column"`
	Issue      AutoColumnIssue `json:"issue"`
}

// TimeNow returns the current wall clock in epoch milliseconds, the unit the
// persisted shapes use for CreatedAt/UpdatedAt.
func TimeNow() int64 {
	return time.Now().UnixMilli()
}
