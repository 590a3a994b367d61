package schema

// Custom string types for type safety.
type (
	// Rounding represents the rounding applied to a final column score.
	Rounding string

	// VariableMode represents how a formula variable resolves against the
	// referenced column: raw value or a rank/tie transform.
	VariableMode string

	// InputType represents the input widget family of a column.
	InputType string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the store.
	DatabaseBackend string

	// AutoColumnIssue represents a diagnostic finding for an auto column.
	AutoColumnIssue string
)

// PlayerCountRef is the sentinel variable reference that resolves to the
// number of players instead of a column score.
const PlayerCountRef = "__PLAYER_COUNT__"

// MaxAutoDepth bounds recursion when auto columns reference auto columns.
// Past this depth a score resolves to 0 instead of overflowing the stack.
const MaxAutoDepth = 5

// All rounding modes supported.
const (
	RoundNone  Rounding = ""
	RoundFloor Rounding = "floor"
	RoundCeil  Rounding = "ceil"
	RoundHalf  Rounding = "round"
)

// All variable modes supported.
const (
	ModeValue      VariableMode = "value" // default
	ModeRankScore  VariableMode = "rank_score"
	ModeRankPlayer VariableMode = "rank_player"
	ModeTieCount   VariableMode = "tie_count"
)

// All input types supported.
const (
	NumberInput  InputType = "number" // default
	ClickerInput InputType = "clicker"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All auto column issues supported.
const (
	IssueNone              AutoColumnIssue = ""
	IssueMissingDependency AutoColumnIssue = "missing_dependency"
	IssueMathError         AutoColumnIssue = "math_error"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidRoundings lists all valid rounding modes.
var ValidRoundings = map[Rounding]struct{}{
	RoundNone:  {},
	RoundFloor: {},
	RoundCeil:  {},
	RoundHalf:  {},
}

// ValidVariableModes lists all valid variable modes.
var ValidVariableModes = map[VariableMode]struct{}{
	ModeValue:      {},
	ModeRankScore:  {},
	ModeRankPlayer: {},
	ModeTieCount:   {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
