package contract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// Default values for configuration.
const (
	DefaultPrecision   = 2
	MaxPrecision       = 4
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
)

// Config holds the runtime configuration for a command.
// This struct remains the "final, validated" config.
type Config struct {
	SessionFile string // Path to a session JSON file (set by positional arg)
	SessionID   string // Session id in the store, used when no file is given
	TemplateID  string // Template id in the store

	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	ResultLimit int
	Width       int // Terminal width override (0 = auto-detect)

	UseColors bool
	UseEmojis bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	// EvalVars holds the variable bindings for the eval command.
	EvalVars map[string]float64

	// EvalTables maps function names to mapping-rule files for the eval command.
	EvalTables map[string]string

	// InPlace rewrites the input file for the migrate command.
	InPlace bool
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.EvalVars != nil {
		clone.EvalVars = make(map[string]float64, len(c.EvalVars))
		for name, value := range c.EvalVars {
			clone.EvalVars[name] = value
		}
	}
	if c.EvalTables != nil {
		clone.EvalTables = make(map[string]string, len(c.EvalTables))
		for name, path := range c.EvalTables {
			clone.EvalTables[name] = path
		}
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SessionFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	SessionID      string `mapstructure:"session"`
	TemplateID     string `mapstructure:"template"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Limit          int    `mapstructure:"limit"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	Emoji          string `mapstructure:"emoji"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Fields from evalCmd.Flags() ---
	Vars   []string `mapstructure:"var"`
	Tables []string `mapstructure:"table"`

	// --- Fields from migrateCmd.Flags() ---
	InPlace bool `mapstructure:"in-place"`
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.SessionFile = strings.TrimSpace(input.SessionFileStr)
	cfg.SessionID = strings.TrimSpace(input.SessionID)
	cfg.TemplateID = strings.TrimSpace(input.TemplateID)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 3. Store Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	// --- 4. Eval Variable and Table Bindings ---
	vars, err := ParseVarBindings(input.Vars)
	if err != nil {
		return err
	}
	cfg.EvalVars = vars

	tables, err := ParseTableBindings(input.Tables)
	if err != nil {
		return err
	}
	cfg.EvalTables = tables
	cfg.InPlace = input.InPlace

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseVarBindings parses repeated --var flags of the form name=number into
// a variable map for the evaluator.
func ParseVarBindings(bindings []string) (map[string]float64, error) {
	if len(bindings) == 0 {
		return nil, nil
	}
	vars := make(map[string]float64, len(bindings))
	for _, binding := range bindings {
		name, valueStr, found := strings.Cut(binding, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --var binding '%s', expected name=number", binding)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --var value '%s' for %s: %w", valueStr, name, err)
		}
		vars[name] = value
	}
	return vars, nil
}

// ParseTableBindings parses repeated --table flags of the form name=rules.json
// into a function-name to file-path map. The files are read later by the
// command, not here.
func ParseTableBindings(bindings []string) (map[string]string, error) {
	if len(bindings) == 0 {
		return nil, nil
	}
	tables := make(map[string]string, len(bindings))
	for _, binding := range bindings {
		name, path, found := strings.Cut(binding, "=")
		name = strings.TrimSpace(name)
		path = strings.TrimSpace(path)
		if !found || name == "" || path == "" {
			return nil, fmt.Errorf("invalid --table binding '%s', expected name=rules.json", binding)
		}
		tables[name] = path
	}
	return tables, nil
}
