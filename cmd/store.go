package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/store"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for the migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on store management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the template and session store",
	Long: `Manage the database that persists templates and sessions.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics and connection info
  export  - Export templates and sessions to Parquet for analytics
  migrate - Run database schema migrations

Examples:
  # Check store status
  scorepad store status

  # Export for analysis in pandas/DuckDB
  scorepad store export --output-file scorepad-data`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the template and session store.

Displays:
- Backend type and connection status
- Total number of stored templates and sessions
- Last write timestamp

Examples:
  # Check store status
  scorepad store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		templateStatus, err := storeManager.GetTemplateStore().GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		sessionStatus, err := storeManager.GetSessionStore().GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}

		// Merge the per-store views into one report
		templateStatus.Sessions = sessionStatus.Sessions
		if sessionStatus.LastWriteTime.After(templateStatus.LastWriteTime) {
			templateStatus.LastWriteTime = sessionStatus.LastWriteTime
		}
		store.PrintStoreStatus(templateStatus)
	},
}

// storeExportCmd exports store data to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export templates and sessions to Parquet for analytics",
	Long: `Export all stored templates and sessions to Parquet format.

Two files are written next to --output-file, one per dataset:
  <output-file>.templates.parquet
  <output-file>.sessions.parquet

Parquet format enables fast querying with DuckDB, Apache Spark and pandas.

Requires: --output-file parameter

Examples:
  # Export all data
  scorepad store export --output-file scorepad-data

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('scorepad-data.sessions.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ExecuteStoreExport(rootCtx, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export store data", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the template and session store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  scorepad store migrate

  # Rollback everything
  scorepad store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
