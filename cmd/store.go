package cmd

import (
	"fmt"

	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/cohort-tools/cohort/internal/gradestore"
	"github.com/cohort-tools/cohort/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	var err error
	store, err = gradestore.NewGradeStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to open score store: %w", err)
	}

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on score store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by analysis commands. This avoids source entry
// validation and complex config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the normalized score store",
	Long: `Manage the database that holds ingested assessment scores.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored assessments and scores
  export  - Export stored data to Parquet files
  migrate - Run schema migrations

Examples:
  # Check store status
  cohort store status

  # Start over with a clean store
  cohort store clear`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the score store.

Displays:
- Backend type and connection status
- Total assessments and score rows
- Last ingestion timestamp
- Per-table row counts

Examples:
  # Check store status
  cohort store status

  # Check a MySQL store (set connection string via env variable)
  COHORT_STORE_BACKEND=mysql COHORT_STORE_DB_CONNECT="..." cohort store status`,
	PreRunE: storeSetupWrapper,
	PostRun: closeStore,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		gradestore.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored assessments and scores",
	Long: `Delete all ingested assessments and scores from the configured backend.

Use this when:
- Starting a new academic term
- Test data polluted the store
- An ingest used the wrong column mapping across many files

Individual assessments do not need clearing: re-ingesting a file replaces
that assessment's rows wholesale.

Examples:
  # Clear the default SQLite store
  cohort store clear`,
	PreRunE: storeSetupWrapper,
	PostRun: closeStore,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeExportCmd exports stored data to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored assessments and scores to Parquet files",
	Long: `Export all stored data to Parquet files for downstream analytics.

Two files are written, derived from --output-file:
  <output-file>.assessments.parquet - one row per assessment
  <output-file>.scores.parquet      - one row per normalized score

Examples:
  # Export everything for the data team
  cohort store export --output-file cohort-2026`,
	PreRunE: storeSetupWrapper,
	PostRun: closeStore,
	Run: func(_ *cobra.Command, _ []string) {
		if err := gradestore.ExecuteStoreExport(store, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export store", err)
		}
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations on the score store",
	Long: `Apply schema migrations to the configured store backend.

By default the store migrates to the latest version. Use --target-version
to migrate to a specific version, or 0 to roll everything back.

Examples:
  # Migrate to the latest schema
  cohort store migrate

  # Roll back everything
  cohort store migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations open their own connection; skip the store handle.
		return loadConfigFile()
	},
	Run: func(_ *cobra.Command, _ []string) {
		backend := schema.DatabaseBackend(viper.GetString("store-backend"))
		connStr := viper.GetString("store-db-connect")
		targetVersion := viper.GetInt("target-version")
		if err := gradestore.MigrateStore(backend, connStr, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
