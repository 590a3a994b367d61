package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/louieddxu2/BoardGameScorePad-sub001/core"
	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/store"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// storeSetup loads minimal configuration needed for store-backed commands.
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

	// Initialize persistence with the loaded config
	if err := store.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	limit := viper.GetInt("limit")
	if limit <= 0 || limit > contract.MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", contract.MaxResultLimit, limit)
	}
	cfg.ResultLimit = limit

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store-backed commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// templatesCmd focused on template management.
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage stored game templates",
	Long: `Manage the game templates saved in the store.

Templates define the scoring rules of a game: its columns, formulas,
lookup tables and presentation. They are stored as canonical JSON and
migrated from legacy shapes on save.

Subcommands:
  list   - List stored templates, most recently updated first
  show   - Print one template's canonical JSON
  save   - Save a template file into the store (migrating legacy shapes)
  delete - Remove a template from the store

Examples:
  # Browse what's stored
  scorepad templates list

  # Save a (possibly legacy) template file
  scorepad templates save agricola.json`,
}

// templatesListCmd lists stored templates.
var templatesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List stored templates, most recently updated first",
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := storeManager.GetTemplateStore().List(rootCtx, cfg.ResultLimit)
		if err != nil {
			contract.LogFatal("Failed to list templates", err)
		}
		if len(records) == 0 {
			fmt.Println("No templates stored.")
			return
		}
		for _, record := range records {
			fmt.Printf("%s  %s  (updated %s)\n",
				record.TemplateID, record.Name, record.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
	},
}

// templatesShowCmd prints one template.
var templatesShowCmd = &cobra.Command{
	Use:     "show <template-id>",
	Short:   "Print one template's canonical JSON",
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		record, err := storeManager.GetTemplateStore().Get(rootCtx, args[0])
		if err != nil {
			contract.LogFatal("Failed to load template", err)
		}
		fmt.Println(record.Payload)
	},
}

// templatesSaveCmd saves a template file into the store.
var templatesSaveCmd = &cobra.Command{
	Use:   "save <template-file>",
	Short: "Save a template file into the store (migrating legacy shapes)",
	Long: `Read a template JSON file, migrate it to the canonical format and
upsert it into the store keyed by its id.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := saveTemplateFile(args[0]); err != nil {
			contract.LogFatal("Failed to save template", err)
		}
	},
}

// templatesDeleteCmd removes a template from the store.
var templatesDeleteCmd = &cobra.Command{
	Use:     "delete <template-id>",
	Short:   "Remove a template from the store",
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := storeManager.GetTemplateStore().Delete(rootCtx, args[0]); err != nil {
			contract.LogFatal("Failed to delete template", err)
		}
		fmt.Printf("Deleted template %s\n", args[0])
	},
}

// saveTemplateFile migrates a template document and upserts it into the store.
func saveTemplateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read template file: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("malformed template JSON: %w", err)
	}

	template := core.MigrateTemplate(doc)
	if template.ID == "" {
		return fmt.Errorf("template has no id")
	}

	payload, err := json.Marshal(template)
	if err != nil {
		return err
	}
	record := schema.TemplateRecord{
		TemplateID: template.ID,
		Name:       template.Name,
		Payload:    string(payload),
		UpdatedAt:  time.Now(),
	}
	if err := storeManager.GetTemplateStore().Put(rootCtx, record); err != nil {
		return err
	}
	fmt.Printf("Saved template %s (%s)\n", template.ID, template.Name)
	return nil
}
