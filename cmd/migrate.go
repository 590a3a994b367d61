package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/louieddxu2/BoardGameScorePad-sub001/core"
	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
)

// migrateCmd converts a legacy template or session document to the canonical format.
var migrateCmd = &cobra.Command{
	Use:   "migrate <file>",
	Short: "Migrate a legacy template or session JSON file to the canonical format.",
	Long: `Read a template or session document in any historical shape and emit
the canonical form: every column with an explicit formula, input type and
normalized lookup rules, every score as a flat parts array.

Documents carrying a "template" key are treated as sessions; everything
else as a standalone template. The migration is idempotent; running it on
an already-canonical document is a no-op. Unknown fields are dropped,
never errored on.

Examples:
  # Print the canonical form
  scorepad migrate old-template.json

  # Write the canonical form to a second file
  scorepad migrate old-template.json --output-file new-template.json

  # Rewrite the file in place
  scorepad migrate old-session.json --in-place`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		outputFile := cfg.OutputFile
		if cfg.InPlace {
			outputFile = args[0]
		}
		if err := runDocumentMigration(args[0], outputFile); err != nil {
			contract.LogFatal("Cannot migrate document", err)
		}
	},
}

// runDocumentMigration reads, migrates and re-emits one template or session
// document.
func runDocumentMigration(inputFile, outputFile string) error {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("cannot read input file: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("malformed input JSON: %w", err)
	}

	var migrated any
	if _, isSession := doc["template"]; isSession {
		session, err := core.ParseSession(data)
		if err != nil {
			return err
		}
		migrated = session
	} else {
		migrated = core.MigrateTemplate(doc)
	}

	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writeIndentedJSON(file, migrated); err != nil {
		return err
	}
	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 Wrote document to %s\n", outputFile)
	}
	return nil
}

func writeIndentedJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
