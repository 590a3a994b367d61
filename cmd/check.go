package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/louieddxu2/BoardGameScorePad-sub001/core"
	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
)

// checkCmd diagnoses the auto columns of a session's template.
var checkCmd = &cobra.Command{
	Use:   "check [session-file]",
	Short: "Diagnose broken auto columns in a session's template.",
	Long: `Inspect every auto column of the session's template and report columns
that reference deleted columns or carry formulas that cannot evaluate.

Exits nonzero when any column is broken, so the command can gate template
changes in CI.

Examples:
  # Check a session file
  scorepad check friday-night.json

  # Check a stored session, machine-readable
  scorepad check --session s-20260901 --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sessionSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := core.ExecuteCheck(rootCtx, cfg, storeManager)
		if errors.Is(err, contract.ErrIssuesFound) {
			os.Exit(1)
		}
		if err != nil {
			contract.LogFatal("Cannot check template", err)
		}
	},
}
