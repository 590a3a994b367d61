package cmd

import (
	"github.com/spf13/cobra"

	"github.com/louieddxu2/BoardGameScorePad-sub001/core"
	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
)

// boardCmd computes and prints the ranked scoreboard.
var boardCmd = &cobra.Command{
	Use:   "board [session-file]",
	Short: "Compute the ranked scoreboard for a session.",
	Long: `Load a session, resolve every column score, total up the scoring
columns and print a ranked board.

The session comes from a JSON file (positional argument) or from the store
(--session id). Legacy session shapes are migrated transparently on load.

Examples:
  # Score a session file
  scorepad board friday-night.json

  # Score a stored session
  scorepad board --session s-20260901

  # Export the board for spreadsheets
  scorepad board friday-night.json --output csv --output-file board.csv

  # Columnar export for DuckDB/pandas
  scorepad board friday-night.json --output parquet --output-file board.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sessionSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBoard(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot compute scoreboard", err)
		}
	},
}
