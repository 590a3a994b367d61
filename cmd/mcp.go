package cmd

import (
	"github.com/spf13/cobra"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Scorepad MCP server",
	Long:  `Launch an MCP server that allows AI agents to score sessions, check templates, evaluate formulas and migrate legacy documents via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The protocol owns stdio, so setup must stay quiet.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
