package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/louieddxu2/BoardGameScorePad-sub001/core"
	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// sessionsCmd focused on session management.
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored play sessions",
	Long: `Manage the play sessions saved in the store.

A session bundles a template with its players and their raw inputs.
Saving a session migrates legacy score shapes to the canonical form, so
old exports stay loadable.

Subcommands:
  list   - List stored sessions, most recently updated first
  save   - Save a session file into the store (migrating legacy shapes)
  delete - Remove a session from the store

Examples:
  # Browse what's stored
  scorepad sessions list

  # Save a session, then score it without the file
  scorepad sessions save friday-night.json
  scorepad board --session s-20260901`,
}

// sessionsListCmd lists stored sessions.
var sessionsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List stored sessions, most recently updated first",
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := storeManager.GetSessionStore().List(rootCtx, cfg.ResultLimit)
		if err != nil {
			contract.LogFatal("Failed to list sessions", err)
		}
		if len(records) == 0 {
			fmt.Println("No sessions stored.")
			return
		}
		for _, record := range records {
			fmt.Printf("%s  %s  [template %s]  (updated %s)\n",
				record.SessionID, record.Name, record.TemplateID,
				record.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
	},
}

// sessionsSaveCmd saves a session file into the store.
var sessionsSaveCmd = &cobra.Command{
	Use:   "save <session-file>",
	Short: "Save a session file into the store (migrating legacy shapes)",
	Long: `Parse a session JSON file, migrate its template and scores to the
canonical format and upsert it into the store keyed by its id.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := saveSessionFile(args[0]); err != nil {
			contract.LogFatal("Failed to save session", err)
		}
	},
}

// sessionsDeleteCmd removes a session from the store.
var sessionsDeleteCmd = &cobra.Command{
	Use:     "delete <session-id>",
	Short:   "Remove a session from the store",
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := storeManager.GetSessionStore().Delete(rootCtx, args[0]); err != nil {
			contract.LogFatal("Failed to delete session", err)
		}
		fmt.Printf("Deleted session %s\n", args[0])
	},
}

// saveSessionFile parses a session document and upserts it into the store.
// The parse runs the full migration pipeline, so the stored payload is
// always canonical.
func saveSessionFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read session file: %w", err)
	}
	session, err := core.ParseSession(data)
	if err != nil {
		return err
	}
	if session.ID == "" {
		return fmt.Errorf("session has no id")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	record := schema.SessionRecord{
		SessionID:  session.ID,
		Name:       session.Name,
		TemplateID: session.Template.ID,
		Payload:    string(payload),
		UpdatedAt:  time.Now(),
	}
	if err := storeManager.GetSessionStore().Put(rootCtx, record); err != nil {
		return err
	}
	fmt.Printf("Saved session %s (%s)\n", session.ID, session.Name)
	return nil
}
