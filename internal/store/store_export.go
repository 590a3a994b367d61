package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/parquet"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// exportListLimit bounds how many records a single export pulls. Store sizes
// are human-scale (one row per authored template or played session), so this
// is generous.
const exportListLimit = 10000

// ExecuteStoreExport exports all stored templates and sessions to Parquet
// files for analytics use. Two files are written next to outputFile, one
// per dataset.
func ExecuteStoreExport(ctx context.Context, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	templates := Manager.GetTemplateStore()
	sessions := Manager.GetSessionStore()

	status, err := templates.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if !status.Connected {
		return errors.New("store backend is not connected, nothing to export")
	}

	templateRecords, err := templates.List(ctx, exportListLimit)
	if err != nil {
		return fmt.Errorf("failed to retrieve templates: %w", err)
	}
	sessionRecords, err := sessions.List(ctx, exportListLimit)
	if err != nil {
		return fmt.Errorf("failed to retrieve sessions: %w", err)
	}
	if len(templateRecords) == 0 && len(sessionRecords) == 0 {
		return errors.New("no store data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)

	templatesFile := outputFile + ".templates.parquet"
	if err := parquet.WriteTemplateRecordsParquet(parquet.ConvertTemplateRecords(templateRecords), templatesFile); err != nil {
		return fmt.Errorf("failed to write templates: %w", err)
	}
	fmt.Printf("Exported %d templates to: %s\n", len(templateRecords), templatesFile)

	sessionsFile := outputFile + ".sessions.parquet"
	if err := parquet.WriteSessionRecordsParquet(parquet.ConvertSessionRecords(sessionRecords), sessionsFile); err != nil {
		return fmt.Errorf("failed to write sessions: %w", err)
	}
	fmt.Printf("Exported %d sessions to: %s\n", len(sessionRecords), sessionsFile)

	return nil
}

// PrintStoreStatus prints store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Templates: %d\n", status.Templates)
	fmt.Printf("Sessions: %d\n", status.Sessions)
	if !status.LastWriteTime.IsZero() {
		fmt.Printf("Last Write: %s\n", status.LastWriteTime.Format("2006-01-02 15:04:05"))
	}
}
