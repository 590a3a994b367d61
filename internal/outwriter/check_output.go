package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// Status strings for check output.
const (
	statusOK     = "ok"
	statusBroken = "broken"
)

var brokenColor = color.New(color.FgRed, color.Bold)

// WriteCheckResults outputs the auto-column diagnostics, dispatching based on the output format configured.
func WriteCheckResults(issues []schema.ColumnIssue, template *schema.GameTemplate, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeCheckJSONResults(issues, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCheckCSVResults(issues, template, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Parquet makes no sense for a diagnostic listing, fall through to text
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckTable(issues, template, cfg, w)
		}, "Wrote table")
	}
	return nil
}

// writeCheckJSONResults handles opening the file and calling the JSON writer.
func writeCheckJSONResults(issues []schema.ColumnIssue, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForCheck(w, issues)
	}, "Wrote JSON")
}

// writeCheckCSVResults handles opening the file and calling the CSV writer.
func writeCheckCSVResults(issues []schema.ColumnIssue, template *schema.GameTemplate, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"column_id", "column", "formula", "status", "issue"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, issue := range issues {
				rec := []string{
					issue.ColumnID,
					issue.ColumnName,
					columnFormula(template, issue.ColumnID),
					issueStatus(issue.Issue),
					string(issue.Issue),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeCheckTable generates and writes the human-readable diagnostics table.
func writeCheckTable(issues []schema.ColumnIssue, template *schema.GameTemplate, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Column", "Formula", "Status"})

	broken := 0
	var data [][]string
	for _, issue := range issues {
		status := issueStatus(issue.Issue)
		if issue.Issue != schema.IssueNone {
			broken++
			if cfg.UseColors {
				status = brokenColor.Sprint(status)
			}
		}
		data = append(data, []string{
			issue.ColumnName,
			columnFormula(template, issue.ColumnID),
			status,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	var msg string
	if broken == 0 {
		msg = fmt.Sprintf("All %d auto columns are healthy", len(issues))
		if cfg.UseEmojis {
			msg = "✅ " + msg
		}
	} else {
		msg = fmt.Sprintf("%d of %d auto columns have issues", broken, len(issues))
		if cfg.UseEmojis {
			msg = "❌ " + msg
		}
	}
	_, err := fmt.Fprintln(writer, msg)
	return err
}

// writeJSONResultsForCheck writes the diagnostics in JSON format.
func writeJSONResultsForCheck(w io.Writer, issues []schema.ColumnIssue) error {
	type JSONColumnIssue struct {
		Status string `json:"status"`
		schema.ColumnIssue
	}

	output := make([]JSONColumnIssue, len(issues))
	for i, issue := range issues {
		output[i] = JSONColumnIssue{
			Status:      issueStatus(issue.Issue),
			ColumnIssue: issue,
		}
	}
	return writeJSON(w, output)
}

// issueStatus maps a diagnostic finding onto a short status word.
func issueStatus(issue schema.AutoColumnIssue) string {
	if issue == schema.IssueNone {
		return statusOK
	}
	return statusBroken
}

// columnFormula resolves the formula of a column for display.
func columnFormula(template *schema.GameTemplate, columnID string) string {
	if col := schema.ColumnByID(template.Columns, columnID); col != nil {
		return col.Formula
	}
	return ""
}
