package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/parquet"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// WriteBoardResults outputs the ranked scoreboard, dispatching based on the output format configured.
func WriteBoardResults(rows []schema.BoardRow, template *schema.GameTemplate, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtScore, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeBoardJSONResults(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeBoardCSVResults(rows, template, cfg, fmtScore); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeBoardParquetResults(rows, template, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBoardTable(rows, template, cfg, fmtScore, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeBoardJSONResults handles opening the file and calling the JSON writer.
func writeBoardJSONResults(rows []schema.BoardRow, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForBoard(w, rows)
	}, "Wrote JSON")
}

// writeBoardCSVResults handles opening the file and calling the CSV writer.
func writeBoardCSVResults(rows []schema.BoardRow, template *schema.GameTemplate, cfg *contract.Config, fmtScore func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForBoard(csvWriter, rows, template, fmtScore)
	}, "Wrote CSV")
}

// writeBoardParquetResults flattens the board and writes it through the
// parquet exporter. Parquet has no stdout form, so a file is required.
func writeBoardParquetResults(rows []schema.BoardRow, template *schema.GameTemplate, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	records := parquet.ConvertBoardRows(rows, template)
	if err := parquet.WritePlayerScoresParquet(records, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeBoardTable generates and writes the human-readable table.
func writeBoardTable(rows []schema.BoardRow, template *schema.GameTemplate, cfg *contract.Config, fmtScore func(float64) string, duration time.Duration, writer io.Writer) error {
	if template.Name != "" {
		title := template.Name
		if cfg.UseEmojis {
			title = "🏆 " + title
		}
		if _, err := fmt.Fprintln(writer, title); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	nameWidth := GetMaxTableNameWidth(cfg, len(template.Columns))
	headers := []string{"Rank", "Player"}
	for _, col := range template.Columns {
		headers = append(headers, truncateName(col.Name, nameWidth))
	}
	headers = append(headers, "Total", "Label")
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	positions := schema.BoardPositions(rows)
	var data [][]string
	for i, r := range rows {
		label := contract.GetPlainLabel(positions[i], len(rows))
		if cfg.UseColors {
			label = contract.GetColorLabel(positions[i], len(rows))
		}
		row := []string{
			strconv.Itoa(positions[i]),              // Rank
			truncateName(r.PlayerName, nameWidth),   // Player
		}
		for _, col := range template.Columns {
			row = append(row, fmtScore(r.ColumnScores[col.ID])) // Column score
		}
		row = append(row, fmtScore(r.Total), label) // Total + Label
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	// Compute summary stats
	if _, err := fmt.Fprintf(writer, "Showing %d players across %d columns (%d scoring)\n",
		len(rows), len(template.Columns), len(schema.ScoringColumns(template.Columns))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Scoring completed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForBoard writes the scoreboard in CSV format.
func writeCSVResultsForBoard(w *csv.Writer, rows []schema.BoardRow, template *schema.GameTemplate, fmtScore func(float64) string) error {
	// CSV header
	header := []string{"rank", "player"}
	for _, col := range template.Columns {
		header = append(header, col.Name)
	}
	header = append(header, "total", "label")
	if err := w.Write(header); err != nil {
		return err
	}
	positions := schema.BoardPositions(rows)
	for i, r := range rows {
		rec := []string{
			strconv.Itoa(positions[i]), // Rank
			r.PlayerName,               // Player
		}
		for _, col := range template.Columns {
			rec = append(rec, fmtScore(r.ColumnScores[col.ID])) // Column score
		}
		rec = append(rec,
			fmtScore(r.Total),                              // Total
			contract.GetPlainLabel(positions[i], len(rows)), // Label
		)
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForBoard writes the scoreboard in JSON format.
func writeJSONResultsForBoard(w io.Writer, rows []schema.BoardRow) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONBoardRow struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.BoardRow
	}

	positions := schema.BoardPositions(rows)
	output := make([]JSONBoardRow, len(rows))
	for i, r := range rows {
		output[i] = JSONBoardRow{
			Rank:     positions[i],
			Label:    contract.GetPlainLabel(positions[i], len(rows)),
			BoardRow: r,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
