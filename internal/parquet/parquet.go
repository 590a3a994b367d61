// Package parquet provides data structures and functions for exporting
// scoreboard and store data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// PlayerScore represents one resolved column score for one player on the
// final scoreboard. Each board export produces players x columns rows.
type PlayerScore struct {
	// TemplateID is the identifier of the game template that was scored
	TemplateID string `parquet:"template_id,snappy"`

	// TemplateName is the display name of the game template
	TemplateName string `parquet:"template_name,snappy"`

	// PlayerID is the identifier of the player within the session
	PlayerID string `parquet:"player_id,snappy"`

	// PlayerName is the display name of the player
	PlayerName string `parquet:"player_name,snappy"`

	// Position is the competition rank of the player (ties share a position)
	Position int32 `parquet:"position,snappy"`

	// Label is the plain rank label (Leader, Contender, Trailing)
	Label string `parquet:"label,snappy"`

	// ColumnID is the identifier of the scored column
	ColumnID string `parquet:"column_id,snappy"`

	// ColumnName is the display name of the scored column
	ColumnName string `parquet:"column_name,snappy"`

	// Score is the resolved score of this column for this player
	Score float64 `parquet:"score,snappy"`

	// IsScoring indicates whether this column contributes to the total
	IsScoring bool `parquet:"is_scoring,snappy"`

	// Total is the player's aggregated total across scoring columns
	Total float64 `parquet:"total,snappy"`

	// ExportTime is when the export was produced
	ExportTime time.Time `parquet:"export_time,snappy"`
}

// TemplateRecordRow represents one persisted game template.
// This struct maps to the scorepad_templates database table.
type TemplateRecordRow struct {
	// TemplateID is the unique identifier of the template
	TemplateID string `parquet:"template_id,snappy"`

	// Name is the display name of the template
	Name string `parquet:"name,snappy"`

	// PayloadBytes is the size of the stored JSON payload
	PayloadBytes int32 `parquet:"payload_bytes,snappy"`

	// UpdatedAt is the last write time of the record
	UpdatedAt time.Time `parquet:"updated_at,snappy"`
}

// SessionRecordRow represents one persisted play session.
// This struct maps to the scorepad_sessions database table.
type SessionRecordRow struct {
	// SessionID is the unique identifier of the session
	SessionID string `parquet:"session_id,snappy"`

	// Name is the display name of the session
	Name string `parquet:"name,snappy"`

	// TemplateID references the template the session was played with
	TemplateID string `parquet:"template_id,snappy"`

	// PayloadBytes is the size of the stored JSON payload
	PayloadBytes int32 `parquet:"payload_bytes,snappy"`

	// UpdatedAt is the last write time of the record
	UpdatedAt time.Time `parquet:"updated_at,snappy"`
}

// WritePlayerScoresParquet writes a slice of PlayerScore structs to a Parquet file.
func WritePlayerScoresParquet(data []PlayerScore, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// WriteTemplateRecordsParquet writes a slice of TemplateRecordRow structs to a Parquet file.
func WriteTemplateRecordsParquet(data []TemplateRecordRow, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// WriteSessionRecordsParquet writes a slice of SessionRecordRow structs to a Parquet file.
func WriteSessionRecordsParquet(data []SessionRecordRow, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// writeParquetFile writes records to a Parquet file using struct schema inference.
func writeParquetFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the struct tags
	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertBoardRows flattens a ranked scoreboard into PlayerScore records for
// Parquet export, one record per player per column.
func ConvertBoardRows(rows []schema.BoardRow, template *schema.GameTemplate) []PlayerScore {
	now := time.Now()
	positions := schema.BoardPositions(rows)
	result := make([]PlayerScore, 0, len(rows)*len(template.Columns))
	for i, row := range rows {
		label := contract.GetPlainLabel(positions[i], len(rows))
		for _, col := range template.Columns {
			result = append(result, PlayerScore{
				TemplateID:   template.ID,
				TemplateName: template.Name,
				PlayerID:     row.PlayerID,
				PlayerName:   row.PlayerName,
				Position:     int32(positions[i]),
				Label:        label,
				ColumnID:     col.ID,
				ColumnName:   col.Name,
				Score:        row.ColumnScores[col.ID],
				IsScoring:    col.IsScoring,
				Total:        row.Total,
				ExportTime:   now,
			})
		}
	}
	return result
}

// ConvertTemplateRecords converts schema.TemplateRecord to TemplateRecordRow for Parquet export.
func ConvertTemplateRecords(records []schema.TemplateRecord) []TemplateRecordRow {
	result := make([]TemplateRecordRow, len(records))
	for i, record := range records {
		result[i] = TemplateRecordRow{
			TemplateID:   record.TemplateID,
			Name:         record.Name,
			PayloadBytes: int32(len(record.Payload)),
			UpdatedAt:    record.UpdatedAt,
		}
	}
	return result
}

// ConvertSessionRecords converts schema.SessionRecord to SessionRecordRow for Parquet export.
func ConvertSessionRecords(records []schema.SessionRecord) []SessionRecordRow {
	result := make([]SessionRecordRow, len(records))
	for i, record := range records {
		result[i] = SessionRecordRow{
			SessionID:    record.SessionID,
			Name:         record.Name,
			TemplateID:   record.TemplateID,
			PayloadBytes: int32(len(record.Payload)),
			UpdatedAt:    record.UpdatedAt,
		}
	}
	return result
}
