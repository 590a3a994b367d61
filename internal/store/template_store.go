package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// TemplateStoreImpl handles durable template storage using various database backends.
type TemplateStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.TemplateStore = &TemplateStoreImpl{} // Compile-time check

// NewTemplateStore returns a template store bound to an open database handle.
// A nil handle produces a disabled store that reports not-found on reads and
// ignores writes.
func NewTemplateStore(db *sql.DB, backend schema.DatabaseBackend) contract.TemplateStore {
	return &TemplateStoreImpl{db: db, backend: backend}
}

// Get retrieves a template record by id.
func (ts *TemplateStoreImpl) Get(ctx context.Context, templateID string) (schema.TemplateRecord, error) {
	var record schema.TemplateRecord
	if ts.backend == schema.NoneBackend || ts.db == nil {
		return record, sql.ErrNoRows
	}

	quotedTableName := quoteTableName(templatesTable, ts.backend)
	query := fmt.Sprintf(`SELECT template_id, name, payload, updated_at FROM %s WHERE template_id = %s`,
		quotedTableName, placeholder(ts.backend, 1))

	var updatedAt int64
	row := ts.db.QueryRowContext(ctx, query, templateID)
	if err := row.Scan(&record.TemplateID, &record.Name, &record.Payload, &updatedAt); err != nil {
		return schema.TemplateRecord{}, err
	}
	record.UpdatedAt = time.Unix(updatedAt, 0)
	return record, nil
}

// Put inserts or replaces a template record.
func (ts *TemplateStoreImpl) Put(ctx context.Context, record schema.TemplateRecord) error {
	if ts.backend == schema.NoneBackend || ts.db == nil {
		return nil
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now()
	}

	query := ts.getUpsertQuery()
	_, err := ts.db.ExecContext(ctx, query, record.TemplateID, record.Name, record.Payload, record.UpdatedAt.Unix())
	return err
}

// Delete removes a template record by id. Deleting an absent id is not an error.
func (ts *TemplateStoreImpl) Delete(ctx context.Context, templateID string) error {
	if ts.backend == schema.NoneBackend || ts.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(templatesTable, ts.backend)
	query := fmt.Sprintf(`DELETE FROM %s WHERE template_id = %s`, quotedTableName, placeholder(ts.backend, 1))
	_, err := ts.db.ExecContext(ctx, query, templateID)
	return err
}

// List returns up to limit template records, most recently updated first.
func (ts *TemplateStoreImpl) List(ctx context.Context, limit int) ([]schema.TemplateRecord, error) {
	if ts.backend == schema.NoneBackend || ts.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(templatesTable, ts.backend)
	query := fmt.Sprintf(`SELECT template_id, name, payload, updated_at FROM %s ORDER BY updated_at DESC LIMIT %s`,
		quotedTableName, placeholder(ts.backend, 1))

	rows, err := ts.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []schema.TemplateRecord
	for rows.Next() {
		var record schema.TemplateRecord
		var updatedAt int64
		if err := rows.Scan(&record.TemplateID, &record.Name, &record.Payload, &updatedAt); err != nil {
			return nil, err
		}
		record.UpdatedAt = time.Unix(updatedAt, 0)
		records = append(records, record)
	}
	return records, rows.Err()
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ts *TemplateStoreImpl) getUpsertQuery() string {
	quotedTableName := quoteTableName(templatesTable, ts.backend)
	switch ts.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (template_id, name, payload, updated_at) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE name = new.name, payload = new.payload, updated_at = new.updated_at`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (template_id, name, payload, updated_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (template_id) DO UPDATE SET name = EXCLUDED.name, payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (template_id, name, payload, updated_at) VALUES (?, ?, ?, ?)`, quotedTableName)
	}
}

// GetStatus returns status information about the template store.
func (ts *TemplateStoreImpl) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ts.backend),
		Connected: ts.db != nil,
	}
	if ts.backend == schema.NoneBackend || ts.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(templatesTable, ts.backend)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := ts.db.QueryRowContext(ctx, countQuery).Scan(&status.Templates); err != nil {
		return status, fmt.Errorf("failed to count templates: %w", err)
	}
	if status.Templates == 0 {
		return status, nil
	}

	lastQuery := fmt.Sprintf("SELECT MAX(updated_at) FROM %s", quotedTableName)
	var lastTs int64
	if err := ts.db.QueryRowContext(ctx, lastQuery).Scan(&lastTs); err != nil {
		return status, fmt.Errorf("failed to get last write time: %w", err)
	}
	status.LastWriteTime = time.Unix(lastTs, 0)
	return status, nil
}

// Close closes the underlying DB connection.
func (ts *TemplateStoreImpl) Close() error {
	if ts.db != nil {
		return ts.db.Close()
	}
	return nil
}
