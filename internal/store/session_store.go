package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// SessionStoreImpl handles durable session storage using various database backends.
type SessionStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.SessionStore = &SessionStoreImpl{} // Compile-time check

// NewSessionStore returns a session store bound to an open database handle.
func NewSessionStore(db *sql.DB, backend schema.DatabaseBackend) contract.SessionStore {
	return &SessionStoreImpl{db: db, backend: backend}
}

// Get retrieves a session record by id.
func (ss *SessionStoreImpl) Get(ctx context.Context, sessionID string) (schema.SessionRecord, error) {
	var record schema.SessionRecord
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return record, sql.ErrNoRows
	}

	quotedTableName := quoteTableName(sessionsTable, ss.backend)
	query := fmt.Sprintf(`SELECT session_id, name, template_id, payload, updated_at FROM %s WHERE session_id = %s`,
		quotedTableName, placeholder(ss.backend, 1))

	var updatedAt int64
	row := ss.db.QueryRowContext(ctx, query, sessionID)
	if err := row.Scan(&record.SessionID, &record.Name, &record.TemplateID, &record.Payload, &updatedAt); err != nil {
		return schema.SessionRecord{}, err
	}
	record.UpdatedAt = time.Unix(updatedAt, 0)
	return record, nil
}

// Put inserts or replaces a session record.
func (ss *SessionStoreImpl) Put(ctx context.Context, record schema.SessionRecord) error {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now()
	}

	query := ss.getUpsertQuery()
	_, err := ss.db.ExecContext(ctx, query, record.SessionID, record.Name, record.TemplateID, record.Payload, record.UpdatedAt.Unix())
	return err
}

// Delete removes a session record by id. Deleting an absent id is not an error.
func (ss *SessionStoreImpl) Delete(ctx context.Context, sessionID string) error {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(sessionsTable, ss.backend)
	query := fmt.Sprintf(`DELETE FROM %s WHERE session_id = %s`, quotedTableName, placeholder(ss.backend, 1))
	_, err := ss.db.ExecContext(ctx, query, sessionID)
	return err
}

// List returns up to limit session records, most recently updated first.
func (ss *SessionStoreImpl) List(ctx context.Context, limit int) ([]schema.SessionRecord, error) {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(sessionsTable, ss.backend)
	query := fmt.Sprintf(`SELECT session_id, name, template_id, payload, updated_at FROM %s ORDER BY updated_at DESC LIMIT %s`,
		quotedTableName, placeholder(ss.backend, 1))

	rows, err := ss.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []schema.SessionRecord
	for rows.Next() {
		var record schema.SessionRecord
		var updatedAt int64
		if err := rows.Scan(&record.SessionID, &record.Name, &record.TemplateID, &record.Payload, &updatedAt); err != nil {
			return nil, err
		}
		record.UpdatedAt = time.Unix(updatedAt, 0)
		records = append(records, record)
	}
	return records, rows.Err()
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ss *SessionStoreImpl) getUpsertQuery() string {
	quotedTableName := quoteTableName(sessionsTable, ss.backend)
	switch ss.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (session_id, name, template_id, payload, updated_at) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE name = new.name, template_id = new.template_id, payload = new.payload, updated_at = new.updated_at`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (session_id, name, template_id, payload, updated_at) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (session_id) DO UPDATE SET name = EXCLUDED.name, template_id = EXCLUDED.template_id, payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (session_id, name, template_id, payload, updated_at) VALUES (?, ?, ?, ?, ?)`, quotedTableName)
	}
}

// GetStatus returns status information about the session store.
func (ss *SessionStoreImpl) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ss.backend),
		Connected: ss.db != nil,
	}
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(sessionsTable, ss.backend)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := ss.db.QueryRowContext(ctx, countQuery).Scan(&status.Sessions); err != nil {
		return status, fmt.Errorf("failed to count sessions: %w", err)
	}
	if status.Sessions == 0 {
		return status, nil
	}

	lastQuery := fmt.Sprintf("SELECT MAX(updated_at) FROM %s", quotedTableName)
	var lastTs int64
	if err := ss.db.QueryRowContext(ctx, lastQuery).Scan(&lastTs); err != nil {
		return status, fmt.Errorf("failed to get last write time: %w", err)
	}
	status.LastWriteTime = time.Unix(lastTs, 0)
	return status, nil
}

// Close closes the underlying DB connection.
func (ss *SessionStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}
