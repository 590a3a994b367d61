package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "scorepad_test.db")
	db, err := openDatabase(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestTemplateStoreRoundTrip tests CRUD against a real SQLite file.
func TestTemplateStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	ts := NewTemplateStore(openTestDB(t), schema.SQLiteBackend)

	record := schema.TemplateRecord{
		TemplateID: "tpl-1",
		Name:       "Agricola",
		Payload:    `{"id":"tpl-1","name":"Agricola","columns":[]}`,
		UpdatedAt:  time.Unix(1700000000, 0),
	}
	assert.NoError(t, ts.Put(ctx, record))

	got, err := ts.Get(ctx, "tpl-1")
	assert.NoError(t, err)
	assert.Equal(t, record.Name, got.Name)
	assert.Equal(t, record.Payload, got.Payload)
	assert.Equal(t, record.UpdatedAt.Unix(), got.UpdatedAt.Unix())

	// Upsert replaces in place
	record.Name = "Agricola (revised)"
	record.UpdatedAt = time.Unix(1700000100, 0)
	assert.NoError(t, ts.Put(ctx, record))
	got, err = ts.Get(ctx, "tpl-1")
	assert.NoError(t, err)
	assert.Equal(t, "Agricola (revised)", got.Name)

	assert.NoError(t, ts.Delete(ctx, "tpl-1"))
	_, err = ts.Get(ctx, "tpl-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

// TestTemplateStoreList tests ordering and limiting.
func TestTemplateStoreList(t *testing.T) {
	ctx := context.Background()
	ts := NewTemplateStore(openTestDB(t), schema.SQLiteBackend)

	for i, id := range []string{"old", "mid", "new"} {
		assert.NoError(t, ts.Put(ctx, schema.TemplateRecord{
			TemplateID: id,
			Name:       id,
			Payload:    "{}",
			UpdatedAt:  time.Unix(int64(1700000000+i*60), 0),
		}))
	}

	records, err := ts.List(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "new", records[0].TemplateID)
	assert.Equal(t, "mid", records[1].TemplateID)
}

// TestSessionStoreRoundTrip tests session CRUD and status reporting.
func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	ss := NewSessionStore(openTestDB(t), schema.SQLiteBackend)

	record := schema.SessionRecord{
		SessionID:  "s-1",
		Name:       "Friday night",
		TemplateID: "tpl-1",
		Payload:    `{"id":"s-1","players":[]}`,
		UpdatedAt:  time.Unix(1700000000, 0),
	}
	assert.NoError(t, ss.Put(ctx, record))

	got, err := ss.Get(ctx, "s-1")
	assert.NoError(t, err)
	assert.Equal(t, "tpl-1", got.TemplateID)

	status, err := ss.GetStatus(ctx)
	assert.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(1), status.Sessions)
	assert.Equal(t, record.UpdatedAt.Unix(), status.LastWriteTime.Unix())

	assert.NoError(t, ss.Delete(ctx, "s-1"))
	records, err := ss.List(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

// TestNoneBackendStores ensures the disabled backend behaves as a black hole.
func TestNoneBackendStores(t *testing.T) {
	ctx := context.Background()
	ts := NewTemplateStore(nil, schema.NoneBackend)
	ss := NewSessionStore(nil, schema.NoneBackend)

	assert.NoError(t, ts.Put(ctx, schema.TemplateRecord{TemplateID: "x"}))
	_, err := ts.Get(ctx, "x")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	records, err := ss.List(ctx, 10)
	assert.NoError(t, err)
	assert.Nil(t, records)

	status, err := ss.GetStatus(ctx)
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, ts.Close())
	assert.NoError(t, ss.Close())
}

// TestInitStores tests the global manager lifecycle.
func TestInitStores(t *testing.T) {
	t.Run("idempotent setup with none backend", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err1 := InitStores(schema.NoneBackend, "")
		err2 := InitStores(schema.NoneBackend, "")
		assert.NoError(t, err1)
		assert.NoError(t, err2)

		assert.NotNil(t, Manager.GetTemplateStore())
		assert.NotNil(t, Manager.GetSessionStore())

		CloseStores()
		CloseStores()
	})

	t.Run("sqlite setup in temp dir", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		dbPath := filepath.Join(t.TempDir(), "scorepad.db")
		assert.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		assert.NotNil(t, Manager.GetTemplateStore())
		CloseStores()
	})
}

// TestValidateTableName tests identifier validation.
func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName("scorepad_templates"))
	assert.NoError(t, validateTableName("_private"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("1bad"))
	assert.Error(t, validateTableName("drop table; --"))
}

// TestQuoteTableName tests backend-specific quoting.
func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`scorepad_templates`", quoteTableName("scorepad_templates", schema.MySQLBackend))
	assert.Equal(t, `"scorepad_templates"`, quoteTableName("scorepad_templates", schema.PostgreSQLBackend))
	assert.Equal(t, `"scorepad_templates"`, quoteTableName("scorepad_templates", schema.SQLiteBackend))
}

// TestMigrateStoreSQLite runs the embedded migrations against a fresh file.
func TestMigrateStoreSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	assert.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))
	// A second run is a no-op
	assert.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))
	// Roll everything back
	assert.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 0))
}

// TestMigrateStoreNoneBackend rejects migration without a database.
func TestMigrateStoreNoneBackend(t *testing.T) {
	assert.Error(t, MigrateStore(schema.NoneBackend, "", -1))
}
