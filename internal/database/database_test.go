package database

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "data/aven.db?_pragma=foreign_keys(1)", sqliteDSN("data/aven.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "file:x?_pragma=foreign_keys(0)", sqliteDSN("file:x?_pragma=foreign_keys(0)"))
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@h/db"))
	assert.True(t, IsPostgres("postgresql://u:p@h/db"))
	assert.False(t, IsPostgres("data/aven.db"))
}

func TestConnect_SQLiteFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "aven.db")

	db, err := Connect(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
	assert.FileExists(t, path)
}

func TestConnect_GormErrorsGoThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	db, err := Connect("file:gormlog?mode=memory&cache=shared", WithLogger(log))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, db.Exec("CREATE TABLE parent (id TEXT PRIMARY KEY)").Error)
	require.NoError(t, db.Exec("CREATE TABLE child (id TEXT PRIMARY KEY, parent_id TEXT REFERENCES parent(id))").Error)
	require.Error(t, db.Exec("INSERT INTO child (id, parent_id) VALUES ('c', 'missing')").Error)

	assert.NotContains(t, buf.String(), "\x1b[", "no colour codes")
	var found bool
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		if entry["component"] == "gorm" {
			found = true
			assert.Equal(t, "ERROR", entry["level"])
		}
	}
	assert.True(t, found, "gorm failure logged as JSON: %s", buf.String())
}
