package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) (*Database, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	db, err := NewDatabase(dbPath, WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, dbPath
}

func TestNewDatabase(t *testing.T) {
	db, dbPath := setupTestDB(t)

	t.Run("creates the file", func(t *testing.T) {
		_, err := os.Stat(dbPath)
		assert.NoError(t, err)
	})

	t.Run("creates the schema", func(t *testing.T) {
		for _, table := range []string{"items", "books", "audiobooks", "ratings"} {
			assert.True(t, db.DB.Migrator().HasTable(table), table)
		}
	})

	t.Run("enables foreign keys", func(t *testing.T) {
		var enabled int
		require.NoError(t, db.DB.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
		assert.Equal(t, 1, enabled)
	})

	t.Run("initialize is idempotent", func(t *testing.T) {
		require.NoError(t, db.DB.Create(&ItemRow{Title: "Survivor", Year: 2000, AcquisitionDate: "2024-01-01T00:00:00.000000000Z", Kind: "Book"}).Error)

		require.NoError(t, db.Initialize())
		require.NoError(t, db.Initialize())

		var count int64
		require.NoError(t, db.DB.Model(&ItemRow{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestNewDatabase_ReopensExistingFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	first, err := NewDatabase(dbPath, WithLogLevel(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, first.DB.Create(&ItemRow{Title: "Kept", Year: 1999, AcquisitionDate: "2024-01-01T00:00:00.000000000Z", Kind: "Audiobook"}).Error)
	require.NoError(t, first.Close())

	second, err := NewDatabase(dbPath, WithLogLevel(logger.Silent))
	require.NoError(t, err)
	defer second.Close()

	var row ItemRow
	require.NoError(t, second.DB.First(&row).Error)
	assert.Equal(t, "Kept", row.Title)
}

func TestNewDatabase_UnreachablePath(t *testing.T) {
	_, err := NewDatabase(filepath.Join(t.TempDir(), "missing", "dir", "catalog.db"), WithLogLevel(logger.Silent))
	require.Error(t, err)
	assert.True(t, IsPersistenceError(err))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.LogLevel
	}{
		{"silent", logger.Silent},
		{" ERROR ", logger.Error},
		{"info", logger.Info},
		{"warn", logger.Warn},
		{"", logger.Warn},
		{"verbose", logger.Warn},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestPersistenceError(t *testing.T) {
	err := &PersistenceError{Op: "insert", Err: ErrItemNotFound}

	assert.Equal(t, "catalog insert failed: catalog item not found", err.Error())
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.True(t, IsPersistenceError(err))
	assert.False(t, IsPersistenceError(ErrItemNotFound))
}
