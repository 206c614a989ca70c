package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"postify/config"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gdb, mock
}

func TestCleanOrphansRemovesUnclaimedFiles(t *testing.T) {
	t.Setenv("UPLOADS_CLEANUP_ENABLED", "true")
	config.Reset()
	t.Cleanup(config.Reset)

	dir := t.TempDir()
	orphan := filepath.Join(dir, "1700000000000_ab12cd34.png")
	require.NoError(t, os.WriteFile(orphan, []byte("stale"), 0o644))

	db, mock := newTestDB(t)

	old := time.Now().Add(-2 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "file_path", "url", "claimed_at", "created_at", "updated_at"}).
		AddRow(1, orphan, "/uploads/1700000000000_ab12cd34.png", nil, old, old)

	mock.ExpectQuery("SELECT \\* FROM `uploaded_files` WHERE claimed_at IS NULL AND created_at <= \\?").
		WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `uploaded_files`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	cleanOrphansOnce(db)

	_, err := os.Stat(orphan)
	assert.True(t, os.IsNotExist(err), "orphan file should be removed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCleanOrphansDisabledByDefault(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	db, mock := newTestDB(t)

	// No expectations: the cleaner must not touch the store when disabled.
	cleanOrphansOnce(db)

	assert.NoError(t, mock.ExpectationsWereMet())
}
