package repository

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"checador-report/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *GormExpectedHoursRepository {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return newTestRepoWithLogger(t, log)
}

func newTestRepoWithLogger(t *testing.T, log *logrus.Logger) *GormExpectedHoursRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	repo, err := NewGormExpectedHoursRepository(db, log)
	require.NoError(t, err)
	return repo
}

func TestExpectedHoursRepository_EmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	snapshot, err := repo.GetSnapshot()
	require.NoError(t, err)
	assert.Nil(t, snapshot)

	table, err := repo.LoadTable()
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestExpectedHoursRepository_ReplaceSnapshot(t *testing.T) {
	repo := newTestRepo(t)

	first := make(models.ExpectedHoursTable)
	first.Set(1, "Lunes", 28800)
	first.Set(1, "Martes", 28800)
	first.Set(2, "Lunes", 14400)

	saved, err := repo.ReplaceSnapshot(first, "aaaa", "test")
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Employees)
	assert.Equal(t, 3, saved.Rows)

	loaded, err := repo.LoadTable()
	require.NoError(t, err)
	assert.Equal(t, first, loaded)

	second := make(models.ExpectedHoursTable)
	second.Set(3, "Viernes", 3600)

	_, err = repo.ReplaceSnapshot(second, "bbbb", "test")
	require.NoError(t, err)

	loaded, err = repo.LoadTable()
	require.NoError(t, err)
	assert.Equal(t, second, loaded, "old rows must be replaced, not merged")

	snapshot, err := repo.GetSnapshot()
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, "bbbb", snapshot.DataHash)
	assert.Equal(t, 1, snapshot.Rows)
	assert.False(t, snapshot.LastUpdate.IsZero())
}

func TestExpectedHoursRepository_ReplaceWithEmptyTable(t *testing.T) {
	repo := newTestRepo(t)

	table := make(models.ExpectedHoursTable)
	table.Set(1, "Lunes", 28800)
	_, err := repo.ReplaceSnapshot(table, "aaaa", "test")
	require.NoError(t, err)

	_, err = repo.ReplaceSnapshot(models.ExpectedHoursTable{}, "empty", "test")
	require.NoError(t, err)

	loaded, err := repo.LoadTable()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestExpectedHoursRepository_UsesLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.WarnLevel)

	repo := newTestRepoWithLogger(t, log)
	_, err := repo.ReplaceSnapshot(models.ExpectedHoursTable{1: {"Lunes": 60}}, "h1", "test")
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	log.SetLevel(logrus.DebugLevel)
	_, err = repo.LoadTable()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Loaded expected hours records")
}
