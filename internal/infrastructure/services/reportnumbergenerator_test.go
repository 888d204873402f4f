package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"civicwatch/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&models.ReportModel{}))
	return gormDB
}

func seedReportNumber(t *testing.T, gormDB *gorm.DB, number string) {
	t.Helper()
	require.NoError(t, gormDB.Create(&models.ReportModel{
		Number:      number,
		Title:       "Broken streetlight",
		Description: "The streetlight at Elm and 5th has been out for a week.",
		Category:    "infrastructure",
		Severity:    "medium",
		Status:      "received",
	}).Error)
}

func todayKey() string {
	return time.Now().Format("20060102")
}

func TestReportNumberGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("empty table starts at 0001 and advances", func(t *testing.T) {
		gen := NewReportNumberGenerator(setupTestDB(t))

		first, err := gen.Generate(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("R-%s-0001", todayKey()), first)

		second, err := gen.Generate(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("R-%s-0002", todayKey()), second)
	})

	t.Run("seeds from the highest persisted number for the day", func(t *testing.T) {
		gormDB := setupTestDB(t)
		seedReportNumber(t, gormDB, fmt.Sprintf("R-%s-0003", todayKey()))
		seedReportNumber(t, gormDB, fmt.Sprintf("R-%s-0007", todayKey()))

		gen := NewReportNumberGenerator(gormDB)

		number, err := gen.Generate(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("R-%s-0008", todayKey()), number)
	})

	t.Run("other days do not affect the sequence", func(t *testing.T) {
		gormDB := setupTestDB(t)
		seedReportNumber(t, gormDB, "R-19990101-0042")

		gen := NewReportNumberGenerator(gormDB)

		number, err := gen.Generate(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("R-%s-0001", todayKey()), number)
	})

	t.Run("restart does not reissue persisted numbers", func(t *testing.T) {
		gormDB := setupTestDB(t)

		gen := NewReportNumberGenerator(gormDB)
		first, err := gen.Generate(ctx)
		require.NoError(t, err)
		seedReportNumber(t, gormDB, first)

		restarted := NewReportNumberGenerator(gormDB)
		second, err := restarted.Generate(ctx)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.Equal(t, fmt.Sprintf("R-%s-0002", todayKey()), second)
	})

	t.Run("malformed stored number restarts the day sequence", func(t *testing.T) {
		gormDB := setupTestDB(t)
		seedReportNumber(t, gormDB, fmt.Sprintf("R-%s-draft", todayKey()))

		gen := NewReportNumberGenerator(gormDB)

		number, err := gen.Generate(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("R-%s-0001", todayKey()), number)
	})
}

func TestSequenceSuffix(t *testing.T) {
	seq, ok := sequenceSuffix("R-20260901-0217")
	require.True(t, ok)
	assert.Equal(t, 217, seq)

	_, ok = sequenceSuffix("R-20260901-")
	assert.False(t, ok)

	_, ok = sequenceSuffix("nonumber")
	assert.False(t, ok)
}
