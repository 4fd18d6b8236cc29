package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balanceai/wellness-backend/internal/database"
	"github.com/balanceai/wellness-backend/internal/models"
	"github.com/balanceai/wellness-backend/internal/testhelpers"
)

func TestRunMigrationsSQLiteFallsBackToAutoMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	// The directory does not exist; SQLite never reads it.
	assert.NoError(t, database.RunMigrations(db, "no-such-dir"))

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.DailyGuidance{}))
}

func TestRunMigrationsAppliesAndRecordsFiles(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)

	dir := t.TempDir()
	writeMigration(t, dir, "0001_create_notes.sql",
		"CREATE TABLE guidance_notes (id SERIAL PRIMARY KEY, body TEXT NOT NULL);")
	writeMigration(t, dir, "0002_seed_notes.sql",
		"INSERT INTO guidance_notes (body) VALUES ('drink water');")
	writeMigration(t, dir, "README.txt", "not a migration")

	assert.NoError(t, database.RunMigrations(db, dir))

	var bodies int64
	assert.NoError(t, db.Table("guidance_notes").Count(&bodies).Error)
	assert.Equal(t, int64(1), bodies)

	var applied int64
	assert.NoError(t, db.Table("migrations").Count(&applied).Error)
	assert.Equal(t, int64(2), applied)

	// A second run skips everything already recorded.
	assert.NoError(t, database.RunMigrations(db, dir))

	assert.NoError(t, db.Table("guidance_notes").Count(&bodies).Error)
	assert.Equal(t, int64(1), bodies)
	assert.NoError(t, db.Table("migrations").Count(&applied).Error)
	assert.Equal(t, int64(2), applied)
}

func TestRunMigrationsMissingDirectory(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)

	err := database.RunMigrations(db, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read migrations directory")
}

func writeMigration(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write migration file: %v", err)
	}
}
