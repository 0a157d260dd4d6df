package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"enibar/internal/config"
	"enibar/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open(config.Database{
		Driver:   config.DriverSQLite,
		DSN:      "file:" + name + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { Close(db) })
	return db
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "mysql"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestMigrate_CreatesTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"categories", "products", "price_description", "prices", "panels", "panel_content", "admins"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	assert.NoError(t, Migrate(db))
}

func TestTrigger_RejectsDeletingLastUserManager(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.Admin{Login: "root", Password: "x", Rights: models.Rights{ManageUsers: true}}).Error)

	err := db.Exec("DELETE FROM admins WHERE login = ?", "root").Error

	require.Error(t, err)
	assert.Contains(t, err.Error(), TriggerMessage)
	var count int64
	db.Model(&models.Admin{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestTrigger_RejectsRevokingLastUserManager(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.Admin{Login: "root", Password: "x", Rights: models.Rights{ManageUsers: true}}).Error)

	err := db.Exec("UPDATE admins SET manage_users = ? WHERE login = ?", false, "root").Error

	require.Error(t, err)
	assert.Contains(t, err.Error(), TriggerMessage)
}

func TestTrigger_AllowsWhenAnotherManagerRemains(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.Admin{Login: "root", Password: "x", Rights: models.Rights{ManageUsers: true}}).Error)
	require.NoError(t, db.Create(&models.Admin{Login: "second", Password: "x", Rights: models.Rights{ManageUsers: true}}).Error)

	assert.NoError(t, db.Exec("DELETE FROM admins WHERE login = ?", "root").Error)
}

func TestPostgresDSN(t *testing.T) {
	dsn := postgresDSN(config.Database{
		Host: "db", Port: 5433, User: "bar", Password: "pw", Name: "enibar", SSLMode: "disable",
	})
	assert.Equal(t, "host=db port=5433 user=bar dbname=enibar sslmode=disable password=pw", dsn)

	assert.Equal(t, "postgres://x", postgresDSN(config.Database{DSN: "postgres://x", Host: "ignored"}))
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, logLevel("silent"))
	assert.Equal(t, logger.Info, logLevel("INFO"))
	assert.Equal(t, logger.Warn, logLevel(""))
}
