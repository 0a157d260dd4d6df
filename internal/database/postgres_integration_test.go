//go:build integration

package database

import (
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"enibar/internal/config"
	"enibar/internal/models"
)

func startPostgres(t *testing.T) *gorm.DB {
	pg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Port(54329).
		Database("enibar").
		Username("enibar").
		Password("enibar"))
	require.NoError(t, pg.Start())
	t.Cleanup(func() { pg.Stop() })

	db, err := Open(config.Database{
		Driver:       config.DriverPostgres,
		Host:         "localhost",
		Port:         54329,
		User:         "enibar",
		Password:     "enibar",
		Name:         "enibar",
		SSLMode:      "disable",
		MaxOpenConns: 4,
		MaxIdleConns: 2,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	require.NoError(t, Migrate(db))
	return db
}

func seedManagers(t *testing.T, db *gorm.DB, logins ...string) {
	for _, login := range logins {
		require.NoError(t, db.Create(&models.Admin{Login: login, Password: "x", Rights: models.Rights{ManageUsers: true}}).Error)
	}
}

func countManagers(t *testing.T, db *gorm.DB) int64 {
	var count int64
	require.NoError(t, db.Model(&models.Admin{}).Where("manage_users = ?", true).Count(&count).Error)
	return count
}

// interleave runs first in one transaction, then other in a second one while
// the first is still open, commits the first and returns the error of other.
func interleave(t *testing.T, db *gorm.DB, first, other func(tx *gorm.DB) error) error {
	firstTx := db.Begin()
	require.NoError(t, firstTx.Error)
	otherTx := db.Begin()
	require.NoError(t, otherTx.Error)
	defer otherTx.Rollback()

	require.NoError(t, first(firstTx))

	done := make(chan error, 1)
	go func() {
		done <- other(otherTx)
	}()

	select {
	case err := <-done:
		firstTx.Rollback()
		t.Fatalf("second statement ran before the first committed: %v", err)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, firstTx.Commit().Error)

	select {
	case err := <-done:
		return err
	case <-time.After(10 * time.Second):
		t.Fatal("second statement never resumed")
		return nil
	}
}

func removeAdmin(login string) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		return tx.Exec("DELETE FROM admins WHERE login = ?", login).Error
	}
}

func revokeManageUsers(login string) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		return tx.Exec("UPDATE admins SET manage_users = ? WHERE login = ?", false, login).Error
	}
}

func TestPostgres_MigrateAndTrigger(t *testing.T) {
	db := startPostgres(t)
	require.NoError(t, Migrate(db))
	seedManagers(t, db, "root")

	err := revokeManageUsers("root")(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), TriggerMessage)

	err = removeAdmin("root")(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), TriggerMessage)

	seedManagers(t, db, "second")
	assert.NoError(t, removeAdmin("root")(db))
}

func TestPostgres_ConcurrentRemovalsKeepOneManager(t *testing.T) {
	db := startPostgres(t)
	seedManagers(t, db, "root", "second")

	err := interleave(t, db, removeAdmin("root"), removeAdmin("second"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), TriggerMessage)
	assert.Equal(t, int64(1), countManagers(t, db))
}

func TestPostgres_ConcurrentRevocationsKeepOneManager(t *testing.T) {
	db := startPostgres(t)
	seedManagers(t, db, "root", "second")

	err := interleave(t, db, revokeManageUsers("root"), revokeManageUsers("second"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), TriggerMessage)
	assert.Equal(t, int64(1), countManagers(t, db))
}
