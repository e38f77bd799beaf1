package database

import (
	"path/filepath"
	"testing"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/config"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "leads.db"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db))
	require.NoError(t, Ping(db))

	for _, model := range []interface{}{&models.User{}, &models.Buyer{}, &models.BuyerHistory{}, &models.SystemLog{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
