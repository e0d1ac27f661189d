package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/infrastructure/config"
)

func TestNewDatabase_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:          "sqlite",
		SQLitePath:      "file::memory:",
		MaxOpenConns:    5,
		MaxIdleConns:    1,
		ConnMaxLifetime: 1,
		ConnMaxIdleTime: 1,
	}
	db, err := NewDatabase(cfg)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping())
	require.NoError(t, db.AutoMigrate())

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
