package telemetry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
)

type tracedRow struct {
	ID   uint
	Name string
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db := openSQLite(t)
	plugin := telemetry.NewDBTracingPlugin(telemetry.DefaultDBTracingConfig(), zap.NewNop())

	require.NoError(t, plugin.Register(db))
	assert.Nil(t, db.Callback().Query().Get("vh_timing:after_query"))
}

func TestDBTracingPlugin_RecordsQuerySpans(t *testing.T) {
	recorder := installRecorder(t)
	db := openSQLite(t)

	cfg := telemetry.DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"
	require.NoError(t, telemetry.NewDBTracingPlugin(cfg, zap.NewNop()).Register(db))
	assert.NotNil(t, db.Callback().Query().Get("vh_timing:after_query"))

	ctx, span := telemetry.StartServiceSpan(t.Context(), "test", "query")
	require.NoError(t, db.WithContext(ctx).Create(&tracedRow{Name: "bolt"}).Error)
	var rows []tracedRow
	require.NoError(t, db.WithContext(ctx).Find(&rows).Error)
	span.End()

	assert.Len(t, rows, 1)
	assert.GreaterOrEqual(t, len(recorder.Ended()), 3)
}
