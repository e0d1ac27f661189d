//go:build integration

// Package integration runs the repositories and services against real
// PostgreSQL and Redis containers.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vendorhub/backend/internal/infrastructure/migration"
	"github.com/vendorhub/backend/migrations"
)

var (
	sharedPostgres    testcontainers.Container
	sharedPostgresDSN string
	sharedRedis       testcontainers.Container
	sharedRedisAddr   string
	containersMu      sync.Mutex
	databaseCounter   int
)

// TestDB is a migrated database inside the shared PostgreSQL container
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	DSN   string
}

// NewTestDB creates a fresh database in the shared container and applies the
// embedded migrations to it.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	containersMu.Lock()
	if sharedPostgres == nil {
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("vendorhub_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		if err != nil {
			containersMu.Unlock()
			require.NoError(t, err, "Failed to start PostgreSQL container")
		}
		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			containersMu.Unlock()
			require.NoError(t, err)
		}
		sharedPostgres, sharedPostgresDSN = container, dsn
	}
	databaseCounter++
	name := fmt.Sprintf("vh_test_%d", databaseCounter)
	adminDSN := sharedPostgresDSN
	containersMu.Unlock()

	admin, err := sql.Open("postgres", adminDSN)
	require.NoError(t, err)
	_, err = admin.ExecContext(ctx, "CREATE DATABASE "+name)
	require.NoError(t, err)
	require.NoError(t, admin.Close())

	host, err := sharedPostgres.Host(ctx)
	require.NoError(t, err)
	port, err := sharedPostgres.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	dsn := fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=%s sslmode=disable", host, port.Port(), name)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	m, err := migration.NewFromFS(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	t.Cleanup(func() { _ = sqlDB.Close() })
	return &TestDB{DB: db, SqlDB: sqlDB, DSN: dsn}
}

// NewTestRedis returns a client on the shared Redis container with an empty
// keyspace.
func NewTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	containersMu.Lock()
	if sharedRedis == nil {
		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{"6379/tcp"},
				WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			},
			Started: true,
		})
		if err != nil {
			containersMu.Unlock()
			require.NoError(t, err, "Failed to start Redis container")
		}
		addr, err := container.Endpoint(ctx, "")
		if err != nil {
			containersMu.Unlock()
			require.NoError(t, err)
		}
		sharedRedis, sharedRedisAddr = container, addr
	}
	addr := sharedRedisAddr
	containersMu.Unlock()

	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.FlushDB(ctx).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// terminateContainers stops the shared containers
func terminateContainers() {
	containersMu.Lock()
	defer containersMu.Unlock()
	ctx := context.Background()
	if sharedPostgres != nil {
		_ = sharedPostgres.Terminate(ctx)
		sharedPostgres = nil
	}
	if sharedRedis != nil {
		_ = sharedRedis.Terminate(ctx)
		sharedRedis = nil
	}
}
