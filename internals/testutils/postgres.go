//go:build integration

package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"skb_backend/internals/configs"
	database "skb_backend/internals/databases"
)

// StartPostgres runs a disposable postgres with every migration applied.
// The container is terminated when the test ends.
func StartPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("skb_test"),
		postgres.WithUsername("skb"),
		postgres.WithPassword("skb"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, database.MigrateUp(dsn))

	cfg := configs.DatabaseConfig{
		URL:           dsn,
		MaxOpenConns:  20,
		MaxIdleConns:  5,
		SlowThreshold: time.Second,
	}
	db, err := database.ConnectDB(cfg)
	require.NoError(t, err)
	database.TunePool(db, cfg)
	t.Cleanup(func() { database.Close(db) })
	return db
}
