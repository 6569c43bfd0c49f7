//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	audit "pawdesk/pkg/platform/audit"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("pawdesk"),
		tcpostgres.WithUsername("pawdesk"),
		tcpostgres.WithPassword("pawdesk"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := New(db)
	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestPostgresStore_AppendAndListRecent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for _, e := range []string{"e1", "e2", "e3"} {
		require.NoError(t, store.Append(ctx, audit.NewEntry(audit.CategoryWeather, e, map[string]string{"seq": e})))
	}

	recent, err := store.ListRecent(ctx, audit.CategoryWeather, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "e2", recent[0].Event)
	assert.Equal(t, "e3", recent[1].Event)
	assert.Equal(t, map[string]string{"seq": "e3"}, recent[1].Detail)
}

func TestPostgresStore_AppendIsIdempotent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	entry := audit.NewEntry(audit.CategorySupplier, "fetch_suppliers_start", nil)
	require.NoError(t, store.Append(ctx, entry))
	require.NoError(t, store.Append(ctx, entry))

	list, err := store.ListRecent(ctx, audit.CategorySupplier, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPostgresStore_CategoriesAreIsolated(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, audit.NewEntry(audit.CategoryWeather, "w1", nil)))
	require.NoError(t, store.Append(ctx, audit.NewEntry(audit.CategoryPrinting, "p1", nil)))

	weather, err := store.ListRecent(ctx, audit.CategoryWeather, 10)
	require.NoError(t, err)
	require.Len(t, weather, 1)
	assert.Equal(t, "w1", weather[0].Event)
}
