package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_storefront_state.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

// assertStateStorage runs the behaviour every backend shares against storage.
func assertStateStorage(t *testing.T, storage port.StateStorage) {
	t.Helper()
	ctx := t.Context()

	key := gofakeit.Word() + "-" + gofakeit.UUID()
	first := []byte(fmt.Sprintf(`{"id":%q,"quantity":%d}`, gofakeit.UUID(), gofakeit.IntRange(1, 9)))
	second := []byte(`[]`)

	_, err := storage.Get(ctx, key)
	require.ErrorIs(t, err, port.ErrNotFound)

	require.NoError(t, storage.Set(ctx, key, first))

	got, err := storage.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(got))

	require.NoError(t, storage.Set(ctx, key, second))

	got, err = storage.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, string(second), string(got))

	require.NoError(t, storage.Delete(ctx, key))

	_, err = storage.Get(ctx, key)
	require.ErrorIs(t, err, port.ErrNotFound)

	// deleting an absent key is not an error
	require.NoError(t, storage.Delete(ctx, key))

	_, err = storage.Get(ctx, "")
	require.EqualError(t, err, "key is empty")
	require.EqualError(t, storage.Set(ctx, "", first), "key is empty")
	require.EqualError(t, storage.Delete(ctx, ""), "key is empty")
}
