package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type postgresStorageSuite struct {
	suite.Suite

	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestPostgresStorageSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	suite.Run(t, new(postgresStorageSuite))
}

// before all tests in the suite
func (suite *postgresStorageSuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)
}

// after all tests in the suite
func (suite *postgresStorageSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(suite.T().Context()))
	}
}

func (suite *postgresStorageSuite) TestNewPostgres() {
	tests := []struct {
		name      string
		ownerID   string
		wantError string
	}{
		{
			name:    "owner ID set: ok",
			ownerID: gofakeit.UUID(),
		},
		{
			name:      "empty owner ID: error",
			ownerID:   "",
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			storage, err := repository.NewPostgres(suite.pool, tt.ownerID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, storage)
		})
	}
}

func (suite *postgresStorageSuite) TestStateStorage() {
	defer suite.deleteAll()

	storage, err := repository.NewPostgres(suite.pool, gofakeit.UUID())
	suite.Require().NoError(err)

	assertStateStorage(suite.T(), storage)
}

func (suite *postgresStorageSuite) TestOwnersAreIsolated() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	alice, err := repository.NewPostgres(suite.pool, gofakeit.UUID())
	require.NoError(t, err)
	bob, err := repository.NewPostgres(suite.pool, gofakeit.UUID())
	require.NoError(t, err)

	require.NoError(t, alice.Set(ctx, port.KeyCart, []byte(`[{"quantity":2}]`)))

	_, err = bob.Get(ctx, port.KeyCart)
	require.ErrorIs(t, err, port.ErrNotFound)

	require.NoError(t, bob.Delete(ctx, port.KeyCart))

	got, err := alice.Get(ctx, port.KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"quantity":2}]`, string(got))
}

func (suite *postgresStorageSuite) TestWithTxRollback() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txStorage, err := repository.NewPostgresWithTx(tx, ownerID)
	require.NoError(t, err)

	require.NoError(t, txStorage.Set(ctx, port.KeyUser, []byte(`{"id":"1"}`)))
	require.NoError(t, tx.Rollback(ctx))

	storage, err := repository.NewPostgres(suite.pool, ownerID)
	require.NoError(t, err)

	_, err = storage.Get(ctx, port.KeyUser)
	require.ErrorIs(t, err, port.ErrNotFound)
}

func (suite *postgresStorageSuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE storefront_state")
	suite.NoError(err)
}
