package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/notify"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/registry"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/session"
	"github.com/nikolayk812/storefront/pkg/config"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// app owns the stores for the lifetime of one invocation.
type app struct {
	catalog *catalog.Static
	session *session.Store
	cart    *cart.Store
	out     io.Writer
	log     zerolog.Logger

	closers []func() error
}

func newApp(ctx context.Context, cfg config.Config, log zerolog.Logger, out io.Writer) (*app, error) {
	a := &app{
		catalog: catalog.New(),
		out:     out,
		log:     log,
	}

	storage, err := a.openStorage(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("openStorage[%s]: %w", cfg.Storage.Driver, err)
	}

	accounts, err := registry.New(registry.DefaultAccounts(), bcrypt.MinCost)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("registry.New: %w", err)
	}

	a.session = session.NewStore(ctx, storage, accounts, notify.NewLog(log),
		session.WithLogger(log),
		session.WithLatency(cfg.SimulatedLatency),
	)
	a.cart = cart.NewStore(ctx, storage,
		cart.WithLogger(log),
		cart.WithOrderLatency(cfg.OrderLatency),
	)

	return a, nil
}

func (a *app) openStorage(ctx context.Context, cfg config.Config) (port.StateStorage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return repository.NewMemory(), nil

	case config.DriverFile:
		return repository.NewFile(cfg.Storage.Dir, cfg.OwnerID)

	case config.DriverRedis:
		client, err := cfg.Redis.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("redis.New: %w", err)
		}
		a.closers = append(a.closers, client.Close)

		return repository.NewRedis(client, cfg.OwnerID, cfg.Redis.TTL)

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		a.closers = append(a.closers, func() error {
			pool.Close()
			return nil
		})

		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("pool.Ping: %w", err)
		}

		return repository.NewPostgres(pool, cfg.OwnerID)

	default:
		return nil, fmt.Errorf("storage driver[%s] is not supported", cfg.Storage.Driver)
	}
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn().Err(err).Msg("close failed")
		}
	}
	a.closers = nil
}
