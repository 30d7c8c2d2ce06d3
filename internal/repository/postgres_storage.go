package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/port"
)

const (
	getStateSQL = `SELECT value FROM storefront_state WHERE owner_id = $1 AND key = $2`

	setStateSQL = `INSERT INTO storefront_state (owner_id, key, value, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (owner_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	deleteStateSQL = `DELETE FROM storefront_state WHERE owner_id = $1 AND key = $2`
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresStorage struct {
	q       querier
	ownerID string
}

func NewPostgres(pool *pgxpool.Pool, ownerID string) (port.StateStorage, error) {
	return newPostgres(pool, ownerID)
}

func NewPostgresWithTx(tx pgx.Tx, ownerID string) (port.StateStorage, error) {
	return newPostgres(tx, ownerID)
}

func newPostgres(q querier, ownerID string) (*postgresStorage, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	return &postgresStorage{
		q:       q,
		ownerID: ownerID,
	}, nil
}

func (r *postgresStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	var value []byte
	err := r.q.QueryRow(ctx, getStateSQL, r.ownerID, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("q.QueryRow[%s]: %w", key, err)
	}

	return value, nil
}

func (r *postgresStorage) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if _, err := r.q.Exec(ctx, setStateSQL, r.ownerID, key, value); err != nil {
		return fmt.Errorf("q.Exec[%s]: %w", key, err)
	}

	return nil
}

func (r *postgresStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if _, err := r.q.Exec(ctx, deleteStateSQL, r.ownerID, key); err != nil {
		return fmt.Errorf("q.Exec[%s]: %w", key, err)
	}

	return nil
}
