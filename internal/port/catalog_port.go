package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type Catalog interface {
	FetchAll(ctx context.Context) ([]domain.Product, error)
	FetchByID(ctx context.Context, id string) (domain.Product, error)
}
