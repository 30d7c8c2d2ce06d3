package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// Static is a read-only product catalog held in memory.
type Static struct {
	products []domain.Product
	byID     map[string]int
}

// New returns the default storefront catalog.
func New() *Static {
	s, err := NewStatic(defaultProducts)
	if err != nil {
		panic(err)
	}

	return s
}

func NewStatic(products []domain.Product) (*Static, error) {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product[%d] id is empty", i)
		}
		if _, ok := byID[p.ID]; ok {
			return nil, fmt.Errorf("product[%s] is duplicated", p.ID)
		}
		byID[p.ID] = i
	}

	return &Static{
		products: slices.Clone(products),
		byID:     byID,
	}, nil
}

var _ port.Catalog = (*Static)(nil)

func (s *Static) FetchAll(_ context.Context) ([]domain.Product, error) {
	return slices.Clone(s.products), nil
}

func (s *Static) FetchByID(_ context.Context, id string) (domain.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", id, domain.ErrProductNotFound)
	}

	return s.products[i], nil
}
