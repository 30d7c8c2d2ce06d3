package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// HydrationError explains why the persisted cart could not be restored.
type HydrationError struct {
	Err error
}

func (e *HydrationError) Error() string {
	return fmt.Sprintf("hydrate cart: %v", e.Err)
}

func (e *HydrationError) Unwrap() error {
	return e.Err
}

// Hydrate restores the cart persisted under port.KeyCart. Absent records wrap
// port.ErrNotFound; undecodable ones, or ones breaking the cart invariants,
// are reported as well. Callers decide what an unusable record means.
func Hydrate(ctx context.Context, storage port.StateStorage) (domain.Cart, error) {
	data, err := storage.Get(ctx, port.KeyCart)
	if err != nil {
		return domain.Cart{}, &HydrationError{Err: err}
	}

	c, err := decode(data)
	if err != nil {
		return domain.Cart{}, &HydrationError{Err: err}
	}

	return c, nil
}

func encode(c domain.Cart) ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []domain.LineItem{}
	}

	return json.Marshal(items)
}

func decode(data []byte) (domain.Cart, error) {
	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return domain.Cart{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.Product.ID == "" {
			return domain.Cart{}, fmt.Errorf("item[%d] product id is empty", i)
		}
		if _, ok := seen[item.Product.ID]; ok {
			return domain.Cart{}, fmt.Errorf("item[%d] product[%s] is duplicated", i, item.Product.ID)
		}
		if item.Quantity < 1 {
			return domain.Cart{}, fmt.Errorf("item[%d] quantity[%d]: %w", i, item.Quantity, domain.ErrInvalidQuantity)
		}
		seen[item.Product.ID] = struct{}{}
	}

	if len(items) == 0 {
		return domain.Cart{}, nil
	}

	return domain.Cart{Items: items}, nil
}

// IsAbsent reports whether a hydration error only means nothing was persisted yet.
func IsAbsent(err error) bool {
	return errors.Is(err, port.ErrNotFound)
}
