package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type HydrationError struct {
	Err error
}

func (e *HydrationError) Error() string {
	return fmt.Sprintf("hydrate session: %v", e.Err)
}

func (e *HydrationError) Unwrap() error {
	return e.Err
}

// Hydrate restores the identity persisted under port.KeyUser.
func Hydrate(ctx context.Context, storage port.StateStorage) (State, error) {
	data, err := storage.Get(ctx, port.KeyUser)
	if err != nil {
		return Anonymous(), &HydrationError{Err: err}
	}

	var identity domain.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return Anonymous(), &HydrationError{Err: fmt.Errorf("json.Unmarshal: %w", err)}
	}

	if identity.ID == "" {
		return Anonymous(), &HydrationError{Err: fmt.Errorf("identity id is empty")}
	}
	if !identity.Role.Valid() {
		return Anonymous(), &HydrationError{Err: fmt.Errorf("identity[%s] role[%s] is not valid", identity.ID, identity.Role)}
	}

	return Authenticated(identity), nil
}

func IsAbsent(err error) bool {
	return errors.Is(err, port.ErrNotFound)
}
