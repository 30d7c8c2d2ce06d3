package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/rs/zerolog"
)

// Listener observes every committed cart transition.
type Listener func(ctx context.Context, action Action, state domain.Cart) error

// Store owns the cart of one shopper. Each operation applies its transition
// and runs the listeners before the next operation starts.
type Store struct {
	mu           sync.Mutex
	state        domain.Cart
	listeners    []Listener
	orderLatency time.Duration
	log          zerolog.Logger
}

// Authenticator reports whether a shopper is signed in.
type Authenticator interface {
	IsAuthenticated() bool
}

type Option func(*Store)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithOrderLatency sets how long placing an order takes.
func WithOrderLatency(d time.Duration) Option {
	return func(s *Store) {
		s.orderLatency = d
	}
}

// WithListener registers l after the persistence listener.
func WithListener(l Listener) Option {
	return func(s *Store) {
		s.listeners = append(s.listeners, l)
	}
}

// NewStore hydrates the cart from storage, falling back to an empty cart when
// the record is absent or unusable, and writes every later transition through
// to storage.
func NewStore(ctx context.Context, storage port.StateStorage, opts ...Option) *Store {
	s := &Store{
		log: zerolog.Nop(),
	}
	s.listeners = []Listener{persist(storage)}

	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "cart").Logger()

	state, err := Hydrate(ctx, storage)
	switch {
	case err == nil:
		s.log.Debug().Int("items", len(state.Items)).Msg("cart restored")
	case IsAbsent(err):
		s.log.Debug().Msg("no persisted cart, starting empty")
	default:
		s.log.Warn().Err(err).Msg("persisted cart discarded, starting empty")
	}
	s.state = state

	return s
}

func persist(storage port.StateStorage) Listener {
	return func(ctx context.Context, _ Action, state domain.Cart) error {
		data, err := encode(state)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}

		if err := storage.Set(ctx, port.KeyCart, data); err != nil {
			return fmt.Errorf("storage.Set: %w", err)
		}

		return nil
	}
}

// Dispatch applies action. A rejected action leaves the cart untouched. Once
// committed, the new cart stays even if a listener fails; the listener error
// is returned.
func (s *Store) Dispatch(ctx context.Context, action Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dispatch(ctx, action)
}

func (s *Store) dispatch(ctx context.Context, action Action) error {
	next, err := Reduce(s.state, action)
	if err != nil {
		return err
	}
	s.state = next

	s.log.Debug().
		Stringer("action", action.Kind).
		Int("total_items", next.TotalItems()).
		Msg("cart updated")

	for _, l := range s.listeners {
		if err := l(ctx, action, next.Clone()); err != nil {
			s.log.Error().Err(err).Stringer("action", action.Kind).Msg("cart listener failed")
			return fmt.Errorf("listener[%s]: %w", action.Kind, err)
		}
	}

	return nil
}

func (s *Store) AddToCart(ctx context.Context, product domain.Product, quantity int) error {
	return s.Dispatch(ctx, Add(product, quantity))
}

// AddProduct resolves productID through catalog and adds a snapshot of it.
func (s *Store) AddProduct(ctx context.Context, catalog port.Catalog, productID string, quantity int) error {
	product, err := catalog.FetchByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("catalog.FetchByID: %w", err)
	}

	return s.AddToCart(ctx, product, quantity)
}

func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	return s.Dispatch(ctx, Remove(productID))
}

func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	return s.Dispatch(ctx, UpdateQuantity(productID, quantity))
}

func (s *Store) ClearCart(ctx context.Context) error {
	return s.Dispatch(ctx, Clear())
}

// Checkout places an order for the whole cart and empties it. The shopper
// must be signed in and the cart must not be empty. Placing the order takes
// the order latency and is not interrupted by ctx; the cart is locked
// meanwhile. The ordered cart is returned.
func (s *Store) Checkout(ctx context.Context, auth Authenticator) (domain.Cart, error) {
	ctx = context.WithoutCancel(ctx)

	if !auth.IsAuthenticated() {
		return domain.Cart{}, fmt.Errorf("checkout: %w", domain.ErrNotAuthenticated)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Items) == 0 {
		return domain.Cart{}, fmt.Errorf("checkout: %w", domain.ErrEmptyCart)
	}
	ordered := s.state.Clone()

	if s.orderLatency > 0 {
		time.Sleep(s.orderLatency)
	}

	if err := s.dispatch(ctx, Clear()); err != nil {
		return ordered, err
	}

	s.log.Info().
		Int("total_items", ordered.TotalItems()).
		Stringer("total_price", ordered.TotalPrice()).
		Msg("order placed")

	return ordered, nil
}

func (s *Store) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

func (s *Store) Items() []domain.LineItem {
	return s.Snapshot().Items
}

func (s *Store) TotalItems() int {
	return s.Snapshot().TotalItems()
}

func (s *Store) TotalPrice() domain.Money {
	return s.Snapshot().TotalPrice()
}
