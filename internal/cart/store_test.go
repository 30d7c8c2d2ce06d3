package cart_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStorage struct {
	port.StateStorage
	err error
}

func (s failingStorage) Set(context.Context, string, []byte) error {
	return s.err
}

type shopper bool

func (s shopper) IsAuthenticated() bool {
	return bool(s)
}

func persistedCart(t *testing.T, storage port.StateStorage) []domain.LineItem {
	t.Helper()

	data, err := storage.Get(t.Context(), port.KeyCart)
	require.NoError(t, err)

	var items []domain.LineItem
	require.NoError(t, json.Unmarshal(data, &items))

	return items
}

func TestStore_WriteThrough(t *testing.T) {
	ctx := t.Context()
	storage := repository.NewMemory()
	store := cart.NewStore(ctx, storage)

	p1 := priceOf("10.00")
	p2 := priceOf("2.50")

	require.NoError(t, store.AddToCart(ctx, p1, 2))
	require.NoError(t, store.AddToCart(ctx, p2, 1))

	persisted := persistedCart(t, storage)
	require.Len(t, persisted, 2)
	assert.Equal(t, p1.ID, persisted[0].Product.ID)
	assert.Equal(t, 2, persisted[0].Quantity)
	assert.True(t, p2.Price.Equal(persisted[1].Product.Price))

	assert.Equal(t, 3, store.TotalItems())
	assertMoney(t, "22.50", store.TotalPrice())

	require.NoError(t, store.ClearCart(ctx))
	assert.Empty(t, persistedCart(t, storage))
	assert.Empty(t, store.Items())
	assert.Equal(t, 0, store.TotalItems())
	assertMoney(t, "0", store.TotalPrice())

	data, err := storage.Get(ctx, port.KeyCart)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestStore_RejectedActionIsNotPersisted(t *testing.T) {
	ctx := t.Context()
	storage := repository.NewMemory()
	store := cart.NewStore(ctx, storage)

	err := store.AddToCart(ctx, priceOf("1.00"), 0)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = storage.Get(ctx, port.KeyCart)
	require.ErrorIs(t, err, port.ErrNotFound)
}

func TestStore_ProductWithoutIDIsNotPersisted(t *testing.T) {
	ctx := t.Context()
	storage, err := repository.NewFile(t.TempDir(), "tab-1")
	require.NoError(t, err)

	store := cart.NewStore(ctx, storage)
	require.NoError(t, store.AddToCart(ctx, priceOf("4.00"), 1))

	err = store.AddToCart(ctx, domain.Product{Name: "nameless", Price: priceOf("1.00").Price}, 1)
	require.ErrorIs(t, err, domain.ErrInvalidProduct)

	restarted := cart.NewStore(ctx, storage)
	assertCart(t, store.Snapshot(), restarted.Snapshot())
	assert.Equal(t, 1, restarted.TotalItems())
}

func TestStore_Hydration(t *testing.T) {
	p := priceOf("5.00")
	valid, err := json.Marshal([]domain.LineItem{{Product: p, Quantity: 3}})
	require.NoError(t, err)

	tests := []struct {
		name      string
		persisted []byte
		wantItems int
	}{
		{name: "absent: empty"},
		{name: "valid: restored", persisted: valid, wantItems: 3},
		{name: "malformed json: empty", persisted: []byte(`[{"product":`)},
		{name: "wrong shape: empty", persisted: []byte(`{"items":[]}`)},
		{name: "zero quantity: empty", persisted: []byte(`[{"product":{"id":"1","price":1},"quantity":0}]`)},
		{
			name:      "duplicate product: empty",
			persisted: []byte(`[{"product":{"id":"1","price":1},"quantity":1},{"product":{"id":"1","price":1},"quantity":2}]`),
		},
		{name: "null: empty", persisted: []byte(`null`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			storage := repository.NewMemory()
			if tt.persisted != nil {
				require.NoError(t, storage.Set(ctx, port.KeyCart, tt.persisted))
			}

			store := cart.NewStore(ctx, storage)
			assert.Equal(t, tt.wantItems, store.TotalItems())
		})
	}
}

func TestHydrate_Errors(t *testing.T) {
	ctx := t.Context()
	storage := repository.NewMemory()

	_, err := cart.Hydrate(ctx, storage)
	var hydrationErr *cart.HydrationError
	require.ErrorAs(t, err, &hydrationErr)
	assert.True(t, cart.IsAbsent(err))

	require.NoError(t, storage.Set(ctx, port.KeyCart, []byte(`{`)))

	_, err = cart.Hydrate(ctx, storage)
	require.ErrorAs(t, err, &hydrationErr)
	assert.False(t, cart.IsAbsent(err))
}

func TestStore_ListenerFailureKeepsState(t *testing.T) {
	ctx := t.Context()
	boom := errors.New("quota exceeded")
	store := cart.NewStore(ctx, failingStorage{StateStorage: repository.NewMemory(), err: boom})

	err := store.AddToCart(ctx, priceOf("1.00"), 1)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, store.TotalItems())
}

func TestStore_Listeners(t *testing.T) {
	ctx := t.Context()

	var seen []cart.ActionKind
	store := cart.NewStore(ctx, repository.NewMemory(), cart.WithListener(
		func(_ context.Context, action cart.Action, state domain.Cart) error {
			seen = append(seen, action.Kind)
			return nil
		},
	))

	p := priceOf("1.00")
	require.NoError(t, store.AddToCart(ctx, p, 1))
	require.NoError(t, store.UpdateQuantity(ctx, p.ID, 4))
	require.NoError(t, store.RemoveFromCart(ctx, p.ID))
	require.NoError(t, store.ClearCart(ctx))

	assert.Equal(t, []cart.ActionKind{cart.ActionAdd, cart.ActionUpdateQuantity, cart.ActionRemove, cart.ActionClear}, seen)
}

func TestStore_SurvivesRestart(t *testing.T) {
	ctx := t.Context()
	storage, err := repository.NewFile(t.TempDir(), "tab-1")
	require.NoError(t, err)

	c := catalog.New()

	store := cart.NewStore(ctx, storage)
	require.NoError(t, store.AddProduct(ctx, c, "1", 1))
	require.NoError(t, store.AddProduct(ctx, c, "6", 2))

	err = store.AddProduct(ctx, c, "404", 1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	restarted := cart.NewStore(ctx, storage)
	assertCart(t, store.Snapshot(), restarted.Snapshot())
	assertMoney(t, "1049.97", restarted.TotalPrice())
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	ctx := t.Context()
	store := cart.NewStore(ctx, repository.NewMemory())
	require.NoError(t, store.AddToCart(ctx, priceOf("1.00"), 1))

	items := store.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, store.TotalItems())
}

func TestStore_Checkout(t *testing.T) {
	ctx := t.Context()
	storage := repository.NewMemory()
	store := cart.NewStore(ctx, storage)

	_, err := store.Checkout(ctx, shopper(true))
	require.ErrorIs(t, err, domain.ErrEmptyCart)

	p := priceOf("12.50")
	require.NoError(t, store.AddToCart(ctx, p, 2))

	_, err = store.Checkout(ctx, shopper(false))
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Equal(t, 2, store.TotalItems())
	assert.Len(t, persistedCart(t, storage), 1)

	ordered, err := store.Checkout(ctx, shopper(true))
	require.NoError(t, err)
	assert.Equal(t, 2, ordered.TotalItems())
	assertMoney(t, "25.00", ordered.TotalPrice())

	assert.Empty(t, store.Items())
	assert.Empty(t, persistedCart(t, storage))
}

func TestStore_CheckoutIsNotCancellable(t *testing.T) {
	latency := 30 * time.Millisecond
	store := cart.NewStore(t.Context(), repository.NewMemory(), cart.WithOrderLatency(latency))
	require.NoError(t, store.AddToCart(t.Context(), priceOf("1.00"), 1))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	start := time.Now()
	_, err := store.Checkout(ctx, shopper(true))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), latency)
	assert.Empty(t, store.Items())
}
