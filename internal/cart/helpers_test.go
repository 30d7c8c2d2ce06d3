package cart_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func randomProduct() domain.Product {
	return domain.Product{
		ID:          gofakeit.UUID(),
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Category:    domain.CategoryHome,
		ImageURL:    gofakeit.URL(),
		Popularity:  gofakeit.IntRange(1, 10),
	}
}

func priceOf(s string) domain.Product {
	p := randomProduct()
	p.Price = decimal.RequireFromString(s)
	return p
}

func assertCart(t *testing.T, expected, actual domain.Cart) {
	t.Helper()

	diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty())
	assert.Empty(t, diff)
}

func assertMoney(t *testing.T, expected string, actual domain.Money) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	want := domain.Money{Amount: decimal.RequireFromString(expected), Currency: currency.EUR}
	assert.Empty(t, cmp.Diff(want, actual, currencyComparer))
}
