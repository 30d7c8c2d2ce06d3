package catalog

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Query narrows and orders a product listing. Zero-valued price bounds are open.
type Query struct {
	Categories []domain.Category
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
	SortBy     domain.SortOption
}

// Filter applies q to products without modifying them.
// An empty category list, or one containing CategoryAll, matches every category.
func Filter(products []domain.Product, q Query) []domain.Product {
	anyCategory := len(q.Categories) == 0 || slices.Contains(q.Categories, domain.CategoryAll)

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !anyCategory && !slices.Contains(q.Categories, p.Category) {
			continue
		}
		if !q.MinPrice.IsZero() && p.Price.LessThan(q.MinPrice) {
			continue
		}
		if !q.MaxPrice.IsZero() && p.Price.GreaterThan(q.MaxPrice) {
			continue
		}
		result = append(result, p)
	}

	Sort(result, q.SortBy)

	return result
}

// Sort orders products in place. Unknown options keep the current order.
func Sort(products []domain.Product, by domain.SortOption) {
	switch by {
	case domain.SortPriceAsc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return b.Price.Cmp(a.Price)
		})
	case domain.SortPopularity:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Popularity, a.Popularity)
		})
	}
}

// PriceBounds returns the lowest and highest price, zero for an empty listing.
func PriceBounds(products []domain.Product) (decimal.Decimal, decimal.Decimal) {
	if len(products) == 0 {
		return decimal.Zero, decimal.Zero
	}

	lo, hi := products[0].Price, products[0].Price
	for _, p := range products[1:] {
		lo = decimal.Min(lo, p.Price)
		hi = decimal.Max(hi, p.Price)
	}

	return lo, hi
}

// Search matches term case-insensitively against name, description and category.
func Search(products []domain.Product, term string) []domain.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(products)
	}

	var result []domain.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(string(p.Category)), term) {
			result = append(result, p)
		}
	}

	return result
}

type Page struct {
	Items      []domain.Product
	Page       int
	TotalPages int
}

// Paginate returns the 1-based page of products. Pages out of range are clamped.
func Paginate(products []domain.Product, page, perPage int) Page {
	if perPage <= 0 {
		perPage = len(products)
	}

	totalPages := 0
	if perPage > 0 {
		totalPages = (len(products) + perPage - 1) / perPage
	}

	page = max(1, min(page, totalPages))
	if totalPages == 0 {
		return Page{Page: 1}
	}

	start := (page - 1) * perPage
	end := min(start+perPage, len(products))

	return Page{
		Items:      slices.Clone(products[start:end]),
		Page:       page,
		TotalPages: totalPages,
	}
}

// Featured picks up to n distinct products at random.
func Featured(products []domain.Product, n int, r *rand.Rand) []domain.Product {
	shuffled := slices.Clone(products)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:min(max(n, 0), len(shuffled))]
}
