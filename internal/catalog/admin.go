package catalog

import (
	"fmt"
	"slices"

	"github.com/nikolayk812/storefront/internal/domain"
)

const AdminPageSize = 10

// AdminTable is the owner's product management view. Deletions only affect
// the table's own copy of the listing.
type AdminTable struct {
	products []domain.Product
	term     string
}

func NewAdminTable(identity domain.Identity, authenticated bool, products []domain.Product) (*AdminTable, error) {
	if !authenticated || !identity.IsOwner() {
		return nil, fmt.Errorf("admin table: %w", domain.ErrForbidden)
	}

	return &AdminTable{
		products: slices.Clone(products),
	}, nil
}

// SetSearch changes the search term. Callers go back to the first page.
func (a *AdminTable) SetSearch(term string) {
	a.term = term
}

func (a *AdminTable) Rows() []domain.Product {
	return Search(a.products, a.term)
}

func (a *AdminTable) Page(page int) Page {
	return Paginate(a.Rows(), page, AdminPageSize)
}

// Delete removes the product with id and reports whether it was listed.
func (a *AdminTable) Delete(id string) bool {
	before := len(a.products)
	a.products = slices.DeleteFunc(a.products, func(p domain.Product) bool {
		return p.ID == id
	})

	return len(a.products) < before
}
