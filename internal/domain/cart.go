package domain

import (
	"github.com/shopspring/decimal"
)

// Cart is an ordered sequence of line items, at most one per product id.
type Cart struct {
	Items []LineItem
}

type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// IndexOf returns the position of the line item for productID or -1.
func (c Cart) IndexOf(productID string) int {
	for i, item := range c.Items {
		if item.Product.ID == productID {
			return i
		}
	}

	return -1
}

func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}

	return total
}

func (c Cart) TotalPrice() Money {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return Money{Amount: total, Currency: StoreCurrency}
}

// Clone returns a cart whose item slice does not alias c.
func (c Cart) Clone() Cart {
	if len(c.Items) == 0 {
		return Cart{}
	}

	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)

	return Cart{Items: items}
}
