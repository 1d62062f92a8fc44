// Package catalog holds the storefront reference data: products, bottle
// options, and shipping methods. The data is immutable once loaded.
package catalog

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Available   bool            `json:"available"`
}

// Catalog is an in-memory product catalog with lookup by ID.
type Catalog struct {
	products []Product
	byID     map[string]*Product
}

// New builds a Catalog from the given products. Order is preserved.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[string]*Product, len(products)),
	}
	for i := range c.products {
		c.byID[c.products[i].ID] = &c.products[i]
	}
	return c
}

// Default returns a Catalog seeded with the standard SAJJ product line.
func Default() *Catalog {
	return New(DefaultProducts())
}

// List returns all products in catalog order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// GetByID returns the product with the given ID, or ErrNotFound.
func (c *Catalog) GetByID(id string) (*Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// DefaultProducts returns the built-in product line. Prices are NGN.
func DefaultProducts() []Product {
	return []Product{
		{ID: "p1", Name: "SAJJ Amber", Price: decimal.NewFromInt(3000), Image: "2.png", Category: "oil perfume", Available: true},
		{ID: "p2", Name: "SAJJ Dayyan", Price: decimal.NewFromInt(3500), Image: "1.png", Category: "oil perfume", Available: true},
		{ID: "p3", Name: "SAJJ Intense", Price: decimal.NewFromInt(4000), Image: "4.png", Category: "oil perfume", Available: true},
		{ID: "p4", Name: "Oud al SAJJ", Price: decimal.NewFromInt(5000), Image: "5.png", Category: "oil perfume", Available: true},
		{ID: "p5", Name: "SAJJ Addictive", Price: decimal.NewFromInt(4000), Image: "3.png", Category: "oil perfume", Available: true},
		{ID: "p6", Name: "Sample kit", Price: decimal.NewFromInt(5000), Image: "logo.png", Category: "oil perfume", Available: true},
	}
}
