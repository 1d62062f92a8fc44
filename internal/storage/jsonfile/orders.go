package jsonfile

import (
	"github.com/sajjplace/storefront/internal/domain/order"
)

// OrderStore persists orders in orders.json.
type OrderStore struct {
	col *collection[order.Order]
}

// NewOrderStore opens (or creates) the order collection under dir.
func NewOrderStore(dir string) (*OrderStore, error) {
	col, err := newCollection[order.Order](dir, "orders")
	if err != nil {
		return nil, err
	}
	return &OrderStore{col: col}, nil
}

// List returns every stored order.
func (s *OrderStore) List() ([]order.Order, error) {
	return s.col.List()
}

// Create appends the order. Resubmitting an ID that already exists is a
// no-op and reports created=false, which makes client retries safe.
func (s *OrderStore) Create(o order.Order) (created bool, err error) {
	err = s.col.update(func(items []order.Order) ([]order.Order, error) {
		for _, existing := range items {
			if existing.ID == o.ID {
				return items, nil
			}
		}
		created = true
		return append(items, o), nil
	})
	return created, err
}

// Update applies a patch to the stored order.
func (s *OrderStore) Update(id string, p order.Patch) error {
	return s.col.update(func(items []order.Order) ([]order.Order, error) {
		for i := range items {
			if items[i].ID == id {
				p.Apply(&items[i])
				return items, nil
			}
		}
		return nil, order.ErrNotFound
	})
}

// Delete removes the stored order.
func (s *OrderStore) Delete(id string) error {
	return s.col.update(func(items []order.Order) ([]order.Order, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, order.ErrNotFound
	})
}
