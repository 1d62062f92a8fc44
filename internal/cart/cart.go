// Package cart implements the shopping cart: an insertion-ordered set of
// product lines keyed by product ID, persisted behind an injected backend,
// with a change channel other views can subscribe to.
package cart

import (
	"encoding/json"
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/sajjplace/storefront/internal/domain/catalog"
	"github.com/sajjplace/storefront/internal/domain/pricing"
	"github.com/sajjplace/storefront/internal/storage/kv"
)

// storageKey is the backend key the cart contents live under.
const storageKey = "cart_items"

// ErrLineNotFound is returned when mutating a product that is not in the cart.
var ErrLineNotFound = errors.New("cart line not found")

// Line is one cart entry: a snapshot of the product's name and price at the
// time it was added, plus a quantity of at least 1.
type Line struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
}

// Store is the cart. All mutations persist through the backend and notify
// subscribers.
type Store struct {
	mu      sync.Mutex
	backend kv.Backend
	lines   []Line
	subs    []chan struct{}
}

// NewStore loads any persisted cart contents from the backend.
func NewStore(backend kv.Backend) (*Store, error) {
	s := &Store{backend: backend}

	b, err := backend.Get(storageKey)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	if len(b) > 0 {
		// A corrupt cart reads as empty rather than blocking the shop.
		_ = json.Unmarshal(b, &s.lines)
	}
	return s, nil
}

// Add puts one unit of the product in the cart, or bumps the quantity of an
// existing line.
func (s *Store) Add(p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Qty++
			return s.persist()
		}
	}
	s.lines = append(s.lines, Line{ProductID: p.ID, Name: p.Name, Price: p.Price, Qty: 1})
	return s.persist()
}

// Adjust changes a line's quantity by delta, flooring at 1. Removing a line
// is explicit via Remove.
func (s *Store) Adjust(productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Qty += delta
			if s.lines[i].Qty < 1 {
				s.lines[i].Qty = 1
			}
			return s.persist()
		}
	}
	return ErrLineNotFound
}

// SetQuantity sets a line's quantity directly, flooring at 1.
func (s *Store) SetQuantity(productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			if qty < 1 {
				qty = 1
			}
			s.lines[i].Qty = qty
			return s.persist()
		}
	}
	return ErrLineNotFound
}

// Remove deletes a line from the cart.
func (s *Store) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist()
		}
	}
	return ErrLineNotFound
}

// Clear empties the cart. Called after a completed checkout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	if err := s.backend.Clear(storageKey); err != nil {
		return errors.Wrap(err, "clear cart")
	}
	s.notifyLocked()
	return nil
}

// Snapshot returns a copy of the cart lines in insertion order.
func (s *Store) Snapshot() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// PricingLines converts the cart contents for the pricing engine.
func (s *Store) PricingLines() []pricing.Line {
	snapshot := s.Snapshot()
	out := make([]pricing.Line, len(snapshot))
	for i, l := range snapshot {
		out[i] = pricing.Line{ProductID: l.ProductID, Name: l.Name, Price: l.Price, Qty: l.Qty}
	}
	return out
}

// TotalQuantity returns the summed quantity across all lines.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, l := range s.lines {
		total += l.Qty
	}
	return total
}

// Empty reports whether the cart has no lines.
func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// Subscribe returns a channel that receives a signal after every cart
// mutation. Slow subscribers miss intermediate signals rather than blocking
// the store.
func (s *Store) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{}, 1)
	s.subs = append(s.subs, ch)
	return ch
}

// persist writes the cart through the backend and notifies subscribers.
// Callers must hold s.mu.
func (s *Store) persist() error {
	b, err := json.Marshal(s.lines)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := s.backend.Set(storageKey, b); err != nil {
		return errors.Wrap(err, "save cart")
	}
	s.notifyLocked()
	return nil
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
