package order

import (
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/sajjplace/storefront/internal/storage/kv"
)

// logKey is the backend key the client-side order log lives under.
const logKey = "orders_log"

// Log is the client-side copy of submitted orders. Every checkout appends
// here regardless of whether the server accepted the order, so nothing is
// lost when the backend is down.
type Log interface {
	List() ([]Order, error)
	Append(o Order) error
	Update(id string, p Patch) error
	Delete(id string) error
	Replace(orders []Order) error
}

// KVLog persists the order log as a JSON array behind a kv.Backend.
type KVLog struct {
	backend kv.Backend
}

var _ Log = (*KVLog)(nil)

// NewKVLog returns an order log backed by the given store.
func NewKVLog(backend kv.Backend) *KVLog {
	return &KVLog{backend: backend}
}

// List returns all logged orders. A corrupt log reads as empty.
func (l *KVLog) List() ([]Order, error) {
	b, err := l.backend.Get(logKey)
	if err != nil {
		return nil, errors.Wrap(err, "load order log")
	}
	if len(b) == 0 {
		return nil, nil
	}
	var orders []Order
	if err := json.Unmarshal(b, &orders); err != nil {
		return nil, nil
	}
	return orders, nil
}

// Append adds the order to the log. An order with the same ID is replaced
// rather than duplicated.
func (l *KVLog) Append(o Order) error {
	orders, err := l.List()
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == o.ID {
			orders[i] = o
			return l.Replace(orders)
		}
	}
	return l.Replace(append(orders, o))
}

// Update applies a patch to the logged order with the given ID.
func (l *KVLog) Update(id string, p Patch) error {
	orders, err := l.List()
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == id {
			p.Apply(&orders[i])
			return l.Replace(orders)
		}
	}
	return ErrNotFound
}

// Delete removes the logged order with the given ID.
func (l *KVLog) Delete(id string) error {
	orders, err := l.List()
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == id {
			return l.Replace(append(orders[:i], orders[i+1:]...))
		}
	}
	return ErrNotFound
}

// Replace overwrites the whole log.
func (l *KVLog) Replace(orders []Order) error {
	b, err := json.Marshal(orders)
	if err != nil {
		return errors.Wrap(err, "encode order log")
	}
	if err := l.backend.Set(logKey, b); err != nil {
		return errors.Wrap(err, "save order log")
	}
	return nil
}
