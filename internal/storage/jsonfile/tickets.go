package jsonfile

import (
	"github.com/sajjplace/storefront/internal/domain/ticket"
)

// TicketStore persists support tickets in tickets.json.
type TicketStore struct {
	col *collection[ticket.Ticket]
}

// NewTicketStore opens (or creates) the ticket collection under dir.
func NewTicketStore(dir string) (*TicketStore, error) {
	col, err := newCollection[ticket.Ticket](dir, "tickets")
	if err != nil {
		return nil, err
	}
	return &TicketStore{col: col}, nil
}

// List returns every stored ticket.
func (s *TicketStore) List() ([]ticket.Ticket, error) {
	return s.col.List()
}

// Create appends the ticket. Duplicate IDs report created=false.
func (s *TicketStore) Create(t ticket.Ticket) (created bool, err error) {
	err = s.col.update(func(items []ticket.Ticket) ([]ticket.Ticket, error) {
		for _, existing := range items {
			if existing.ID == t.ID {
				return items, nil
			}
		}
		created = true
		return append(items, t), nil
	})
	return created, err
}

// Update applies a patch to the stored ticket.
func (s *TicketStore) Update(id string, p ticket.Patch) error {
	return s.col.update(func(items []ticket.Ticket) ([]ticket.Ticket, error) {
		for i := range items {
			if items[i].ID == id {
				p.Apply(&items[i])
				return items, nil
			}
		}
		return nil, ticket.ErrNotFound
	})
}

// Delete removes the stored ticket.
func (s *TicketStore) Delete(id string) error {
	return s.col.update(func(items []ticket.Ticket) ([]ticket.Ticket, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, ticket.ErrNotFound
	})
}
