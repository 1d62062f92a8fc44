// Package ticket models customer support tickets and the paging and
// filtering the admin inbox applies to them.
package ticket

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/samber/lo"
)

// ErrNotFound is returned when mutating or deleting a missing ticket.
var ErrNotFound = errors.New("ticket not found")

// PageSize is the fixed number of tickets per admin inbox page.
const PageSize = 5

// Ticket is one customer support request. Phone is optional.
type Ticket struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Name    string    `json:"name" validate:"required"`
	Email   string    `json:"email" validate:"required,email"`
	Phone   string    `json:"phone,omitempty"`
	Message string    `json:"message" validate:"required"`
	Handled bool      `json:"handled"`
}

// NewID builds a time-based ticket identifier in the historical
// t_<unix-millis> format.
func NewID(now time.Time) string {
	return fmt.Sprintf("t_%d", now.UnixMilli())
}

// Patch is a partial ticket update. Unlike order flags, Handled moves both
// ways: an admin can reopen a ticket closed by mistake.
type Patch struct {
	Handled *bool `json:"handled,omitempty"`
}

// Apply merges the patch into the ticket.
func (p Patch) Apply(t *Ticket) {
	if p.Handled != nil {
		t.Handled = *p.Handled
	}
}

// SetHandled returns a patch setting the handled flag to v.
func SetHandled(v bool) Patch {
	return Patch{Handled: &v}
}

// SortNewestFirst orders tickets by date descending, ties broken by ID.
func SortNewestFirst(tickets []Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		if !tickets[i].Date.Equal(tickets[j].Date) {
			return tickets[i].Date.After(tickets[j].Date)
		}
		return tickets[i].ID > tickets[j].ID
	})
}

// Filter narrows the list with a case-insensitive substring match over ID,
// name, email, phone, and message, and optionally hides handled tickets.
func Filter(tickets []Ticket, term string, unresolvedOnly bool) []Ticket {
	term = strings.ToLower(strings.TrimSpace(term))
	return lo.Filter(tickets, func(t Ticket, _ int) bool {
		if unresolvedOnly && t.Handled {
			return false
		}
		if term == "" {
			return true
		}
		for _, field := range []string{t.ID, t.Name, t.Email, t.Phone, t.Message} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	})
}

// Page slices one inbox page out of the (already filtered and sorted) list.
// Pages are 1-based; a page past the end is empty. The second return is the
// total page count, at least 1.
func Page(tickets []Ticket, page int) ([]Ticket, int) {
	pages := (len(tickets) + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(tickets) {
		return nil, pages
	}
	end := start + PageSize
	if end > len(tickets) {
		end = len(tickets)
	}
	return tickets[start:end], pages
}
