package order

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Merge reconciles the server-side order list with the client-side log.
// Remote is the source of truth for order contents; local contributes orders
// the server never received plus paid/delivered flags set while offline.
// Flags combine with OR, so merging is monotonic and idempotent.
func Merge(remote, local []Order) []Order {
	byID := lo.KeyBy(local, func(o Order) string { return o.ID })

	out := make([]Order, 0, len(remote)+len(local))
	seen := make(map[string]bool, len(remote))
	for _, r := range remote {
		if l, ok := byID[r.ID]; ok {
			r.Payment.Paid = r.Payment.Paid || l.Payment.Paid
			r.Payment.Delivered = r.Payment.Delivered || l.Payment.Delivered
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	for _, l := range local {
		if !seen[l.ID] {
			out = append(out, l)
		}
	}

	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders the slice by date descending, ties broken by ID so
// the order is stable across merges.
func SortNewestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].Date.Equal(orders[j].Date) {
			return orders[i].Date.After(orders[j].Date)
		}
		return orders[i].ID > orders[j].ID
	})
}

// Filter returns the orders matching the search term with a case-insensitive
// substring match over ID, customer name, email, and phone. An empty term
// matches everything.
func Filter(orders []Order, term string) []Order {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return orders
	}
	return lo.Filter(orders, func(o Order, _ int) bool {
		for _, field := range []string{o.ID, o.Customer.Name, o.Customer.Email, o.Customer.Phone} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	})
}
