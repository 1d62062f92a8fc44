package handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/sajjplace/storefront/internal/domain/ticket"
)

// listTickets serves the admin inbox: filtered, newest first, in fixed-size
// pages. Query params: q (search term), unresolved (hide handled), page.
func (h *Handler) listTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.tickets.List()
	if err != nil {
		writeInternal(w, r, err)
		return
	}

	q := r.URL.Query()
	unresolved, _ := strconv.ParseBool(q.Get("unresolved"))
	page, _ := strconv.Atoi(q.Get("page"))

	filtered := ticket.Filter(tickets, q.Get("q"), unresolved)
	ticket.SortNewestFirst(filtered)
	items, pages := ticket.Page(filtered, page)
	if items == nil {
		items = []ticket.Ticket{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tickets": items,
		"pages":   pages,
		"total":   len(filtered),
	})
}

// createTicket is the public contact form intake. The server assigns the ID
// and timestamp.
func (h *Handler) createTicket(w http.ResponseWriter, r *http.Request) {
	var t ticket.Ticket
	if err := decodeBody(w, r, &t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	t.ID = ticket.NewID(h.now())
	t.Date = h.now()
	t.Handled = false

	if err := h.validate.Struct(t); err != nil {
		writeError(w, http.StatusBadRequest, "name, email and message are required")
		return
	}

	if _, err := h.tickets.Create(t); err != nil {
		writeInternal(w, r, err)
		return
	}
	h.notifier.TicketCreated(t)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": t.ID})
}

// updateTicket toggles the handled flag. Unlike orders, a ticket can be
// reopened.
func (h *Handler) updateTicket(w http.ResponseWriter, r *http.Request) {
	var p ticket.Patch
	if err := decodeBody(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.tickets.Update(r.PathValue("id"), p); err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			writeError(w, http.StatusNotFound, "ticket not found")
			return
		}
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) deleteTicket(w http.ResponseWriter, r *http.Request) {
	if err := h.tickets.Delete(r.PathValue("id")); err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			writeError(w, http.StatusNotFound, "ticket not found")
			return
		}
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
