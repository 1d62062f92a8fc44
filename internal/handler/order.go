package handler

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/sajjplace/storefront/internal/domain/order"
)

// listOrders returns all stored orders, newest first.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List()
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	order.SortNewestFirst(orders)
	writeJSON(w, http.StatusOK, orders)
}

// createOrder is the public order intake. Submission is idempotent by order
// ID: retrying a request the client never saw the answer to succeeds without
// creating a duplicate, and only the first copy triggers notifications.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var o order.Order
	if err := decodeBody(w, r, &o); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if o.ID == "" {
		writeError(w, http.StatusBadRequest, "order id is required")
		return
	}
	if o.Date.IsZero() {
		o.Date = h.now()
	}
	if o.Payment.Method != "" && !o.Payment.Method.Valid() {
		writeError(w, http.StatusBadRequest, "unknown payment method")
		return
	}

	created, err := h.orders.Create(o)
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	if created {
		h.notifier.OrderPlaced(o)
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": o.ID})
}

// updateOrder applies a partial update. Paid and delivered flags only move
// forward regardless of what the patch carries.
func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var p order.Patch
	if err := decodeBody(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.orders.Update(r.PathValue("id"), p); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.PathValue("id")); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
