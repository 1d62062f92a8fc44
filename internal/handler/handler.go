// Package handler implements the storefront HTTP API: the public shop
// endpoints and the Basic-auth protected admin endpoints, all speaking JSON
// with an {"error": "..."} failure shape.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/go-faster/sdk/zctx"

	"github.com/sajjplace/storefront/internal/domain/catalog"
	"github.com/sajjplace/storefront/internal/domain/order"
	"github.com/sajjplace/storefront/internal/domain/review"
	"github.com/sajjplace/storefront/internal/domain/ticket"
	"github.com/sajjplace/storefront/internal/paystack"
)

// Store interfaces cover what the handlers need from the persistence layer.
type (
	OrderStore interface {
		List() ([]order.Order, error)
		Create(o order.Order) (created bool, err error)
		Update(id string, p order.Patch) error
		Delete(id string) error
	}

	TicketStore interface {
		List() ([]ticket.Ticket, error)
		Create(t ticket.Ticket) (created bool, err error)
		Update(id string, p ticket.Patch) error
		Delete(id string) error
	}

	ReviewStore interface {
		List() ([]review.Review, error)
		Create(r review.Review) error
	}

	SubscriberStore interface {
		Add(email string) error
	}
)

// Verifier is the payment verification backend.
type Verifier interface {
	Verify(ctx context.Context, reference string) (paystack.Verification, error)
}

// Notifier announces storefront events. Delivery is best-effort.
type Notifier interface {
	OrderPlaced(o order.Order)
	TicketCreated(t ticket.Ticket)
}

// Config holds handler settings.
type Config struct {
	AdminUser      string
	AdminPass      string
	UploadsDir     string
	MaxUploadBytes int64
}

// Handler serves the storefront API.
type Handler struct {
	cfg      Config
	catalog  *catalog.Catalog
	orders   OrderStore
	tickets  TicketStore
	reviews  ReviewStore
	subs     SubscriberStore
	payments Verifier
	notifier Notifier
	validate *validator.Validate
	now      func() time.Time
}

// New constructs the handler. now may be nil.
func New(
	cfg Config,
	cat *catalog.Catalog,
	orders OrderStore,
	tickets TicketStore,
	reviews ReviewStore,
	subs SubscriberStore,
	payments Verifier,
	notifier Notifier,
	now func() time.Time,
) *Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5 << 20
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{
		cfg:      cfg,
		catalog:  cat,
		orders:   orders,
		tickets:  tickets,
		reviews:  reviews,
		subs:     subs,
		payments: payments,
		notifier: notifier,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}
}

// Register mounts all API routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.listProducts)

	mux.HandleFunc("GET /api/orders", h.requireAdmin(h.listOrders))
	mux.HandleFunc("POST /api/orders", h.createOrder)
	mux.HandleFunc("PUT /api/orders/{id}", h.requireAdmin(h.updateOrder))
	mux.HandleFunc("DELETE /api/orders/{id}", h.requireAdmin(h.deleteOrder))

	mux.HandleFunc("GET /api/tickets", h.requireAdmin(h.listTickets))
	mux.HandleFunc("POST /api/tickets", h.createTicket)
	mux.HandleFunc("PUT /api/tickets/{id}", h.requireAdmin(h.updateTicket))
	mux.HandleFunc("DELETE /api/tickets/{id}", h.requireAdmin(h.deleteTicket))

	mux.HandleFunc("GET /api/reviews", h.listReviews)
	mux.HandleFunc("POST /api/reviews", h.createReview)

	mux.HandleFunc("POST /api/subscribe", h.subscribe)
	mux.HandleFunc("POST /api/upload-proof", h.uploadProof)
	mux.HandleFunc("POST /api/verify-paystack", h.requireAdmin(h.verifyPaystack))
}

func (h *Handler) listProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.List())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeInternal logs the real error and returns an opaque 500.
func writeInternal(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("Handler failure",
		zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

// decodeBody decodes a JSON request body into dst with a size cap.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(dst)
}

var _ Verifier = (*paystack.Client)(nil)
