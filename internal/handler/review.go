package handler

import (
	"net/http"
	"strings"

	"github.com/sajjplace/storefront/internal/domain/review"
)

// listReviews returns all reviews, newest first. Public.
func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.List()
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	if reviews == nil {
		reviews = []review.Review{}
	}
	review.SortNewestFirst(reviews)
	writeJSON(w, http.StatusOK, reviews)
}

// createReview accepts a public review. The server assigns the ID and
// timestamp and clamps the star rating.
func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var rv review.Review
	if err := decodeBody(w, r, &rv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rv.ID = review.NewID(h.now())
	rv.Date = h.now()
	rv.Rating = review.ClampRating(rv.Rating)

	if strings.TrimSpace(rv.Name) == "" || strings.TrimSpace(rv.Text) == "" {
		writeError(w, http.StatusBadRequest, "name and text are required")
		return
	}

	if err := h.reviews.Create(rv); err != nil {
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": rv.ID})
}

// subscribe records a newsletter email. Duplicates are accepted silently.
func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	if err := h.subs.Add(req.Email); err != nil {
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
