package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajjplace/storefront/internal/domain/order"
)

func newTestServer(t *testing.T) (*httptest.Server, *[]order.Order) {
	t.Helper()
	var stored []order.Order

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders", func(w http.ResponseWriter, r *http.Request) {
		var o order.Order
		require.NoError(t, json.NewDecoder(r.Body).Decode(&o))
		stored = append(stored, o)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "id": o.ID})
	})
	mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(stored)
	})
	mux.HandleFunc("PUT /api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		for i := range stored {
			if stored[i].ID == r.PathValue("id") {
				var p order.Patch
				require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
				p.Apply(&stored[i])
				_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &stored
}

func TestClient_CreateAndList(t *testing.T) {
	srv, stored := newTestServer(t)
	c := New(srv.Client(), srv.URL, "admin", "secret")

	o := order.Order{ID: "o_1", Date: time.Now()}
	require.NoError(t, c.Create(context.Background(), o))
	require.Len(t, *stored, 1)

	orders, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o_1", orders[0].ID)
}

func TestClient_ListRequiresCredentials(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(srv.Client(), srv.URL, "admin", "wrong")

	_, err := c.List(context.Background())
	require.Error(t, err)
}

func TestClient_UpdateMapsNotFound(t *testing.T) {
	srv, stored := newTestServer(t)
	c := New(srv.Client(), srv.URL, "admin", "secret")

	require.NoError(t, c.Create(context.Background(), order.Order{ID: "o_1"}))
	require.NoError(t, c.Update(context.Background(), "o_1", order.MarkPaid()))
	assert.True(t, (*stored)[0].Payment.Paid)

	err := c.Update(context.Background(), "o_ghost", order.MarkPaid())
	require.ErrorIs(t, err, order.ErrNotFound)
}
