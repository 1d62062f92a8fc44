// Package apiclient is the HTTP client for the storefront API, used by the
// client-side checkout and admin services as their remote store.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-faster/errors"

	"github.com/sajjplace/storefront/internal/checkout"
	"github.com/sajjplace/storefront/internal/domain/order"
)

// Client talks to the storefront API. Admin credentials are attached to the
// order management calls; order submission is public.
type Client struct {
	http    *http.Client
	baseURL string
	user    string
	pass    string
}

var (
	_ order.Remote    = (*Client)(nil)
	_ checkout.Remote = (*Client)(nil)
)

// New builds a client for the API at baseURL.
func New(httpClient *http.Client, baseURL, user, pass string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		user:    user,
		pass:    pass,
	}
}

// Create submits a new order. The server treats resubmission of the same ID
// as success, so retrying after a timeout is safe.
func (c *Client) Create(ctx context.Context, o order.Order) error {
	return c.do(ctx, http.MethodPost, "/api/orders", o, false, nil)
}

// List fetches all orders. Requires admin credentials.
func (c *Client) List(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, true, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Update patches an order. Requires admin credentials.
func (c *Client) Update(ctx context.Context, id string, p order.Patch) error {
	return c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(id), p, true, nil)
}

// Delete removes an order. Requires admin credentials.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/orders/"+url.PathEscape(id), nil, true, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, admin bool, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode body")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.SetBasicAuth(c.user, c.pass)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return order.ErrNotFound
	case resp.StatusCode >= 300:
		return errors.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}
