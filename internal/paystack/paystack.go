// Package paystack calls the Paystack transaction verification API. The
// admin side proxies through this so the secret key never reaches a browser.
package paystack

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the production Paystack API root.
const DefaultBaseURL = "https://api.paystack.co"

// ErrNoSecretKey is returned when verification is attempted without a
// configured secret key.
var ErrNoSecretKey = errors.New("paystack secret key not configured")

// Verification is the distilled result of a transaction lookup, plus the
// raw response body for proxying to the admin UI unchanged.
type Verification struct {
	OK      bool
	Status  string
	Message string
	// Amount is in the main currency unit (Paystack reports kobo).
	Amount decimal.Decimal
	Raw    []byte
}

// Success reports whether the transaction is confirmed paid.
func (v Verification) Success() bool {
	return v.OK && v.Status == "success"
}

// Client is a thin Paystack API client.
type Client struct {
	http      *http.Client
	baseURL   string
	secretKey string
}

// NewClient builds a client. httpClient may be nil; baseURL may be empty.
func NewClient(httpClient *http.Client, baseURL, secretKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{http: httpClient, baseURL: baseURL, secretKey: secretKey}
}

// Verify looks up a transaction by reference. A non-2xx API response is not
// an error here: the verification result carries the API's own verdict so
// the admin sees exactly what Paystack said.
func (c *Client) Verify(ctx context.Context, reference string) (Verification, error) {
	if c.secretKey == "" {
		return Verification{}, ErrNoSecretKey
	}

	u := c.baseURL + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Verification{}, errors.Wrap(err, "build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Verification{}, errors.Wrap(err, "call paystack")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Verification{}, errors.Wrap(err, "read response")
	}

	v, err := parseVerification(raw)
	if err != nil {
		return Verification{}, errors.Wrap(err, "decode response")
	}
	v.Raw = raw
	return v, nil
}

// parseVerification walks the response without a fixed schema: Paystack's
// payload shape varies across failure modes and only a few fields matter.
func parseVerification(raw []byte) (Verification, error) {
	var v Verification
	d := jx.DecodeBytes(raw)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "status":
			ok, err := d.Bool()
			if err != nil {
				return err
			}
			v.OK = ok
			return nil
		case "message":
			msg, err := d.Str()
			if err != nil {
				return err
			}
			v.Message = msg
			return nil
		case "data":
			if d.Next() == jx.Null {
				return d.Null()
			}
			return d.Obj(func(d *jx.Decoder, key string) error {
				switch key {
				case "status":
					status, err := d.Str()
					if err != nil {
						return err
					}
					v.Status = status
					return nil
				case "amount":
					kobo, err := d.Num()
					if err != nil {
						return err
					}
					amt, err := decimal.NewFromString(kobo.String())
					if err != nil {
						return err
					}
					v.Amount = amt.Div(decimal.NewFromInt(100))
					return nil
				default:
					return d.Skip()
				}
			})
		default:
			return d.Skip()
		}
	})
	return v, err
}
