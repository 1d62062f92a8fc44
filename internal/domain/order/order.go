// Package order defines the order record, its explicit patch type, the
// client-side order log, and the remote/local reconciliation used by the
// admin views.
package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when mutating or deleting a missing order.
var ErrNotFound = errors.New("order not found")

// Method enumerates supported payment methods.
type Method string

const (
	MethodCOD  Method = "cod"
	MethodBank Method = "bank"
)

// Valid reports whether m is a known payment method.
func (m Method) Valid() bool {
	return m == MethodCOD || m == MethodBank
}

// Customer is the contact block captured at checkout.
type Customer struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// Payment describes how an order is (to be) paid. Paid and Delivered are
// monotonic: once set they are never reset by this system.
type Payment struct {
	Method    Method `json:"method"`
	Paid      bool   `json:"paid"`
	Delivered bool   `json:"delivered"`
	Reference string `json:"reference,omitempty"`
	ProofURL  string `json:"proofUrl,omitempty"`
}

// Item is a line item snapshot copied from the cart at submission time.
type Item struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
}

// Order is a finalized customer order.
type Order struct {
	ID         string          `json:"id"`
	Date       time.Time       `json:"date"`
	Customer   Customer        `json:"customer"`
	Items      []Item          `json:"items"`
	Shipping   decimal.Decimal `json:"shipping"`
	BottleType string          `json:"bottleType,omitempty"`
	BottleCost decimal.Decimal `json:"bottleCost"`
	Discount   decimal.Decimal `json:"discount"`
	Total      Total           `json:"total"`
	Notes      string          `json:"notes,omitempty"`
	Payment    Payment         `json:"payment"`
}

// NewID builds a time-based order identifier in the historical
// o_<unix-millis> format.
func NewID(now time.Time) string {
	return fmt.Sprintf("o_%d", now.UnixMilli())
}

// Subtotal recomputes the item subtotal from the stored line items.
func (o Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return sum
}

// EffectiveTotal returns the stored total when it decoded cleanly, otherwise
// recomputes it from the line items, shipping, bottle cost, and discount,
// floored at zero. Totals in old or hand-edited logs can be malformed and
// must not break the admin listing.
func (o Order) EffectiveTotal() decimal.Decimal {
	if o.Total.Valid {
		return o.Total.Decimal
	}
	total := o.Subtotal().Add(o.Shipping).Add(o.BottleCost).Sub(o.Discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Total is an order total that decodes leniently: null or malformed values
// mark the total invalid instead of failing the whole order list load.
type Total struct {
	decimal.Decimal
	Valid bool
}

// NewTotal wraps a decimal in a valid Total.
func NewTotal(d decimal.Decimal) Total {
	return Total{Decimal: d, Valid: true}
}

// MarshalJSON encodes the total as a JSON number, or null when invalid.
func (t Total) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return []byte(t.Decimal.String()), nil
}

// UnmarshalJSON accepts numbers and numeric strings; anything else leaves
// the total invalid without returning an error.
func (t *Total) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = Total{}
		return nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(trimmed, &d); err != nil {
		*t = Total{}
		return nil
	}
	*t = Total{Decimal: d, Valid: true}
	return nil
}

var (
	_ json.Marshaler   = Total{}
	_ json.Unmarshaler = (*Total)(nil)
)
