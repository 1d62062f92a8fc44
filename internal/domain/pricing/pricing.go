// Package pricing computes cart totals: subtotal, tiered delivery fees,
// bottle surcharges, and the final total. All functions are pure.
package pricing

import "github.com/shopspring/decimal"

var zero = decimal.Zero

// Line is a cart line item as seen by the pricing engine.
type Line struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Qty       int
}

// Params holds the delivery fee thresholds. Subtotals at or above
// DiscountThreshold pay DiscountedDelivery instead of the base fee;
// subtotals at or above FreeThreshold pay nothing.
type Params struct {
	DiscountThreshold  decimal.Decimal
	DiscountedDelivery decimal.Decimal
	FreeThreshold      decimal.Decimal
}

// DefaultParams returns the production thresholds (NGN).
func DefaultParams() Params {
	return Params{
		DiscountThreshold:  decimal.NewFromInt(30000),
		DiscountedDelivery: decimal.NewFromInt(1000),
		FreeThreshold:      decimal.NewFromInt(50000),
	}
}

// Quote is the complete pricing breakdown for a cart.
type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Bottle   decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Subtotal returns the sum of price x quantity across all lines. Totals are
// always recomputed from the lines rather than trusted from stored values.
func Subtotal(lines []Line) decimal.Decimal {
	sum := zero
	for _, l := range lines {
		sum = sum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return sum
}

// ShippingFee applies the threshold rules to a base delivery fee.
// A zero base (store pickup) is never adjusted.
func (p Params) ShippingFee(base, subtotal decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return base
	}
	if subtotal.GreaterThanOrEqual(p.FreeThreshold) {
		return zero
	}
	if subtotal.GreaterThanOrEqual(p.DiscountThreshold) {
		return p.DiscountedDelivery
	}
	return base
}

// Compute builds the full quote for a cart. The discount amount is computed
// by the discount package and passed in; the total is floored at zero so an
// oversized discount can never produce a negative charge.
func (p Params) Compute(lines []Line, shippingBase, bottleSurcharge, discount decimal.Decimal) Quote {
	subtotal := Subtotal(lines)
	shipping := p.ShippingFee(shippingBase, subtotal)

	total := subtotal.Add(shipping).Add(bottleSurcharge).Sub(discount)
	if total.IsNegative() {
		total = zero
	}

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Bottle:   bottleSurcharge,
		Discount: discount.Round(2),
		Total:    total.Round(2),
	}
}

// Progress reports how far a subtotal is from the delivery promotions.
// Remaining amounts are zero once the corresponding threshold is reached.
type Progress struct {
	ToDiscounted decimal.Decimal
	ToFree       decimal.Decimal
	Discounted   bool
	Free         bool
}

// ShippingProgress returns the promotion progress for the given subtotal.
func (p Params) ShippingProgress(subtotal decimal.Decimal) Progress {
	pr := Progress{
		ToDiscounted: p.DiscountThreshold.Sub(subtotal),
		ToFree:       p.FreeThreshold.Sub(subtotal),
	}
	if pr.ToDiscounted.IsNegative() || pr.ToDiscounted.IsZero() {
		pr.ToDiscounted = zero
		pr.Discounted = true
	}
	if pr.ToFree.IsNegative() || pr.ToFree.IsZero() {
		pr.ToFree = zero
		pr.Free = true
	}
	return pr
}
