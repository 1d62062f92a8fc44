package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(id string, price string, qty int) Line {
	return Line{ProductID: id, Name: id, Price: dec(price), Qty: qty}
}

func TestSubtotal(t *testing.T) {
	lines := []Line{
		line("p1", "3000", 2),
		line("p2", "3500", 1),
	}
	assert.True(t, dec("9500").Equal(Subtotal(lines)))
	assert.True(t, decimal.Zero.Equal(Subtotal(nil)))
}

func TestShippingFee_BelowDiscountThreshold(t *testing.T) {
	p := DefaultParams()
	fee := p.ShippingFee(dec("1500"), dec("6000"))
	assert.True(t, dec("1500").Equal(fee))
}

func TestShippingFee_DiscountedTier(t *testing.T) {
	p := DefaultParams()
	fee := p.ShippingFee(dec("1500"), dec("32000"))
	assert.True(t, dec("1000").Equal(fee))

	// Boundary: exactly at the threshold.
	fee = p.ShippingFee(dec("1500"), dec("30000"))
	assert.True(t, dec("1000").Equal(fee))
}

func TestShippingFee_FreeTier(t *testing.T) {
	p := DefaultParams()
	fee := p.ShippingFee(dec("1500"), dec("51000"))
	assert.True(t, decimal.Zero.Equal(fee))

	fee = p.ShippingFee(dec("1500"), dec("50000"))
	assert.True(t, decimal.Zero.Equal(fee))
}

func TestShippingFee_PickupNeverAdjusted(t *testing.T) {
	p := DefaultParams()
	fee := p.ShippingFee(decimal.Zero, dec("60000"))
	assert.True(t, decimal.Zero.Equal(fee))
}

func TestShippingFee_Monotonic(t *testing.T) {
	p := DefaultParams()
	base := dec("1500")

	low := p.ShippingFee(base, dec("29999"))
	mid := p.ShippingFee(base, dec("30000"))
	high := p.ShippingFee(base, dec("50000"))

	assert.True(t, low.GreaterThanOrEqual(mid))
	assert.True(t, mid.GreaterThanOrEqual(high))
	assert.True(t, high.IsZero())
}

func TestCompute_BasicCart(t *testing.T) {
	// One line, price 3000 x 2, base shipping 1500, no surcharge, no discount.
	p := DefaultParams()
	q := p.Compute([]Line{line("p1", "3000", 2)}, dec("1500"), decimal.Zero, decimal.Zero)

	assert.True(t, dec("6000").Equal(q.Subtotal))
	assert.True(t, dec("1500").Equal(q.Shipping))
	assert.True(t, dec("7500").Equal(q.Total))
}

func TestCompute_DiscountedDelivery(t *testing.T) {
	// Subtotal 32000 drops the 1500 base to 1000.
	p := DefaultParams()
	q := p.Compute([]Line{line("p1", "4000", 8)}, dec("1500"), decimal.Zero, decimal.Zero)

	assert.True(t, dec("32000").Equal(q.Subtotal))
	assert.True(t, dec("1000").Equal(q.Shipping))
	assert.True(t, dec("33000").Equal(q.Total))
}

func TestCompute_FreeDelivery(t *testing.T) {
	p := DefaultParams()
	q := p.Compute([]Line{line("p1", "51000", 1)}, dec("1500"), decimal.Zero, decimal.Zero)

	assert.True(t, dec("51000").Equal(q.Subtotal))
	assert.True(t, q.Shipping.IsZero())
	assert.True(t, dec("51000").Equal(q.Total))
}

func TestCompute_WithDiscount(t *testing.T) {
	// 10% off a 10000 subtotal; pickup shipping.
	p := DefaultParams()
	q := p.Compute([]Line{line("p1", "5000", 2)}, decimal.Zero, decimal.Zero, dec("1000"))

	assert.True(t, dec("10000").Equal(q.Subtotal))
	assert.True(t, dec("1000").Equal(q.Discount))
	assert.True(t, dec("9000").Equal(q.Total))
}

func TestCompute_BottleSurcharge(t *testing.T) {
	p := DefaultParams()
	q := p.Compute([]Line{line("p1", "3000", 1)}, decimal.Zero, dec("3000"), decimal.Zero)

	assert.True(t, dec("3000").Equal(q.Bottle))
	assert.True(t, dec("6000").Equal(q.Total))
}

func TestCompute_TotalFlooredAtZero(t *testing.T) {
	p := DefaultParams()
	q := p.Compute([]Line{line("p1", "1000", 1)}, decimal.Zero, decimal.Zero, dec("9999"))

	assert.True(t, q.Total.IsZero())
	// The discount amount itself is recorded in full.
	assert.True(t, dec("9999").Equal(q.Discount))
}

func TestCompute_Identity(t *testing.T) {
	// total == subtotal + shipping + bottle - discount whenever not clamped.
	p := DefaultParams()
	q := p.Compute([]Line{line("p1", "3000", 3), line("p2", "4000", 1)}, dec("2500"), dec("1000"), dec("500"))

	want := q.Subtotal.Add(q.Shipping).Add(q.Bottle).Sub(q.Discount)
	assert.True(t, want.Equal(q.Total))
	assert.False(t, q.Total.IsNegative())
}

func TestShippingProgress(t *testing.T) {
	p := DefaultParams()

	pr := p.ShippingProgress(dec("6000"))
	require.False(t, pr.Discounted)
	require.False(t, pr.Free)
	assert.True(t, dec("24000").Equal(pr.ToDiscounted))
	assert.True(t, dec("44000").Equal(pr.ToFree))

	pr = p.ShippingProgress(dec("32000"))
	assert.True(t, pr.Discounted)
	assert.False(t, pr.Free)
	assert.True(t, dec("18000").Equal(pr.ToFree))

	pr = p.ShippingProgress(dec("50000"))
	assert.True(t, pr.Discounted)
	assert.True(t, pr.Free)
	assert.True(t, pr.ToFree.IsZero())
}
