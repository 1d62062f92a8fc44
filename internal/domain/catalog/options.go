package catalog

import "github.com/shopspring/decimal"

// BottleOption identifies the bottle a customer selects at checkout.
// Each option maps to a fixed surcharge; unknown options carry none.
type BottleOption string

const (
	BottleSmallClassic BottleOption = "Small classic"
	BottleSmallFancy   BottleOption = "Small but Fancy"
	BottleBig          BottleOption = "Big bottle"
)

var bottleSurcharges = map[BottleOption]decimal.Decimal{
	BottleSmallClassic: decimal.Zero,
	BottleSmallFancy:   decimal.NewFromInt(1000),
	BottleBig:          decimal.NewFromInt(3000),
}

// Surcharge returns the extra cost for this bottle option.
// The default option (and any unknown value) costs nothing.
func (b BottleOption) Surcharge() decimal.Decimal {
	if s, ok := bottleSurcharges[b]; ok {
		return s
	}
	return decimal.Zero
}

// BottleOptions lists the selectable bottle options in display order.
func BottleOptions() []BottleOption {
	return []BottleOption{BottleSmallClassic, BottleSmallFancy, BottleBig}
}

// ShippingMethod is a delivery tier with a base fee. The fee may be reduced
// or waived by the pricing engine depending on the cart subtotal.
type ShippingMethod struct {
	ID    string          `json:"id"`
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// ShippingMethods lists the selectable delivery tiers.
func ShippingMethods() []ShippingMethod {
	return []ShippingMethod{
		{ID: "pickup", Label: "Store pickup", Price: decimal.Zero},
		{ID: "lagos", Label: "Delivery within Lagos", Price: decimal.NewFromInt(1500)},
		{ID: "nationwide", Label: "Nationwide delivery", Price: decimal.NewFromInt(2500)},
	}
}

// ShippingByID returns the shipping method with the given ID.
// Unknown IDs resolve to store pickup (no fee).
func ShippingByID(id string) ShippingMethod {
	for _, m := range ShippingMethods() {
		if m.ID == id {
			return m
		}
	}
	return ShippingMethods()[0]
}
