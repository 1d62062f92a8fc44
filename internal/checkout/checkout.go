// Package checkout runs the order submission workflow: validate the form,
// price the cart, persist the order remotely when possible and locally
// always, consume the discount code, fire notifications, and empty the cart.
package checkout

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/go-faster/sdk/zctx"

	"github.com/sajjplace/storefront/internal/cart"
	"github.com/sajjplace/storefront/internal/domain/catalog"
	"github.com/sajjplace/storefront/internal/domain/discount"
	"github.com/sajjplace/storefront/internal/domain/order"
	"github.com/sajjplace/storefront/internal/domain/pricing"
)

// ErrEmptyCart is returned when submitting with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// Form is the checkout form as filled in by the customer.
type Form struct {
	Name         string       `json:"name" validate:"required"`
	Email        string       `json:"email" validate:"required,email"`
	Phone        string       `json:"phone" validate:"required"`
	Address      string       `json:"address" validate:"required"`
	Method       order.Method `json:"method" validate:"required,oneof=cod bank"`
	BottleOption string       `json:"bottleOption"`
	ShippingID   string       `json:"shippingId"`
	DiscountCode string       `json:"discountCode"`
	// Reference is the bank transfer reference, when the customer has one
	// already. Only meaningful for the bank method.
	Reference string `json:"reference"`
	Notes     string `json:"notes"`
}

// Remote is the server-side order intake as seen from checkout.
type Remote interface {
	Create(ctx context.Context, o order.Order) error
}

// Notifier announces completed orders. Delivery is best-effort.
type Notifier interface {
	OrderPlaced(o order.Order)
}

// Result reports where the submitted order landed. The order is always in
// the local log; PersistedRemote says whether the server accepted it too.
type Result struct {
	Order           order.Order
	PersistedRemote bool
}

// Service drives checkout.
type Service struct {
	cart      *cart.Store
	params    pricing.Params
	discounts *discount.Validator
	usage     discount.UsageLog
	remote    Remote
	log       order.Log
	notifier  Notifier
	validate  *validator.Validate
	now       func() time.Time
}

// NewService wires the checkout service. now may be nil.
func NewService(
	cartStore *cart.Store,
	params pricing.Params,
	discounts *discount.Validator,
	usage discount.UsageLog,
	remote Remote,
	log order.Log,
	notifier Notifier,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		cart:      cartStore,
		params:    params,
		discounts: discounts,
		usage:     usage,
		remote:    remote,
		log:       log,
		notifier:  notifier,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		now:       now,
	}
}

// Preview prices the current cart with the form's shipping, bottle, and
// discount selections without submitting anything.
func (s *Service) Preview(form Form) (pricing.Quote, error) {
	lines := s.cart.PricingLines()
	discountAmt, _, err := s.resolveDiscount(form.DiscountCode, lines)
	if err != nil {
		return pricing.Quote{}, err
	}
	return s.quote(form, lines, discountAmt), nil
}

// Submit runs the full submission workflow. The remote write is best-effort:
// its failure is logged and absorbed, never returned to the customer. The
// local log write is the one that must succeed.
func (s *Service) Submit(ctx context.Context, form Form) (Result, error) {
	if err := s.validate.Struct(form); err != nil {
		return Result{}, errors.Wrap(err, "validate form")
	}

	lines := s.cart.PricingLines()
	if len(lines) == 0 {
		return Result{}, ErrEmptyCart
	}

	discountAmt, rule, err := s.resolveDiscount(form.DiscountCode, lines)
	if err != nil {
		return Result{}, err
	}
	quote := s.quote(form, lines, discountAmt)

	o := s.buildOrder(form, lines, quote)

	remoteOK := true
	if err := s.remote.Create(ctx, o); err != nil {
		remoteOK = false
		zctx.From(ctx).Warn("Remote order persist failed, keeping local copy",
			zap.String("order_id", o.ID), zap.Error(err))
	}

	if err := s.log.Append(o); err != nil {
		return Result{}, errors.Wrap(err, "persist order locally")
	}

	// The code is consumed only once the order is durably recorded.
	if rule != nil {
		if err := s.usage.MarkUsed(rule.Code); err != nil {
			zctx.From(ctx).Warn("Recording discount usage failed",
				zap.String("code", rule.Code), zap.Error(err))
		}
	}

	s.notifier.OrderPlaced(o)

	if err := s.cart.Clear(); err != nil {
		zctx.From(ctx).Warn("Clearing cart after checkout failed", zap.Error(err))
	}

	return Result{Order: o, PersistedRemote: remoteOK}, nil
}

// resolveDiscount validates the code (empty code means no discount) and
// returns the discount amount for the given lines.
func (s *Service) resolveDiscount(code string, lines []pricing.Line) (decimal.Decimal, *discount.Rule, error) {
	if code == "" {
		return decimal.Zero, nil, nil
	}
	rule, err := s.discounts.Validate(code, s.usage)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return rule.Amount(lines), rule, nil
}

func (s *Service) quote(form Form, lines []pricing.Line, discountAmt decimal.Decimal) pricing.Quote {
	shipping := catalog.ShippingByID(form.ShippingID)
	surcharge := catalog.BottleOption(form.BottleOption).Surcharge()
	return s.params.Compute(lines, shipping.Price, surcharge, discountAmt)
}

func (s *Service) buildOrder(form Form, lines []pricing.Line, quote pricing.Quote) order.Order {
	now := s.now()
	items := make([]order.Item, len(lines))
	for i, l := range lines {
		items[i] = order.Item{ProductID: l.ProductID, Name: l.Name, Price: l.Price, Qty: l.Qty}
	}
	payment := order.Payment{Method: form.Method}
	if form.Method == order.MethodBank {
		payment.Reference = form.Reference
	}
	return order.Order{
		ID:   order.NewID(now),
		Date: now,
		Customer: order.Customer{
			Name:    form.Name,
			Email:   form.Email,
			Phone:   form.Phone,
			Address: form.Address,
		},
		Items:      items,
		Shipping:   quote.Shipping,
		BottleType: form.BottleOption,
		BottleCost: quote.Bottle,
		Discount:   quote.Discount,
		Total:      order.NewTotal(quote.Total),
		Notes:      form.Notes,
		Payment:    payment,
	}
}
