package jsonfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajjplace/storefront/internal/domain/discount"
	"github.com/sajjplace/storefront/internal/domain/order"
	"github.com/sajjplace/storefront/internal/domain/review"
	"github.com/sajjplace/storefront/internal/domain/ticket"
)

func testOrder(id string) order.Order {
	return order.Order{
		ID:   id,
		Date: time.Now().Truncate(time.Millisecond),
		Customer: order.Customer{
			Name:    "Amina Bello",
			Email:   "amina@example.com",
			Phone:   "08012345678",
			Address: "12 Marina Rd, Lagos",
		},
		Items: []order.Item{
			{ProductID: "p1", Name: "SAJJ Amber", Price: decimal.NewFromInt(3000), Qty: 2},
		},
		Shipping: decimal.NewFromInt(1500),
		Total:    order.NewTotal(decimal.NewFromInt(7500)),
		Payment:  order.Payment{Method: order.MethodBank},
	}
}

func TestOrderStore_CreateIsIdempotent(t *testing.T) {
	s, err := NewOrderStore(t.TempDir())
	require.NoError(t, err)

	created, err := s.Create(testOrder("o_1"))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Create(testOrder("o_1"))
	require.NoError(t, err)
	assert.False(t, created)

	orders, err := s.List()
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestOrderStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewOrderStore(dir)
	require.NoError(t, err)
	_, err = s.Create(testOrder("o_1"))
	require.NoError(t, err)

	reopened, err := NewOrderStore(dir)
	require.NoError(t, err)
	orders, err := reopened.List()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o_1", orders[0].ID)
	assert.True(t, decimal.NewFromInt(7500).Equal(orders[0].EffectiveTotal()))
}

func TestOrderStore_UpdateAndDelete(t *testing.T) {
	s, err := NewOrderStore(t.TempDir())
	require.NoError(t, err)
	_, err = s.Create(testOrder("o_1"))
	require.NoError(t, err)

	require.NoError(t, s.Update("o_1", order.MarkPaid()))
	orders, err := s.List()
	require.NoError(t, err)
	assert.True(t, orders[0].Payment.Paid)

	require.ErrorIs(t, s.Update("o_ghost", order.MarkPaid()), order.ErrNotFound)

	require.NoError(t, s.Delete("o_1"))
	require.ErrorIs(t, s.Delete("o_1"), order.ErrNotFound)
}

func TestOrderStore_FailedUpdateLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	s, err := NewOrderStore(dir)
	require.NoError(t, err)
	_, err = s.Create(testOrder("o_1"))
	require.NoError(t, err)

	before, err := os.ReadFile(filepath.Join(dir, "orders.json"))
	require.NoError(t, err)

	require.Error(t, s.Update("o_ghost", order.MarkPaid()))

	after, err := os.ReadFile(filepath.Join(dir, "orders.json"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestOrderStore_CorruptFileReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.json"), []byte("[{nope"), 0o644))

	s, err := NewOrderStore(dir)
	require.NoError(t, err)
	orders, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestTicketStore_RoundTrip(t *testing.T) {
	s, err := NewTicketStore(t.TempDir())
	require.NoError(t, err)

	created, err := s.Create(ticket.Ticket{
		ID: "t_1", Date: time.Now(), Name: "Amina Bello",
		Email: "amina@example.com", Message: "hi",
	})
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, s.Update("t_1", ticket.SetHandled(true)))
	tickets, err := s.List()
	require.NoError(t, err)
	assert.True(t, tickets[0].Handled)

	require.NoError(t, s.Delete("t_1"))
	require.ErrorIs(t, s.Update("t_1", ticket.SetHandled(false)), ticket.ErrNotFound)
}

func TestReviewStore(t *testing.T) {
	s, err := NewReviewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Create(review.Review{ID: "r_1", Name: "Amina", Rating: 5, Text: "lovely"}))
	reviews, err := s.List()
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
}

func TestSubscriberStore_Dedup(t *testing.T) {
	s, err := NewSubscriberStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Add("amina@example.com"))
	require.NoError(t, s.Add("AMINA@example.com"))
	require.NoError(t, s.Add(" tunde@example.com "))

	emails, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"amina@example.com", "tunde@example.com"}, emails)
}

func TestCodeStore_Upsert(t *testing.T) {
	s, err := NewCodeStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Upsert([]discount.Rule{
		{Code: "weekend15", Kind: discount.KindPercentSubtotal, Rate: decimal.NewFromInt(15)},
	}))
	require.NoError(t, s.Upsert([]discount.Rule{
		{Code: "WEEKEND15", Kind: discount.KindPercentSubtotal, Rate: decimal.NewFromInt(20)},
		{Code: "NEWYEAR10", Kind: discount.KindPercentSubtotal, Rate: decimal.NewFromInt(10)},
	}))

	rules, err := s.List()
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "WEEKEND15", rules[0].Code)
	assert.True(t, decimal.NewFromInt(20).Equal(rules[0].Rate))
}
