package notify

import (
	"github.com/shopspring/decimal"

	"github.com/sajjplace/storefront/internal/domain/order"
	"github.com/sajjplace/storefront/internal/domain/ticket"
)

// Notifier is the domain-facing facade over the queue: it knows how to
// flatten orders and tickets into notification payloads.
type Notifier struct {
	queue *Queue
}

// NewNotifier wraps the queue.
func NewNotifier(queue *Queue) *Notifier {
	return &Notifier{queue: queue}
}

// OrderPlaced announces a new order.
func (n *Notifier) OrderPlaced(o order.Order) {
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"id":    it.ProductID,
			"name":  it.Name,
			"price": it.Price,
			"qty":   it.Qty,
		})
	}
	n.queue.Enqueue("New order "+o.ID, map[string]any{
		"order_id": o.ID,
		"date":     o.Date,
		"name":     o.Customer.Name,
		"email":    o.Customer.Email,
		"phone":    o.Customer.Phone,
		"address":  o.Customer.Address,
		"items":    items,
		"shipping": o.Shipping,
		"discount": o.Discount,
		"total":    o.EffectiveTotal(),
		"method":   string(o.Payment.Method),
	})
}

// TicketCreated announces a new support ticket.
func (n *Notifier) TicketCreated(t ticket.Ticket) {
	n.queue.Enqueue("New support ticket "+t.ID, map[string]any{
		"ticket_id": t.ID,
		"date":      t.Date,
		"name":      t.Name,
		"email":     t.Email,
		"phone":     t.Phone,
		"message":   t.Message,
	})
}

// PaymentConfirmed announces a verified payment.
func (n *Notifier) PaymentConfirmed(orderID, reference string, amount decimal.Decimal) {
	n.queue.Enqueue("Payment confirmed "+orderID, map[string]any{
		"order_id":  orderID,
		"reference": reference,
		"amount":    amount,
	})
}
