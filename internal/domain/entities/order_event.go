package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderEventType string

const (
	OrderEventSubmitted     OrderEventType = "order.submitted"
	OrderEventPaid          OrderEventType = "order.paid"
	OrderEventPaymentFailed OrderEventType = "order.payment_failed"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
)

// OrderEvent is published to the message broker after an order changes.
type OrderEvent struct {
	Type       OrderEventType  `json:"type"`
	OrderID    string          `json:"order_id"`
	ServiceID  string          `json:"service_id"`
	Status     OrderStatus     `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   string          `json:"currency"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewOrderEvent(t OrderEventType, o Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:       t,
		OrderID:    o.ID,
		ServiceID:  o.ServiceID,
		Status:     o.Status,
		TotalPrice: o.TotalPrice,
		Currency:   o.Currency,
		OccurredAt: at,
	}
}
