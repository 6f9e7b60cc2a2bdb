package entities

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle of a submitted order.
//
// Draft and validated configurations are never persisted; an order starts
// as submitted. paid and payment_failed are only reached from a payment
// provider signal; the remaining transitions are administrative.
type OrderStatus string

const (
	OrderStatusSubmitted     OrderStatus = "submitted"
	OrderStatusPaid          OrderStatus = "paid"
	OrderStatusPaymentFailed OrderStatus = "payment_failed"
	OrderStatusInProgress    OrderStatus = "in_progress"
	OrderStatusCompleted     OrderStatus = "completed"
	OrderStatusCancelled     OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusSubmitted:     {OrderStatusPaid, OrderStatusPaymentFailed, OrderStatusCancelled},
	OrderStatusPaymentFailed: {OrderStatusSubmitted, OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:          {OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusInProgress:    {OrderStatusCompleted, OrderStatusCancelled},
}

var adminTargets = []OrderStatus{OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusSubmitted, OrderStatusPaid, OrderStatusPaymentFailed,
		OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return slices.Contains(orderTransitions[s], next)
}

// IsAdminTarget reports whether back-office users may set this status directly.
func (s OrderStatus) IsAdminTarget() bool {
	return slices.Contains(adminTargets, s)
}

// AwaitingPayment is true while a new payment intent may be requested.
func (s OrderStatus) AwaitingPayment() bool {
	return s == OrderStatusSubmitted || s == OrderStatusPaymentFailed
}

type ContactInfo struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Message string `json:"message,omitempty" validate:"max=4000"`
}

// Order is the frozen record of a configured purchase.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (contact_email-index): contact_email
//
// TotalPrice and DeliveryTimeDays are computed once at submission and are
// never recomputed, even if the service pricing changes later.
type Order struct {
	ID               string          `json:"id"`
	ServiceID        string          `json:"service_id"`
	Configuration    Configuration   `json:"configuration"`
	ContactInfo      ContactInfo     `json:"contact_info"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	DeliveryTimeDays int             `json:"delivery_time_days"`
	Currency         string          `json:"currency"`
	Status           OrderStatus     `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
