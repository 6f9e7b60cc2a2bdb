package response

import (
	"time"

	"agency_configurator/internal/domain/entities"
	"agency_configurator/pkg"

	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	OrderID          string                 `json:"order_id"`
	ID               string                 `json:"id"`
	ServiceID        string                 `json:"service_id"`
	Configuration    entities.Configuration `json:"configuration"`
	ContactInfo      entities.ContactInfo   `json:"contact_info"`
	TotalPrice       decimal.Decimal        `json:"total_price"`
	Currency         string                 `json:"currency"`
	DeliveryTimeDays int                    `json:"delivery_time_days"`
	Status           string                 `json:"status"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	cfg := o.Configuration
	if cfg == nil {
		cfg = entities.Configuration{}
	}
	return OrderResponse{
		OrderID:          o.ID,
		ID:               o.ID,
		ServiceID:        o.ServiceID,
		Configuration:    cfg,
		ContactInfo:      o.ContactInfo,
		TotalPrice:       o.TotalPrice,
		Currency:         o.Currency,
		DeliveryTimeDays: o.DeliveryTimeDays,
		Status:           string(o.Status),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func FromOrders(items []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(items))
	for _, o := range items {
		out = append(out, FromOrder(o))
	}
	return out
}

// SubmitOrderResponse is returned with 201 once the order is stored. Either
// Payment or PaymentError is set.
type SubmitOrderResponse struct {
	Order        OrderResponse    `json:"order"`
	Payment      *PaymentResponse `json:"payment,omitempty"`
	PaymentError *pkg.HTTPError   `json:"payment_error,omitempty"`
}
