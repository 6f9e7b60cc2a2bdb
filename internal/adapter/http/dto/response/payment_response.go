package response

import (
	"encoding/json"
	"time"

	"agency_configurator/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	PaymentID          string          `json:"payment_id"`
	OrderID            string          `json:"order_id"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	ClientHandle       string          `json:"client_handle"`
	CheckoutURL        string          `json:"checkout_url,omitempty"`
	Status             string          `json:"status"`
	ProviderPaymentID  string          `json:"provider_payment_id,omitempty"`
	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:          p.ID,
		OrderID:            p.OrderID,
		Amount:             p.Amount,
		Currency:           p.Currency,
		ClientHandle:       p.ClientHandle,
		CheckoutURL:        p.CheckoutURL,
		Status:             string(p.Status),
		ProviderPaymentID:  p.ProviderPaymentID,
		ProviderPayloadRaw: p.ProviderPayloadRaw,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func FromPayments(items []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromPayment(p))
	}
	return out
}
