package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) IsFinal() bool {
	return s == PaymentStatusSucceeded || s == PaymentStatusFailed
}

// PaymentOutcome is the provider signal applied to a pending payment.
type PaymentOutcome string

const (
	PaymentOutcomeSuccess PaymentOutcome = "success"
	PaymentOutcomeFailure PaymentOutcome = "failure"
	PaymentOutcomePending PaymentOutcome = "pending"
)

// Payment is one payment intent for an order. A failed payment is never
// retried; a new Payment is created against the same order instead.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (order_id-index): order_id
//
// ProviderPayloadRaw keeps the last provider response for audit.
type Payment struct {
	ID                 string          `json:"id"`
	OrderID            string          `json:"order_id"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	ClientHandle       string          `json:"client_handle"`
	CheckoutURL        string          `json:"checkout_url,omitempty"`
	Status             PaymentStatus   `json:"status"`
	ProviderPaymentID  string          `json:"provider_payment_id,omitempty"`
	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// PaymentIntent is what the provider hands back for client-side checkout.
type PaymentIntent struct {
	ClientHandle string
	CheckoutURL  string
	Raw          json.RawMessage
}

// PaymentResult is the provider's verdict for one of our payments.
type PaymentResult struct {
	PaymentID         string
	ProviderPaymentID string
	Outcome           PaymentOutcome
	Raw               json.RawMessage
}
