package request

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PaymentNotificationRequest is the Mercado Pago webhook body:
//
//	{"type":"payment","action":"payment.updated","data":{"id":"123"}}
//
// data.id arrives as a string or as a number depending on the sender.
type PaymentNotificationRequest struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// IsPayment is false for notification topics we do not handle.
func (r PaymentNotificationRequest) IsPayment() bool {
	t := strings.ToLower(strings.TrimSpace(r.Type))
	return t == "" || t == "payment"
}

func (r PaymentNotificationRequest) ResolveProviderPaymentID() string {
	raw := bytes.TrimSpace(r.Data.ID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// PaymentResultRequest is an explicit provider signal for one of our payments.
type PaymentResultRequest struct {
	Outcome           string          `json:"outcome" binding:"required,oneof=success failure pending"`
	ProviderPaymentID string          `json:"provider_payment_id"`
	Raw               json.RawMessage `json:"raw"`
}
