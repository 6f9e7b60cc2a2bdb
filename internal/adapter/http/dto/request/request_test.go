package request

import (
	"encoding/json"
	"testing"

	"agency_configurator/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestServiceRequest_ToEntity(t *testing.T) {
	var r ServiceRequest
	body := `{
		"name": " Website ",
		"base_price": "1000.50",
		"delivery_time_base_days": 10,
		"steps": [{"id": "scope", "options": [
			{"id": "Package", "type": "select", "choices": [{"value": "Pro", "price_adjustment": 500, "delivery_time_adjustment": 3}]},
			{"id": "Rush", "type": "checkbox", "price_adjustment": "300", "delivery_time_adjustment": -5}
		]}]
	}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := r.ToEntity(" svc-website ")
	if s.ID != "svc-website" || s.Name != "Website" {
		t.Fatalf("unexpected ids: %+v", s)
	}
	if !s.BasePrice.Equal(decimal.RequireFromString("1000.50")) || s.DeliveryTimeBaseDays != 10 {
		t.Fatalf("unexpected base values: %+v", s)
	}
	opts := s.Steps[0].Options
	if len(opts) != 2 || opts[0].Type != entities.OptionTypeSelect || len(opts[0].Choices) != 1 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if !opts[0].Choices[0].PriceAdjustment.Equal(decimal.NewFromInt(500)) || opts[1].DeliveryTimeAdjustment != -5 {
		t.Fatalf("unexpected adjustments: %+v", opts)
	}
	if opts[1].Choices != nil {
		t.Fatalf("checkbox must not get choices")
	}
}

func TestSubmitOrderRequest_ToCommand(t *testing.T) {
	var r SubmitOrderRequest
	body := `{"service_id":"svc-website","configuration":{"Package":"Pro","Rush":true},"contact_info":{"name":"Ada","email":"ada@example.com"}}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmd := r.ToCommand()
	if cmd.ServiceID != "svc-website" || cmd.ContactInfo.Email != "ada@example.com" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if !cmd.Configuration["Rush"].IsChecked() || cmd.Configuration["Package"].Text != "Pro" {
		t.Fatalf("unexpected configuration: %+v", cmd.Configuration)
	}

	empty := SubmitOrderRequest{ServiceID: "svc"}.ToCommand()
	if empty.Configuration == nil {
		t.Fatalf("configuration should default to empty")
	}
}

func TestSubmitOrderRequest_RejectsNumericSelection(t *testing.T) {
	var r SubmitOrderRequest
	err := json.Unmarshal([]byte(`{"service_id":"svc","configuration":{"Pages":5}}`), &r)
	if err == nil {
		t.Fatalf("expected decode error for a numeric selection")
	}
}

func TestPaymentNotificationRequest_ResolveProviderPaymentID(t *testing.T) {
	cases := map[string]string{
		`{"type":"payment","data":{"id":"123"}}`: "123",
		`{"type":"payment","data":{"id":456}}`:   "456",
		`{"type":"payment","data":{}}`:           "",
		`{"type":"payment","data":{"id":null}}`:  "",
	}
	for body, want := range cases {
		var r PaymentNotificationRequest
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			t.Fatalf("unexpected error for %s: %v", body, err)
		}
		if got := r.ResolveProviderPaymentID(); got != want {
			t.Fatalf("%s: expected %q got %q", body, want, got)
		}
	}

	if (PaymentNotificationRequest{Type: "merchant_order"}).IsPayment() {
		t.Fatalf("merchant_order is not a payment notification")
	}
}
