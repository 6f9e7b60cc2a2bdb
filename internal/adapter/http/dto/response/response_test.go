package response

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/domain/pricing"
	"agency_configurator/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromService(t *testing.T) {
	now := time.Now().UTC()
	s := entities.Service{
		ID:                   "svc-website",
		Name:                 "Website",
		BasePrice:            decimal.NewFromInt(1000),
		DeliveryTimeBaseDays: 10,
		Status:               entities.ServiceStatusActive,
		Steps: []entities.ConfigStep{{
			ID: "scope",
			Options: []entities.ConfigOption{{
				ID:      "Package",
				Type:    entities.OptionTypeSelect,
				Choices: []entities.Choice{{Value: "Pro", PriceAdjustment: decimal.NewFromInt(500), DeliveryTimeAdjustment: 3}},
			}},
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	res := FromService(s, "PLN")
	if res.ID != "svc-website" || res.Currency != "PLN" || res.Status != "active" {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if len(res.Steps) != 1 || res.Steps[0].Options[0].Choices[0].Value != "Pro" {
		t.Fatalf("unexpected steps: %+v", res.Steps)
	}
	if !res.CreatedAt.Equal(now) {
		t.Fatalf("unexpected dates: %+v", res)
	}
	if got := FromServices([]entities.Service{s, s}, "PLN"); len(got) != 2 {
		t.Fatalf("expected 2 services, got %d", len(got))
	}
}

func TestFromQuote(t *testing.T) {
	q := usecase.QuoteResult{
		ServiceID:         "svc-website",
		Totals:            pricing.Totals{TotalPrice: decimal.NewFromInt(1800), TotalDeliveryTimeDays: 8},
		BaseCurrency:      "PLN",
		DisplayCurrency:   "EUR",
		DisplayTotalPrice: decimal.NewFromInt(414),
	}

	res := FromQuote(q)
	if !res.Valid || res.Errors == nil || res.Lines == nil {
		t.Fatalf("expected valid quote with empty lists, got %+v", res)
	}

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(b), `"errors":[]`) || !strings.Contains(string(b), `"display_total_price":"414"`) {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestFromOrderAndPayment(t *testing.T) {
	o := entities.Order{
		ID:            "ORD-1",
		ServiceID:     "svc-website",
		Configuration: entities.Configuration{"Rush": entities.BoolValue(true)},
		TotalPrice:    decimal.NewFromInt(1800),
		Currency:      "PLN",
		Status:        entities.OrderStatusSubmitted,
	}
	res := FromOrder(o)
	if res.ID != "ORD-1" || res.OrderID != "ORD-1" || res.Status != "submitted" {
		t.Fatalf("unexpected order response: %+v", res)
	}

	b, _ := json.Marshal(res)
	if !strings.Contains(string(b), `"configuration":{"Rush":true}`) {
		t.Fatalf("unexpected json: %s", b)
	}

	p := FromPayment(entities.Payment{ID: "pay-1", OrderID: "ORD-1", Status: entities.PaymentStatusPending, ClientHandle: "pref-1"})
	if p.PaymentID != "pay-1" || p.Status != "pending" || p.ClientHandle != "pref-1" {
		t.Fatalf("unexpected payment response: %+v", p)
	}
}
