package payments

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	appconfig "agency_configurator/internal/config"
	"agency_configurator/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestNewMercadoPagoGateway(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		t.Setenv("MERCADOPAGO_MOCK", "")
		_, err := NewMercadoPagoGateway(appconfig.Config{})
		if !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
			t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
		}
	})

	t.Run("mock from config", func(t *testing.T) {
		g, err := NewMercadoPagoGateway(appconfig.Config{PaymentGatewayMock: true})
		if err != nil || !g.mockMode {
			t.Fatalf("expected mock gateway, got %+v err=%v", g, err)
		}
	})

	t.Run("mock from env", func(t *testing.T) {
		t.Setenv("MERCADOPAGO_MOCK", "yes")
		g, err := NewMercadoPagoGateway(appconfig.Config{})
		if err != nil || !g.mockMode {
			t.Fatalf("expected mock gateway, got %+v err=%v", g, err)
		}
	})
}

func TestMercadoPagoGateway_Mock(t *testing.T) {
	g := &MercadoPagoGateway{mockMode: true}
	ctx := context.Background()

	intent, err := g.CreatePaymentIntent(ctx, decimal.RequireFromString("1800"), "PLN", map[string]string{"payment_id": "pay-1", "order_id": "ORD-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(intent.ClientHandle, "mock-pref-") || !strings.HasSuffix(intent.CheckoutURL, intent.ClientHandle) {
		t.Fatalf("unexpected intent %+v", intent)
	}
	var raw map[string]any
	if err := json.Unmarshal(intent.Raw, &raw); err != nil || raw["external_reference"] != "pay-1" {
		t.Fatalf("unexpected raw payload %s err=%v", intent.Raw, err)
	}

	res, err := g.FetchPaymentResult(ctx, "pay-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PaymentID != "pay-1" || res.Outcome != entities.PaymentOutcomeSuccess {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	if _, err := g.CreatePaymentIntent(context.Background(), decimal.NewFromInt(1), "PLN", nil); !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}
	if _, err := (&MercadoPagoGateway{}).FetchPaymentResult(context.Background(), "1"); !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}
}

func TestOutcomeFromStatus(t *testing.T) {
	cases := map[string]entities.PaymentOutcome{
		"approved":     entities.PaymentOutcomeSuccess,
		"authorized":   entities.PaymentOutcomeSuccess,
		"rejected":     entities.PaymentOutcomeFailure,
		"cancelled":    entities.PaymentOutcomeFailure,
		"charged_back": entities.PaymentOutcomeFailure,
		"in_process":   entities.PaymentOutcomePending,
		"pending":      entities.PaymentOutcomePending,
		"":             entities.PaymentOutcomePending,
	}
	for status, want := range cases {
		if got := outcomeFromStatus(status); got != want {
			t.Fatalf("status %q: expected %s, got %s", status, want, got)
		}
	}
}
