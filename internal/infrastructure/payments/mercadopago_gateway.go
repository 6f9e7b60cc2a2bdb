package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	appconfig "agency_configurator/internal/config"
	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway opens checkout preferences and reads payment outcomes.
//
// Our payment id travels as the preference external_reference, so the
// payment Mercado Pago creates later points back to it.
type MercadoPagoGateway struct {
	preferences     preference.Client
	payments        payment.Client
	notificationURL string
	mockMode        bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(cfg appconfig.Config) (*MercadoPagoGateway, error) {
	if isPaymentGatewayMockEnabled(cfg) {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	if cfg.MercadoPagoAccessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := config.New(cfg.MercadoPagoAccessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		preferences:     preference.NewClient(sdkCfg),
		payments:        payment.NewClient(sdkCfg),
		notificationURL: cfg.PaymentNotificationURL,
	}, nil
}

func (g *MercadoPagoGateway) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (entities.PaymentIntent, error) {
	paymentID := metadata["payment_id"]
	if g != nil && g.mockMode {
		return mockPaymentIntent(amount, currency, metadata)
	}
	if g == nil || g.preferences == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.PaymentIntent{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] create preference start payment_id=%s amount=%s %s", paymentID, amount, currency)

	title := metadata["description"]
	if title == "" {
		title = "Order " + metadata["order_id"]
	}
	req := preference.Request{
		Items: []preference.ItemRequest{{
			ID:         metadata["service_id"],
			Title:      title,
			Quantity:   1,
			UnitPrice:  amount.InexactFloat64(),
			CurrencyID: currency,
		}},
		ExternalReference: paymentID,
		NotificationURL:   g.notificationURL,
	}

	resp, err := g.preferences.Create(ctx, req)
	if err != nil {
		log.Printf("[payment][gateway] sdk preference create failed payment_id=%s err=%v", paymentID, err)
		return entities.PaymentIntent{}, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return entities.PaymentIntent{}, err
	}
	log.Printf("[payment][gateway] create preference success payment_id=%s preference_id=%s", paymentID, resp.ID)

	return entities.PaymentIntent{
		ClientHandle: resp.ID,
		CheckoutURL:  resp.InitPoint,
		Raw:          raw,
	}, nil
}

func (g *MercadoPagoGateway) FetchPaymentResult(ctx context.Context, providerPaymentID string) (entities.PaymentResult, error) {
	if g != nil && g.mockMode {
		return mockPaymentResult(providerPaymentID)
	}
	if g == nil || g.payments == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.PaymentResult{}, ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(strings.TrimSpace(providerPaymentID))
	if err != nil {
		return entities.PaymentResult{}, fmt.Errorf("invalid mercado pago payment id %q: %w", providerPaymentID, err)
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway] sdk payment get failed provider_payment_id=%d err=%v", id, err)
		return entities.PaymentResult{}, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return entities.PaymentResult{}, err
	}
	log.Printf("[payment][gateway] payment fetched provider_payment_id=%d provider_status=%s external_reference=%s", resp.ID, resp.Status, resp.ExternalReference)

	return entities.PaymentResult{
		PaymentID:         resp.ExternalReference,
		ProviderPaymentID: strconv.Itoa(resp.ID),
		Outcome:           outcomeFromStatus(resp.Status),
		Raw:               raw,
	}, nil
}

// outcomeFromStatus maps Mercado Pago payment statuses onto our outcomes.
// Anything not final at the provider stays pending.
func outcomeFromStatus(status string) entities.PaymentOutcome {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentOutcomeSuccess
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentOutcomeFailure
	default:
		return entities.PaymentOutcomePending
	}
}

func mockPaymentIntent(amount decimal.Decimal, currency string, metadata map[string]string) (entities.PaymentIntent, error) {
	log.Printf("[payment][gateway] mock create start payment_id=%s", metadata["payment_id"])

	id := "mock-pref-" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	raw, err := json.Marshal(map[string]any{
		"id":                 id,
		"external_reference": metadata["payment_id"],
		"amount":             amount.String(),
		"currency_id":        currency,
		"date_created":       time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		log.Printf("[payment][gateway] mock response marshal failed err=%v", err)
		return entities.PaymentIntent{}, err
	}

	log.Printf("[payment][gateway] mock create success preference_id=%s", id)
	return entities.PaymentIntent{
		ClientHandle: id,
		CheckoutURL:  "https://mock.mercadopago.local/checkout/" + id,
		Raw:          raw,
	}, nil
}

// In mock mode the provider id is our own payment id and every payment is approved.
func mockPaymentResult(providerPaymentID string) (entities.PaymentResult, error) {
	raw, err := json.Marshal(map[string]any{
		"id":                 providerPaymentID,
		"status":             "approved",
		"status_detail":      "accredited",
		"external_reference": providerPaymentID,
		"date_approved":      time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return entities.PaymentResult{}, err
	}
	log.Printf("[payment][gateway] mock fetch provider_payment_id=%s provider_status=approved", providerPaymentID)
	return entities.PaymentResult{
		PaymentID:         providerPaymentID,
		ProviderPaymentID: providerPaymentID,
		Outcome:           entities.PaymentOutcomeSuccess,
		Raw:               raw,
	}, nil
}

func isPaymentGatewayMockEnabled(cfg appconfig.Config) bool {
	if cfg.PaymentGatewayMock {
		return true
	}
	v := strings.ToLower(strings.TrimSpace(os.Getenv("MERCADOPAGO_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
