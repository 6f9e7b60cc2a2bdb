package interfaces

import (
	"context"

	"agency_configurator/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// CreatePaymentIntent returns a handle the client uses to complete checkout.
// metadata must carry "payment_id" so provider notifications can be matched
// back to our payment through FetchPaymentResult.
type IPaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (entities.PaymentIntent, error)
	FetchPaymentResult(ctx context.Context, providerPaymentID string) (entities.PaymentResult, error)
}
