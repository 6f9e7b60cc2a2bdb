package interfaces

import (
	"context"

	"agency_configurator/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment.
//
// Update only succeeds while the stored payment is still pending; a payment
// that already reached a final status yields ErrConditionFailed.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error)
	Update(ctx context.Context, p entities.Payment) (entities.Payment, error)
}
