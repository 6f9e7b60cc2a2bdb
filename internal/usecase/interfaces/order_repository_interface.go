package interfaces

import (
	"context"

	"agency_configurator/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// The order store must be able to:
//   - create an order only if its id is unused (ErrAlreadyExists otherwise)
//   - list the orders of one contact email (client portal)
//   - move an order from an expected status to the next one
//     (ErrConditionFailed when the stored status differs)

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	ListByContactEmail(ctx context.Context, email string) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, id string, expected, next entities.OrderStatus) (entities.Order, error)
}
