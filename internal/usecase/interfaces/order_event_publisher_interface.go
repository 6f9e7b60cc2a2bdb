package interfaces

import (
	"context"

	"agency_configurator/internal/domain/entities"
)

// IOrderEventPublisher announces order changes to other systems.
type IOrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, e entities.OrderEvent) error
}
