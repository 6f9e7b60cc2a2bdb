package interfaces

import (
	"context"

	"agency_configurator/internal/domain/entities"
)

// IServiceRepository abstracts the catalog store.
//
// GetByID and UpdateStatus return an empty Service when the id is unknown.

type IServiceRepository interface {
	GetByID(ctx context.Context, id string) (entities.Service, error)
	List(ctx context.Context) ([]entities.Service, error)
	Save(ctx context.Context, s entities.Service) (entities.Service, error)
	UpdateStatus(ctx context.Context, id string, status entities.ServiceStatus) (entities.Service, error)
}
