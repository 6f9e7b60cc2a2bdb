package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/domain/pricing"
	"agency_configurator/internal/usecase/interfaces"

	"github.com/go-playground/validator/v10"
)

var (
	ErrServiceNotFound          = errors.New("service not found")
	ErrInvalidServiceID         = errors.New("invalid service id")
	ErrInvalidServiceStatus     = errors.New("invalid service status")
	ErrInvalidServiceDefinition = errors.New("invalid service definition")
)

// ServiceDefinitionError lists why a service definition was rejected.
// errors.Is(err, ErrInvalidServiceDefinition) holds for it.
type ServiceDefinitionError struct {
	Problems []string
}

func (e *ServiceDefinitionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidServiceDefinition, strings.Join(e.Problems, "; "))
}

func (e *ServiceDefinitionError) Is(target error) bool {
	return target == ErrInvalidServiceDefinition
}

// ICatalogUseCase exposes the service catalog.
//
// Storefront reads only see active services; back-office writes replace a
// whole definition and are checked against the pricing invariants before
// they are stored.

type ICatalogUseCase interface {
	GetService(ctx context.Context, id string) (entities.Service, error)
	ListServices(ctx context.Context, onlyActive bool) ([]entities.Service, error)
	SaveService(ctx context.Context, s entities.Service) (entities.Service, error)
	SetServiceStatus(ctx context.Context, id string, status entities.ServiceStatus) (entities.Service, error)
}

type CatalogUseCase struct {
	repo     interfaces.IServiceRepository
	validate *validator.Validate
}

var _ ICatalogUseCase = (*CatalogUseCase)(nil)

func NewCatalogUseCase(repo interfaces.IServiceRepository, validate *validator.Validate) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, validate: validate}
}

func (u *CatalogUseCase) GetService(ctx context.Context, id string) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidServiceID
	}

	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	if s.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return s, nil
}

func (u *CatalogUseCase) ListServices(ctx context.Context, onlyActive bool) ([]entities.Service, error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Service, 0, len(all))
	for _, s := range all {
		if onlyActive && !s.IsActive() {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// SaveService creates or replaces a service definition. CreatedAt of an
// existing definition is kept.
func (u *CatalogUseCase) SaveService(ctx context.Context, s entities.Service) (entities.Service, error) {
	s.ID = strings.TrimSpace(s.ID)
	if s.ID == "" {
		return entities.Service{}, ErrInvalidServiceID
	}
	if s.Status == "" {
		s.Status = entities.ServiceStatusActive
	}

	if err := u.checkDefinition(s); err != nil {
		log.Printf("[catalog][usecase] rejected definition service_id=%s err=%v", s.ID, err)
		return entities.Service{}, err
	}

	existing, err := u.repo.GetByID(ctx, s.ID)
	if err != nil {
		return entities.Service{}, err
	}

	now := time.Now().UTC()
	s.CreatedAt = now
	if existing.ID != "" {
		s.CreatedAt = existing.CreatedAt
	}
	s.UpdatedAt = now

	saved, err := u.repo.Save(ctx, s)
	if err != nil {
		log.Printf("[catalog][usecase] save failed service_id=%s err=%v", s.ID, err)
		return entities.Service{}, err
	}
	log.Printf("[catalog][usecase] saved service_id=%s status=%s steps=%d", saved.ID, saved.Status, len(saved.Steps))
	return saved, nil
}

func (u *CatalogUseCase) SetServiceStatus(ctx context.Context, id string, status entities.ServiceStatus) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidServiceID
	}
	if !status.Valid() {
		return entities.Service{}, ErrInvalidServiceStatus
	}

	updated, err := u.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return entities.Service{}, err
	}
	if updated.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	log.Printf("[catalog][usecase] status changed service_id=%s status=%s", id, status)
	return updated, nil
}

func (u *CatalogUseCase) checkDefinition(s entities.Service) error {
	var problems []string
	if u.validate != nil {
		if err := u.validate.Struct(s); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			for _, fe := range verrs {
				problems = append(problems, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
		}
	}

	var iv *pricing.InvariantViolation
	if err := pricing.CheckService(s); errors.As(err, &iv) {
		problems = append(problems, iv.Problems...)
	}

	if len(problems) > 0 {
		return &ServiceDefinitionError{Problems: problems}
	}
	return nil
}
