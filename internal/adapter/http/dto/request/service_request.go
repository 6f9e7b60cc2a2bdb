package request

import (
	"strings"

	"agency_configurator/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ChoiceRequest struct {
	Value                  string          `json:"value" binding:"required"`
	Label                  string          `json:"label"`
	PriceAdjustment        decimal.Decimal `json:"price_adjustment"`
	DeliveryTimeAdjustment int             `json:"delivery_time_adjustment"`
}

type OptionRequest struct {
	ID                     string          `json:"id" binding:"required"`
	Label                  string          `json:"label"`
	Type                   string          `json:"type" binding:"required,oneof=select checkbox text"`
	PriceAdjustment        decimal.Decimal `json:"price_adjustment"`
	DeliveryTimeAdjustment int             `json:"delivery_time_adjustment"`
	Choices                []ChoiceRequest `json:"choices" binding:"dive"`
}

type StepRequest struct {
	ID      string          `json:"id" binding:"required"`
	Title   string          `json:"title"`
	Options []OptionRequest `json:"options" binding:"dive"`
}

// ServiceRequest is the back-office payload that creates or replaces a
// service definition. The service id comes from the path.
type ServiceRequest struct {
	Name                 string          `json:"name" binding:"required"`
	Category             string          `json:"category"`
	Description          string          `json:"description"`
	BasePrice            decimal.Decimal `json:"base_price"`
	DeliveryTimeBaseDays int             `json:"delivery_time_base_days" binding:"required"`
	Steps                []StepRequest   `json:"steps" binding:"dive"`
	Status               string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (r ServiceRequest) ToEntity(id string) entities.Service {
	s := entities.Service{
		ID:                   strings.TrimSpace(id),
		Name:                 strings.TrimSpace(r.Name),
		Category:             strings.TrimSpace(r.Category),
		Description:          r.Description,
		BasePrice:            r.BasePrice,
		DeliveryTimeBaseDays: r.DeliveryTimeBaseDays,
		Status:               entities.ServiceStatus(r.Status),
		Steps:                make([]entities.ConfigStep, 0, len(r.Steps)),
	}
	for _, st := range r.Steps {
		step := entities.ConfigStep{ID: st.ID, Title: st.Title, Options: make([]entities.ConfigOption, 0, len(st.Options))}
		for _, op := range st.Options {
			opt := entities.ConfigOption{
				ID:                     op.ID,
				Label:                  op.Label,
				Type:                   entities.OptionType(op.Type),
				PriceAdjustment:        op.PriceAdjustment,
				DeliveryTimeAdjustment: op.DeliveryTimeAdjustment,
			}
			for _, ch := range op.Choices {
				opt.Choices = append(opt.Choices, entities.Choice{
					Value:                  ch.Value,
					Label:                  ch.Label,
					PriceAdjustment:        ch.PriceAdjustment,
					DeliveryTimeAdjustment: ch.DeliveryTimeAdjustment,
				})
			}
			step.Options = append(step.Options, opt)
		}
		s.Steps = append(s.Steps, step)
	}
	return s
}

type UpdateServiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}
