package response

import (
	"time"

	"agency_configurator/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ChoiceResponse struct {
	Value                  string          `json:"value"`
	Label                  string          `json:"label"`
	PriceAdjustment        decimal.Decimal `json:"price_adjustment"`
	DeliveryTimeAdjustment int             `json:"delivery_time_adjustment"`
}

type OptionResponse struct {
	ID                     string           `json:"id"`
	Label                  string           `json:"label"`
	Type                   string           `json:"type"`
	PriceAdjustment        decimal.Decimal  `json:"price_adjustment"`
	DeliveryTimeAdjustment int              `json:"delivery_time_adjustment"`
	Choices                []ChoiceResponse `json:"choices,omitempty"`
}

type StepResponse struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Options []OptionResponse `json:"options"`
}

type ServiceResponse struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	Description          string          `json:"description,omitempty"`
	BasePrice            decimal.Decimal `json:"base_price"`
	Currency             string          `json:"currency"`
	DeliveryTimeBaseDays int             `json:"delivery_time_base_days"`
	Steps                []StepResponse  `json:"steps"`
	Status               string          `json:"status"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func FromService(s entities.Service, currency string) ServiceResponse {
	out := ServiceResponse{
		ID:                   s.ID,
		Name:                 s.Name,
		Category:             s.Category,
		Description:          s.Description,
		BasePrice:            s.BasePrice,
		Currency:             currency,
		DeliveryTimeBaseDays: s.DeliveryTimeBaseDays,
		Steps:                make([]StepResponse, 0, len(s.Steps)),
		Status:               string(s.Status),
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
	for _, st := range s.Steps {
		step := StepResponse{ID: st.ID, Title: st.Title, Options: make([]OptionResponse, 0, len(st.Options))}
		for _, op := range st.Options {
			opt := OptionResponse{
				ID:                     op.ID,
				Label:                  op.Label,
				Type:                   string(op.Type),
				PriceAdjustment:        op.PriceAdjustment,
				DeliveryTimeAdjustment: op.DeliveryTimeAdjustment,
			}
			for _, ch := range op.Choices {
				opt.Choices = append(opt.Choices, ChoiceResponse(ch))
			}
			step.Options = append(step.Options, opt)
		}
		out.Steps = append(out.Steps, step)
	}
	return out
}

func FromServices(items []entities.Service, currency string) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(items))
	for _, s := range items {
		out = append(out, FromService(s, currency))
	}
	return out
}
