package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceStatus controls whether a service can be ordered.
type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusInactive ServiceStatus = "inactive"
)

func (s ServiceStatus) Valid() bool {
	return s == ServiceStatusActive || s == ServiceStatusInactive
}

// OptionType is the input kind of a configuration option.
type OptionType string

const (
	OptionTypeSelect   OptionType = "select"
	OptionTypeCheckbox OptionType = "checkbox"
	OptionTypeText     OptionType = "text"
)

// Service is a sellable offering of the agency catalog.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Monetary representation:
//   - BasePrice is expressed in the base currency (PLN).
//   - Steps keep their presentation order; pricing walks them in that order.
type Service struct {
	ID                   string          `json:"id" validate:"required"`
	Name                 string          `json:"name" validate:"required"`
	Category             string          `json:"category"`
	Description          string          `json:"description"`
	BasePrice            decimal.Decimal `json:"base_price"`
	DeliveryTimeBaseDays int             `json:"delivery_time_base_days" validate:"gte=1"`
	Steps                []ConfigStep    `json:"steps" validate:"dive"`
	Status               ServiceStatus   `json:"status" validate:"oneof=active inactive"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func (s Service) IsActive() bool {
	return s.Status == ServiceStatusActive
}

// ConfigStep groups options shown together in the configurator.
type ConfigStep struct {
	ID      string         `json:"id" validate:"required"`
	Title   string         `json:"title"`
	Options []ConfigOption `json:"options" validate:"dive"`
}

// ConfigOption is a single configurable input.
//
// PriceAdjustment/DeliveryTimeAdjustment apply to checkbox (when checked) and
// text (when filled) options. For select options the chosen Choice carries the
// adjustments and the option-level values are ignored.
type ConfigOption struct {
	ID                     string          `json:"id" validate:"required"`
	Label                  string          `json:"label"`
	Type                   OptionType      `json:"type" validate:"oneof=select checkbox text"`
	PriceAdjustment        decimal.Decimal `json:"price_adjustment"`
	DeliveryTimeAdjustment int             `json:"delivery_time_adjustment"`
	Choices                []Choice        `json:"choices,omitempty" validate:"dive"`
}

type Choice struct {
	Value                  string          `json:"value" validate:"required"`
	Label                  string          `json:"label"`
	PriceAdjustment        decimal.Decimal `json:"price_adjustment"`
	DeliveryTimeAdjustment int             `json:"delivery_time_adjustment"`
}

// LookupOption finds an option by id across all steps.
func (s Service) LookupOption(optionID string) (ConfigStep, ConfigOption, bool) {
	for _, step := range s.Steps {
		for _, opt := range step.Options {
			if opt.ID == optionID {
				return step, opt, true
			}
		}
	}
	return ConfigStep{}, ConfigOption{}, false
}

// FindChoice returns the choice whose Value matches value.
func (o ConfigOption) FindChoice(value string) (Choice, bool) {
	for _, c := range o.Choices {
		if c.Value == value {
			return c, true
		}
	}
	return Choice{}, false
}
