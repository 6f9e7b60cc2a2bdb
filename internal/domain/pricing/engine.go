// Package pricing derives totals for a configured service, validates
// configurations before submission and converts amounts for display.
//
// Everything here is pure: no I/O, no shared state.
package pricing

import (
	"github.com/shopspring/decimal"

	"agency_configurator/internal/domain/entities"
)

// MinDeliveryDays is the floor applied to the computed delivery estimate.
const MinDeliveryDays = 1

// Line is the contribution of one answered option.
type Line struct {
	StepID                 string          `json:"step_id"`
	OptionID               string          `json:"option_id"`
	Value                  string          `json:"value,omitempty"`
	PriceAdjustment        decimal.Decimal `json:"price_adjustment"`
	DeliveryTimeAdjustment int             `json:"delivery_time_adjustment"`
}

type Totals struct {
	TotalPrice            decimal.Decimal `json:"total_price"`
	TotalDeliveryTimeDays int             `json:"total_delivery_time_days"`
	Lines                 []Line          `json:"lines"`
}

// ComputeTotals starts from the base price and delivery time and adds the
// adjustments of every answered option, walking steps then options in order.
//
//   - checkbox: option adjustments when the value is boolean true
//   - text: option adjustments when the value is a non-blank string
//   - select: the matched choice's adjustments only; unmatched adds nothing
//
// The price is floored at 0 and delivery at MinDeliveryDays. Configuration
// keys that do not name an option are ignored here; ValidateConfiguration
// reports them.
func ComputeTotals(s entities.Service, cfg entities.Configuration) (Totals, error) {
	if err := CheckService(s); err != nil {
		return Totals{}, err
	}

	price := s.BasePrice
	days := s.DeliveryTimeBaseDays
	lines := []Line{}

	for _, step := range s.Steps {
		for _, opt := range step.Options {
			line, ok := contribution(step.ID, opt, cfg)
			if !ok {
				continue
			}
			price = price.Add(line.PriceAdjustment)
			days += line.DeliveryTimeAdjustment
			lines = append(lines, line)
		}
	}

	if price.IsNegative() {
		price = decimal.Zero
	}
	if days < MinDeliveryDays {
		days = MinDeliveryDays
	}
	return Totals{TotalPrice: price, TotalDeliveryTimeDays: days, Lines: lines}, nil
}

func contribution(stepID string, opt entities.ConfigOption, cfg entities.Configuration) (Line, bool) {
	v, present := cfg[opt.ID]
	if !present {
		return Line{}, false
	}

	line := Line{StepID: stepID, OptionID: opt.ID}
	switch opt.Type {
	case entities.OptionTypeCheckbox:
		if !v.IsChecked() {
			return Line{}, false
		}
		line.Value = "true"
		line.PriceAdjustment = opt.PriceAdjustment
		line.DeliveryTimeAdjustment = opt.DeliveryTimeAdjustment
	case entities.OptionTypeText:
		if !v.HasText() {
			return Line{}, false
		}
		line.PriceAdjustment = opt.PriceAdjustment
		line.DeliveryTimeAdjustment = opt.DeliveryTimeAdjustment
	case entities.OptionTypeSelect:
		if v.Kind != entities.ValueKindString {
			return Line{}, false
		}
		choice, ok := opt.FindChoice(v.Text)
		if !ok {
			return Line{}, false
		}
		line.Value = choice.Value
		line.PriceAdjustment = choice.PriceAdjustment
		line.DeliveryTimeAdjustment = choice.DeliveryTimeAdjustment
	default:
		return Line{}, false
	}
	return line, true
}
