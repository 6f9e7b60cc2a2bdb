package response

import (
	"agency_configurator/internal/domain/pricing"
	"agency_configurator/internal/usecase"

	"github.com/shopspring/decimal"
)

type QuoteResponse struct {
	ServiceID             string                    `json:"service_id"`
	TotalPrice            decimal.Decimal           `json:"total_price"`
	Currency              string                    `json:"currency"`
	TotalDeliveryTimeDays int                       `json:"total_delivery_time_days"`
	DisplayTotalPrice     decimal.Decimal           `json:"display_total_price"`
	DisplayCurrency       string                    `json:"display_currency"`
	Valid                 bool                      `json:"valid"`
	Errors                []pricing.ValidationError `json:"errors"`
	Lines                 []pricing.Line            `json:"lines"`
}

func FromQuote(q usecase.QuoteResult) QuoteResponse {
	errs := q.Validation.Errors
	if errs == nil {
		errs = []pricing.ValidationError{}
	}
	lines := q.Totals.Lines
	if lines == nil {
		lines = []pricing.Line{}
	}
	return QuoteResponse{
		ServiceID:             q.ServiceID,
		TotalPrice:            q.Totals.TotalPrice,
		Currency:              q.BaseCurrency,
		TotalDeliveryTimeDays: q.Totals.TotalDeliveryTimeDays,
		DisplayTotalPrice:     q.DisplayTotalPrice,
		DisplayCurrency:       q.DisplayCurrency,
		Valid:                 q.Validation.Valid(),
		Errors:                errs,
		Lines:                 lines,
	}
}
