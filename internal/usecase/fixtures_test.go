package usecase

import (
	"github.com/shopspring/decimal"

	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/domain/pricing"
)

func websiteService() entities.Service {
	return entities.Service{
		ID:                   "svc-website",
		Name:                 "Website",
		Category:             "web",
		BasePrice:            decimal.NewFromInt(1000),
		DeliveryTimeBaseDays: 10,
		Status:               entities.ServiceStatusActive,
		Steps: []entities.ConfigStep{
			{
				ID: "scope",
				Options: []entities.ConfigOption{{
					ID:   "Package",
					Type: entities.OptionTypeSelect,
					Choices: []entities.Choice{
						{Value: "Basic"},
						{Value: "Pro", PriceAdjustment: decimal.NewFromInt(500), DeliveryTimeAdjustment: 3},
					},
				}},
			},
			{
				ID: "extras",
				Options: []entities.ConfigOption{
					{ID: "RushDelivery", Type: entities.OptionTypeCheckbox, PriceAdjustment: decimal.NewFromInt(300), DeliveryTimeAdjustment: -5},
				},
			},
		},
	}
}

func newConverter() *pricing.CurrencyConverter {
	return pricing.NewCurrencyConverter("PLN", map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.23")})
}
