package pricing

import (
	"github.com/shopspring/decimal"

	"agency_configurator/internal/domain/entities"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// websiteService is the Package + Rush delivery service used across tests.
func websiteService() entities.Service {
	return entities.Service{
		ID:                   "svc-website",
		Name:                 "Website",
		BasePrice:            d("1000"),
		DeliveryTimeBaseDays: 10,
		Status:               entities.ServiceStatusActive,
		Steps: []entities.ConfigStep{
			{
				ID: "scope",
				Options: []entities.ConfigOption{
					{
						ID:              "Package",
						Type:            entities.OptionTypeSelect,
						PriceAdjustment: d("100"),
						Choices: []entities.Choice{
							{Value: "Basic", PriceAdjustment: d("0"), DeliveryTimeAdjustment: 0},
							{Value: "Pro", PriceAdjustment: d("500"), DeliveryTimeAdjustment: 3},
							{Value: "Enterprise", PriceAdjustment: d("1500"), DeliveryTimeAdjustment: 7},
							{Value: "Express", PriceAdjustment: d("0"), DeliveryTimeAdjustment: -20},
						},
					},
				},
			},
			{
				ID: "extras",
				Options: []entities.ConfigOption{
					{ID: "RushDelivery", Type: entities.OptionTypeCheckbox, PriceAdjustment: d("300"), DeliveryTimeAdjustment: -5},
					{ID: "Requirements", Type: entities.OptionTypeText, PriceAdjustment: d("150.50"), DeliveryTimeAdjustment: 2},
				},
			},
		},
	}
}
