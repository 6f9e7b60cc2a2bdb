package request

import (
	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/usecase"
)

// QuoteRequest prices a configuration without storing anything. Currency is
// optional and only affects the display amount.
type QuoteRequest struct {
	Configuration entities.Configuration `json:"configuration"`
	Currency      string                 `json:"currency"`
}

type ContactInfoRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message" binding:"max=4000"`
}

type SubmitOrderRequest struct {
	ServiceID     string                 `json:"service_id" binding:"required"`
	Configuration entities.Configuration `json:"configuration"`
	ContactInfo   ContactInfoRequest     `json:"contact_info"`
}

func (r SubmitOrderRequest) ToCommand() usecase.SubmitOrderCommand {
	cfg := r.Configuration
	if cfg == nil {
		cfg = entities.Configuration{}
	}
	return usecase.SubmitOrderCommand{
		ServiceID:     r.ServiceID,
		Configuration: cfg,
		ContactInfo: entities.ContactInfo{
			Name:    r.ContactInfo.Name,
			Email:   r.ContactInfo.Email,
			Phone:   r.ContactInfo.Phone,
			Company: r.ContactInfo.Company,
			Message: r.ContactInfo.Message,
		},
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
