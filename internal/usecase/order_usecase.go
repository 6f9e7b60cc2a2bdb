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
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound             = errors.New("order not found")
	ErrInvalidOrderID            = errors.New("invalid order id")
	ErrInvalidContactEmail       = errors.New("invalid contact email")
	ErrInvalidContactInfo        = errors.New("invalid contact info")
	ErrInvalidStatusTransition   = errors.New("invalid order status transition")
	ErrServiceDefinitionInvalid  = errors.New("service definition violates pricing invariants")
	ErrOrderIDGenerationExceeded = errors.New("could not allocate a unique order id")
)

const maxOrderIDAttempts = 5

// QuoteResult is what the configurator shows while the customer is still
// choosing options. Totals are always in the base currency; DisplayTotalPrice
// is the same amount in DisplayCurrency.
type QuoteResult struct {
	ServiceID         string
	Totals            pricing.Totals
	Validation        pricing.ValidationResult
	BaseCurrency      string
	DisplayCurrency   string
	DisplayTotalPrice decimal.Decimal
}

type SubmitOrderCommand struct {
	ServiceID     string
	Configuration entities.Configuration
	ContactInfo   entities.ContactInfo
}

// SubmitOrderResult carries either validation failures (no order stored) or
// the stored order plus the outcome of the payment intent request. A
// PaymentError never undoes the order.
type SubmitOrderResult struct {
	Order        entities.Order
	Validation   pricing.ValidationResult
	Payment      entities.Payment
	PaymentError error
}

func (r SubmitOrderResult) Accepted() bool {
	return r.Order.ID != ""
}

// IOrderUseCase exposes order intake and back-office order management.
//
//   - POST /services/{id}/quote => Quote()
//   - POST /orders => SubmitOrder()
//   - PATCH /admin/orders/{id}/status => UpdateStatus()

type IOrderUseCase interface {
	Quote(ctx context.Context, serviceID string, cfg entities.Configuration, currency string) (QuoteResult, error)
	SubmitOrder(ctx context.Context, cmd SubmitOrderCommand) (SubmitOrderResult, error)
	GetOrder(ctx context.Context, id string) (entities.Order, error)
	ListOrders(ctx context.Context, contactEmail string) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error)
}

// paymentStarter is the part of the payment use case order intake needs.
type paymentStarter interface {
	StartPayment(ctx context.Context, o entities.Order) (entities.Payment, error)
}

type OrderUseCase struct {
	services  interfaces.IServiceRepository
	orders    interfaces.IOrderRepository
	ids       interfaces.IOrderIDGenerator
	events    interfaces.IOrderEventPublisher
	payments  paymentStarter
	converter *pricing.CurrencyConverter
	validate  *validator.Validate
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(
	services interfaces.IServiceRepository,
	orders interfaces.IOrderRepository,
	ids interfaces.IOrderIDGenerator,
	events interfaces.IOrderEventPublisher,
	payments paymentStarter,
	converter *pricing.CurrencyConverter,
	validate *validator.Validate,
) *OrderUseCase {
	return &OrderUseCase{
		services:  services,
		orders:    orders,
		ids:       ids,
		events:    events,
		payments:  payments,
		converter: converter,
		validate:  validate,
	}
}

func (u *OrderUseCase) Quote(ctx context.Context, serviceID string, cfg entities.Configuration, currency string) (QuoteResult, error) {
	svc, err := u.activeService(ctx, serviceID)
	if err != nil {
		return QuoteResult{}, err
	}

	displayCurrency := strings.ToUpper(strings.TrimSpace(currency))
	if displayCurrency == "" {
		displayCurrency = u.converter.Base()
	}
	if !u.converter.Supports(displayCurrency) {
		return QuoteResult{}, fmt.Errorf("%w: %s", pricing.ErrUnsupportedCurrency, displayCurrency)
	}

	totals, err := pricing.ComputeTotals(svc, cfg)
	if err != nil {
		log.Printf("[order][usecase] quote on malformed service service_id=%s err=%v", svc.ID, err)
		return QuoteResult{}, fmt.Errorf("%w: %v", ErrServiceDefinitionInvalid, err)
	}
	display, err := u.converter.ApplyCurrencyDisplay(totals.TotalPrice, displayCurrency)
	if err != nil {
		return QuoteResult{}, err
	}

	return QuoteResult{
		ServiceID:         svc.ID,
		Totals:            totals,
		Validation:        pricing.ValidateConfiguration(svc, cfg),
		BaseCurrency:      u.converter.Base(),
		DisplayCurrency:   displayCurrency,
		DisplayTotalPrice: display,
	}, nil
}

// SubmitOrder turns a validated configuration into a stored order with
// frozen totals and then asks the payment provider for an intent.
func (u *OrderUseCase) SubmitOrder(ctx context.Context, cmd SubmitOrderCommand) (SubmitOrderResult, error) {
	log.Printf("[order][usecase] submit start service_id=%q options=%d", cmd.ServiceID, len(cmd.Configuration))

	svc, err := u.activeService(ctx, cmd.ServiceID)
	if err != nil {
		log.Printf("[order][usecase] submit rejected service_id=%q err=%v", cmd.ServiceID, err)
		return SubmitOrderResult{}, err
	}

	contact := normalizeContact(cmd.ContactInfo)
	if u.validate != nil {
		if err := u.validate.Struct(contact); err != nil {
			return SubmitOrderResult{}, fmt.Errorf("%w: %v", ErrInvalidContactInfo, err)
		}
	}

	validation := pricing.ValidateConfiguration(svc, cmd.Configuration)
	if !validation.Valid() {
		log.Printf("[order][usecase] configuration invalid service_id=%s errors=%d", svc.ID, len(validation.Errors))
		return SubmitOrderResult{Validation: validation}, nil
	}

	totals, err := pricing.ComputeTotals(svc, cmd.Configuration)
	if err != nil {
		log.Printf("[order][usecase] submit on malformed service service_id=%s err=%v", svc.ID, err)
		return SubmitOrderResult{}, fmt.Errorf("%w: %v", ErrServiceDefinitionInvalid, err)
	}

	now := time.Now().UTC()
	order := entities.Order{
		ServiceID:        svc.ID,
		Configuration:    cmd.Configuration.Clone(),
		ContactInfo:      contact,
		TotalPrice:       totals.TotalPrice,
		DeliveryTimeDays: totals.TotalDeliveryTimeDays,
		Currency:         u.converter.Base(),
		Status:           entities.OrderStatusSubmitted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := u.createWithUniqueID(ctx, order)
	if err != nil {
		return SubmitOrderResult{}, err
	}
	log.Printf("[order][usecase] order stored order_id=%s total=%s %s days=%d", created.ID, created.TotalPrice, created.Currency, created.DeliveryTimeDays)
	u.publish(ctx, entities.OrderEventSubmitted, created)

	res := SubmitOrderResult{Order: created, Validation: validation}
	if u.payments == nil {
		return res, nil
	}
	p, err := u.payments.StartPayment(ctx, created)
	if err != nil {
		log.Printf("[order][usecase] payment intent failed; order kept order_id=%s err=%v", created.ID, err)
		res.PaymentError = err
		return res, nil
	}
	res.Payment = p
	return res, nil
}

func (u *OrderUseCase) createWithUniqueID(ctx context.Context, o entities.Order) (entities.Order, error) {
	for attempt := 1; attempt <= maxOrderIDAttempts; attempt++ {
		o.ID = u.ids.Next()
		created, err := u.orders.Create(ctx, o)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, interfaces.ErrAlreadyExists) {
			log.Printf("[order][usecase] order create failed order_id=%s err=%v", o.ID, err)
			return entities.Order{}, err
		}
		log.Printf("[order][usecase] order id collision order_id=%s attempt=%d", o.ID, attempt)
	}
	return entities.Order{}, ErrOrderIDGenerationExceeded
}

func (u *OrderUseCase) GetOrder(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	o, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// ListOrders returns the orders of one customer, newest first.
func (u *OrderUseCase) ListOrders(ctx context.Context, contactEmail string) ([]entities.Order, error) {
	email := normalizeEmail(contactEmail)
	if email == "" {
		return nil, ErrInvalidContactEmail
	}

	orders, err := u.orders.ListByContactEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// UpdateStatus applies a back-office transition. paid and payment_failed
// are reserved for payment provider signals.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error) {
	if !status.IsAdminTarget() {
		return entities.Order{}, ErrInvalidStatusTransition
	}

	current, err := u.GetOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if !current.Status.CanTransitionTo(status) {
		log.Printf("[order][usecase] transition refused order_id=%s from=%s to=%s", current.ID, current.Status, status)
		return entities.Order{}, ErrInvalidStatusTransition
	}

	updated, err := u.orders.UpdateStatus(ctx, current.ID, current.Status, status)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.Order{}, ErrInvalidStatusTransition
		}
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	log.Printf("[order][usecase] status changed order_id=%s from=%s to=%s", updated.ID, current.Status, updated.Status)
	u.publish(ctx, entities.OrderEventStatusChanged, updated)
	return updated, nil
}

// activeService treats inactive services as missing for storefront callers.
func (u *OrderUseCase) activeService(ctx context.Context, serviceID string) (entities.Service, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return entities.Service{}, ErrInvalidServiceID
	}
	svc, err := u.services.GetByID(ctx, serviceID)
	if err != nil {
		return entities.Service{}, err
	}
	if svc.ID == "" || !svc.IsActive() {
		return entities.Service{}, ErrServiceNotFound
	}
	return svc, nil
}

func (u *OrderUseCase) publish(ctx context.Context, t entities.OrderEventType, o entities.Order) {
	publishOrderEvent(ctx, u.events, t, o)
}

// publishOrderEvent never fails the caller: the order is already stored.
func publishOrderEvent(ctx context.Context, events interfaces.IOrderEventPublisher, t entities.OrderEventType, o entities.Order) {
	if events == nil {
		return
	}
	if err := events.PublishOrderEvent(ctx, entities.NewOrderEvent(t, o, time.Now().UTC())); err != nil {
		log.Printf("[order][events] publish failed type=%s order_id=%s err=%v", t, o.ID, err)
	}
}

func normalizeContact(c entities.ContactInfo) entities.ContactInfo {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = normalizeEmail(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Company = strings.TrimSpace(c.Company)
	c.Message = strings.TrimSpace(c.Message)
	return c
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
