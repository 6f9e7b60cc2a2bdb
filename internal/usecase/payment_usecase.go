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
	"agency_configurator/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound             = errors.New("payment not found")
	ErrInvalidPaymentID            = errors.New("invalid payment id")
	ErrInvalidProviderPaymentID    = errors.New("invalid provider payment id")
	ErrInvalidPaymentOutcome       = errors.New("invalid payment outcome")
	ErrOrderNotPayable             = errors.New("order is not awaiting payment")
	ErrPaymentAlreadyFinal         = errors.New("payment already has a different final status")
	ErrPaymentGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest    = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized  = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayNotFound      = errors.New("payment gateway resource not found")
)

// IPaymentUseCase drives payment intents and provider signals.
//
//   - POST /orders/{id}/payments => CreateIntent()
//   - POST /payments/webhook => HandleProviderNotification()
//   - POST /admin/payments/{id}/result => ApplyResult()
//
// The amount charged always comes from the stored order, never from the
// caller. A failed payment is never retried automatically; the customer
// starts a new intent against the same order.

type IPaymentUseCase interface {
	CreateIntent(ctx context.Context, orderID string) (entities.Payment, error)
	StartPayment(ctx context.Context, o entities.Order) (entities.Payment, error)
	HandleProviderNotification(ctx context.Context, providerPaymentID string) (entities.Payment, error)
	ApplyResult(ctx context.Context, result entities.PaymentResult) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo    interfaces.IPaymentRepository
	orders  interfaces.IOrderRepository
	gateway interfaces.IPaymentGateway
	events  interfaces.IOrderEventPublisher
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, orders interfaces.IOrderRepository, gateway interfaces.IPaymentGateway, events interfaces.IOrderEventPublisher) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, orders: orders, gateway: gateway, events: events}
}

// CreateIntent opens a new payment for an order still awaiting payment. An
// order in payment_failed goes back to submitted first. While an intent is
// still pending it is returned instead of opening another one.
func (u *PaymentUseCase) CreateIntent(ctx context.Context, orderID string) (entities.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Payment{}, ErrInvalidOrderID
	}
	log.Printf("[payment][usecase] create-intent start order_id=%s", orderID)

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading order order_id=%s err=%v", orderID, err)
		return entities.Payment{}, err
	}
	if order.ID == "" {
		return entities.Payment{}, ErrOrderNotFound
	}
	if !order.Status.AwaitingPayment() {
		log.Printf("[payment][usecase] order not payable order_id=%s status=%s", orderID, order.Status)
		return entities.Payment{}, ErrOrderNotPayable
	}

	pending, err := u.pendingPayment(ctx, order.ID)
	if err != nil {
		return entities.Payment{}, err
	}
	if pending.ID != "" {
		log.Printf("[payment][usecase] reusing pending intent order_id=%s payment_id=%s", order.ID, pending.ID)
		return pending, nil
	}

	if order.Status == entities.OrderStatusPaymentFailed {
		reopened, err := u.orders.UpdateStatus(ctx, order.ID, entities.OrderStatusPaymentFailed, entities.OrderStatusSubmitted)
		if err != nil {
			if errors.Is(err, interfaces.ErrConditionFailed) {
				return entities.Payment{}, ErrOrderNotPayable
			}
			return entities.Payment{}, err
		}
		if reopened.ID == "" {
			return entities.Payment{}, ErrOrderNotFound
		}
		log.Printf("[payment][usecase] order reopened for payment order_id=%s", order.ID)
		order = reopened
	}

	return u.StartPayment(ctx, order)
}

// pendingPayment returns the newest pending payment of an order, or an empty
// Payment when there is none.
func (u *PaymentUseCase) pendingPayment(ctx context.Context, orderID string) (entities.Payment, error) {
	items, err := u.ListByOrderID(ctx, orderID)
	if err != nil {
		log.Printf("[payment][usecase] failed listing payments order_id=%s err=%v", orderID, err)
		return entities.Payment{}, err
	}
	for _, p := range items {
		if p.Status == entities.PaymentStatusPending {
			return p, nil
		}
	}
	return entities.Payment{}, nil
}

// StartPayment asks the gateway for an intent and stores the pending payment.
func (u *PaymentUseCase) StartPayment(ctx context.Context, o entities.Order) (entities.Payment, error) {
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured order_id=%s", o.ID)
		return entities.Payment{}, ErrPaymentGatewayNotConfigured
	}

	now := time.Now().UTC()
	p := entities.Payment{
		ID:        uuid.NewString(),
		OrderID:   o.ID,
		Amount:    o.TotalPrice,
		Currency:  o.Currency,
		Status:    entities.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	metadata := map[string]string{
		"payment_id":  p.ID,
		"order_id":    o.ID,
		"service_id":  o.ServiceID,
		"description": fmt.Sprintf("Order %s", o.ID),
	}
	log.Printf("[payment][usecase] calling payment gateway order_id=%s payment_id=%s amount=%s %s", o.ID, p.ID, p.Amount, p.Currency)
	intent, err := u.gateway.CreatePaymentIntent(ctx, p.Amount, p.Currency, metadata)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed order_id=%s err=%v", o.ID, err)
		return entities.Payment{}, classifyGatewayError(err)
	}
	p.ClientHandle = intent.ClientHandle
	p.CheckoutURL = intent.CheckoutURL
	p.ProviderPayloadRaw = intent.Raw

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed order_id=%s payment_id=%s err=%v", o.ID, p.ID, err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] intent created order_id=%s payment_id=%s client_handle=%s", o.ID, created.ID, created.ClientHandle)
	return created, nil
}

// HandleProviderNotification resolves a provider notification into our
// payment and applies its outcome. Pending outcomes change nothing.
func (u *PaymentUseCase) HandleProviderNotification(ctx context.Context, providerPaymentID string) (entities.Payment, error) {
	providerPaymentID = strings.TrimSpace(providerPaymentID)
	if providerPaymentID == "" {
		return entities.Payment{}, ErrInvalidProviderPaymentID
	}
	if u.gateway == nil {
		return entities.Payment{}, ErrPaymentGatewayNotConfigured
	}

	result, err := u.gateway.FetchPaymentResult(ctx, providerPaymentID)
	if err != nil {
		log.Printf("[payment][usecase] fetch result failed provider_payment_id=%s err=%v", providerPaymentID, err)
		return entities.Payment{}, classifyGatewayError(err)
	}
	if result.PaymentID == "" {
		log.Printf("[payment][usecase] notification without external reference provider_payment_id=%s", providerPaymentID)
		return entities.Payment{}, ErrPaymentNotFound
	}
	if result.ProviderPaymentID == "" {
		result.ProviderPaymentID = providerPaymentID
	}
	return u.ApplyResult(ctx, result)
}

// ApplyResult records a provider outcome. Applying the same outcome twice
// is a no-op; a conflicting outcome for a final payment is refused.
func (u *PaymentUseCase) ApplyResult(ctx context.Context, result entities.PaymentResult) (entities.Payment, error) {
	result.PaymentID = strings.TrimSpace(result.PaymentID)
	if result.PaymentID == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	var target entities.PaymentStatus
	switch result.Outcome {
	case entities.PaymentOutcomeSuccess:
		target = entities.PaymentStatusSucceeded
	case entities.PaymentOutcomeFailure:
		target = entities.PaymentStatusFailed
	case entities.PaymentOutcomePending:
		return u.GetByID(ctx, result.PaymentID)
	default:
		return entities.Payment{}, ErrInvalidPaymentOutcome
	}

	p, err := u.GetByID(ctx, result.PaymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.Status.IsFinal() {
		if p.Status == target {
			log.Printf("[payment][usecase] outcome already applied payment_id=%s status=%s", p.ID, p.Status)
			return p, nil
		}
		log.Printf("[payment][usecase] conflicting outcome payment_id=%s status=%s outcome=%s", p.ID, p.Status, result.Outcome)
		return entities.Payment{}, ErrPaymentAlreadyFinal
	}

	p.Status = target
	p.UpdatedAt = time.Now().UTC()
	if result.ProviderPaymentID != "" {
		p.ProviderPaymentID = result.ProviderPaymentID
	}
	if len(result.Raw) > 0 {
		p.ProviderPayloadRaw = result.Raw
	}

	updated, err := u.repo.Update(ctx, p)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			// Another signal finalised the payment first.
			current, gErr := u.GetByID(ctx, p.ID)
			if gErr != nil {
				return entities.Payment{}, gErr
			}
			if current.Status == target {
				return current, nil
			}
			return entities.Payment{}, ErrPaymentAlreadyFinal
		}
		log.Printf("[payment][usecase] payment update failed payment_id=%s err=%v", p.ID, err)
		return entities.Payment{}, err
	}
	if updated.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	log.Printf("[payment][usecase] outcome applied payment_id=%s status=%s", updated.ID, updated.Status)

	u.advanceOrder(ctx, updated)
	return updated, nil
}

// advanceOrder moves a submitted order to paid or payment_failed. A success
// also settles an order that an earlier intent already marked payment_failed.
// Orders that already moved on (e.g. cancelled by an admin) are left alone.
func (u *PaymentUseCase) advanceOrder(ctx context.Context, p entities.Payment) {
	next := entities.OrderStatusPaid
	event := entities.OrderEventPaid
	from := []entities.OrderStatus{entities.OrderStatusSubmitted, entities.OrderStatusPaymentFailed}
	if p.Status == entities.PaymentStatusFailed {
		next = entities.OrderStatusPaymentFailed
		event = entities.OrderEventPaymentFailed
		from = from[:1]
	}

	var (
		order entities.Order
		err   error
	)
	for _, expected := range from {
		order, err = u.orders.UpdateStatus(ctx, p.OrderID, expected, next)
		if !errors.Is(err, interfaces.ErrConditionFailed) {
			break
		}
	}
	if err != nil {
		log.Printf("[payment][usecase] order not advanced order_id=%s to=%s err=%v", p.OrderID, next, err)
		return
	}
	if order.ID == "" {
		log.Printf("[payment][usecase] order missing for payment order_id=%s payment_id=%s", p.OrderID, p.ID)
		return
	}
	log.Printf("[payment][usecase] order advanced order_id=%s status=%s", order.ID, order.Status)
	publishOrderEvent(ctx, u.events, event, order)
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

// ListByOrderID returns the payments of an order, newest first.
func (u *PaymentUseCase) ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	items, err := u.repo.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func classifyGatewayError(err error) error {
	switch {
	case isGatewayUnauthorized(err):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayUnauthorized, err)
	case isGatewayNotFound(err):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayNotFound, err)
	case isGatewayBadRequest(err):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayBadRequest, err)
	}
	return err
}

func isGatewayBadRequest(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"not_found\"") || strings.Contains(msg, "\"status\":404")
}
