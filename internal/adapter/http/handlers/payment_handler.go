package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	request "agency_configurator/internal/adapter/http/dto/request"
	response "agency_configurator/internal/adapter/http/dto/response"
	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/usecase"
	"agency_configurator/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)
)

// PaymentHandler handles payment intents and payment provider signals.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePayment godoc
// @Summary     Open a new payment intent for an order
// @Description Used to retry after a failed payment or a failed intent.
// @Tags        payments
// @Produce     json
// @Param       order_id path string true "order id"
// @Success     201 {object} response.PaymentResponse
// @Failure     409 {object} pkg.HTTPError
// @Router      /orders/{order_id}/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	orderID := c.Param("order_id")
	log.Printf("[payment][handler] create start order_id=%s", orderID)

	created, err := h.usecase.CreateIntent(c.Request.Context(), orderID)
	if err != nil {
		log.Printf("[payment][handler] create failed order_id=%s err=%v", orderID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success order_id=%s payment_id=%s", orderID, created.ID)
	c.JSON(http.StatusCreated, response.FromPayment(created))
}

// ListPayments godoc
// @Summary  List the payments of an order, newest first
// @Tags     payments
// @Produce  json
// @Param    order_id path string true "order id"
// @Success  200 {array} response.PaymentResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /orders/{order_id}/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	orderID := c.Param("order_id")

	payments, err := h.usecase.ListByOrderID(c.Request.Context(), orderID)
	if err != nil {
		log.Printf("[payment][handler] list failed order_id=%s err=%v", orderID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if len(payments) == 0 {
		appErr := pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// Webhook godoc
// @Summary     Payment provider notification
// @Description Accepts the Mercado Pago webhook body or the legacy ?topic=payment&id= query.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Success     200 {object} response.PaymentResponse
// @Success     202
// @Router      /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var payload request.PaymentNotificationRequest
	// Chunked requests report ContentLength -1; an empty body means the legacy query form.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
			log.Printf("[payment][handler] webhook invalid payload err=%v", err)
			c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
			return
		}
	}

	providerID := payload.ResolveProviderPaymentID()
	if providerID == "" {
		if topic := c.Query("topic"); topic != "" {
			payload.Type = topic
		}
		providerID = strings.TrimSpace(c.DefaultQuery("data.id", c.Query("id")))
	}
	if !payload.IsPayment() {
		log.Printf("[payment][handler] webhook ignored type=%s", payload.Type)
		c.Status(http.StatusAccepted)
		return
	}

	updated, err := h.usecase.HandleProviderNotification(c.Request.Context(), providerID)
	if err != nil {
		log.Printf("[payment][handler] webhook failed provider_payment_id=%s err=%v", providerID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] webhook applied payment_id=%s status=%s", updated.ID, updated.Status)
	c.JSON(http.StatusOK, response.FromPayment(updated))
}

// ApplyResult godoc
// @Summary     Record a payment outcome
// @Description Back-office and mock-mode signal. Requires the X-Payment-Signal-Secret header.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    PaymentSignalSecret
// @Param       payment_id path string true "payment id"
// @Param       payload body request.PaymentResultRequest true "outcome"
// @Success     200 {object} response.PaymentResponse
// @Failure     401 {object} pkg.HTTPError
// @Failure     409 {object} pkg.HTTPError
// @Router      /admin/payments/{payment_id}/result [post]
func (h *PaymentHandler) ApplyResult(c *gin.Context) {
	var payload request.PaymentResultRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.ApplyResult(c.Request.Context(), entities.PaymentResult{
		PaymentID:         c.Param("payment_id"),
		ProviderPaymentID: payload.ProviderPaymentID,
		Outcome:           entities.PaymentOutcome(payload.Outcome),
		Raw:               payload.Raw,
	})
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(updated))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidProviderPaymentID), errors.Is(err, usecase.ErrInvalidPaymentOutcome):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_BAD_REQUEST", "Payment provider rejected the request", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_FOUND", "Payment not found at the provider", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotPayable):
		return pkg.NewDomainErrorSimple("ORDER_NOT_PAYABLE", "Order is not awaiting payment", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentAlreadyFinal):
		return pkg.NewDomainErrorSimple("PAYMENT_ALREADY_FINAL", "Payment already has a final status", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
