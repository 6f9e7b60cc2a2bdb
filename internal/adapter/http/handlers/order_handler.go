package handlers

import (
	"errors"
	"log"
	"net/http"

	request "agency_configurator/internal/adapter/http/dto/request"
	response "agency_configurator/internal/adapter/http/dto/response"
	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/domain/pricing"
	"agency_configurator/internal/usecase"
	"agency_configurator/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidOrderPayload  = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
	errInvalidConfiguration = pkg.NewDomainErrorSimple("INVALID_CONFIGURATION", "Configuration is not valid for this service", http.StatusUnprocessableEntity)
)

// OrderHandler handles quotes, order submission and order management.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// Quote godoc
// @Summary  Price a configuration
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    service_id path string true "service id"
// @Param    payload body request.QuoteRequest true "configuration"
// @Success  200 {object} response.QuoteResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /services/{service_id}/quote [post]
func (h *OrderHandler) Quote(c *gin.Context) {
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	q, err := h.usecase.Quote(c.Request.Context(), c.Param("service_id"), payload.Configuration, payload.Currency)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// SubmitOrder godoc
// @Summary     Submit an order
// @Description Stores the order with frozen totals and opens a payment intent.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       payload body request.SubmitOrderRequest true "order"
// @Success     201 {object} response.SubmitOrderResponse
// @Failure     404 {object} pkg.HTTPError
// @Failure     422 {object} pkg.HTTPError
// @Router      /orders [post]
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	var payload request.SubmitOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[order][handler] invalid payload err=%v", err)
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	res, err := h.usecase.SubmitOrder(c.Request.Context(), payload.ToCommand())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if !res.Accepted() {
		appErr := errInvalidConfiguration.WithDetails(res.Validation.Errors)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	out := response.SubmitOrderResponse{Order: response.FromOrder(res.Order)}
	if res.PaymentError != nil {
		httpErr := mapPaymentError(res.PaymentError).ToHTTPError()
		out.PaymentError = &httpErr
	} else if res.Payment.ID != "" {
		p := response.FromPayment(res.Payment)
		out.Payment = &p
	}
	log.Printf("[order][handler] order submitted order_id=%s payment_ok=%t", res.Order.ID, res.PaymentError == nil)
	c.JSON(http.StatusCreated, out)
}

// GetOrder godoc
// @Summary  Get an order
// @Tags     orders
// @Produce  json
// @Param    order_id path string true "order id"
// @Success  200 {object} response.OrderResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /orders/{order_id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.usecase.GetOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// ListOrders godoc
// @Summary  List the orders of a customer
// @Tags     orders
// @Produce  json
// @Param    email query string true "contact email"
// @Success  200 {array} response.OrderResponse
// @Router   /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	items, err := h.usecase.ListOrders(c.Request.Context(), c.Query("email"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(items))
}

// UpdateOrderStatus godoc
// @Summary  Move an order through the back-office workflow
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    order_id path string true "order id"
// @Param    payload body request.UpdateOrderStatusRequest true "status"
// @Success  200 {object} response.OrderResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /admin/orders/{order_id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var payload request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	status := entities.OrderStatus(payload.Status)
	if !status.Valid() {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("order_id"), status)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(updated))
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidServiceID), errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidContactEmail):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidContactInfo):
		return pkg.NewDomainErrorSimple("INVALID_CONTACT_INFO", "Contact information is incomplete", http.StatusBadRequest)
	case errors.Is(err, pricing.ErrUnsupportedCurrency):
		return pkg.NewDomainErrorSimple("UNSUPPORTED_CURRENCY", "Currency is not supported", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Order status transition not allowed", http.StatusConflict)
	case errors.Is(err, usecase.ErrServiceDefinitionInvalid):
		return pkg.NewDomainError("SERVICE_DEFINITION_INVALID", "Service definition is malformed", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
