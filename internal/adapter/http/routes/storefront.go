package routes

import (
	"agency_configurator/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathServices = "/services"
	PathOrders   = "/orders"
	PathPayments = "/payments"
	PathAdmin    = "/admin"
)

func addCatalogRoutes(rg *gin.RouterGroup, catalogHandler *handlers.CatalogHandler, orderHandler *handlers.OrderHandler) {
	services := rg.Group(PathServices)
	{
		services.GET("", catalogHandler.ListServices)
		services.GET("/:service_id", catalogHandler.GetService)
		services.POST("/:service_id/quote", orderHandler.Quote)
	}
}

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler, paymentHandler *handlers.PaymentHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.SubmitOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:order_id", orderHandler.GetOrder)
		orders.POST("/:order_id/payments", paymentHandler.CreatePayment)
		orders.GET("/:order_id/payments", paymentHandler.ListPayments)
	}
}

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		// Mercado Pago notification_url.
		payments.POST("/webhook", paymentHandler.Webhook)
	}
}
