package routes

import (
	"agency_configurator/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

func addAdminRoutes(rg *gin.RouterGroup, catalogHandler *handlers.CatalogHandler, orderHandler *handlers.OrderHandler, paymentHandler *handlers.PaymentHandler, signalSecret string) {
	services := rg.Group(PathServices)
	{
		services.PUT("/:service_id", catalogHandler.SaveService)
		services.PATCH("/:service_id/status", catalogHandler.UpdateServiceStatus)
	}

	orders := rg.Group(PathOrders)
	{
		orders.PATCH("/:order_id/status", orderHandler.UpdateOrderStatus)
	}

	// Manual payment outcomes bypass the gateway, so they need the shared secret.
	payments := rg.Group(PathPayments, handlers.RequireSharedSecret(handlers.PaymentSignalSecretHeader, signalSecret))
	{
		payments.POST("/:payment_id/result", paymentHandler.ApplyResult)
	}
}
