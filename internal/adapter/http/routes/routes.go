package routes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "agency_configurator/docs" // swag init output
	"agency_configurator/internal/adapter/http/handlers"
	"agency_configurator/internal/adapter/persistence/repository"
	"agency_configurator/internal/config"
	"agency_configurator/internal/domain/pricing"
	"agency_configurator/internal/infrastructure/cache"
	"agency_configurator/internal/infrastructure/database"
	"agency_configurator/internal/infrastructure/messaging"
	"agency_configurator/internal/infrastructure/payments"
	"agency_configurator/internal/usecase"
	"agency_configurator/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Run will start the server and block until SIGINT or SIGTERM.
func Run(cfg config.Config) {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	closers, err := getRoutes(context.Background(), router, cfg)
	if err != nil {
		log.Fatalf("Failed to wire the application: %v", err)
	}
	defer closeAll(closers)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to startup the application: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down the application")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

// getRoutes wires every dependency and returns the clients to close on shutdown.
func getRoutes(ctx context.Context, router *gin.Engine, cfg config.Config) ([]io.Closer, error) {
	var closers []io.Closer

	ddb, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	serviceStore := repository.NewServiceDynamoRepository(ddb, cfg.ServicesTable)
	var catalogCache repository.ServiceCache
	redisCache, err := cache.ConnectRedis(ctx, cfg)
	if err != nil {
		log.Printf("Catalog cache disabled: %v", err)
	} else if redisCache != nil {
		catalogCache = redisCache
		closers = append(closers, redisCache)
	}
	catalogRepo, pricingRepo := serviceRepositories(serviceStore, catalogCache, cfg.CatalogTTL)
	orderRepo := repository.NewOrderDynamoRepository(ddb, cfg.OrdersTable)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb, cfg.PaymentsTable)

	var events interfaces.IOrderEventPublisher = messaging.NoopOrderEventPublisher{}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		publisher := messaging.NewKafkaOrderEventPublisher(brokers, cfg.OrderEventsTopic)
		events = publisher
		closers = append(closers, publisher)
	}

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg)
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	rates, err := cfg.DisplayRates()
	if err != nil {
		closeAll(closers)
		return nil, err
	}
	converter := pricing.NewCurrencyConverter(cfg.BaseCurrency, rates)
	validate := validator.New()

	catalogUseCase := usecase.NewCatalogUseCase(catalogRepo, validate)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, orderRepo, paymentGateway, events)
	orderUseCase := usecase.NewOrderUseCase(pricingRepo, orderRepo, usecase.NewOrderIDGenerator(cfg.OrderIDPrefix), events, paymentUseCase, converter, validate)

	catalogHandler := handlers.NewCatalogHandler(catalogUseCase, cfg.BaseCurrency)
	orderHandler := handlers.NewOrderHandler(orderUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addCatalogRoutes(v1, catalogHandler, orderHandler)
	addOrderRoutes(v1, orderHandler, paymentHandler)
	addPaymentRoutes(v1, paymentHandler)

	// Back-office
	admin := v1.Group(PathAdmin)
	addAdminRoutes(admin, catalogHandler, orderHandler, paymentHandler, cfg.PaymentSignalSecret)
	return closers, nil
}

// serviceRepositories splits catalog reads from order pricing. Browsing may
// be served from the cache; pricing and order intake always read the store so
// a deactivated service is refused immediately.
func serviceRepositories(store interfaces.IServiceRepository, c repository.ServiceCache, ttl time.Duration) (catalog, ordering interfaces.IServiceRepository) {
	if c == nil {
		return store, store
	}
	return repository.NewCachedServiceRepository(store, c, ttl), store
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Printf("Failed to close %T: %v", c, err)
		}
	}
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
