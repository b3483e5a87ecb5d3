package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/CodeX-266/storefront/internal/catalog"
	"github.com/CodeX-266/storefront/internal/clock"
	"github.com/CodeX-266/storefront/internal/events"
	"github.com/CodeX-266/storefront/internal/handler"
	"github.com/CodeX-266/storefront/internal/payment"
	"github.com/CodeX-266/storefront/internal/repository"
	"github.com/CodeX-266/storefront/internal/service"
	"github.com/CodeX-266/storefront/pkg/config"
	"github.com/CodeX-266/storefront/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("order_table", cfg.OrderTableName),
		zap.String("kafka_brokers", cfg.KafkaBrokers),
		zap.String("currency", cfg.Currency))

	dynamoClient, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		log.Fatal("Failed to create DynamoDB client:", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers, logger)
	defer producer.Close()

	orderRepo := repository.NewOrderRepository(dynamoClient, cfg.OrderTableName)
	orderService := service.NewOrderService(orderRepo, producer, clock.NewSystem(), logger)
	gateway := payment.NewGateway(cfg.PaymentBaseURL, cfg.PaymentKeyID, cfg.PaymentKeySecret, logger)

	orderHandler := handler.NewOrderHandler(orderService, logger)
	paymentHandler := handler.NewPaymentHandler(gateway, logger)
	catalogHandler := handler.NewCatalogHandler(catalog.New())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Identity())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", catalogHandler.ListProducts)
		v1.GET("/products/:id", catalogHandler.GetProduct)
		v1.POST("/payment/orders", paymentHandler.CreateOrder)
		v1.POST("/orders", orderHandler.PlaceOrder)
		v1.GET("/orders", orderHandler.ListOrders)
		v1.GET("/orders/:id", orderHandler.GetOrder)
		v1.POST("/orders/:id/cancel", orderHandler.CancelOrder)
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "healthy",
				"service": "storefront",
				"port":    cfg.Port,
			})
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
