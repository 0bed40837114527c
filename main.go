package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/kafka"
	"storefront-service/logger"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/routes"
	servicepkg "storefront-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := LoadConfig()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync() //nolint:errcheck

	if err := database.Connect(); err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	if err := database.DB.AutoMigrate(&models.Product{}, &models.Sale{}, &models.SaleItem{}); err != nil {
		logger.Log.Fatal("Migration failed", zap.Error(err))
	}

	redisClient := database.NewRedisClient(cfg.RedisURL)

	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
	} else {
		logger.Log.Warn("Kafka brokers not configured, sale events disabled")
	}

	// DI chain
	productRepo := repository.NewGormProductRepository(database.DB)
	saleRepo := repository.NewGormSaleRepository(database.DB)
	txManager := repository.NewGormTxManager(database.DB)
	cartRepo := repository.NewCartRepository(redisClient, cfg.CartTTL)

	catalogService := servicepkg.NewCatalogService(productRepo, logger.Log)
	cartService := servicepkg.NewCartService(cartRepo, productRepo, logger.Log)

	var publisher servicepkg.EventPublisher
	if producer != nil {
		publisher = producer
	}
	checkoutService := servicepkg.NewCheckoutService(cartRepo, saleRepo, txManager, publisher, logger.Log)

	productController := controllers.NewProductController(catalogService)
	cartController := controllers.NewCartController(cartService)
	checkoutController := controllers.NewCheckoutController(checkoutService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", controllers.StockWarningHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.SessionMiddleware(cfg.SessionTTL))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "storefront-service"})
	})

	routes.RegisterRoutes(r, productController, cartController, checkoutController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Log.Info("Storefront service started", zap.String("port", cfg.Port))
	<-quit
	logger.Log.Info("Shutting down storefront service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Log.Info("Server exited cleanly")
}
