package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/savoraddis/cafe-backend/config"
	"github.com/savoraddis/cafe-backend/controllers"
	"github.com/savoraddis/cafe-backend/database"
	"github.com/savoraddis/cafe-backend/kafka"
	"github.com/savoraddis/cafe-backend/logger"
	"github.com/savoraddis/cafe-backend/middleware"
	"github.com/savoraddis/cafe-backend/models"
	"github.com/savoraddis/cafe-backend/repository"
	"github.com/savoraddis/cafe-backend/routes"
	"github.com/savoraddis/cafe-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	// Storage backends
	redisClient := database.NewRedisClient(cfg.RedisURL)

	db, err := database.ConnectPostgres(cfg, logger.Log,
		&models.Order{}, &models.OrderItem{}, &models.Admin{})
	if err != nil {
		log.Fatalf("❌ Failed to connect to Postgres: %v", err)
	}

	mongoDB, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer database.CloseMongo()

	// Repositories
	cartRepo := repository.NewRedisCartRepository(redisClient, cfg.CartTTL)
	orderRepo := repository.NewGormOrderRepository(db)
	adminRepo := repository.NewGormAdminRepository(db)
	menuRepo := repository.NewMongoMenuRepository(mongoDB)

	// Event fan-out, best-effort
	producer := kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
	defer producer.Close()

	// Services
	cartSvc := services.NewCartService(cartRepo)
	gateway := services.NewHTTPGatewayClient(cfg.GatewayBaseURL, cfg.GatewaySecret)
	checkoutSvc := services.NewCheckoutService(
		cartSvc, menuRepo, gateway, orderRepo, logger.Log,
		cfg.Currency, cfg.CallbackBaseURL, cfg.ReturnURL,
	)
	verifySvc := services.NewVerifyService(orderRepo, gateway, producer, logger.Log)
	authSvc := services.NewAuthService(adminRepo, cfg.JWTSecret)

	if err := authSvc.Bootstrap(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("❌ Failed to bootstrap admin account: %v", err)
	}

	// HTTP server
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-ID", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(
		router,
		controllers.NewCartController(cartSvc),
		controllers.NewCheckoutController(checkoutSvc),
		controllers.NewMenuController(menuRepo),
		controllers.NewOrderController(orderRepo),
		controllers.NewPaymentController(verifySvc),
		controllers.NewAdminController(authSvc),
		authSvc,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("✅ Cafe backend is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	log.Println("Server shutdown complete.")
}
