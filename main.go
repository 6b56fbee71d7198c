package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sneakershop/internal/config"
	"sneakershop/internal/handlers"
	"sneakershop/internal/middleware"
	"sneakershop/internal/models"
	"sneakershop/internal/repositories"
	"sneakershop/internal/services"
	"sneakershop/internal/session"
	"sneakershop/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.ShippingInfo{}, &models.Sneaker{}, &models.Cart{}, &models.Order{})
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ ---
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
	}
	defer mqClient.Close()

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	shippingRepo := repositories.NewGORMShippingInfoRepository(db)
	sneakerRepo := repositories.NewGORMSneakerRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Services ---
	tokenIssuer := services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)
	authService := services.NewAuthService(userRepo, shippingRepo, tokenIssuer, mqClient)
	sneakerService := services.NewSneakerService(sneakerRepo)
	cartService := services.NewCartService(cartRepo, sneakerRepo)
	orderService := services.NewOrderService(orderRepo, sneakerRepo, mqClient)

	// --- Session carrier and middleware ---
	carrier := session.NewCarrier(cfg.CookieName)
	authRequired := middleware.AuthRequired(authService, carrier)
	adminOnly := middleware.RestrictTo(models.RoleAdmin)
	staffOnly := middleware.RestrictTo(models.RoleAdmin, models.RoleCounseler)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, carrier)
	sneakerHandler := handlers.NewSneakerHandler(sneakerService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	// Static assets (product images, the rendered storefront)
	app.Static("/", cfg.StaticDir)

	api := app.Group("/api")
	authHandler.RegisterRoutes(api, authRequired)
	sneakerHandler.RegisterRoutes(api, authRequired, adminOnly)
	cartHandler.RegisterRoutes(api, authRequired)
	orderHandler.RegisterRoutes(api, authRequired, staffOnly)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer ---
	go func() {
		log.Println("Starting RabbitMQ consumer for order events...")
		handler := func(msg amqp.Delivery) error {
			log.Printf("Received order event (tag: %d): %s", msg.DeliveryTag, string(msg.Body))
			// Fulfillment hooks (stock adjustment, confirmation mail) go here.
			return nil
		}
		if consumerErr := mqClient.Consume(rabbitmq.OrderQueue, handler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}()

	// --- Start HTTP server with graceful shutdown ---
	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
