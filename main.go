package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"enibar/internal/config"
	"enibar/internal/database"
	"enibar/internal/handlers"
	"enibar/internal/middleware"
	"enibar/internal/models"
	"enibar/internal/repositories"
	"enibar/internal/services"
	"enibar/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.NewConfig()

	// --- Database ---
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Catalog events ---
	// Left as a nil interface when disabled so services skip publishing.
	var events services.EventPublisher
	if cfg.RabbitMQ.Enabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
		})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient

		err = mqClient.ConsumeCatalogEvents("", func(event models.CatalogEvent) error {
			log.Printf("Catalog event %s (id=%d name=%q) at %s", event.RoutingKey(), event.ID, event.Name, event.At.Format(time.RFC3339))
			return nil
		})
		if err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	app, err := newApp(cfg, db, events)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.HTTP.Port)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.HTTP.Port); err != nil {
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

// newApp wires repositories, services and handlers on db and seeds the
// bootstrap admin. events may be nil. It refuses to sign tokens without a
// configured secret.
func newApp(cfg *config.Config, db *gorm.DB, events services.EventPublisher) (*fiber.App, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set: %w", services.ErrMissingJWTSecret)
	}

	// --- Repositories ---
	adminRepo := repositories.NewGORMAdminRepository(db, cfg.Auth.BcryptCost)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	priceRepo := repositories.NewGORMPriceRepository(db)
	panelRepo := repositories.NewGORMPanelRepository(db)

	// --- Services ---
	adminService := services.NewAdminService(adminRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	categoryService := services.NewCategoryService(categoryRepo, events)
	productService := services.NewProductService(productRepo, events)
	priceService := services.NewPriceService(priceRepo, events)
	panelService := services.NewPanelService(panelRepo, events)

	if err := adminService.EnsureBootstrapAdmin(cfg.Bootstrap.AdminLogin, cfg.Bootstrap.AdminPassword); err != nil {
		return nil, fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	// --- Fiber App ---
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New()) // Request logger

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		code := fiber.StatusOK
		if err := ping(db); err != nil {
			log.Printf("Health check failed: %v", err)
			status = "unhealthy"
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": db.Dialector.Name(),
			"events":   events != nil,
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	authRequired := middleware.AuthRequired(adminService)
	handlers.NewAuthHandler(adminService).RegisterRoutes(apiV1, authRequired)

	protectedRoutes := apiV1.Group("", authRequired)
	manageUsers := middleware.RequireRight(adminService, models.RightManageUsers)
	manageProducts := middleware.RequireRight(adminService, models.RightManageProducts)

	handlers.NewAdminHandler(adminService).RegisterRoutes(protectedRoutes, manageUsers)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(protectedRoutes, manageProducts)
	handlers.NewProductHandler(productService).RegisterRoutes(protectedRoutes, manageProducts)
	handlers.NewPriceHandler(priceService).RegisterRoutes(protectedRoutes, manageProducts)
	handlers.NewPanelHandler(panelService).RegisterRoutes(protectedRoutes, manageProducts)

	return app, nil
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
