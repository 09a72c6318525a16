package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"store-rating-service/internal/api"
	"store-rating-service/internal/config"
	"store-rating-service/internal/events"
	"store-rating-service/internal/model"
	"store-rating-service/internal/repository"
	"store-rating-service/internal/service"
	"store-rating-service/internal/tracing"
	_ "store-rating-service/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	api.SetupGlobalHandler("store-rating-service")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracer, err := tracing.InitTracerProvider("store-rating-service")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg)
		return
	}

	db := connectDB(cfg)
	defer db.Close()

	eventPublisher, err := events.NewNatsPublisher(cfg.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	userRepo := repository.NewPostgresUserRepository(db)
	storeRepo := repository.NewPostgresStoreRepository(db)
	ratingRepo := repository.NewPostgresRatingRepository(db)
	tokenRepo := repository.NewPostgresTokenRepository(db)
	auditRepo := repository.NewPostgresAuditRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo, eventPublisher)
	storeService := service.NewStoreService(storeRepo, ratingRepo, eventPublisher)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, eventPublisher)

	_, err = events.NewAuditSubscriber(cfg.NatsURL, auditRepo)
	if err != nil {
		log.Printf("WARNING: Failed to start audit subscriber: %v", err)
		// Continue running even if subscriber fails, NATS may not be ready
	}

	if err := authService.EnsureAdmin(context.Background(), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to ensure bootstrap admin: %v", err)
	}

	authHandler := api.NewAuthHandler(authService)
	storeHandler := api.NewStoreHandler(storeService)
	adminHandler := api.NewAdminHandler(adminService)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "API is healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	apiGroup := app.Group("/api")

	authRoutes := apiGroup.Group("/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Put("/password", api.AuthMiddleware(), authHandler.UpdatePassword)
	authRoutes.Get("/me", api.AuthMiddleware(), authHandler.GetMe)

	storeRoutes := apiGroup.Group("/stores")
	storeRoutes.Use(api.AuthMiddleware())
	storeRoutes.Get("/", storeHandler.ListStores)
	storeRoutes.Get("/owner/dashboard", api.RequireRoles(model.RoleStoreOwner), storeHandler.OwnerDashboard)
	storeRoutes.Post("/:id/rate", api.RequireRoles(model.RoleNormalUser), storeHandler.RateStore)

	adminRoutes := apiGroup.Group("/admin")
	adminRoutes.Use(api.AuthMiddleware(), api.RequireRoles(model.RoleSystemAdmin))
	adminRoutes.Post("/users", adminHandler.CreateUser)
	adminRoutes.Post("/stores", adminHandler.CreateStore)
	adminRoutes.Get("/users", adminHandler.ListUsers)
	adminRoutes.Get("/stores", adminHandler.ListStores)
	adminRoutes.Get("/stats", adminHandler.GetDashboardStats)

	log.Printf("Listening store-rating-service on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

func connectDB(cfg config.App) *sqlx.DB {
	db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations(cfg config.App) {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
