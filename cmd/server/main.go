package main

import (
	"log"
	"net/http"
	"time"

	"github.com/commonmail820/techwizards-backend/internal/config"
	"github.com/commonmail820/techwizards-backend/internal/database"
	"github.com/commonmail820/techwizards-backend/internal/events"
	"github.com/commonmail820/techwizards-backend/internal/handlers"
	"github.com/commonmail820/techwizards-backend/internal/middleware"
	"github.com/commonmail820/techwizards-backend/internal/migrations"
	"github.com/commonmail820/techwizards-backend/internal/redis"
	"github.com/commonmail820/techwizards-backend/internal/repository"
	"github.com/commonmail820/techwizards-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize Kafka publisher (optional)
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
		if err != nil {
			log.Fatal("Failed to connect to Kafka:", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	menuItemRepo := repository.NewMenuItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute, redisClient)
	authService := services.NewAuthService(userRepo, tokenService)
	menuService := services.NewMenuService(menuItemRepo, categoryRepo, redisClient)
	orderService := services.NewOrderService(orderRepo, menuItemRepo, publisher)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Setup routes
	router := gin.Default()
	router.Use(middleware.Metrics())

	// Liveness probes
	health := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "healthy"}) }
	router.GET("/health", health)
	router.GET("/healthz", health)
	router.GET("/ping", health)
	router.GET("/metrics", middleware.MetricsHandler())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(authService), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(authService), authHandler.Me)
		}

		api.GET("/users", middleware.AuthRequired(authService), authHandler.ListUsers)

		menu := api.Group("/menu")
		{
			menu.GET("/items", menuHandler.ListItems)
			menu.GET("/items/:id", menuHandler.GetItem)
			menu.POST("/items", middleware.AuthRequired(authService), menuHandler.CreateItem)
			menu.PUT("/items/:id", middleware.AuthRequired(authService), menuHandler.UpdateItem)
			menu.DELETE("/items/:id", middleware.AuthRequired(authService), menuHandler.DeleteItem)

			menu.GET("/categories", menuHandler.ListCategories)
			menu.POST("/categories", middleware.AuthRequired(authService), menuHandler.CreateCategory)
			menu.PUT("/categories/:id", middleware.AuthRequired(authService), menuHandler.UpdateCategory)
			menu.DELETE("/categories/:id", middleware.AuthRequired(authService), menuHandler.DeleteCategory)
		}

		orders := api.Group("/orders", middleware.AuthRequired(authService))
		{
			orders.GET("", orderHandler.List)
			orders.POST("", orderHandler.Create)
			orders.GET("/:id", orderHandler.Get)
			orders.PUT("/:id", orderHandler.Update)
			orders.DELETE("/:id", orderHandler.Delete)
			orders.PUT("/:id/status", orderHandler.SetStatus)
			orders.PUT("/:id/payment", orderHandler.SetPaymentStatus)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
