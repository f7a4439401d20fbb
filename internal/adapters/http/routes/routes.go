package routes

import (
	"luna-empenos/internal/adapters/http/handlers"
	"luna-empenos/internal/adapters/http/middleware"
	"luna-empenos/internal/adapters/persistence/repositories"
	"luna-empenos/internal/config"
	"luna-empenos/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	pawnRepo := repositories.NewPawnRepository(db)
	movementRepo := repositories.NewMovementRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	clientService := services.NewClientService(clientRepo)
	pawnService := services.NewPawnService(db)
	movementService := services.NewMovementService(movementRepo, pawnRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(clientService, pawnService)
	pawnHandler := handlers.NewPawnHandler(pawnService, movementService)
	movementHandler := handlers.NewMovementHandler(movementService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, stricter rate limit)
	auth := apiV1.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", middleware.AuthRateLimiter(), authHandler.Refresh)
	auth.Post("/logout", middleware.AuthMiddleware(cfg), authHandler.Logout)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	auth.Post("/users", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), authHandler.CreateUser)
	auth.Get("/users", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), authHandler.ListUsers)

	// Everything below requires authentication
	protected := apiV1.Group("", middleware.AuthMiddleware(cfg))

	// Client routes
	clients := protected.Group("/clients")
	clients.Get("/search", clientHandler.Search)
	clients.Get("/:id", clientHandler.Get)

	// Pawn lifecycle routes
	pawns := protected.Group("/pawns")
	pawns.Post("/", pawnHandler.Intake)
	pawns.Get("/", pawnHandler.List)
	pawns.Get("/:id", pawnHandler.Get)
	pawns.Post("/:id/renew", pawnHandler.Renew)
	pawns.Post("/:id/reappraise", pawnHandler.Reappraise)
	pawns.Post("/:id/redeem", pawnHandler.Redeem)
	pawns.Post("/:id/auction", pawnHandler.SendToAuction)
	pawns.Post("/:id/sell", pawnHandler.Sell)
	pawns.Get("/:id/movements", pawnHandler.Movements)

	// Cash movement routes
	protected.Post("/movements", movementHandler.Record)

	// Dashboard routes
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/recent", dashboardHandler.Recent)
}
