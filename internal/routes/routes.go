package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/vamsidadi/playstore-backend/internal/config"
	"github.com/vamsidadi/playstore-backend/internal/handlers"
	"github.com/vamsidadi/playstore-backend/internal/middleware"
	"github.com/vamsidadi/playstore-backend/internal/models"
)

// Setup wires every route with its declared auth requirements. The
// authorization matrix lives here and only here.
func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	appHandler *handlers.ApplicationHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)
	app.Get("/check-username", authHandler.CheckUsername)

	// Auth — public, stricter rate limit: 10 req/min per IP
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", middleware.Protected(cfg), authHandler.Logout)

	// Admin user CRUD — admin role only
	admin := app.Group("/admin", middleware.Protected(cfg), middleware.RequireRoles(models.RoleAdmin))
	admin.Get("/users", userHandler.List)
	admin.Post("/users", userHandler.Create)
	admin.Put("/users/:id", userHandler.Update)
	admin.Delete("/users/:id", userHandler.Delete)

	// Applications — reads are public, mutations need any authenticated
	// role; mutation is deliberately not owner-restricted
	api := app.Group("/api")
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	protected := middleware.Protected(cfg)
	anyRole := middleware.RequireRoles(models.RoleUser, models.RoleAdmin)

	api.Get("/applications", appHandler.List)
	api.Get("/applications/:id", appHandler.Get)
	api.Post("/applications", protected, anyRole, appHandler.Create)
	api.Put("/applications/:id", protected, anyRole, appHandler.Update)
	api.Delete("/applications/:id", protected, anyRole, appHandler.Delete)

	// Reviews — any valid token may post; deletion also checks authorship
	api.Post("/applications/:id/comments", protected, appHandler.AddReview)
	api.Get("/applications/:id/comments", appHandler.ListReviews)
	api.Delete("/applications/:appId/comments/:commentUUID", protected, appHandler.DeleteReview)
}
