package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/haroonchishty/sca-backend/internal/api/http/handlers"
	"github.com/haroonchishty/sca-backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Cases    *handlers.CasesHandler
	Users    *handlers.UsersHandler
	Uploads  *handlers.UploadsHandler
	Webhooks *handlers.WebhooksHandler
	Auth     *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	cases := app.Group("/cases", cfg.Auth.RequireAuth)
	cases.Post("/", cfg.Cases.Create)
	cases.Get("/", cfg.Cases.List)
	cases.Get("/:caseId", cfg.Cases.GetByID)
	cases.Put("/:caseId", cfg.Cases.Update)

	users := app.Group("/users")
	users.Post("/", cfg.Auth.RequireAuth, cfg.Users.Create)
	users.Put("/:userId", cfg.Auth.RequireUserMatch, cfg.Users.Update)
	users.Get("/:userId/expiry", cfg.Auth.RequireUserMatch, cfg.Users.Expiry)
	users.Post("/:userId/cases/:caseId/complete", cfg.Auth.RequireUserMatch, cfg.Users.CompleteCase)
	users.Delete("/:userId/subscription", cfg.Auth.RequireUserMatch, cfg.Users.CancelSubscription)

	app.Post("/uploads", cfg.Auth.RequireAuth, cfg.Uploads.Create)

	app.Post("/webhooks/stripe", cfg.Webhooks.HandleStripe)
}
