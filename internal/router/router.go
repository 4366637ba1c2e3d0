package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/talenta-go-api/internal/config"
	"github.com/noah-isme/talenta-go-api/internal/handler"
	"github.com/noah-isme/talenta-go-api/internal/middleware"
	"github.com/noah-isme/talenta-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	CourseHandler       *handler.CourseHandler
	ScheduleHandler     *handler.ScheduleHandler
	ProfileFieldHandler *handler.ProfileFieldHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		auth.Use("/login", middleware.RateLimit("login", cfg.LoginRateLimit, cfg.LoginRateWin))
		deps.AuthHandler.Register(auth)
	}

	if deps.UserHandler != nil {
		users := api.Group("/users", jwtMiddleware)
		deps.UserHandler.Register(users)
	}

	if deps.CourseHandler != nil {
		courses := api.Group("/courses", jwtMiddleware)
		deps.CourseHandler.Register(courses)
	}

	if deps.ScheduleHandler != nil {
		schedules := api.Group("/schedules", jwtMiddleware)
		deps.ScheduleHandler.Register(schedules)
	}

	if deps.ProfileFieldHandler != nil {
		fields := api.Group("/profile-fields", jwtMiddleware)
		deps.ProfileFieldHandler.Register(fields)
	}
}
