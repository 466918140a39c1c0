package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/todolist/api/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, todos *handlers.TodoHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	a := app.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	// Everything under /todos requires a bearer token
	t := app.Group("/todos", authMW)
	t.Post("/", todos.Create)
	t.Get("/", todos.List)
	t.Put("/:id", todos.Update)
	t.Delete("/:id", todos.Delete)
}
