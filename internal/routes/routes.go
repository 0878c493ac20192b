package routes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/yourorg/miagenda/internal/agenda"
	"github.com/yourorg/miagenda/internal/debug"
	"github.com/yourorg/miagenda/internal/handlers"
	"github.com/yourorg/miagenda/internal/middleware"
)

func Register(app *fiber.App, db *sql.DB) {
	api := app.Group("/api")

	// Health check (sin rate limiting)
	api.Get("/health", handlers.Health)

	// ============================================================================
	// AUTENTICACIÓN (con rate limiting estricto en login/register)
	// ============================================================================
	api.Post("/register", middleware.AuthRateLimiter(), handlers.Register)
	api.Post("/login", middleware.AuthRateLimiter(), handlers.Login)
	api.Post("/logout", handlers.RequireAuth, handlers.Logout)
	api.Get("/session", handlers.SessionCheck)

	// ============================================================================
	// AGENDA (todas las rutas exigen sesión activa)
	// ============================================================================
	svc := agenda.NewService(db)
	taskHandler := handlers.NewTaskHandler(svc)
	eventHandler := handlers.NewEventHandler(svc)
	reorderHandler := handlers.NewReorderHandler(svc)

	tasks := api.Group("/tasks", handlers.RequireAuth)
	tasks.Get("/", taskHandler.List)
	tasks.Post("/", taskHandler.Create)
	tasks.Put("/", taskHandler.Update)
	tasks.Delete("/", taskHandler.Delete)
	tasks.Get("/stats", taskHandler.Stats)

	events := api.Group("/events", handlers.RequireAuth)
	events.Get("/", eventHandler.List)
	events.Post("/", eventHandler.Create)
	events.Put("/", eventHandler.Update)
	events.Delete("/", eventHandler.Delete)

	api.Post("/reorder", handlers.RequireAuth, reorderHandler.Reorder)

	// ============================================================================
	// DEBUG DASHBOARD WEBSOCKET
	// ============================================================================
	app.Use("/ws/debug", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/debug", websocket.New(func(c *websocket.Conn) {
		debug.HandleWebSocketFiber(c)
	}))
}
