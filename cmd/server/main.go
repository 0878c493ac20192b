package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	appdb "github.com/yourorg/miagenda/internal/db"
	"github.com/yourorg/miagenda/internal/debug"
	"github.com/yourorg/miagenda/internal/handlers"
	"github.com/yourorg/miagenda/internal/middleware"
	"github.com/yourorg/miagenda/internal/routes"
)

func main() {
	_ = godotenv.Load()

	app := fiber.New(fiber.Config{
		AppName:      "Mi Agenda",
		ErrorHandler: handlers.FiberErrorHandler,
	})
	app.Use(logger.New())
	app.Use(middleware.GlobalRateLimiter())
	if debug.IsEnabled() {
		app.Use(middleware.DashboardLogger())
	}

	// ============================================================================
	// DB CONNECTION
	// ============================================================================
	db, err := appdb.Connect()
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(15 * time.Minute)

	for {
		if err := db.Ping(); err != nil {
			log.Printf("db connect error: %v (retrying in 5s)", err)
			time.Sleep(5 * time.Second)
			continue
		}
		if err := appdb.EnsureSchema(db); err != nil {
			log.Printf("ensure schema error: %v (retrying in 5s)", err)
			time.Sleep(5 * time.Second)
			continue
		}
		break
	}

	handlers.Setup(db)
	routes.Register(app, db)
	log.Printf("✅ Database ready and routes registered")

	// Frontend estático (vista de agenda del navegador)
	app.Static("/", "./web")

	if debug.IsEnabled() {
		go middleware.PeriodicMetricsCollector(db, 15*time.Second)
	}

	// ============================================================================
	// GRACEFUL SHUTDOWN
	// ============================================================================
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\n🛑 Señal de terminación recibida, cerrando servidor...")

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️  Error cerrando servidor: %v", err)
		}
		if err := db.Close(); err != nil {
			log.Printf("⚠️  Error cerrando base de datos: %v", err)
		}

		log.Println("✅ Servidor cerrado correctamente")
		os.Exit(0)
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Servidor escuchando en :%s", port)
	log.Println("📍 Endpoints disponibles:")
	log.Println("   POST /api/register          - Registro de usuario")
	log.Println("   POST /api/login             - Inicio de sesión")
	log.Println("   POST /api/logout            - Cierre de sesión")
	log.Println("   GET  /api/session           - Verificación de sesión")
	log.Println("   GET/POST/PUT/DELETE /api/tasks   - Tareas")
	log.Println("   GET  /api/tasks/stats       - Estadísticas de tareas")
	log.Println("   GET/POST/PUT/DELETE /api/events  - Eventos")
	log.Println("   POST /api/reorder           - Reordenamiento drag-and-drop")
	log.Println("💡 Presiona Ctrl+C para detener")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
