package middleware

import (
	"context"
	"database/sql"
	"os"
	"runtime"
	"time"

	"github.com/yourorg/miagenda/internal/debug"
)

// PeriodicMetricsCollector envía métricas del proceso y del pool de conexiones
// al dashboard de debugging a intervalos fijos. Pensado para correr en su
// propia goroutine desde el bootstrap.
func PeriodicMetricsCollector(db *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if !debug.IsEnabled() {
			continue
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		open := 0
		inUse := 0
		if db != nil {
			stats := db.Stats()
			open = stats.OpenConnections
			inUse = stats.InUse
		}

		debug.UpdateMetrics(float64(m.Alloc)/1024/1024, runtime.NumGoroutine(), open, inUse)
		debug.SendApiStatus(collectApiStatus(db))
	}
}

// collectApiStatus arma el estado de backend y base de datos que consume el
// panel de estado del dashboard.
func collectApiStatus(db *sql.DB) debug.ApiStatus {
	var status debug.ApiStatus
	status.Backend.Status = "online"
	status.Backend.Version = os.Getenv("APP_VERSION")
	status.Database.Status = "offline"

	if db != nil {
		stats := db.Stats()
		status.Database.Connections = stats.InUse
		status.Database.MaxConnections = stats.MaxOpenConnections

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		start := time.Now()
		if err := db.PingContext(ctx); err == nil {
			status.Database.Status = "online"
			status.Backend.ResponseTime = float64(time.Since(start).Microseconds()) / 1000
		}
	}
	return status
}
