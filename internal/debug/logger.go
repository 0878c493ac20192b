package debug

import (
	"log"
	"os"
)

var (
	enabled = false
)

func init() {
	enabled = os.Getenv("AGENDA_DEBUG_DASHBOARD") == "true"
	if enabled {
		log.Println("🐛 Debug Dashboard habilitado")
	}
}

// IsEnabled retorna si el dashboard de debugging está habilitado
func IsEnabled() bool {
	return enabled
}

// LogError envía un log de nivel error al dashboard
func LogError(message string, metadata map[string]interface{}) {
	if !enabled {
		return
	}
	SendLog("backend", "error", message, metadata)
}

// UpdateMetrics envía métricas actualizadas al dashboard
func UpdateMetrics(heapMB float64, goroutines, dbOpen, dbInUse int) {
	if !enabled {
		return
	}

	metrics := []Metric{
		{Name: "Heap", Value: heapMB, Unit: "MB", Trend: getTrend(heapMB, 512)},
		{Name: "Goroutines", Value: goroutines, Trend: "stable"},
		{Name: "DB Connections", Value: dbOpen, Trend: "stable"},
		{Name: "DB In Use", Value: dbInUse, Trend: "stable"},
	}

	SendMetrics(metrics)
}

func getTrend(value, threshold float64) string {
	if value > threshold {
		return "up"
	} else if value < threshold*0.5 {
		return "down"
	}
	return "stable"
}
