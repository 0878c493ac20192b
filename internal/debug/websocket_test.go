package debug

import (
	"sync"
	"testing"

	"github.com/gofiber/websocket/v2"
)

func TestClientCountEmpty(t *testing.T) {
	h := &WebSocketHub{clients: make(map[*websocket.Conn]bool)}
	if n := h.clientCount(); n != 0 {
		t.Errorf("Expected 0 clients, got %d", n)
	}
}

func TestClientCountConcurrent(t *testing.T) {
	h := &WebSocketHub{clients: make(map[*websocket.Conn]bool)}

	var wg sync.WaitGroup

	// Escritura bajo lock, como hace run()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			h.mu.Lock()
			h.clients[nil] = true
			delete(h.clients, nil)
			h.mu.Unlock()
		}
	}()

	// Lecturas concurrentes del conteo
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				h.clientCount()
			}
		}()
	}

	wg.Wait()
}

func TestSendHelpersWithoutClients(t *testing.T) {
	// Sin dashboards conectados los envíos retornan sin bloquear
	SendLog("backend", "info", "mensaje", nil)
	SendMetrics([]Metric{{Name: "Heap", Value: 1.0, Unit: "MB"}})
	SendApiStatus(ApiStatus{})
}
