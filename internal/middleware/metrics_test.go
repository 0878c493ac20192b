package middleware

import (
	"os"
	"testing"
)

func TestCollectApiStatusWithoutDB(t *testing.T) {
	os.Setenv("APP_VERSION", "test-1.0")
	defer os.Unsetenv("APP_VERSION")

	status := collectApiStatus(nil)

	if status.Backend.Status != "online" {
		t.Errorf("Expected backend online, got %s", status.Backend.Status)
	}
	if status.Backend.Version != "test-1.0" {
		t.Errorf("Expected version test-1.0, got %s", status.Backend.Version)
	}
	// Sin pool de conexiones la base se reporta caída, sin ping ni panic
	if status.Database.Status != "offline" {
		t.Errorf("Expected database offline, got %s", status.Database.Status)
	}
	if status.Database.Connections != 0 || status.Database.MaxConnections != 0 {
		t.Errorf("Expected zeroed connection counts, got %d/%d",
			status.Database.Connections, status.Database.MaxConnections)
	}
}
