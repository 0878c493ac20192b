package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/yourorg/miagenda/internal/agenda"
	"github.com/yourorg/miagenda/internal/models"
)

func respondWith(t *testing.T, err error) (*http.Response, models.APIResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondServiceError(c, err)
	})
	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if testErr != nil {
		t.Fatalf("app.Test: %v", testErr)
	}
	var body models.APIResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil {
		t.Fatalf("decode: %v", decodeErr)
	}
	return resp, body
}

func TestRespondServiceErrorValidation(t *testing.T) {
	resp, body := respondWith(t, &agenda.Error{Kind: agenda.KindValidation, Message: "No hay datos para actualizar."})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	if body.Success {
		t.Error("Expected success=false")
	}
	if body.Message != "No hay datos para actualizar." {
		t.Errorf("Unexpected message: %s", body.Message)
	}
}

func TestRespondServiceErrorConflict(t *testing.T) {
	// El conflicto de nombre de usuario viaja por la taxonomía tipada y
	// conserva el sobre 200 + success:false
	resp, body := respondWith(t, &agenda.Error{Kind: agenda.KindConflict, Message: "El nombre de usuario ya está en uso."})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	if body.Success {
		t.Error("Expected success=false")
	}
	if body.Message != "El nombre de usuario ya está en uso." {
		t.Errorf("Unexpected message: %s", body.Message)
	}
}

func TestRespondServiceErrorStorage(t *testing.T) {
	inner := errors.New("connection refused")
	resp, body := respondWith(t, &agenda.Error{Kind: agenda.KindStorage, Message: "Error al obtener tareas", Err: inner})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	if body.Success {
		t.Error("Expected success=false")
	}
	if !strings.Contains(body.Message, "Error al obtener tareas") || !strings.Contains(body.Message, "connection refused") {
		t.Errorf("Unexpected message: %s", body.Message)
	}
}

func TestRespondServiceErrorUnauthorized(t *testing.T) {
	resp, body := respondWith(t, &agenda.Error{Kind: agenda.KindUnauthorized, Message: "No autorizado. Por favor, inicie sesión."})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", resp.StatusCode)
	}
	if body.Success {
		t.Error("Expected success=false")
	}
}

func TestRespondServiceErrorUnknown(t *testing.T) {
	resp, body := respondWith(t, errors.New("boom"))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", resp.StatusCode)
	}
	if body.Message != "Error interno del servidor." {
		t.Errorf("Unexpected message: %s", body.Message)
	}
}
