package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/yourorg/miagenda/internal/models"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	Setup(nil)

	token, expires, err := issueSessionToken(42, "alice")
	if err != nil {
		t.Fatalf("issueSessionToken: %v", err)
	}
	if token == "" {
		t.Fatal("Expected non-empty token")
	}
	if !expires.After(time.Now()) {
		t.Error("Expected expiry in the future")
	}

	claims, err := parseSessionToken(token)
	if err != nil {
		t.Fatalf("parseSessionToken: %v", err)
	}
	if claims.Subject != "42" {
		t.Errorf("Expected subject 42, got %s", claims.Subject)
	}
	if claims.Username != "alice" {
		t.Errorf("Expected username alice, got %s", claims.Username)
	}
	if claims.ID == "" {
		t.Error("Expected non-empty token id (jti)")
	}
}

func TestParseSessionTokenInvalid(t *testing.T) {
	Setup(nil)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := parseSessionToken(token); err == nil {
			t.Errorf("parseSessionToken(%q): expected error", token)
		}
	}
}

func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()
	Setup(nil)

	app := fiber.New(fiber.Config{ErrorHandler: FiberErrorHandler})
	app.Get("/api/session", SessionCheck)
	app.Get("/api/whoami", RequireAuth, func(c *fiber.Ctx) error {
		userID, _ := currentUserID(c)
		return c.JSON(fiber.Map{"userID": userID, "username": c.Locals("username")})
	})
	return app
}

func TestRequireAuthWithoutCookie(t *testing.T) {
	app := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", resp.StatusCode)
	}

	var body models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Error("Expected success=false")
	}
	if body.Message != "No autorizado. Por favor, inicie sesión." {
		t.Errorf("Unexpected message: %s", body.Message)
	}
}

func TestRequireAuthWithBadCookie(t *testing.T) {
	app := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-token"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", resp.StatusCode)
	}
}

func TestRequireAuthWithValidCookie(t *testing.T) {
	app := newAuthTestApp(t)

	token, _, err := issueSessionToken(7, "bob")
	if err != nil {
		t.Fatalf("issueSessionToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected 200, got %d (%s)", resp.StatusCode, body)
	}

	var body struct {
		UserID   int64  `json:"userID"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.UserID != 7 {
		t.Errorf("Expected userID 7, got %d", body.UserID)
	}
	if body.Username != "bob" {
		t.Errorf("Expected username bob, got %s", body.Username)
	}
}

func TestSessionCheckAnonymous(t *testing.T) {
	app := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body models.SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.IsLoggedIn {
		t.Error("Expected isLoggedIn=false without cookie")
	}
	if body.Username != nil {
		t.Errorf("Expected nil username, got %v", *body.Username)
	}
}

func TestSessionCheckWithCookie(t *testing.T) {
	app := newAuthTestApp(t)

	token, _, err := issueSessionToken(3, "carla")
	if err != nil {
		t.Fatalf("issueSessionToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	var body models.SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.IsLoggedIn {
		t.Error("Expected isLoggedIn=true")
	}
	if body.Username == nil || *body.Username != "carla" {
		t.Errorf("Expected username carla, got %v", body.Username)
	}
}

func TestMethodNotAllowedKeepsEnvelope(t *testing.T) {
	app := newAuthTestApp(t)

	// /api/session solo acepta GET
	req := httptest.NewRequest(http.MethodDelete, "/api/session", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("Expected 405, got %d", resp.StatusCode)
	}

	var body models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Error("Expected success=false")
	}
	if body.Message != "Método no permitido." {
		t.Errorf("Unexpected message: %s", body.Message)
	}
}
