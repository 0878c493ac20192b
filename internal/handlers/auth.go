package handlers

import (
	"database/sql"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yourorg/miagenda/internal/agenda"
	"github.com/yourorg/miagenda/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// SessionCookie es la cookie HttpOnly que transporta el token de sesión.
const SessionCookie = "agenda_session"

// package-level dependencies
var (
	setupOnce sync.Once    // Garantiza inicialización única
	setupMu   sync.RWMutex // Protege acceso a variables globales
	dbConn    *sql.DB
	jwtSecret []byte
	tokenTTL  = 24 * time.Hour
)

// Setup wires shared dependencies for handlers. Call this during app bootstrap.
func Setup(db *sql.DB) {
	setupOnce.Do(func() {
		setupMu.Lock()
		defer setupMu.Unlock()

		dbConn = db
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			if os.Getenv("ENV") == "production" || os.Getenv("ENVIRONMENT") == "production" {
				log.Fatal("❌ CRITICAL: JWT_SECRET must be set in production environment")
			}
			log.Println("⚠️ WARNING: Using default JWT secret (development only)")
			secret = "dev-secret-change-me-0123456789ab"
		}

		if len(secret) < 32 {
			log.Fatalf("❌ CRITICAL: JWT_SECRET must be at least 32 characters long (current: %d)", len(secret))
		}

		jwtSecret = []byte(secret)

		if ttl := os.Getenv("JWT_TTL"); ttl != "" {
			dur, err := time.ParseDuration(ttl)
			if err != nil || dur <= 0 {
				log.Printf("invalid JWT_TTL=%q, using default %s", ttl, tokenTTL)
			} else {
				tokenTTL = dur
			}
		}
	})
}

// getDBConn retorna la conexión de base de datos de forma segura
func getDBConn() *sql.DB {
	setupMu.RLock()
	defer setupMu.RUnlock()
	return dbConn
}

// getJWTSecret retorna el secret JWT de forma segura
func getJWTSecret() []byte {
	setupMu.RLock()
	defer setupMu.RUnlock()
	return jwtSecret
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func issueSessionToken(userID int64, username string) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(tokenTTL)
	claims := sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(getJWTSecret())
	return signed, expires, err
}

func parseSessionToken(tokenStr string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return getJWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

func setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

// RequireAuth resuelve la cookie de sesión y deja el usuario en el contexto de
// la request (c.Locals). Sin sesión válida responde 401 antes de cualquier
// otra validación.
func RequireAuth(c *fiber.Ctx) error {
	tokenStr := c.Cookies(SessionCookie)
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{
			Success: false, Message: "No autorizado. Por favor, inicie sesión.",
		})
	}
	claims, err := parseSessionToken(tokenStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{
			Success: false, Message: "No autorizado. Por favor, inicie sesión.",
		})
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{
			Success: false, Message: "No autorizado. Por favor, inicie sesión.",
		})
	}
	c.Locals("userID", userID)
	c.Locals("username", claims.Username)
	return c.Next()
}

// currentUserID lee el usuario autenticado del contexto de la request.
func currentUserID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals("userID").(int64)
	return id, ok
}

// Register handles POST /api/register.
func Register(c *fiber.Ctx) error {
	db := getDBConn()
	if db == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.APIResponse{Success: false, Message: "Servidor no disponible."})
	}
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(models.APIResponse{Success: false, Message: "Solicitud inválida."})
	}
	req.Username = strings.TrimSpace(req.Username)

	if req.Username == "" || req.Password == "" {
		return c.JSON(models.APIResponse{Success: false, Message: "Nombre de usuario y contraseña son obligatorios."})
	}
	if len(req.Password) < 6 {
		return c.JSON(models.APIResponse{Success: false, Message: "La contraseña debe tener al menos 6 caracteres."})
	}

	var existingID int64
	err := db.QueryRow("SELECT id FROM users WHERE username = ?", req.Username).Scan(&existingID)
	if err == nil {
		return respondServiceError(c, &agenda.Error{Kind: agenda.KindConflict, Message: "El nombre de usuario ya está en uso."})
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Printf("❌ Error verificando usuario: %v", err)
		return c.JSON(models.APIResponse{Success: false, Message: "Error al registrar el usuario: " + err.Error()})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.APIResponse{Success: false, Message: "No se pudo asegurar la contraseña."})
	}

	if _, err := db.Exec("INSERT INTO users (username, password_hash) VALUES (?, ?)", req.Username, string(hash)); err != nil {
		// Carrera entre el SELECT previo y el INSERT: el índice único manda.
		if strings.Contains(err.Error(), "Duplicate entry") {
			return respondServiceError(c, &agenda.Error{Kind: agenda.KindConflict, Message: "El nombre de usuario ya está en uso."})
		}
		log.Printf("❌ Error insertando usuario: %v", err)
		return c.JSON(models.APIResponse{Success: false, Message: "Error al registrar el usuario: " + err.Error()})
	}

	log.Printf("✅ Usuario registrado: %s", req.Username)
	return c.JSON(models.APIResponse{Success: true, Message: "Registro exitoso. Ahora puedes iniciar sesión."})
}

// Login handles POST /api/login.
func Login(c *fiber.Ctx) error {
	db := getDBConn()
	if db == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.APIResponse{Success: false, Message: "Servidor no disponible."})
	}
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(models.APIResponse{Success: false, Message: "Solicitud inválida."})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(models.APIResponse{Success: false, Message: "Nombre de usuario y contraseña son obligatorios."})
	}

	var (
		id           int64
		username     string
		passwordHash string
	)
	err := db.QueryRow("SELECT id, username, password_hash FROM users WHERE username = ?", req.Username).Scan(&id, &username, &passwordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Mensaje uniforme: no revelar si falló el usuario o la contraseña.
			return c.JSON(models.APIResponse{Success: false, Message: "Credenciales inválidas."})
		}
		log.Printf("❌ Error consultando usuario: %v", err)
		return c.JSON(models.APIResponse{Success: false, Message: "Error al iniciar sesión: " + err.Error()})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return c.JSON(models.APIResponse{Success: false, Message: "Credenciales inválidas."})
	}

	token, expires, err := issueSessionToken(id, username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.APIResponse{Success: false, Message: "No se pudo iniciar la sesión."})
	}
	setSessionCookie(c, token, expires)
	c.Set("Cache-Control", "no-store")

	log.Printf("✅ Inicio de sesión: %s (id=%d)", username, id)
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Inicio de sesión exitoso.",
		"username": username,
	})
}

// Logout handles POST /api/logout.
func Logout(c *fiber.Ctx) error {
	clearSessionCookie(c)
	return c.JSON(models.APIResponse{Success: true, Message: "Sesión cerrada exitosamente."})
}

// SessionCheck handles GET /api/session. No exige sesión activa: informa si
// hay una y para quién.
func SessionCheck(c *fiber.Ctx) error {
	resp := models.SessionResponse{IsLoggedIn: false, Username: nil}
	if tokenStr := c.Cookies(SessionCookie); tokenStr != "" {
		if claims, err := parseSessionToken(tokenStr); err == nil {
			resp.IsLoggedIn = true
			resp.Username = &claims.Username
		}
	}
	return c.JSON(resp)
}
