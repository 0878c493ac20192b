package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/yourorg/miagenda/internal/agenda"
	"github.com/yourorg/miagenda/internal/debug"
	"github.com/yourorg/miagenda/internal/models"
)

// respondServiceError traduce un error tipado del servicio al sobre JSON de
// transporte. Validación, conflicto, no-encontrado y fallos de almacenamiento
// responden 200 con success:false (el estado HTTP se reserva para auth y
// método); solo Unauthorized mapea a 401.
func respondServiceError(c *fiber.Ctx, err error) error {
	var ae *agenda.Error
	if errors.As(err, &ae) {
		if ae.Kind == agenda.KindUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{Success: false, Message: ae.Message})
		}
		if ae.Kind == agenda.KindStorage {
			log.Printf("❌ %v", ae)
			debug.LogError(ae.Message, map[string]interface{}{
				"method": c.Method(),
				"path":   c.Path(),
				"error":  ae.Error(),
			})
		}
		return c.JSON(models.APIResponse{Success: false, Message: ae.Error()})
	}
	log.Printf("❌ Error inesperado: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(models.APIResponse{Success: false, Message: "Error interno del servidor."})
}

// FiberErrorHandler conserva el sobre JSON también para los errores que genera
// el propio framework (404, 405, body demasiado grande, etc.).
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Error interno del servidor."

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code == fiber.StatusMethodNotAllowed {
		message = "Método no permitido."
	}
	return c.Status(code).JSON(models.APIResponse{Success: false, Message: message})
}
