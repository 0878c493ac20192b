package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yourorg/miagenda/internal/agenda"
	"github.com/yourorg/miagenda/internal/models"
)

// ReorderHandler persiste el nuevo orden de una lista tras un drag-and-drop.
type ReorderHandler struct {
	svc *agenda.Service
}

func NewReorderHandler(svc *agenda.Service) *ReorderHandler {
	return &ReorderHandler{svc: svc}
}

// Reorder maneja POST /api/reorder: {items: [{id, order}...], type: "tasks"|"events"}.
// El lote completo se aplica en una transacción; cualquier ítem inválido deja
// todos los órdenes como estaban.
func (h *ReorderHandler) Reorder(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{Success: false, Message: "No autorizado. Por favor, inicie sesión."})
	}

	var req models.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(models.APIResponse{Success: false, Message: "Datos inválidos para reordenar."})
	}

	message, err := h.svc.Reorder(userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.APIResponse{Success: true, Message: message})
}
