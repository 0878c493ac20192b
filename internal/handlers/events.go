package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/yourorg/miagenda/internal/agenda"
	"github.com/yourorg/miagenda/internal/models"
)

// EventHandler expone el CRUD de eventos sobre el servicio de agenda.
type EventHandler struct {
	svc *agenda.Service
}

func NewEventHandler(svc *agenda.Service) *EventHandler {
	return &EventHandler{svc: svc}
}

// eventListOptions traduce los query params del listado. Un limit presente
// pero no numérico se coacciona a 0, igual que en tareas.
func eventListOptions(c *fiber.Ctx) agenda.EventListOptions {
	opts := agenda.EventListOptions{
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy", "orden"),
		SortOrder: c.Query("sortOrder", "asc"),
		Offset:    c.QueryInt("offset", 0),
	}
	if c.Context().QueryArgs().Has("limit") {
		limit, _ := strconv.Atoi(c.Query("limit"))
		opts.Limit = &limit
	}
	return opts
}

// List maneja GET /api/events.
func (h *EventHandler) List(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{Success: false, Message: "No autorizado. Por favor, inicie sesión."})
	}

	events, total, err := h.svc.ListEvents(userID, eventListOptions(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.ListResponse{Success: true, Data: events, Total: total})
}

// Create maneja POST /api/events.
func (h *EventHandler) Create(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{Success: false, Message: "No autorizado. Por favor, inicie sesión."})
	}

	var req models.EventCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(models.APIResponse{Success: false, Message: "Solicitud inválida."})
	}

	id, err := h.svc.CreateEvent(userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.APIResponse{Success: true, Message: "Evento añadido exitosamente.", ID: &id})
}

// Update maneja PUT /api/events (actualización parcial; revalida el rango de
// fechas contra el valor persistido cuando solo llega una de las dos).
func (h *EventHandler) Update(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{Success: false, Message: "No autorizado. Por favor, inicie sesión."})
	}

	var req models.EventUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(models.APIResponse{Success: false, Message: "Solicitud inválida."})
	}

	if err := h.svc.UpdateEvent(userID, req); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.APIResponse{Success: true, Message: "Evento actualizado exitosamente."})
}

// Delete maneja DELETE /api/events?id=N.
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{Success: false, Message: "No autorizado. Por favor, inicie sesión."})
	}

	id := int64(c.QueryInt("id", 0))
	deleted, err := h.svc.DeleteEvent(userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !deleted {
		return c.JSON(models.APIResponse{Success: false, Message: "No se encontró el evento o no tienes permiso para eliminarlo."})
	}
	return c.JSON(models.APIResponse{Success: true, Message: "Evento eliminado exitosamente."})
}
