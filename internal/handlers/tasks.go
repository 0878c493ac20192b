package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/yourorg/miagenda/internal/agenda"
	"github.com/yourorg/miagenda/internal/models"
)

// TaskHandler expone el CRUD de tareas sobre el servicio de agenda.
type TaskHandler struct {
	svc *agenda.Service
}

func NewTaskHandler(svc *agenda.Service) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// taskListOptions traduce los query params del listado. Los parámetros
// presentes cuentan aunque vengan vacíos: completed distinto de "true" filtra
// pendientes, y un limit no numérico se coacciona a 0 (página vacía).
func taskListOptions(c *fiber.Ctx) agenda.TaskListOptions {
	opts := agenda.TaskListOptions{
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy", "orden"),
		SortOrder: c.Query("sortOrder", "asc"),
		Offset:    c.QueryInt("offset", 0),
	}
	if c.Context().QueryArgs().Has("completed") {
		completed := c.Query("completed") == "true"
		opts.Completed = &completed
	}
	if c.Context().QueryArgs().Has("limit") {
		limit, _ := strconv.Atoi(c.Query("limit"))
		opts.Limit = &limit
	}
	return opts
}

// List maneja GET /api/tasks con filtro, búsqueda, orden y paginación.
func (h *TaskHandler) List(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{Success: false, Message: "No autorizado. Por favor, inicie sesión."})
	}

	tasks, total, err := h.svc.ListTasks(userID, taskListOptions(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.ListResponse{Success: true, Data: tasks, Total: total})
}

// Create maneja POST /api/tasks.
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{Success: false, Message: "No autorizado. Por favor, inicie sesión."})
	}

	var req models.TaskCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(models.APIResponse{Success: false, Message: "Solicitud inválida."})
	}

	id, err := h.svc.CreateTask(userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.APIResponse{Success: true, Message: "Tarea añadida exitosamente.", ID: &id})
}

// Update maneja PUT /api/tasks (actualización parcial por campos presentes).
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{Success: false, Message: "No autorizado. Por favor, inicie sesión."})
	}

	var req models.TaskUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(models.APIResponse{Success: false, Message: "Solicitud inválida."})
	}

	if err := h.svc.UpdateTask(userID, req); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.APIResponse{Success: true, Message: "Tarea actualizada exitosamente."})
}

// Delete maneja DELETE /api/tasks?id=N.
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{Success: false, Message: "No autorizado. Por favor, inicie sesión."})
	}

	id := int64(c.QueryInt("id", 0))
	deleted, err := h.svc.DeleteTask(userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !deleted {
		return c.JSON(models.APIResponse{Success: false, Message: "No se encontró la tarea o no tienes permiso para eliminarla."})
	}
	return c.JSON(models.APIResponse{Success: true, Message: "Tarea eliminada exitosamente."})
}

// Stats maneja GET /api/tasks/stats: agregado del mes actual para la vista de
// gráficos (completadas / pendientes / vencidas).
func (h *TaskHandler) Stats(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{Success: false, Message: "No autorizado. Por favor, inicie sesión."})
	}

	stats, err := h.svc.TaskStats(userID, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}
