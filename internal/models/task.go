package models

import "time"

// Task representa una tarea de la agenda de un usuario.
type Task struct {
	ID               int64      `json:"id" db:"id"`
	UserID           int64      `json:"-" db:"user_id"`
	Titulo           string     `json:"titulo" db:"titulo"`
	Descripcion      *string    `json:"descripcion" db:"descripcion"`
	FechaVencimiento *time.Time `json:"fecha_vencimiento" db:"fecha_vencimiento"`
	Completada       bool       `json:"completada" db:"completada"`
	Orden            int        `json:"orden" db:"orden"`
}

// TaskCreateRequest representa la solicitud para crear una tarea.
type TaskCreateRequest struct {
	Titulo           string  `json:"titulo"`
	Descripcion      *string `json:"descripcion"`
	FechaVencimiento *string `json:"fecha_vencimiento"`
}

// TaskUpdateRequest representa una actualización parcial de una tarea.
// Los campos ausentes en el JSON quedan en nil y no se modifican.
type TaskUpdateRequest struct {
	ID               int64   `json:"id"`
	Titulo           *string `json:"titulo"`
	Descripcion      *string `json:"descripcion"`
	FechaVencimiento *string `json:"fecha_vencimiento"`
	Completada       *bool   `json:"completada"`
}

// TaskStats agrega el estado de las tareas del mes actual para la vista de gráficos.
type TaskStats struct {
	Total       int `json:"total"`
	Completadas int `json:"completadas"`
	Pendientes  int `json:"pendientes"`
	Vencidas    int `json:"vencidas"`
}
