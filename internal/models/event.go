package models

import "time"

// Event representa un evento del calendario de un usuario.
// Invariante: fecha_fin siempre posterior a fecha_inicio.
type Event struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"-" db:"user_id"`
	Titulo      string    `json:"titulo" db:"titulo"`
	Descripcion *string   `json:"descripcion" db:"descripcion"`
	FechaInicio time.Time `json:"fecha_inicio" db:"fecha_inicio"`
	FechaFin    time.Time `json:"fecha_fin" db:"fecha_fin"`
	Orden       int       `json:"orden" db:"orden"`
}

// EventCreateRequest representa la solicitud para crear un evento.
type EventCreateRequest struct {
	Titulo      string  `json:"titulo"`
	Descripcion *string `json:"descripcion"`
	FechaInicio string  `json:"fecha_inicio"`
	FechaFin    string  `json:"fecha_fin"`
}

// EventUpdateRequest representa una actualización parcial de un evento.
type EventUpdateRequest struct {
	ID          int64   `json:"id"`
	Titulo      *string `json:"titulo"`
	Descripcion *string `json:"descripcion"`
	FechaInicio *string `json:"fecha_inicio"`
	FechaFin    *string `json:"fecha_fin"`
}
