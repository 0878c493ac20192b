package agenda

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/yourorg/miagenda/internal/models"
	"github.com/yourorg/miagenda/internal/validation"
)

// eventSortColumns es la lista permitida de columnas de orden para eventos.
var eventSortColumns = []string{"id", "titulo", "fecha_inicio", "fecha_fin", "orden"}

// EventListOptions son los parámetros de listado de eventos.
type EventListOptions struct {
	Search    string
	SortBy    string
	SortOrder string
	Limit     *int
	Offset    int
}

// ListEvents retorna los eventos del usuario y el total antes de paginar.
func (s *Service) ListEvents(userID int64, opts EventListOptions) ([]models.Event, int, error) {
	q := newListQuery("events", "id, titulo, descripcion, fecha_inicio, fecha_fin, orden", userID)
	q.Search(opts.Search)

	var total int
	countSQL, countArgs := q.CountSQL()
	if err := s.db.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, storageError("Error al obtener eventos", err)
	}

	q.Sort(opts.SortBy, opts.SortOrder, eventSortColumns)
	q.Paginate(opts.Limit, opts.Offset)

	selectSQL, args := q.SelectSQL()
	rows, err := s.db.Query(selectSQL, args...)
	if err != nil {
		return nil, 0, storageError("Error al obtener eventos", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Titulo, &e.Descripcion, &e.FechaInicio, &e.FechaFin, &e.Orden); err != nil {
			return nil, 0, storageError("Error al obtener eventos", err)
		}
		e.UserID = userID
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storageError("Error al obtener eventos", err)
	}
	return events, total, nil
}

// CreateEvent inserta un evento nuevo al final de la lista del usuario.
// Exige título y ambas fechas, con fecha_fin posterior a fecha_inicio.
func (s *Service) CreateEvent(userID int64, req models.EventCreateRequest) (int64, error) {
	if strings.TrimSpace(req.Titulo) == "" || req.FechaInicio == "" || req.FechaFin == "" {
		return 0, validationError("Título, fecha de inicio y fecha de fin son obligatorios.")
	}

	inicio, err := validation.ParseFecha(req.FechaInicio, "fecha_inicio")
	if err != nil {
		return 0, validationError("La fecha de inicio no es válida.")
	}
	fin, err := validation.ParseFecha(req.FechaFin, "fecha_fin")
	if err != nil {
		return 0, validationError("La fecha de fin no es válida.")
	}
	if err := validation.ValidateRangoFechas(inicio, fin); err != nil {
		return 0, validationError("La fecha de fin debe ser posterior a la de inicio.")
	}

	next, err := s.nextOrden("events", userID)
	if err != nil {
		return 0, storageError("Error al añadir evento", err)
	}

	res, err := s.db.Exec(
		"INSERT INTO events (user_id, titulo, descripcion, fecha_inicio, fecha_fin, orden) VALUES (?, ?, ?, ?, ?, ?)",
		userID, req.Titulo, req.Descripcion, inicio, fin, next,
	)
	if err != nil {
		return 0, storageError("Error al añadir evento", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// UpdateEvent aplica una actualización parcial. Cuando solo una de las fechas
// viene en la solicitud, la validación del rango usa el valor persistido de la
// contraparte antes de confirmar el cambio.
func (s *Service) UpdateEvent(userID int64, req models.EventUpdateRequest) error {
	if req.ID == 0 {
		return validationError("ID de evento es obligatorio para actualizar.")
	}

	var inicio, fin *time.Time
	if req.FechaInicio != nil {
		t, err := validation.ParseFecha(*req.FechaInicio, "fecha_inicio")
		if err != nil {
			return validationError("La fecha de inicio no es válida.")
		}
		inicio = &t
	}
	if req.FechaFin != nil {
		t, err := validation.ParseFecha(*req.FechaFin, "fecha_fin")
		if err != nil {
			return validationError("La fecha de fin no es válida.")
		}
		fin = &t
	}

	sets := []string{}
	args := []any{}
	if req.Titulo != nil {
		if strings.TrimSpace(*req.Titulo) == "" {
			return validationError("El título del evento es obligatorio.")
		}
		sets = append(sets, "titulo = ?")
		args = append(args, *req.Titulo)
	}
	if req.Descripcion != nil {
		sets = append(sets, "descripcion = ?")
		args = append(args, *req.Descripcion)
	}
	if inicio != nil {
		sets = append(sets, "fecha_inicio = ?")
		args = append(args, *inicio)
	}
	if fin != nil {
		sets = append(sets, "fecha_fin = ?")
		args = append(args, *fin)
	}

	if len(sets) == 0 {
		return validationError("No hay datos para actualizar.")
	}

	if err := s.checkEventDates(userID, req.ID, inicio, fin); err != nil {
		return err
	}

	args = append(args, req.ID, userID)
	res, err := s.db.Exec("UPDATE events SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return storageError("Error al actualizar evento", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFoundError("No se encontró el evento o no hay cambios para actualizar.")
	}
	return nil
}

// checkEventDates valida fecha_fin > fecha_inicio para la combinación de
// valores nuevos y persistidos. Con una sola fecha en la solicitud se lee la
// contraparte actual de la fila; si la fila no existe la validación se omite y
// el UPDATE posterior reporta no-encontrado.
func (s *Service) checkEventDates(userID, id int64, inicio, fin *time.Time) error {
	switch {
	case inicio != nil && fin != nil:
		if err := validation.ValidateRangoFechas(*inicio, *fin); err != nil {
			return validationError("La fecha de fin debe ser posterior a la de inicio.")
		}
	case inicio != nil:
		var current time.Time
		err := s.db.QueryRow("SELECT fecha_fin FROM events WHERE id = ? AND user_id = ?", id, userID).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return storageError("Error al actualizar evento", err)
		}
		if err := validation.ValidateRangoFechas(*inicio, current); err != nil {
			return validationError("La fecha de fin debe ser posterior a la de inicio.")
		}
	case fin != nil:
		var current time.Time
		err := s.db.QueryRow("SELECT fecha_inicio FROM events WHERE id = ? AND user_id = ?", id, userID).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return storageError("Error al actualizar evento", err)
		}
		if err := validation.ValidateRangoFechas(current, *fin); err != nil {
			return validationError("La fecha de fin debe ser posterior a la de inicio.")
		}
	}
	return nil
}

// DeleteEvent elimina un evento del usuario. Retorna false si no existe o
// pertenece a otro usuario.
func (s *Service) DeleteEvent(userID, id int64) (bool, error) {
	if id == 0 {
		return false, validationError("ID de evento es obligatorio para eliminar.")
	}
	res, err := s.db.Exec("DELETE FROM events WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, storageError("Error al eliminar evento", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
