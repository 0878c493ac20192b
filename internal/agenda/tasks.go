package agenda

import (
	"strings"
	"time"

	"github.com/yourorg/miagenda/internal/models"
	"github.com/yourorg/miagenda/internal/validation"
)

// taskSortColumns es la lista permitida de columnas de orden para tareas.
var taskSortColumns = []string{"id", "titulo", "fecha_vencimiento", "completada", "orden"}

// TaskListOptions son los parámetros de listado de tareas.
type TaskListOptions struct {
	Completed *bool
	Search    string
	SortBy    string
	SortOrder string
	Limit     *int
	Offset    int
}

// ListTasks retorna las tareas del usuario filtradas/ordenadas/paginadas y el
// total de coincidencias antes de paginar.
func (s *Service) ListTasks(userID int64, opts TaskListOptions) ([]models.Task, int, error) {
	q := newListQuery("tasks", "id, titulo, descripcion, fecha_vencimiento, completada, orden", userID)
	if opts.Completed != nil {
		q.And("completada = ?", *opts.Completed)
	}
	q.Search(opts.Search)

	var total int
	countSQL, countArgs := q.CountSQL()
	if err := s.db.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, storageError("Error al obtener tareas", err)
	}

	q.Sort(opts.SortBy, opts.SortOrder, taskSortColumns)
	q.Paginate(opts.Limit, opts.Offset)

	selectSQL, args := q.SelectSQL()
	rows, err := s.db.Query(selectSQL, args...)
	if err != nil {
		return nil, 0, storageError("Error al obtener tareas", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Titulo, &t.Descripcion, &t.FechaVencimiento, &t.Completada, &t.Orden); err != nil {
			return nil, 0, storageError("Error al obtener tareas", err)
		}
		t.UserID = userID
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storageError("Error al obtener tareas", err)
	}
	return tasks, total, nil
}

// CreateTask inserta una tarea nueva al final de la lista del usuario.
func (s *Service) CreateTask(userID int64, req models.TaskCreateRequest) (int64, error) {
	if strings.TrimSpace(req.Titulo) == "" {
		return 0, validationError("El título de la tarea es obligatorio.")
	}

	var fecha *time.Time
	if req.FechaVencimiento != nil && *req.FechaVencimiento != "" {
		t, err := validation.ParseFecha(*req.FechaVencimiento, "fecha_vencimiento")
		if err != nil {
			return 0, validationError("La fecha de vencimiento no es válida.")
		}
		fecha = &t
	}

	next, err := s.nextOrden("tasks", userID)
	if err != nil {
		return 0, storageError("Error al añadir tarea", err)
	}

	res, err := s.db.Exec(
		"INSERT INTO tasks (user_id, titulo, descripcion, fecha_vencimiento, orden) VALUES (?, ?, ?, ?, ?)",
		userID, req.Titulo, req.Descripcion, fecha, next,
	)
	if err != nil {
		return 0, storageError("Error al añadir tarea", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// UpdateTask aplica una actualización parcial: solo los campos presentes en la
// solicitud cambian. Cero filas alcanzadas se reporta como no-encontrada.
func (s *Service) UpdateTask(userID int64, req models.TaskUpdateRequest) error {
	if req.ID == 0 {
		return validationError("ID de tarea es obligatorio para actualizar.")
	}

	sets := []string{}
	args := []any{}
	if req.Titulo != nil {
		if strings.TrimSpace(*req.Titulo) == "" {
			return validationError("El título de la tarea es obligatorio.")
		}
		sets = append(sets, "titulo = ?")
		args = append(args, *req.Titulo)
	}
	if req.Descripcion != nil {
		sets = append(sets, "descripcion = ?")
		args = append(args, *req.Descripcion)
	}
	if req.FechaVencimiento != nil {
		if *req.FechaVencimiento == "" {
			sets = append(sets, "fecha_vencimiento = ?")
			args = append(args, nil)
		} else {
			t, err := validation.ParseFecha(*req.FechaVencimiento, "fecha_vencimiento")
			if err != nil {
				return validationError("La fecha de vencimiento no es válida.")
			}
			sets = append(sets, "fecha_vencimiento = ?")
			args = append(args, t)
		}
	}
	if req.Completada != nil {
		sets = append(sets, "completada = ?")
		args = append(args, *req.Completada)
	}

	if len(sets) == 0 {
		return validationError("No hay datos para actualizar.")
	}

	args = append(args, req.ID, userID)
	res, err := s.db.Exec("UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return storageError("Error al actualizar tarea", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFoundError("No se encontró la tarea o no hay cambios para actualizar.")
	}
	return nil
}

// DeleteTask elimina una tarea del usuario. Retorna false si no existe o
// pertenece a otro usuario; ambos casos son indistinguibles a propósito.
func (s *Service) DeleteTask(userID, id int64) (bool, error) {
	if id == 0 {
		return false, validationError("ID de tarea es obligatorio para eliminar.")
	}
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, storageError("Error al eliminar tarea", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// TaskStats agrega las tareas con vencimiento en el mes de referencia:
// completadas, pendientes (aún en plazo) y vencidas.
func (s *Service) TaskStats(userID int64, now time.Time) (models.TaskStats, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var stats models.TaskStats
	err := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(completada = 1), 0),
			COALESCE(SUM(completada = 0 AND fecha_vencimiento > ?), 0),
			COALESCE(SUM(completada = 0 AND fecha_vencimiento <= ?), 0)
		FROM tasks
		WHERE user_id = ? AND fecha_vencimiento >= ? AND fecha_vencimiento < ?
	`, now, now, userID, monthStart, monthEnd).Scan(&stats.Total, &stats.Completadas, &stats.Pendientes, &stats.Vencidas)
	if err != nil {
		return models.TaskStats{}, storageError("Error al obtener estadísticas de tareas", err)
	}
	return stats, nil
}
