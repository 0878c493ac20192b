package agenda

import (
	"database/sql"

	"github.com/yourorg/miagenda/internal/models"
)

// reorderTables acota el discriminador de tipo a las tablas reordenables.
var reorderTables = map[string]string{
	"tasks":  "tasks",
	"events": "events",
}

// reorderMessages: mensajes de éxito por tipo.
var reorderMessages = map[string]string{
	"tasks":  "Tareas reordenadas exitosamente.",
	"events": "Eventos reordenados exitosamente.",
}

// execer es el subconjunto de *sql.Tx que usa el lote de reordenamiento.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Reorder reescribe la columna orden para un lote de filas del usuario dentro
// de una única transacción: o se aplica el lote completo o ninguna fila cambia.
func (s *Service) Reorder(userID int64, req models.ReorderRequest) (string, error) {
	table, ok := reorderTables[req.Type]
	if !ok || len(req.Items) == 0 {
		return "", validationError("Datos inválidos para reordenar.")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", storageError("Error al reordenar "+req.Type, err)
	}
	if err := applyReorder(tx, table, userID, req.Items); err != nil {
		tx.Rollback()
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", storageError("Error al reordenar "+req.Type, err)
	}
	return reorderMessages[req.Type], nil
}

// applyReorder aplica cada par {id, order} del lote. Cualquier ítem incompleto,
// error de sentencia o fila que no pertenezca al usuario aborta el lote entero;
// el caller decide el rollback.
func applyReorder(tx execer, table string, userID int64, items []models.ReorderItem) error {
	for _, item := range items {
		if item.ID == nil || item.Order == nil {
			return validationError("Datos inválidos para reordenar.")
		}
		res, err := tx.Exec("UPDATE "+table+" SET orden = ? WHERE id = ? AND user_id = ?", *item.Order, *item.ID, userID)
		if err != nil {
			return storageError("Error al reordenar "+table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storageError("Error al reordenar "+table, err)
		}
		if n == 0 {
			return notFoundError("Error al reordenar " + table + ".")
		}
	}
	return nil
}
