package agenda

import "database/sql"

// Service ejecuta las operaciones de agenda (tareas, eventos, reordenamiento)
// sobre la base de datos. Toda consulta queda acotada al user_id del dueño.
type Service struct {
	db *sql.DB
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// nextOrden calcula el rango final para una nueva fila del usuario:
// máximo orden actual + 1, partiendo de 0 si no hay filas.
func (s *Service) nextOrden(table string, userID int64) (int, error) {
	var next int
	err := s.db.QueryRow("SELECT COALESCE(MAX(orden), 0) + 1 FROM "+table+" WHERE user_id = ?", userID).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}
