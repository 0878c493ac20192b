package agenda

import (
	"slices"
	"strings"
)

// listQuery acumula predicados con sus parámetros y los traduce una sola vez
// a sentencias parametrizadas. SELECT y COUNT comparten el mismo filtro, de
// modo que el total reportado siempre corresponde al listado sin paginar.
type listQuery struct {
	table   string
	columns string
	where   []string
	args    []any
	orderBy string
	limit   *int
	offset  int
}

func newListQuery(table, columns string, userID int64) *listQuery {
	q := &listQuery{table: table, columns: columns}
	q.And("user_id = ?", userID)
	return q
}

// And agrega un predicado unido por AND.
func (q *listQuery) And(expr string, args ...any) {
	q.where = append(q.where, expr)
	q.args = append(q.args, args...)
}

// Search agrega la búsqueda por subcadena sobre título o descripción.
// Término vacío no filtra.
func (q *listQuery) Search(term string) {
	if term == "" {
		return
	}
	like := "%" + term + "%"
	q.And("(titulo LIKE ? OR descripcion LIKE ?)", like, like)
}

// Sort fija el orden del listado. Columnas fuera de la lista permitida caen
// silenciosamente a "orden" (comportamiento permisivo por compatibilidad).
// Solo el literal "desc" (case-insensitive) ordena descendente.
// "completada" como clave de orden siempre deja las pendientes primero.
func (q *listQuery) Sort(sortBy, sortOrder string, allowed []string) {
	if !slices.Contains(allowed, sortBy) {
		sortBy = "orden"
	}
	dir := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		dir = "DESC"
	}
	if sortBy == "completada" {
		q.orderBy = "completada ASC, " + sortBy + " " + dir
	} else {
		q.orderBy = sortBy + " " + dir
	}
}

// Paginate fija límite y desplazamiento. Límite nil retorna todo el conjunto
// y el offset se ignora.
func (q *listQuery) Paginate(limit *int, offset int) {
	q.limit = limit
	q.offset = offset
}

// SelectSQL produce la sentencia de listado con sus argumentos.
func (q *listQuery) SelectSQL() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(q.columns)
	sb.WriteString(" FROM ")
	sb.WriteString(q.table)
	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(q.where, " AND "))
	args := slices.Clone(q.args)
	if q.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.orderBy)
	}
	if q.limit != nil {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, *q.limit, q.offset)
	}
	return sb.String(), args
}

// CountSQL produce la sentencia de conteo con el mismo filtro, sin paginación.
func (q *listQuery) CountSQL() (string, []any) {
	return "SELECT COUNT(*) AS total FROM " + q.table + " WHERE " + strings.Join(q.where, " AND "), slices.Clone(q.args)
}
