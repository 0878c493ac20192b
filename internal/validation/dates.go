package validation

import (
	"fmt"
	"time"
)

// DateError representa un error de validación de fechas
type DateError struct {
	Field   string
	Value   string
	Message string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s: %s (valor: %q)", e.Field, e.Message, e.Value)
}

// fechaLayouts acepta los formatos que envía el cliente (datetime-local,
// MySQL DATETIME y RFC3339).
var fechaLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseFecha interpreta una fecha enviada por el cliente.
func ParseFecha(value, fieldName string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &DateError{
			Field:   fieldName,
			Value:   value,
			Message: "fecha vacía",
		}
	}

	for _, layout := range fechaLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &DateError{
		Field:   fieldName,
		Value:   value,
		Message: "formato de fecha no reconocido",
	}
}

// ValidateRangoFechas valida que fin sea estrictamente posterior a inicio.
func ValidateRangoFechas(inicio, fin time.Time) error {
	if !fin.After(inicio) {
		return &DateError{
			Field:   "fecha_fin",
			Value:   fin.Format("2006-01-02 15:04:05"),
			Message: "debe ser posterior a fecha_inicio",
		}
	}
	return nil
}
