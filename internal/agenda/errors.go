package agenda

import "fmt"

// ErrorKind clasifica los fallos del servicio. Los handlers son los únicos
// responsables de traducir cada kind a estado HTTP y sobre JSON.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindUnauthorized
	KindNotFound
	KindStorage
)

// Error es el error tipado que retornan todas las operaciones del servicio.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func notFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func storageError(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}
