package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrRowRejected      = errors.New("fila rechazada por el almacenamiento")
	ErrImportInProgress = errors.New("ya hay una importación de catálogo en curso")
	ErrEmptyCart        = errors.New("el carrito está vacío")
	ErrMissingContact   = errors.New("faltan los datos de contacto")
)

// ValidationError entrada inválida con un mensaje pensado para el usuario final.
// errors.Is(err, ErrInvalidInput) es verdadero.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap permite tratarla como ErrInvalidInput.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye una ValidationError.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
