package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Invalid envuelve ErrInvalidInput con detalle para el caller.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound envuelve ErrNotFound con detalle.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflict envuelve ErrConflict con detalle.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// ShortageError indica qué código de barras no alcanzó a reservarse al iniciar una ola.
type ShortageError struct {
	Barcode   string
	ProductID string
	Required  decimal.Decimal
	Allocated decimal.Decimal
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: requerido %s, reservado %s",
		e.Barcode, e.Required.String(), e.Allocated.String())
}

// Shortage cantidad faltante.
func (e *ShortageError) Shortage() decimal.Decimal {
	return e.Required.Sub(e.Allocated)
}

func (e *ShortageError) Unwrap() error { return ErrInsufficientStock }
