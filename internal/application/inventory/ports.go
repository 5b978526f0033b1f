package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ninguna fila queda escrita.
type TxRunner interface {
	Run(ctx context.Context, fn func(r repository.Repos) error) error
}

// Observer métricas del libro y del asignador.
type Observer interface {
	MovementRecorded(t entity.MovementType)
	AllocationShortage()
}

type nopObserver struct{}

func (nopObserver) MovementRecorded(entity.MovementType) {}
func (nopObserver) AllocationShortage()                  {}

// NopObserver observer vacío para tests y CLI.
var NopObserver Observer = nopObserver{}

// Clock fuente de la hora actual (inyectable en tests).
type Clock func() time.Time
