package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/ledger"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
)

// Recorder único punto de escritura del libro de stock. Trabaja siempre dentro de la
// transacción del caller: bloquea la fila de la proyección (SELECT FOR UPDATE), valida que el
// disponible no quede negativo, actualiza la proyección y agrega el movimiento.
type Recorder struct {
	observer Observer
	now      Clock
}

// NewRecorder construye el registrador.
func NewRecorder(observer Observer, now Clock) *Recorder {
	if observer == nil {
		observer = NopObserver
	}
	if now == nil {
		now = time.Now
	}
	return &Recorder{observer: observer, now: now}
}

// Record valida y agrega un movimiento. Movements con ID vacío reciben uno nuevo.
func (rec *Recorder) Record(ctx context.Context, r repository.Repos, m *entity.StockMovement) error {
	if err := ledger.Validate(m); err != nil {
		return err
	}
	product, err := r.Products.GetByID(ctx, m.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NotFound("producto %s", m.ProductID)
	}
	lot, err := r.Lots.GetByID(ctx, m.LotID)
	if err != nil {
		return err
	}
	if lot == nil || lot.ProductID != m.ProductID {
		return domain.NotFound("lote %s del producto %s", m.LotID, m.ProductID)
	}
	loc, err := r.Locations.GetByID(ctx, m.LocationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.NotFound("ubicación %s", m.LocationID)
	}

	// Bloquea la fila del saldo para evitar condiciones de carrera
	current, err := r.Balances.GetForUpdate(ctx, m.Key())
	if err != nil {
		return err
	}
	next := ledger.Apply(current.Balance, m)
	if reduces(current.Balance, next) && !ledger.CheckNonNegative(next) {
		return domain.ErrInsufficientStock
	}

	now := rec.now()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	current.Balance = next
	current.UpdatedAt = now
	if err := r.Balances.Upsert(ctx, current); err != nil {
		return err
	}
	if err := r.Movements.Create(ctx, m); err != nil {
		return err
	}
	rec.observer.MovementRecorded(m.Type)
	return nil
}

// reduces solo los movimientos que bajan el disponible o la reserva se validan contra negativos;
// una recepción nunca se rechaza aunque existan saldos históricos inconsistentes.
func reduces(before, after entity.Balance) bool {
	return after.Available().LessThan(before.Available()) || after.Reserved.LessThan(before.Reserved)
}
