package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-wms/internal/domain/inventory"
	"github.com/jhoicas/Inventario-wms/internal/domain/ledger"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// AllocationRequest reserva de un producto para un documento.
type AllocationRequest struct {
	ProductID string
	Quantity  decimal.Decimal
	DocType   string
	DocID     string
	UserID    string
}

// Reservation reserva emitida sobre un par (lote, ubicación).
type Reservation struct {
	ProductID    string
	LotID        string
	LocationID   string
	LocationCode string
	ExpiryDate   *time.Time
	Quantity     decimal.Decimal
	MovementID   string
}

// AllocationResult reservas emitidas y faltante. El faltante no es un error.
type AllocationResult struct {
	ProductID    string
	Required     decimal.Decimal
	Allocated    decimal.Decimal
	Shortage     decimal.Decimal
	Reservations []Reservation
}

// Allocator asignador FEFO. Escribe eventos allocate solo por lo efectivamente asignado.
type Allocator struct {
	recorder *Recorder
	observer Observer
	now      Clock
}

// NewAllocator construye el asignador.
func NewAllocator(recorder *Recorder, observer Observer, now Clock) *Allocator {
	if observer == nil {
		observer = NopObserver
	}
	if now == nil {
		now = time.Now
	}
	return &Allocator{recorder: recorder, observer: observer, now: now}
}

// AllocateInTx ejecuta la asignación dentro de la transacción del caller. Bloquea el producto
// para serializar asignaciones concurrentes y lee los pares candidatos con bloqueo de fila.
func (a *Allocator) AllocateInTx(ctx context.Context, r repository.Repos, req AllocationRequest) (*AllocationResult, error) {
	if req.ProductID == "" {
		return nil, domain.Invalid("product_id es obligatorio")
	}
	if err := ledger.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := r.Products.LockProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}
	asOf := a.now()
	cands, err := r.Balances.ListAllocatable(ctx, req.ProductID, asOf)
	if err != nil {
		return nil, err
	}
	plan := domaininv.PlanFEFO(cands, req.Quantity, asOf)

	out := &AllocationResult{
		ProductID: req.ProductID,
		Required:  req.Quantity,
		Allocated: plan.Allocated,
		Shortage:  plan.Shortage,
	}
	txID := uuid.New().String()
	for _, sel := range plan.Selections {
		mov := &entity.StockMovement{
			TransactionID: txID,
			ProductID:     req.ProductID,
			LotID:         sel.LotID,
			LocationID:    sel.LocationID,
			Quantity:      sel.Quantity,
			Type:          entity.MovementAllocate,
			SourceDocType: req.DocType,
			SourceDocID:   req.DocID,
			CreatedBy:     req.UserID,
		}
		if err := a.recorder.Record(ctx, r, mov); err != nil {
			return nil, err
		}
		out.Reservations = append(out.Reservations, Reservation{
			ProductID:    req.ProductID,
			LotID:        sel.LotID,
			LocationID:   sel.LocationID,
			LocationCode: sel.LocationCode,
			ExpiryDate:   sel.ExpiryDate,
			Quantity:     sel.Quantity,
			MovementID:   mov.ID,
		})
	}
	if out.Shortage.IsPositive() {
		a.observer.AllocationShortage()
	}
	return out, nil
}
