package repository

import (
	"context"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockMovementRepository puerto del libro de stock (solo inserción y lectura).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// TotalsByType suma Quantity por tipo de movimiento para las filas que cumplen el filtro.
	TotalsByType(ctx context.Context, filter entity.MovementFilter) (map[entity.MovementType]decimal.Decimal, error)
	// List devuelve movimientos en orden de inserción (created_at, id). limit <= 0 = sin límite.
	List(ctx context.Context, filter entity.MovementFilter, limit, offset int) ([]*entity.StockMovement, error)
	ExistsForDocument(ctx context.Context, docType, docID string, movementType entity.MovementType) (bool, error)
}
