package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
)

// StockBalanceRepository puerto de la proyección stock_balances.
// Usado dentro de transacciones junto con el libro para mantener consistencia.
type StockBalanceRepository interface {
	Get(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); devuelve saldo cero si no existe.
	GetForUpdate(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error)
	Upsert(ctx context.Context, balance *entity.StockBalance) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockBalance, error)
	// ListAllocatable pares con disponible > 0 en ubicaciones NORMAL activas y lotes vigentes a asOf,
	// con las filas bloqueadas hasta el fin de la transacción.
	ListAllocatable(ctx context.Context, productID string, asOf time.Time) ([]entity.AllocationCandidate, error)
}
