package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
)

// ProductRepository resolución de productos por id, código de barras o SKU.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// ResolveBarcode devuelve todos los productos con ese código; más de uno es un conflicto.
	ResolveBarcode(ctx context.Context, barcode string) ([]string, error)
	ResolveSKU(ctx context.Context, sku string) (string, error)
	// LockProduct serializa asignaciones del mismo producto hasta el fin de la transacción.
	LockProduct(ctx context.Context, productID string) error
}

// LotRepository lotes; se crean en la primera recepción y nunca se modifican.
type LotRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Lot, error)
	// FindOrCreate reutiliza el lote (producto, batch, vencimiento) si existe.
	FindOrCreate(ctx context.Context, productID, batch string, expiry *time.Time) (*entity.Lot, bool, error)
}

// LocationRepository registro de ubicaciones.
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	GetByCode(ctx context.Context, code string) (*entity.Location, error)
}

// OrderRepository fuente externa de pedidos (solo lectura).
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
}
