package repository

import (
	"context"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// WaveRepository persistencia de olas, líneas, reservas y bins.
type WaveRepository interface {
	NextNumber(ctx context.Context) (string, error)
	// Create inserta la ola con sus líneas y bins.
	Create(ctx context.Context, wave *entity.Wave) error
	// GetByID carga solo la cabecera.
	GetByID(ctx context.Context, id string) (*entity.Wave, error)
	// GetDetail carga la ola completa (líneas con reservas y bins).
	GetDetail(ctx context.Context, id string) (*entity.Wave, error)
	// GetForUpdate carga solo la cabecera y bloquea la fila.
	GetForUpdate(ctx context.Context, id string) (*entity.Wave, error)
	UpdateStatus(ctx context.Context, wave *entity.Wave) error
	Delete(ctx context.Context, id string) error
	// WaveIDForOrder ola que contiene al pedido ("" si ninguna).
	WaveIDForOrder(ctx context.Context, orderID string) (string, error)

	ListLines(ctx context.Context, waveID string) ([]*entity.WaveLine, error)
	// GetLineForUpdate bloquea la línea (wave, barcode) y carga sus reservas en orden.
	GetLineForUpdate(ctx context.Context, waveID, barcode string) (*entity.WaveLine, error)
	UpdateLine(ctx context.Context, line *entity.WaveLine) error
	CountPendingLines(ctx context.Context, waveID string) (int, error)
	CreateAllocations(ctx context.Context, allocations []*entity.WaveAllocation) error
	UpdateAllocation(ctx context.Context, allocation *entity.WaveAllocation) error

	// GetBinForUpdate bloquea el bin del pedido en la ola.
	GetBinForUpdate(ctx context.Context, waveID, orderID string) (*entity.SortingBin, error)
	UpdateBin(ctx context.Context, bin *entity.SortingBin) error
	CountOpenBins(ctx context.Context, waveID string) (int, error)
}

// ScanRepository lecturas de recolección y clasificación. request_id es único por tipo.
type ScanRepository interface {
	GetPickScan(ctx context.Context, requestID string) (*entity.PickScan, error)
	// CreatePickScan devuelve domain.ErrDuplicate si request_id ya existe.
	CreatePickScan(ctx context.Context, scan *entity.PickScan) error
	GetSortingScan(ctx context.Context, requestID string) (*entity.SortingScan, error)
	CreateSortingScan(ctx context.Context, scan *entity.SortingScan) error
	// SumSorted suma lo clasificado para (ola, pedido); barcode vacío = todos.
	SumSorted(ctx context.Context, waveID, orderID, barcode string) (decimal.Decimal, error)
}

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Movements StockMovementRepository
	Balances  StockBalanceRepository
	Products  ProductRepository
	Lots      LotRepository
	Locations LocationRepository
	Orders    OrderRepository
	Waves     WaveRepository
	Scans     ScanRepository
}
