package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ScanRepository = (*ScanRepo)(nil)

// ScanRepo lecturas de picking y clasificación. request_id es UNIQUE en ambas tablas.
type ScanRepo struct {
	q Querier
}

// NewScanRepository construye el adaptador de lecturas.
func NewScanRepository(q Querier) *ScanRepo {
	return &ScanRepo{q: q}
}

// GetPickScan lectura previa con ese request_id (nil si no existe).
func (r *ScanRepo) GetPickScan(ctx context.Context, requestID string) (*entity.PickScan, error) {
	var s entity.PickScan
	err := r.q.QueryRow(ctx, `
		SELECT id, request_id, wave_id, wave_line_id, barcode, quantity, created_by, created_at, result
		FROM pick_scans WHERE request_id = $1`, requestID).
		Scan(&s.ID, &s.RequestID, &s.WaveID, &s.WaveLineID, &s.Barcode, &s.Quantity, &s.CreatedBy, &s.CreatedAt, &s.Result)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pick scan: %w", err)
	}
	return &s, nil
}

// CreatePickScan inserta la lectura; un request_id repetido devuelve domain.ErrDuplicate.
func (r *ScanRepo) CreatePickScan(ctx context.Context, s *entity.PickScan) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO pick_scans (id, request_id, wave_id, wave_line_id, barcode, quantity, created_by, created_at, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.RequestID, s.WaveID, s.WaveLineID, s.Barcode, s.Quantity, s.CreatedBy, s.CreatedAt, s.Result)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pick scan: %w", err)
	}
	return nil
}

// GetSortingScan lectura previa con ese request_id (nil si no existe).
func (r *ScanRepo) GetSortingScan(ctx context.Context, requestID string) (*entity.SortingScan, error) {
	var s entity.SortingScan
	err := r.q.QueryRow(ctx, `
		SELECT id, request_id, wave_id, order_id, barcode, quantity, created_by, created_at, result
		FROM sorting_scans WHERE request_id = $1`, requestID).
		Scan(&s.ID, &s.RequestID, &s.WaveID, &s.OrderID, &s.Barcode, &s.Quantity, &s.CreatedBy, &s.CreatedAt, &s.Result)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sorting scan: %w", err)
	}
	return &s, nil
}

// CreateSortingScan inserta la lectura; un request_id repetido devuelve domain.ErrDuplicate.
func (r *ScanRepo) CreateSortingScan(ctx context.Context, s *entity.SortingScan) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sorting_scans (id, request_id, wave_id, order_id, barcode, quantity, created_by, created_at, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.RequestID, s.WaveID, s.OrderID, s.Barcode, s.Quantity, s.CreatedBy, s.CreatedAt, s.Result)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sorting scan: %w", err)
	}
	return nil
}

// SumSorted total clasificado para (ola, pedido[, código]).
func (r *ScanRepo) SumSorted(ctx context.Context, waveID, orderID, code string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0) FROM sorting_scans
		WHERE wave_id = $1 AND order_id = $2 AND ($3 = '' OR barcode = $3)`,
		waveID, orderID, code).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum sorted: %w", err)
	}
	return total, nil
}
