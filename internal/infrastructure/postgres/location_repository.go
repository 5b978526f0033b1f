package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.LocationRepository = (*LocationRepo)(nil)
	_ repository.OrderRepository    = (*OrderRepo)(nil)
)

// LocationRepo registro de ubicaciones del almacén.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de ubicaciones.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	return r.getOne(ctx, `SELECT id, code, zone, active, created_at FROM locations WHERE id = $1`, id)
}

// GetByCode obtiene una ubicación por su código.
func (r *LocationRepo) GetByCode(ctx context.Context, code string) (*entity.Location, error) {
	return r.getOne(ctx, `SELECT id, code, zone, active, created_at FROM locations WHERE code = $1`, code)
}

func (r *LocationRepo) getOne(ctx context.Context, query string, arg string) (*entity.Location, error) {
	var l entity.Location
	var zone string
	err := r.q.QueryRow(ctx, query, arg).Scan(&l.ID, &l.Code, &zone, &l.Active, &l.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	l.Zone = entity.ZoneType(zone)
	return &l, nil
}

// OrderRepo lectura de pedidos con sus líneas.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByID obtiene el pedido y sus líneas en orden.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, `SELECT id, number, has_picking_document FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.Number, &o.HasPickingDocument)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT COALESCE(product_id::text, ''), barcode, sku, quantity
		FROM order_lines WHERE order_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OrderLine
		l.Quantity = decimal.Zero
		if err := rows.Scan(&l.ProductID, &l.Barcode, &l.SKU, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	return &o, rows.Err()
}
