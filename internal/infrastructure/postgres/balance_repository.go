package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockBalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo proyección stock_balances sobre PostgreSQL (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

const balanceColumns = `product_id, lot_id, location_id, on_hand, reserved, updated_at`

// Get obtiene el saldo proyectado (nil si no existe).
func (r *BalanceRepo) Get(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error) {
	b, err := scanBalance(r.q.QueryRow(ctx, `SELECT `+balanceColumns+` FROM stock_balances
		WHERE product_id = $1 AND lot_id = $2 AND location_id = $3`,
		key.ProductID, key.LotID, key.LocationID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return b, nil
}

// GetForUpdate asegura que la fila exista y la bloquea (SELECT FOR UPDATE), de modo que dos
// transacciones sobre el mismo par nunca lean el mismo saldo.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_balances (product_id, lot_id, location_id, on_hand, reserved, updated_at)
		VALUES ($1, $2, $3, 0, 0, now())
		ON CONFLICT (product_id, lot_id, location_id) DO NOTHING`,
		key.ProductID, key.LotID, key.LocationID)
	if err != nil {
		return nil, fmt.Errorf("ensure stock balance: %w", err)
	}
	b, err := scanBalance(r.q.QueryRow(ctx, `SELECT `+balanceColumns+` FROM stock_balances
		WHERE product_id = $1 AND lot_id = $2 AND location_id = $3
		FOR UPDATE`,
		key.ProductID, key.LotID, key.LocationID))
	if err != nil {
		return nil, fmt.Errorf("get stock balance for update: %w", err)
	}
	return b, nil
}

// Upsert inserta o actualiza el saldo del par.
func (r *BalanceRepo) Upsert(ctx context.Context, b *entity.StockBalance) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_balances (product_id, lot_id, location_id, on_hand, reserved, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, lot_id, location_id)
		DO UPDATE SET on_hand = EXCLUDED.on_hand, reserved = EXCLUDED.reserved, updated_at = EXCLUDED.updated_at`,
		b.ProductID, b.LotID, b.LocationID, b.OnHand, b.Reserved, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock balance: %w", err)
	}
	return nil
}

// ListByProduct saldos proyectados de un producto.
func (r *BalanceRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockBalance, error) {
	rows, err := r.q.Query(ctx, `SELECT `+balanceColumns+` FROM stock_balances
		WHERE product_id = $1 ORDER BY lot_id, location_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// ListAllocatable candidatos FEFO con las filas de saldo bloqueadas (FOR UPDATE OF b).
func (r *BalanceRepo) ListAllocatable(ctx context.Context, productID string, asOf time.Time) ([]entity.AllocationCandidate, error) {
	rows, err := r.q.Query(ctx, `
		SELECT b.lot_id, b.location_id, loc.code, l.batch, l.expiry_date, loc.zone, loc.active,
		       b.on_hand - b.reserved
		FROM stock_balances b
		JOIN lots l ON l.id = b.lot_id
		JOIN locations loc ON loc.id = b.location_id
		WHERE b.product_id = $1
		  AND b.on_hand - b.reserved > 0
		  AND loc.zone = 'NORMAL' AND loc.active
		  AND (l.expiry_date IS NULL OR l.expiry_date > $2::date)
		ORDER BY l.expiry_date ASC NULLS LAST, loc.code, b.lot_id
		FOR UPDATE OF b`, productID, asOf)
	if err != nil {
		return nil, fmt.Errorf("list allocatable: %w", err)
	}
	defer rows.Close()
	var list []entity.AllocationCandidate
	for rows.Next() {
		var c entity.AllocationCandidate
		var zone string
		var expiry *time.Time
		if err := rows.Scan(&c.LotID, &c.LocationID, &c.LocationCode, &c.Batch, &expiry, &zone, &c.Active, &c.Available); err != nil {
			return nil, fmt.Errorf("scan allocatable: %w", err)
		}
		c.Zone = entity.ZoneType(zone)
		c.ExpiryDate = entity.NormalizeExpiry(expiry)
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanBalance(row rowScanner) (*entity.StockBalance, error) {
	b := &entity.StockBalance{Balance: entity.Balance{OnHand: decimal.Zero, Reserved: decimal.Zero}}
	if err := row.Scan(&b.ProductID, &b.LotID, &b.LocationID, &b.OnHand, &b.Reserved, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return b, nil
}
