package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo libro stock_movements sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, transaction_id, product_id, lot_id, location_id, quantity, type,
	source_doc_type, source_doc_id, created_by, created_at`

// Create agrega un movimiento al libro. La tabla rechaza UPDATE y DELETE por trigger.
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TransactionID, m.ProductID, m.LotID, m.LocationID, m.Quantity, string(m.Type),
		m.SourceDocType, m.SourceDocID, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// where arma el filtro dinámico con placeholders posicionales.
func movementWhere(f entity.MovementFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("product_id", f.ProductID)
	add("lot_id", f.LotID)
	add("location_id", f.LocationID)
	add("source_doc_type", f.SourceDocType)
	add("source_doc_id", f.SourceDocID)
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// TotalsByType SUM(quantity) GROUP BY type sobre las filas filtradas.
func (r *MovementRepo) TotalsByType(ctx context.Context, f entity.MovementFilter) (map[entity.MovementType]decimal.Decimal, error) {
	where, args := movementWhere(f)
	rows, err := r.q.Query(ctx, `SELECT type, COALESCE(SUM(quantity), 0) FROM stock_movements`+where+` GROUP BY type`, args...)
	if err != nil {
		return nil, fmt.Errorf("totals by type: %w", err)
	}
	defer rows.Close()
	out := make(map[entity.MovementType]decimal.Decimal)
	for rows.Next() {
		var t string
		var sum decimal.Decimal
		if err := rows.Scan(&t, &sum); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		out[entity.MovementType(t)] = sum
	}
	return out, rows.Err()
}

// List movimientos en orden de inserción (seq).
func (r *MovementRepo) List(ctx context.Context, f entity.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	where, args := movementWhere(f)
	query := `SELECT ` + movementColumns + ` FROM stock_movements` + where + ` ORDER BY seq`
	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	} else if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ExistsForDocument indica si el documento ya tiene movimientos del tipo dado.
func (r *MovementRepo) ExistsForDocument(ctx context.Context, docType, docID string, t entity.MovementType) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM stock_movements
			WHERE source_doc_type = $1 AND source_doc_id = $2 AND type = $3)`,
		docType, docID, string(t),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists for document: %w", err)
	}
	return exists, nil
}

func scanMovement(row rowScanner) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var t string
	if err := row.Scan(&m.ID, &m.TransactionID, &m.ProductID, &m.LotID, &m.LocationID, &m.Quantity, &t,
		&m.SourceDocType, &m.SourceDocID, &m.CreatedBy, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan stock movement: %w", err)
	}
	m.Type = entity.MovementType(t)
	return &m, nil
}
