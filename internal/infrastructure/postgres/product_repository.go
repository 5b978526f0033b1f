package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.LotRepository     = (*LotRepo)(nil)
)

// ProductRepo catálogo de productos y códigos de barras (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto con sus códigos (el principal primero).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `SELECT id, sku, name, created_at FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.SKU, &p.Name, &p.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT barcode FROM product_barcodes
		WHERE product_id = $1 ORDER BY is_primary DESC, barcode`, id)
	if err != nil {
		return nil, fmt.Errorf("list product barcodes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan barcode: %w", err)
		}
		p.Barcodes = append(p.Barcodes, code)
	}
	return &p, rows.Err()
}

// ResolveBarcode productos asociados al código normalizado.
func (r *ProductRepo) ResolveBarcode(ctx context.Context, code string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT product_id FROM product_barcodes WHERE barcode = $1 ORDER BY product_id`, code)
	if err != nil {
		return nil, fmt.Errorf("resolve barcode: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ResolveSKU id del producto con ese SKU ("" si no existe).
func (r *ProductRepo) ResolveSKU(ctx context.Context, sku string) (string, error) {
	var id string
	err := r.q.QueryRow(ctx, `SELECT id FROM products WHERE sku = $1`, sku).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("resolve sku: %w", err)
	}
	return id, nil
}

// LockProduct advisory lock transaccional por producto; se libera en Commit/Rollback.
func (r *ProductRepo) LockProduct(ctx context.Context, productID string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, productID); err != nil {
		return fmt.Errorf("lock product: %w", err)
	}
	return nil
}

// LotRepo lotes (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes.
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// GetByID obtiene un lote.
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.Lot, error) {
	l, err := scanLot(r.q.QueryRow(ctx, `SELECT id, product_id, batch, expiry_date, created_at FROM lots WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return l, nil
}

// FindOrCreate inserta el lote si no existe; ON CONFLICT sobre el índice (producto, batch,
// COALESCE(vencimiento)) hace que dos recepciones simultáneas converjan en la misma fila.
func (r *LotRepo) FindOrCreate(ctx context.Context, productID, batch string, expiry *time.Time) (*entity.Lot, bool, error) {
	expiry = entity.NormalizeExpiry(expiry)
	id := uuid.New().String()
	tag, err := r.q.Exec(ctx, `
		INSERT INTO lots (id, product_id, batch, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, batch, COALESCE(expiry_date, 'infinity'::date)) DO NOTHING`,
		id, productID, batch, expiry)
	if err != nil {
		return nil, false, fmt.Errorf("insert lot: %w", err)
	}
	created := tag.RowsAffected() == 1
	l, err := scanLot(r.q.QueryRow(ctx, `
		SELECT id, product_id, batch, expiry_date, created_at FROM lots
		WHERE product_id = $1 AND batch = $2
		  AND COALESCE(expiry_date, 'infinity'::date) = COALESCE($3::date, 'infinity'::date)`,
		productID, batch, expiry))
	if err != nil {
		return nil, false, fmt.Errorf("get lot: %w", err)
	}
	return l, created, nil
}

func scanLot(row rowScanner) (*entity.Lot, error) {
	var l entity.Lot
	var expiry *time.Time
	if err := row.Scan(&l.ID, &l.ProductID, &l.Batch, &expiry, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.ExpiryDate = entity.NormalizeExpiry(expiry)
	return &l, nil
}
