package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/ledger"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BalanceUseCase consultas de solo lectura sobre el libro: saldos, auditoría y reconciliación.
type BalanceUseCase struct {
	txRunner TxRunner
}

// NewBalanceUseCase construye el caso de uso.
func NewBalanceUseCase(txRunner TxRunner) *BalanceUseCase {
	return &BalanceUseCase{txRunner: txRunner}
}

// Balance agrega los movimientos del producto (y opcionalmente lote/ubicación) directamente
// desde el libro, sin usar la proyección.
func (uc *BalanceUseCase) Balance(ctx context.Context, productID, lotID, locationID string) (entity.Balance, error) {
	if productID == "" {
		return entity.Balance{}, domain.Invalid("product_id es obligatorio")
	}
	var out entity.Balance
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		p, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("producto %s", productID)
		}
		totals, err := r.Movements.TotalsByType(ctx, entity.MovementFilter{
			ProductID: productID, LotID: lotID, LocationID: locationID,
		})
		if err != nil {
			return err
		}
		out = ledger.FoldTotals(totals)
		return nil
	})
	return out, err
}

// Movements lista el libro para auditoría. limit <= 0 usa 100.
func (uc *BalanceUseCase) Movements(ctx context.Context, filter entity.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	var out []*entity.StockMovement
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		list, err := r.Movements.List(ctx, filter, limit, offset)
		out = list
		return err
	})
	return out, err
}

// Discrepancy diferencia entre la proyección y el replay del libro.
type Discrepancy struct {
	Key       entity.BalanceKey
	Ledger    entity.Balance
	Projected entity.Balance
}

// Reconcile recalcula todos los saldos del producto desde el libro y los compara con
// stock_balances. No corrige nada: las diferencias se reportan para revisión.
func (uc *BalanceUseCase) Reconcile(ctx context.Context, productID string) ([]Discrepancy, error) {
	if productID == "" {
		return nil, domain.Invalid("product_id es obligatorio")
	}
	var out []Discrepancy
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		movements, err := r.Movements.List(ctx, entity.MovementFilter{ProductID: productID}, 0, 0)
		if err != nil {
			return err
		}
		replayed := ledger.FoldByKey(movements)
		projected, err := r.Balances.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		seen := make(map[entity.BalanceKey]bool, len(projected))
		for _, p := range projected {
			seen[p.BalanceKey] = true
			want, ok := replayed[p.BalanceKey]
			if !ok {
				want = entity.Balance{OnHand: decimal.Zero, Reserved: decimal.Zero}
			}
			if !want.OnHand.Equal(p.OnHand) || !want.Reserved.Equal(p.Reserved) {
				out = append(out, Discrepancy{Key: p.BalanceKey, Ledger: want, Projected: p.Balance})
			}
		}
		for key, b := range replayed {
			if !seen[key] {
				out = append(out, Discrepancy{Key: key, Ledger: b, Projected: entity.Balance{OnHand: decimal.Zero, Reserved: decimal.Zero}})
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.LotID != out[j].Key.LotID {
			return out[i].Key.LotID < out[j].Key.LotID
		}
		return out[i].Key.LocationID < out[j].Key.LocationID
	})
	return out, err
}
