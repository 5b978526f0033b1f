package ledger

import (
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Apply suma un movimiento al saldo según la política vigente.
func Apply(b entity.Balance, m *entity.StockMovement) entity.Balance {
	return applyDelta(b, m.Type, m.Quantity)
}

func applyDelta(b entity.Balance, t entity.MovementType, delta decimal.Decimal) entity.Balance {
	if AffectsOnHand(t) {
		b.OnHand = b.OnHand.Add(delta)
	}
	if AffectsReserved(t) {
		b.Reserved = b.Reserved.Add(delta)
	}
	return b
}

// Fold recorre la secuencia completa y devuelve el saldo resultante.
func Fold(movements []*entity.StockMovement) entity.Balance {
	b := entity.Balance{OnHand: decimal.Zero, Reserved: decimal.Zero}
	for _, m := range movements {
		b = Apply(b, m)
	}
	return b
}

// FoldTotals igual que Fold pero a partir de sumas por tipo (agregado SQL).
func FoldTotals(totals map[entity.MovementType]decimal.Decimal) entity.Balance {
	b := entity.Balance{OnHand: decimal.Zero, Reserved: decimal.Zero}
	for _, t := range entity.MovementTypes {
		if v, ok := totals[t]; ok {
			b = applyDelta(b, t, v)
		}
	}
	return b
}

// FoldByKey pliega los movimientos agrupados por (producto, lote, ubicación).
func FoldByKey(movements []*entity.StockMovement) map[entity.BalanceKey]entity.Balance {
	out := make(map[entity.BalanceKey]entity.Balance)
	for _, m := range movements {
		b, ok := out[m.Key()]
		if !ok {
			b = entity.Balance{OnHand: decimal.Zero, Reserved: decimal.Zero}
		}
		out[m.Key()] = Apply(b, m)
	}
	return out
}

// CheckNonNegative verifica que el saldo resultante no deje disponible ni reservado negativos.
func CheckNonNegative(b entity.Balance) bool {
	return !b.Available().IsNegative() && !b.Reserved.IsNegative()
}
