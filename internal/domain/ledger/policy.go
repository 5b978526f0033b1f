// Package ledger contiene la política de saldos y el plegado puro del libro de stock.
// Los saldos nunca se guardan como contadores independientes: todo valor aquí se obtiene
// sumando movimientos, de modo que la proyección stock_balances siempre es reconstruible.
package ledger

import (
	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OnHandPolicyVersion versión del conjunto de tipos que cuentan como existencia física.
// Cambiarlo exige una tarea de reconciliación sobre los datos existentes.
const OnHandPolicyVersion = 2

// AffectsOnHand tipos que suman a on_hand.
func AffectsOnHand(t entity.MovementType) bool {
	switch t {
	case entity.MovementReceipt, entity.MovementPutaway, entity.MovementPick, entity.MovementShip,
		entity.MovementAdjust, entity.MovementTransferIn, entity.MovementTransferOut,
		entity.MovementOpeningBalance:
		return true
	case entity.MovementAllocate, entity.MovementUnallocate:
		return false
	}
	return false
}

// AffectsReserved tipos que suman a reserved.
func AffectsReserved(t entity.MovementType) bool {
	switch t {
	case entity.MovementAllocate, entity.MovementUnallocate:
		return true
	}
	return false
}

// Validate rechaza movimientos que el libro no acepta: tipo desconocido, delta cero,
// signo contrario al tipo, más de entity.MaxQuantityScale decimales o referencias vacías.
func Validate(m *entity.StockMovement) error {
	if !m.Type.Valid() {
		return domain.Invalid("tipo de movimiento desconocido %q", m.Type)
	}
	if m.ProductID == "" || m.LotID == "" || m.LocationID == "" {
		return domain.Invalid("producto, lote y ubicación son obligatorios")
	}
	if m.Quantity.IsZero() {
		return domain.Invalid("la cantidad no puede ser cero")
	}
	if !m.Quantity.Equal(m.Quantity.Round(entity.MaxQuantityScale)) {
		return domain.Invalid("la cantidad admite máximo %d decimales", entity.MaxQuantityScale)
	}
	switch m.Type.Sign() {
	case 1:
		if m.Quantity.IsNegative() {
			return domain.Invalid("%s requiere cantidad positiva", m.Type)
		}
	case -1:
		if m.Quantity.IsPositive() {
			return domain.Invalid("%s requiere cantidad negativa", m.Type)
		}
	}
	return nil
}

// ValidateQuantity cantidad solicitada por un caller (> 0, escala admitida).
func ValidateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return domain.Invalid("la cantidad debe ser mayor que cero")
	}
	if !q.Equal(q.Round(entity.MaxQuantityScale)) {
		return domain.Invalid("la cantidad admite máximo %d decimales", entity.MaxQuantityScale)
	}
	return nil
}
