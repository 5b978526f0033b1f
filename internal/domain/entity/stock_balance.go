package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceKey identifica un saldo por producto, lote y ubicación.
type BalanceKey struct {
	ProductID  string
	LotID      string
	LocationID string
}

// Balance saldo derivado del libro.
type Balance struct {
	OnHand   decimal.Decimal
	Reserved decimal.Decimal
}

// Available = OnHand - Reserved.
func (b Balance) Available() decimal.Decimal {
	return b.OnHand.Sub(b.Reserved)
}

// StockBalance proyección materializada del libro (tabla stock_balances).
// Se reconstruye sumando movimientos; nunca se edita fuera del registrador.
type StockBalance struct {
	BalanceKey
	Balance
	UpdatedAt time.Time
}

// AllocationCandidate par (lote, ubicación) con disponible para reservar.
type AllocationCandidate struct {
	LotID        string
	LocationID   string
	LocationCode string
	Batch        string
	ExpiryDate   *time.Time
	Zone         ZoneType
	Active       bool
	Available    decimal.Decimal
}
