package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo cerrado de movimiento del libro de stock.
type MovementType string

// Tipos de movimiento. Ninguna otra cadena es válida.
const (
	MovementReceipt        MovementType = "receipt"
	MovementPutaway        MovementType = "putaway"
	MovementPick           MovementType = "pick"
	MovementShip           MovementType = "ship"
	MovementAdjust         MovementType = "adjust"
	MovementTransferIn     MovementType = "transfer_in"
	MovementTransferOut    MovementType = "transfer_out"
	MovementAllocate       MovementType = "allocate"
	MovementUnallocate     MovementType = "unallocate"
	MovementOpeningBalance MovementType = "opening_balance"
)

// MovementTypes lista completa, en orden estable.
var MovementTypes = []MovementType{
	MovementReceipt, MovementPutaway, MovementPick, MovementShip, MovementAdjust,
	MovementTransferIn, MovementTransferOut, MovementAllocate, MovementUnallocate,
	MovementOpeningBalance,
}

// Valid indica si t pertenece al enum.
func (t MovementType) Valid() bool {
	switch t {
	case MovementReceipt, MovementPutaway, MovementPick, MovementShip, MovementAdjust,
		MovementTransferIn, MovementTransferOut, MovementAllocate, MovementUnallocate,
		MovementOpeningBalance:
		return true
	}
	return false
}

// Sign signo obligatorio del delta: 1 positivo, -1 negativo, 0 cualquiera distinto de cero.
func (t MovementType) Sign() int {
	switch t {
	case MovementReceipt, MovementTransferIn, MovementAllocate:
		return 1
	case MovementShip, MovementPick, MovementTransferOut, MovementUnallocate:
		return -1
	case MovementAdjust, MovementPutaway, MovementOpeningBalance:
		return 0
	}
	return 0
}

// Tipos de documento origen usados por el núcleo.
const (
	DocumentOrder      = "order"
	DocumentWave       = "wave"
	DocumentReceipt    = "receipt"
	DocumentAdjustment = "adjustment"
	DocumentTransfer   = "transfer"
)

// MaxQuantityScale dígitos fraccionarios admitidos (NUMERIC(18,4)).
const MaxQuantityScale = 4

// StockMovement fila inmutable del libro de stock. Quantity es el delta con signo.
type StockMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	LotID         string
	LocationID    string
	Quantity      decimal.Decimal
	Type          MovementType
	SourceDocType string
	SourceDocID   string
	CreatedBy     string
	CreatedAt     time.Time
}

// Key clave (producto, lote, ubicación) del movimiento.
func (m *StockMovement) Key() BalanceKey {
	return BalanceKey{ProductID: m.ProductID, LotID: m.LotID, LocationID: m.LocationID}
}

// MovementFilter filtro de lectura del libro; los campos vacíos no filtran.
type MovementFilter struct {
	ProductID     string
	LotID         string
	LocationID    string
	SourceDocType string
	SourceDocID   string
}
