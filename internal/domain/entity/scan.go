package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PickScan lectura de recolección. RequestID es la llave de idempotencia (única).
// Result guarda la respuesta serializada devuelta en la primera aplicación.
type PickScan struct {
	ID         string
	RequestID  string
	WaveID     string
	WaveLineID string
	Barcode    string
	Quantity   decimal.Decimal
	CreatedBy  string
	CreatedAt  time.Time
	Result     []byte
}

// SortingScan lectura de clasificación hacia el bin de un pedido.
type SortingScan struct {
	ID        string
	RequestID string
	WaveID    string
	OrderID   string
	Barcode   string
	Quantity  decimal.Decimal
	CreatedBy string
	CreatedAt time.Time
	Result    []byte
}
