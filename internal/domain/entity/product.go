package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto físico. Inmutable una vez referenciado por el libro.
type Product struct {
	ID        string
	SKU       string
	Name      string
	Barcodes  []string
	CreatedAt time.Time
}

// Lot lote de un producto; único por (producto, batch, vencimiento).
type Lot struct {
	ID         string
	ProductID  string
	Batch      string
	ExpiryDate *time.Time // nil = no perecedero
	CreatedAt  time.Time
}

// SameIdentity compara la identidad natural del lote.
func (l *Lot) SameIdentity(productID, batch string, expiry *time.Time) bool {
	if l.ProductID != productID || l.Batch != batch {
		return false
	}
	if l.ExpiryDate == nil || expiry == nil {
		return l.ExpiryDate == nil && expiry == nil
	}
	return l.ExpiryDate.Equal(*expiry)
}

// NormalizeExpiry trunca el vencimiento a fecha UTC (la columna es DATE).
func NormalizeExpiry(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// Order pedido externo; entrada de solo lectura para el núcleo.
type Order struct {
	ID                 string
	Number             string
	HasPickingDocument bool
	Lines              []OrderLine
}

// OrderLine línea de demanda. ProductID, Barcode y SKU son referencias sin resolver.
type OrderLine struct {
	ProductID string
	Barcode   string
	SKU       string
	Quantity  decimal.Decimal
}
