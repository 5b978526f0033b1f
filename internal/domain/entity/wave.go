package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WaveStatus estado de la máquina de la ola.
type WaveStatus string

const (
	WaveDraft     WaveStatus = "DRAFT"
	WavePicking   WaveStatus = "PICKING"
	WaveSorting   WaveStatus = "SORTING"
	WaveCompleted WaveStatus = "COMPLETED"
)

// Valid indica si s pertenece al enum.
func (s WaveStatus) Valid() bool {
	switch s {
	case WaveDraft, WavePicking, WaveSorting, WaveCompleted:
		return true
	}
	return false
}

// WaveLineStatus estado de una línea de ola.
type WaveLineStatus string

const (
	LinePending WaveLineStatus = "PENDING"
	LinePicked  WaveLineStatus = "PICKED"
)

// BinStatus estado de un bin de clasificación.
type BinStatus string

const (
	BinOpen BinStatus = "OPEN"
	BinDone BinStatus = "DONE"
)

// Wave lote de pedidos que se recogen y clasifican juntos.
type Wave struct {
	ID          string
	Number      string
	Status      WaveStatus
	Note        string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	Lines       []*WaveLine
	Bins        []*SortingBin
}

// WaveLine demanda agregada por código de barras en toda la ola.
type WaveLine struct {
	ID          string
	WaveID      string
	Seq         int
	Barcode     string
	ProductID   string
	TotalQty    decimal.Decimal
	PickedQty   decimal.Decimal
	Status      WaveLineStatus
	Allocations []*WaveAllocation
}

// Remaining cantidad por recoger.
func (l *WaveLine) Remaining() decimal.Decimal {
	return l.TotalQty.Sub(l.PickedQty)
}

// WaveAllocation reserva (lote, ubicación) de una línea, en orden FEFO.
type WaveAllocation struct {
	ID           string
	WaveLineID   string
	Seq          int
	LotID        string
	LocationID   string
	AllocatedQty decimal.Decimal
	PickedQty    decimal.Decimal
}

// Remaining cantidad reservada aún no recogida.
func (a *WaveAllocation) Remaining() decimal.Decimal {
	return a.AllocatedQty.Sub(a.PickedQty)
}

// SortingBin destino de un pedido dentro de la ola.
type SortingBin struct {
	ID          string
	WaveID      string
	OrderID     string
	Status      BinStatus
	RequiredQty decimal.Decimal
	Lines       []SortingBinLine
}

// SortingBinLine requerimiento de un pedido para un código de barras.
type SortingBinLine struct {
	Barcode     string
	ProductID   string
	RequiredQty decimal.Decimal
}

// Required cantidad requerida por el pedido para barcode.
func (b *SortingBin) Required(barcode string) (decimal.Decimal, bool) {
	for _, l := range b.Lines {
		if l.Barcode == barcode {
			return l.RequiredQty, true
		}
	}
	return decimal.Zero, false
}

// WaveEventKind tipo de notificación posterior al commit.
type WaveEventKind string

const (
	WaveEventCreated   WaveEventKind = "wave.created"
	WaveEventStarted   WaveEventKind = "wave.started"
	WaveEventSorting   WaveEventKind = "wave.sorting"
	WaveEventCompleted WaveEventKind = "wave.completed"
	WaveEventDeleted   WaveEventKind = "wave.deleted"
)

// WaveEvent notificación que se emite después del commit.
type WaveEvent struct {
	Kind       WaveEventKind
	WaveID     string
	WaveNumber string
	Status     WaveStatus
	Actor      string
	At         time.Time
}
