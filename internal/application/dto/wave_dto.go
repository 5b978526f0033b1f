package dto

import (
	"time"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	domainwave "github.com/jhoicas/Inventario-wms/internal/domain/wave"
	"github.com/shopspring/decimal"
)

// CreateWaveRequest body para POST /api/waves.
type CreateWaveRequest struct {
	OrderIDs []string `json:"order_ids"`
	Note     string   `json:"note"`
}

// PickScanRequest body para POST /api/waves/:id/pick-scans.
type PickScanRequest struct {
	RequestID string          `json:"request_id"`
	Barcode   string          `json:"barcode"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// SortingScanRequest body para POST /api/waves/:id/sorting-scans.
type SortingScanRequest struct {
	RequestID string          `json:"request_id"`
	OrderID   string          `json:"order_id"`
	Barcode   string          `json:"barcode"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// WaveAllocationResponse reserva de una línea.
type WaveAllocationResponse struct {
	ID           string          `json:"id"`
	Seq          int             `json:"seq"`
	LotID        string          `json:"lot_id"`
	LocationID   string          `json:"location_id"`
	AllocatedQty decimal.Decimal `json:"allocated_qty"`
	PickedQty    decimal.Decimal `json:"picked_qty"`
}

// WaveLineResponse demanda agregada por código.
type WaveLineResponse struct {
	ID          string                   `json:"id"`
	Seq         int                      `json:"seq"`
	Barcode     string                   `json:"barcode"`
	ProductID   string                   `json:"product_id"`
	TotalQty    decimal.Decimal          `json:"total_qty"`
	PickedQty   decimal.Decimal          `json:"picked_qty"`
	Status      string                   `json:"status"`
	Allocations []WaveAllocationResponse `json:"allocations"`
}

// SortingBinLineResponse requerimiento por código dentro de un bin.
type SortingBinLineResponse struct {
	Barcode     string          `json:"barcode"`
	ProductID   string          `json:"product_id"`
	RequiredQty decimal.Decimal `json:"required_qty"`
}

// SortingBinResponse bin de un pedido.
type SortingBinResponse struct {
	ID          string                   `json:"id"`
	OrderID     string                   `json:"order_id"`
	Status      string                   `json:"status"`
	RequiredQty decimal.Decimal          `json:"required_qty"`
	Lines       []SortingBinLineResponse `json:"lines"`
}

// WaveResponse ola con su detalle.
type WaveResponse struct {
	ID          string               `json:"id"`
	Number      string               `json:"number"`
	Status      string               `json:"status"`
	Note        string               `json:"note,omitempty"`
	CreatedBy   string               `json:"created_by,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
	Lines       []WaveLineResponse   `json:"lines"`
	Bins        []SortingBinResponse `json:"bins"`
}

// UnresolvedLineResponse línea de pedido que quedó fuera de la ola.
type UnresolvedLineResponse struct {
	OrderID string `json:"order_id"`
	Barcode string `json:"barcode,omitempty"`
	SKU     string `json:"sku,omitempty"`
	Reason  string `json:"reason"`
}

// CreateWaveResponse ola creada y líneas descartadas.
type CreateWaveResponse struct {
	Wave       WaveResponse             `json:"wave"`
	Unresolved []UnresolvedLineResponse `json:"unresolved"`
}

// ShortageDetail detalle de INSUFFICIENT_STOCK.
type ShortageDetail struct {
	Barcode   string          `json:"barcode"`
	ProductID string          `json:"product_id"`
	Required  decimal.Decimal `json:"required"`
	Allocated decimal.Decimal `json:"allocated"`
	Shortage  decimal.Decimal `json:"shortage"`
}

// FromWave mapea la ola; las colecciones vacías se serializan como [].
func FromWave(w *entity.Wave) WaveResponse {
	out := WaveResponse{
		ID:          w.ID,
		Number:      w.Number,
		Status:      string(w.Status),
		Note:        w.Note,
		CreatedBy:   w.CreatedBy,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
		CompletedAt: w.CompletedAt,
		Lines:       make([]WaveLineResponse, 0, len(w.Lines)),
		Bins:        make([]SortingBinResponse, 0, len(w.Bins)),
	}
	for _, l := range w.Lines {
		line := WaveLineResponse{
			ID:          l.ID,
			Seq:         l.Seq,
			Barcode:     l.Barcode,
			ProductID:   l.ProductID,
			TotalQty:    l.TotalQty,
			PickedQty:   l.PickedQty,
			Status:      string(l.Status),
			Allocations: make([]WaveAllocationResponse, 0, len(l.Allocations)),
		}
		for _, a := range l.Allocations {
			line.Allocations = append(line.Allocations, WaveAllocationResponse{
				ID:           a.ID,
				Seq:          a.Seq,
				LotID:        a.LotID,
				LocationID:   a.LocationID,
				AllocatedQty: a.AllocatedQty,
				PickedQty:    a.PickedQty,
			})
		}
		out.Lines = append(out.Lines, line)
	}
	for _, b := range w.Bins {
		bin := SortingBinResponse{
			ID:          b.ID,
			OrderID:     b.OrderID,
			Status:      string(b.Status),
			RequiredQty: b.RequiredQty,
			Lines:       make([]SortingBinLineResponse, 0, len(b.Lines)),
		}
		for _, bl := range b.Lines {
			bin.Lines = append(bin.Lines, SortingBinLineResponse{
				Barcode: bl.Barcode, ProductID: bl.ProductID, RequiredQty: bl.RequiredQty,
			})
		}
		out.Bins = append(out.Bins, bin)
	}
	return out
}

// FromUnresolved mapea las líneas descartadas al crear la ola.
func FromUnresolved(list []domainwave.Unresolved) []UnresolvedLineResponse {
	out := make([]UnresolvedLineResponse, 0, len(list))
	for _, u := range list {
		out = append(out, UnresolvedLineResponse{OrderID: u.OrderID, Barcode: u.Barcode, SKU: u.SKU, Reason: u.Reason})
	}
	return out
}
