package dto

import (
	"time"

	"github.com/jhoicas/Inventario-wms/internal/application/inventory"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ReceiptRequest body para POST /api/inventory/receipts.
type ReceiptRequest struct {
	ProductID  string          `json:"product_id"`
	Batch      string          `json:"batch"`
	ExpiryDate *string         `json:"expiry_date,omitempty"` // YYYY-MM-DD
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	DocumentID string          `json:"document_id"`
	Opening    bool            `json:"opening_balance"`
}

// AdjustRequest body para POST /api/inventory/adjustments.
type AdjustRequest struct {
	ProductID  string          `json:"product_id"`
	LotID      string          `json:"lot_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	DocumentID string          `json:"document_id"`
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	ProductID      string          `json:"product_id"`
	LotID          string          `json:"lot_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Putaway        bool            `json:"putaway"`
	DocumentID     string          `json:"document_id"`
}

// MovementResponse fila del libro.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	LotID         string          `json:"lot_id"`
	LocationID    string          `json:"location_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Type          string          `json:"type"`
	SourceDocType string          `json:"source_doc_type,omitempty"`
	SourceDocID   string          `json:"source_doc_id,omitempty"`
	CreatedBy     string          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReceiptResponse lote usado y movimiento registrado.
type ReceiptResponse struct {
	LotID      string           `json:"lot_id"`
	LotCreated bool             `json:"lot_created"`
	Movement   MovementResponse `json:"movement"`
}

// MovementListResponse página del libro.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// BalanceResponse saldo derivado del libro.
type BalanceResponse struct {
	ProductID  string          `json:"product_id"`
	LotID      string          `json:"lot_id,omitempty"`
	LocationID string          `json:"location_id,omitempty"`
	OnHand     decimal.Decimal `json:"on_hand"`
	Reserved   decimal.Decimal `json:"reserved"`
	Available  decimal.Decimal `json:"available"`
}

// DiscrepancyResponse diferencia libro vs proyección.
type DiscrepancyResponse struct {
	LotID             string          `json:"lot_id"`
	LocationID        string          `json:"location_id"`
	LedgerOnHand      decimal.Decimal `json:"ledger_on_hand"`
	LedgerReserved    decimal.Decimal `json:"ledger_reserved"`
	ProjectedOnHand   decimal.Decimal `json:"projected_on_hand"`
	ProjectedReserved decimal.Decimal `json:"projected_reserved"`
}

// AllocateOrderRequest body para POST /api/orders/:id/allocate. Nil usa el modo configurado.
type AllocateOrderRequest struct {
	AllOrNothing *bool `json:"all_or_nothing,omitempty"`
}

// ReservationResponse reserva emitida.
type ReservationResponse struct {
	LotID        string          `json:"lot_id"`
	LocationID   string          `json:"location_id"`
	LocationCode string          `json:"location_code"`
	ExpiryDate   *string         `json:"expiry_date,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// AllocationLineResponse resultado por línea del pedido.
type AllocationLineResponse struct {
	ProductID    string                `json:"product_id"`
	Required     decimal.Decimal       `json:"required"`
	Allocated    decimal.Decimal       `json:"allocated"`
	Shortage     decimal.Decimal       `json:"shortage"`
	Reservations []ReservationResponse `json:"reservations"`
}

// AllocateOrderResponse resultado de la asignación directa.
type AllocateOrderResponse struct {
	OrderID   string                   `json:"order_id"`
	Committed bool                     `json:"committed"`
	Lines     []AllocationLineResponse `json:"lines"`
}

// FromMovement mapea un movimiento del libro.
func FromMovement(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		LotID:         m.LotID,
		LocationID:    m.LocationID,
		Quantity:      m.Quantity,
		Type:          string(m.Type),
		SourceDocType: m.SourceDocType,
		SourceDocID:   m.SourceDocID,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

// FromMovements mapea una lista (nunca nil, para serializar []).
func FromMovements(list []*entity.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// FromDiscrepancies mapea el resultado de la reconciliación.
func FromDiscrepancies(list []inventory.Discrepancy) []DiscrepancyResponse {
	out := make([]DiscrepancyResponse, 0, len(list))
	for _, d := range list {
		out = append(out, DiscrepancyResponse{
			LotID:             d.Key.LotID,
			LocationID:        d.Key.LocationID,
			LedgerOnHand:      d.Ledger.OnHand,
			LedgerReserved:    d.Ledger.Reserved,
			ProjectedOnHand:   d.Projected.OnHand,
			ProjectedReserved: d.Projected.Reserved,
		})
	}
	return out
}

// FromOrderAllocation mapea el resultado de AllocateForOrder.
func FromOrderAllocation(r *inventory.OrderAllocationResult) AllocateOrderResponse {
	out := AllocateOrderResponse{OrderID: r.OrderID, Committed: r.Committed, Lines: make([]AllocationLineResponse, 0, len(r.Lines))}
	for _, l := range r.Lines {
		line := AllocationLineResponse{
			ProductID:    l.ProductID,
			Required:     l.Required,
			Allocated:    l.Allocated,
			Shortage:     l.Shortage,
			Reservations: make([]ReservationResponse, 0, len(l.Reservations)),
		}
		for _, rsv := range l.Reservations {
			line.Reservations = append(line.Reservations, ReservationResponse{
				LotID:        rsv.LotID,
				LocationID:   rsv.LocationID,
				LocationCode: rsv.LocationCode,
				ExpiryDate:   FormatDate(rsv.ExpiryDate),
				Quantity:     rsv.Quantity,
			})
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}

// DateLayout formato de fechas de vencimiento en la API.
const DateLayout = "2006-01-02"

// ParseDate interpreta YYYY-MM-DD; nil o vacío = sin vencimiento.
func ParseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate inverso de ParseDate.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
