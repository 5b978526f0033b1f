package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/ledger"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/jhoicas/Inventario-wms/pkg/barcode"
	"github.com/shopspring/decimal"
)

// RegisterMovementUseCase registra recepciones, ajustes, traslados y saldos iniciales de forma
// transaccional. Toda escritura pasa por el Recorder.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	recorder *Recorder
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, recorder *Recorder) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, recorder: recorder}
}

// ReceiptInput entrada de una recepción. ExpiryDate nil = producto no perecedero.
type ReceiptInput struct {
	ProductID  string
	Batch      string
	ExpiryDate *time.Time
	LocationID string
	Quantity   decimal.Decimal
	DocumentID string
	UserID     string
	Opening    bool // registra opening_balance en lugar de receipt
}

// ReceiptResult lote usado y movimiento creado.
type ReceiptResult struct {
	Lot        *entity.Lot
	LotCreated bool
	Movement   *entity.StockMovement
}

// Receive busca o crea el lote (producto, batch, vencimiento) y registra la entrada.
func (uc *RegisterMovementUseCase) Receive(ctx context.Context, in ReceiptInput) (*ReceiptResult, error) {
	if in.ProductID == "" || in.LocationID == "" {
		return nil, domain.Invalid("product_id y location_id son obligatorios")
	}
	if err := ledger.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	batch := barcode.Normalize(in.Batch)
	if batch == "" {
		return nil, domain.Invalid("batch es obligatorio")
	}
	expiry := entity.NormalizeExpiry(in.ExpiryDate)
	movType := entity.MovementReceipt
	if in.Opening {
		movType = entity.MovementOpeningBalance
	}

	var out ReceiptResult
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto %s", in.ProductID)
		}
		lot, created, err := r.Lots.FindOrCreate(ctx, in.ProductID, batch, expiry)
		if err != nil {
			return err
		}
		mov := &entity.StockMovement{
			TransactionID: uuid.New().String(),
			ProductID:     in.ProductID,
			LotID:         lot.ID,
			LocationID:    in.LocationID,
			Quantity:      in.Quantity,
			Type:          movType,
			SourceDocType: entity.DocumentReceipt,
			SourceDocID:   in.DocumentID,
			CreatedBy:     in.UserID,
		}
		if err := uc.recorder.Record(ctx, r, mov); err != nil {
			return err
		}
		out = ReceiptResult{Lot: lot, LotCreated: created, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdjustInput ajuste con signo sobre un (lote, ubicación) existente.
type AdjustInput struct {
	ProductID  string
	LotID      string
	LocationID string
	Quantity   decimal.Decimal // positivo suma, negativo resta
	DocumentID string
	UserID     string
}

// Adjust registra un ajuste. Un ajuste negativo no puede dejar el disponible bajo cero.
func (uc *RegisterMovementUseCase) Adjust(ctx context.Context, in AdjustInput) (*entity.StockMovement, error) {
	if in.Quantity.IsZero() {
		return nil, domain.Invalid("la cantidad no puede ser cero")
	}
	if err := ledger.ValidateQuantity(in.Quantity.Abs()); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		TransactionID: uuid.New().String(),
		ProductID:     in.ProductID,
		LotID:         in.LotID,
		LocationID:    in.LocationID,
		Quantity:      in.Quantity,
		Type:          entity.MovementAdjust,
		SourceDocType: entity.DocumentAdjustment,
		SourceDocID:   in.DocumentID,
		CreatedBy:     in.UserID,
	}
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		return uc.recorder.Record(ctx, r, mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// TransferInput traslado de un lote entre ubicaciones. Putaway usa el tipo putaway en ambas filas.
type TransferInput struct {
	ProductID      string
	LotID          string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal
	Putaway        bool
	DocumentID     string
	UserID         string
}

// Transfer resta en origen y suma en destino en la misma transacción; ambas filas comparten TransactionID.
func (uc *RegisterMovementUseCase) Transfer(ctx context.Context, in TransferInput) ([]*entity.StockMovement, error) {
	if in.FromLocationID == "" || in.ToLocationID == "" || in.FromLocationID == in.ToLocationID {
		return nil, domain.Invalid("ubicaciones de origen y destino deben ser distintas")
	}
	if err := ledger.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	outType, inType := entity.MovementTransferOut, entity.MovementTransferIn
	if in.Putaway {
		outType, inType = entity.MovementPutaway, entity.MovementPutaway
	}
	txID := uuid.New().String()
	outMov := &entity.StockMovement{
		TransactionID: txID, ProductID: in.ProductID, LotID: in.LotID, LocationID: in.FromLocationID,
		Quantity: in.Quantity.Neg(), Type: outType,
		SourceDocType: entity.DocumentTransfer, SourceDocID: in.DocumentID, CreatedBy: in.UserID,
	}
	inMov := &entity.StockMovement{
		TransactionID: txID, ProductID: in.ProductID, LotID: in.LotID, LocationID: in.ToLocationID,
		Quantity: in.Quantity, Type: inType,
		SourceDocType: entity.DocumentTransfer, SourceDocID: in.DocumentID, CreatedBy: in.UserID,
	}
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if err := uc.recorder.Record(ctx, r, outMov); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r, inMov)
	})
	if err != nil {
		return nil, err
	}
	return []*entity.StockMovement{outMov, inMov}, nil
}
