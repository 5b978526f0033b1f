package inventory

import (
	"context"
	"errors"

	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/jhoicas/Inventario-wms/pkg/barcode"
	"github.com/shopspring/decimal"
)

// errRollbackShortage revierte la transacción en modo todo-o-nada.
var errRollbackShortage = errors.New("rollback por faltante")

// OrderAllocationResult reservas por línea y faltantes del pedido.
// Committed es false cuando el modo todo-o-nada descartó las reservas.
type OrderAllocationResult struct {
	OrderID   string
	Lines     []AllocationResult
	Shortages []LineShortage
	Committed bool
}

// LineShortage faltante de una línea del pedido.
type LineShortage struct {
	LineIndex int
	ProductID string
	Required  decimal.Decimal
	Shortage  decimal.Decimal
}

// AllocateOrderUseCase asignación directa pedido → documento, sin ola.
type AllocateOrderUseCase struct {
	txRunner     TxRunner
	allocator    *Allocator
	allOrNothing bool
}

// NewAllocateOrderUseCase construye el caso de uso. allOrNothing es el modo por defecto
// cuando el caller no lo indica.
func NewAllocateOrderUseCase(txRunner TxRunner, allocator *Allocator, allOrNothing bool) *AllocateOrderUseCase {
	return &AllocateOrderUseCase{txRunner: txRunner, allocator: allocator, allOrNothing: allOrNothing}
}

// AllocateForOrder reserva FEFO cada línea del pedido. Un pedido que ya tiene reservas,
// documento de picking o pertenece a una ola se rechaza con ErrConflict.
func (uc *AllocateOrderUseCase) AllocateForOrder(ctx context.Context, orderID, userID string, allOrNothing *bool) (*OrderAllocationResult, error) {
	if orderID == "" {
		return nil, domain.Invalid("order_id es obligatorio")
	}
	strict := uc.allOrNothing
	if allOrNothing != nil {
		strict = *allOrNothing
	}

	var out *OrderAllocationResult
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		out = &OrderAllocationResult{OrderID: orderID}
		order, err := r.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NotFound("pedido %s", orderID)
		}
		if order.HasPickingDocument {
			return domain.Conflict("el pedido %s ya tiene documento de picking", order.Number)
		}
		posted, err := r.Movements.ExistsForDocument(ctx, entity.DocumentOrder, orderID, entity.MovementAllocate)
		if err != nil {
			return err
		}
		if posted {
			return domain.Conflict("el pedido %s ya tiene reservas", order.Number)
		}
		waveID, err := r.Waves.WaveIDForOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if waveID != "" {
			return domain.Conflict("el pedido %s pertenece a una ola", order.Number)
		}
		if len(order.Lines) == 0 {
			return domain.Invalid("el pedido %s no tiene líneas", order.Number)
		}

		for i, line := range order.Lines {
			productID, err := resolveLineProduct(ctx, r.Products, line)
			if err != nil {
				return err
			}
			res, err := uc.allocator.AllocateInTx(ctx, r, AllocationRequest{
				ProductID: productID,
				Quantity:  line.Quantity,
				DocType:   entity.DocumentOrder,
				DocID:     orderID,
				UserID:    userID,
			})
			if err != nil {
				return err
			}
			out.Lines = append(out.Lines, *res)
			if res.Shortage.IsPositive() {
				out.Shortages = append(out.Shortages, LineShortage{
					LineIndex: i, ProductID: productID, Required: res.Required, Shortage: res.Shortage,
				})
			}
		}
		if strict && len(out.Shortages) > 0 {
			return errRollbackShortage
		}
		return nil
	})
	if errors.Is(err, errRollbackShortage) {
		// Nada quedó escrito: las líneas reportan lo que se habría asignado, sin reservas.
		for i := range out.Lines {
			out.Lines[i].Reservations = nil
		}
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	out.Committed = true
	return out, nil
}

// resolveLineProduct producto declarado, o por código de barras (único), o por SKU.
func resolveLineProduct(ctx context.Context, products repository.ProductRepository, line entity.OrderLine) (string, error) {
	if line.ProductID != "" {
		p, err := products.GetByID(ctx, line.ProductID)
		if err != nil {
			return "", err
		}
		if p == nil {
			return "", domain.NotFound("producto %s", line.ProductID)
		}
		return p.ID, nil
	}
	if code := barcode.Normalize(line.Barcode); code != "" {
		ids, err := products.ResolveBarcode(ctx, code)
		if err != nil {
			return "", err
		}
		switch len(ids) {
		case 0:
			return "", domain.NotFound("código de barras %s", code)
		case 1:
			return ids[0], nil
		default:
			return "", domain.Conflict("el código de barras %s corresponde a varios productos", code)
		}
	}
	if sku := barcode.NormalizeSKU(line.SKU); sku != "" {
		id, err := products.ResolveSKU(ctx, sku)
		if err != nil {
			return "", err
		}
		if id == "" {
			return "", domain.NotFound("SKU %s", sku)
		}
		return id, nil
	}
	return "", domain.Invalid("línea sin producto, código de barras ni SKU")
}
