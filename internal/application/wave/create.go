package wave

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/ledger"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	domainwave "github.com/jhoicas/Inventario-wms/internal/domain/wave"
	"github.com/jhoicas/Inventario-wms/pkg/barcode"
)

// CreateInput pedidos que forman la ola.
type CreateInput struct {
	OrderIDs []string
	Note     string
	UserID   string
}

// CreateResult ola creada en DRAFT y las líneas que no se pudieron resolver.
type CreateResult struct {
	Wave       *entity.Wave
	Unresolved []domainwave.Unresolved
}

// Create agrega la demanda de los pedidos por código de barras y crea la ola en DRAFT con una
// línea por código y un bin por pedido. No reserva stock.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	orderIDs := dedupe(in.OrderIDs)
	if len(orderIDs) == 0 {
		return nil, domain.Invalid("la ola necesita al menos un pedido")
	}

	var out *CreateResult
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		var lines []domainwave.ResolvedLine
		for _, orderID := range orderIDs {
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
			waveID, err := r.Waves.WaveIDForOrder(ctx, orderID)
			if err != nil {
				return err
			}
			if waveID != "" {
				return domain.Conflict("el pedido %s ya pertenece a una ola", order.Number)
			}
			posted, err := r.Movements.ExistsForDocument(ctx, entity.DocumentOrder, orderID, entity.MovementAllocate)
			if err != nil {
				return err
			}
			if posted {
				return domain.Conflict("el pedido %s ya tiene reservas directas", order.Number)
			}
			for _, l := range order.Lines {
				if err := ledger.ValidateQuantity(l.Quantity); err != nil {
					return err
				}
				resolved, err := resolveLine(ctx, r.Products, orderID, l)
				if err != nil {
					return err
				}
				lines = append(lines, resolved)
			}
		}

		demand := domainwave.Aggregate(orderIDs, lines)
		for _, u := range demand.Unresolved {
			uc.log.Warn().
				Str("order_id", u.OrderID).
				Str("barcode", u.Barcode).
				Str("sku", u.SKU).
				Str("reason", u.Reason).
				Msg("línea de pedido excluida de la ola")
		}
		if len(demand.Lines) == 0 {
			return domain.Invalid("ninguna línea de los pedidos se pudo resolver")
		}

		number, err := r.Waves.NextNumber(ctx)
		if err != nil {
			return err
		}
		now := uc.now()
		w := &entity.Wave{
			ID:        uuid.New().String(),
			Number:    number,
			Status:    entity.WaveDraft,
			Note:      in.Note,
			CreatedBy: in.UserID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		for i, d := range demand.Lines {
			w.Lines = append(w.Lines, &entity.WaveLine{
				ID:        uuid.New().String(),
				WaveID:    w.ID,
				Seq:       i + 1,
				Barcode:   d.Barcode,
				ProductID: d.ProductID,
				TotalQty:  d.Total,
				Status:    entity.LinePending,
			})
		}
		for _, b := range demand.Bins {
			// Un pedido sin líneas resueltas no tiene nada que clasificar.
			status := entity.BinOpen
			if !b.Total.IsPositive() {
				status = entity.BinDone
			}
			w.Bins = append(w.Bins, &entity.SortingBin{
				ID:          uuid.New().String(),
				WaveID:      w.ID,
				OrderID:     b.OrderID,
				Status:      status,
				RequiredQty: b.Total,
				Lines:       b.Lines,
			})
		}
		if err := r.Waves.Create(ctx, w); err != nil {
			return err
		}
		out = &CreateResult{Wave: w, Unresolved: demand.Unresolved}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("wave_id", out.Wave.ID).Str("number", out.Wave.Number).
		Int("lines", len(out.Wave.Lines)).Int("orders", len(out.Wave.Bins)).Msg("ola creada")
	uc.emit(ctx, entity.WaveEventCreated, out.Wave, in.UserID)
	return out, nil
}

// resolveLine obtiene el código de barras de la línea y todos los productos asociados a él.
// Sin código se usa el SKU o el producto declarado para tomar el código principal del producto.
func resolveLine(ctx context.Context, products repository.ProductRepository, orderID string, l entity.OrderLine) (domainwave.ResolvedLine, error) {
	out := domainwave.ResolvedLine{
		OrderID:  orderID,
		Barcode:  barcode.Normalize(l.Barcode),
		SKU:      barcode.NormalizeSKU(l.SKU),
		Quantity: l.Quantity,
	}
	if out.Barcode != "" {
		ids, err := products.ResolveBarcode(ctx, out.Barcode)
		if err != nil {
			return out, err
		}
		out.ProductIDs = appendUnique(ids, l.ProductID)
		return out, nil
	}

	productID := l.ProductID
	if productID == "" && out.SKU != "" {
		id, err := products.ResolveSKU(ctx, out.SKU)
		if err != nil {
			return out, err
		}
		productID = id
	}
	if productID == "" {
		return out, nil
	}
	p, err := products.GetByID(ctx, productID)
	if err != nil {
		return out, err
	}
	if p == nil || len(p.Barcodes) == 0 {
		return out, nil
	}
	out.Barcode = barcode.Normalize(p.Barcodes[0])
	ids, err := products.ResolveBarcode(ctx, out.Barcode)
	if err != nil {
		return out, err
	}
	out.ProductIDs = appendUnique(ids, productID)
	return out, nil
}

func appendUnique(ids []string, id string) []string {
	if id == "" {
		return ids
	}
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
