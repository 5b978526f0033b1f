package wave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/ledger"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	domainwave "github.com/jhoicas/Inventario-wms/internal/domain/wave"
	"github.com/jhoicas/Inventario-wms/pkg/barcode"
	"github.com/shopspring/decimal"
)

// SortingScanInput lectura de clasificación hacia el bin de un pedido.
type SortingScanInput struct {
	RequestID string
	WaveID    string
	OrderID   string
	Barcode   string
	Quantity  decimal.Decimal
	UserID    string
}

// SortingScanResult respuesta de una lectura de clasificación.
type SortingScanResult struct {
	RequestID   string           `json:"request_id"`
	WaveID      string           `json:"wave_id"`
	OrderID     string           `json:"order_id"`
	Barcode     string           `json:"barcode"`
	Quantity    decimal.Decimal  `json:"quantity"`
	SortedQty   decimal.Decimal  `json:"sorted_qty"`
	RequiredQty decimal.Decimal  `json:"required_qty"`
	BinStatus   entity.BinStatus `json:"bin_status"`
	BinSorted   decimal.Decimal  `json:"bin_sorted_qty"`
	BinRequired decimal.Decimal  `json:"bin_required_qty"`
}

// SortingScan registra unidades clasificadas al bin del pedido. Nunca excede lo requerido por
// (pedido, código); cuando el bin completa su total pasa a DONE. No mueve stock.
func (uc *UseCase) SortingScan(ctx context.Context, in SortingScanInput) (*SortingScanResult, error) {
	code := barcode.Normalize(in.Barcode)
	if in.RequestID == "" || in.WaveID == "" || in.OrderID == "" || code == "" {
		uc.observer.ScanProcessed(ScanSorting, OutcomeRejected)
		return nil, domain.Invalid("request_id, wave_id, order_id y barcode son obligatorios")
	}
	if err := ledger.ValidateQuantity(in.Quantity); err != nil {
		uc.observer.ScanProcessed(ScanSorting, OutcomeRejected)
		return nil, err
	}

	var (
		out      *SortingScanResult
		replayed bool
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		prev, err := r.Scans.GetSortingScan(ctx, in.RequestID)
		if err != nil {
			return err
		}
		if prev != nil {
			out, err = decodeSorting(prev, in.WaveID)
			replayed = err == nil
			return err
		}

		w, err := r.Waves.GetByID(ctx, in.WaveID)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.NotFound("ola %s", in.WaveID)
		}
		if err := domainwave.RequireStatus(w, entity.WaveSorting); err != nil {
			return err
		}
		bin, err := r.Waves.GetBinForUpdate(ctx, w.ID, in.OrderID)
		if err != nil {
			return err
		}
		if bin == nil {
			return domain.NotFound("el pedido %s no pertenece a la ola %s", in.OrderID, w.Number)
		}
		required, ok := bin.Required(code)
		if !ok {
			return domain.NotFound("el pedido %s no requiere el código %s", in.OrderID, code)
		}
		sorted, err := r.Scans.SumSorted(ctx, w.ID, in.OrderID, code)
		if err != nil {
			return err
		}
		next := sorted.Add(in.Quantity)
		if next.GreaterThan(required) {
			return domain.Conflict("la clasificación de %s excede lo requerido (%s de %s)", code, next, required)
		}
		binSorted, err := r.Scans.SumSorted(ctx, w.ID, in.OrderID, "")
		if err != nil {
			return err
		}
		binSorted = binSorted.Add(in.Quantity)
		if bin.Status == entity.BinOpen && binSorted.GreaterThanOrEqual(bin.RequiredQty) {
			bin.Status = entity.BinDone
			if err := r.Waves.UpdateBin(ctx, bin); err != nil {
				return err
			}
		}

		res := &SortingScanResult{
			RequestID:   in.RequestID,
			WaveID:      w.ID,
			OrderID:     in.OrderID,
			Barcode:     code,
			Quantity:    in.Quantity,
			SortedQty:   next,
			RequiredQty: required,
			BinStatus:   bin.Status,
			BinSorted:   binSorted,
			BinRequired: bin.RequiredQty,
		}
		payload, err := json.Marshal(res)
		if err != nil {
			return err
		}
		if err := r.Scans.CreateSortingScan(ctx, &entity.SortingScan{
			ID:        uuid.New().String(),
			RequestID: in.RequestID,
			WaveID:    w.ID,
			OrderID:   in.OrderID,
			Barcode:   code,
			Quantity:  in.Quantity,
			CreatedBy: in.UserID,
			CreatedAt: uc.now(),
			Result:    payload,
		}); err != nil {
			return err
		}
		out = res
		return nil
	})
	if errors.Is(err, domain.ErrDuplicate) {
		out, err = uc.replaySorting(ctx, in)
		replayed = err == nil
	}
	if err != nil {
		uc.observer.ScanProcessed(ScanSorting, OutcomeRejected)
		return nil, err
	}
	if replayed {
		uc.log.Debug().Str("request_id", in.RequestID).Msg("lectura de clasificación repetida")
		uc.observer.ScanProcessed(ScanSorting, OutcomeReplayed)
		return out, nil
	}
	uc.observer.ScanProcessed(ScanSorting, OutcomeApplied)
	if out.BinStatus == entity.BinDone && out.BinSorted.Equal(out.BinRequired) {
		uc.log.Info().Str("wave_id", out.WaveID).Str("order_id", out.OrderID).Msg("bin completo")
	}
	return out, nil
}

func (uc *UseCase) replaySorting(ctx context.Context, in SortingScanInput) (*SortingScanResult, error) {
	var out *SortingScanResult
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		prev, err := r.Scans.GetSortingScan(ctx, in.RequestID)
		if err != nil {
			return err
		}
		if prev == nil {
			return domain.Conflict("lectura %s no encontrada tras conflicto", in.RequestID)
		}
		out, err = decodeSorting(prev, in.WaveID)
		return err
	})
	return out, err
}

func decodeSorting(prev *entity.SortingScan, waveID string) (*SortingScanResult, error) {
	if prev.WaveID != waveID {
		return nil, domain.Conflict("request_id %s ya se usó en otra ola", prev.RequestID)
	}
	var res SortingScanResult
	if err := json.Unmarshal(prev.Result, &res); err != nil {
		return nil, fmt.Errorf("sorting scan %s: %w", prev.RequestID, err)
	}
	return &res, nil
}
