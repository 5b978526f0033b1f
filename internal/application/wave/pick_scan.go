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

// PickScanInput lectura del recolector. RequestID la genera el dispositivo y se reusa en reintentos.
type PickScanInput struct {
	RequestID string
	WaveID    string
	Barcode   string
	Quantity  decimal.Decimal
	UserID    string
}

// PickConsumption parte de la lectura tomada de una reserva.
type PickConsumption struct {
	AllocationID string          `json:"allocation_id"`
	LotID        string          `json:"lot_id"`
	LocationID   string          `json:"location_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// PickScanResult respuesta de una lectura. Se guarda serializada y se devuelve idéntica en reintentos.
type PickScanResult struct {
	RequestID  string                `json:"request_id"`
	WaveID     string                `json:"wave_id"`
	WaveStatus entity.WaveStatus     `json:"wave_status"`
	LineID     string                `json:"line_id"`
	Barcode    string                `json:"barcode"`
	Quantity   decimal.Decimal       `json:"quantity"`
	PickedQty  decimal.Decimal       `json:"picked_qty"`
	TotalQty   decimal.Decimal       `json:"total_qty"`
	LineStatus entity.WaveLineStatus `json:"line_status"`
	Consumed   []PickConsumption     `json:"consumed"`
}

// PickScan aplica una lectura de recolección. Consume las reservas de la línea en orden FEFO,
// mueve el stock a staging y, cuando la última línea queda completa, pasa la ola a SORTING.
// Un request_id ya aplicado devuelve el resultado original sin volver a escribir.
func (uc *UseCase) PickScan(ctx context.Context, in PickScanInput) (*PickScanResult, error) {
	code := barcode.Normalize(in.Barcode)
	if in.RequestID == "" || in.WaveID == "" || code == "" {
		uc.observer.ScanProcessed(ScanPick, OutcomeRejected)
		return nil, domain.Invalid("request_id, wave_id y barcode son obligatorios")
	}
	if err := ledger.ValidateQuantity(in.Quantity); err != nil {
		uc.observer.ScanProcessed(ScanPick, OutcomeRejected)
		return nil, err
	}

	var (
		out      *PickScanResult
		replayed bool
		sorting  *entity.Wave
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		prev, err := r.Scans.GetPickScan(ctx, in.RequestID)
		if err != nil {
			return err
		}
		if prev != nil {
			out, err = decodePick(prev, in.WaveID)
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
		if err := domainwave.RequireStatus(w, entity.WavePicking); err != nil {
			return err
		}
		staging, err := uc.stagingLocation(ctx, r)
		if err != nil {
			return err
		}
		line, err := r.Waves.GetLineForUpdate(ctx, w.ID, code)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.NotFound("el código %s no pertenece a la ola %s", code, w.Number)
		}
		if in.Quantity.GreaterThan(line.Remaining()) {
			return domain.Conflict("la lectura de %s excede lo pendiente (%s)", in.Quantity, line.Remaining())
		}

		res := &PickScanResult{
			RequestID: in.RequestID,
			WaveID:    w.ID,
			LineID:    line.ID,
			Barcode:   code,
			Quantity:  in.Quantity,
		}
		txID := uuid.New().String()
		remaining := in.Quantity
		for _, a := range line.Allocations {
			if !remaining.IsPositive() {
				break
			}
			take := decimal.Min(a.Remaining(), remaining)
			if !take.IsPositive() {
				continue
			}
			if err := uc.moveToStaging(ctx, r, txID, line, a, staging, take, in.UserID); err != nil {
				return err
			}
			a.PickedQty = a.PickedQty.Add(take)
			if err := r.Waves.UpdateAllocation(ctx, a); err != nil {
				return err
			}
			res.Consumed = append(res.Consumed, PickConsumption{
				AllocationID: a.ID, LotID: a.LotID, LocationID: a.LocationID, Quantity: take,
			})
			remaining = remaining.Sub(take)
		}
		if remaining.IsPositive() {
			return fmt.Errorf("wave line %s: reservas insuficientes para %s", line.ID, remaining)
		}

		line.PickedQty = line.PickedQty.Add(in.Quantity)
		if line.PickedQty.Equal(line.TotalQty) {
			line.Status = entity.LinePicked
		}
		if err := r.Waves.UpdateLine(ctx, line); err != nil {
			return err
		}

		res.WaveStatus = w.Status
		if line.Status == entity.LinePicked {
			// Bloquea la cabecera para que solo una lectura haga la transición.
			locked, err := uc.loadForUpdate(ctx, r, w.ID)
			if err != nil {
				return err
			}
			pending, err := r.Waves.CountPendingLines(ctx, w.ID)
			if err != nil {
				return err
			}
			if pending == 0 && locked.Status == entity.WavePicking {
				if err := domainwave.Transition(locked, entity.WaveSorting); err != nil {
					return err
				}
				locked.UpdatedAt = uc.now()
				if err := r.Waves.UpdateStatus(ctx, locked); err != nil {
					return err
				}
				sorting = locked
			}
			res.WaveStatus = locked.Status
		}
		res.PickedQty = line.PickedQty
		res.TotalQty = line.TotalQty
		res.LineStatus = line.Status

		payload, err := json.Marshal(res)
		if err != nil {
			return err
		}
		if err := r.Scans.CreatePickScan(ctx, &entity.PickScan{
			ID:         uuid.New().String(),
			RequestID:  in.RequestID,
			WaveID:     w.ID,
			WaveLineID: line.ID,
			Barcode:    code,
			Quantity:   in.Quantity,
			CreatedBy:  in.UserID,
			CreatedAt:  uc.now(),
			Result:     payload,
		}); err != nil {
			return err
		}
		out = res
		return nil
	})
	if errors.Is(err, domain.ErrDuplicate) {
		// Otra transacción aplicó el mismo request_id primero; la nuestra se revirtió.
		out, err = uc.replayPick(ctx, in)
		replayed = err == nil
	}
	if err != nil {
		uc.observer.ScanProcessed(ScanPick, OutcomeRejected)
		return nil, err
	}
	if replayed {
		uc.log.Debug().Str("request_id", in.RequestID).Msg("lectura de picking repetida")
		uc.observer.ScanProcessed(ScanPick, OutcomeReplayed)
		return out, nil
	}
	uc.observer.ScanProcessed(ScanPick, OutcomeApplied)
	if sorting != nil {
		uc.log.Info().Str("wave_id", sorting.ID).Str("number", sorting.Number).Msg("ola en sorting")
		uc.observer.WaveTransition(sorting.Status)
		uc.emit(ctx, entity.WaveEventSorting, sorting, in.UserID)
	}
	return out, nil
}

// moveToStaging libera la reserva y traslada la cantidad del origen a staging.
func (uc *UseCase) moveToStaging(ctx context.Context, r repository.Repos, txID string, line *entity.WaveLine, a *entity.WaveAllocation, staging *entity.Location, qty decimal.Decimal, userID string) error {
	base := entity.StockMovement{
		TransactionID: txID,
		ProductID:     line.ProductID,
		LotID:         a.LotID,
		SourceDocType: entity.DocumentWave,
		SourceDocID:   line.WaveID,
		CreatedBy:     userID,
	}
	unallocate := base
	unallocate.LocationID, unallocate.Quantity, unallocate.Type = a.LocationID, qty.Neg(), entity.MovementUnallocate
	out := base
	out.LocationID, out.Quantity, out.Type = a.LocationID, qty.Neg(), entity.MovementTransferOut
	in := base
	in.LocationID, in.Quantity, in.Type = staging.ID, qty, entity.MovementTransferIn

	for _, m := range []*entity.StockMovement{&unallocate, &out, &in} {
		if err := uc.recorder.Record(ctx, r, m); err != nil {
			return err
		}
	}
	return nil
}

func (uc *UseCase) stagingLocation(ctx context.Context, r repository.Repos) (*entity.Location, error) {
	loc, err := r.Locations.GetByCode(ctx, uc.stagingCode)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.NotFound("ubicación de staging %s", uc.stagingCode)
	}
	if loc.Zone != entity.ZoneStaging {
		return nil, domain.Conflict("la ubicación %s no es de zona STAGING", loc.Code)
	}
	return loc, nil
}

func (uc *UseCase) replayPick(ctx context.Context, in PickScanInput) (*PickScanResult, error) {
	var out *PickScanResult
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		prev, err := r.Scans.GetPickScan(ctx, in.RequestID)
		if err != nil {
			return err
		}
		if prev == nil {
			return domain.Conflict("lectura %s no encontrada tras conflicto", in.RequestID)
		}
		out, err = decodePick(prev, in.WaveID)
		return err
	})
	return out, err
}

func decodePick(prev *entity.PickScan, waveID string) (*PickScanResult, error) {
	if prev.WaveID != waveID {
		return nil, domain.Conflict("request_id %s ya se usó en otra ola", prev.RequestID)
	}
	var res PickScanResult
	if err := json.Unmarshal(prev.Result, &res); err != nil {
		return nil, fmt.Errorf("pick scan %s: %w", prev.RequestID, err)
	}
	return &res, nil
}
