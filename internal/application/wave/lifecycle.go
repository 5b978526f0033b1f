package wave

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-wms/internal/application/inventory"
	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	domainwave "github.com/jhoicas/Inventario-wms/internal/domain/wave"
)

// Start reserva FEFO cada línea de la ola y la pasa a PICKING. Si alguna línea no se cubre
// completa se devuelve *domain.ShortageError y no queda ninguna reserva escrita.
func (uc *UseCase) Start(ctx context.Context, waveID, userID string) (*entity.Wave, error) {
	if waveID == "" {
		return nil, domain.Invalid("wave_id es obligatorio")
	}
	var out *entity.Wave
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		w, err := uc.loadForUpdate(ctx, r, waveID)
		if err != nil {
			return err
		}
		if err := domainwave.RequireStatus(w, entity.WaveDraft); err != nil {
			return err
		}
		lines, err := r.Waves.ListLines(ctx, w.ID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			res, err := uc.allocator.AllocateInTx(ctx, r, inventory.AllocationRequest{
				ProductID: line.ProductID,
				Quantity:  line.TotalQty,
				DocType:   entity.DocumentWave,
				DocID:     w.ID,
				UserID:    userID,
			})
			if err != nil {
				return err
			}
			if res.Shortage.IsPositive() {
				return &domain.ShortageError{
					Barcode:   line.Barcode,
					ProductID: line.ProductID,
					Required:  res.Required,
					Allocated: res.Allocated,
				}
			}
			allocations := make([]*entity.WaveAllocation, 0, len(res.Reservations))
			for i, rsv := range res.Reservations {
				allocations = append(allocations, &entity.WaveAllocation{
					ID:           uuid.New().String(),
					WaveLineID:   line.ID,
					Seq:          i + 1,
					LotID:        rsv.LotID,
					LocationID:   rsv.LocationID,
					AllocatedQty: rsv.Quantity,
				})
			}
			if err := r.Waves.CreateAllocations(ctx, allocations); err != nil {
				return err
			}
			line.Allocations = allocations
		}
		if err := domainwave.Transition(w, entity.WavePicking); err != nil {
			return err
		}
		w.UpdatedAt = uc.now()
		if err := r.Waves.UpdateStatus(ctx, w); err != nil {
			return err
		}
		w.Lines = lines
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("wave_id", out.ID).Str("number", out.Number).Msg("ola en picking")
	uc.observer.WaveTransition(out.Status)
	uc.emit(ctx, entity.WaveEventStarted, out, userID)
	return out, nil
}

// Complete cierra la ola. Exige SORTING y todos los bins en DONE.
func (uc *UseCase) Complete(ctx context.Context, waveID, userID string) (*entity.Wave, error) {
	if waveID == "" {
		return nil, domain.Invalid("wave_id es obligatorio")
	}
	var out *entity.Wave
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		w, err := uc.loadForUpdate(ctx, r, waveID)
		if err != nil {
			return err
		}
		if err := domainwave.RequireStatus(w, entity.WaveSorting); err != nil {
			return err
		}
		open, err := r.Waves.CountOpenBins(ctx, w.ID)
		if err != nil {
			return err
		}
		if open > 0 {
			return domain.Conflict("la ola %s tiene %d bins sin completar", w.Number, open)
		}
		if err := domainwave.Transition(w, entity.WaveCompleted); err != nil {
			return err
		}
		now := uc.now()
		w.UpdatedAt = now
		w.CompletedAt = &now
		if err := r.Waves.UpdateStatus(ctx, w); err != nil {
			return err
		}
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("wave_id", out.ID).Str("number", out.Number).Msg("ola completada")
	uc.observer.WaveTransition(out.Status)
	uc.emit(ctx, entity.WaveEventCompleted, out, userID)
	return out, nil
}

// Delete elimina una ola en DRAFT. En cualquier otro estado ya hay reservas o lecturas.
func (uc *UseCase) Delete(ctx context.Context, waveID, userID string) error {
	if waveID == "" {
		return domain.Invalid("wave_id es obligatorio")
	}
	var deleted *entity.Wave
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		w, err := uc.loadForUpdate(ctx, r, waveID)
		if err != nil {
			return err
		}
		if !domainwave.Deletable(w) {
			return domain.Conflict("la ola %s está en %s y no se puede eliminar", w.Number, w.Status)
		}
		if err := r.Waves.Delete(ctx, w.ID); err != nil {
			return err
		}
		deleted = w
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("wave_id", deleted.ID).Str("number", deleted.Number).Msg("ola eliminada")
	uc.emit(ctx, entity.WaveEventDeleted, deleted, userID)
	return nil
}
