// Package wave casos de uso del ciclo de vida de una ola: creación, inicio (asignación FEFO),
// recolección, clasificación, cierre y eliminación.
package wave

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-wms/internal/application/inventory"
	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/rs/zerolog"
)

// DefaultStagingCode código de la ubicación de staging cuando no se configura otro.
const DefaultStagingCode = "STAGING"

// Options dependencias opcionales del caso de uso.
type Options struct {
	Notifier    Notifier
	Observer    Observer
	Logger      zerolog.Logger
	Now         inventory.Clock
	StagingCode string
}

// UseCase orquesta las operaciones de ola. Cada operación corre en una única transacción;
// las notificaciones salen solo cuando la transacción confirmó.
type UseCase struct {
	txRunner    inventory.TxRunner
	allocator   *inventory.Allocator
	recorder    *inventory.Recorder
	notifier    Notifier
	observer    Observer
	log         zerolog.Logger
	now         inventory.Clock
	stagingCode string
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner inventory.TxRunner, allocator *inventory.Allocator, recorder *inventory.Recorder, opts Options) *UseCase {
	uc := &UseCase{
		txRunner:    txRunner,
		allocator:   allocator,
		recorder:    recorder,
		notifier:    opts.Notifier,
		observer:    opts.Observer,
		log:         opts.Logger,
		now:         opts.Now,
		stagingCode: opts.StagingCode,
	}
	if uc.notifier == nil {
		uc.notifier = NopNotifier
	}
	if uc.observer == nil {
		uc.observer = NopObserver
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.stagingCode == "" {
		uc.stagingCode = DefaultStagingCode
	}
	return uc
}

// Get devuelve la ola con líneas, reservas y bins.
func (uc *UseCase) Get(ctx context.Context, waveID string) (*entity.Wave, error) {
	if waveID == "" {
		return nil, domain.Invalid("wave_id es obligatorio")
	}
	var out *entity.Wave
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		w, err := r.Waves.GetDetail(ctx, waveID)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.NotFound("ola %s", waveID)
		}
		out = w
		return nil
	})
	return out, err
}

func (uc *UseCase) emit(ctx context.Context, kind entity.WaveEventKind, w *entity.Wave, actor string) {
	uc.notifier.Notify(ctx, entity.WaveEvent{
		Kind:       kind,
		WaveID:     w.ID,
		WaveNumber: w.Number,
		Status:     w.Status,
		Actor:      actor,
		At:         uc.now(),
	})
}

func (uc *UseCase) loadForUpdate(ctx context.Context, r repository.Repos, waveID string) (*entity.Wave, error) {
	w, err := r.Waves.GetForUpdate(ctx, waveID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.NotFound("ola %s", waveID)
	}
	return w, nil
}
