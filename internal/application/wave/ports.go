package wave

import (
	"context"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
)

// Notifier recibe eventos de la ola después del commit. No debe bloquear: una falla del
// destino nunca afecta la transacción ya confirmada.
type Notifier interface {
	Notify(ctx context.Context, event entity.WaveEvent)
}

// Observer métricas de lecturas y transiciones.
type Observer interface {
	ScanProcessed(kind, outcome string)
	WaveTransition(to entity.WaveStatus)
}

// Resultados reportados al Observer.
const (
	ScanPick    = "pick"
	ScanSorting = "sorting"

	OutcomeApplied  = "applied"
	OutcomeReplayed = "replayed"
	OutcomeRejected = "rejected"
)

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, entity.WaveEvent) {}

type nopObserver struct{}

func (nopObserver) ScanProcessed(string, string)     {}
func (nopObserver) WaveTransition(entity.WaveStatus) {}

// NopNotifier descarta los eventos.
var NopNotifier Notifier = nopNotifier{}

// NopObserver observer vacío.
var NopObserver Observer = nopObserver{}
