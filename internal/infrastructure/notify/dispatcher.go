// Package notify entrega eventos de ola fuera de la transacción que los produjo.
package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/rs/zerolog"
)

// Sink destino final de los eventos (webhook, cola, log).
type Sink interface {
	Deliver(ctx context.Context, event entity.WaveEvent) error
}

// SinkFunc adapta una función a Sink.
type SinkFunc func(ctx context.Context, event entity.WaveEvent) error

// Deliver implementa Sink.
func (f SinkFunc) Deliver(ctx context.Context, event entity.WaveEvent) error { return f(ctx, event) }

// DropCounter cuenta eventos descartados por cola llena.
type DropCounter interface {
	NotificationDropped()
}

// Dispatcher cola en memoria con un worker. Notify nunca bloquea: con la cola llena el evento
// se descarta y se registra. Las fallas y panics del Sink se registran y no detienen el worker.
type Dispatcher struct {
	sink   Sink
	log    zerolog.Logger
	drops  DropCounter
	queue  chan entity.WaveEvent
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewDispatcher arranca el worker. drops puede ser nil.
func NewDispatcher(sink Sink, buffer int, log zerolog.Logger, drops DropCounter) *Dispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		drops: drops,
		queue: make(chan entity.WaveEvent, buffer),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Notify encola el evento sin bloquear.
func (d *Dispatcher) Notify(_ context.Context, event entity.WaveEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	select {
	case d.queue <- event:
	default:
		d.log.Warn().Str("kind", string(event.Kind)).Str("wave_id", event.WaveID).Msg("cola de notificaciones llena, evento descartado")
		if d.drops != nil {
			d.drops.NotificationDropped()
		}
	}
}

// Close deja de aceptar eventos y espera a que el worker vacíe la cola o ctx expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event entity.WaveEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Str("kind", string(event.Kind)).Str("wave_id", event.WaveID).
				Err(fmt.Errorf("panic: %v", r)).Msg("notificación falló")
		}
	}()
	if err := d.sink.Deliver(context.Background(), event); err != nil {
		d.log.Error().Str("kind", string(event.Kind)).Str("wave_id", event.WaveID).Err(err).Msg("notificación falló")
		return
	}
	d.log.Debug().Str("kind", string(event.Kind)).Str("wave_id", event.WaveID).Msg("notificación entregada")
}

// LogSink registra cada evento; es el destino por defecto del servicio.
func LogSink(log zerolog.Logger) Sink {
	return SinkFunc(func(_ context.Context, e entity.WaveEvent) error {
		log.Info().
			Str("kind", string(e.Kind)).
			Str("wave_id", e.WaveID).
			Str("number", e.WaveNumber).
			Str("status", string(e.Status)).
			Str("actor", e.Actor).
			Time("at", e.At).
			Msg("evento de ola")
		return nil
	})
}
