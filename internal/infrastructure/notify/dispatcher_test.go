package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/notify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []entity.WaveEvent
}

func (s *recordingSink) Deliver(_ context.Context, e entity.WaveEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSink) kinds() []entity.WaveEventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.WaveEventKind, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Kind)
	}
	return out
}

type dropCounter struct {
	mu sync.Mutex
	n  int
}

func (d *dropCounter) NotificationDropped() {
	d.mu.Lock()
	d.n++
	d.mu.Unlock()
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	sink := &recordingSink{}
	d := notify.NewDispatcher(sink, 8, zerolog.Nop(), nil)

	d.Notify(context.Background(), entity.WaveEvent{Kind: entity.WaveEventCreated, WaveID: "w1"})
	d.Notify(context.Background(), entity.WaveEvent{Kind: entity.WaveEventStarted, WaveID: "w1"})

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, []entity.WaveEventKind{entity.WaveEventCreated, entity.WaveEventStarted}, sink.kinds())
}

func TestDispatcher_SinkFailureAndPanicDoNotStopWorker(t *testing.T) {
	calls := 0
	var mu sync.Mutex
	sink := notify.SinkFunc(func(_ context.Context, e entity.WaveEvent) error {
		mu.Lock()
		calls++
		mu.Unlock()
		switch e.Kind {
		case entity.WaveEventCreated:
			return errors.New("webhook caído")
		case entity.WaveEventStarted:
			panic("boom")
		}
		return nil
	})
	d := notify.NewDispatcher(sink, 8, zerolog.Nop(), nil)

	d.Notify(context.Background(), entity.WaveEvent{Kind: entity.WaveEventCreated})
	d.Notify(context.Background(), entity.WaveEvent{Kind: entity.WaveEventStarted})
	d.Notify(context.Background(), entity.WaveEvent{Kind: entity.WaveEventCompleted})

	require.NoError(t, d.Close(context.Background()))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, calls)
}

func TestDispatcher_FullQueueDropsWithoutBlocking(t *testing.T) {
	release := make(chan struct{})
	sink := notify.SinkFunc(func(context.Context, entity.WaveEvent) error {
		<-release
		return nil
	})
	drops := &dropCounter{}
	d := notify.NewDispatcher(sink, 1, zerolog.Nop(), drops)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			d.Notify(context.Background(), entity.WaveEvent{Kind: entity.WaveEventCreated})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify bloqueó con la cola llena")
	}
	close(release)
	require.NoError(t, d.Close(context.Background()))

	drops.mu.Lock()
	defer drops.mu.Unlock()
	assert.GreaterOrEqual(t, drops.n, 3)
}

func TestDispatcher_NotifyAfterCloseIsIgnored(t *testing.T) {
	sink := &recordingSink{}
	d := notify.NewDispatcher(sink, 2, zerolog.Nop(), nil)
	require.NoError(t, d.Close(context.Background()))

	d.Notify(context.Background(), entity.WaveEvent{Kind: entity.WaveEventDeleted})
	assert.Empty(t, sink.kinds())
}
