// Package metrics contadores Prometheus del libro, el asignador y las olas.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wms"

// Metrics colectores registrados en un Registry propio (los tests crean uno por caso).
type Metrics struct {
	registry *prometheus.Registry

	movements       *prometheus.CounterVec
	shortages       prometheus.Counter
	scans           *prometheus.CounterVec
	waveTransitions *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	notifyDropped   prometheus.Counter
}

// New registra los colectores en un registry nuevo, junto con los de proceso y runtime.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		movements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_movements_total",
			Help:      "Stock movements appended to the ledger by type",
		}, []string{"type"}),
		shortages: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocation_shortages_total",
			Help:      "FEFO allocations that could not cover the requested quantity",
		}),
		scans: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Pick and sorting scans by outcome",
		}, []string{"kind", "outcome"}),
		waveTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wave_transitions_total",
			Help:      "Wave state transitions by target status",
		}, []string{"to"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		notifyDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_dropped_total",
			Help:      "Post-commit wave notifications dropped because the queue was full",
		}),
	}
}

// MovementRecorded implementa inventory.Observer.
func (m *Metrics) MovementRecorded(t entity.MovementType) {
	m.movements.WithLabelValues(string(t)).Inc()
}

// AllocationShortage implementa inventory.Observer.
func (m *Metrics) AllocationShortage() {
	m.shortages.Inc()
}

// ScanProcessed implementa wave.Observer.
func (m *Metrics) ScanProcessed(kind, outcome string) {
	m.scans.WithLabelValues(kind, outcome).Inc()
}

// WaveTransition implementa wave.Observer.
func (m *Metrics) WaveTransition(to entity.WaveStatus) {
	m.waveTransitions.WithLabelValues(string(to)).Inc()
}

// NotificationDropped implementa notify.DropCounter.
func (m *Metrics) NotificationDropped() {
	m.notifyDropped.Inc()
}

// Middleware mide la duración de cada request por ruta registrada (no por URL, para acotar cardinalidad).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		m.requestDuration.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry para tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
