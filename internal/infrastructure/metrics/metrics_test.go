package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, m *metrics.Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	total := 0.0
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, metric := range f.GetMetric() {
			got := map[string]string{}
			for _, lp := range metric.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue next
				}
			}
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

func TestMetrics_Observers(t *testing.T) {
	m := metrics.New()

	m.MovementRecorded(entity.MovementAllocate)
	m.MovementRecorded(entity.MovementAllocate)
	m.MovementRecorded(entity.MovementReceipt)
	m.AllocationShortage()
	m.ScanProcessed("pick", "applied")
	m.ScanProcessed("pick", "replayed")
	m.WaveTransition(entity.WaveSorting)

	assert.Equal(t, 2.0, counterValue(t, m, "wms_ledger_movements_total", map[string]string{"type": "allocate"}))
	assert.Equal(t, 1.0, counterValue(t, m, "wms_allocation_shortages_total", nil))
	assert.Equal(t, 1.0, counterValue(t, m, "wms_scans_total", map[string]string{"kind": "pick", "outcome": "replayed"}))
	assert.Equal(t, 1.0, counterValue(t, m, "wms_wave_transitions_total", map[string]string{"to": "SORTING"}))
}

func TestMetrics_HandlerExposesRegistry(t *testing.T) {
	m := metrics.New()
	m.ScanProcessed("sorting", "rejected")

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `wms_scans_total{kind="sorting",outcome="rejected"} 1`)
	assert.Contains(t, string(body), `wms_http_request_duration_seconds_count{method="GET",path="/ping",status="200"} 1`)
}
