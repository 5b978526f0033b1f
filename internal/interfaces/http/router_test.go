package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-wms/docs"
	"github.com/jhoicas/Inventario-wms/internal/application/dto"
	"github.com/jhoicas/Inventario-wms/internal/application/inventory"
	"github.com/jhoicas/Inventario-wms/internal/application/wave"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/Inventario-wms/internal/interfaces/http"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser = "operador-1"

type fixture struct {
	app     *fiber.App
	store   *memory.Store
	product *entity.Product
	shelf   *entity.Location
	order   *entity.Order
}

// newFixture arma la app completa sobre el almacén en memoria: un producto con código
// 7701234567890, una ubicación NORMAL, la de staging y un pedido de 5 unidades.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	m := metrics.New()
	recorder := inventory.NewRecorder(m, nil)
	allocator := inventory.NewAllocator(recorder, m, nil)
	waves := wave.NewUseCase(store, allocator, recorder, wave.Options{Observer: m, Logger: zerolog.Nop()})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName:       "wms-test",
		RegisterMovement:  inventory.NewRegisterMovementUseCase(store, recorder),
		Balances:          inventory.NewBalanceUseCase(store),
		AllocateOrder:     inventory.NewAllocateOrderUseCase(store, allocator, false),
		Waves:             waves,
		Logger:            zerolog.Nop(),
		MetricsMiddleware: m.Middleware(),
		MetricsHandler:    m.Handler(),
		APIDocs:           []byte(docs.SwaggerInfo.ReadDoc()),
	})

	f := &fixture{app: app, store: store}
	f.product = store.AddProduct(entity.Product{SKU: "LECHE-1L", Name: "Leche 1L", Barcodes: []string{"7701234567890"}})
	f.shelf = store.AddLocation(entity.Location{Code: "A-01-01", Zone: entity.ZoneNormal, Active: true})
	store.AddLocation(entity.Location{Code: wave.DefaultStagingCode, Zone: entity.ZoneStaging, Active: true})
	f.order = store.AddOrder(entity.Order{
		Number: "PED-1",
		Lines:  []entity.OrderLine{{Barcode: "7701234567890", Quantity: decimal.NewFromInt(5)}},
	})
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any, actor bool) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor {
		req.Header.Set(apphttp.HeaderUserID, testUser)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (f *fixture) receive(t *testing.T, qty int64) dto.ReceiptResponse {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/inventory/receipts", dto.ReceiptRequest{
		ProductID:  f.product.ID,
		Batch:      "L-001",
		LocationID: f.shelf.ID,
		Quantity:   decimal.NewFromInt(qty),
	}, true)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out dto.ReceiptResponse
	decode(t, resp, &out)
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.receive(t, 3)

	resp := f.do(t, http.MethodGet, "/metrics", nil, false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `wms_ledger_movements_total{type="receipt"} 1`)
}

var routeParam = regexp.MustCompile(`:(\w+)`)

func TestDocs_DescribeEveryAPIRoute(t *testing.T) {
	f := newFixture(t)

	ui := f.do(t, http.MethodGet, "/docs", nil, false)
	assert.Equal(t, fiber.StatusOK, ui.StatusCode)

	resp := f.do(t, http.MethodGet, "/docs/swagger.json", nil, false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	decode(t, resp, &doc)

	documented := 0
	for _, ops := range doc.Paths {
		documented += len(ops)
	}
	registered := 0
	for _, r := range f.app.GetRoutes(true) {
		if !strings.HasPrefix(r.Path, "/api/") || r.Method == fiber.MethodHead {
			continue
		}
		registered++
		p := routeParam.ReplaceAllString(strings.TrimSuffix(r.Path, "/"), "{$1}")
		ops, ok := doc.Paths[p]
		if assert.True(t, ok, "%s sin documentar", p) {
			assert.Contains(t, ops, strings.ToLower(r.Method), "%s %s sin documentar", r.Method, p)
		}
	}
	assert.Equal(t, registered, documented)
}

func TestWritesRequireActor(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodPost, "/api/inventory/receipts", dto.ReceiptRequest{
		ProductID: f.product.ID, Batch: "L-001", LocationID: f.shelf.ID, Quantity: decimal.NewFromInt(1),
	}, false)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestReceiptAndBalance(t *testing.T) {
	f := newFixture(t)
	rec := f.receive(t, 10)
	assert.True(t, rec.LotCreated)
	assert.Equal(t, string(entity.MovementReceipt), rec.Movement.Type)
	assert.Equal(t, testUser, rec.Movement.CreatedBy)

	resp := f.do(t, http.MethodGet, "/api/inventory/balance?product_id="+f.product.ID, nil, false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var b dto.BalanceResponse
	decode(t, resp, &b)
	assert.True(t, b.OnHand.Equal(decimal.NewFromInt(10)))
	assert.True(t, b.Available.Equal(decimal.NewFromInt(10)))
}

func TestReceiptValidation(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/inventory/receipts", dto.ReceiptRequest{
		ProductID: f.product.ID, Batch: "L-001", LocationID: f.shelf.ID, Quantity: decimal.NewFromInt(-2),
	}, true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "VALIDATION", e.Code)

	bad := "31/12/2026"
	resp = f.do(t, http.MethodPost, "/api/inventory/receipts", dto.ReceiptRequest{
		ProductID: f.product.ID, Batch: "L-001", ExpiryDate: &bad, LocationID: f.shelf.ID, Quantity: decimal.NewFromInt(1),
	}, true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdjustBelowZeroIsRejected(t *testing.T) {
	f := newFixture(t)
	rec := f.receive(t, 2)

	resp := f.do(t, http.MethodPost, "/api/inventory/adjustments", dto.AdjustRequest{
		ProductID: f.product.ID, LotID: rec.LotID, LocationID: f.shelf.ID, Quantity: decimal.NewFromInt(-3),
	}, true)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
}

func TestAllocateOrder(t *testing.T) {
	f := newFixture(t)
	f.receive(t, 10)

	resp := f.do(t, http.MethodPost, "/api/orders/"+f.order.ID+"/allocate", nil, true)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out dto.AllocateOrderResponse
	decode(t, resp, &out)
	assert.True(t, out.Committed)
	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].Allocated.Equal(decimal.NewFromInt(5)))
	assert.True(t, out.Lines[0].Shortage.IsZero())

	// Reasignar el mismo pedido es un conflicto.
	resp = f.do(t, http.MethodPost, "/api/orders/"+f.order.ID+"/allocate", nil, true)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAllocateOrderAllOrNothingShortage(t *testing.T) {
	f := newFixture(t)
	f.receive(t, 3)

	strict := true
	resp := f.do(t, http.MethodPost, "/api/orders/"+f.order.ID+"/allocate", dto.AllocateOrderRequest{AllOrNothing: &strict}, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.AllocateOrderResponse
	decode(t, resp, &out)
	assert.False(t, out.Committed)
	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].Shortage.Equal(decimal.NewFromInt(2)))
	assert.Empty(t, out.Lines[0].Reservations)

	resp = f.do(t, http.MethodGet, "/api/inventory/balance?product_id="+f.product.ID, nil, false)
	var b dto.BalanceResponse
	decode(t, resp, &b)
	assert.True(t, b.Reserved.IsZero())
}

func TestWaveLifecycle(t *testing.T) {
	f := newFixture(t)
	f.receive(t, 10)

	resp := f.do(t, http.MethodPost, "/api/waves", dto.CreateWaveRequest{OrderIDs: []string{f.order.ID}}, true)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.CreateWaveResponse
	decode(t, resp, &created)
	waveID := created.Wave.ID
	assert.Equal(t, string(entity.WaveDraft), created.Wave.Status)
	require.Len(t, created.Wave.Lines, 1)
	require.Len(t, created.Wave.Bins, 1)

	resp = f.do(t, http.MethodPost, "/api/waves/"+waveID+"/start", nil, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var started dto.WaveResponse
	decode(t, resp, &started)
	assert.Equal(t, string(entity.WavePicking), started.Status)

	// Cerrar antes de clasificar es un conflicto de estado.
	resp = f.do(t, http.MethodPost, "/api/waves/"+waveID+"/complete", nil, true)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	pick := dto.PickScanRequest{RequestID: "pick-1", Barcode: "7701234567890", Quantity: decimal.NewFromInt(5)}
	resp = f.do(t, http.MethodPost, "/api/waves/"+waveID+"/pick-scans", pick, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var first wave.PickScanResult
	decode(t, resp, &first)
	assert.Equal(t, entity.WaveSorting, first.WaveStatus)

	// Reintento con el mismo request_id: mismo resultado, sin efectos nuevos.
	resp = f.do(t, http.MethodPost, "/api/waves/"+waveID+"/pick-scans", pick, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var again wave.PickScanResult
	decode(t, resp, &again)
	assert.Equal(t, first.LineID, again.LineID)
	assert.True(t, again.PickedQty.Equal(decimal.NewFromInt(5)))

	over := dto.SortingScanRequest{RequestID: "sort-0", OrderID: f.order.ID, Barcode: "7701234567890", Quantity: decimal.NewFromInt(6)}
	resp = f.do(t, http.MethodPost, "/api/waves/"+waveID+"/sorting-scans", over, true)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	sortReq := dto.SortingScanRequest{RequestID: "sort-1", OrderID: f.order.ID, Barcode: "7701234567890", Quantity: decimal.NewFromInt(5)}
	resp = f.do(t, http.MethodPost, "/api/waves/"+waveID+"/sorting-scans", sortReq, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var sorted wave.SortingScanResult
	decode(t, resp, &sorted)
	assert.Equal(t, entity.BinDone, sorted.BinStatus)

	resp = f.do(t, http.MethodPost, "/api/waves/"+waveID+"/complete", nil, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var done dto.WaveResponse
	decode(t, resp, &done)
	assert.Equal(t, string(entity.WaveCompleted), done.Status)
	assert.NotNil(t, done.CompletedAt)

	// Las 5 unidades quedaron en staging: el saldo total no cambia y no hay reservas.
	resp = f.do(t, http.MethodGet, "/api/inventory/balance?product_id="+f.product.ID, nil, false)
	var b dto.BalanceResponse
	decode(t, resp, &b)
	assert.True(t, b.OnHand.Equal(decimal.NewFromInt(10)))
	assert.True(t, b.Reserved.IsZero())

	resp = f.do(t, http.MethodGet, "/api/inventory/reconcile/"+f.product.ID, nil, false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var diffs []dto.DiscrepancyResponse
	decode(t, resp, &diffs)
	assert.Empty(t, diffs)
}

func TestWaveStartShortage(t *testing.T) {
	f := newFixture(t)
	f.receive(t, 2)

	resp := f.do(t, http.MethodPost, "/api/waves", dto.CreateWaveRequest{OrderIDs: []string{f.order.ID}}, true)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.CreateWaveResponse
	decode(t, resp, &created)

	resp = f.do(t, http.MethodPost, "/api/waves/"+created.Wave.ID+"/start", nil, true)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var e struct {
		Code    string             `json:"code"`
		Details dto.ShortageDetail `json:"details"`
	}
	decode(t, resp, &e)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
	assert.Equal(t, "7701234567890", e.Details.Barcode)
	assert.True(t, e.Details.Shortage.Equal(decimal.NewFromInt(3)))

	resp = f.do(t, http.MethodGet, "/api/waves/"+created.Wave.ID, nil, false)
	var w dto.WaveResponse
	decode(t, resp, &w)
	assert.Equal(t, string(entity.WaveDraft), w.Status)
	assert.Empty(t, w.Lines[0].Allocations)
}

func TestWaveDeleteAndNotFound(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/waves", dto.CreateWaveRequest{OrderIDs: []string{f.order.ID}}, true)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.CreateWaveResponse
	decode(t, resp, &created)

	resp = f.do(t, http.MethodDelete, "/api/waves/"+created.Wave.ID, nil, true)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/waves/"+created.Wave.ID, nil, false)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "NOT_FOUND", e.Code)
}

func TestInvalidBody(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/api/waves", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apphttp.HeaderUserID, testUser)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
