package http

import (
	nethttp "net/http"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/Inventario-wms/internal/application/inventory"
	"github.com/jhoicas/Inventario-wms/internal/application/wave"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName      string
	RegisterMovement *inventory.RegisterMovementUseCase
	Balances         *inventory.BalanceUseCase
	AllocateOrder    *inventory.AllocateOrderUseCase
	Waves            *wave.UseCase
	Logger           zerolog.Logger
	// Opcionales: sin ellos no se mide ni se expone /metrics.
	MetricsMiddleware fiber.Handler
	MetricsHandler    nethttp.Handler
	// APIDocs documento swagger generado por swag; nil no publica /docs.
	APIDocs []byte
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(AccessLog(deps.Logger))
	if deps.MetricsMiddleware != nil {
		app.Use(deps.MetricsMiddleware)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	// Swagger UI: /docs, documento en /docs/swagger.json
	if deps.APIDocs != nil {
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FilePath:    "docs/swagger.json",
			FileContent: deps.APIDocs,
			Path:        "docs",
			Title:       deps.ServiceName + " API",
		}))
	}

	api := app.Group("/api", ActorMiddleware())
	write := RequireActor()

	// Libro de stock
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Balances)
	inv.Post("/receipts", write, inventoryHandler.Receive)
	inv.Post("/adjustments", write, inventoryHandler.Adjust)
	inv.Post("/transfers", write, inventoryHandler.Transfer)
	inv.Get("/balance", inventoryHandler.Balance)
	inv.Get("/movements", inventoryHandler.Movements)
	inv.Get("/reconcile/:productId", inventoryHandler.Reconcile)

	// Asignación directa de pedidos
	orderHandler := NewOrderHandler(deps.AllocateOrder)
	api.Post("/orders/:id/allocate", write, orderHandler.Allocate)

	// Olas
	waves := api.Group("/waves")
	waveHandler := NewWaveHandler(deps.Waves)
	waves.Post("/", write, waveHandler.Create)
	waves.Get("/:id", waveHandler.Get)
	waves.Delete("/:id", write, waveHandler.Delete)
	waves.Post("/:id/start", write, waveHandler.Start)
	waves.Post("/:id/pick-scans", write, waveHandler.PickScan)
	waves.Post("/:id/sorting-scans", write, waveHandler.SortingScan)
	waves.Post("/:id/complete", write, waveHandler.Complete)
}
