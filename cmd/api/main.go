package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-wms/docs"
	"github.com/jhoicas/Inventario-wms/internal/application/inventory"
	"github.com/jhoicas/Inventario-wms/internal/application/wave"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/catalog"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/metrics"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/notify"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-wms/internal/interfaces/http"
	"github.com/jhoicas/Inventario-wms/pkg/config"
	"github.com/jhoicas/Inventario-wms/pkg/logger"
)

// @title        Inventario WMS API
// @version      1.0
// @description  Libro de stock por lote y ubicación, asignación FEFO y olas de picking con clasificación por pedido.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var txRunner inventory.TxRunner
	switch cfg.App.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		staging := true
		if cfg.WMS.SeedFile != "" {
			c, err := catalog.Load(cfg.WMS.SeedFile)
			if err != nil {
				log.Fatal().Err(err).Str("file", cfg.WMS.SeedFile).Msg("catálogo inicial")
			}
			c.SeedInto(store)
			staging = !c.HasLocation(cfg.WMS.StagingLocationCode)
			log.Info().
				Str("file", cfg.WMS.SeedFile).
				Int("products", len(c.Products)).
				Int("locations", len(c.Locations)).
				Int("orders", len(c.Orders)).
				Msg("catálogo cargado")
		} else {
			log.Warn().Msg("almacén en memoria sin WMS_SEED_FILE: solo existe la ubicación de staging")
		}
		if staging {
			store.AddLocation(entity.Location{Code: cfg.WMS.StagingLocationCode, Zone: entity.ZoneStaging, Active: true})
		}
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		txRunner = store
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		txRunner = postgres.NewTxRunner(pool)
	}

	// Métricas opcionales: sin ellas los observers son no-op.
	var (
		invObserver    inventory.Observer
		waveObserver   wave.Observer
		drops          notify.DropCounter
		metricsMW      fiber.Handler
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		m := metrics.New()
		invObserver, waveObserver, drops = m, m, m
		metricsMW, metricsHandler = m.Middleware(), m.Handler()
	}

	dispatcher := notify.NewDispatcher(
		notify.LogSink(log.Component("notify")),
		cfg.WMS.NotifyBuffer,
		log.Component("notify"),
		drops,
	)

	recorder := inventory.NewRecorder(invObserver, nil)
	allocator := inventory.NewAllocator(recorder, invObserver, nil)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, recorder)
	balanceUC := inventory.NewBalanceUseCase(txRunner)
	allocateOrderUC := inventory.NewAllocateOrderUseCase(txRunner, allocator, cfg.WMS.AllocateAllOrNothing)
	waveUC := wave.NewUseCase(txRunner, allocator, recorder, wave.Options{
		Notifier:    dispatcher,
		Observer:    waveObserver,
		Logger:      log.Component("wave"),
		StagingCode: cfg.WMS.StagingLocationCode,
	})

	var apiDocs []byte
	if cfg.HTTP.Docs {
		apiDocs = []byte(docs.SwaggerInfo.ReadDoc())
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:       cfg.App.Name,
		RegisterMovement:  registerMovementUC,
		Balances:          balanceUC,
		AllocateOrder:     allocateOrderUC,
		Waves:             waveUC,
		Logger:            log.Component("http"),
		MetricsMiddleware: metricsMW,
		MetricsHandler:    metricsHandler,
		APIDocs:           apiDocs,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-quit.Done()

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("notificaciones pendientes sin entregar")
	}

	log.Info().Msg("aplicación detenida")
}
