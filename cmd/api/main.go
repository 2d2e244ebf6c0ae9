package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/repricer-api/internal/application/repricer"
	"github.com/jhoicas/repricer-api/internal/domain/repository"
	"github.com/jhoicas/repricer-api/internal/infrastructure/csvcodec"
	"github.com/jhoicas/repricer-api/internal/infrastructure/filestore"
	infrapdf "github.com/jhoicas/repricer-api/internal/infrastructure/pdf"
	"github.com/jhoicas/repricer-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/repricer-api/internal/interfaces/http"
	"github.com/jhoicas/repricer-api/pkg/config"
	"github.com/jhoicas/repricer-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	loc, err := cfg.Repricer.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria del repricer")
	}

	configStore := filestore.NewConfigStore(cfg.Repricer.ConfigPath)
	created, err := configStore.EnsureDefault(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("path", configStore.Path()).Msg("inicializar config del repricer")
	}
	if created {
		log.Info().Str("path", configStore.Path()).Msg("config del repricer creada con valores por defecto")
	}

	// Historial opcional: sin REPRICER_PERSIST_RUNS no se abre conexión a PostgreSQL.
	var (
		runRepo  repository.RepricingRunRepository
		txRunner repricer.TxRunner
	)
	if cfg.Repricer.PersistRuns {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del historial")
		}
		runRepo = postgres.NewRepricingRunRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
		log.Info().Msg("historial de ejecuciones habilitado")
	}

	repricerUC := repricer.NewUseCase(
		configStore,
		csvcodec.Codec{},
		runRepo,
		txRunner,
		infrapdf.NewMarotoReportGenerator(),
		log.Component("repricer"),
		repricer.Options{
			Location:     loc,
			PreviewLimit: cfg.Repricer.PreviewLimit,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Repricer API",
		}))
	} else if !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("swagger deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RepricerUC: repricerUC,
		Logger:     log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
