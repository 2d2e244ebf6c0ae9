package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/repricer-api/internal/application/repricer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RepricerUC *repricer.UseCase
	Logger     zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	rp := api.Group("/repricer")
	repricerHandler := NewRepricerHandler(deps.RepricerUC, deps.Logger)
	rp.Post("/preview", repricerHandler.Preview)
	rp.Post("/apply", repricerHandler.Apply)
	rp.Post("/report", repricerHandler.Report)
	rp.Get("/actions", repricerHandler.Actions)
	rp.Get("/runs", repricerHandler.ListRuns)
	rp.Get("/runs/:id", repricerHandler.GetRun)

	configHandler := NewConfigHandler(deps.RepricerUC, deps.Logger)
	rp.Get("/config", configHandler.Get)
	rp.Put("/config", configHandler.Put)
}
