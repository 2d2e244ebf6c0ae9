package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/repricer-api/internal/application/repricer"
)

// ConfigHandler lectura y reemplazo de la configuración del repricer.
type ConfigHandler struct {
	uc  *repricer.UseCase
	log zerolog.Logger
}

// NewConfigHandler construye el handler.
func NewConfigHandler(uc *repricer.UseCase, log zerolog.Logger) *ConfigHandler {
	return &ConfigHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Configuración vigente del repricer
// @Tags         repricer-config
// @Produce      json
// @Success      200  {object}  entity.RepricerConfig
// @Router       /api/repricer/config [get]
func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	cfg, err := h.uc.GetConfig(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(cfg)
}

// Put godoc
// @Summary      Reemplazar la configuración del repricer
// @Description  El documento debe traer las cuatro claves y exactamente los doce tramos.
// @Tags         repricer-config
// @Accept       json
// @Produce      json
// @Param        body  body  entity.RepricerConfig  true  "Documento completo"
// @Success      200   {object}  entity.RepricerConfig
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/repricer/config [put]
func (h *ConfigHandler) Put(c *fiber.Ctx) error {
	cfg, err := h.uc.UpdateConfig(c.UserContext(), c.Body())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(cfg)
}
