package http

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/repricer-api/internal/application/dto"
	"github.com/jhoicas/repricer-api/internal/application/repricer"
	"github.com/jhoicas/repricer-api/internal/domain"
)

// RepricerHandler maneja preview, apply, reporte e historial del repricer.
type RepricerHandler struct {
	uc  *repricer.UseCase
	log zerolog.Logger
}

// NewRepricerHandler construye el handler.
func NewRepricerHandler(uc *repricer.UseCase, log zerolog.Logger) *RepricerHandler {
	return &RepricerHandler{uc: uc, log: log}
}

// Preview godoc
// @Summary      Vista previa de un lote de repricing
// @Tags         repricer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file   formData  file    true   "Export de inventario (CSV)"
// @Param        today  formData  string  false  "Fecha de referencia YYYY-MM-DD"
// @Success      200    {object}  dto.RepriceResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/repricer/preview [post]
func (h *RepricerHandler) Preview(c *fiber.Ctx) error {
	in, errResp := readRepriceInput(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errResp)
	}
	out, err := h.uc.Preview(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Apply godoc
// @Summary      Aplicar un lote de repricing
// @Description  Igual que preview; si el historial está habilitado guarda la ejecución y devuelve run_id.
// @Tags         repricer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file   formData  file    true   "Export de inventario (CSV)"
// @Param        today  formData  string  false  "Fecha de referencia YYYY-MM-DD"
// @Success      200    {object}  dto.RepriceResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /api/repricer/apply [post]
func (h *RepricerHandler) Apply(c *fiber.Ctx) error {
	in, errResp := readRepriceInput(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errResp)
	}
	out, err := h.uc.Apply(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de un lote
// @Tags         repricer
// @Accept       multipart/form-data
// @Produce      application/pdf
// @Param        file   formData  file    true   "Export de inventario (CSV)"
// @Param        today  formData  string  false  "Fecha de referencia YYYY-MM-DD"
// @Success      200
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/repricer/report [post]
func (h *RepricerHandler) Report(c *fiber.Ctx) error {
	in, errResp := readRepriceInput(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errResp)
	}
	pdf, err := h.uc.Report(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="repricing-%s.pdf"`, time.Now().Format("20060102-150405")))
	return c.Send(pdf)
}

// Actions godoc
// @Summary      Catálogo de acciones, directivas y tramos
// @Tags         repricer
// @Produce      json
// @Success      200  {object}  dto.ActionsResponse
// @Router       /api/repricer/actions [get]
func (h *RepricerHandler) Actions(c *fiber.Ctx) error {
	return c.JSON(h.uc.Actions())
}

// ListRuns godoc
// @Summary      Historial de ejecuciones
// @Tags         repricer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.RunListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/repricer/runs [get]
func (h *RepricerHandler) ListRuns(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListRuns(c.UserContext(), page)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// GetRun godoc
// @Summary      Obtener una ejecución con su log
// @Tags         repricer
// @Produce      json
// @Param        id   path  string  true  "ID de la ejecución"
// @Success      200  {object}  dto.RunResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/repricer/runs/{id} [get]
func (h *RepricerHandler) GetRun(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetRun(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// readRepriceInput lee el campo multipart "file" y el campo opcional "today".
func readRepriceInput(c *fiber.Ctx) (repricer.RepriceInput, *dto.ErrorResponse) {
	var in repricer.RepriceInput
	fh, err := c.FormFile("file")
	if err != nil {
		return in, &dto.ErrorResponse{Code: "MISSING_FILE", Message: "el campo multipart 'file' es requerido"}
	}
	f, err := fh.Open()
	if err != nil {
		return in, &dto.ErrorResponse{Code: "MISSING_FILE", Message: "no se pudo abrir el archivo subido"}
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return in, &dto.ErrorResponse{Code: "MISSING_FILE", Message: "no se pudo leer el archivo subido"}
	}
	in.FileName = fh.Filename
	in.Content = content

	if raw := c.FormValue("today"); raw != "" {
		d, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return in, &dto.ErrorResponse{Code: "INVALID_DATE", Message: "today debe tener formato YYYY-MM-DD"}
		}
		in.Today = &d
	}
	return in, nil
}

// fail traduce errores de dominio a respuestas HTTP. Los errores inesperados se registran
// completos y el cliente solo recibe un mensaje genérico.
func (h *RepricerHandler) fail(c *fiber.Ctx, err error) error {
	return writeError(c, h.log, err)
}

func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyFile):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_FILE", Message: err.Error()})
	case errors.Is(err, domain.ErrUndecodableFile):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNDECODABLE_FILE", Message: err.Error()})
	case errors.Is(err, domain.ErrMissingSKUColumn):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU_COLUMN", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidConfig):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CONFIG", Message: err.Error()})
	case errors.Is(err, domain.ErrRunStoreDisabled):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RUNS_DISABLED", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error inesperado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
