package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repricer-api/internal/application/dto"
	"github.com/jhoicas/repricer-api/internal/application/repricer"
	"github.com/jhoicas/repricer-api/internal/domain/entity"
	"github.com/jhoicas/repricer-api/internal/infrastructure/csvcodec"
	"github.com/jhoicas/repricer-api/internal/infrastructure/filestore"
	"github.com/jhoicas/repricer-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/repricer-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp monta el router con un store de config en un directorio temporal y sin historial.
func buildTestApp(t *testing.T) (*fiber.App, *filestore.ConfigStore) {
	t.Helper()
	store := filestore.NewConfigStore(filepath.Join(t.TempDir(), "repricer_config.json"))
	cfg := entity.DefaultRepricerConfig()
	cfg.Rules["60"] = entity.Rule{Action: entity.ActionPriceDown1}
	require.NoError(t, store.Save(context.Background(), cfg))

	uc := repricer.NewUseCase(store, csvcodec.Codec{}, nil, nil, pdf.NewMarotoReportGenerator(), zerolog.Nop(), repricer.Options{
		Location:     time.UTC,
		PreviewLimit: 10,
	})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{RepricerUC: uc, Logger: zerolog.Nop()})
	return app, store
}

func inventoryCSV(t *testing.T, skus ...string) []byte {
	t.Helper()
	rows := make([]entity.InventoryRow, 0, len(skus))
	for _, sku := range skus {
		rows = append(rows, entity.InventoryRow{SKU: sku, Price: decimal.NewFromInt(1000), Quantity: "1"})
	}
	raw, err := csvcodec.WriteInventory(rows)
	require.NoError(t, err)
	return raw
}

// multipartRequest arma un POST multipart; content nil omite el campo "file".
func multipartRequest(t *testing.T, path string, content []byte, today string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if content != nil {
		fw, err := w.CreateFormFile("file", "inventory.csv")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	if today != "" {
		require.NoError(t, w.WriteField("today", today))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Preview / Apply
// ──────────────────────────────────────────────────────────────────────────────

func TestPreview_OK(t *testing.T) {
	app, _ := buildTestApp(t)
	req := multipartRequest(t, "/api/repricer/preview", inventoryCSV(t, "250420-A", "230101-B"), "2025-06-01")

	resp, body := do(t, app, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	var out dto.RepriceResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "inventory.csv", out.FileName)
	assert.Equal(t, "2025-06-01", out.Today)
	assert.Equal(t, 2, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.Updated)
	assert.Equal(t, 1, out.Summary.Excluded)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "price_down_1", out.Items[0].Action)
	assert.Equal(t, "990", out.Items[0].NewPrice.String())

	// Los CSV viajan en base64 y siguen siendo cp932 válidos.
	updated, err := csvcodec.ReadInventory(out.UpdatedCSV)
	require.NoError(t, err)
	assert.Equal(t, "250420-A", updated.Rows[0].SKU)
}

func TestApply_SinHistorialNoDevuelveRunID(t *testing.T) {
	app, _ := buildTestApp(t)
	resp, body := do(t, app, multipartRequest(t, "/api/repricer/apply", inventoryCSV(t, "250420-A"), "2025-06-01"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.NotContains(t, string(body), "run_id")
}

func TestPreview_ErroresDeEntrada(t *testing.T) {
	app, _ := buildTestApp(t)
	cases := []struct {
		name    string
		content []byte
		today   string
		code    string
	}{
		{"sin archivo", nil, "", "MISSING_FILE"},
		{"archivo vacío", []byte{}, "", "EMPTY_FILE"},
		{"sin columna SKU", []byte("ASIN,price\r\nB01,100\r\n"), "", "MISSING_SKU_COLUMN"},
		{"fecha inválida", inventoryCSV(t, "250420-A"), "01/06/2025", "INVALID_DATE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := do(t, app, multipartRequest(t, "/api/repricer/preview", tc.content, tc.today))
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, body))
		})
	}
}

func TestReport_DevuelvePDF(t *testing.T) {
	app, _ := buildTestApp(t)
	resp, body := do(t, app, multipartRequest(t, "/api/repricer/report", inventoryCSV(t, "250420-A"), "2025-06-01"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Config, catálogo e historial
// ──────────────────────────────────────────────────────────────────────────────

func TestConfig_GetPut(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/repricer/config", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cfg entity.RepricerConfig
	require.NoError(t, json.Unmarshal(body, &cfg))
	assert.Equal(t, entity.ActionPriceDown1, cfg.Rules["60"].Action)

	cfg.GuardPercentage = 1.3
	cfg.ExcludedSKUs = []string{"VIP-1"}
	doc, err := json.Marshal(cfg)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/repricer/config", bytes.NewReader(doc))
	req.Header.Set("Content-Type", "application/json")
	resp, body = do(t, app, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/api/repricer/config", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var saved entity.RepricerConfig
	require.NoError(t, json.Unmarshal(body, &saved))
	assert.Equal(t, 1.3, saved.GuardPercentage)
	assert.Equal(t, []string{"VIP-1"}, saved.ExcludedSKUs)
}

func TestConfig_PutInvalidoNoModifica(t *testing.T) {
	app, store := buildTestApp(t)
	before, err := store.Load(context.Background())
	require.NoError(t, err)

	doc := `{"guardPercentage":1.1,"excludedSkus":[],"quarterRuleEnabled":false,"rules":{"30":{"action":"maintain","priceTraceTarget":0}}}`
	req := httptest.NewRequest(http.MethodPut, "/api/repricer/config", strings.NewReader(doc))
	req.Header.Set("Content-Type", "application/json")
	resp, body := do(t, app, req)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_CONFIG", errorCode(t, body))
	assert.Contains(t, string(body), "rules.60")

	after, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestActions_OK(t *testing.T) {
	app, _ := buildTestApp(t)
	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/repricer/actions", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.ActionsResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Len(t, out.Actions, 6)
	assert.Len(t, out.Buckets, 12)
}

func TestRuns_HistorialDeshabilitado(t *testing.T) {
	app, _ := buildTestApp(t)
	for _, path := range []string{"/api/repricer/runs", "/api/repricer/runs/abc"} {
		resp, body := do(t, app, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "RUNS_DISABLED", errorCode(t, body))
	}
}
