package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repricer-api/internal/domain/entity"
	"github.com/jhoicas/repricer-api/internal/infrastructure/csvcodec"
	"github.com/jhoicas/repricer-api/internal/infrastructure/filestore"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRun_EscribeTresArchivos(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cfg.json")
	cfg := entity.DefaultRepricerConfig()
	cfg.Rules["60"] = entity.Rule{Action: entity.ActionPriceDown2}
	require.NoError(t, filestore.NewConfigStore(cfgPath).Save(context.Background(), cfg))

	input, err := csvcodec.WriteInventory([]entity.InventoryRow{
		{SKU: "250420-A", Price: decimal.NewFromInt(1000)},
		{SKU: "230101-B", Price: decimal.NewFromInt(1000)},
	})
	require.NoError(t, err)
	inPath := filepath.Join(dir, "inventory.csv")
	require.NoError(t, os.WriteFile(inPath, input, 0o644))

	outDir := filepath.Join(dir, "out")
	stdout, err := execute(t, "run", "-i", inPath, "-o", outDir, "-c", cfgPath, "--today", "2025-06-01", "--timezone", "UTC")
	require.NoError(t, err)

	var summary struct {
		Today   string         `json:"today"`
		Summary map[string]any `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary), stdout)
	assert.Equal(t, "2025-06-01", summary.Today)
	assert.EqualValues(t, 2, summary.Summary["total"])

	raw, err := os.ReadFile(filepath.Join(outDir, "updated.csv"))
	require.NoError(t, err)
	updated, err := csvcodec.ReadInventory(raw)
	require.NoError(t, err)
	require.Len(t, updated.Rows, 1)
	assert.Equal(t, "980", updated.Rows[0].Price.String())

	for _, name := range []string{"excluded.csv", "log.csv"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
}

func TestRun_RequiereInput(t *testing.T) {
	_, err := execute(t, "run")
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, filestore.NewConfigStore(good).Save(context.Background(), entity.DefaultRepricerConfig()))

	out, err := execute(t, "validate-config", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok: guard 1.10")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"guardPercentage":0.9,"excludedSkus":[],"quarterRuleEnabled":false}`), 0o644))
	_, err = execute(t, "validate-config", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules es requerido")
}
