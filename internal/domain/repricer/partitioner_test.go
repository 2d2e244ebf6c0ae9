package repricer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repricer-api/internal/domain/entity"
	"github.com/jhoicas/repricer-api/internal/domain/repricer"
)

var today = date(2025, time.June, 1)

func row(sku, price, breakeven string, trace int) entity.InventoryRow {
	return entity.InventoryRow{
		SKU:        sku,
		ASIN:       "B000000001",
		Title:      "título",
		Quantity:   "1",
		Price:      dec(price),
		Breakeven:  dec(breakeven),
		PriceTrace: trace,
	}
}

func batchConfig() *entity.RepricerConfig {
	cfg := configWith(map[string]entity.Rule{
		"30":  {Action: entity.ActionMaintain},
		"60":  {Action: entity.ActionPriceDown1},
		"90":  {Action: entity.ActionPriceDown2},
		"120": {Action: entity.ActionProfitIgnoreDown},
		"150": {Action: entity.ActionPriceTrace, PriceTraceTarget: 2},
		"180": {Action: entity.ActionExclude},
	})
	cfg.ExcludedSKUs = []string{"250520-VIP"}
	return cfg
}

func TestApply_CompletitudDeParticiones(t *testing.T) {
	rows := []entity.InventoryRow{
		row("250520-A", "1000", "0", 0),   // 12 días -> maintain
		row("250420-B", "1000", "0", 0),   // 42 -> price_down_1
		row("250320-C", "1000", "900", 0), // 73 -> price_down_2 + guard
		row("250215-D", "1000", "900", 0), // 106 -> profit_ignore_down
		row("250115-E", "1000", "0", 0),   // 137 -> priceTrace
		row("241215-F", "1000", "0", 0),   // 168 -> exclude por regla
		row("NODATE", "1000", "0", 4),     // desconocida
		row("230101-G", "1000", "0", 0),   // > 365
		row("250520-VIP", "1000", "0", 0), // excluido explícito
	}

	res := repricer.Apply(rows, today, batchConfig())

	require.Len(t, res.Logs, len(rows))
	assert.Equal(t, len(rows), len(res.Updated)+len(res.Excluded))
	assert.Len(t, res.Updated, 6)
	assert.Len(t, res.Excluded, 3)

	actions := make([]entity.Action, 0, len(res.Logs))
	for i, l := range res.Logs {
		assert.Equal(t, rows[i].SKU, l.SKU, "el log conserva el orden de entrada")
		actions = append(actions, l.Action)
	}
	assert.Equal(t, []entity.Action{
		entity.ActionMaintain,
		entity.ActionPriceDown1,
		entity.ActionPriceDown2,
		entity.ActionProfitIgnoreDown,
		entity.ActionPriceTrace,
		entity.ActionExclude,
		entity.ActionMaintain,
		entity.ActionExclude,
		entity.ActionExclude,
	}, actions)

	assert.True(t, dec("990").Equal(res.Logs[1].NewPrice))
	assert.True(t, dec("990").Equal(res.Logs[2].NewPrice), "980 sube al guard 990")
	assert.True(t, res.Logs[2].GuardApplied)
	assert.True(t, dec("990").Equal(res.Logs[3].NewPrice))
	assert.Equal(t, 2, res.Logs[4].NewPriceTrace)
}

func TestApply_FechaDesconocidaVaAUpdatedSinCambios(t *testing.T) {
	in := row("SIN-FECHA", "1234", "100", 4)
	res := repricer.Apply([]entity.InventoryRow{in}, today, batchConfig())

	require.Len(t, res.Logs, 1)
	assert.Equal(t, entity.UnknownDays, res.Logs[0].DaysSinceListed)
	assert.Equal(t, entity.ActionMaintain, res.Logs[0].Action)
	assert.Equal(t, repricer.ReasonDateUnknown, res.Logs[0].Reason)
	require.Len(t, res.Updated, 1)
	assert.Equal(t, in, res.Updated[0])
	assert.Empty(t, res.Excluded)
}

func TestApply_Mas365DiasSeExcluye(t *testing.T) {
	cfg := batchConfig()
	for _, k := range entity.BucketKeys {
		cfg.Rules[k] = entity.Rule{Action: entity.ActionPriceDown2}
	}
	// 2024-05-31 -> 2025-06-01 = 366 días
	in := row("20240531-OLD", "5000", "0", 0)
	res := repricer.Apply([]entity.InventoryRow{in}, today, cfg)

	require.Len(t, res.Excluded, 1)
	assert.Equal(t, in, res.Excluded[0])
	assert.Equal(t, 366, res.Logs[0].DaysSinceListed)
	assert.Equal(t, entity.ActionExclude, res.Logs[0].Action)
	assert.Equal(t, repricer.ReasonOverLimit, res.Logs[0].Reason)
	assert.True(t, dec("5000").Equal(res.Logs[0].NewPrice))
}

// 361..365 días caen en el tramo sintético over_365 y también se excluyen.
func TestApply_Entre361y365UsaTramoSintetico(t *testing.T) {
	in := row("20240605-X", "5000", "0", 0) // 361 días
	res := repricer.Apply([]entity.InventoryRow{in}, today, batchConfig())

	require.Len(t, res.Excluded, 1)
	assert.Equal(t, 361, res.Logs[0].DaysSinceListed)
	assert.Contains(t, res.Logs[0].Reason, entity.OverLimitBucket)
}

func TestApply_SKUExcluidoTienePrioridad(t *testing.T) {
	cfg := batchConfig()
	cfg.ExcludedSKUs = []string{"250420-B"}
	in := row("250420-B", "1000", "0", 0) // por antigüedad sería price_down_1
	res := repricer.Apply([]entity.InventoryRow{in}, today, cfg)

	require.Len(t, res.Excluded, 1)
	assert.Equal(t, in, res.Excluded[0])
	assert.Equal(t, repricer.ReasonExplicitlyExcluded, res.Logs[0].Reason)
	assert.Equal(t, entity.ActionExclude, res.Logs[0].Action)
}

func TestApply_ExcludePorReglaSobrescribePrecios(t *testing.T) {
	in := row("241215-F", "1000", "0", 3)
	res := repricer.Apply([]entity.InventoryRow{in}, today, batchConfig())

	require.Len(t, res.Excluded, 1)
	assert.True(t, dec("1000").Equal(res.Excluded[0].Price))
	assert.Equal(t, 3, res.Excluded[0].PriceTrace)
}

func TestApply_NoModificaConfig(t *testing.T) {
	cfg := batchConfig()
	rules := make(map[string]entity.Rule, len(cfg.Rules))
	for k, v := range cfg.Rules {
		rules[k] = v
	}
	excluded := append([]string(nil), cfg.ExcludedSKUs...)

	repricer.Apply([]entity.InventoryRow{row("250420-B", "1000", "0", 0)}, today, cfg)
	assert.Equal(t, excluded, cfg.ExcludedSKUs)
	assert.Equal(t, rules, cfg.Rules)
	assert.Equal(t, 1.1, cfg.GuardPercentage)
}

func TestSummarize(t *testing.T) {
	rows := []entity.InventoryRow{
		row("250320-C", "1000", "900", 0),
		row("250215-D", "1000", "900", 0),
		row("NODATE", "1000", "0", 0),
		row("230101-G", "1000", "0", 0),
	}
	s := repricer.Summarize(repricer.Apply(rows, today, batchConfig()))

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.Updated)
	assert.Equal(t, 1, s.Excluded)
	assert.Equal(t, 1, s.DateUnknown)
	assert.Equal(t, 1, s.GuardApplied)
	assert.Equal(t, 1, s.GuardBypassed)
	assert.Equal(t, 1, s.ActionCounts[entity.ActionPriceDown2])
	assert.Equal(t, 1, s.ActionCounts[entity.ActionMaintain])
	assert.Equal(t, 1, s.ActionCounts[entity.ActionExclude])
}

func TestApply_LoteVacio(t *testing.T) {
	res := repricer.Apply(nil, today, batchConfig())
	assert.Empty(t, res.Logs)
	assert.Empty(t, res.Updated)
	assert.Empty(t, res.Excluded)
}
