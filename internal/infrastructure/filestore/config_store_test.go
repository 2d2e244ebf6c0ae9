package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repricer-api/internal/domain"
	"github.com/jhoicas/repricer-api/internal/domain/entity"
	"github.com/jhoicas/repricer-api/internal/infrastructure/filestore"
)

func TestConfigStore_LoadSinArchivo(t *testing.T) {
	store := filestore.NewConfigStore(filepath.Join(t.TempDir(), "cfg.json"))
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfigStore_EnsureDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfg.json")
	store := filestore.NewConfigStore(path)
	ctx := context.Background()

	created, err := store.EnsureDefault(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	cfg, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultRepricerConfig(), cfg)

	created, err = store.EnsureDefault(ctx)
	require.NoError(t, err)
	assert.False(t, created, "no sobreescribe un documento existente")
}

func TestConfigStore_SaveYLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	store := filestore.NewConfigStore(path)
	ctx := context.Background()

	cfg := entity.DefaultRepricerConfig()
	cfg.GuardPercentage = 1.25
	cfg.ExcludedSKUs = []string{"250101-A"}
	cfg.Rules["90"] = entity.Rule{Action: entity.ActionPriceTrace, PriceTraceTarget: 2}
	require.NoError(t, store.Save(ctx, cfg))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	parsed, err := entity.ParseRepricerConfigDocument(raw)
	require.NoError(t, err, "lo guardado es un documento válido")
	assert.Equal(t, cfg, parsed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no quedan temporales")
}

func TestConfigStore_LoadJSONCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte("{roto"), 0o644))

	_, err := filestore.NewConfigStore(path).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
