// Package filestore persiste la configuración del repricer como un documento JSON en disco.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/repricer-api/internal/domain"
	"github.com/jhoicas/repricer-api/internal/domain/entity"
	"github.com/jhoicas/repricer-api/internal/domain/repository"
)

// ConfigStore implementa repository.RepricerConfigRepository sobre un archivo JSON.
type ConfigStore struct {
	path string
	mu   sync.Mutex
}

var _ repository.RepricerConfigRepository = (*ConfigStore)(nil)

// NewConfigStore crea el store apuntando a path (el archivo puede no existir aún).
func NewConfigStore(path string) *ConfigStore {
	return &ConfigStore{path: path}
}

// Path ruta del documento.
func (s *ConfigStore) Path() string {
	return s.path
}

// Load lee el documento vigente. Sin caché: cada ejecución ve la última versión guardada.
func (s *ConfigStore) Load(ctx context.Context) (*entity.RepricerConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config %s: %w", s.path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("leer config: %w", err)
	}
	var cfg entity.RepricerConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if cfg.ExcludedSKUs == nil {
		cfg.ExcludedSKUs = []string{}
	}
	return &cfg, nil
}

// Save reemplaza el documento escribiendo un temporal en el mismo directorio y renombrándolo,
// de modo que un lector nunca observa un archivo a medio escribir.
func (s *ConfigStore) Save(ctx context.Context, cfg *entity.RepricerConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar config: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio de config: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".repricer_config-*.json")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("escribir temporal: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync temporal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("cerrar temporal: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("reemplazar config: %w", err)
	}
	return nil
}

// EnsureDefault escribe DefaultRepricerConfig si el documento todavía no existe.
// Devuelve true cuando creó el archivo.
func (s *ConfigStore) EnsureDefault(ctx context.Context) (bool, error) {
	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config: %w", err)
	}
	if err := s.Save(ctx, entity.DefaultRepricerConfig()); err != nil {
		return false, err
	}
	return true, nil
}
