package repository

import (
	"context"

	"github.com/jhoicas/repricer-api/internal/domain/entity"
)

// RepricerConfigRepository define el puerto del almacén externo de la configuración del repricer.
type RepricerConfigRepository interface {
	// Load lee el documento vigente; se invoca en cada ejecución (sin caché).
	Load(ctx context.Context) (*entity.RepricerConfig, error)
	// Save reemplaza el documento de forma atómica. cfg ya viene validada.
	Save(ctx context.Context, cfg *entity.RepricerConfig) error
}
