package repository

import (
	"context"

	"github.com/jhoicas/repricer-api/internal/domain/entity"
)

// RepricingRunRepository define el puerto de persistencia del historial de ejecuciones (DIP).
type RepricingRunRepository interface {
	Create(ctx context.Context, run *entity.RepricingRun) error
	GetByID(ctx context.Context, id string) (*entity.RepricingRun, error)
	List(ctx context.Context, limit, offset int) ([]*entity.RepricingRun, error)
}
