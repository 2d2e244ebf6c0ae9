package repricer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/repricer-api/internal/application/dto"
	"github.com/jhoicas/repricer-api/internal/domain"
	"github.com/jhoicas/repricer-api/internal/domain/entity"
)

// GetConfig devuelve el documento vigente (o el de por defecto si aún no existe).
func (uc *UseCase) GetConfig(ctx context.Context) (*entity.RepricerConfig, error) {
	cfg, err := uc.configs.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return entity.DefaultRepricerConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cargar config: %w", err)
	}
	return cfg, nil
}

// UpdateConfig valida el documento completo, lo guarda y devuelve lo guardado.
// Cualquier violación se informa como domain.ErrInvalidConfig y no se escribe nada.
func (uc *UseCase) UpdateConfig(ctx context.Context, raw []byte) (*entity.RepricerConfig, error) {
	cfg, err := entity.ParseRepricerConfigDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if err := uc.configs.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("guardar config: %w", err)
	}
	uc.log.Info().
		Float64("guard_percentage", cfg.GuardPercentage).
		Int("excluded_skus", len(cfg.ExcludedSKUs)).
		Msg("config de repricer actualizada")
	return cfg, nil
}

// Actions catálogo de acciones, directivas y tramos.
func (uc *UseCase) Actions() dto.ActionsResponse {
	actions := make([]dto.ActionInfo, 0, len(entity.Actions))
	for _, a := range entity.Actions {
		info := dto.ActionInfo{Action: string(a), Partition: "updated"}
		switch a {
		case entity.ActionPriceDown1, entity.ActionPriceDown2:
			info.Guarded = true
		case entity.ActionExclude:
			info.Partition = "excluded"
		}
		actions = append(actions, info)
	}

	codes := make([]int, 0, len(entity.PriceTraceLabels))
	for c := range entity.PriceTraceLabels {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	traces := make([]dto.PriceTraceInfo, 0, len(codes))
	for _, c := range codes {
		traces = append(traces, dto.PriceTraceInfo{Code: c, Label: entity.PriceTraceLabel(c)})
	}

	buckets := make([]string, len(entity.BucketKeys))
	copy(buckets, entity.BucketKeys)
	return dto.ActionsResponse{Actions: actions, PriceTraces: traces, Buckets: buckets}
}

// ListRuns lista el historial, más reciente primero.
func (uc *UseCase) ListRuns(ctx context.Context, page dto.PageRequest) (*dto.RunListResponse, error) {
	if uc.runs == nil {
		return nil, domain.ErrRunStoreDisabled
	}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	list, err := uc.runs.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar ejecuciones: %w", err)
	}
	items := make([]dto.RunResponse, 0, len(list))
	for _, run := range list {
		items = append(items, toRunResponse(run, false))
	}
	return &dto.RunListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetRun obtiene una ejecución con su log completo.
func (uc *UseCase) GetRun(ctx context.Context, id string) (*dto.RunResponse, error) {
	if uc.runs == nil {
		return nil, domain.ErrRunStoreDisabled
	}
	run, err := uc.runs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toRunResponse(run, true)
	return &resp, nil
}

func toRunResponse(run *entity.RepricingRun, withLogs bool) dto.RunResponse {
	resp := dto.RunResponse{
		ID:        run.ID,
		FileName:  run.FileName,
		Today:     run.Today.Format(time.DateOnly),
		Summary:   toSummaryResponse(run.Summary),
		CreatedAt: run.CreatedAt,
	}
	if !withLogs {
		return resp
	}
	resp.Logs = make([]dto.RunLogItem, 0, len(run.Logs))
	for _, l := range run.Logs {
		resp.Logs = append(resp.Logs, dto.RunLogItem{
			SKU:             l.SKU,
			DaysSinceListed: l.DaysSinceListed,
			Action:          string(l.Action),
			Reason:          l.Reason,
			Price:           l.Price,
			NewPrice:        l.NewPrice,
			PriceTrace:      l.PriceTrace,
			NewPriceTrace:   l.NewPriceTrace,
		})
	}
	return resp
}
