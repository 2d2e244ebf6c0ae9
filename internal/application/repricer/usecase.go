// Package repricer orquesta el motor de repricing: decodifica el archivo subido, carga la
// configuración vigente, particiona el lote y serializa las salidas.
package repricer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/repricer-api/internal/application/dto"
	"github.com/jhoicas/repricer-api/internal/domain"
	"github.com/jhoicas/repricer-api/internal/domain/entity"
	"github.com/jhoicas/repricer-api/internal/domain/repository"
	"github.com/jhoicas/repricer-api/internal/domain/repricer"
)

// DefaultPreviewLimit filas de vista previa si no se configura otro valor.
const DefaultPreviewLimit = 100

// RepriceInput archivo subido más la fecha de referencia opcional.
type RepriceInput struct {
	FileName string
	Content  []byte
	Today    *time.Time // nil = fecha actual en la zona configurada
}

// Options parámetros del caso de uso.
type Options struct {
	Location     *time.Location
	PreviewLimit int
	Now          func() time.Time
}

// UseCase casos de uso del repricer. No guarda estado entre ejecuciones: la configuración
// se relee del almacén en cada llamada.
type UseCase struct {
	configs  repository.RepricerConfigRepository
	codec    InventoryCodec
	runs     repository.RepricingRunRepository // nil = historial deshabilitado
	txRunner TxRunner
	report   ReportGenerator
	log      zerolog.Logger
	opts     Options
}

// NewUseCase construye el caso de uso. runs y txRunner pueden ser nil.
func NewUseCase(
	configs repository.RepricerConfigRepository,
	codec InventoryCodec,
	runs repository.RepricingRunRepository,
	txRunner TxRunner,
	report ReportGenerator,
	log zerolog.Logger,
	opts Options,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.PreviewLimit <= 0 {
		opts.PreviewLimit = DefaultPreviewLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &UseCase{
		configs:  configs,
		codec:    codec,
		runs:     runs,
		txRunner: txRunner,
		report:   report,
		log:      log,
		opts:     opts,
	}
}

// batch resultado intermedio compartido por preview, apply y report.
type batch struct {
	charset string
	today   time.Time
	result  entity.RepriceResult
	summary entity.RepriceSummary
}

// Preview procesa el lote sin persistir nada.
func (uc *UseCase) Preview(ctx context.Context, in RepriceInput) (*dto.RepriceResponse, error) {
	b, err := uc.process(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(in.FileName, b)
}

// Apply procesa el lote y, si el historial está habilitado, guarda la ejecución en una
// sola transacción antes de responder.
func (uc *UseCase) Apply(ctx context.Context, in RepriceInput) (*dto.RepriceResponse, error) {
	b, err := uc.process(ctx, in)
	if err != nil {
		return nil, err
	}
	resp, err := uc.toResponse(in.FileName, b)
	if err != nil {
		return nil, err
	}
	if uc.runs == nil {
		return resp, nil
	}

	run := &entity.RepricingRun{
		ID:        uuid.New().String(),
		FileName:  in.FileName,
		Today:     b.today,
		Summary:   b.summary,
		Logs:      b.result.Logs,
		CreatedAt: uc.opts.Now(),
	}
	save := func(runs repository.RepricingRunRepository) error { return runs.Create(ctx, run) }
	if uc.txRunner != nil {
		err = uc.txRunner.Run(ctx, save)
	} else {
		err = save(uc.runs)
	}
	if err != nil {
		return nil, fmt.Errorf("guardar ejecución: %w", err)
	}
	resp.RunID = run.ID
	uc.log.Info().Str("run_id", run.ID).Int("logs", len(run.Logs)).Msg("repricing run guardado")
	return resp, nil
}

// Report procesa el lote y devuelve el PDF con el resumen y las primeras filas.
func (uc *UseCase) Report(ctx context.Context, in RepriceInput) ([]byte, error) {
	if uc.report == nil {
		return nil, errors.New("generador de reportes no configurado")
	}
	b, err := uc.process(ctx, in)
	if err != nil {
		return nil, err
	}
	logs := b.result.Logs
	if len(logs) > uc.opts.PreviewLimit {
		logs = logs[:uc.opts.PreviewLimit]
	}
	pdf, err := uc.report.GenerateReport(ctx, &ReportData{
		FileName:    in.FileName,
		Today:       b.today,
		GeneratedAt: uc.opts.Now().In(uc.opts.Location),
		Summary:     b.summary,
		Logs:        logs,
	})
	if err != nil {
		return nil, fmt.Errorf("generar reporte: %w", err)
	}
	return pdf, nil
}

func (uc *UseCase) process(ctx context.Context, in RepriceInput) (*batch, error) {
	start := time.Now()

	charset, rows, err := uc.codec.Decode(in.Content)
	if err != nil {
		return nil, err
	}
	cfg, err := uc.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	today := uc.today(in.Today)
	res := repricer.Apply(rows, today, cfg)
	summary := repricer.Summarize(res)

	uc.log.Info().
		Str("file", in.FileName).
		Str("charset", charset).
		Str("today", today.Format(time.DateOnly)).
		Int("total", summary.Total).
		Int("updated", summary.Updated).
		Int("excluded", summary.Excluded).
		Int("date_unknown", summary.DateUnknown).
		Int("guard_applied", summary.GuardApplied).
		Dur("duration", time.Since(start)).
		Msg("lote procesado")

	return &batch{charset: charset, today: today, result: res, summary: summary}, nil
}

// loadConfig lee la configuración vigente. Sin documento se usa la configuración por defecto.
func (uc *UseCase) loadConfig(ctx context.Context) (*entity.RepricerConfig, error) {
	cfg, err := uc.configs.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		uc.log.Warn().Msg("config de repricer no encontrada, usando valores por defecto")
		return entity.DefaultRepricerConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cargar config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return cfg, nil
}

func (uc *UseCase) today(override *time.Time) time.Time {
	if override != nil {
		y, m, d := override.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, uc.opts.Location)
	}
	y, m, d := uc.opts.Now().In(uc.opts.Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, uc.opts.Location)
}

func (uc *UseCase) toResponse(fileName string, b *batch) (*dto.RepriceResponse, error) {
	updated, err := uc.codec.EncodeInventory(b.result.Updated)
	if err != nil {
		return nil, fmt.Errorf("serializar updated: %w", err)
	}
	excluded, err := uc.codec.EncodeInventory(b.result.Excluded)
	if err != nil {
		return nil, fmt.Errorf("serializar excluded: %w", err)
	}
	logCSV, err := uc.codec.EncodeLog(b.result.Logs)
	if err != nil {
		return nil, fmt.Errorf("serializar log: %w", err)
	}

	logs := b.result.Logs
	truncated := len(logs) > uc.opts.PreviewLimit
	if truncated {
		logs = logs[:uc.opts.PreviewLimit]
	}
	items := make([]dto.PreviewItem, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.PreviewItem{
			SKU:              l.SKU,
			DaysSinceListed:  l.DaysSinceListed,
			CurrentPrice:     l.Price,
			NewPrice:         l.NewPrice,
			Action:           string(l.Action),
			Reason:           l.Reason,
			PriceTraceChange: entity.PriceTraceChange(l.PriceTrace, l.NewPriceTrace),
		})
	}

	return &dto.RepriceResponse{
		FileName:       fileName,
		Charset:        b.charset,
		Today:          b.today.Format(time.DateOnly),
		Summary:        toSummaryResponse(b.summary),
		Items:          items,
		ItemsTruncated: truncated,
		UpdatedCSV:     updated,
		ExcludedCSV:    excluded,
		LogCSV:         logCSV,
	}, nil
}

func toSummaryResponse(s entity.RepriceSummary) dto.RepriceSummaryResponse {
	counts := make(map[string]int, len(entity.Actions))
	for _, a := range entity.Actions {
		counts[string(a)] = s.ActionCounts[a]
	}
	return dto.RepriceSummaryResponse{
		Total:         s.Total,
		Updated:       s.Updated,
		Excluded:      s.Excluded,
		DateUnknown:   s.DateUnknown,
		GuardApplied:  s.GuardApplied,
		GuardBypassed: s.GuardBypassed,
		ActionCounts:  counts,
	}
}
