package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/repricer-api/internal/domain"
	"github.com/jhoicas/repricer-api/internal/domain/entity"
	"github.com/jhoicas/repricer-api/internal/domain/repository"
)

var _ repository.RepricingRunRepository = (*RepricingRunRepo)(nil)

// RepricingRunRepo implementación de RepricingRunRepository (usable con pool o tx).
type RepricingRunRepo struct {
	q Querier
}

// NewRepricingRunRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRepricingRunRepository(q Querier) *RepricingRunRepo {
	return &RepricingRunRepo{q: q}
}

var runLogColumns = []string{
	"run_id", "position", "sku", "days_since_listed", "action", "reason",
	"price", "new_price", "price_trace", "new_price_trace", "guard_applied", "guard_bypassed",
}

// Create persiste la cabecera y copia todas las líneas de log con COPY.
func (r *RepricingRunRepo) Create(ctx context.Context, run *entity.RepricingRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	// COPY usa formato binario: el id viaja como uuid.UUID y no como texto.
	runID, err := uuid.Parse(run.ID)
	if err != nil {
		return fmt.Errorf("repricing run id %q: %w", run.ID, domain.ErrInvalidInput)
	}
	counts, err := json.Marshal(run.Summary.ActionCounts)
	if err != nil {
		return fmt.Errorf("serializar action_counts: %w", err)
	}
	s := run.Summary
	query := `
		INSERT INTO repricing_runs (id, file_name, today, total, updated, excluded, date_unknown,
		                            guard_applied, guard_bypassed, action_counts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		runID, run.FileName, run.Today, s.Total, s.Updated, s.Excluded, s.DateUnknown,
		s.GuardApplied, s.GuardBypassed, counts, run.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repricing run %s already exists: %w", run.ID, err)
		}
		return fmt.Errorf("insert repricing run: %w", err)
	}

	if len(run.Logs) == 0 {
		return nil
	}
	_, err = r.q.CopyFrom(ctx, pgx.Identifier{"repricing_run_logs"}, runLogColumns,
		pgx.CopyFromSlice(len(run.Logs), func(i int) ([]any, error) {
			l := run.Logs[i]
			return []any{
				runID, i, l.SKU, l.DaysSinceListed, string(l.Action), l.Reason,
				l.Price, l.NewPrice, l.PriceTrace, l.NewPriceTrace, l.GuardApplied, l.GuardBypassed,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy repricing run logs: %w", err)
	}
	return nil
}

const selectRun = `
		SELECT id::TEXT, file_name, today, total, updated, excluded, date_unknown,
		       guard_applied, guard_bypassed, action_counts, created_at
		FROM repricing_runs`

// GetByID obtiene una ejecución con su log completo. domain.ErrNotFound si no existe.
func (r *RepricingRunRepo) GetByID(ctx context.Context, id string) (*entity.RepricingRun, error) {
	runID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	run, err := scanRun(r.q.QueryRow(ctx, selectRun+` WHERE id = $1`, runID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get repricing run: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT sku, days_since_listed, action, reason, price, new_price,
		       price_trace, new_price_trace, guard_applied, guard_bypassed
		FROM repricing_run_logs
		WHERE run_id = $1
		ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("get repricing run logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l entity.RepriceLogEntry
		var action string
		if err := rows.Scan(
			&l.SKU, &l.DaysSinceListed, &action, &l.Reason, &l.Price, &l.NewPrice,
			&l.PriceTrace, &l.NewPriceTrace, &l.GuardApplied, &l.GuardBypassed,
		); err != nil {
			return nil, fmt.Errorf("scan repricing run log: %w", err)
		}
		l.Action = entity.Action(action)
		run.Logs = append(run.Logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate repricing run logs: %w", err)
	}
	return run, nil
}

// List devuelve las cabeceras más recientes primero; los logs no se cargan.
func (r *RepricingRunRepo) List(ctx context.Context, limit, offset int) ([]*entity.RepricingRun, error) {
	rows, err := r.q.Query(ctx, selectRun+` ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list repricing runs: %w", err)
	}
	defer rows.Close()

	var list []*entity.RepricingRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan repricing run: %w", err)
		}
		list = append(list, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate repricing runs: %w", err)
	}
	return list, nil
}

func scanRun(row pgx.Row) (*entity.RepricingRun, error) {
	var run entity.RepricingRun
	var counts []byte
	s := &run.Summary
	if err := row.Scan(
		&run.ID, &run.FileName, &run.Today, &s.Total, &s.Updated, &s.Excluded, &s.DateUnknown,
		&s.GuardApplied, &s.GuardBypassed, &counts, &run.CreatedAt,
	); err != nil {
		return nil, err
	}
	s.ActionCounts = make(map[entity.Action]int)
	if len(counts) > 0 {
		if err := json.Unmarshal(counts, &s.ActionCounts); err != nil {
			return nil, fmt.Errorf("decodificar action_counts: %w", err)
		}
	}
	return &run, nil
}
