package repricer

import (
	"time"

	"github.com/jhoicas/repricer-api/internal/domain/entity"
)

// Motivos fijos de las ramas que no pasan por la tabla de reglas.
const (
	ReasonExplicitlyExcluded = "explicitly excluded SKU"
	ReasonDateUnknown        = "date unknown"
	ReasonOverLimit          = "over 365 days, manual handling required"
)

// maxListedDays por encima de este límite la fila se excluye antes de resolver el tramo.
const maxListedDays = 365

// Apply recorre el lote en orden y devuelve el log completo más las particiones
// Updated/Excluded. Cada fila termina en exactamente una partición y genera una
// entrada de log. cfg debe venir validada y no se modifica.
func Apply(rows []entity.InventoryRow, today time.Time, cfg *entity.RepricerConfig) entity.RepriceResult {
	res := entity.RepriceResult{
		Logs:     make([]entity.RepriceLogEntry, 0, len(rows)),
		Updated:  make([]entity.InventoryRow, 0, len(rows)),
		Excluded: make([]entity.InventoryRow, 0),
	}

	for _, row := range rows {
		if cfg.IsExcluded(row.SKU) {
			// La antigüedad solo se informa en el log; no interviene en la decisión.
			res.Logs = append(res.Logs, unchangedLog(row, ExtractDays(row.SKU, today), entity.ActionExclude, ReasonExplicitlyExcluded))
			res.Excluded = append(res.Excluded, row)
			continue
		}

		days := ExtractDays(row.SKU, today)
		if days == entity.UnknownDays {
			// Se conserva la ubicación heredada: fecha desconocida va a Updated sin cambios.
			res.Logs = append(res.Logs, unchangedLog(row, days, entity.ActionMaintain, ReasonDateUnknown))
			res.Updated = append(res.Updated, row)
			continue
		}
		if days > maxListedDays {
			res.Logs = append(res.Logs, unchangedLog(row, days, entity.ActionExclude, ReasonOverLimit))
			res.Excluded = append(res.Excluded, row)
			continue
		}

		bucket, rule := ResolveRule(days, cfg)
		out := ComputeAction(ActionInput{
			Bucket:     bucket,
			Days:       days,
			Rule:       rule,
			Price:      row.Price,
			Breakeven:  row.Breakeven,
			PriceTrace: row.PriceTrace,
		}, cfg)

		res.Logs = append(res.Logs, entity.RepriceLogEntry{
			SKU:             row.SKU,
			DaysSinceListed: days,
			Action:          out.Action,
			Reason:          out.Reason,
			Price:           row.Price,
			NewPrice:        out.NewPrice,
			PriceTrace:      row.PriceTrace,
			NewPriceTrace:   out.NewPriceTrace,
			GuardApplied:    out.GuardApplied,
			GuardBypassed:   out.GuardBypassed,
		})
		updated := row.WithPricing(out.NewPrice, out.NewPriceTrace)
		if out.Action == entity.ActionExclude {
			res.Excluded = append(res.Excluded, updated)
		} else {
			res.Updated = append(res.Updated, updated)
		}
	}
	return res
}

func unchangedLog(row entity.InventoryRow, days int, action entity.Action, reason string) entity.RepriceLogEntry {
	return entity.RepriceLogEntry{
		SKU:             row.SKU,
		DaysSinceListed: days,
		Action:          action,
		Reason:          reason,
		Price:           row.Price,
		NewPrice:        row.Price,
		PriceTrace:      row.PriceTrace,
		NewPriceTrace:   row.PriceTrace,
	}
}

// Summarize cuenta filas por partición y por acción.
func Summarize(res entity.RepriceResult) entity.RepriceSummary {
	s := entity.RepriceSummary{
		Total:        len(res.Logs),
		Updated:      len(res.Updated),
		Excluded:     len(res.Excluded),
		ActionCounts: make(map[entity.Action]int, len(entity.Actions)),
	}
	for _, l := range res.Logs {
		s.ActionCounts[l.Action]++
		if l.Reason == ReasonDateUnknown {
			s.DateUnknown++
		}
		if l.GuardApplied {
			s.GuardApplied++
		}
		if l.GuardBypassed {
			s.GuardBypassed++
		}
	}
	return s
}
