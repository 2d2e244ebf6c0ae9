package repricer

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/repricer-api/internal/domain/entity"
)

// ActionInput datos de una fila ya resuelta contra su tramo.
type ActionInput struct {
	Bucket     string
	Days       int
	Rule       entity.Rule
	Price      decimal.Decimal
	Breakeven  decimal.Decimal
	PriceTrace int
}

// ActionOutcome resultado de aplicar la acción del tramo.
type ActionOutcome struct {
	Action        entity.Action
	Reason        string
	NewPrice      decimal.Decimal
	NewPriceTrace int
	GuardApplied  bool
	GuardBypassed bool
}

type actionHandler func(in ActionInput, guardPct decimal.Decimal) ActionOutcome

var (
	rateDown1 = decimal.RequireFromString("0.99")
	rateDown2 = decimal.RequireFromString("0.98")
)

// actionHandlers un handler por variante de entity.Action. price_down_* y
// profit_ignore_down solo difieren en el guard.
var actionHandlers = map[entity.Action]actionHandler{
	entity.ActionMaintain:         keepPrice(entity.ActionMaintain, "no change"),
	entity.ActionPriceTrace:       switchPriceTrace,
	entity.ActionPriceDown1:       priceDown(entity.ActionPriceDown1, rateDown1, true),
	entity.ActionPriceDown2:       priceDown(entity.ActionPriceDown2, rateDown2, true),
	entity.ActionProfitIgnoreDown: priceDown(entity.ActionProfitIgnoreDown, rateDown1, false),
	entity.ActionExclude:          keepPrice(entity.ActionExclude, "manual handling required"),
}

// ComputeAction aplica la regla resuelta al precio de la fila. Una acción fuera del
// conjunto (config sin validar) se trata como maintain.
func ComputeAction(in ActionInput, cfg *entity.RepricerConfig) ActionOutcome {
	h, ok := actionHandlers[in.Rule.Action]
	if !ok {
		h = actionHandlers[entity.ActionMaintain]
	}
	return h(in, cfg.Guard())
}

// RoundPrice redondea a entero; 0.5 sube (half away from zero).
func RoundPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// GuardPrice piso de utilidad: round(breakeven * guardPct).
func GuardPrice(breakeven, guardPct decimal.Decimal) decimal.Decimal {
	return RoundPrice(breakeven.Mul(guardPct))
}

func keepPrice(action entity.Action, note string) actionHandler {
	return func(in ActionInput, _ decimal.Decimal) ActionOutcome {
		return ActionOutcome{
			Action:        action,
			Reason:        fmt.Sprintf("%s: %s, %s", bucketContext(in), action, note),
			NewPrice:      in.Price,
			NewPriceTrace: in.PriceTrace,
		}
	}
}

func switchPriceTrace(in ActionInput, _ decimal.Decimal) ActionOutcome {
	return ActionOutcome{
		Action:        entity.ActionPriceTrace,
		Reason:        fmt.Sprintf("%s: priceTrace %d -> %d", bucketContext(in), in.PriceTrace, in.Rule.PriceTraceTarget),
		NewPrice:      in.Price,
		NewPriceTrace: in.Rule.PriceTraceTarget,
	}
}

func priceDown(action entity.Action, rate decimal.Decimal, guarded bool) actionHandler {
	pct := decimal.NewFromInt(1).Sub(rate).Shift(2).String()
	return func(in ActionInput, guardPct decimal.Decimal) ActionOutcome {
		newPrice := RoundPrice(in.Price.Mul(rate))
		out := ActionOutcome{
			Action:        action,
			Reason:        fmt.Sprintf("%s: %s -%s%% (%s -> %s)", bucketContext(in), action, pct, in.Price.String(), newPrice.String()),
			NewPrice:      newPrice,
			NewPriceTrace: in.PriceTrace,
		}
		if !guarded {
			out.GuardBypassed = true
			out.Reason += " [profit guard bypassed]"
			return out
		}
		guard := GuardPrice(in.Breakeven, guardPct)
		if newPrice.LessThan(guard) {
			out.NewPrice = guard
			out.GuardApplied = true
			out.Reason += fmt.Sprintf(" [guard applied: raised to %s]", guard.String())
		}
		return out
	}
}

func bucketContext(in ActionInput) string {
	return fmt.Sprintf("bucket %s (%d days)", in.Bucket, in.Days)
}
