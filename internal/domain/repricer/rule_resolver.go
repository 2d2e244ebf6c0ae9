package repricer

import (
	"strconv"

	"github.com/jhoicas/repricer-api/internal/domain/entity"
)

const bucketWidth = 30

var overLimitRule = entity.Rule{Action: entity.ActionExclude, PriceTraceTarget: 0}

// ResolveRule elige el menor tramo b con days <= b. Un límite exacto (90) pertenece a su
// propio tramo. Más de 360 días devuelve el tramo sintético over_365 con exclude fijo.
// days == entity.UnknownDays se filtra antes en Apply y no debe llegar aquí.
func ResolveRule(days int, cfg *entity.RepricerConfig) (string, entity.Rule) {
	for i := range entity.BucketKeys {
		limit := (i + 1) * bucketWidth
		if days <= limit {
			key := strconv.Itoa(limit)
			rule, ok := cfg.Rules[key]
			if !ok {
				rule = entity.Rule{Action: entity.ActionMaintain}
			}
			return key, rule
		}
	}
	return entity.OverLimitBucket, overLimitRule
}
