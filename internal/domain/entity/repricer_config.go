package entity

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Action acción de repricing asignada a un tramo de antigüedad.
type Action string

// Las seis acciones soportadas. El conjunto es cerrado.
const (
	ActionMaintain         Action = "maintain"
	ActionPriceTrace       Action = "priceTrace"
	ActionPriceDown1       Action = "price_down_1"
	ActionPriceDown2       Action = "price_down_2"
	ActionProfitIgnoreDown Action = "profit_ignore_down"
	ActionExclude          Action = "exclude"
)

// Actions lista las acciones en orden de presentación.
var Actions = []Action{
	ActionMaintain,
	ActionPriceTrace,
	ActionPriceDown1,
	ActionPriceDown2,
	ActionProfitIgnoreDown,
	ActionExclude,
}

// Valid indica si la acción pertenece al conjunto cerrado.
func (a Action) Valid() bool {
	for _, v := range Actions {
		if a == v {
			return true
		}
	}
	return false
}

// BucketKeys tramos fijos de 30 días, ascendentes.
var BucketKeys = []string{"30", "60", "90", "120", "150", "180", "210", "240", "270", "300", "330", "360"}

// OverLimitBucket tramo sintético para listings de más de 360 días; no es configurable.
const OverLimitBucket = "over_365"

// Rule acción y código de directiva objetivo de un tramo.
type Rule struct {
	Action           Action `json:"action"`
	PriceTraceTarget int    `json:"priceTraceTarget"`
}

// RepricerConfig tabla de reglas y parámetros del guard de utilidad.
// Se carga desde el almacén JSON en cada ejecución y el motor nunca la modifica.
type RepricerConfig struct {
	GuardPercentage    float64         `json:"guardPercentage"`
	ExcludedSKUs       []string        `json:"excludedSkus"`
	QuarterRuleEnabled bool            `json:"quarterRuleEnabled"` // reservado para la regla de temporada (Q4)
	Rules              map[string]Rule `json:"rules"`
}

// DefaultRepricerConfig configuración inicial: guard 1.1 y todos los tramos en maintain.
func DefaultRepricerConfig() *RepricerConfig {
	rules := make(map[string]Rule, len(BucketKeys))
	for _, k := range BucketKeys {
		rules[k] = Rule{Action: ActionMaintain, PriceTraceTarget: 0}
	}
	return &RepricerConfig{
		GuardPercentage:    1.1,
		ExcludedSKUs:       []string{},
		QuarterRuleEnabled: false,
		Rules:              rules,
	}
}

// Guard multiplicador del guard como decimal.
func (c *RepricerConfig) Guard() decimal.Decimal {
	return decimal.NewFromFloat(c.GuardPercentage)
}

// IsExcluded indica si el SKU está en la lista de exclusión explícita.
func (c *RepricerConfig) IsExcluded(sku string) bool {
	for _, s := range c.ExcludedSKUs {
		if s == sku {
			return true
		}
	}
	return false
}

// Validate comprueba los invariantes de una configuración ya decodificada.
func (c *RepricerConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("config es nil")
	}
	if c.GuardPercentage < 1.0 {
		return fmt.Errorf("guardPercentage debe ser >= 1.0 (recibido %v)", c.GuardPercentage)
	}
	if len(c.Rules) != len(BucketKeys) {
		return fmt.Errorf("rules debe tener exactamente %d tramos (recibidos %d)", len(BucketKeys), len(c.Rules))
	}
	for _, k := range BucketKeys {
		r, ok := c.Rules[k]
		if !ok {
			return fmt.Errorf("rules.%s es requerido", k)
		}
		if !r.Action.Valid() {
			return fmt.Errorf("rules.%s.action desconocida: %q", k, r.Action)
		}
	}
	return nil
}

var requiredConfigKeys = []string{"guardPercentage", "excludedSkus", "quarterRuleEnabled", "rules"}

// ParseRepricerConfigDocument valida un documento JSON completo (presencia de claves,
// tramos exactos, acciones y priceTraceTarget) y lo decodifica. Devuelve la primera
// violación encontrada.
func ParseRepricerConfigDocument(raw []byte) (*RepricerConfig, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("JSON inválido: %v", err)
	}
	for _, k := range requiredConfigKeys {
		if v, ok := doc[k]; !ok || string(v) == "null" {
			return nil, fmt.Errorf("%s es requerido", k)
		}
	}

	var rules map[string]map[string]json.RawMessage
	if err := json.Unmarshal(doc["rules"], &rules); err != nil {
		return nil, fmt.Errorf("rules debe ser un objeto: %v", err)
	}
	known := make(map[string]bool, len(BucketKeys))
	for _, k := range BucketKeys {
		known[k] = true
		if _, ok := rules[k]; !ok {
			return nil, fmt.Errorf("rules.%s es requerido", k)
		}
	}
	var unknown []string
	for k := range rules {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("rules.%s no es un tramo válido", unknown[0])
	}
	for _, k := range BucketKeys {
		rule := rules[k]
		rawAction, ok := rule["action"]
		if !ok {
			return nil, fmt.Errorf("rules.%s.action es requerido", k)
		}
		var action Action
		if err := json.Unmarshal(rawAction, &action); err != nil || !action.Valid() {
			return nil, fmt.Errorf("rules.%s.action desconocida: %s", k, string(rawAction))
		}
		rawTarget, ok := rule["priceTraceTarget"]
		if !ok {
			return nil, fmt.Errorf("rules.%s.priceTraceTarget es requerido", k)
		}
		if _, err := strconv.Atoi(string(rawTarget)); err != nil {
			return nil, fmt.Errorf("rules.%s.priceTraceTarget debe ser entero: %s", k, string(rawTarget))
		}
	}

	var cfg RepricerConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decodificar config: %v", err)
	}
	if cfg.ExcludedSKUs == nil {
		cfg.ExcludedSKUs = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
