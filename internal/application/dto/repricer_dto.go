package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RepriceSummaryResponse conteos del lote.
type RepriceSummaryResponse struct {
	Total         int            `json:"total"`
	Updated       int            `json:"updated"`
	Excluded      int            `json:"excluded"`
	DateUnknown   int            `json:"date_unknown"`
	GuardApplied  int            `json:"guard_applied"`
	GuardBypassed int            `json:"guard_bypassed"`
	ActionCounts  map[string]int `json:"action_counts"`
}

// PreviewItem una fila del lote tal como se muestra en la vista previa.
type PreviewItem struct {
	SKU              string          `json:"sku"`
	DaysSinceListed  int             `json:"days_since_listed"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	NewPrice         decimal.Decimal `json:"new_price"`
	Action           string          `json:"action"`
	Reason           string          `json:"reason"`
	PriceTraceChange string          `json:"price_trace_change"`
}

// RepriceResponse salida de preview y apply. Los CSV van en cp932 (base64 en JSON).
type RepriceResponse struct {
	RunID          string                 `json:"run_id,omitempty"`
	FileName       string                 `json:"file_name"`
	Charset        string                 `json:"charset"`
	Today          string                 `json:"today"`
	Summary        RepriceSummaryResponse `json:"summary"`
	Items          []PreviewItem          `json:"items"`
	ItemsTruncated bool                   `json:"items_truncated"`
	UpdatedCSV     []byte                 `json:"updated_csv"`
	ExcludedCSV    []byte                 `json:"excluded_csv"`
	LogCSV         []byte                 `json:"log_csv"`
}

// ActionInfo descripción de una acción configurable.
type ActionInfo struct {
	Action    string `json:"action"`
	Guarded   bool   `json:"guarded"`
	Partition string `json:"partition"`
}

// PriceTraceInfo código de directiva y su etiqueta.
type PriceTraceInfo struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
}

// ActionsResponse catálogo para construir el formulario de configuración.
type ActionsResponse struct {
	Actions     []ActionInfo     `json:"actions"`
	PriceTraces []PriceTraceInfo `json:"price_traces"`
	Buckets     []string         `json:"buckets"`
}

// RunLogItem línea de log de una ejecución guardada.
type RunLogItem struct {
	SKU             string          `json:"sku"`
	DaysSinceListed int             `json:"days_since_listed"`
	Action          string          `json:"action"`
	Reason          string          `json:"reason"`
	Price           decimal.Decimal `json:"price"`
	NewPrice        decimal.Decimal `json:"new_price"`
	PriceTrace      int             `json:"price_trace"`
	NewPriceTrace   int             `json:"new_price_trace"`
}

// RunResponse ejecución guardada en el historial.
type RunResponse struct {
	ID        string                 `json:"id"`
	FileName  string                 `json:"file_name"`
	Today     string                 `json:"today"`
	Summary   RepriceSummaryResponse `json:"summary"`
	CreatedAt time.Time              `json:"created_at"`
	Logs      []RunLogItem           `json:"logs,omitempty"`
}

// RunListResponse lista paginada del historial.
type RunListResponse struct {
	Items []RunResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
