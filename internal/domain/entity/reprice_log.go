package entity

import "github.com/shopspring/decimal"

// UnknownDays indica que no se pudo extraer la fecha de publicación del SKU.
const UnknownDays = -1

// RepriceLogEntry una entrada por fila de entrada, sin importar la partición.
type RepriceLogEntry struct {
	SKU             string
	DaysSinceListed int
	Action          Action
	Reason          string
	Price           decimal.Decimal
	NewPrice        decimal.Decimal
	PriceTrace      int
	NewPriceTrace   int
	GuardApplied    bool
	GuardBypassed   bool
}

// RepriceResult salida alineada del particionador de lotes.
type RepriceResult struct {
	Logs     []RepriceLogEntry
	Updated  []InventoryRow
	Excluded []InventoryRow
}

// RepriceSummary conteos agregados de un lote.
type RepriceSummary struct {
	Total         int
	Updated       int
	Excluded      int
	DateUnknown   int
	GuardApplied  int
	GuardBypassed int
	ActionCounts  map[Action]int
}
