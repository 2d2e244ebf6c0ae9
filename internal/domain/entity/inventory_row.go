package entity

import "github.com/shopspring/decimal"

// InventoryRow representa una fila del export de inventario (un listing).
// Solo vive durante una ejecución de lote; el motor no la persiste.
type InventoryRow struct {
	SKU            string // codifica la fecha de publicación
	ASIN           string
	Title          string
	Quantity       string // columna "number", se copia tal cual
	Price          decimal.Decimal
	Cost           decimal.Decimal
	Breakeven      decimal.Decimal // "akaji": piso de costo
	Ceiling        decimal.Decimal // "takane": referencia, no se usa en el cálculo
	Condition      string
	ConditionNote  string
	PriceTrace     int // código de directiva para la herramienta de repricing externa
	Leadtime       decimal.Decimal
	MarketplaceFee decimal.Decimal
	ShippingPrice  decimal.Decimal
	Profit         decimal.Decimal
	AddDeleteFlag  string
}

// WithPricing devuelve una copia con precio y directiva reemplazados.
func (r InventoryRow) WithPricing(price decimal.Decimal, priceTrace int) InventoryRow {
	r.Price = price
	r.PriceTrace = priceTrace
	return r
}
