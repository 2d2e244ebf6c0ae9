package csvcodec

import (
	"regexp"
	"strings"
)

// Columnas del export (orden significativo).
const (
	ColSKU           = "SKU"
	ColASIN          = "ASIN"
	ColTitle         = "title"
	ColNumber        = "number"
	ColPrice         = "price"
	ColCost          = "cost"
	ColAkaji         = "akaji"
	ColTakane        = "takane"
	ColCondition     = "condition"
	ColConditionNote = "conditionNote"
	ColPriceTrace    = "priceTrace"
	ColLeadtime      = "leadtime"
	ColAmazonFee     = "amazon-fee"
	ColShippingPrice = "shipping-price"
	ColProfit        = "profit"
	ColAddDelete     = "add-delete"
)

// InventoryColumns las 16 columnas en orden de salida.
var InventoryColumns = []string{
	ColSKU, ColASIN, ColTitle, ColNumber, ColPrice, ColCost, ColAkaji, ColTakane,
	ColCondition, ColConditionNote, ColPriceTrace, ColLeadtime, ColAmazonFee,
	ColShippingPrice, ColProfit, ColAddDelete,
}

// stringColumns columnas de texto: llegan y salen con el marcador ="…".
var stringColumns = map[string]bool{
	ColSKU:           true,
	ColASIN:          true,
	ColTitle:         true,
	ColCondition:     true,
	ColConditionNote: true,
	ColAddDelete:     true,
}

// LogColumns columnas del archivo de log.
var LogColumns = []string{
	"SKU", "daysSinceListed", "action", "reason", "price", "newPrice", "priceTrace", "newPriceTrace",
}

var reExcelLiteral = regexp.MustCompile(`^="(.*)"$`)

// StripExcelMarker quita el envoltorio ="…" y, si está incompleto, el =" inicial o la
// comilla final sobrante.
func StripExcelMarker(v string) string {
	if m := reExcelLiteral.FindStringSubmatch(v); m != nil {
		return m[1]
	}
	if strings.HasPrefix(v, `="`) {
		return v[2:]
	}
	if strings.HasSuffix(v, `"`) {
		return v[:len(v)-1]
	}
	return v
}

// WrapExcelMarker envuelve v como literal de texto para Excel. El vacío queda vacío.
func WrapExcelMarker(v string) string {
	if v == "" {
		return ""
	}
	return `="` + v + `"`
}

// IsStringColumn indica si la columna se trata como texto en el formato de intercambio.
func IsStringColumn(col string) bool {
	return stringColumns[col]
}
