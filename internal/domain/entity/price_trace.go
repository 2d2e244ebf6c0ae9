package entity

import "fmt"

// PriceTraceLabels nombres de los códigos de directiva que entiende la herramienta de
// repricing externa. El motor solo asigna el código; nunca interpreta su significado.
var PriceTraceLabels = map[int]string{
	0: "no tracking",
	1: "FBA condition match",
	2: "condition match",
	3: "FBA lowest price",
	4: "lowest price",
	5: "cart price",
}

// PriceTraceLabel etiqueta legible de un código; los códigos desconocidos se muestran tal cual.
func PriceTraceLabel(code int) string {
	if l, ok := PriceTraceLabels[code]; ok {
		return l
	}
	return fmt.Sprintf("code %d", code)
}

// PriceTraceChange describe el cambio de directiva de una fila.
func PriceTraceChange(from, to int) string {
	if from == to {
		return "unchanged"
	}
	return fmt.Sprintf("%d → %d (%s)", from, to, PriceTraceLabel(to))
}
