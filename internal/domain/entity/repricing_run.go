package entity

import "time"

// RepricingRun ejecución de "apply" guardada en el historial.
type RepricingRun struct {
	ID        string
	FileName  string
	Today     time.Time // fecha de referencia usada para calcular la antigüedad
	Summary   RepriceSummary
	Logs      []RepriceLogEntry
	CreatedAt time.Time
}
