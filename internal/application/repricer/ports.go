package repricer

import (
	"context"
	"time"

	"github.com/jhoicas/repricer-api/internal/domain/entity"
	"github.com/jhoicas/repricer-api/internal/domain/repository"
)

// InventoryCodec lee y escribe el formato de intercambio del export de inventario.
type InventoryCodec interface {
	// Decode devuelve el charset detectado y las filas del archivo.
	Decode(raw []byte) (charset string, rows []entity.InventoryRow, err error)
	EncodeInventory(rows []entity.InventoryRow) ([]byte, error)
	EncodeLog(logs []entity.RepriceLogEntry) ([]byte, error)
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio
// de ejecuciones atado a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(runs repository.RepricingRunRepository) error) error
}

// ReportData datos que necesita el generador del reporte PDF.
type ReportData struct {
	FileName    string
	Today       time.Time
	GeneratedAt time.Time
	Summary     entity.RepriceSummary
	Logs        []entity.RepriceLogEntry // primeras filas del lote
}

// ReportGenerator genera el reporte imprimible de un lote.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, data *ReportData) ([]byte, error)
}
