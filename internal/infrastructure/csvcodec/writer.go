package csvcodec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/repricer-api/internal/domain/entity"
)

var cellSanitizer = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")

// WriteInventory serializa filas al esquema de 16 columnas: texto como ="…",
// números planos, CRLF, cp932.
func WriteInventory(rows []entity.InventoryRow) ([]byte, error) {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, inventoryRecord(r))
	}
	return writeCP932(InventoryColumns, records)
}

// WriteLog serializa el log completo del lote.
func WriteLog(logs []entity.RepriceLogEntry) ([]byte, error) {
	records := make([][]string, 0, len(logs))
	for _, l := range logs {
		records = append(records, []string{
			WrapExcelMarker(sanitize(l.SKU)),
			strconv.Itoa(l.DaysSinceListed),
			string(l.Action),
			sanitize(l.Reason),
			formatNumber(l.Price),
			formatNumber(l.NewPrice),
			strconv.Itoa(l.PriceTrace),
			strconv.Itoa(l.NewPriceTrace),
		})
	}
	return writeCP932(LogColumns, records)
}

func inventoryRecord(r entity.InventoryRow) []string {
	text := func(v string) string { return WrapExcelMarker(sanitize(v)) }
	return []string{
		text(r.SKU),
		text(r.ASIN),
		text(r.Title),
		sanitize(r.Quantity),
		formatNumber(r.Price),
		formatNumber(r.Cost),
		formatNumber(r.Breakeven),
		formatNumber(r.Ceiling),
		text(r.Condition),
		text(r.ConditionNote),
		strconv.Itoa(r.PriceTrace),
		formatNumber(r.Leadtime),
		formatNumber(r.MarketplaceFee),
		formatNumber(r.ShippingPrice),
		formatNumber(r.Profit),
		text(r.AddDeleteFlag),
	}
}

func writeCP932(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("escribir cabecera: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("escribir filas: %w", err)
	}
	return EncodeCP932(buf.String()), nil
}

func sanitize(v string) string {
	return cellSanitizer.Replace(v)
}

func formatNumber(d decimal.Decimal) string {
	return d.String()
}
