package csvcodec

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/repricer-api/internal/domain"
	"github.com/jhoicas/repricer-api/internal/domain/entity"
)

// Decoded resultado de leer un archivo subido.
type Decoded struct {
	Charset string
	Header  []string
	Rows    []entity.InventoryRow
}

// table CSV ya parseado con índice de columnas por nombre.
type table struct {
	header  []string
	index   map[string]int
	records [][]string
}

// ReadInventory decodifica el archivo probando cp932, utf-8 y latin1 en ese orden y
// acepta el primero que decodifica y produce una tabla con columna SKU. Las celdas
// numéricas inválidas quedan en 0; la ausencia de priceTrace equivale a 0.
func ReadInventory(raw []byte) (*Decoded, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, domain.ErrEmptyFile
	}

	sawTable := false
	for _, dec := range decoders {
		text, ok := dec.decode(raw)
		if !ok {
			continue
		}
		t, err := parseTable(text)
		if err != nil {
			continue
		}
		sawTable = true
		if _, ok := t.index[ColSKU]; !ok {
			continue
		}
		rows := make([]entity.InventoryRow, 0, len(t.records))
		for _, rec := range t.records {
			if blankRecord(rec) {
				continue
			}
			rows = append(rows, t.row(rec))
		}
		return &Decoded{Charset: dec.name, Header: t.header, Rows: rows}, nil
	}
	if sawTable {
		return nil, domain.ErrMissingSKUColumn
	}
	return nil, domain.ErrUndecodableFile
}

func parseTable(text string) (*table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrEmptyFile
		}
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	t := &table{index: make(map[string]int, len(header))}
	for i, h := range header {
		h = StripExcelMarker(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		t.header = append(t.header, h)
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer filas: %w", err)
	}
	t.records = records
	return t, nil
}

func (t *table) cell(rec []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(rec) {
		return ""
	}
	v := rec[i]
	if IsStringColumn(col) {
		return StripExcelMarker(v)
	}
	return v
}

func (t *table) row(rec []string) entity.InventoryRow {
	return entity.InventoryRow{
		SKU:            t.cell(rec, ColSKU),
		ASIN:           t.cell(rec, ColASIN),
		Title:          t.cell(rec, ColTitle),
		Quantity:       t.cell(rec, ColNumber),
		Price:          ParseNumber(t.cell(rec, ColPrice)),
		Cost:           ParseNumber(t.cell(rec, ColCost)),
		Breakeven:      ParseNumber(t.cell(rec, ColAkaji)),
		Ceiling:        ParseNumber(t.cell(rec, ColTakane)),
		Condition:      t.cell(rec, ColCondition),
		ConditionNote:  t.cell(rec, ColConditionNote),
		PriceTrace:     int(ParseNumber(t.cell(rec, ColPriceTrace)).IntPart()),
		Leadtime:       ParseNumber(t.cell(rec, ColLeadtime)),
		MarketplaceFee: ParseNumber(t.cell(rec, ColAmazonFee)),
		ShippingPrice:  ParseNumber(t.cell(rec, ColShippingPrice)),
		Profit:         ParseNumber(t.cell(rec, ColProfit)),
		AddDeleteFlag:  t.cell(rec, ColAddDelete),
	}
}

// ParseNumber convierte una celda numérica; vacío o inválido es 0 (exports parciales).
func ParseNumber(s string) decimal.Decimal {
	s = strings.TrimSpace(StripExcelMarker(strings.TrimSpace(s)))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
