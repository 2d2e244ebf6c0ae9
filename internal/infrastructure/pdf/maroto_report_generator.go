// Package pdf genera el reporte imprimible de una ejecución del repricer.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + archivo     │  Fecha de referencia         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total / updated / excluded / fecha desconocida     │
//	│  ACCIONES: conteo por acción                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Días | Acción | Precio | Nuevo | Directiva     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: filas omitidas + fecha de generación                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	apprepricer "github.com/jhoicas/repricer-api/internal/application/repricer"
	"github.com/jhoicas/repricer-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 170, Green: 60, Blue: 20}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ apprepricer.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa repricer.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReport(_ context.Context, data *apprepricer.ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Repricing report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(data.Summary))
	m.AddRows(actionCountRows(data.Summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLogRows(data.Logs)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data *apprepricer.ReportData) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPRICING REPORT", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("File: "+nonEmpty(data.FileName, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Reference date", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(data.Today.Format("2006-01-02"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

func summaryRow(s entity.RepriceSummary) core.Row {
	cell := func(label string, v int) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(strconv.Itoa(v), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 5}),
		)
	}
	return row.New(14).Add(
		cell("Total", s.Total),
		cell("Updated", s.Updated),
		cell("Excluded", s.Excluded),
		cell("Date unknown", s.DateUnknown),
		cell("Guard applied", s.GuardApplied),
		cell("Guard bypassed", s.GuardBypassed),
	)
}

// actionCountRows una línea por acción con al menos una fila, en orden de presentación.
func actionCountRows(s entity.RepriceSummary) []core.Row {
	var rows []core.Row
	for _, a := range entity.Actions {
		n := s.ActionCounts[a]
		if n == 0 {
			continue
		}
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(string(a), props.Text{Size: 8, Left: 2})),
			col.New(2).Add(text.New(strconv.Itoa(n), props.Text{Size: 8, Align: align.Right})),
			col.New(6),
		))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 3, align.Left),
		h("Days", 1, align.Right),
		h("Action", 2, align.Left),
		h("Price", 2, align.Right),
		h("New price", 2, align.Right),
		h("Directive", 2, align.Center),
	)
}

func tableLogRows(logs []entity.RepriceLogEntry) []core.Row {
	result := make([]core.Row, 0, len(logs))
	for _, l := range logs {
		days := strconv.Itoa(l.DaysSinceListed)
		if l.DaysSinceListed == entity.UnknownDays {
			days = "?"
		}
		newPrice := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if !l.NewPrice.Equal(l.Price) {
			newPrice.Style = fontstyle.Bold
		}
		if l.GuardApplied {
			newPrice.Color = colorWarn
		}
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(l.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(days, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(string(l.Action), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(l.Price.StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(l.NewPrice.StringFixed(0)), newPrice)),
			col.New(2).Add(text.New(directive(l), props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

func footerRow(data *apprepricer.ReportData) core.Row {
	note := fmt.Sprintf("Showing %d of %d rows.", len(data.Logs), data.Summary.Total)
	return row.New(10).Add(
		col.New(8).Add(text.New(note, props.Text{Size: 7, Color: colorGray, Top: 2})),
		col.New(4).Add(text.New("Generated "+data.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
			Size: 7, Align: align.Right, Color: colorGray, Top: 2,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func directive(l entity.RepriceLogEntry) string {
	if l.PriceTrace == l.NewPriceTrace {
		return strconv.Itoa(l.PriceTrace)
	}
	return fmt.Sprintf("%d -> %d", l.PriceTrace, l.NewPriceTrace)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta comas de miles en un string numérico entero (yen).
// Ej: "25000" → "25,000", "-1000" → "-1,000"
func formatMoney(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
