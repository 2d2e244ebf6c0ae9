// Package repricer contiene el motor de reglas de repricing por antigüedad:
// extracción de fecha desde el SKU, resolución del tramo, cálculo de la acción
// y particionado del lote. Es puro: sin I/O ni estado global.
package repricer

import (
	"regexp"
	"strconv"
	"time"

	"github.com/jhoicas/repricer-api/internal/domain/entity"
)

// skuDateMatcher intenta extraer la fecha de publicación de un SKU.
type skuDateMatcher func(sku string) (year, month, day int, ok bool)

var (
	reUnderscoreDate = regexp.MustCompile(`^(\d{4})_(\d{2})_?(\d{2})`)
	reCompactDate    = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})-`)
	reEmbeddedDate   = regexp.MustCompile(`_(\d{4})(\d{2})(\d{2})_`)
	reShortDate      = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})-`)
)

// skuDateMatchers en orden de prioridad; gana el primero que produce una fecha válida.
var skuDateMatchers = []skuDateMatcher{
	fullYearMatcher(reUnderscoreDate), // YYYY_MM_DD / YYYY_MMDD
	fullYearMatcher(reCompactDate),    // YYYYMMDD-
	fullYearMatcher(reEmbeddedDate),   // _YYYYMMDD_
	shortYearMatcher(reShortDate),     // YYMMDD-
}

func fullYearMatcher(re *regexp.Regexp) skuDateMatcher {
	return func(sku string) (int, int, int, bool) {
		m := re.FindStringSubmatch(sku)
		if m == nil {
			return 0, 0, 0, false
		}
		return atoi(m[1]), atoi(m[2]), atoi(m[3]), true
	}
}

func shortYearMatcher(re *regexp.Regexp) skuDateMatcher {
	return func(sku string) (int, int, int, bool) {
		m := re.FindStringSubmatch(sku)
		if m == nil {
			return 0, 0, 0, false
		}
		return 2000 + atoi(m[1]), atoi(m[2]), atoi(m[3]), true
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ExtractListedDate devuelve la fecha de publicación codificada en el SKU (medianoche, en loc).
// Si un patrón coincide pero la fecha no existe en el calendario se prueba el siguiente.
func ExtractListedDate(sku string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	for _, match := range skuDateMatchers {
		y, m, d, ok := match(sku)
		if !ok || !validDate(y, m, d) {
			continue
		}
		return time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}

// ExtractDays días transcurridos entre la fecha del SKU y today, o entity.UnknownDays.
// El resultado puede ser cero o negativo si today es anterior a la fecha extraída.
func ExtractDays(sku string, today time.Time) int {
	listed, ok := ExtractListedDate(sku, today.Location())
	if !ok {
		return entity.UnknownDays
	}
	return daysBetween(listed, today)
}

func validDate(y, m, d int) bool {
	if m < 1 || m > 12 || d < 1 {
		return false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}

// daysBetween diferencia en días de calendario, inmune a cambios de horario.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
