package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")

	// Errores de entrada del cliente: el lote no se procesa.
	ErrEmptyFile        = errors.New("archivo vacío")
	ErrUndecodableFile  = errors.New("no se pudo decodificar el CSV con cp932, utf-8 ni latin1")
	ErrMissingSKUColumn = errors.New("el CSV no contiene la columna SKU")
	ErrInvalidConfig    = errors.New("configuración de repricer inválida")
	ErrRunStoreDisabled = errors.New("historial de ejecuciones deshabilitado")
)
