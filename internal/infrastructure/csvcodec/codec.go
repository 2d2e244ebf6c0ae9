package csvcodec

import (
	"github.com/jhoicas/repricer-api/internal/application/repricer"
	"github.com/jhoicas/repricer-api/internal/domain/entity"
)

var _ repricer.InventoryCodec = Codec{}

// Codec adapta las funciones del paquete al puerto repricer.InventoryCodec.
type Codec struct{}

// Decode ver ReadInventory.
func (Codec) Decode(raw []byte) (string, []entity.InventoryRow, error) {
	d, err := ReadInventory(raw)
	if err != nil {
		return "", nil, err
	}
	return d.Charset, d.Rows, nil
}

// EncodeInventory ver WriteInventory.
func (Codec) EncodeInventory(rows []entity.InventoryRow) ([]byte, error) {
	return WriteInventory(rows)
}

// EncodeLog ver WriteLog.
func (Codec) EncodeLog(logs []entity.RepriceLogEntry) ([]byte, error) {
	return WriteLog(logs)
}
