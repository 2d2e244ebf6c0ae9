// Package csvcodec implementa el formato de intercambio del export de inventario:
// detección de charset a la entrada, coerción de columnas, marcador Excel ="…"
// y codificación cp932 a la salida.
package csvcodec

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Nombres de charset tal como se reportan en la respuesta.
const (
	CharsetCP932  = "cp932"
	CharsetUTF8   = "utf-8"
	CharsetLatin1 = "latin1"
)

type charsetDecoder struct {
	name   string
	decode func(raw []byte) (string, bool)
}

// decoders en el orden en que se prueban.
var decoders = []charsetDecoder{
	{CharsetCP932, decodeCP932},
	{CharsetUTF8, decodeUTF8},
	{CharsetLatin1, decodeLatin1},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeCP932 el decoder de x/text sustituye las secuencias inválidas por U+FFFD en
// lugar de fallar; una sustitución que no estaba en la entrada se trata como error.
func decodeCP932(raw []byte) (string, bool) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	if err != nil {
		return "", false
	}
	if bytes.ContainsRune(out, utf8.RuneError) && !bytes.Contains(raw, []byte(string(utf8.RuneError))) {
		return "", false
	}
	return string(out), true
}

func decodeUTF8(raw []byte) (string, bool) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

func decodeLatin1(raw []byte) (string, bool) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// EncodeCP932 codifica s en cp932; las runas sin representación se reemplazan por '?'.
func EncodeCP932(s string) []byte {
	enc := japanese.ShiftJIS.NewEncoder()
	if out, err := enc.Bytes([]byte(s)); err == nil {
		return out
	}
	return encodeCP932Lossy(s)
}

func encodeCP932Lossy(s string) []byte {
	var buf bytes.Buffer
	buf.Grow(len(s))
	var enc *encoding.Encoder
	for _, r := range s {
		if r < utf8.RuneSelf {
			buf.WriteByte(byte(r))
			continue
		}
		if enc == nil {
			enc = japanese.ShiftJIS.NewEncoder()
		}
		b, err := enc.Bytes([]byte(string(r)))
		if err != nil {
			buf.WriteByte('?')
			continue
		}
		buf.Write(b)
	}
	return buf.Bytes()
}

// DecodeCP932 decodifica bytes cp932 (usado por pruebas y el CLI para mostrar salidas).
func DecodeCP932(raw []byte) (string, error) {
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(string(out), "\ufeff"), nil
}
