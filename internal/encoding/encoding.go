package encoding

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Декодеры пробуются по порядку; последняя ступень лестницы — побайтовая
// замена, она не может завершиться ошибкой.
var fallbackDecoders = []*charmap.Charmap{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

// DecodeBestEffort преобразует произвольные байты в строку: сначала UTF-8,
// затем ISO-8859-1 и Windows-1252, в конце — Latin-1 с заменой
// недекодируемых байт. Ошибок не возвращает.
func DecodeBestEffort(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if utf8.Valid(data) {
		return string(data)
	}
	for _, cm := range fallbackDecoders {
		if s, err := cm.NewDecoder().Bytes(data); err == nil {
			return string(s)
		}
	}
	out := make([]rune, 0, len(data))
	for _, b := range data {
		r := charmap.ISO8859_1.DecodeByte(b)
		if r == utf8.RuneError {
			r = '�'
		}
		out = append(out, r)
	}
	return string(out)
}
