// Package barcode normaliza la entrada de lectores de códigos de barras y SKU.
package barcode

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalize convierte dígitos y letras de ancho completo a ancho normal, aplica NFC
// y elimina espacios y caracteres de control que algunos lectores agregan al final.
func Normalize(s string) string {
	s = width.Narrow.String(s)
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// NormalizeSKU igual que Normalize pero sin distinguir mayúsculas.
func NormalizeSKU(s string) string {
	return strings.ToUpper(Normalize(s))
}
