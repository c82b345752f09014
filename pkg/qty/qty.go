package qty

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse convierte una cantidad textual a decimal exacto (nunca pasa por float).
// Acepta el punto decimal estándar y normaliza los dos estilos de separadores
// con locale: "1.234,56" (coma decimal) y "1,234.56" (coma de miles).
// Entrada vacía o malformada retorna error; el caller decide el error de dominio.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("qty: cadena vacía")
	}
	d, err := decimal.NewFromString(normalize(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("qty: %q no es un decimal válido", s)
	}
	return d, nil
}

// ParseNonNegative como Parse pero rechaza valores negativos
// (un conteo físico no puede observar cantidades negativas).
func ParseNonNegative(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("qty: %q es negativo", s)
	}
	return d, nil
}

// normalize reescribe separadores de locale a formato canónico con punto decimal.
// Regla fija: si aparecen coma y punto, el que esté más a la derecha es el
// separador decimal y el otro se descarta como separador de miles. Una sola
// coma se trata como coma decimal; varias comas sin punto, como miles.
func normalize(s string) string {
	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// estilo "1.234,56"
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// estilo "1,234.56"
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return s
}
