package factores

import (
	"strings"

	"github.com/shopspring/decimal"
)

const digitosFactor = 8

var uno = decimal.NewFromInt(1)

// Dividir es la primitiva aritmética de todo el motor: num/den redondeado a
// 8 decimales con redondeo mitad-hacia-arriba (DivRound) y acotado a un
// máximo de 1. Denominador cero devuelve 0, nunca error. El resultado puede
// ser negativo si el numerador lo es; sólo se acota por arriba.
func Dividir(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	f := num.DivRound(den, digitosFactor)
	if f.GreaterThan(uno) {
		return uno
	}
	return f
}

// Redondear8 redondea a 8 decimales, mitad hacia arriba.
func Redondear8(d decimal.Decimal) decimal.Decimal {
	return d.Round(digitosFactor)
}

// FormatoFijo serializa con los 8 decimales completos ("0.25000000").
func FormatoFijo(d decimal.Decimal) string {
	return d.StringFixed(digitosFactor)
}

// FormatoCorto quita los ceros finales para mostrar en pantalla
// ("0.25000000" -> "0.25", "1.00000000" -> "1").
func FormatoCorto(d decimal.Decimal) string {
	s := d.StringFixed(digitosFactor)
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
