// Package money normaliza montos en pesos colombianos escritos por humanos.
// Los montos viajan y se persisten como int64 (unidad mínima, sin decimales);
// este paquete es el único punto donde se interpreta formato localizado.
package money

import (
	"strconv"
	"strings"
)

// Normalize convierte un monto tipeado ("$ 1.000", "25.500,90", "1000") a
// pesos enteros. El punto es separador de miles, la coma separa decimales y
// los decimales se truncan. Entrada no parseable devuelve 0 — nunca error.
func Normalize(raw string) int64 {
	n, _ := NormalizeStrict(raw)
	return n
}

// NormalizeStrict es la variante que distingue "no parseable" de cero real.
// La UI puede usarla para advertir sobre datos mal digitados; el resto del
// sistema usa Normalize y conserva el degradado silencioso a 0.
func NormalizeStrict(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	negative := strings.HasPrefix(s, "-")

	// Quitar símbolo de moneda, espacios (incluido NBSP) y signo.
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '$', ' ', ' ', '+', '-':
			continue
		default:
			b.WriteRune(r)
		}
	}
	s = b.String()

	// La coma abre la parte decimal; se trunca.
	if idx := strings.IndexByte(s, ','); idx >= 0 {
		s = s[:idx]
	}

	// El punto agrupa miles, nunca decimales: "1.000" son mil pesos.
	s = strings.ReplaceAll(s, ".", "")
	if s == "" {
		return 0, false
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}

// NormalizeFloat trunca un número ya numérico a pesos enteros.
func NormalizeFloat(f float64) int64 {
	return int64(f)
}

// Format escribe un monto con punto como separador de miles ("1.000.000").
// Es la inversa exacta de Normalize para enteros: Normalize(Format(n)) == n.
func Format(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return sign + digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
