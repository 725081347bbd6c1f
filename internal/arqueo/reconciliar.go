// Package arqueo contiene la conciliación pura de caja: conteo físico por
// denominaciones contra el efectivo esperado por el sistema.
package arqueo

import (
	"github.com/shopspring/decimal"

	"lotepos/internal/model"
)

// Denominacion es una fila del conteo: valor del billete/moneda y cuántos hay.
type Denominacion struct {
	Valor    int64
	Cantidad int
}

// Subtotal del renglón de conteo.
func (d Denominacion) Subtotal() int64 { return d.Valor * int64(d.Cantidad) }

// Resultado de la conciliación. Diferencia lleva signo: positivo = sobrante.
type Resultado struct {
	TotalContado  int64
	EfectivoTotal int64 // saldo de apertura + efectivo esperado del sistema
	Diferencia    int64
	Clasificacion string // Cuadrado | Sobrante | Faltante
	DesvioPct     decimal.Decimal
	ClasifDesvio  string // normal | advertencia | critico
}

// Reconciliar calcula el resultado del arqueo:
//
//	totalContado   = Σ valor_i * cantidad_i
//	efectivoTotal  = saldoApertura + efectivoEsperado
//	diferencia     = totalContado - efectivoTotal
func Reconciliar(denominaciones []Denominacion, saldoApertura, efectivoEsperado int64) Resultado {
	var total int64
	for _, d := range denominaciones {
		total += d.Subtotal()
	}

	esperado := saldoApertura + efectivoEsperado
	diferencia := total - esperado

	var pct decimal.Decimal
	if esperado != 0 {
		pct = decimal.NewFromInt(diferencia).
			Div(decimal.NewFromInt(esperado)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return Resultado{
		TotalContado:  total,
		EfectivoTotal: esperado,
		Diferencia:    diferencia,
		Clasificacion: clasificar(diferencia),
		DesvioPct:     pct,
		ClasifDesvio:  clasificarDesvio(pct),
	}
}

func clasificar(diferencia int64) string {
	switch {
	case diferencia > 0:
		return model.ArqueoSobrante
	case diferencia < 0:
		return model.ArqueoFaltante
	default:
		return model.ArqueoCuadrado
	}
}

// clasificarDesvio gradúa la severidad del desvío para exigir observaciones
// del supervisor en cierres críticos.
// normal: |pct| <= 1, advertencia: <= 5, critico: > 5
func clasificarDesvio(pct decimal.Decimal) string {
	abs := pct.Abs()
	switch {
	case abs.LessThanOrEqual(decimal.NewFromInt(1)):
		return "normal"
	case abs.LessThanOrEqual(decimal.NewFromInt(5)):
		return "advertencia"
	default:
		return "critico"
	}
}
