// Package factura contiene la agregación pura de líneas de venta: alta y
// actualización de líneas por código de barras, IVA por línea contra la tabla
// de tarifas precargada, y los totales de la factura.
package factura

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TarifasIVA resuelve el porcentaje de un tipo de IVA. La implementación real
// es la caché precargada del IVAService; un código desconocido debe resolver
// a 0% (fail-open) — nunca a error, para no frenar una venta por tributación
// sin configurar.
type TarifasIVA interface {
	Porcentaje(codigo string) decimal.Decimal
}

// Linea es una línea editable de la factura en construcción.
// Subtotal y TotalIVA se recalculan en cada cambio de cantidad o precio.
type Linea struct {
	ProductoID     uuid.UUID
	CodigoBarras   string
	Nombre         string
	TipoIVA        string
	Cantidad       int
	PrecioUnitario int64
	Subtotal       int64
	TotalIVA       int64
}

var cien = decimal.NewFromInt(100)

// CalcularIVA computa el IVA de una línea: precio * cantidad * pct / 100,
// truncado a pesos enteros.
func CalcularIVA(precioUnitario int64, cantidad int, pct decimal.Decimal) int64 {
	if pct.IsZero() {
		return 0
	}
	base := decimal.NewFromInt(precioUnitario * int64(cantidad))
	return base.Mul(pct).Div(cien).IntPart()
}

func recalcular(l *Linea, tarifas TarifasIVA) {
	l.Subtotal = int64(l.Cantidad) * l.PrecioUnitario
	l.TotalIVA = CalcularIVA(l.PrecioUnitario, l.Cantidad, tarifas.Porcentaje(l.TipoIVA))
}

// AgregarLinea agrega o actualiza una línea. Si ya existe una línea para el
// mismo código de barras se actualiza su cantidad (nunca se duplica la
// línea); si no, se agrega con cantidad mínima 1. Idempotente: repetir la
// misma llamada deja el mismo resultado.
func AgregarLinea(lineas []Linea, nueva Linea, tarifas TarifasIVA) []Linea {
	if nueva.Cantidad < 1 {
		nueva.Cantidad = 1
	}
	for i := range lineas {
		if lineas[i].CodigoBarras == nueva.CodigoBarras {
			lineas[i].Cantidad = nueva.Cantidad
			lineas[i].PrecioUnitario = nueva.PrecioUnitario
			recalcular(&lineas[i], tarifas)
			return lineas
		}
	}
	recalcular(&nueva, tarifas)
	return append(lineas, nueva)
}

// Incrementar suma 1 a la cantidad de la línea del código dado.
func Incrementar(lineas []Linea, codigoBarras string, tarifas TarifasIVA) {
	for i := range lineas {
		if lineas[i].CodigoBarras == codigoBarras {
			lineas[i].Cantidad++
			recalcular(&lineas[i], tarifas)
			return
		}
	}
}

// Decrementar resta 1 a la cantidad. La cantidad nunca baja de 1: decrementar
// una línea en 1 es no-op (eliminar la línea es una operación distinta).
func Decrementar(lineas []Linea, codigoBarras string, tarifas TarifasIVA) {
	for i := range lineas {
		if lineas[i].CodigoBarras == codigoBarras {
			if lineas[i].Cantidad <= 1 {
				return
			}
			lineas[i].Cantidad--
			recalcular(&lineas[i], tarifas)
			return
		}
	}
}

// EliminarLinea quita la línea del código dado.
func EliminarLinea(lineas []Linea, codigoBarras string) []Linea {
	for i := range lineas {
		if lineas[i].CodigoBarras == codigoBarras {
			return append(lineas[:i], lineas[i+1:]...)
		}
	}
	return lineas
}

// Totales reduce las líneas a los totales de factura.
func Totales(lineas []Linea) (totalFactura, totalIVA int64) {
	for i := range lineas {
		totalFactura += lineas[i].Subtotal
		totalIVA += lineas[i].TotalIVA
	}
	return totalFactura, totalIVA
}

// Vuelto calcula el cambio a devolver. Cuando lo recibido no alcanza el
// total el vuelto se fuerza a 0 y el guardado debe rechazarse aguas arriba.
func Vuelto(valorRecibido, totalFactura int64) int64 {
	if valorRecibido < totalFactura {
		return 0
	}
	return valorRecibido - totalFactura
}
