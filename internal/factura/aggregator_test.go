package factura

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tarifasFijas implementa TarifasIVA sobre un map; código ausente → 0%.
type tarifasFijas map[string]decimal.Decimal

func (t tarifasFijas) Porcentaje(codigo string) decimal.Decimal {
	return t[codigo] // zero value de decimal es 0
}

var tarifas = tarifasFijas{
	"IVA19": decimal.NewFromInt(19),
	"IVA5":  decimal.NewFromInt(5),
}

func TestAgregarLineaActualizaEnVezDeDuplicar(t *testing.T) {
	// Dos agregados del mismo código de barras dejan UNA línea con la última
	// cantidad, no dos líneas ni cantidad acumulada.
	lineas := AgregarLinea(nil, Linea{CodigoBarras: "X", PrecioUnitario: 1000, Cantidad: 2}, tarifas)
	lineas = AgregarLinea(lineas, Linea{CodigoBarras: "X", PrecioUnitario: 1000, Cantidad: 5}, tarifas)

	require.Len(t, lineas, 1)
	assert.Equal(t, 5, lineas[0].Cantidad)
	assert.Equal(t, int64(5000), lineas[0].Subtotal)
}

func TestAgregarLineaCantidadPorDefecto(t *testing.T) {
	lineas := AgregarLinea(nil, Linea{CodigoBarras: "Y", PrecioUnitario: 700}, tarifas)
	require.Len(t, lineas, 1)
	assert.Equal(t, 1, lineas[0].Cantidad)
	assert.Equal(t, int64(700), lineas[0].Subtotal)
}

func TestAgregarLineaEsIdempotente(t *testing.T) {
	l := Linea{CodigoBarras: "Z", TipoIVA: "IVA19", PrecioUnitario: 1000, Cantidad: 3}
	una := AgregarLinea(nil, l, tarifas)
	dos := AgregarLinea(una, l, tarifas)

	require.Len(t, dos, 1)
	assert.Equal(t, una[0].Subtotal, dos[0].Subtotal)
	assert.Equal(t, una[0].TotalIVA, dos[0].TotalIVA)
}

func TestIVAPorLinea(t *testing.T) {
	lineas := AgregarLinea(nil, Linea{CodigoBarras: "A", TipoIVA: "IVA19", PrecioUnitario: 1000, Cantidad: 2}, tarifas)
	// 1000 * 2 * 19% = 380
	assert.Equal(t, int64(380), lineas[0].TotalIVA)
}

func TestIVATipoDesconocidoEsCero(t *testing.T) {
	// Fail-open: un tipo sin tarifa configurada no bloquea la venta.
	lineas := AgregarLinea(nil, Linea{CodigoBarras: "B", TipoIVA: "NO_EXISTE", PrecioUnitario: 9999, Cantidad: 3}, tarifas)
	assert.Equal(t, int64(0), lineas[0].TotalIVA)
	assert.Equal(t, int64(29997), lineas[0].Subtotal)
}

func TestIVASeTrunca(t *testing.T) {
	// 333 * 1 * 19% = 63.27 → 63
	assert.Equal(t, int64(63), CalcularIVA(333, 1, decimal.NewFromInt(19)))
}

func TestIncrementarDecrementar(t *testing.T) {
	lineas := AgregarLinea(nil, Linea{CodigoBarras: "C", TipoIVA: "IVA5", PrecioUnitario: 2000, Cantidad: 1}, tarifas)

	Incrementar(lineas, "C", tarifas)
	assert.Equal(t, 2, lineas[0].Cantidad)
	assert.Equal(t, int64(4000), lineas[0].Subtotal)
	assert.Equal(t, int64(200), lineas[0].TotalIVA)

	Decrementar(lineas, "C", tarifas)
	assert.Equal(t, 1, lineas[0].Cantidad)

	// Decrementar por debajo de 1 es no-op.
	Decrementar(lineas, "C", tarifas)
	assert.Equal(t, 1, lineas[0].Cantidad)
	assert.Equal(t, int64(2000), lineas[0].Subtotal)
}

func TestTotales(t *testing.T) {
	var lineas []Linea
	lineas = AgregarLinea(lineas, Linea{CodigoBarras: "A", TipoIVA: "IVA19", PrecioUnitario: 1000, Cantidad: 2}, tarifas)
	lineas = AgregarLinea(lineas, Linea{CodigoBarras: "B", TipoIVA: "IVA5", PrecioUnitario: 500, Cantidad: 4}, tarifas)

	totalFactura, totalIVA := Totales(lineas)
	assert.Equal(t, int64(4000), totalFactura)
	assert.Equal(t, int64(380+100), totalIVA)
}

func TestVuelto(t *testing.T) {
	assert.Equal(t, int64(3000), Vuelto(10000, 7000))
	assert.Equal(t, int64(0), Vuelto(7000, 7000))
	// Recibido insuficiente → vuelto forzado a 0 (el guardado se rechaza aparte).
	assert.Equal(t, int64(0), Vuelto(5000, 7000))
}

func TestEliminarLinea(t *testing.T) {
	var lineas []Linea
	lineas = AgregarLinea(lineas, Linea{CodigoBarras: "A", PrecioUnitario: 100}, tarifas)
	lineas = AgregarLinea(lineas, Linea{CodigoBarras: "B", PrecioUnitario: 200}, tarifas)

	lineas = EliminarLinea(lineas, "A")
	require.Len(t, lineas, 1)
	assert.Equal(t, "B", lineas[0].CodigoBarras)

	lineas = EliminarLinea(lineas, "no-existe")
	assert.Len(t, lineas, 1)
}
