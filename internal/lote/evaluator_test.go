package lote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lotepos/internal/model"
)

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func loteConVencimiento(venc time.Time, stock int) model.Lote {
	return model.Lote{
		NumeroLote:       1,
		FechaIngreso:     venc.AddDate(0, 0, -8),
		FechaVencimiento: venc,
		StockInicial:     stock,
		StockActual:      stock,
		Estado:           model.LoteActivo,
	}
}

func TestDiasParaVencimiento(t *testing.T) {
	hoy := fecha(2024, 1, 10)

	l := loteConVencimiento(fecha(2024, 1, 12), 5)
	assert.Equal(t, 2, DiasParaVencimiento(&l, hoy))

	// Vence hoy → 0 días, no vencido.
	l = loteConVencimiento(fecha(2024, 1, 10), 5)
	assert.Equal(t, 0, DiasParaVencimiento(&l, hoy))
	assert.False(t, Vencido(&l, hoy))

	// Venció ayer → -1, vencido.
	l = loteConVencimiento(fecha(2024, 1, 9), 5)
	assert.Equal(t, -1, DiasParaVencimiento(&l, hoy))
	assert.True(t, Vencido(&l, hoy))
}

// Las horas del día no cambian el resultado: ambas fechas se normalizan a
// medianoche local antes de restar.
func TestDiasParaVencimientoIgnoraHoras(t *testing.T) {
	l := loteConVencimiento(fecha(2024, 1, 12), 5)
	tarde := time.Date(2024, 1, 10, 23, 55, 0, 0, time.Local)
	assert.Equal(t, 2, DiasParaVencimiento(&l, tarde))
}

// Ingreso 2024-01-01 con 8 días de vigencia → vence 2024-01-09; evaluado el
// 2024-01-10 está vencido con -1 días.
func TestVentanaDeVigencia(t *testing.T) {
	ingreso := fecha(2024, 1, 1)
	venc := FechaVencimientoDesde(ingreso, 8)
	assert.Equal(t, fecha(2024, 1, 9), venc)

	l := model.Lote{FechaIngreso: ingreso, FechaVencimiento: venc, StockActual: 3, Estado: model.LoteActivo}
	hoy := fecha(2024, 1, 10)
	assert.True(t, Vencido(&l, hoy))
	assert.Equal(t, -1, DiasParaVencimiento(&l, hoy))
}

func TestVencidoYPorVencerSonExcluyentes(t *testing.T) {
	hoy := fecha(2024, 6, 15)
	for delta := -5; delta <= 5; delta++ {
		l := loteConVencimiento(hoy.AddDate(0, 0, delta), 1)
		vencido := Vencido(&l, hoy)
		porVencer := PorVencer(&l, hoy, UmbralPorVencerDefault)
		assert.False(t, vencido && porVencer, "delta=%d", delta)
		if DiasParaVencimiento(&l, hoy) < 0 {
			assert.True(t, vencido)
			assert.False(t, porVencer)
		}
	}
}

func TestPorVencerUmbral(t *testing.T) {
	hoy := fecha(2024, 6, 15)

	l := loteConVencimiento(hoy.AddDate(0, 0, 2), 1)
	assert.True(t, PorVencer(&l, hoy, 2))

	l = loteConVencimiento(hoy.AddDate(0, 0, 3), 1)
	assert.False(t, PorVencer(&l, hoy, 2))

	l = loteConVencimiento(hoy, 1)
	assert.True(t, PorVencer(&l, hoy, 2))
}

func TestEstadoDerivado(t *testing.T) {
	hoy := fecha(2024, 6, 15)

	l := loteConVencimiento(hoy.AddDate(0, 0, 5), 10)
	assert.Equal(t, model.LoteActivo, EstadoDerivado(&l, hoy))

	l.StockActual = 0
	assert.Equal(t, model.LoteAgotado, EstadoDerivado(&l, hoy))

	l = loteConVencimiento(hoy.AddDate(0, 0, -1), 10)
	assert.Equal(t, model.LoteVencido, EstadoDerivado(&l, hoy))

	l.Estado = model.LoteCerrado
	assert.Equal(t, model.LoteCerrado, EstadoDerivado(&l, hoy))
}

func TestOrdenarPorUrgencia(t *testing.T) {
	hoy := fecha(2024, 6, 15)
	lotes := []model.Lote{
		loteConVencimiento(hoy.AddDate(0, 0, 5), 1),
		loteConVencimiento(hoy.AddDate(0, 0, 1), 1),
		loteConVencimiento(hoy.AddDate(0, 0, 3), 1),
	}
	OrdenarPorUrgencia(lotes, hoy)
	assert.Equal(t, 1, DiasParaVencimiento(&lotes[0], hoy))
	assert.Equal(t, 3, DiasParaVencimiento(&lotes[1], hoy))
	assert.Equal(t, 5, DiasParaVencimiento(&lotes[2], hoy))
}
