// Package lote contiene las reglas puras de lotes: evaluación de vencimiento
// de precio, selección de lote vendible y el arena append-only en memoria.
// Todo recibe la fecha de referencia como argumento; nadie llama time.Now()
// acá, el que lo hace es el servicio.
package lote

import (
	"sort"
	"time"

	"lotepos/internal/model"
)

// UmbralPorVencerDefault son los días de anticipación para alertar un lote
// cuyo precio está por vencer.
const UmbralPorVencerDefault = 2

// DiasParaVencimiento retorna los días calendario que faltan para que venza
// el precio del lote. Ambas fechas se normalizan a medianoche LOCAL antes de
// restar: las fechas llegan como date-only y tratarlas como medianoche UTC
// corre el vencimiento un día según la zona horaria.
// Vencimiento hoy → 0 (todavía vendible); venció ayer → -1.
func DiasParaVencimiento(l *model.Lote, hoy time.Time) int {
	venc := medianoche(l.FechaVencimiento)
	ref := medianoche(hoy)
	diff := venc.Sub(ref)
	dias := int(diff / (24 * time.Hour))
	// Ceil para restos positivos (cambios de DST dejan diffs no múltiplos de 24h).
	if diff%(24*time.Hour) > 0 {
		dias++
	}
	return dias
}

// Vencido indica si el precio del lote ya no es válido: el vencimiento quedó
// estrictamente antes de hoy. Un lote que vence hoy NO está vencido.
func Vencido(l *model.Lote, hoy time.Time) bool {
	return DiasParaVencimiento(l, hoy) < 0
}

// PorVencer indica si el lote entra en la ventana de alerta: le quedan entre
// 0 y umbral días. Mutuamente excluyente con Vencido.
func PorVencer(l *model.Lote, hoy time.Time, umbral int) bool {
	dias := DiasParaVencimiento(l, hoy)
	return dias >= 0 && dias <= umbral
}

// EstadoDerivado calcula el estado visible del lote. VENCIDO nunca se
// persiste: se deriva acá para que un lote no quede "pegado" en vencido
// después de una actualización de precio o un ajuste de reloj.
func EstadoDerivado(l *model.Lote, hoy time.Time) string {
	if l.Estado == model.LoteCerrado {
		return model.LoteCerrado
	}
	if l.StockActual == 0 {
		return model.LoteAgotado
	}
	if Vencido(l, hoy) {
		return model.LoteVencido
	}
	return model.LoteActivo
}

// FechaVencimientoDesde calcula fecha_vencimiento = fecha_ingreso + días de
// vigencia, normalizada a medianoche local.
func FechaVencimientoDesde(ingreso time.Time, diasVigencia int) time.Time {
	return medianoche(ingreso).AddDate(0, 0, diasVigencia)
}

// OrdenarPorUrgencia ordena in-place la lista de alertas: menos días primero.
// Orden estable — los empates conservan el orden de llegada.
func OrdenarPorUrgencia(lotes []model.Lote, hoy time.Time) {
	sort.SliceStable(lotes, func(i, j int) bool {
		return DiasParaVencimiento(&lotes[i], hoy) < DiasParaVencimiento(&lotes[j], hoy)
	})
}

func medianoche(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
