package lote

import (
	"errors"
	"time"

	"lotepos/internal/model"
)

var (
	// ErrSinStock: ningún lote del producto tiene stock disponible.
	ErrSinStock = errors.New("el producto no tiene stock disponible en ningún lote")
	// ErrPrecioVencido: el único stock disponible está en lotes con precio
	// vencido. No es un error de validación genérico — el flujo correcto es
	// actualizar el precio (crear lote nuevo), no reintentar la venta.
	ErrPrecioVencido = errors.New("el precio del lote está vencido; actualice el precio antes de vender")
)

// Seleccion es el resultado de elegir lote para una línea de venta.
type Seleccion struct {
	Lote     *model.Lote
	Cantidad int
}

// Seleccionar elige el lote del que sale una venta:
//   - descarta lotes sin stock o cerrados;
//   - un lote con precio vencido es error duro (nunca se vende a precio viejo);
//   - con un solo candidato se autoselecciona; con varios gana el más antiguo
//     (menor numero_lote), estilo FIFO;
//   - la cantidad pedida se acota a [1, stock del lote].
func Seleccionar(lotes []model.Lote, cantidad int, hoy time.Time) (*Seleccion, error) {
	var candidatos []*model.Lote
	vencidos := 0
	for i := range lotes {
		l := &lotes[i]
		if l.StockActual <= 0 || l.Estado == model.LoteCerrado {
			continue
		}
		if Vencido(l, hoy) {
			vencidos++
			continue
		}
		candidatos = append(candidatos, l)
	}

	if len(candidatos) == 0 {
		if vencidos > 0 {
			return nil, ErrPrecioVencido
		}
		return nil, ErrSinStock
	}

	elegido := candidatos[0]
	for _, l := range candidatos[1:] {
		if l.NumeroLote < elegido.NumeroLote {
			elegido = l
		}
	}

	if cantidad < 1 {
		cantidad = 1
	}
	if cantidad > elegido.StockActual {
		cantidad = elegido.StockActual
	}

	return &Seleccion{Lote: elegido, Cantidad: cantidad}, nil
}
